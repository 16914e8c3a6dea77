package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions() []AnswerOption {
	return []AnswerOption{
		{Text: "Réparer", Points: 15, Feedback: "Bravo"},
		{Text: "Jeter", Points: -5, Feedback: "Dommage"},
	}
}

func TestUser_Validate(t *testing.T) {
	base := func() *User {
		u := NewUser("admin", "admin@nird.fr", "Admin", "NIRD")
		u.PasswordHash = "pbkdf2_sha256$1$salt$hash"
		return u
	}

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr bool
	}{
		{"valid user", func(u *User) {}, false},
		{"missing username", func(u *User) { u.Username = "" }, true},
		{"missing email", func(u *User) { u.Email = "" }, true},
		{"missing hash", func(u *User) { u.PasswordHash = "" }, true},
		{"superuser without staff", func(u *User) { u.IsSuperuser = true }, true},
		{"staff superuser", func(u *User) { u.IsSuperuser = true; u.IsStaff = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base()
			tt.mutate(u)
			err := u.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewUser_IsActiveByDefault(t *testing.T) {
	u := NewUser("student1", "student1@nird.fr", "", "")
	assert.True(t, u.IsActive)
	assert.False(t, u.IsStaff)
	assert.False(t, u.DateJoined.IsZero())
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       *Question
		wantErr bool
	}{
		{"valid", NewQuestion("Que faire ?", LevelBeginner, AgeGroupUnder14, BuildingLab, validOptions(), 0, 15), false},
		{"empty text", NewQuestion("", LevelBeginner, AgeGroupUnder14, BuildingLab, validOptions(), 0, 15), true},
		{"bad level", NewQuestion("Q", Level("expert"), AgeGroupUnder14, BuildingLab, validOptions(), 0, 15), true},
		{"bad age group", NewQuestion("Q", LevelBeginner, AgeGroup("12"), BuildingLab, validOptions(), 0, 15), true},
		{"bad building", NewQuestion("Q", LevelBeginner, AgeGroupAdult, Building("school"), validOptions(), 0, 15), true},
		{"single option", NewQuestion("Q", LevelBeginner, AgeGroupAdult, BuildingEco, validOptions()[:1], 0, 15), true},
		{"correct answer out of range", NewQuestion("Q", LevelBeginner, AgeGroupAdult, BuildingEco, validOptions(), 2, 15), true},
		{"negative correct answer", NewQuestion("Q", LevelBeginner, AgeGroupAdult, BuildingEco, validOptions(), -1, 15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewQuestion_Defaults(t *testing.T) {
	q := NewQuestion("Q", LevelAdvanced, AgeGroup15To17, BuildingCityHall, validOptions(), 1, 30)
	assert.Equal(t, QuestionTypeVillage, q.QuestionType)
	assert.True(t, q.IsActive)
}

func TestHumanQuizQuestion_Validate(t *testing.T) {
	assert.NoError(t, NewHumanQuizQuestion("Q", LevelIntermediate, validOptions(), 1, 20).Validate())
	assert.Error(t, NewHumanQuizQuestion("Q", LevelIntermediate, nil, 0, 20).Validate())

	blankOption := validOptions()
	blankOption[1].Text = ""
	assert.Error(t, NewHumanQuizQuestion("Q", LevelIntermediate, blankOption, 0, 20).Validate())
}

func TestBlogPost_Validate(t *testing.T) {
	base := func() *BlogPost {
		return NewBlogPost("Titre", "Contenu", "Extrait", BlogCategoryStories, "01HAUTHOR")
	}

	tests := []struct {
		name    string
		mutate  func(p *BlogPost)
		wantErr bool
	}{
		{"valid", func(p *BlogPost) {}, false},
		{"empty excerpt allowed", func(p *BlogPost) { p.Excerpt = "" }, false},
		{"missing title", func(p *BlogPost) { p.Title = "" }, true},
		{"missing content", func(p *BlogPost) { p.Content = "" }, true},
		{"missing author", func(p *BlogPost) { p.AuthorID = "" }, true},
		{"bad category", func(p *BlogPost) { p.Category = "gossip" }, true},
		{"bad status", func(p *BlogPost) { p.Status = "draft" }, true},
		{"negative upvotes", func(p *BlogPost) { p.UpvoteCount = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewBlogPost_IsPending(t *testing.T) {
	p := NewBlogPost("T", "C", "", BlogCategoryNews, "a")
	assert.Equal(t, BlogStatusPending, p.Status)
	assert.Zero(t, p.UpvoteCount)
}

func TestSeedReport(t *testing.T) {
	r := NewSeedReport()
	r.Record(KindUser, OutcomeCreated)
	r.Record(KindUser, OutcomeExists)
	r.Record(KindBlogPost, OutcomeCreated)
	r.Record(KindVillageQuestion, OutcomeExists)

	assert.Equal(t, SeedCount{Created: 1, Existing: 1}, r.Counts[KindUser])
	assert.Equal(t, 2, r.Counts[KindUser].Total())
	assert.Equal(t, []RecordKind{KindUser, KindBlogPost}, r.CreatedKinds())
	assert.Empty(t, NewSeedReport().CreatedKinds())
}

func TestDomainError(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError("failed to seed", cause)
	assert.Equal(t, "failed to seed: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	var domainErr *DomainError
	require.ErrorAs(t, NewUnknownAuthorError("teacher3"), &domainErr)
	assert.Equal(t, ErrUnknownAuthor, domainErr.Code)
	assert.Contains(t, domainErr.Error(), "teacher3")

	fixtureErr := NewInvalidFixtureError(KindBlogPost, "Titre", cause)
	require.ErrorAs(t, fixtureErr, &domainErr)
	assert.Equal(t, ErrInvalidFixture, domainErr.Code)

	data, jsonErr := NewNotFoundError("missing").MarshalJSON()
	require.NoError(t, jsonErr)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"missing"}`, string(data))
}
