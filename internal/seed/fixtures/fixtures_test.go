package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"nird-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	set, err := Load()
	require.NoError(t, err)

	assert.Len(t, set.Users, 4)
	assert.Len(t, set.VillageQuestions, 5)
	assert.Len(t, set.HumanQuizQuestions, 3)
	assert.Len(t, set.BlogPosts, 4)

	admin := set.Users[0]
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "admin123", admin.Password)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)

	authors := []string{}
	for _, p := range set.BlogPosts {
		authors = append(authors, p.Author)
		assert.Equal(t, "approved", p.Status)
		assert.True(t, p.GeminiVerified)
	}
	assert.Equal(t, []string{"teacher1", "teacher2", "teacher1", "admin"}, authors)

	primtux := set.VillageQuestions[4]
	assert.Len(t, primtux.Options, 3)
	assert.Equal(t, "PrimTux", primtux.Options[primtux.CorrectAnswer].Text)
}

func TestLoad_EmbeddedEntitiesAreValid(t *testing.T) {
	set, err := Load()
	require.NoError(t, err)

	for _, q := range set.VillageQuestions {
		dq := domain.NewQuestion(q.QuestionText, domain.Level(q.Level), domain.AgeGroup(q.AgeGroup), domain.Building(q.BuildingID),
			AnswerOptions(q.Options), q.CorrectAnswer, q.Points)
		assert.NoError(t, dq.Validate(), q.QuestionText)
	}
	for _, q := range set.HumanQuizQuestions {
		dq := domain.NewHumanQuizQuestion(q.QuestionText, domain.Level(q.Level), AnswerOptions(q.Options), q.CorrectAnswer, q.Points)
		assert.NoError(t, dq.Validate(), q.QuestionText)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	content := `users:
  - username: demo
    email: demo@nird.fr
    password: demo123
blog_posts:
  - title: Atelier
    content: Contenu
    category: news
    author: demo
    status: approved
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	set, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, set.Users, 1)
	assert.Equal(t, "demo", set.Users[0].Username)
	require.Len(t, set.BlogPosts, 1)
	assert.Equal(t, "demo", set.BlogPosts[0].Author)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestSetValidate(t *testing.T) {
	tests := []struct {
		name string
		set  Set
	}{
		{"duplicate username", Set{Users: []User{{Username: "a", Password: "x"}, {Username: "a", Password: "y"}}}},
		{"empty title", Set{BlogPosts: []BlogPost{{Title: "  "}}}},
		{"duplicate after normalization", Set{VillageQuestions: []VillageQuestion{{QuestionText: "R\u00e9parer"}, {QuestionText: "Re\u0301parer "}}}},
		{"missing password", Set{Users: []User{{Username: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.ErrInvalidFixture, domainErr.Code)
		})
	}
}
