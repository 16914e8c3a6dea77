// Package fixtures holds the initial data set of the NIRD platform.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nird-backend/internal/domain"
	"nird-backend/internal/util"

	"gopkg.in/yaml.v3"
)

//go:embed nird.json
var embedded []byte

// User is an account to ensure. Password is plaintext and hashed on creation.
type User struct {
	Username    string `json:"username" yaml:"username"`
	Email       string `json:"email" yaml:"email"`
	Password    string `json:"password" yaml:"password"`
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	IsStaff     bool   `json:"is_staff" yaml:"is_staff"`
	IsSuperuser bool   `json:"is_superuser" yaml:"is_superuser"`
}

type Option struct {
	Text     string `json:"text" yaml:"text"`
	Points   int    `json:"points" yaml:"points"`
	Feedback string `json:"feedback" yaml:"feedback"`
}

type VillageQuestion struct {
	QuestionText  string   `json:"question_text" yaml:"question_text"`
	QuestionType  string   `json:"question_type" yaml:"question_type"`
	Level         string   `json:"level" yaml:"level"`
	AgeGroup      string   `json:"age_group" yaml:"age_group"`
	BuildingID    string   `json:"building_id" yaml:"building_id"`
	Options       []Option `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correct_answer" yaml:"correct_answer"`
	Points        int      `json:"points" yaml:"points"`
}

type HumanQuizQuestion struct {
	QuestionText  string   `json:"question_text" yaml:"question_text"`
	Level         string   `json:"level" yaml:"level"`
	Options       []Option `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correct_answer" yaml:"correct_answer"`
	Points        int      `json:"points" yaml:"points"`
}

// BlogPost references its author by username.
type BlogPost struct {
	Title          string `json:"title" yaml:"title"`
	Content        string `json:"content" yaml:"content"`
	Excerpt        string `json:"excerpt" yaml:"excerpt"`
	Category       string `json:"category" yaml:"category"`
	Author         string `json:"author" yaml:"author"`
	Status         string `json:"status" yaml:"status"`
	GeminiVerified bool   `json:"gemini_verified" yaml:"gemini_verified"`
	UpvoteCount    int    `json:"upvote_count" yaml:"upvote_count"`
}

// Set is a complete seeding data set.
type Set struct {
	Users              []User              `json:"users" yaml:"users"`
	VillageQuestions   []VillageQuestion   `json:"village_questions" yaml:"village_questions"`
	HumanQuizQuestions []HumanQuizQuestion `json:"human_quiz_questions" yaml:"human_quiz_questions"`
	BlogPosts          []BlogPost          `json:"blog_posts" yaml:"blog_posts"`
}

// Load returns the embedded data set.
func Load() (*Set, error) {
	return parseJSON(embedded)
}

// LoadFile reads a data set from path. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var set Set
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to decode fixtures file %s: %w", path, err)
		}
		if err := set.Validate(); err != nil {
			return nil, err
		}
		return &set, nil
	default:
		return parseJSON(data)
	}
}

func parseJSON(data []byte) (*Set, error) {
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate rejects empty and duplicated lookup keys. Field level checks are
// left to the domain entities.
func (s *Set) Validate() error {
	if err := uniqueKeys(domain.KindUser, len(s.Users), func(i int) string { return s.Users[i].Username }); err != nil {
		return err
	}
	if err := uniqueKeys(domain.KindVillageQuestion, len(s.VillageQuestions), func(i int) string { return s.VillageQuestions[i].QuestionText }); err != nil {
		return err
	}
	if err := uniqueKeys(domain.KindHumanQuizQuestion, len(s.HumanQuizQuestions), func(i int) string { return s.HumanQuizQuestions[i].QuestionText }); err != nil {
		return err
	}
	if err := uniqueKeys(domain.KindBlogPost, len(s.BlogPosts), func(i int) string { return s.BlogPosts[i].Title }); err != nil {
		return err
	}
	for _, u := range s.Users {
		if u.Password == "" {
			return domain.NewInvalidFixtureError(domain.KindUser, u.Username, domain.NewValidationError("password is required"))
		}
	}
	return nil
}

func uniqueKeys(kind domain.RecordKind, n int, key func(i int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		k := util.NormalizeKey(key(i))
		if k == "" {
			return domain.NewInvalidFixtureError(kind, fmt.Sprintf("#%d", i), domain.NewValidationError("lookup key is empty"))
		}
		if _, dup := seen[k]; dup {
			return domain.NewInvalidFixtureError(kind, k, domain.NewValidationError("duplicate lookup key"))
		}
		seen[k] = struct{}{}
	}
	return nil
}

// AnswerOptions converts fixture options to domain options.
func AnswerOptions(opts []Option) []domain.AnswerOption {
	out := make([]domain.AnswerOption, len(opts))
	for i, o := range opts {
		out[i] = domain.AnswerOption{Text: o.Text, Points: o.Points, Feedback: o.Feedback}
	}
	return out
}
