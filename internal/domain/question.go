package domain

import (
	"context"
	"fmt"
	"time"
)

// Level is the difficulty of a question.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// AgeGroup is the audience a village question targets.
type AgeGroup string

const (
	AgeGroupUnder14 AgeGroup = "14-"
	AgeGroup15To17  AgeGroup = "15-17"
	AgeGroupAdult   AgeGroup = "18+"
)

func (a AgeGroup) Valid() bool {
	switch a {
	case AgeGroupUnder14, AgeGroup15To17, AgeGroupAdult:
		return true
	}
	return false
}

// Building identifies the village building a question is attached to.
type Building string

const (
	BuildingLab      Building = "lab"
	BuildingLibrary  Building = "library"
	BuildingCityHall Building = "cityhall"
	BuildingEco      Building = "eco"
)

func (b Building) Valid() bool {
	switch b {
	case BuildingLab, BuildingLibrary, BuildingCityHall, BuildingEco:
		return true
	}
	return false
}

// QuestionTypeVillage is the only question type the village game uses.
const QuestionTypeVillage = "village"

// AnswerOption is one selectable answer. Points may be negative.
type AnswerOption struct {
	Text     string `json:"text"`
	Points   int    `json:"points"`
	Feedback string `json:"feedback"`
}

// Question is a village game question
type Question struct {
	ID            string
	QuestionText  string
	QuestionType  string
	Level         Level
	AgeGroup      AgeGroup
	BuildingID    Building
	Options       []AnswerOption
	CorrectAnswer int // index into Options
	Points        int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuestion creates an active village question
func NewQuestion(text string, level Level, ageGroup AgeGroup, building Building, options []AnswerOption, correctAnswer, points int) *Question {
	now := time.Now()
	return &Question{
		QuestionText:  text,
		QuestionType:  QuestionTypeVillage,
		Level:         level,
		AgeGroup:      ageGroup,
		BuildingID:    building,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Points:        points,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if err := validateChoices(q.QuestionText, q.Level, q.Options, q.CorrectAnswer); err != nil {
		return err
	}
	if q.QuestionType != QuestionTypeVillage {
		return NewValidationError(fmt.Sprintf("unsupported question type: %s", q.QuestionType))
	}
	if !q.AgeGroup.Valid() {
		return NewValidationError(fmt.Sprintf("invalid age group: %s", q.AgeGroup))
	}
	if !q.BuildingID.Valid() {
		return NewValidationError(fmt.Sprintf("invalid building: %s", q.BuildingID))
	}
	return nil
}

// HumanQuizQuestion is a question of the about page quiz
type HumanQuizQuestion struct {
	ID            string
	QuestionText  string
	Level         Level
	Options       []AnswerOption
	CorrectAnswer int
	Points        int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewHumanQuizQuestion creates an active about page quiz question
func NewHumanQuizQuestion(text string, level Level, options []AnswerOption, correctAnswer, points int) *HumanQuizQuestion {
	now := time.Now()
	return &HumanQuizQuestion{
		QuestionText:  text,
		Level:         level,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Points:        points,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate validates the quiz question
func (q *HumanQuizQuestion) Validate() error {
	return validateChoices(q.QuestionText, q.Level, q.Options, q.CorrectAnswer)
}

func validateChoices(text string, level Level, options []AnswerOption, correctAnswer int) error {
	if text == "" {
		return NewValidationError("question text is required")
	}
	if !level.Valid() {
		return NewValidationError(fmt.Sprintf("invalid level: %s", level))
	}
	if len(options) < 2 {
		return NewValidationError("at least two options are required")
	}
	for i, opt := range options {
		if opt.Text == "" {
			return NewValidationError(fmt.Sprintf("option %d has no text", i))
		}
	}
	if correctAnswer < 0 || correctAnswer >= len(options) {
		return NewValidationError(fmt.Sprintf("correct answer %d out of range [0,%d)", correctAnswer, len(options)))
	}
	return nil
}

// QuestionRepository defines the interface for village question persistence
type QuestionRepository interface {
	// GetByText returns nil, nil when no question has that text.
	GetByText(ctx context.Context, text string) (*Question, error)
	SaveQuestion(ctx context.Context, question *Question) error
}

// HumanQuizQuestionRepository defines the interface for about page quiz persistence
type HumanQuizQuestionRepository interface {
	// GetByText returns nil, nil when no question has that text.
	GetByText(ctx context.Context, text string) (*HumanQuizQuestion, error)
	SaveQuestion(ctx context.Context, question *HumanQuizQuestion) error
}
