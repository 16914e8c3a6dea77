package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nird-backend/internal/domain"
	"nird-backend/internal/repository/models"
	"nird-backend/internal/util"
)

const selectQuestionQuery = `SELECT
		id "id",
		question_text "question_text",
		question_type "question_type",
		difficulty "difficulty",
		age_group "age_group",
		building_id "building_id",
		options "options",
		correct_answer "correct_answer",
		points "points",
		is_active "is_active",
		created_at "created_at",
		updated_at "updated_at"
	FROM questions
	WHERE question_text = ?`

const insertQuestionQuery = `INSERT INTO questions (id, question_text, question_type, difficulty, age_group, building_id, options, correct_answer, points, is_active, created_at, updated_at)
	VALUES (:id, :question_text, :question_type, :difficulty, :age_group, :building_id, :options, :correct_answer, :points, :is_active, :created_at, :updated_at)`

// QuestionDatabaseAdapter implements domain.QuestionRepository for village questions
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetByText implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetByText(ctx context.Context, text string) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var q models.Question
	err := exec.GetContext(ctx, &q, exec.Rebind(selectQuestionQuery), util.NormalizeKey(text))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by text: %w", err)
	}
	return toDomainQuestion(&q), nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}

	question.QuestionText = util.NormalizeKey(question.QuestionText)
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	if _, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, insertQuestionQuery, fromDomainQuestion(question)); err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

func toDomainQuestion(q *models.Question) *domain.Question {
	return &domain.Question{
		ID:            q.ID,
		QuestionText:  q.QuestionText,
		QuestionType:  q.QuestionType,
		Level:         domain.Level(q.Difficulty),
		AgeGroup:      domain.AgeGroup(q.AgeGroup),
		BuildingID:    domain.Building(q.BuildingID),
		Options:       []domain.AnswerOption(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
		IsActive:      q.IsActive,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:            q.ID,
		QuestionText:  q.QuestionText,
		QuestionType:  q.QuestionType,
		Difficulty:    string(q.Level),
		AgeGroup:      string(q.AgeGroup),
		BuildingID:    string(q.BuildingID),
		Options:       models.AnswerOptions(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
		IsActive:      q.IsActive,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
