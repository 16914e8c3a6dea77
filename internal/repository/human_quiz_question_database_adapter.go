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

const selectHumanQuizQuestionQuery = `SELECT
		id "id",
		question_text "question_text",
		difficulty "difficulty",
		options "options",
		correct_answer "correct_answer",
		points "points",
		is_active "is_active",
		created_at "created_at",
		updated_at "updated_at"
	FROM human_quiz_questions
	WHERE question_text = ?`

const insertHumanQuizQuestionQuery = `INSERT INTO human_quiz_questions (id, question_text, difficulty, options, correct_answer, points, is_active, created_at, updated_at)
	VALUES (:id, :question_text, :difficulty, :options, :correct_answer, :points, :is_active, :created_at, :updated_at)`

// HumanQuizQuestionDatabaseAdapter implements domain.HumanQuizQuestionRepository
type HumanQuizQuestionDatabaseAdapter struct {
	db DBTX
}

// NewHumanQuizQuestionDatabaseAdapter creates a new instance of HumanQuizQuestionDatabaseAdapter
func NewHumanQuizQuestionDatabaseAdapter(db DBTX) domain.HumanQuizQuestionRepository {
	return &HumanQuizQuestionDatabaseAdapter{db: db}
}

// GetByText implements domain.HumanQuizQuestionRepository
func (a *HumanQuizQuestionDatabaseAdapter) GetByText(ctx context.Context, text string) (*domain.HumanQuizQuestion, error) {
	exec := GetExecutor(ctx, a.db)

	var q models.HumanQuizQuestion
	err := exec.GetContext(ctx, &q, exec.Rebind(selectHumanQuizQuestionQuery), util.NormalizeKey(text))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get human quiz question by text: %w", err)
	}
	return &domain.HumanQuizQuestion{
		ID:            q.ID,
		QuestionText:  q.QuestionText,
		Level:         domain.Level(q.Difficulty),
		Options:       []domain.AnswerOption(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
		IsActive:      q.IsActive,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}, nil
}

// SaveQuestion implements domain.HumanQuizQuestionRepository
func (a *HumanQuizQuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.HumanQuizQuestion) error {
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

	model := &models.HumanQuizQuestion{
		ID:            question.ID,
		QuestionText:  question.QuestionText,
		Difficulty:    string(question.Level),
		Options:       models.AnswerOptions(question.Options),
		CorrectAnswer: question.CorrectAnswer,
		Points:        question.Points,
		IsActive:      question.IsActive,
		CreatedAt:     question.CreatedAt,
		UpdatedAt:     question.UpdatedAt,
	}
	if _, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, insertHumanQuizQuestionQuery, model); err != nil {
		return fmt.Errorf("failed to save human quiz question: %w", err)
	}
	return nil
}
