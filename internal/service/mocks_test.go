package service

import (
	"context"
	"time"

	"nird-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByText(ctx context.Context, text string) (*domain.Question, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

// --- MockHumanQuizQuestionRepository ---
type MockHumanQuizQuestionRepository struct {
	mock.Mock
}

func (m *MockHumanQuizQuestionRepository) GetByText(ctx context.Context, text string) (*domain.HumanQuizQuestion, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HumanQuizQuestion), args.Error(1)
}

func (m *MockHumanQuizQuestionRepository) SaveQuestion(ctx context.Context, question *domain.HumanQuizQuestion) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

// --- MockBlogPostRepository ---
type MockBlogPostRepository struct {
	mock.Mock
}

func (m *MockBlogPostRepository) GetByTitle(ctx context.Context, title string) (*domain.BlogPost, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) SavePost(ctx context.Context, post *domain.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// --- MockPasswordHasher ---
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// --- MockTransactionManager ---
// Runs fn directly and returns its error, counting the transactions opened.
type MockTransactionManager struct {
	Calls int
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	args := m.Called(ctx, pattern)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
