package models

import (
	"database/sql"
	"time"
)

// User maps a row of the users table.
type User struct {
	ID           string         `db:"id"` // ULID
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	IsStaff      bool           `db:"is_staff"`
	IsSuperuser  bool           `db:"is_superuser"`
	IsActive     bool           `db:"is_active"`
	DateJoined   time.Time      `db:"date_joined"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Question maps a row of the questions table (village game).
type Question struct {
	ID            string        `db:"id"`
	QuestionText  string        `db:"question_text"`
	QuestionType  string        `db:"question_type"`
	Difficulty    string        `db:"difficulty"`
	AgeGroup      string        `db:"age_group"`
	BuildingID    string        `db:"building_id"`
	Options       AnswerOptions `db:"options"`
	CorrectAnswer int           `db:"correct_answer"`
	Points        int           `db:"points"`
	IsActive      bool          `db:"is_active"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

// HumanQuizQuestion maps a row of the human_quiz_questions table (about page).
type HumanQuizQuestion struct {
	ID            string        `db:"id"`
	QuestionText  string        `db:"question_text"`
	Difficulty    string        `db:"difficulty"`
	Options       AnswerOptions `db:"options"`
	CorrectAnswer int           `db:"correct_answer"`
	Points        int           `db:"points"`
	IsActive      bool          `db:"is_active"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

// BlogPost maps a row of the blog_posts table.
type BlogPost struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Content        string         `db:"content"`
	Excerpt        sql.NullString `db:"excerpt"`
	Category       string         `db:"category"`
	AuthorID       string         `db:"author_id"`
	Status         string         `db:"status"`
	GeminiVerified bool           `db:"gemini_verified"`
	UpvoteCount    int            `db:"upvote_count"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}
