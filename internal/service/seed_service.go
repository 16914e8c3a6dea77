package service

import (
	"context"
	"errors"
	"fmt"

	"nird-backend/internal/console"
	"nird-backend/internal/domain"
	"nird-backend/internal/seed/fixtures"
	"nird-backend/internal/util"

	"go.uber.org/zap"
)

// questionPreviewLength is how many characters of a question text status lines show.
const questionPreviewLength = 50

// SeedService ensures the initial data set exists.
type SeedService interface {
	// Seed get-or-creates every record of set. Existing records are left untouched,
	// so running it repeatedly does not change record counts.
	Seed(ctx context.Context, set *fixtures.Set) (*domain.SeedReport, error)
}

// SeedRepositories groups the repositories the seed service writes to.
type SeedRepositories struct {
	Users              domain.UserRepository
	Questions          domain.QuestionRepository
	HumanQuizQuestions domain.HumanQuizQuestionRepository
	BlogPosts          domain.BlogPostRepository
}

type seedServiceImpl struct {
	repos     SeedRepositories
	txManager domain.TransactionManager
	hasher    domain.PasswordHasher
	out       *console.Writer
	logger    *zap.Logger
}

// NewSeedService creates a new instance of SeedService
func NewSeedService(
	repos SeedRepositories,
	txManager domain.TransactionManager,
	hasher domain.PasswordHasher,
	out *console.Writer,
	logger *zap.Logger,
) SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &seedServiceImpl{
		repos:     repos,
		txManager: txManager,
		hasher:    hasher,
		out:       out,
		logger:    logger,
	}
}

func (s *seedServiceImpl) Seed(ctx context.Context, set *fixtures.Set) (*domain.SeedReport, error) {
	if set == nil {
		return nil, domain.NewInvalidInputError("fixture set is required")
	}

	report := domain.NewSeedReport()

	s.out.Write("Creating users...")
	if err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.seedUsers(ctx, set.Users, report)
	}); err != nil {
		return nil, err
	}

	authors, err := s.resolveAuthors(ctx, set.BlogPosts)
	if err != nil {
		return nil, err
	}

	s.out.Write("Creating village questions...")
	if err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.seedVillageQuestions(ctx, set.VillageQuestions, report)
	}); err != nil {
		return nil, err
	}

	s.out.Write("Creating human quiz questions (About page)...")
	if err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.seedHumanQuizQuestions(ctx, set.HumanQuizQuestions, report)
	}); err != nil {
		return nil, err
	}

	s.out.Write("Creating blog posts...")
	if err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return s.seedBlogPosts(ctx, set.BlogPosts, authors, report)
	}); err != nil {
		return nil, err
	}

	s.printSummary(set)

	for kind, count := range report.Counts {
		s.logger.Info("Seeded records",
			zap.String("kind", string(kind)),
			zap.Int("created", count.Created),
			zap.Int("existing", count.Existing))
	}
	return report, nil
}

func (s *seedServiceImpl) seedUsers(ctx context.Context, users []fixtures.User, report *domain.SeedReport) error {
	for _, u := range users {
		existing, err := s.repos.Users.GetUserByUsername(ctx, u.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			report.Record(domain.KindUser, domain.OutcomeExists)
			s.out.Warningf("User already exists: %s", existing.Username)
			continue
		}

		user := domain.NewUser(u.Username, u.Email, u.FirstName, u.LastName)
		user.IsStaff = u.IsStaff
		user.IsSuperuser = u.IsSuperuser
		user.PasswordHash, err = s.hasher.Hash(u.Password)
		if err != nil {
			return domain.NewInternalError(fmt.Sprintf("failed to hash password of %s", u.Username), err)
		}

		if err := s.repos.Users.CreateUser(ctx, user); err != nil {
			return fixtureError(domain.KindUser, u.Username, err)
		}
		report.Record(domain.KindUser, domain.OutcomeCreated)
		s.logger.Debug("Created user", zap.String("id", user.ID), zap.String("username", user.Username))
		s.out.Successf("Created user: %s", user.Username)
	}
	return nil
}

// resolveAuthors looks up every username the blog posts reference.
func (s *seedServiceImpl) resolveAuthors(ctx context.Context, posts []fixtures.BlogPost) (map[string]*domain.User, error) {
	authors := make(map[string]*domain.User)
	for _, p := range posts {
		username := util.NormalizeKey(p.Author)
		if _, ok := authors[username]; ok {
			continue
		}
		user, err := s.repos.Users.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.NewUnknownAuthorError(username)
		}
		authors[username] = user
	}
	return authors, nil
}

func (s *seedServiceImpl) seedVillageQuestions(ctx context.Context, questions []fixtures.VillageQuestion, report *domain.SeedReport) error {
	for _, q := range questions {
		existing, err := s.repos.Questions.GetByText(ctx, q.QuestionText)
		if err != nil {
			return err
		}
		if existing != nil {
			report.Record(domain.KindVillageQuestion, domain.OutcomeExists)
			s.out.Warningf("Village question already exists: %s...", util.Preview(existing.QuestionText, questionPreviewLength))
			continue
		}

		question := domain.NewQuestion(
			q.QuestionText,
			domain.Level(q.Level),
			domain.AgeGroup(q.AgeGroup),
			domain.Building(q.BuildingID),
			fixtures.AnswerOptions(q.Options),
			q.CorrectAnswer,
			q.Points,
		)
		if q.QuestionType != "" {
			question.QuestionType = q.QuestionType
		}

		if err := s.repos.Questions.SaveQuestion(ctx, question); err != nil {
			return fixtureError(domain.KindVillageQuestion, q.QuestionText, err)
		}
		report.Record(domain.KindVillageQuestion, domain.OutcomeCreated)
		s.out.Successf("Created village question: %s...", util.Preview(question.QuestionText, questionPreviewLength))
	}
	return nil
}

func (s *seedServiceImpl) seedHumanQuizQuestions(ctx context.Context, questions []fixtures.HumanQuizQuestion, report *domain.SeedReport) error {
	for _, q := range questions {
		existing, err := s.repos.HumanQuizQuestions.GetByText(ctx, q.QuestionText)
		if err != nil {
			return err
		}
		if existing != nil {
			report.Record(domain.KindHumanQuizQuestion, domain.OutcomeExists)
			s.out.Warningf("Human quiz question already exists: %s...", util.Preview(existing.QuestionText, questionPreviewLength))
			continue
		}

		question := domain.NewHumanQuizQuestion(
			q.QuestionText,
			domain.Level(q.Level),
			fixtures.AnswerOptions(q.Options),
			q.CorrectAnswer,
			q.Points,
		)
		if err := s.repos.HumanQuizQuestions.SaveQuestion(ctx, question); err != nil {
			return fixtureError(domain.KindHumanQuizQuestion, q.QuestionText, err)
		}
		report.Record(domain.KindHumanQuizQuestion, domain.OutcomeCreated)
		s.out.Successf("Created human quiz question: %s...", util.Preview(question.QuestionText, questionPreviewLength))
	}
	return nil
}

func (s *seedServiceImpl) seedBlogPosts(ctx context.Context, posts []fixtures.BlogPost, authors map[string]*domain.User, report *domain.SeedReport) error {
	for _, p := range posts {
		existing, err := s.repos.BlogPosts.GetByTitle(ctx, p.Title)
		if err != nil {
			return err
		}
		if existing != nil {
			report.Record(domain.KindBlogPost, domain.OutcomeExists)
			s.out.Warningf("Blog post already exists: %s", existing.Title)
			continue
		}

		author := authors[util.NormalizeKey(p.Author)]
		if author == nil {
			return domain.NewUnknownAuthorError(p.Author)
		}

		post := domain.NewBlogPost(p.Title, p.Content, p.Excerpt, domain.BlogCategory(p.Category), author.ID)
		if p.Status != "" {
			post.Status = domain.BlogStatus(p.Status)
		}
		post.GeminiVerified = p.GeminiVerified
		post.UpvoteCount = p.UpvoteCount

		if err := s.repos.BlogPosts.SavePost(ctx, post); err != nil {
			return fixtureError(domain.KindBlogPost, p.Title, err)
		}
		report.Record(domain.KindBlogPost, domain.OutcomeCreated)
		s.out.Successf("Created blog post: %s", post.Title)
	}
	return nil
}

func (s *seedServiceImpl) printSummary(set *fixtures.Set) {
	s.out.Success("\n✅ Seed data created successfully!")
	s.out.Write("\nUsers created / ensured:")
	for _, u := range set.Users {
		if u.IsSuperuser {
			s.out.Writef("  - %s / %s (superuser)", u.Username, u.Password)
		} else {
			s.out.Writef("  - %s / %s", u.Username, u.Password)
		}
	}
	s.out.Writef("\nVillage questions (Question) seeded: %d", len(set.VillageQuestions))
	s.out.Writef("About quiz questions (HumanQuizQuestion) seeded: %d", len(set.HumanQuizQuestions))
	s.out.Writef("Blog posts created: %d", len(set.BlogPosts))
}

// fixtureError reports entity validation failures as invalid fixtures and
// passes persistence errors through.
func fixtureError(kind domain.RecordKind, key string, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return domain.NewInvalidFixtureError(kind, key, err)
	}
	return err
}
