package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"qr-quiz-service/internal/catalog"
	"qr-quiz-service/internal/domain"
)

// ResultRepository abstracts the append-only result table (in-memory, Postgres, hosted REST).
type ResultRepository interface {
	Insert(ctx context.Context, record domain.ResultRecord) error
	List(ctx context.Context, query domain.ResultQuery) ([]domain.ResultRecord, error)
}

// QuizSummary is a catalog entry annotated with the caller's completion flag.
type QuizSummary struct {
	domain.Quiz
	Completed bool `json:"completed"`
}

// QuizService contains the quiz use cases.
type QuizService struct {
	catalog *catalog.Catalog
	results ResultRepository
	hub     *Hub
	logger  *zap.Logger
	now     func() time.Time
	sf      singleflight.Group
}

func NewQuizService(c *catalog.Catalog, results ResultRepository, logger *zap.Logger) *QuizService {
	return NewQuizServiceWithClock(c, results, logger, time.Now)
}

// NewQuizServiceWithClock is used by tests for deterministic timestamps.
func NewQuizServiceWithClock(c *catalog.Catalog, results ResultRepository, logger *zap.Logger, now func() time.Time) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		catalog: c,
		results: results,
		hub:     NewHub(),
		logger:  logger,
		now:     now,
	}
}

// Hub exposes live leaderboard subscriptions.
func (s *QuizService) Hub() *Hub {
	return s.hub
}

func (s *QuizService) Quiz(quizID string) (domain.Quiz, error) {
	return s.catalog.Get(quizID)
}

// ResolveQR maps scanned text to a quiz. Unknown codes yield domain.ErrInvalidQRCode.
func (s *QuizService) ResolveQR(code string) (domain.Quiz, error) {
	return s.catalog.Resolve(code)
}

// Quizzes lists the catalog with the profile's completion flags. identity may be nil.
func (s *QuizService) Quizzes(ctx context.Context, identity IdentityStore) ([]QuizSummary, error) {
	quizzes := s.catalog.List()
	out := make([]QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summary := QuizSummary{Quiz: quiz}
		if identity != nil {
			done, err := identity.IsQuizCompleted(ctx, quiz.ID)
			if err != nil {
				return nil, fmt.Errorf("completion flag %s: %w", quiz.ID, err)
			}
			summary.Completed = done
		}
		out = append(out, summary)
	}
	return out, nil
}

// Preview scores a possibly partial selection without side effects.
func (s *QuizService) Preview(quizID string, answers domain.AnswerSelection) (domain.ScoreResult, error) {
	quiz, err := s.catalog.Get(quizID)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	return Score(quiz, answers), nil
}

// Complete scores a finished quiz and submits the result once.
// A failed submission is logged and reported through Completion.Submitted, never as an error.
func (s *QuizService) Complete(ctx context.Context, identity IdentityStore, quizID string, answers domain.AnswerSelection) (domain.Completion, error) {
	quiz, err := s.catalog.Get(quizID)
	if err != nil {
		return domain.Completion{}, err
	}
	name, ok, err := identity.UserName(ctx)
	if err != nil {
		return domain.Completion{}, fmt.Errorf("read user name: %w", err)
	}
	if !ok {
		return domain.Completion{}, domain.ErrNameNotSet
	}

	completion := buildCompletion(quiz, answers)
	if err := s.Submit(ctx, identity, name, quiz, completion.Score); err != nil {
		s.logger.Error("submit quiz result",
			zap.String("quiz_id", quiz.ID),
			zap.String("user_name", name),
			zap.Error(err),
		)
		return completion, nil
	}
	completion.Submitted = true
	return completion, nil
}

// Submit persists one result record and marks the quiz completed for the profile.
func (s *QuizService) Submit(ctx context.Context, identity IdentityStore, userName string, quiz domain.Quiz, score domain.ScoreResult) error {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return fmt.Errorf("resolve user id: %w", err)
	}

	record := domain.ResultRecord{
		UserID:    userID,
		UserName:  userName,
		QuizID:    quiz.ID,
		QuizTag:   quiz.Tag,
		Score:     score.CorrectCount,
		CreatedAt: s.now().UTC(),
	}
	if err := s.results.Insert(ctx, record); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}

	if err := identity.MarkQuizCompleted(ctx, quiz.ID); err != nil {
		s.logger.Warn("mark quiz completed",
			zap.String("quiz_id", quiz.ID),
			zap.Error(err),
		)
	}

	s.refreshSubscribers(ctx, quiz.ID)
	return nil
}

// leaderboardFetchTimeout bounds a shared leaderboard fetch, which no single caller owns.
const leaderboardFetchTimeout = 10 * time.Second

// Leaderboard fetches the records visible under quizID ("" for all) and ranks them.
// Concurrent calls for the same filter share one backend fetch, detached from
// the cancellation of whichever caller started it.
func (s *QuizService) Leaderboard(ctx context.Context, quizID string) (domain.Leaderboard, error) {
	if quizID != "" && !s.catalog.Has(quizID) {
		return domain.Leaderboard{}, domain.ErrQuizNotFound
	}

	result, err, _ := s.sf.Do("leaderboard:"+quizID, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leaderboardFetchTimeout)
		defer cancel()

		records, err := s.results.List(fetchCtx, domain.ResultQuery{QuizID: quizID})
		if err != nil {
			return domain.Leaderboard{}, err
		}
		return domain.Leaderboard{
			QuizID:    quizID,
			Entries:   Aggregate(records, quizID),
			UpdatedAt: s.now().UTC(),
		}, nil
	})
	if err != nil {
		s.logger.Error("load leaderboard", zap.String("quiz_id", quizID), zap.Error(err))
		return domain.Leaderboard{QuizID: quizID, Entries: []domain.LeaderboardEntry{}}, fmt.Errorf("load leaderboard: %w", err)
	}
	return result.(domain.Leaderboard), nil
}

// History returns the profile's own results, newest first.
func (s *QuizService) History(ctx context.Context, identity IdentityStore) ([]domain.HistoryItem, error) {
	userID, err := identity.UserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve user id: %w", err)
	}
	records, err := s.results.List(ctx, domain.ResultQuery{UserID: userID, NewestFirst: true})
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	items := make([]domain.HistoryItem, 0, len(records))
	for _, record := range records {
		quiz, err := s.catalog.Get(record.QuizID)
		if errors.Is(err, domain.ErrQuizNotFound) {
			continue
		}
		total := len(quiz.Questions)
		items = append(items, domain.HistoryItem{
			Record:         record,
			QuizTitle:      quiz.Title,
			TotalQuestions: total,
			Grade:          GradeFor(float64(record.Score) / float64(total) * 100),
		})
	}
	return items, nil
}

func (s *QuizService) refreshSubscribers(ctx context.Context, quizID string) {
	for _, filter := range s.hub.Affected(quizID) {
		// An in-flight fetch may predate the insert.
		s.sf.Forget("leaderboard:" + filter)
		lb, err := s.Leaderboard(ctx, filter)
		if err != nil {
			continue
		}
		s.hub.Publish(lb)
	}
}
