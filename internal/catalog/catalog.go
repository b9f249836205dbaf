// Package catalog holds the read-only registry of quizzes available to players.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/validation"
)

// Loader fetches quiz content from a backing source (built-in data, YAML file, Postgres).
type Loader interface {
	LoadQuizzes(ctx context.Context) ([]domain.Quiz, error)
}

// Catalog is immutable after construction.
type Catalog struct {
	order []string
	byID  map[string]domain.Quiz
}

// New validates quizzes and builds a catalog preserving their order.
func New(quizzes []domain.Quiz, v *validation.Validator) (*Catalog, error) {
	if v == nil {
		v = validation.New()
	}
	c := &Catalog{
		order: make([]string, 0, len(quizzes)),
		byID:  make(map[string]domain.Quiz, len(quizzes)),
	}
	for _, quiz := range quizzes {
		if err := v.Validate(quiz); err != nil {
			return nil, fmt.Errorf("%w: quiz %q: %w", domain.ErrInvalidCatalog, quiz.ID, err)
		}
		if _, dup := c.byID[quiz.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate quiz id %q", domain.ErrInvalidCatalog, quiz.ID)
		}
		c.order = append(c.order, quiz.ID)
		c.byID[quiz.ID] = quiz
	}
	return c, nil
}

// Load builds a catalog from a loader.
func Load(ctx context.Context, loader Loader, v *validation.Validator) (*Catalog, error) {
	quizzes, err := loader.LoadQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	return New(quizzes, v)
}

// Get returns the quiz with the given id.
func (c *Catalog) Get(quizID string) (domain.Quiz, error) {
	quiz, ok := c.byID[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

// Has reports whether the quiz id exists.
func (c *Catalog) Has(quizID string) bool {
	_, ok := c.byID[quizID]
	return ok
}

// List returns all quizzes in catalog order.
func (c *Catalog) List() []domain.Quiz {
	out := make([]domain.Quiz, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Resolve interprets decoded QR text as a quiz id.
func (c *Catalog) Resolve(code string) (domain.Quiz, error) {
	quiz, ok := c.byID[strings.TrimSpace(code)]
	if !ok {
		return domain.Quiz{}, domain.ErrInvalidQRCode
	}
	return quiz, nil
}

// StaticLoader serves a fixed slice of quizzes.
type StaticLoader struct {
	quizzes []domain.Quiz
}

func NewStaticLoader(quizzes []domain.Quiz) *StaticLoader {
	return &StaticLoader{quizzes: quizzes}
}

func (l *StaticLoader) LoadQuizzes(_ context.Context) ([]domain.Quiz, error) {
	return l.quizzes, nil
}
