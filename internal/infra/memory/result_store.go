package memory

import (
	"context"
	"sort"
	"sync"

	"qr-quiz-service/internal/domain"
)

// ResultStore is an append-only in-memory implementation of app.ResultRepository.
type ResultStore struct {
	mu      sync.RWMutex
	records []domain.ResultRecord
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) Insert(_ context.Context, record domain.ResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *ResultStore) List(_ context.Context, query domain.ResultQuery) ([]domain.ResultRecord, error) {
	s.mu.RLock()
	out := make([]domain.ResultRecord, 0, len(s.records))
	for _, record := range s.records {
		if query.QuizID != "" && record.QuizID != query.QuizID {
			continue
		}
		if query.UserID != "" && record.UserID != query.UserID {
			continue
		}
		out = append(out, record)
	}
	s.mu.RUnlock()

	if query.NewestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out, nil
}
