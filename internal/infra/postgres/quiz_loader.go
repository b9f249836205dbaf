package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"qr-quiz-service/internal/domain"
)

// QuizLoader loads quiz JSONB documents from the quizzes table.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) LoadQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM quizzes ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []domain.Quiz
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		var quiz domain.Quiz
		if err := json.Unmarshal(raw, &quiz); err != nil {
			return nil, fmt.Errorf("unmarshal quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

// SaveQuizzes upserts quizzes in one batch, storing their slice order as position.
func (l *QuizLoader) SaveQuizzes(ctx context.Context, quizzes []domain.Quiz) error {
	batch := &pgx.Batch{}
	for i, quiz := range quizzes {
		data, err := json.Marshal(quiz)
		if err != nil {
			return fmt.Errorf("marshal quiz %s: %w", quiz.ID, err)
		}
		batch.Queue(`INSERT INTO quizzes (id, position, data) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position, data = EXCLUDED.data`,
			quiz.ID, i, string(data))
	}

	results := l.pool.SendBatch(ctx, batch)
	defer results.Close()
	for _, quiz := range quizzes {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("save quiz %s: %w", quiz.ID, err)
		}
	}
	return nil
}
