package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"

	"qr-quiz-service/internal/domain"
)

// ResultStore persists results in the quiz_results table.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) Insert(ctx context.Context, record domain.ResultRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO quiz_results (user_id, user_name, quiz_id, quiz_tag, score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		record.UserID, record.UserName, record.QuizID, record.QuizTag, record.Score, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

func (s *ResultStore) List(ctx context.Context, query domain.ResultQuery) ([]domain.ResultRecord, error) {
	sql, args := buildListQuery(query)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ResultRecord, 0)
	for rows.Next() {
		var r domain.ResultRecord
		if err := rows.Scan(&r.UserID, &r.UserName, &r.QuizID, &r.QuizTag, &r.Score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	return records, nil
}

func buildListQuery(query domain.ResultQuery) (string, []any) {
	var (
		b     strings.Builder
		conds []string
		args  []any
	)
	b.WriteString(`SELECT user_id, user_name, quiz_id, quiz_tag, score, created_at FROM quiz_results`)
	if query.QuizID != "" {
		args = append(args, query.QuizID)
		conds = append(conds, "quiz_id = $"+strconv.Itoa(len(args)))
	}
	if query.UserID != "" {
		args = append(args, query.UserID)
		conds = append(conds, "user_id = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	if query.NewestFirst {
		b.WriteString(" ORDER BY created_at DESC, id DESC")
	} else {
		b.WriteString(" ORDER BY id")
	}
	return b.String(), args
}
