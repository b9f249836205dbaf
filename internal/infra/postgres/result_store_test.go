package postgres

import (
	"reflect"
	"testing"

	"qr-quiz-service/internal/domain"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name  string
		query domain.ResultQuery
		sql   string
		args  []any
	}{
		{
			name: "all",
			sql:  `SELECT user_id, user_name, quiz_id, quiz_tag, score, created_at FROM quiz_results ORDER BY id`,
		},
		{
			name:  "by quiz",
			query: domain.ResultQuery{QuizID: "logic"},
			sql:   `SELECT user_id, user_name, quiz_id, quiz_tag, score, created_at FROM quiz_results WHERE quiz_id = $1 ORDER BY id`,
			args:  []any{"logic"},
		},
		{
			name:  "history",
			query: domain.ResultQuery{UserID: "u1", NewestFirst: true},
			sql:   `SELECT user_id, user_name, quiz_id, quiz_tag, score, created_at FROM quiz_results WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
			args:  []any{"u1"},
		},
		{
			name:  "both",
			query: domain.ResultQuery{QuizID: "logic", UserID: "u1"},
			sql:   `SELECT user_id, user_name, quiz_id, quiz_tag, score, created_at FROM quiz_results WHERE quiz_id = $1 AND user_id = $2 ORDER BY id`,
			args:  []any{"logic", "u1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildListQuery(tt.query)
			if sql != tt.sql {
				t.Fatalf("sql = %q, want %q", sql, tt.sql)
			}
			if !reflect.DeepEqual(args, tt.args) {
				t.Fatalf("args = %v, want %v", args, tt.args)
			}
		})
	}
}
