package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/domain"
)

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, app.Aggregate(nil, ""))
	assert.Empty(t, app.Aggregate([]domain.ResultRecord{{UserName: "a", QuizID: "x", Score: 1}}, "logic"))
}

func TestAggregateGroupsByName(t *testing.T) {
	records := []domain.ResultRecord{
		{UserID: "1", UserName: "alice", QuizID: "logic", Score: 3},
		{UserID: "2", UserName: "bob", QuizID: "sports", Score: 5},
		{UserID: "3", UserName: "alice", QuizID: "sports", Score: 2},
	}

	entries := app.Aggregate(records, "")

	assert.Equal(t, []domain.LeaderboardEntry{
		{Rank: 1, UserName: "alice", TotalScore: 5, QuizCount: 2, AverageScore: 2.5},
		{Rank: 2, UserName: "bob", TotalScore: 5, QuizCount: 1, AverageScore: 5.0},
	}, entries)
}

func TestAggregateFilterByQuiz(t *testing.T) {
	records := []domain.ResultRecord{
		{UserName: "alice", QuizID: "logic", Score: 3},
		{UserName: "alice", QuizID: "sports", Score: 5},
		{UserName: "bob", QuizID: "logic", Score: 4},
		{UserName: "carol", QuizID: "sports", Score: 1},
		{UserName: "bob", QuizID: "logic", Score: 2},
	}

	entries := app.Aggregate(records, "logic")

	assert.Equal(t, []domain.LeaderboardEntry{
		{Rank: 1, UserName: "bob", TotalScore: 6, QuizCount: 2, AverageScore: 3},
		{Rank: 2, UserName: "alice", TotalScore: 3, QuizCount: 1, AverageScore: 3},
	}, entries)
}

func TestAggregateSortsDescendingWithNameTieBreak(t *testing.T) {
	records := []domain.ResultRecord{
		{UserName: "zoe", Score: 2},
		{UserName: "mia", Score: 4},
		{UserName: "adam", Score: 2},
		{UserName: "mia", Score: 0},
	}

	entries := app.Aggregate(records, "")

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.UserName)
	}
	assert.Equal(t, []string{"mia", "adam", "zoe"}, names)
	assert.Equal(t, 2, entries[0].QuizCount)
	assert.InDelta(t, 2.0, entries[0].AverageScore, 1e-9)
}
