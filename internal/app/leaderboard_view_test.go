package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/domain"
)

func TestLeaderboardViewDiscardsSupersededFetch(t *testing.T) {
	var view app.LeaderboardView

	all := view.Begin("", 1)
	logic := view.Begin("logic", 2)
	assert.True(t, view.Snapshot().Loading)

	logicBoard := domain.Leaderboard{QuizID: "logic", Entries: []domain.LeaderboardEntry{{Rank: 1, UserName: "bob", TotalScore: 4}}}
	committed, ok := view.Resolve(logic, logicBoard, nil)
	require.True(t, ok)
	assert.Equal(t, uint64(2), committed.Request)
	assert.Equal(t, "logic", committed.QuizID)
	assert.Equal(t, logicBoard.Entries, committed.Entries)

	// The older "all" fetch resolves late and must not overwrite the logic view.
	allBoard := domain.Leaderboard{Entries: []domain.LeaderboardEntry{{Rank: 1, UserName: "alice", TotalScore: 9}}}
	_, ok = view.Resolve(all, allBoard, nil)
	assert.False(t, ok)

	state := view.Snapshot()
	assert.Equal(t, "logic", state.QuizID)
	assert.False(t, state.Loading)
	assert.Equal(t, logicBoard.Entries, state.Entries)
}

func TestLeaderboardViewFailureClearsData(t *testing.T) {
	var view app.LeaderboardView

	first := view.Begin("", 0)
	view.Resolve(first, domain.Leaderboard{Entries: []domain.LeaderboardEntry{{UserName: "a"}}}, nil)

	second := view.Begin("", 0)
	committed, ok := view.Resolve(second, domain.Leaderboard{}, errors.New("backend down"))
	require.True(t, ok)
	assert.True(t, committed.Failed)

	state := view.Snapshot()
	assert.False(t, state.Loading)
	assert.True(t, state.Failed)
	assert.Empty(t, state.Entries)
}

func TestLeaderboardViewApplyMatchesFilter(t *testing.T) {
	var view app.LeaderboardView
	view.Begin("sports", 4)

	_, ok := view.Apply(domain.Leaderboard{QuizID: "logic", Entries: []domain.LeaderboardEntry{{UserName: "a"}}})
	assert.False(t, ok)
	assert.Empty(t, view.Snapshot().Entries)

	pushed := []domain.LeaderboardEntry{{Rank: 1, UserName: "b", TotalScore: 3}}
	committed, ok := view.Apply(domain.Leaderboard{QuizID: "sports", Entries: pushed})
	require.True(t, ok)
	assert.Equal(t, uint64(4), committed.Request)
	assert.Equal(t, pushed, committed.Entries)
	assert.Equal(t, pushed, view.Snapshot().Entries)
}

func TestLeaderboardViewBeginAfterResolveExposesNoOldEntries(t *testing.T) {
	var view app.LeaderboardView

	all := view.Begin("", 1)
	_, ok := view.Resolve(all, domain.Leaderboard{Entries: []domain.LeaderboardEntry{{Rank: 1, UserName: "alice", TotalScore: 9}}}, nil)
	require.True(t, ok)

	view.Begin("logic", 2)

	state := view.Snapshot()
	assert.Equal(t, "logic", state.QuizID)
	assert.Equal(t, uint64(2), state.Request)
	assert.True(t, state.Loading)
	assert.Empty(t, state.Entries)
}

func TestLeaderboardViewCommittedStateIsDetached(t *testing.T) {
	var view app.LeaderboardView

	ticket := view.Begin("", 1)
	committed, ok := view.Resolve(ticket, domain.Leaderboard{Entries: []domain.LeaderboardEntry{{Rank: 1, UserName: "alice", TotalScore: 9}}}, nil)
	require.True(t, ok)

	// A later filter change must not alter a state already handed out.
	view.Begin("logic", 2)
	assert.Equal(t, "", committed.QuizID)
	assert.Equal(t, uint64(1), committed.Request)
	require.Len(t, committed.Entries, 1)
	assert.Equal(t, "alice", committed.Entries[0].UserName)
}
