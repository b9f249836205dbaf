package app

import (
	"sync"

	"qr-quiz-service/internal/domain"
)

// Ticket identifies one leaderboard fetch. Request is the caller's own
// correlation number for the filter change that started it.
type Ticket struct {
	Seq     uint64
	Request uint64
	QuizID  string
}

// ViewState is what a leaderboard screen renders.
type ViewState struct {
	Seq     uint64
	Request uint64
	QuizID  string
	Entries []domain.LeaderboardEntry
	Loading bool
	Failed  bool
}

// LeaderboardView tracks the latest requested fetch and ignores responses to
// superseded ones, so switching filters quickly never shows an older filter's data.
type LeaderboardView struct {
	mu    sync.Mutex
	state ViewState
}

// Begin starts a fetch for quizID and returns its ticket. Entries of the
// previous filter are dropped.
func (v *LeaderboardView) Begin(quizID string, request uint64) Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.Seq++
	v.state.Request = request
	v.state.QuizID = quizID
	v.state.Entries = nil
	v.state.Loading = true
	v.state.Failed = false
	return Ticket{Seq: v.state.Seq, Request: request, QuizID: quizID}
}

// Resolve applies a fetch outcome and returns the committed state. The bool is
// false when the ticket is stale. A failed fetch leaves the view empty with
// loading cleared.
func (v *LeaderboardView) Resolve(t Ticket, lb domain.Leaderboard, err error) (ViewState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t.Seq != v.state.Seq {
		return ViewState{}, false
	}
	v.state.Loading = false
	if err != nil {
		v.state.Entries = nil
		v.state.Failed = true
		return v.copyState(), true
	}
	v.state.Entries = lb.Entries
	v.state.Failed = false
	return v.copyState(), true
}

// Apply replaces the entries with a pushed snapshot when it matches the current
// filter and returns the committed state.
func (v *LeaderboardView) Apply(lb domain.Leaderboard) (ViewState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if lb.QuizID != v.state.QuizID {
		return ViewState{}, false
	}
	v.state.Entries = lb.Entries
	v.state.Failed = false
	return v.copyState(), true
}

// Snapshot returns a copy of the current state.
func (v *LeaderboardView) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.copyState()
}

// copyState must be called with mu held.
func (v *LeaderboardView) copyState() ViewState {
	out := v.state
	out.Entries = append([]domain.LeaderboardEntry(nil), v.state.Entries...)
	return out
}
