package app

import (
	"errors"

	"qr-quiz-service/internal/domain"
)

// View is the screen a player is currently on.
type View string

const (
	ViewNameSetup   View = "name-setup"
	ViewQuizList    View = "quiz-list"
	ViewQuiz        View = "quiz"
	ViewResults     View = "results"
	ViewLeaderboard View = "leaderboard"
)

var (
	// ErrInvalidTransition is returned when a transition is not allowed from the current view.
	ErrInvalidTransition = errors.New("transition not allowed in current view")
	// ErrUnanswered is returned by Next while the current question has no selection.
	ErrUnanswered = errors.New("current question is unanswered")
	// ErrOptionOutOfRange is returned when an answer does not index an option.
	ErrOptionOutOfRange = errors.New("option out of range")
)

// Flow is the player's navigation state. Transitions return a new Flow and
// leave the receiver untouched.
type Flow struct {
	View              View
	UserName          string
	Quiz              domain.Quiz
	Current           int
	Answers           domain.AnswerSelection
	Completion        *domain.Completion
	LeaderboardFilter string
}

// NewFlow starts on the quiz list when a name was stored earlier, otherwise on name setup.
func NewFlow(storedName string) Flow {
	if storedName != "" {
		return Flow{View: ViewQuizList, UserName: storedName}
	}
	return Flow{View: ViewNameSetup}
}

func (f Flow) SetName(name string) (Flow, error) {
	if f.View != ViewNameSetup {
		return f, ErrInvalidTransition
	}
	normalized, err := NormalizeName(name)
	if err != nil {
		return f, err
	}
	return Flow{View: ViewQuizList, UserName: normalized}, nil
}

func (f Flow) SelectQuiz(quiz domain.Quiz) (Flow, error) {
	if f.View != ViewQuizList {
		return f, ErrInvalidTransition
	}
	return Flow{
		View:     ViewQuiz,
		UserName: f.UserName,
		Quiz:     quiz,
		Answers:  domain.AnswerSelection{},
	}, nil
}

// Answer selects an option for the current question, replacing any earlier selection.
func (f Flow) Answer(option int) (Flow, error) {
	if f.View != ViewQuiz {
		return f, ErrInvalidTransition
	}
	if option < 0 || option >= len(f.Quiz.Questions[f.Current].Options) {
		return f, ErrOptionOutOfRange
	}
	next := f
	next.Answers = f.Answers.Clone()
	next.Answers[f.Current] = option
	return next, nil
}

// Selected returns the option chosen for the current question.
func (f Flow) Selected() (int, bool) {
	option, ok := f.Answers[f.Current]
	return option, ok
}

// IsLastQuestion reports whether the current question is the final one.
func (f Flow) IsLastQuestion() bool {
	return f.Current == len(f.Quiz.Questions)-1
}

// Next advances to the following question. On the last question it reports
// done=true and leaves the flow in place so the caller can complete the quiz.
func (f Flow) Next() (next Flow, done bool, err error) {
	if f.View != ViewQuiz {
		return f, false, ErrInvalidTransition
	}
	if _, ok := f.Selected(); !ok {
		return f, false, ErrUnanswered
	}
	if f.IsLastQuestion() {
		return f, true, nil
	}
	next = f
	next.Current++
	return next, false, nil
}

// Finish moves to the results view with the computed completion.
func (f Flow) Finish(completion domain.Completion) (Flow, error) {
	if f.View != ViewQuiz {
		return f, ErrInvalidTransition
	}
	next := f
	next.View = ViewResults
	next.Completion = &completion
	return next, nil
}

func (f Flow) ShowLeaderboard() (Flow, error) {
	if f.View != ViewQuizList {
		return f, ErrInvalidTransition
	}
	return Flow{View: ViewLeaderboard, UserName: f.UserName}, nil
}

// FilterLeaderboard switches the leaderboard filter; "" means all quizzes.
func (f Flow) FilterLeaderboard(quizID string) (Flow, error) {
	if f.View != ViewLeaderboard {
		return f, ErrInvalidTransition
	}
	next := f
	next.LeaderboardFilter = quizID
	return next, nil
}

// Back returns to the quiz list, discarding any in-progress answers.
func (f Flow) Back() Flow {
	if f.View == ViewNameSetup {
		return f
	}
	return Flow{View: ViewQuizList, UserName: f.UserName}
}
