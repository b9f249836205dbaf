package domain

import "time"

// Question is a multiple-choice question with exactly one correct option.
type Question struct {
	Text          string   `json:"text" yaml:"text" validate:"required"`
	Options       []string `json:"options" yaml:"options" validate:"min=2,dive,required"`
	CorrectOption int      `json:"correctOption" yaml:"correct_option" validate:"gte=0"`
}

// Quiz is an ordered, immutable set of questions plus its catalog metadata.
type Quiz struct {
	ID          string     `json:"id" yaml:"id" validate:"required"`
	Title       string     `json:"title" yaml:"title" validate:"required"`
	Tag         string     `json:"tag" yaml:"tag" validate:"required"`
	Description string     `json:"description,omitempty" yaml:"description"`
	Color       string     `json:"color,omitempty" yaml:"color"`
	Questions   []Question `json:"questions" yaml:"questions" validate:"min=1,dive"`
}

// AnswerSelection maps a 0-based question position to the selected option index.
// A missing key means the question is unanswered.
type AnswerSelection map[int]int

// Clone returns an independent copy of the selection.
func (a AnswerSelection) Clone() AnswerSelection {
	out := make(AnswerSelection, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ScoreResult is derived from a Quiz and an AnswerSelection.
type ScoreResult struct {
	CorrectCount       int    `json:"correctCount"`
	TotalQuestions     int    `json:"totalQuestions"`
	PerQuestionCorrect []bool `json:"perQuestionCorrect"`
}

// Percentage returns the share of correct answers in [0, 100].
func (s ScoreResult) Percentage() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.TotalQuestions) * 100
}

// Grade is the presentation band of a percentage score.
type Grade string

const (
	GradeHigh   Grade = "high"
	GradeMedium Grade = "medium"
	GradeLow    Grade = "low"
)

// ResultRecord is one persisted quiz attempt. Records are append-only.
type ResultRecord struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	QuizID    string    `json:"quiz_id"`
	QuizTag   string    `json:"quiz_tag"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// ResultQuery narrows a result fetch. Empty fields do not filter.
type ResultQuery struct {
	QuizID      string
	UserID      string
	NewestFirst bool
}

// LeaderboardEntry is one ranked row, grouped by display name.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	UserName     string  `json:"userName"`
	TotalScore   int     `json:"totalScore"`
	QuizCount    int     `json:"quizCount"`
	AverageScore float64 `json:"averageScore"`
}

// Leaderboard is a ranked snapshot for one filter ("" means all quizzes).
type Leaderboard struct {
	QuizID    string             `json:"quizId"`
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// HistoryItem is one of the caller's own past results.
type HistoryItem struct {
	Record         ResultRecord `json:"record"`
	QuizTitle      string       `json:"quizTitle"`
	TotalQuestions int          `json:"totalQuestions"`
	Grade          Grade        `json:"grade"`
}

// QuestionReview is the per-question breakdown shown after completion.
type QuestionReview struct {
	Question      string `json:"question"`
	Selected      *int   `json:"selected,omitempty"`
	SelectedText  string `json:"selectedText,omitempty"`
	Correct       bool   `json:"correct"`
	CorrectOption int    `json:"correctOption"`
	CorrectText   string `json:"correctText"`
}

// Completion is what the results view renders after a quiz is finished.
type Completion struct {
	QuizID     string           `json:"quizId"`
	Score      ScoreResult      `json:"score"`
	Percentage float64          `json:"percentage"`
	Grade      Grade            `json:"grade"`
	Review     []QuestionReview `json:"review"`
	Submitted  bool             `json:"submitted"`
}
