package app

import "qr-quiz-service/internal/domain"

const (
	highGradeThreshold   = 80.0
	mediumGradeThreshold = 60.0
)

// Score compares each question's correct option with the selection at the same position.
// Unanswered and out-of-range selections count as incorrect. Score is pure.
func Score(quiz domain.Quiz, answers domain.AnswerSelection) domain.ScoreResult {
	result := domain.ScoreResult{
		TotalQuestions:     len(quiz.Questions),
		PerQuestionCorrect: make([]bool, len(quiz.Questions)),
	}
	for i, question := range quiz.Questions {
		selected, ok := answers[i]
		if ok && selected == question.CorrectOption {
			result.PerQuestionCorrect[i] = true
			result.CorrectCount++
		}
	}
	return result
}

// GradeFor maps a percentage to its band: >=80 high, >=60 medium, otherwise low.
func GradeFor(percentage float64) domain.Grade {
	switch {
	case percentage >= highGradeThreshold:
		return domain.GradeHigh
	case percentage >= mediumGradeThreshold:
		return domain.GradeMedium
	default:
		return domain.GradeLow
	}
}

// Review builds the per-question breakdown for the results view.
func Review(quiz domain.Quiz, answers domain.AnswerSelection, score domain.ScoreResult) []domain.QuestionReview {
	review := make([]domain.QuestionReview, 0, len(quiz.Questions))
	for i, question := range quiz.Questions {
		item := domain.QuestionReview{
			Question:      question.Text,
			Correct:       i < len(score.PerQuestionCorrect) && score.PerQuestionCorrect[i],
			CorrectOption: question.CorrectOption,
			CorrectText:   optionText(question, question.CorrectOption),
		}
		if selected, ok := answers[i]; ok {
			s := selected
			item.Selected = &s
			item.SelectedText = optionText(question, selected)
		}
		review = append(review, item)
	}
	return review
}

func optionText(question domain.Question, index int) string {
	if index < 0 || index >= len(question.Options) {
		return ""
	}
	return question.Options[index]
}

func buildCompletion(quiz domain.Quiz, answers domain.AnswerSelection) domain.Completion {
	score := Score(quiz, answers)
	percentage := score.Percentage()
	return domain.Completion{
		QuizID:     quiz.ID,
		Score:      score,
		Percentage: percentage,
		Grade:      GradeFor(percentage),
		Review:     Review(quiz, answers, score),
	}
}
