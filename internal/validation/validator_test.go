package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/validation"
)

type nameRequest struct {
	Name string `json:"name" validate:"required,min=2,max=40"`
}

func TestValidateName(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(nameRequest{Name: "Al"}))

	tests := []struct {
		name    string
		req     nameRequest
		message string
	}{
		{name: "empty", req: nameRequest{}, message: "is required"},
		{name: "too short", req: nameRequest{Name: "A"}, message: "must be at least 2 characters"},
		{name: "single rune counts once", req: nameRequest{Name: "Ä"}, message: "must be at least 2 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			var verr *validation.Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Fields["name"])
		})
	}
}

func TestValidateQuestionCorrectOptionRange(t *testing.T) {
	v := validation.New()

	quiz := domain.Quiz{
		ID:    "q",
		Title: "Quiz",
		Tag:   "Tag",
		Questions: []domain.Question{
			{Text: "ok", Options: []string{"a", "b"}, CorrectOption: 1},
			{Text: "bad", Options: []string{"a", "b"}, CorrectOption: 2},
		},
	}
	err := v.Validate(quiz)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must index one of the 2 options", verr.Fields["questions[1].correctOption"])
	assert.Len(t, verr.Fields, 1)
}

func TestValidateQuizNeedsQuestionsAndOptions(t *testing.T) {
	v := validation.New()

	err := v.Validate(domain.Quiz{ID: "q", Title: "Quiz", Tag: "Tag"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must contain at least 1 items", verr.Fields["questions"])

	err = v.Validate(domain.Quiz{ID: "q", Title: "Quiz", Tag: "Tag", Questions: []domain.Question{
		{Text: "one option", Options: []string{"a"}},
	}})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must contain at least 2 items", verr.Fields["questions[0].options"])
}
