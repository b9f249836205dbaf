package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/validation"
)

// Storage keys shared by every identity store implementation.
const (
	KeyUserID          = "quiz_user_id"
	KeyUserName        = "quiz_user_name"
	KeyCompletedPrefix = "quiz_completed_"
)

// CompletedKey is the key of a quiz's completion flag.
func CompletedKey(quizID string) string {
	return KeyCompletedPrefix + quizID
}

// IdentityStore holds one device profile's anonymous id, display name and completion flags.
type IdentityStore interface {
	// UserID returns the profile's id, generating and persisting one on first use.
	UserID(ctx context.Context) (string, error)
	UserName(ctx context.Context) (string, bool, error)
	SetUserName(ctx context.Context, name string) error
	IsQuizCompleted(ctx context.Context, quizID string) (bool, error)
	MarkQuizCompleted(ctx context.Context, quizID string) error
}

// IdentityProvider opens the identity store of a device profile.
type IdentityProvider interface {
	ForProfile(profile string) IdentityStore
}

type nameInput struct {
	Name string `json:"name" validate:"required,min=2"`
}

var nameValidator = validation.New()

// NormalizeName trims a display name and checks it is at least two characters long.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if err := nameValidator.Validate(nameInput{Name: trimmed}); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidName, err)
	}
	return trimmed, nil
}

// KeyValue is the durable string store behind an identity profile.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetIfAbsent stores value unless key exists and returns whichever value is stored.
	SetIfAbsent(ctx context.Context, key, value string) (string, error)
}

// KVIdentity implements IdentityStore over any KeyValue.
type KVIdentity struct {
	kv    KeyValue
	newID func() string
}

func NewKVIdentity(kv KeyValue) *KVIdentity {
	return &KVIdentity{kv: kv, newID: uuid.NewString}
}

func (s *KVIdentity) UserID(ctx context.Context) (string, error) {
	if id, ok, err := s.kv.Get(ctx, KeyUserID); err != nil || ok {
		return id, err
	}
	return s.kv.SetIfAbsent(ctx, KeyUserID, s.newID())
}

func (s *KVIdentity) UserName(ctx context.Context) (string, bool, error) {
	name, ok, err := s.kv.Get(ctx, KeyUserName)
	if err != nil || !ok || name == "" {
		return "", false, err
	}
	return name, true, nil
}

func (s *KVIdentity) SetUserName(ctx context.Context, name string) error {
	return s.kv.Set(ctx, KeyUserName, name)
}

func (s *KVIdentity) IsQuizCompleted(ctx context.Context, quizID string) (bool, error) {
	v, _, err := s.kv.Get(ctx, CompletedKey(quizID))
	return v == "true", err
}

func (s *KVIdentity) MarkQuizCompleted(ctx context.Context, quizID string) error {
	return s.kv.Set(ctx, CompletedKey(quizID), "true")
}
