package memory

import (
	"context"
	"testing"
)

func TestIdentityProviderIsolatesProfiles(t *testing.T) {
	ctx := context.Background()
	provider := NewIdentityProvider()

	a := provider.ForProfile("device-a")
	b := provider.ForProfile("device-b")

	idA, err := a.UserID(ctx)
	if err != nil || idA == "" {
		t.Fatalf("user id: %q %v", idA, err)
	}
	again, _ := provider.ForProfile("device-a").UserID(ctx)
	if again != idA {
		t.Fatalf("expected stable id %q, got %q", idA, again)
	}
	idB, _ := b.UserID(ctx)
	if idB == idA {
		t.Fatalf("expected distinct ids per profile")
	}

	if _, ok, _ := a.UserName(ctx); ok {
		t.Fatalf("expected no name before setup")
	}
	if err := a.SetUserName(ctx, "Alice"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if name, ok, _ := a.UserName(ctx); !ok || name != "Alice" {
		t.Fatalf("expected Alice, got %q %v", name, ok)
	}

	if err := a.MarkQuizCompleted(ctx, "logic"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if done, _ := a.IsQuizCompleted(ctx, "logic"); !done {
		t.Fatalf("expected logic completed")
	}
	if done, _ := b.IsQuizCompleted(ctx, "logic"); done {
		t.Fatalf("completion leaked across profiles")
	}
}
