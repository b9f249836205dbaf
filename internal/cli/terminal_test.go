package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/catalog"
	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/infra/memory"
)

func TestTerminalPlaysQuizToLeaderboard(t *testing.T) {
	ctx := context.Background()
	c, results, service := newTerminalService(t)
	identity := app.NewKVIdentity(memory.NewKeyValue())

	script := strings.Join([]string{
		"A",         // too short
		"Alice",     // name accepted
		"scan nope", // unknown code
		"2",         // logic
		"9",         // out of range
		"3", "4", "2", "3", "3",
		"l",     // results -> leaderboard
		"logic", // filter
		"",      // back to list
		"q",
	}, "\n") + "\n"
	var out bytes.Buffer
	if err := newTerminal(service, c, identity, strings.NewReader(script), &out).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"name must be at least 2 characters",
		"invalid QR code",
		"pick a number between 1 and 4",
		"Excellent! 5/5 correct (100%)",
		"Leaderboard (Logik & Denken)",
		"Ø 5.0/5",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}

	records, _ := results.List(ctx, domain.ResultQuery{})
	if len(records) != 1 || records[0].UserName != "Alice" || records[0].Score != 5 {
		t.Fatalf("unexpected records %+v", records)
	}
	if done, _ := identity.IsQuizCompleted(ctx, "logic"); !done {
		t.Fatalf("logic must be marked completed")
	}
}

func TestTerminalAbortDiscardsAnswers(t *testing.T) {
	ctx := context.Background()
	c, results, service := newTerminalService(t)
	identity := app.NewKVIdentity(memory.NewKeyValue())
	if err := identity.SetUserName(ctx, "Bob"); err != nil {
		t.Fatalf("set name: %v", err)
	}

	var out bytes.Buffer
	script := "scan  sports \n3\nb\nq\n"
	if err := newTerminal(service, c, identity, strings.NewReader(script), &out).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Hello Bob!") {
		t.Fatalf("stored name must skip setup:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Sport & Trivia - question 2/5") {
		t.Fatalf("scan must open the sports quiz:\n%s", out.String())
	}
	if records, _ := results.List(ctx, domain.ResultQuery{}); len(records) != 0 {
		t.Fatalf("aborted quiz must not submit, got %+v", records)
	}
}

func TestTerminalStopsAtEndOfInput(t *testing.T) {
	c, _, service := newTerminalService(t)
	var out bytes.Buffer
	err := newTerminal(service, c, app.NewKVIdentity(memory.NewKeyValue()), strings.NewReader(""), &out).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestQuestionCount(t *testing.T) {
	c, _, _ := newTerminalService(t)
	if got := questionCount(c, ""); got != 5 {
		t.Fatalf("all quizzes: got %d", got)
	}
	if got := questionCount(c, "history"); got != 0 {
		t.Fatalf("unknown quiz: got %d", got)
	}

	mixed, err := catalog.New([]domain.Quiz{
		{ID: "a", Title: "A", Tag: "t", Questions: []domain.Question{{Text: "q", Options: []string{"x", "y"}}}},
		{ID: "b", Title: "B", Tag: "t", Questions: []domain.Question{
			{Text: "q", Options: []string{"x", "y"}},
			{Text: "r", Options: []string{"x", "y"}},
		}},
	}, nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if got := questionCount(mixed, ""); got != 0 {
		t.Fatalf("mixed lengths: got %d", got)
	}
	if got := questionCount(mixed, "b"); got != 2 {
		t.Fatalf("quiz b: got %d", got)
	}
}

func newTerminalService(t *testing.T) (*catalog.Catalog, *memory.ResultStore, *app.QuizService) {
	t.Helper()
	c, err := catalog.New(catalog.Builtin(), nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	results := memory.NewResultStore()
	return c, results, app.NewQuizService(c, results, nil)
}
