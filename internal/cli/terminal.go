package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/catalog"
	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/qr"
	"qr-quiz-service/internal/validation"
)

// terminal drives app.Flow from line-based input.
type terminal struct {
	service  *app.QuizService
	catalog  *catalog.Catalog
	identity app.IdentityStore
	in       *bufio.Scanner
	out      io.Writer
	flow     app.Flow
	board    app.LeaderboardView
}

func newTerminal(service *app.QuizService, c *catalog.Catalog, identity app.IdentityStore, in io.Reader, out io.Writer) *terminal {
	return &terminal{
		service:  service,
		catalog:  c,
		identity: identity,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops until the player quits or input ends.
func (t *terminal) Run(ctx context.Context) error {
	name, _, err := t.identity.UserName(ctx)
	if err != nil {
		return err
	}
	t.flow = app.NewFlow(name)

	for {
		var quit bool
		switch t.flow.View {
		case app.ViewNameSetup:
			quit, err = t.nameSetup(ctx)
		case app.ViewQuizList:
			quit, err = t.quizList(ctx)
		case app.ViewQuiz:
			quit, err = t.question(ctx)
		case app.ViewResults:
			quit = t.results()
		case app.ViewLeaderboard:
			quit = t.leaderboard(ctx)
		}
		if err != nil || quit {
			return err
		}
	}
}

func (t *terminal) prompt(label string) (string, bool) {
	fmt.Fprint(t.out, label)
	if !t.in.Scan() {
		fmt.Fprintln(t.out)
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *terminal) nameSetup(ctx context.Context) (bool, error) {
	fmt.Fprintln(t.out, "Welcome! Choose a display name for the leaderboard.")
	line, ok := t.prompt("name> ")
	if !ok {
		return true, nil
	}
	next, err := t.flow.SetName(line)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			fmt.Fprintf(t.out, "name %s\n", verr.Fields["name"])
			return false, nil
		}
		return false, err
	}
	if err := t.identity.SetUserName(ctx, next.UserName); err != nil {
		return false, err
	}
	t.flow = next
	return false, nil
}

func (t *terminal) quizList(ctx context.Context) (bool, error) {
	quizzes, err := t.service.Quizzes(ctx, t.identity)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(t.out, "\nHello %s! Scan a QR code or pick a quiz:\n", t.flow.UserName)
	for i, q := range quizzes {
		mark := " "
		if q.Completed {
			mark = "x"
		}
		fmt.Fprintf(t.out, "  %d) [%s] %s (%s)\n", i+1, mark, q.Title, q.Tag)
	}
	fmt.Fprintln(t.out, "  scan <code> | image <file> | l leaderboard | q quit")

	line, ok := t.prompt("> ")
	switch {
	case !ok || line == "q":
		return true, nil
	case line == "l":
		t.flow, err = t.flow.ShowLeaderboard()
		return false, err
	case strings.HasPrefix(line, "scan "):
		t.startScanned(t.service.ResolveQR(strings.TrimPrefix(line, "scan ")))
	case strings.HasPrefix(line, "image "):
		t.startScanned(t.scanImage(strings.TrimSpace(strings.TrimPrefix(line, "image "))))
	default:
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(quizzes) {
			fmt.Fprintf(t.out, "pick a number between 1 and %d\n", len(quizzes))
			return false, nil
		}
		t.flow, err = t.flow.SelectQuiz(quizzes[n-1].Quiz)
		return false, err
	}
	return false, nil
}

func (t *terminal) scanImage(path string) (domain.Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Quiz{}, err
	}
	defer f.Close()
	text, err := qr.Decode(f)
	if err != nil {
		return domain.Quiz{}, err
	}
	return t.service.ResolveQR(text)
}

func (t *terminal) startScanned(quiz domain.Quiz, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQRCode) {
			fmt.Fprintln(t.out, "invalid QR code")
			return
		}
		fmt.Fprintf(t.out, "scan failed: %v\n", err)
		return
	}
	t.flow, _ = t.flow.SelectQuiz(quiz)
}

func (t *terminal) question(ctx context.Context) (bool, error) {
	quiz := t.flow.Quiz
	q := quiz.Questions[t.flow.Current]
	fmt.Fprintf(t.out, "\n%s - question %d/%d\n%s\n", quiz.Title, t.flow.Current+1, len(quiz.Questions), q.Text)
	for i, option := range q.Options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, option)
	}

	line, ok := t.prompt("answer (b to abort)> ")
	if !ok {
		return true, nil
	}
	if line == "b" {
		t.flow = t.flow.Back()
		return false, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		n = 0
	}
	next, err := t.flow.Answer(n - 1)
	if err != nil {
		fmt.Fprintf(t.out, "pick a number between 1 and %d\n", len(q.Options))
		return false, nil
	}
	next, done, err := next.Next()
	if err != nil {
		return false, err
	}
	if done {
		completion, err := t.service.Complete(ctx, t.identity, quiz.ID, next.Answers)
		if err != nil {
			return false, err
		}
		if next, err = next.Finish(completion); err != nil {
			return false, err
		}
	}
	t.flow = next
	return false, nil
}

var gradeMessages = map[domain.Grade]string{
	domain.GradeHigh:   "Excellent!",
	domain.GradeMedium: "Well done!",
	domain.GradeLow:    "Keep practicing!",
}

func (t *terminal) results() bool {
	c := t.flow.Completion
	fmt.Fprintf(t.out, "\n%s %d/%d correct (%.0f%%)\n", gradeMessages[c.Grade], c.Score.CorrectCount, c.Score.TotalQuestions, c.Percentage)
	for i, r := range c.Review {
		mark := "x"
		if r.Correct {
			mark = "ok"
		}
		selected := "-"
		if r.Selected != nil {
			selected = r.SelectedText
		}
		fmt.Fprintf(t.out, "  %d. [%s] %s\n     yours: %s | correct: %s\n", i+1, mark, r.Question, selected, r.CorrectText)
	}
	if !c.Submitted {
		fmt.Fprintln(t.out, "Your result could not be saved.")
	}

	line, ok := t.prompt("Enter for quizzes, l for leaderboard> ")
	if !ok {
		return true
	}
	t.flow = t.flow.Back()
	if line == "l" {
		t.flow, _ = t.flow.ShowLeaderboard()
	}
	return false
}

func (t *terminal) leaderboard(ctx context.Context) bool {
	ticket := t.board.Begin(t.flow.LeaderboardFilter, 0)
	lb, err := t.service.Leaderboard(ctx, ticket.QuizID)
	t.board.Resolve(ticket, lb, err)

	state := t.board.Snapshot()
	title := "all quizzes"
	if state.QuizID != "" {
		if quiz, err := t.catalog.Get(state.QuizID); err == nil {
			title = quiz.Title
		}
	}
	fmt.Fprintf(t.out, "\nLeaderboard (%s)\n", title)
	if state.Failed {
		fmt.Fprintln(t.out, "Leaderboard unavailable.")
	} else {
		renderEntries(t.out, state.Entries, questionCount(t.catalog, state.QuizID))
	}

	line, ok := t.prompt("quiz id or all to filter, Enter to go back> ")
	switch {
	case !ok:
		return true
	case line == "":
		t.flow = t.flow.Back()
	case line == "all":
		t.flow, _ = t.flow.FilterLeaderboard("")
	default:
		if _, err := t.service.Quiz(line); err != nil {
			fmt.Fprintf(t.out, "unknown quiz %q\n", line)
			return false
		}
		t.flow, _ = t.flow.FilterLeaderboard(line)
	}
	return false
}

// questionCount is the denominator of the average column; 0 when the quizzes differ in length.
func questionCount(c *catalog.Catalog, quizID string) int {
	if quizID != "" {
		quiz, err := c.Get(quizID)
		if err != nil {
			return 0
		}
		return len(quiz.Questions)
	}
	count := 0
	for _, q := range c.List() {
		if count != 0 && len(q.Questions) != count {
			return 0
		}
		count = len(q.Questions)
	}
	return count
}

func renderEntries(out io.Writer, entries []domain.LeaderboardEntry, questions int) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No results yet.")
		return
	}
	for _, e := range entries {
		avg := fmt.Sprintf("Ø %.1f", e.AverageScore)
		if questions > 0 {
			avg += "/" + strconv.Itoa(questions)
		}
		fmt.Fprintf(out, "%3d. %-20s %4d  %d quizzes  %s\n", e.Rank, e.UserName, e.TotalScore, e.QuizCount, avg)
	}
}
