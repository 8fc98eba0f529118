package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aih-go/internal/domain"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input    string
		wantKind choiceKind
		wantIdx  int
	}{
		{"", choiceQuit, 0},
		{"  ", choiceQuit, 0},
		{"0", choiceQuit, 0},
		{"00", choiceQuit, 0},
		{"q", choiceQuit, 0},
		{"Q", choiceQuit, 0},
		{"r", choiceRegenerate, 0},
		{" R ", choiceRegenerate, 0},
		{"c", choiceComment, 0},
		{"1", choiceSelect, 0},
		{"3", choiceSelect, 2},
		{"4", choiceInvalid, 0},
		{"-1", choiceInvalid, 0},
		{"+1", choiceInvalid, 0},
		{"-0", choiceInvalid, 0},
		{" 2 ", choiceSelect, 1},
		{"1.5", choiceInvalid, 0},
		{"x", choiceInvalid, 0},
		{"regenerate", choiceInvalid, 0},
	}

	for _, tt := range tests {
		kind, idx := parseChoice(tt.input, 3)
		assert.Equal(t, tt.wantKind, kind, "input %q", tt.input)
		assert.Equal(t, tt.wantIdx, idx, "input %q", tt.input)
	}
}

func newTestChooser(input string) (*Chooser, *bytes.Buffer) {
	var out bytes.Buffer
	return NewChooser(NewLineReader(strings.NewReader(input)), NewRenderer(&out)), &out
}

func TestChooserOutcomes(t *testing.T) {
	suggestions := []string{"ls -lS", "du -sh *", "find . -size +1M"}
	tests := []struct {
		name  string
		input string
		want  domain.ChoiceOutcome
	}{
		{"select first", "1\n", domain.Execute{Command: "ls -lS"}},
		{"select last", "3\n", domain.Execute{Command: "find . -size +1M"}},
		{"quit on empty", "\n", domain.Quit{}},
		{"quit on eof", "", domain.Quit{}},
		{"regenerate", "r\n", domain.Regenerate{}},
		{"comment", "c\nonly hidden files\n", domain.Comment{Text: "only hidden files"}},
		{"invalid then select", "9\nfoo\n2\n", domain.Execute{Command: "du -sh *"}},
		{"zero is quit", "0\n", domain.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chooser, _ := newTestChooser(tt.input)
			got, err := chooser.Choose(context.Background(), suggestions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChooserMenuText(t *testing.T) {
	chooser, out := newTestChooser("q\n")
	_, err := chooser.Choose(context.Background(), []string{"ls -lS", "du -sh *"})
	require.NoError(t, err)

	text := out.String()
	for _, want := range []string{
		"Suggestions:",
		"  1. ls -lS",
		"  2. du -sh *",
		"Options:",
		"  Enter a number to select a command",
		"  r - Regenerate suggestions",
		"  c - Add a comment or clarification",
		"  0 or empty - Quit",
		"Your choice: ",
	} {
		assert.Contains(t, text, want)
	}
}

func TestChooserInvalidRedisplaysMenu(t *testing.T) {
	chooser, out := newTestChooser("4\n1\n")
	got, err := chooser.Choose(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, domain.Execute{Command: "a"}, got)
	assert.Equal(t, 1, strings.Count(out.String(), "Invalid choice. Please try again."))
	assert.Equal(t, 2, strings.Count(out.String(), "Suggestions:"))
}

func TestChooserEmptyCommentRedisplaysMenu(t *testing.T) {
	chooser, out := newTestChooser("c\n\nr\n")
	got, err := chooser.Choose(context.Background(), []string{"a"})
	require.NoError(t, err)

	assert.Equal(t, domain.Regenerate{}, got)
	assert.Equal(t, 2, strings.Count(out.String(), "Your choice: "))
	assert.Contains(t, out.String(), "Enter your comment or clarification: ")
	assert.NotContains(t, out.String(), "Invalid choice")
}

func TestChooserCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	chooser := NewChooser(NewLineReader(pr), NewRenderer(&out))
	_, err := chooser.Choose(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
