package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmAnswers(t *testing.T) {
	cases := map[string]Outcome{
		"y\n":     Confirmed,
		"YES\n":   Confirmed,
		"n\n":     Cancelled,
		"maybe\n": Cancelled,
		"\n":      Cancelled,
		"":        Dismissed,
		"y":       Confirmed,
	}

	for input, want := range cases {
		var out bytes.Buffer
		term := NewTerminal(strings.NewReader(input), &out, false)

		got := term.Confirm(context.Background(), "Continue?")
		assert.Equal(t, want, got, "input %q", input)
		assert.Contains(t, out.String(), "Continue? [y/N]: ")
	}
}

func TestConfirmAssumeYes(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out, true)

	assert.Equal(t, Confirmed, term.Confirm(context.Background(), "Clear?"))
}

func TestNotify(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out, false)

	term.Notify(LevelError, "Failed to create order.")
	assert.Equal(t, "[error] Failed to create order.\n", out.String())
}
