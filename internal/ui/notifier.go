package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Outcome is the answer to a confirmation request
type Outcome int

const (
	// Dismissed means the prompt closed without an answer
	Dismissed Outcome = iota
	Confirmed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "dismissed"
	}
}

// Level classifies a notice
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier asks the user to confirm actions and shows notices
type Notifier interface {
	Confirm(ctx context.Context, message string) Outcome
	Notify(level Level, message string)
}

// Terminal is a Notifier reading answers from in and writing to out
type Terminal struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// NewTerminal creates a terminal notifier. With assumeYes every confirmation
// succeeds without reading input.
func NewTerminal(in io.Reader, out io.Writer, assumeYes bool) *Terminal {
	return &Terminal{
		in:        bufio.NewReader(in),
		out:       out,
		assumeYes: assumeYes,
	}
}

// Confirm prints message and reads a y/n answer. End of input or a
// cancelled context count as Dismissed.
func (t *Terminal) Confirm(ctx context.Context, message string) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "%s [y/N]: ", message)
	if t.assumeYes {
		fmt.Fprintln(t.out, "y")
		return Confirmed
	}

	if ctx.Err() != nil {
		fmt.Fprintln(t.out)
		return Dismissed
	}

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return Dismissed
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return Confirmed
	default:
		return Cancelled
	}
}

// Notify writes a one-off notice
func (t *Terminal) Notify(level Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "[%s] %s\n", level, message)
}
