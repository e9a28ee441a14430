// ABOUTME: Fire-and-forget user notifications (toasts) for CLI and tests.
// ABOUTME: Console renders with fatih/color; Recorder captures for assertions.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Severity classifies a notification.
type Severity string

const (
	Info        Severity = "info"
	Success     Severity = "success"
	Warning     Severity = "warning"
	Destructive Severity = "destructive"
)

// Notifier shows a user-visible message. Callers never depend on the outcome.
type Notifier interface {
	Notify(title, description string, severity Severity)
}

// Console writes notifications to a terminal with severity colours.
type Console struct {
	w io.Writer
}

// NewConsole returns a Console writing to w, or stdout when w is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Notify prints the title line in the severity colour and the description faint.
func (c *Console) Notify(title, description string, severity Severity) {
	var mark *color.Color
	prefix := "•"
	switch severity {
	case Success:
		mark, prefix = color.New(color.FgGreen), "✓"
	case Warning:
		mark, prefix = color.New(color.FgYellow), "⚠"
	case Destructive:
		mark, prefix = color.New(color.FgRed), "✗"
	default:
		mark = color.New(color.FgCyan)
	}

	_, _ = mark.Fprintf(c.w, "%s %s\n", prefix, title)
	if description != "" {
		_, _ = fmt.Fprintf(c.w, "  %s\n", color.New(color.Faint).Sprint(description))
	}
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(string, string, Severity) {}

// Message is a captured notification.
type Message struct {
	Title       string
	Description string
	Severity    Severity
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify records the message.
func (r *Recorder) Notify(title, description string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Title: title, Description: description, Severity: severity})
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the most recent message.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}
