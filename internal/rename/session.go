// Package rename holds the host-independent part of the inline rename
// prompt: it tracks the edited name and reports the outcome exactly once.
//
// Everything editor-specific (focus, insert mode, selection, drawing) stays
// behind the Host interface that the caller injects.
package rename

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// ErrAlreadySubmitted is returned by Confirm, Blur and SetText once the
// session has reported its outcome.
var ErrAlreadySubmitted = errors.New("rename: already submitted")

// Host is the editor that embeds the prompt.
type Host interface {
	// ActivateInsertMode makes the parent editor accept typed text
	// (modal editors start in a normal/command mode).
	ActivateInsertMode(ctx context.Context) error
	// SelectAll selects the whole prompt text so typing replaces it.
	SelectAll(ctx context.Context) error
}

// SubmitFunc receives the outcome. ok=false means the rename was cancelled
// or the name is unchanged; name is then empty.
type SubmitFunc func(name string, ok bool)

// Option configures a Session.
type Option func(*Session)

// WithNormalization toggles NFC normalisation of the submitted name
// (enabled by default).
func WithNormalization(on bool) Option {
	return func(s *Session) { s.normalize = on }
}

// Session is one rename interaction. It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	original  string
	text      string
	host      Host
	submit    SubmitFunc
	normalize bool
	done      bool
	name      string
	ok        bool
}

// NewSession starts a session prefilled with selectedText. host may be nil
// when no editor is attached; submit may be nil when only Result is used.
func NewSession(selectedText string, host Host, submit SubmitFunc, opts ...Option) *Session {
	s := &Session{
		original:  selectedText,
		text:      selectedText,
		host:      host,
		submit:    submit,
		normalize: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount prepares the host: insert mode first, then select the prefilled text.
func (s *Session) Mount(ctx context.Context) error {
	if s.host == nil {
		return nil
	}
	if err := s.host.ActivateInsertMode(ctx); err != nil {
		return fmt.Errorf("rename: activate insert mode: %w", err)
	}
	if err := s.host.SelectAll(ctx); err != nil {
		return fmt.Errorf("rename: select all: %w", err)
	}
	return nil
}

// Original returns the text the session started with.
func (s *Session) Original() string {
	return s.original
}

// Text returns the current input.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// SetText records the current input.
func (s *Session) SetText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrAlreadySubmitted
	}
	s.text = text
	return nil
}

// Confirm submits the trimmed input. Empty or unchanged input is reported
// as a cancellation.
func (s *Session) Confirm() error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	name, ok := Resolve(s.original, s.text, s.normalize)
	return s.finishLocked(name, ok)
}

// Blur cancels the session, as losing focus does in the editor.
func (s *Session) Blur() error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	return s.finishLocked("", false)
}

// finishLocked records the outcome, unlocks and calls submit outside the
// lock so the callback may query the session.
func (s *Session) finishLocked(name string, ok bool) error {
	s.done = true
	s.name, s.ok = name, ok
	submit := s.submit
	s.mu.Unlock()
	if submit != nil {
		submit(name, ok)
	}
	return nil
}

// Done reports whether the outcome has been submitted.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Result returns the submitted outcome; done is false while the session is
// still open.
func (s *Session) Result() (name string, ok bool, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name, s.ok, s.done
}

// Resolve computes the outcome for input text against the original name.
func Resolve(original, text string, normalize bool) (string, bool) {
	name := strings.TrimSpace(text)
	orig := strings.TrimSpace(original)
	if normalize {
		name = norm.NFC.String(name)
		orig = norm.NFC.String(orig)
	}
	if name == "" || name == orig {
		return "", false
	}
	return name, true
}
