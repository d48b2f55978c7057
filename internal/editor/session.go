package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"mediadesk/internal/async"
	"mediadesk/internal/editor/prompt"
	"mediadesk/internal/logging"
	"mediadesk/internal/observability"
	"mediadesk/internal/stream"
)

// State is the session lifecycle state.
type State string

const (
	StateIdle             State = "idle"
	StateRequesting       State = "requesting"
	StateStreaming        State = "streaming"
	StateAwaitingDecision State = "awaitingDecision"
)

var (
	// ErrEmptySelection is returned when Submit is invoked on a collapsed or
	// whitespace-only selection. No request is sent; a transient warning is
	// raised instead and auto-clears after the configured timeout.
	ErrEmptySelection = errors.New("editor: selection is empty")
	// ErrSessionActive is returned when Submit is invoked while a previous
	// session is still requesting or streaming. The running session keeps
	// its accept/reject contract; the caller decides it first.
	ErrSessionActive = errors.New("editor: a streaming edit session is already active")
	// ErrNoDecision is returned by Accept/Reject when no decision is pending.
	ErrNoDecision = errors.New("editor: no streamed content awaiting a decision")
)

const defaultWarningTTL = 3 * time.Second

// Session runs at most one streaming edit at a time against one document.
//
// The streamed region of the document is always exactly
// [from, from+lastApplied): every incoming cumulative chunk replaces that
// range, re-marks it, and advances lastApplied. Chunks are applied strictly
// in arrival order on the consume goroutine.
type Session struct {
	doc     Document
	channel stream.Channel
	logger  logging.Logger
	metrics *observability.Metrics

	warningTTL time.Duration
	promptOpts prompt.Options

	mu              sync.Mutex
	state           State
	seq             int // increments per submit; stale goroutines check it
	from, to        int
	original        string
	accumulated     string
	lastApplied     int
	controlsVisible bool
	warning         bool
	warningTimer    *time.Timer
	cancel          context.CancelFunc
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger attaches a logger.
func WithSessionLogger(logger logging.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithSessionMetrics counts consumed chunks.
func WithSessionMetrics(m *observability.Metrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// WithWarningTTL sets how long the empty-selection warning stays up.
func WithWarningTTL(ttl time.Duration) SessionOption {
	return func(s *Session) {
		if ttl > 0 {
			s.warningTTL = ttl
		}
	}
}

// WithPromptOptions sets prompt assembly behaviour (token budget, HTML strip).
func WithPromptOptions(opts prompt.Options) SessionOption {
	return func(s *Session) { s.promptOpts = opts }
}

// NewSession binds a document to a generation channel.
func NewSession(doc Document, channel stream.Channel, opts ...SessionOption) *Session {
	s := &Session{
		doc:        doc,
		channel:    channel,
		logger:     logging.Nop(),
		warningTTL: defaultWarningTTL,
		promptOpts: prompt.DefaultOptions(),
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)
	return s
}

// Submit starts a streaming edit of the selection [from, to) driven by the
// instruction. The selection is deleted before the request goes out so the
// document never shows old and new text at once; arriving chunks fill the
// gap in place. Submit returns once the request is dispatched; consumption
// continues in the background until completion, Stop, or a transport error.
func (s *Session) Submit(ctx context.Context, instruction string, from, to int) error {
	s.mu.Lock()

	if s.state == StateRequesting || s.state == StateStreaming {
		s.mu.Unlock()
		return ErrSessionActive
	}

	selection := s.doc.Slice(from, to)
	if strings.TrimSpace(selection) == "" {
		s.raiseWarningLocked()
		s.mu.Unlock()
		return ErrEmptySelection
	}

	s.seq++
	seq := s.seq
	s.from, s.to = from, to
	s.original = selection
	s.accumulated = ""
	s.lastApplied = 0
	s.controlsVisible = false
	s.state = StateRequesting
	s.doc.Replace(from, to, "")

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	p := prompt.Build(instruction, selection, s.promptOpts)
	s.mu.Unlock()

	messages, err := s.channel.Open(runCtx, p)
	if err != nil {
		// Failure to open behaves like an interrupted stream: nothing (or a
		// partial) remains and the decision controls come up.
		s.logger.Warn("generation channel open failed: %v", err)
		s.finishStreaming(seq)
		return err
	}

	async.Go(s.logger, "edit-session-consume", func() {
		for msg := range messages {
			s.applyChunk(seq, msg.Text())
		}
		s.finishStreaming(seq)
	})
	return nil
}

// applyChunk patches the document with a cumulative snapshot. Snapshots are
// expected to be monotonically growing prefixes; the replace-whole-range
// strategy keeps duplicated delivery harmless either way.
func (s *Session) applyChunk(seq int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq || (s.state != StateRequesting && s.state != StateStreaming) {
		return
	}
	s.state = StateStreaming
	s.doc.Replace(s.from, s.from+s.lastApplied, text)
	s.lastApplied = utf8.RuneCountInString(text)
	s.accumulated = text
	s.doc.Mark(s.from, s.from+s.lastApplied)
	s.metrics.StreamChunk()
}

// finishStreaming transitions to AwaitingDecision when the stream ends for
// any reason: normal completion, transport error, or a failed dispatch.
func (s *Session) finishStreaming(seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq || (s.state != StateRequesting && s.state != StateStreaming) {
		return
	}
	s.state = StateAwaitingDecision
	s.controlsVisible = true
}

// Stop halts consumption client-side and leaves the document exactly as
// last patched, with the decision controls up. The upstream generation is
// not cancelled.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state != StateRequesting && s.state != StateStreaming {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.state = StateAwaitingDecision
	s.controlsVisible = true
	s.mu.Unlock()
	s.channel.Stop()
}

// Accept keeps the streamed content: the highlight is cleared and the
// session resets. The document text does not change.
func (s *Session) Accept() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.controlsVisible {
		return ErrNoDecision
	}
	s.doc.ClearMarks()
	s.resetLocked()
	return nil
}

// Reject restores the original selection: the streamed range is replaced
// with the captured original text and the session resets.
func (s *Session) Reject() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.controlsVisible {
		return ErrNoDecision
	}
	s.doc.Replace(s.from, s.from+s.lastApplied, s.original)
	s.doc.ClearMarks()
	s.resetLocked()
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ControlsVisible reports whether accept/reject are available.
func (s *Session) ControlsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controlsVisible
}

// Warning reports whether the transient empty-selection warning is up.
func (s *Session) Warning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// Accumulated returns the cumulative streamed text so far.
func (s *Session) Accumulated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accumulated
}

// OriginalText returns the captured selection of the current or last session.
func (s *Session) OriginalText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}

func (s *Session) raiseWarningLocked() {
	s.warning = true
	if s.warningTimer != nil {
		s.warningTimer.Stop()
	}
	s.warningTimer = time.AfterFunc(s.warningTTL, func() {
		s.mu.Lock()
		s.warning = false
		s.mu.Unlock()
	})
}

func (s *Session) resetLocked() {
	s.seq++ // orphan any goroutine still draining the old stream
	s.state = StateIdle
	s.controlsVisible = false
	s.accumulated = ""
	s.lastApplied = 0
	s.original = ""
	s.from, s.to = 0, 0
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
