package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/deckpeek/deckpeek/internal/converter"
)

// Converter is the conversion pipeline as the session sees it
type Converter interface {
	// CheckInstalled runs a fresh availability probe
	CheckInstalled(ctx context.Context) bool
	// ConvertToPDF converts a presentation file and returns the output path
	ConvertToPDF(ctx context.Context, source string) (string, error)
}

// Surface is the display surface the session notifies
type Surface interface {
	Send(ctx context.Context, msg Outbound) error
}

// Config holds configuration for a preview session
type Config struct {
	Source    string
	Converter Converter
	Surface   Surface
	Logger    *slog.Logger // Optional: defaults to discard
	// Locate translates a filesystem path into a renderer-addressable
	// location. Optional: defaults to the identity function.
	Locate func(path string) string
}

// Session drives the lifecycle of one open preview: it runs the conversion
// flow, maps pipeline outcomes onto the lifecycle state machine, and
// exchanges signals with the display surface. All pipeline failures are
// absorbed here; none propagate to the caller.
type Session struct {
	id        string
	source    string
	converter Converter
	surface   Surface
	logger    *slog.Logger
	locate    func(string) string

	mu    sync.Mutex
	state State
	busy  bool
}

// New creates a preview session for a single source file
func New(config Config) (*Session, error) {
	if config.Source == "" {
		return nil, fmt.Errorf("session: source is required")
	}
	if config.Converter == nil {
		return nil, fmt.Errorf("session: converter is required")
	}
	if config.Surface == nil {
		return nil, fmt.Errorf("session: surface is required")
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Locate == nil {
		config.Locate = func(path string) string { return path }
	}

	return &Session{
		id:        uuid.NewString(),
		source:    config.Source,
		converter: config.Converter,
		surface:   config.Surface,
		logger:    config.Logger,
		locate:    config.Locate,
		state:     StateNotChecked,
	}, nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Source returns the previewed file path
func (s *Session) Source() string {
	return s.source
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HandleMessage processes one inbound display-surface signal
func (s *Session) HandleMessage(ctx context.Context, msg Inbound) error {
	switch msg.Type {
	case MessageReady, MessageRetryCheck:
		// Both enter the check flow; a retry always re-probes availability
		return s.Check(ctx)
	case MessageError:
		s.logger.ErrorContext(ctx, "display surface reported an error",
			"session_id", s.id,
			"source", s.source,
			"text", msg.Text,
		)
		s.setState(StateFailed)
		return nil
	default:
		return fmt.Errorf("session: unknown message type %q", msg.Type)
	}
}

// Check runs the full preview flow: probe, convert, notify. One check runs
// at a time per session; a signal arriving while a check is active is
// ignored.
func (s *Session) Check(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "check already in progress, ignoring",
			"session_id", s.id,
		)
		return nil
	}
	s.busy = true
	s.state = StateChecking
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if !s.converter.CheckInstalled(ctx) {
		return s.notifyNotInstalled(ctx)
	}

	s.setState(StateConverting)
	output, err := s.converter.ConvertToPDF(ctx, s.source)
	if err != nil {
		return s.notifyFailure(ctx, err)
	}

	s.setState(StateReady)
	location := s.locate(output)
	s.logger.InfoContext(ctx, "preview ready",
		"session_id", s.id,
		"source", s.source,
		"location", location,
	)
	return s.surface.Send(ctx, Outbound{Type: MessageLoadPDF, Location: location})
}

func (s *Session) notifyNotInstalled(ctx context.Context) error {
	s.setState(StateNotInstalled)
	s.logger.WarnContext(ctx, "converter not installed",
		"session_id", s.id,
		"source", s.source,
	)
	return s.surface.Send(ctx, Outbound{Type: MessageNotInstalled})
}

func (s *Session) notifyFailure(ctx context.Context, err error) error {
	// The converter may disappear between the probe and the spawn; both
	// read as a missing installation to the user
	var notInstalled *converter.NotInstalledError
	var spawn *converter.SpawnError
	if errors.As(err, &notInstalled) || errors.As(err, &spawn) {
		return s.notifyNotInstalled(ctx)
	}

	s.setState(StateFailed)
	s.logger.ErrorContext(ctx, "conversion failed",
		"session_id", s.id,
		"source", s.source,
		"error", err,
	)
	return s.surface.Send(ctx, Outbound{Type: MessageError, Text: err.Error()})
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
