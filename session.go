package sculpt

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/roach88/sculpt/value"
)

// Session carries the configuration the entry points need: the
// dev-mode flag, a logger, the frame pool, and the frame token
// generator. There is no process-wide mutable state; package-level
// entry points delegate to a default session.
//
// Sessions are safe for concurrent use. The frame pool is the only
// shared mutable resource: frames are acquired and released strictly
// within one batch call chain, never across independent calls.
type Session struct {
	devMode atomic.Bool
	logger  *slog.Logger
	tokens  TokenGenerator
	frames  sync.Pool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithTokenGenerator sets the frame token generator. Defaults to
// UUIDv7Generator. Tests use NewFixedGenerator for determinism.
func WithTokenGenerator(g TokenGenerator) SessionOption {
	return func(s *Session) { s.tokens = g }
}

// WithDevMode sets the initial dev-mode state.
func WithDevMode(on bool) SessionOption {
	return func(s *Session) { s.devMode.Store(on) }
}

// NewSession creates a Session. Dev mode defaults to off.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		logger: slog.Default(),
		tokens: UUIDv7Generator{},
	}
	s.frames.New = func() any { return &frame{} }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDevMode toggles recursive freezing of commit results. The flag is
// read once at each commit point; values returned before the toggle
// are unaffected.
func (s *Session) SetDevMode(on bool) { s.devMode.Store(on) }

// DevMode reports the current dev-mode state.
func (s *Session) DevMode() bool { return s.devMode.Load() }

// Edit starts recording a path over a bare root value.
func (s *Session) Edit(root value.Value) *Selector {
	return &Selector{sess: s, root: root}
}

// EditAccessor starts recording a path over state held by acc.
func (s *Session) EditAccessor(acc Accessor) *Selector {
	return &Selector{sess: s, acc: acc}
}

func (s *Session) acquireFrame() *frame {
	f := s.frames.Get().(*frame)
	f.sess = s
	f.token = s.tokens.Generate()
	return f
}

func (s *Session) releaseFrame(f *frame) {
	if f.ops != 0 || f.children != 0 {
		s.logger.Warn("frame released with in-flight work", "frame", f.token, "ops", f.ops, "children", f.children)
	}
	f.reset()
	s.frames.Put(f)
}

var defaultSession = NewSession()

// DefaultSession returns the session the package-level entry points use.
func DefaultSession() *Session { return defaultSession }

// Edit starts recording a path over a bare root value using the
// default session.
func Edit(root value.Value) *Selector { return defaultSession.Edit(root) }

// EditAccessor starts recording a path over accessor-held state using
// the default session.
func EditAccessor(acc Accessor) *Selector { return defaultSession.EditAccessor(acc) }

// SetDevMode toggles dev mode on the default session.
func SetDevMode(on bool) { defaultSession.SetDevMode(on) }
