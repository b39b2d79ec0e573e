package vt100

import "github.com/sirupsen/logrus"

// Option configures a Terminal during construction, following the
// functional-options idiom the pack's terminal libraries converge on
// (e.g. danielgatis-go-headless-term's New(opts ...Option)).
type Option func(*terminalConfig)

type terminalConfig struct {
	depth             ColorDepth
	mouseEnabled      bool
	bracketedPaste    bool
	signalPassthrough bool
	logger            logrus.FieldLogger
}

func defaultConfig() terminalConfig {
	return terminalConfig{
		depth:          Depth24Bit,
		mouseEnabled:   false,
		bracketedPaste: true,
		logger:         logrus.StandardLogger(),
	}
}

// WithColorDepth sets the color depth used when resolving style
// attributes to SGR codes.
func WithColorDepth(depth ColorDepth) Option {
	return func(c *terminalConfig) { c.depth = depth }
}

// WithMouse enables mouse reporting on Terminal.Start.
func WithMouse(enabled bool) Option {
	return func(c *terminalConfig) { c.mouseEnabled = enabled }
}

// WithBracketedPaste controls whether Terminal.Start enables bracketed
// paste mode. Defaults to enabled.
func WithBracketedPaste(enabled bool) Option {
	return func(c *terminalConfig) { c.bracketedPaste = enabled }
}

// WithSignalPassthrough keeps ISIG set in raw mode, so Ctrl-C/Ctrl-Z
// still reach the process as signals instead of arriving as key bytes.
func WithSignalPassthrough(enabled bool) Option {
	return func(c *terminalConfig) { c.signalPassthrough = enabled }
}

// WithLogger sets the logger used for recoverable-failure diagnostics
// (termios restore failures, dropped writes). Defaults to logrus's
// standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *terminalConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Terminal wires the core components — reader, parser, termios guard,
// output emitter, renderer — over one fd, per the construction contract
// of §6's "core accepts the FD through construction and does not care
// which". It is the library's single assembly point; everything it
// delegates to remains independently usable.
type Terminal struct {
	fd     int
	cfg    terminalConfig
	reader *Reader
	parser *Parser
	guard  *TermiosGuard
	output *Output
	render *Renderer
}

// NewTerminal constructs a Terminal over fd without touching terminal
// state; call Start to enter raw mode and the alternate screen.
func NewTerminal(fd int, opts ...Option) *Terminal {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Terminal{
		fd:     fd,
		cfg:    cfg,
		reader: NewReader(fd),
		parser: NewParser(),
		guard:  NewTermiosGuard(fd),
		output: NewOutput(fd, cfg.logger),
		render: NewRenderer(),
	}
}

// Start acquires raw mode, enters the alternate screen, and enables
// bracketed paste / mouse reporting per the configured options. It
// rejects a second Start while already active (delegated to the
// termios guard's own nested-acquisition rejection).
func (t *Terminal) Start() error {
	if err := t.guard.Acquire(t.cfg.signalPassthrough); err != nil {
		return err
	}
	t.output.EnterAltScreen()
	t.output.EraseScreen()
	t.output.HideCursor()
	if t.cfg.bracketedPaste {
		t.output.write("\x1b[?2004h")
	}
	if t.cfg.mouseEnabled {
		t.output.EnableMouse()
	}
	return nil
}

// Stop reverses Start: disables mouse/paste, shows the cursor, leaves
// the alternate screen, and releases raw mode. It logs (rather than
// fails) a termios restore error, per §7.3.
func (t *Terminal) Stop() {
	if t.cfg.mouseEnabled {
		t.output.DisableMouse()
	}
	if t.cfg.bracketedPaste {
		t.output.write("\x1b[?2004l")
	}
	t.output.ShowCursor()
	t.output.ExitAltScreen()
	if err := t.guard.Release(); err != nil {
		t.cfg.logger.WithError(err).Warn("vt100: termios restore failed")
	}
}

// ReadKeys performs one non-blocking read and feeds it through the
// parser, returning whatever key events resolve immediately.
func (t *Terminal) ReadKeys() ([]KeyPress, error) {
	data, err := t.reader.Read(0)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}
	return t.parser.Feed([]byte(data)), nil
}

// Render performs one diff-free render pass of screen against the
// terminal's current size.
func (t *Terminal) Render(screen *Screen) Point {
	size := t.output.Size()
	return t.render.Render(t.output, screen, size, t.cfg.depth)
}

// Output exposes the underlying emitter for direct use (titles, cursor
// shape, CPR requests) beyond the Render/Start/Stop lifecycle.
func (t *Terminal) Output() *Output { return t.output }
