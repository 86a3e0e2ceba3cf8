package theme

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// Key is the storage slot the chosen theme is kept under. It shares the
	// key-value table with the todo snapshot.
	Key = "simple-todo-theme"
)

var ErrUnknownTheme = errors.New("unknown theme")

func Parse(v string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(v))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, v)
}

func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// Provider holds the current theme and persists changes under Key. The todo
// list never sees the theme.
type Provider struct {
	kv     KV
	theme  Theme
	logger *log.Logger
}

// NewProvider starts from fallback and applies the stored theme if one is
// present and valid.
func NewProvider(kv KV, fallback Theme, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if _, err := Parse(string(fallback)); err != nil {
		fallback = Light
	}
	p := &Provider{kv: kv, theme: fallback, logger: logger}

	raw, ok, err := kv.Get(Key)
	switch {
	case err != nil:
		logger.Warn("read theme", "err", err)
	case ok:
		if t, err := Parse(raw); err == nil {
			p.theme = t
		} else {
			logger.Warn("ignoring stored theme", "value", raw)
		}
	}
	return p
}

func (p *Provider) Theme() Theme { return p.theme }

// SetTheme switches the theme. The in-memory choice is kept even when the
// write fails.
func (p *Provider) SetTheme(t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	p.theme = t
	if err := p.kv.Put(Key, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (p *Provider) Toggle() (Theme, error) {
	next := p.theme.Opposite()
	return next, p.SetTheme(next)
}
