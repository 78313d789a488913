// Package config loads latentmap settings from a TOML file layered over
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrValidationFailed indicates a value is out of range.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Modifier keys that can arm the selection gesture.
const (
	ModifierCtrl  = "ctrl"
	ModifierAlt   = "alt"
	ModifierShift = "shift"
)

type Config struct {
	Source SourceConfig `toml:"source"`
	View   ViewConfig   `toml:"view"`
	Export ExportConfig `toml:"export"`
}

type SourceConfig struct {
	// Location is an http(s) URL or a local file path.
	Location       string  `toml:"location"`
	TimeoutSeconds float64 `toml:"timeout_seconds"`
}

type ViewConfig struct {
	Margin            float64 `toml:"margin"`
	PointSize         int     `toml:"point_size"`
	Opacity           float64 `toml:"opacity"`
	ShowGrid          bool    `toml:"show_grid"`
	GridStep          float64 `toml:"grid_step"`
	FeasibleColor     string  `toml:"feasible_color"`
	InfeasibleColor   string  `toml:"infeasible_color"`
	SelectionModifier string  `toml:"selection_modifier"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

// Limits for the point controls.
const (
	MinPointSize = 1
	MaxPointSize = 3
	MinOpacity   = 0.1
	MaxOpacity   = 1.0
)

func Default() Config {
	return Config{
		Source: SourceConfig{
			Location:       "data/latent_points.csv",
			TimeoutSeconds: 10,
		},
		View: ViewConfig{
			Margin:            0.1,
			PointSize:         1,
			Opacity:           0.9,
			ShowGrid:          true,
			GridStep:          0,
			FeasibleColor:     "#22C55E",
			InfeasibleColor:   "#EF4444",
			SelectionModifier: ModifierCtrl,
		},
		Export: ExportConfig{Dir: "."},
	}
}

// Timeout returns the fetch timeout; zero disables it.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds * float64(time.Second))
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(path, data, &cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Decode strictly decodes TOML data into cfg, reporting positions as a
// *ParseError.
func Decode(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			pe.Message = "unknown key(s): " + strings.TrimSpace(serr.String())
		}
		return pe
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var problems []string
	v := c.View
	if v.Margin < 0 {
		problems = append(problems, "view.margin must be >= 0")
	}
	if v.PointSize < MinPointSize || v.PointSize > MaxPointSize {
		problems = append(problems, fmt.Sprintf("view.point_size must be in [%d, %d]", MinPointSize, MaxPointSize))
	}
	if v.Opacity < MinOpacity || v.Opacity > MaxOpacity {
		problems = append(problems, fmt.Sprintf("view.opacity must be in [%.1f, %.1f]", MinOpacity, MaxOpacity))
	}
	if v.GridStep < 0 {
		problems = append(problems, "view.grid_step must be >= 0 (0 = auto)")
	}
	for _, col := range [][2]string{
		{"view.feasible_color", v.FeasibleColor},
		{"view.infeasible_color", v.InfeasibleColor},
	} {
		if _, err := colorful.Hex(col[1]); err != nil {
			problems = append(problems, fmt.Sprintf("%s %q is not a #rrggbb colour", col[0], col[1]))
		}
	}
	switch v.SelectionModifier {
	case ModifierCtrl, ModifierAlt, ModifierShift:
	default:
		problems = append(problems, fmt.Sprintf("view.selection_modifier %q must be ctrl, alt or shift", v.SelectionModifier))
	}
	if c.Source.TimeoutSeconds < 0 {
		problems = append(problems, "source.timeout_seconds must be >= 0")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}
