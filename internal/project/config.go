// Package project locates and loads the macrokit manifest.
//
// The manifest is TOML (`macrokit.toml`) or YAML (`macrokit.yaml`,
// `.macrokit.yaml`); both spellings decode into Config. Keys left out keep
// their defaults, unknown keys are errors.
package project

import (
	"bytes"
	"errors"
	"fmt"
	gotoken "go/token"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
)

type Config struct {
	Expand      ExpandConfig      `toml:"expand" yaml:"expand"`
	Derive      DeriveConfig      `toml:"derive" yaml:"derive"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics" yaml:"diagnostics"`
}

type ExpandConfig struct {
	Macros        []string `toml:"macros" yaml:"macros"`
	MaxDepth      int      `toml:"max_depth" yaml:"max_depth"`
	MaxIterations int64    `toml:"max_iterations" yaml:"max_iterations"`
	Suffix        string   `toml:"suffix" yaml:"suffix"` // input extension, stripped for the output name
	Gofmt         string   `toml:"gofmt" yaml:"gofmt"`   // auto|on|off
	PreserveLines bool     `toml:"preserve_lines" yaml:"preserve_lines"`
	LintSplice    bool     `toml:"lint_splice" yaml:"lint_splice"`
	Cache         bool     `toml:"cache" yaml:"cache"`
}

type DeriveConfig struct {
	Directive string `toml:"directive" yaml:"directive"`
	Suffix    string `toml:"suffix" yaml:"suffix"`
}

type DiagnosticsConfig struct {
	Max    int    `toml:"max" yaml:"max"`
	Format string `toml:"format" yaml:"format"` // pretty|json|short
}

var (
	GofmtModes  = []string{"auto", "on", "off"}
	DiagFormats = []string{"pretty", "json", "short"}
)

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Expand: ExpandConfig{
			Macros:        []string{"seq"},
			MaxDepth:      256,
			MaxIterations: 65536,
			Suffix:        ".seq",
			Gofmt:         "auto",
			PreserveLines: true,
			LintSplice:    true,
		},
		Derive: DeriveConfig{
			Directive: "macrokit:derive",
			Suffix:    "_derive.go",
		},
		Diagnostics: DiagnosticsConfig{
			Max:    100,
			Format: "pretty",
		},
	}
}

// Error is a manifest problem. Code is PrjBadConfig or PrjUnknownOption.
type Error struct {
	Path string
	Code diag.Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Manifest is a loaded manifest file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// LoadManifest finds and loads the manifest above startDir. ok is false when
// there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig reads path, choosing the format by extension.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	switch filepath.Ext(path) {
	case ".toml":
		return DecodeTOML(path, data)
	case ".yaml", ".yml":
		return DecodeYAML(path, data)
	default:
		return Config{}, &Error{Path: path, Code: diag.PrjBadConfig, Msg: "manifest must be .toml or .yaml"}
	}
}

// DecodeTOML parses a TOML manifest over the defaults. path is only used in errors.
func DecodeTOML(path string, data []byte) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, &Error{Path: path, Code: diag.PrjBadConfig, Msg: "failed to parse TOML", Err: err}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, &Error{Path: path, Code: diag.PrjUnknownOption,
			Msg: fmt.Sprintf("unknown option `%s`", undecoded[0])}
	}
	if meta.IsDefined("expand", "macros") && len(cfg.Expand.Macros) == 0 {
		return Config{}, &Error{Path: path, Code: diag.PrjBadConfig, Msg: "[expand].macros must not be empty"}
	}
	return cfg, cfg.validate(path)
}

// DecodeYAML parses a YAML manifest over the defaults. path is only used in errors.
func DecodeYAML(path string, data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		code := diag.PrjBadConfig
		if strings.Contains(err.Error(), "not found in type") {
			code = diag.PrjUnknownOption
		}
		return Config{}, &Error{Path: path, Code: code, Msg: "failed to parse YAML", Err: err}
	}
	return cfg, cfg.validate(path)
}

func (c Config) validate(path string) error {
	bad := func(format string, args ...any) error {
		return &Error{Path: path, Code: diag.PrjBadConfig, Msg: fmt.Sprintf(format, args...)}
	}
	if len(c.Expand.Macros) == 0 {
		return bad("expand.macros must not be empty")
	}
	for _, m := range c.Expand.Macros {
		if !gotoken.IsIdentifier(m) {
			return bad("expand.macros: %q is not an identifier", m)
		}
	}
	if c.Expand.MaxDepth < 0 || c.Expand.MaxIterations < 0 {
		return bad("expand.max_depth and expand.max_iterations must not be negative")
	}
	if !strings.HasPrefix(c.Expand.Suffix, ".") {
		return bad("expand.suffix %q must start with a dot", c.Expand.Suffix)
	}
	if !slices.Contains(GofmtModes, c.Expand.Gofmt) {
		return bad("expand.gofmt must be one of %s, got %q", strings.Join(GofmtModes, "|"), c.Expand.Gofmt)
	}
	if tool, name, ok := strings.Cut(c.Derive.Directive, ":"); !ok || tool == "" || name == "" {
		return bad("derive.directive %q must have the form tool:name", c.Derive.Directive)
	}
	if !strings.HasSuffix(c.Derive.Suffix, ".go") {
		return bad("derive.suffix %q must end in .go", c.Derive.Suffix)
	}
	if !slices.Contains(DiagFormats, c.Diagnostics.Format) {
		return bad("diagnostics.format must be one of %s, got %q", strings.Join(DiagFormats, "|"), c.Diagnostics.Format)
	}
	if c.Diagnostics.Max < 0 {
		return bad("diagnostics.max must not be negative")
	}
	return nil
}

// Encode writes cfg in the format implied by name's extension.
func Encode(w io.Writer, name string, cfg Config) error {
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return toml.NewEncoder(w).Encode(cfg)
	}
}

// WriteDefault creates dir/name holding the default configuration. It
// refuses to overwrite an existing file.
func WriteDefault(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create manifest: %w", err)
	}
	if err := Encode(f, name, Default()); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, f.Close()
}
