// Package config loads fbxport settings from YAML or CUE files.
//
// Both formats are checked against the embedded CUE schema, so a YAML file
// and a CUE file that mean the same thing are accepted or rejected alike.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/roach88/fbxport/internal/document"
)

//go:embed schema.cue
var schemaSource []byte

// Config is the full set of user settings.
type Config struct {
	App     App    `yaml:"app" json:"app"`
	Output  Output `yaml:"output" json:"output"`
	Journal string `yaml:"journal" json:"journal"`
}

// App identifies the application recorded in exported files.
type App struct {
	Vendor  string `yaml:"vendor" json:"vendor"`
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
	Flavor  string `yaml:"flavor" json:"flavor"`
}

// Output controls how files are written.
type Output struct {
	Overwrite bool `yaml:"overwrite" json:"overwrite"`
}

// Error reports a config file that could not be read or is invalid.
type Error struct {
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Default returns the settings used when no config file is given.
// They match the defaults in the schema.
func Default() *Config {
	return &Config{
		App: App{
			Vendor:  "roach88",
			Name:    "fbxport",
			Version: "dev",
		},
	}
}

// AppInfo converts the app section for the document builder.
func (c *Config) AppInfo() document.AppInfo {
	return document.AppInfo{
		Vendor:  c.App.Vendor,
		Name:    c.App.Name,
		Version: c.App.Version,
		Flavor:  c.App.Flavor,
	}
}

// Load reads a config file from the OS filesystem.
func Load(path string) (*Config, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadFS reads a config file from fs. The format is chosen by extension:
// .yaml and .yml are YAML, .cue is CUE. Fields missing from the file keep
// their defaults.
func LoadFS(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &Error{Path: path, Message: "read failed", Err: err}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return parseYAML(path, data)
	case ".cue":
		return parseCUE(path, data)
	default:
		return nil, &Error{Path: path, Message: fmt.Sprintf("unsupported extension %q (want .yaml, .yml or .cue)", ext)}
	}
}

func parseYAML(path string, data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Path: path, Message: "parse YAML", Err: err}
	}

	ctx := cuecontext.New()
	schema, err := compileSchema(ctx)
	if err != nil {
		return nil, &Error{Path: path, Message: "compile schema", Err: err}
	}
	v := schema.Unify(ctx.Encode(cfg))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{Path: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

func parseCUE(path string, data []byte) (*Config, error) {
	ctx := cuecontext.New()
	schema, err := compileSchema(ctx)
	if err != nil {
		return nil, &Error{Path: path, Message: "compile schema", Err: err}
	}

	file := ctx.CompileBytes(data, cue.Filename(path))
	if err := file.Err(); err != nil {
		return nil, &Error{Path: path, Message: err.Error(), Err: err}
	}

	v := schema.Unify(file)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{Path: path, Message: err.Error(), Err: err}
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, &Error{Path: path, Message: "decode", Err: err}
	}
	return &cfg, nil
}

// compileSchema returns the #Config definition.
func compileSchema(ctx *cue.Context) (cue.Value, error) {
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, err
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return cue.Value{}, err
	}
	return def, nil
}
