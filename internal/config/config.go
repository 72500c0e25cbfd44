// Package config resolves the effective settings of a run from the optional
// pdfsplit.json file and the command line.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/pdf-splitter/internal/codec"
)

const (
	// ErrCodeNotFound means an explicitly requested config file does not exist.
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid means the file could not be read or parsed, or a value is out of range.
	ErrCodeInvalid = "config_invalid"
)

const (
	FileName            = "pdfsplit.json"
	DefaultPagesPerFile = 10
	DefaultEngine       = codec.EnginePDFCPU
	DefaultLogLevel     = "info"
)

// CLIArgs carries flag values together with whether they were set, so an
// explicit flag always wins over the file.
type CLIArgs struct {
	ConfigPath string

	PagesPerFile int
	PagesSet     bool

	Engine    string
	EngineSet bool

	LogLevel    string
	LogLevelSet bool
}

// FileConfig mirrors pdfsplit.json.
type FileConfig struct {
	PagesPerFile int    `json:"pages_per_file"`
	Engine       string `json:"engine"`
	LogLevel     string `json:"log_level"`
	Strict       bool   `json:"strict"`
}

type Effective struct {
	// Source is the config file that was read, or "" when none was found.
	Source       string
	PagesPerFile int
	Engine       string
	LogLevel     logrus.Level
	Strict       bool
}

type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s: config file %q not found", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s: config file %q: %v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s: config file %q", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code from err, or "" when err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective reads the config file and merges it with cli.
//
// Discovery:
//   - cli.ConfigPath set: that file must exist.
//   - otherwise <cwd>/pdfsplit.json is read if present.
//
// Precedence for every field: flag > file > default.
func LoadEffective(cwd string, cli CLIArgs) (Effective, error) {
	var (
		cfgPath  string
		required bool
	)
	if p := strings.TrimSpace(cli.ConfigPath); p != "" {
		cfgPath = p
		if !filepath.IsAbs(cfgPath) {
			cfgPath = filepath.Join(cwd, cfgPath)
		}
		required = true
	} else {
		cfgPath = filepath.Join(cwd, FileName)
	}

	fc, exists, err := readFileConfig(cfgPath)
	if err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	if !exists {
		if required {
			return Effective{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: os.ErrNotExist}
		}
		cfgPath = ""
	}

	return merge(cli, fc, cfgPath)
}

func merge(cli CLIArgs, fc FileConfig, cfgPath string) (Effective, error) {
	pages := DefaultPagesPerFile
	if cli.PagesSet {
		pages = cli.PagesPerFile
	} else if fc.PagesPerFile != 0 {
		pages = fc.PagesPerFile
	}
	if pages < 1 {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("pages_per_file must be at least 1, got %d", pages)}
	}

	engine := DefaultEngine
	if cli.EngineSet {
		engine = cli.Engine
	} else if strings.TrimSpace(fc.Engine) != "" {
		engine = fc.Engine
	}
	engine = strings.ToLower(strings.TrimSpace(engine))
	switch engine {
	case codec.EnginePDFCPU, codec.EngineGofpdi:
	default:
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("engine must be %s or %s, got %q", codec.EnginePDFCPU, codec.EngineGofpdi, engine)}
	}

	levelName := DefaultLogLevel
	if cli.LogLevelSet {
		levelName = cli.LogLevel
	} else if strings.TrimSpace(fc.LogLevel) != "" {
		levelName = fc.LogLevel
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(levelName))
	if err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	return Effective{
		Source:       cfgPath,
		PagesPerFile: pages,
		Engine:       engine,
		LogLevel:     level,
		Strict:       fc.Strict,
	}, nil
}

// readFileConfig parses path; a missing file is not an error.
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
