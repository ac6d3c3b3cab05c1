package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amadigan/android-reboot/internal/applog"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const Name = "android_reboot"
const Version = "0.1.0"
const PathEnv = "ANDROID_REBOOT_CONFIG"
const DefaultPath = "/etc/android_reboot.jsonc"

const DefaultGrace = time.Second
const MaxGrace = time.Minute

// File is the on-disk form of the tuning file.
type File struct {
	Grace     string `json:"grace,omitempty" yaml:"grace,omitempty"`
	SyslogTag string `json:"syslogTag,omitempty" yaml:"syslogTag,omitempty"`
	LogLevel  string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

type Config struct {
	Grace     time.Duration
	SyslogTag string
	LogLevel  applog.LogLevel
}

func Default() *Config {
	return &Config{Grace: DefaultGrace, SyslogTag: Name, LogLevel: applog.LogLevelWarn}
}

var fileValidator = newFieldValidator(File{})

// Load reads the file at path. An empty path falls back to $ANDROID_REBOOT_CONFIG
// and then to fallback; only an explicitly named file has to exist. The
// returned path is empty when no file was read.
func Load(env map[string]string, path string, fallback string) (*Config, string, error) {
	explicit := true

	if path == "" {
		path = env[PathEnv]
	}

	if path == "" {
		path = fallback
		explicit = false
	}

	if path == "" {
		return Default(), "", nil
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), "", nil
		}

		return nil, path, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var file File

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(bs, &file)
	default:
		err = decodeJSONC(bs, &file)
	}

	if err != nil {
		return nil, path, fmt.Errorf("error reading %s: %w", path, err)
	}

	conf, err := file.Resolve()
	if err != nil {
		return nil, path, fmt.Errorf("error reading %s: %w", path, err)
	}

	return conf, path, nil
}

func decodeJSONC(bs []byte, file *File) error {
	bs = jsonc.ToJSONInPlace(bs)

	if len(bytes.TrimSpace(bs)) == 0 {
		return nil
	}

	if err := fileValidator.Validate(bs); err != nil {
		return err
	}

	if err := json.Unmarshal(bs, file); err != nil {
		return fmt.Errorf("failed to parse json: %w", err)
	}

	return nil
}

func decodeYAML(bs []byte, file *File) error {
	var m map[string]any

	if err := yaml.Unmarshal(bs, &m); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}

	if err := fileValidator.ValidateKeys(m); err != nil {
		return err
	}

	if err := yaml.Unmarshal(bs, file); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}

	return nil
}

func (f File) Resolve() (*Config, error) {
	conf := Default()

	if f.Grace != "" {
		grace, err := time.ParseDuration(f.Grace)
		if err != nil {
			return nil, fmt.Errorf("invalid grace %q: %w", f.Grace, err)
		}

		if grace <= 0 || grace > MaxGrace {
			return nil, fmt.Errorf("grace %s out of range (0, %s]", grace, MaxGrace)
		}

		conf.Grace = grace
	}

	if f.SyslogTag != "" {
		conf.SyslogTag = f.SyslogTag
	}

	if f.LogLevel != "" {
		level, err := applog.ParseLevel(f.LogLevel)
		if err != nil {
			return nil, err
		}

		conf.LogLevel = level
	}

	return conf, nil
}
