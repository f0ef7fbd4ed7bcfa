package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/numreport/internal/errors"
)

// AppName is the directory name used under the XDG config home.
const AppName = "numreport"

// DefaultConfigFile is the file searched for in the XDG config directories.
var DefaultConfigFile = filepath.Join(AppName, "config.yaml")

// File is the on-disk YAML configuration. Pointer fields distinguish an
// absent key from a zero value.
type File struct {
	N       *int64 `yaml:"n"`
	M       *int64 `yaml:"m"`
	Algo    string `yaml:"algo"`
	Timeout string `yaml:"timeout"`
	Detach  *bool  `yaml:"detach"`
	Quiet   *bool  `yaml:"quiet"`
	Verbose *bool  `yaml:"verbose"`
	NoColor *bool  `yaml:"no_color"`
	Metrics *bool  `yaml:"metrics"`
}

// FindConfigFile returns the configuration file to load. An explicit path
// must exist. Without one, the XDG config directories are searched and an
// empty path is returned when nothing is found.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", apperrors.NewConfigError("configuration file %q: %v", explicit, err)
		}
		return explicit, nil
	}
	path, err := xdg.SearchConfigFile(DefaultConfigFile)
	if err != nil {
		return "", nil
	}
	return path, nil
}

// LoadConfigFile reads and decodes a YAML configuration file. Unknown keys
// are rejected.
func LoadConfigFile(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		return nil, apperrors.WrapError(err, "opening configuration file")
	}
	defer f.Close()

	var cf File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewConfigError("parsing %s: %v", path, err)
	}
	return &cf, nil
}

// applyFile copies file values into config for every flag the user did not
// set explicitly.
func applyFile(config *AppConfig, file *File, fs *flag.FlagSet) error {
	if file.N != nil && !isFlagSet(fs, "n") {
		config.N = *file.N
	}
	if file.M != nil && !isFlagSet(fs, "m") {
		config.M = *file.M
	}
	if file.Algo != "" && !isFlagSet(fs, "algo") {
		config.Algo = file.Algo
	}
	if file.Timeout != "" && !isFlagSet(fs, "timeout") {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q in configuration file", file.Timeout)
		}
		config.Timeout = d
	}
	applyBool(&config.Detach, file.Detach, fs, "detach")
	applyBool(&config.Quiet, file.Quiet, fs, "quiet", "q")
	applyBool(&config.Verbose, file.Verbose, fs, "verbose", "v")
	applyBool(&config.NoColor, file.NoColor, fs, "no-color")
	applyBool(&config.Metrics, file.Metrics, fs, "metrics")
	return nil
}

func applyBool(dst *bool, v *bool, fs *flag.FlagSet, flags ...string) {
	if v != nil && !isFlagSetAny(fs, flags...) {
		*dst = *v
	}
}
