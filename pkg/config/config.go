// Package config provides run configuration and its defaults.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/orchestrator"
	"github.com/user/nvencprobe/pkg/ports"
	"github.com/user/nvencprobe/pkg/report"
)

// Config represents the full configuration for a probe run.
type Config struct {
	// Output
	Format string
	Output string

	// Logging
	LogLevel string
	Quiet    bool

	// Native libraries
	CUDALibrary  string
	NVENCLibrary string

	// API
	Required nvapi.Version
}

// Defaults returns a Config with default values for the running platform.
func Defaults() Config {
	cuda, nvenc := nvapi.DefaultLibraries(runtime.GOOS)
	return Config{
		Format:       report.FormatText,
		LogLevel:     "info",
		CUDALibrary:  cuda,
		NVENCLibrary: nvenc,
		Required:     nvapi.BuildVersion,
	}
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, err := report.ForFormat(c.Format); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.CUDALibrary == "" {
		return errors.New("cuda library must not be empty")
	}
	if c.NVENCLibrary == "" {
		return errors.New("nvenc library must not be empty")
	}
	// The packed form keeps the minor version in four bits.
	if c.Required.Major == 0 || c.Required.Minor > 0x0f {
		return fmt.Errorf("unsupported api version %s", c.Required)
	}
	return nil
}

// Level returns the effective log level.
func (c Config) Level() ports.LogLevel {
	if c.Quiet {
		return ports.LevelQuiet
	}
	return ports.ParseLogLevel(c.LogLevel)
}

// ParseVersion parses "major.minor" into a Version.
func ParseVersion(s string) (nvapi.Version, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return nvapi.Version{}, fmt.Errorf("invalid api version %q: want major.minor", s)
	}
	ma, err := strconv.ParseUint(major, 10, 32)
	if err != nil {
		return nvapi.Version{}, fmt.Errorf("invalid api version %q: %w", s, err)
	}
	mi, err := strconv.ParseUint(minor, 10, 32)
	if err != nil {
		return nvapi.Version{}, fmt.Errorf("invalid api version %q: %w", s, err)
	}
	return nvapi.Version{Major: uint32(ma), Minor: uint32(mi)}, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	oc := orchestrator.DefaultConfig()
	oc.Required = c.Required
	return oc
}
