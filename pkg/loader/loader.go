// Package loader resolves the CUDA driver and NVENC function tables and owns
// their lifetime.
package loader

import (
	"errors"

	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/nverr"
	"github.com/user/nvencprobe/pkg/ports"
)

// DriverContext holds both resolved function tables for the rest of the run.
type DriverContext struct {
	Driver ports.DriverBindings
	Encode ports.EncodeBindings

	released bool
}

// Release closes both tables, encode first. Calls after the first are no-ops.
func (c *DriverContext) Release() error {
	if c == nil || c.released {
		return nil
	}
	c.released = true

	var errs []error
	if c.Encode != nil {
		errs = append(errs, c.Encode.Close())
	}
	if c.Driver != nil {
		errs = append(errs, c.Driver.Close())
	}
	return errors.Join(errs...)
}

// Loader opens the native tables through a BindingsOpener.
type Loader struct {
	opener   ports.BindingsOpener
	logger   ports.Logger
	required nvapi.Version
	goos     string
}

// New creates a Loader. required and goos select the minimum-driver hint
// printed when the encode table is missing.
func New(opener ports.BindingsOpener, logger ports.Logger, required nvapi.Version, goos string) *Loader {
	return &Loader{
		opener:   opener,
		logger:   logger.WithComponent("loader"),
		required: required,
		goos:     goos,
	}
}

// Load resolves the driver table, then the encode table. Failures are logged
// where they occur; tables opened so far are released before returning.
func (l *Loader) Load() (*DriverContext, error) {
	l.logger.Debug("Resolving CUDA driver table")
	driver, err := l.opener.OpenDriver()
	if err != nil {
		rec := nverr.Load("cuda_load_functions", err)
		l.logger.Error("%s", rec)
		return nil, rec
	}

	l.logger.Debug("Resolving NVENC table")
	encode, err := l.opener.OpenEncode()
	if err != nil {
		if cerr := driver.Close(); cerr != nil {
			l.logger.Warn("Failed to release CUDA driver: %s", cerr)
		}
		rec := nverr.Load("nvenc_load_functions", err)
		l.logger.Error("%s", rec)
		l.logger.Error("The minimum required Nvidia driver for nvenc is %s or newer",
			nvapi.MinimumDriverVersion(l.goos, l.required))
		return nil, rec
	}

	return &DriverContext{Driver: driver, Encode: encode}, nil
}
