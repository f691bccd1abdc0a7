// Package negotiate implements the NVENC interface version negotiation stage.
package negotiate

import (
	"context"

	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/nverr"
	"github.com/user/nvencprobe/pkg/pipeline"
	"github.com/user/nvencprobe/pkg/ports"
)

// Stage compares the driver's maximum NVENC version with the required one
// and, when compatible, creates the API function list instance.
type Stage struct {
	logger ports.Logger
	goos   string
}

// NewStage creates a new negotiate stage. goos selects the minimum-driver
// hint printed on a version mismatch.
func NewStage(logger ports.Logger, goos string) *Stage {
	return &Stage{
		logger: logger,
		goos:   goos,
	}
}

// Execute negotiates the version. Every failure is fatal for the run.
func (s *Stage) Execute(ctx context.Context, input pipeline.NegotiateInput) (pipeline.NegotiateResult, error) {
	result := pipeline.NegotiateResult{}
	log := s.logger.WithComponent("negotiate")

	packed, status := input.Encode.MaxSupportedVersion()
	if err := nverr.Encode("NvEncodeAPIGetMaxSupportedVersion", status); err != nil {
		s.logger.Error("%s", err)
		return result, err
	}
	result.Driver = nvapi.UnpackVersion(packed)
	s.logger.Info("Loaded Nvenc version %d.%d", result.Driver.Major, result.Driver.Minor)

	if !input.Required.SupportedBy(result.Driver) {
		rec := nverr.VersionIncompatible(input.Required, result.Driver)
		s.logger.Error("%s", rec)
		s.logger.Error("The minimum required Nvidia driver for nvenc is %s or newer",
			nvapi.MinimumDriverVersion(s.goos, input.Required))
		return result, rec
	}

	version := input.Required.FunctionListVersion()
	log.Debug("Creating API instance with function list version 0x%08x", version)
	if err := nverr.Encode("NvEncodeAPICreateInstance", input.Encode.CreateInstance(version)); err != nil {
		s.logger.Error("%s", err)
		return result, err
	}

	s.logger.Info("Nvenc initialized successfully")
	return result, nil
}
