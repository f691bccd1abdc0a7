// Package orchestrator coordinates loading, negotiation, enumeration and the
// per-device probe.
package orchestrator

import (
	"context"
	"runtime"

	"github.com/user/nvencprobe/pkg/codec"
	"github.com/user/nvencprobe/pkg/loader"
	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/nverr"
	"github.com/user/nvencprobe/pkg/pipeline"
	"github.com/user/nvencprobe/pkg/ports"
	"github.com/user/nvencprobe/pkg/report"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Required is the NVENC API version the build expects.
	Required nvapi.Version

	// ContextFlags are passed to cuCtxCreate for every device.
	ContextFlags uint32
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Required:     nvapi.BuildVersion,
		ContextFlags: nvapi.CtxSchedBlockingSync,
	}
}

// Loader produces the driver context for a run.
type Loader interface {
	Load() (*loader.DriverContext, error)
}

// RunResult contains the outcome of a run.
type RunResult struct {
	Report *report.Report
}

// Orchestrator coordinates the execution of all stages.
type Orchestrator struct {
	loader         Loader
	negotiateStage pipeline.Stage[pipeline.NegotiateInput, pipeline.NegotiateResult]
	enumerateStage pipeline.Stage[pipeline.EnumerateInput, pipeline.EnumerateResult]
	probeStage     pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult]
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	loader Loader,
	negotiateStage pipeline.Stage[pipeline.NegotiateInput, pipeline.NegotiateResult],
	enumerateStage pipeline.Stage[pipeline.EnumerateInput, pipeline.EnumerateResult],
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult],
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		loader:         loader,
		negotiateStage: negotiateStage,
		enumerateStage: enumerateStage,
		probeStage:     probeStage,
		logger:         logger,
	}
}

// Run executes a complete probe. Load, negotiation and enumeration failures
// are returned; per-device failures are recorded in the report only.
// The driver context is released on every path once loaded.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	result := RunResult{}

	// The CUDA current-context stack is per OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	dc, err := o.loader.Load()
	if err != nil {
		return result, err
	}
	defer func() {
		if err := dc.Release(); err != nil {
			o.logger.Warn("Failed to release driver libraries: %s", err)
		}
	}()

	// 1. Version negotiation
	negotiated, err := o.negotiateStage.Execute(ctx, pipeline.NegotiateInput{
		Encode:   dc.Encode,
		Required: config.Required,
	})
	if err != nil {
		return result, err
	}

	// 2. Device enumeration
	enumerated, err := o.enumerateStage.Execute(ctx, pipeline.EnumerateInput{
		Driver: dc.Driver,
	})
	if err != nil {
		return result, err
	}

	// 3. Per-device probe, strictly one context at a time
	builder := report.NewBuilder().WithVersions(config.Required, negotiated.Driver)
	for _, dev := range enumerated.Devices {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		codecs, err := o.probeDevice(ctx, dc, dev, config)
		if err != nil {
			o.logger.Warn("Skipping device %d (%s): %s", dev.Index, dev.Name, nverr.KindOf(err))
		}
		builder.AddDevice(dev.Index, dev.Name, codecs, err)
	}

	result.Report = builder.Build()
	return result, nil
}

// probeDevice makes the device's context current, probes it and pops the
// context again, restoring whatever was current before.
func (o *Orchestrator) probeDevice(ctx context.Context, dc *loader.DriverContext, dev pipeline.Device, config Config) ([]codec.Codec, error) {
	drv := dc.Driver
	log := o.logger.WithComponent("device")

	cuCtx, code := drv.CtxCreate(config.ContextFlags, dev.Handle)
	if err := nverr.Driver("cuCtxCreate", code, drv); err != nil {
		o.logger.Error("%s", err)
		return nil, err
	}
	log.Debug("Context 0x%x active for device %d", uintptr(cuCtx), dev.Index)

	defer func() {
		if _, code := drv.CtxPopCurrent(); code != nvapi.CUDASuccess {
			o.logger.Warn("%s", nverr.Driver("cuCtxPopCurrent", code, drv))
		}
		if code := drv.CtxDestroy(cuCtx); code != nvapi.CUDASuccess {
			o.logger.Warn("%s", nverr.Driver("cuCtxDestroy", code, drv))
		}
		log.Debug("Context 0x%x released", uintptr(cuCtx))
	}()

	probed, err := o.probeStage.Execute(ctx, pipeline.ProbeInput{
		Context:  cuCtx,
		Encode:   dc.Encode,
		Required: config.Required,
	})
	if err != nil {
		return nil, err
	}
	return probed.Codecs, nil
}
