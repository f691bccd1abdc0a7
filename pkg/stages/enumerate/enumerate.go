// Package enumerate implements the CUDA device enumeration stage.
package enumerate

import (
	"bytes"
	"context"

	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/nverr"
	"github.com/user/nvencprobe/pkg/pipeline"
	"github.com/user/nvencprobe/pkg/ports"
)

// Stage lists the compute devices exposed by the driver.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new enumerate stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger,
	}
}

// Execute initializes the driver and lists devices in native order.
// Any driver call failure aborts enumeration.
func (s *Stage) Execute(ctx context.Context, input pipeline.EnumerateInput) (pipeline.EnumerateResult, error) {
	result := pipeline.EnumerateResult{}
	drv := input.Driver
	log := s.logger.WithComponent("enumerate")

	if err := nverr.Driver("cuInit", drv.Init(0), drv); err != nil {
		s.logger.Error("%s", err)
		return result, err
	}

	count, code := drv.DeviceCount()
	if err := nverr.Driver("cuDeviceGetCount", code, drv); err != nil {
		s.logger.Error("%s", err)
		return result, err
	}
	if count < 0 {
		rec := &nverr.Record{
			Kind:        nverr.KindDriverCall,
			Op:          "cuDeviceGetCount",
			NativeCode:  int64(count),
			Description: "driver reported negative device count",
		}
		s.logger.Error("%s", rec)
		return result, rec
	}
	log.Debug("Driver reports %d devices", count)

	result.Devices = make([]pipeline.Device, 0, count)
	for i := 0; i < count; i++ {
		dev, code := drv.Device(i)
		if err := nverr.Driver("cuDeviceGet", code, drv); err != nil {
			s.logger.Error("%s", err)
			return result, err
		}

		buf := make([]byte, nvapi.DeviceNameCapacity)
		if err := nverr.Driver("cuDeviceGetName", drv.DeviceName(buf, dev), drv); err != nil {
			s.logger.Error("%s", err)
			return result, err
		}

		result.Devices = append(result.Devices, pipeline.Device{
			Index:  i,
			Name:   cString(buf),
			Handle: dev,
		})
	}

	return result, nil
}

// cString returns buf up to its first NUL, or all of buf when unterminated.
func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
