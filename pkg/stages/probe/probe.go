// Package probe implements the per-device NVENC capability probe stage.
package probe

import (
	"context"
	"fmt"

	"github.com/user/nvencprobe/pkg/codec"
	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/nverr"
	"github.com/user/nvencprobe/pkg/pipeline"
	"github.com/user/nvencprobe/pkg/ports"
)

// MaxGUIDCount bounds the codec count a driver may advertise. Larger counts
// are treated as an allocation failure.
const MaxGUIDCount = 1024

// Allocator returns a buffer of count GUIDs.
type Allocator func(count uint32) ([]nvapi.GUID, error)

// DefaultAllocator allocates up to MaxGUIDCount entries.
func DefaultAllocator(count uint32) ([]nvapi.GUID, error) {
	if count > MaxGUIDCount {
		return nil, fmt.Errorf("codec count %d exceeds limit %d", count, MaxGUIDCount)
	}
	return make([]nvapi.GUID, count), nil
}

// Stage opens a short-lived encode session on a device context, reads the
// supported codec GUIDs and closes the session.
type Stage struct {
	logger ports.Logger
	alloc  Allocator
}

// NewStage creates a new probe stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger,
		alloc:  DefaultAllocator,
	}
}

// WithAllocator replaces the GUID buffer allocator.
func (s *Stage) WithAllocator(alloc Allocator) *Stage {
	s.alloc = alloc
	return s
}

// Execute probes the device. Once a session has been opened it is destroyed
// exactly once before returning, whatever happens in between.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProbeInput) (result pipeline.ProbeResult, err error) {
	enc := input.Encode
	log := s.logger.WithComponent("probe")

	params := nvapi.NewOpenSessionParams(input.Required, input.Context)
	session, status := enc.OpenEncodeSession(&params)
	if err := nverr.Encode("nvEncOpenEncodeSessionEx", status); err != nil {
		s.logger.Error("%s", err)
		return result, err
	}
	log.Debug("Opened session 0x%x on context 0x%x", uintptr(session), uintptr(input.Context))

	defer func() {
		derr := nverr.Encode("nvEncDestroyEncoder", enc.DestroyEncoder(session))
		if derr != nil {
			s.logger.Error("%s", derr)
			if err == nil {
				err = derr
			}
			return
		}
		log.Debug("Closed session 0x%x", uintptr(session))
	}()

	count, status := enc.EncodeGUIDCount(session)
	if err := nverr.Encode("nvEncGetEncodeGUIDCount", status); err != nil {
		s.logger.Error("%s", err)
		return result, err
	}

	guids, aerr := s.alloc(count)
	if aerr != nil || uint32(len(guids)) < count {
		rec := nverr.OutOfMemory("nvEncGetEncodeGUIDs", count)
		rec.Err = aerr
		s.logger.Error("%s", rec)
		return result, rec
	}
	guids = guids[:count]

	filled, status := enc.EncodeGUIDs(session, guids)
	if err := nverr.Encode("nvEncGetEncodeGUIDs", status); err != nil {
		s.logger.Error("%s", err)
		return result, err
	}
	if filled > count {
		log.Warn("Driver reported %d codecs for a buffer of %d", filled, count)
		filled = count
	}

	result.Codecs = codec.Match(guids[:filled])
	log.Debug("Driver returned %d codec GUIDs, %d recognised", filled, len(result.Codecs))
	return result, nil
}
