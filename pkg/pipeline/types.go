package pipeline

import (
	"github.com/user/nvencprobe/pkg/codec"
	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/ports"
)

// =============================================================================
// Negotiate Stage Types
// =============================================================================

// NegotiateInput contains the encode table and the version this build needs.
type NegotiateInput struct {
	Encode   ports.EncodeBindings
	Required nvapi.Version
}

// NegotiateResult contains the driver's advertised maximum version.
type NegotiateResult struct {
	Driver nvapi.Version
}

// =============================================================================
// Enumerate Stage Types
// =============================================================================

// EnumerateInput contains the driver table to enumerate.
type EnumerateInput struct {
	Driver ports.DriverBindings
}

// Device describes one compute device. Index is stable for one run only.
type Device struct {
	Index  int
	Name   string
	Handle nvapi.CUDevice
}

// EnumerateResult lists devices in native enumeration order.
type EnumerateResult struct {
	Devices []Device
}

// =============================================================================
// Probe Stage Types
// =============================================================================

// ProbeInput contains the active device context and the encode table.
type ProbeInput struct {
	Context  nvapi.CUContext
	Encode   ports.EncodeBindings
	Required nvapi.Version
}

// ProbeResult contains the matched codecs in table order.
type ProbeResult struct {
	Codecs []codec.Codec
}
