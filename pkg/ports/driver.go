package ports

import "github.com/user/nvencprobe/pkg/nvapi"

// DriverBindings is the dynamically resolved CUDA driver function table.
// Calls are valid only between a successful open and Close.
type DriverBindings interface {
	// Init initializes the driver. Must precede any device query.
	Init(flags uint32) nvapi.CUResult

	// DeviceCount returns the number of compute devices.
	DeviceCount() (int, nvapi.CUResult)

	// Device returns the handle for the device at ordinal.
	Device(ordinal int) (nvapi.CUDevice, nvapi.CUResult)

	// DeviceName writes the NUL-terminated device name into buf.
	// len(buf) is the capacity passed to the driver; nothing is written past it.
	DeviceName(buf []byte, dev nvapi.CUDevice) nvapi.CUResult

	// CtxCreate creates a context on dev and pushes it as current on the calling thread.
	CtxCreate(flags uint32, dev nvapi.CUDevice) (nvapi.CUContext, nvapi.CUResult)

	// CtxPopCurrent pops the current context, restoring the previous one.
	CtxPopCurrent() (nvapi.CUContext, nvapi.CUResult)

	// CtxDestroy destroys a context that is no longer current.
	CtxDestroy(ctx nvapi.CUContext) nvapi.CUResult

	// ErrorName returns the driver's symbolic name for code, if known.
	ErrorName(code nvapi.CUResult) (string, bool)

	// ErrorString returns the driver's description for code, if known.
	ErrorString(code nvapi.CUResult) (string, bool)

	// Close releases the native library.
	Close() error
}

// EncodeBindings is the dynamically resolved NVENC API function table.
type EncodeBindings interface {
	// MaxSupportedVersion returns the highest API version the driver supports,
	// packed as major<<4 | minor.
	MaxSupportedVersion() (uint32, nvapi.NVENCStatus)

	// CreateInstance stamps the function list with version and fills it.
	// Session calls are valid only after it succeeds.
	CreateInstance(version uint32) nvapi.NVENCStatus

	// OpenEncodeSession opens a session against the device in params.
	OpenEncodeSession(params *nvapi.OpenSessionParams) (nvapi.Encoder, nvapi.NVENCStatus)

	// EncodeGUIDCount returns the number of codec GUIDs the session supports.
	EncodeGUIDCount(enc nvapi.Encoder) (uint32, nvapi.NVENCStatus)

	// EncodeGUIDs fills dst, passing len(dst) as capacity, and returns the
	// number of entries the driver reported.
	EncodeGUIDs(enc nvapi.Encoder, dst []nvapi.GUID) (uint32, nvapi.NVENCStatus)

	// DestroyEncoder closes the session.
	DestroyEncoder(enc nvapi.Encoder) nvapi.NVENCStatus

	// Close releases the native library.
	Close() error
}

// BindingsOpener resolves the two function tables from their native libraries.
type BindingsOpener interface {
	OpenDriver() (DriverBindings, error)
	OpenEncode() (EncodeBindings, error)
}
