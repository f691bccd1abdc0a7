package nvapi

// NVENCStatus is a status code returned by every NVENC API call.
type NVENCStatus uint32

// NVENC status codes as defined by nvEncodeAPI.h.
const (
	EncSuccess                   NVENCStatus = 0
	EncErrNoEncodeDevice         NVENCStatus = 1
	EncErrUnsupportedDevice      NVENCStatus = 2
	EncErrInvalidEncoderDevice   NVENCStatus = 3
	EncErrInvalidDevice          NVENCStatus = 4
	EncErrDeviceNotExist         NVENCStatus = 5
	EncErrInvalidPtr             NVENCStatus = 6
	EncErrInvalidEvent           NVENCStatus = 7
	EncErrInvalidParam           NVENCStatus = 8
	EncErrInvalidCall            NVENCStatus = 9
	EncErrOutOfMemory            NVENCStatus = 10
	EncErrEncoderNotInitialized  NVENCStatus = 11
	EncErrUnsupportedParam       NVENCStatus = 12
	EncErrLockBusy               NVENCStatus = 13
	EncErrNotEnoughBuffer        NVENCStatus = 14
	EncErrInvalidVersion         NVENCStatus = 15
	EncErrMapFailed              NVENCStatus = 16
	EncErrNeedMoreInput          NVENCStatus = 17
	EncErrEncoderBusy            NVENCStatus = 18
	EncErrEventNotRegistered     NVENCStatus = 19
	EncErrGeneric                NVENCStatus = 20
	EncErrIncompatibleClientKey  NVENCStatus = 21
	EncErrUnimplemented          NVENCStatus = 22
	EncErrResourceRegisterFailed NVENCStatus = 23
	EncErrResourceNotRegistered  NVENCStatus = 24
	EncErrResourceNotMapped      NVENCStatus = 25
)

// DeviceType tags the kind of device handle passed when opening a session.
type DeviceType uint32

// DeviceTypeCUDA marks the session device as a CUDA context.
const DeviceTypeCUDA DeviceType = 0x1

// Encoder is the opaque session handle returned by nvEncOpenEncodeSessionEx.
type Encoder uintptr

// OpenSessionParams mirrors NV_ENC_OPEN_ENCODE_SESSION_EX_PARAMS.
type OpenSessionParams struct {
	Version    uint32
	DeviceType DeviceType
	Device     uintptr
	Reserved   uintptr
	APIVersion uint32
	Reserved1  [253]uint32
	Reserved2  [64]uintptr
}

// NewOpenSessionParams returns session parameters for a CUDA context, with
// the struct version and API version stamped for the given build version.
func NewOpenSessionParams(v Version, ctx CUContext) OpenSessionParams {
	return OpenSessionParams{
		Version:    v.StructVersion(1),
		DeviceType: DeviceTypeCUDA,
		Device:     uintptr(ctx),
		APIVersion: v.APIVersion(),
	}
}
