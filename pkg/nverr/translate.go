package nverr

import "github.com/user/nvencprobe/pkg/nvapi"

// UnknownName and UnknownDescription describe NVENC codes absent from the table.
const (
	UnknownName        = "Unknown"
	UnknownDescription = "unknown error"
)

type encodeStatus struct {
	code nvapi.NVENCStatus
	name string
	desc string
}

var encodeStatuses = []encodeStatus{
	{nvapi.EncSuccess, "NV_ENC_SUCCESS", "success"},
	{nvapi.EncErrNoEncodeDevice, "NV_ENC_ERR_NO_ENCODE_DEVICE", "no encode device"},
	{nvapi.EncErrUnsupportedDevice, "NV_ENC_ERR_UNSUPPORTED_DEVICE", "unsupported device"},
	{nvapi.EncErrInvalidEncoderDevice, "NV_ENC_ERR_INVALID_ENCODERDEVICE", "invalid encoder device"},
	{nvapi.EncErrInvalidDevice, "NV_ENC_ERR_INVALID_DEVICE", "invalid device"},
	{nvapi.EncErrDeviceNotExist, "NV_ENC_ERR_DEVICE_NOT_EXIST", "device does not exist"},
	{nvapi.EncErrInvalidPtr, "NV_ENC_ERR_INVALID_PTR", "invalid ptr"},
	{nvapi.EncErrInvalidEvent, "NV_ENC_ERR_INVALID_EVENT", "invalid event"},
	{nvapi.EncErrInvalidParam, "NV_ENC_ERR_INVALID_PARAM", "invalid param"},
	{nvapi.EncErrInvalidCall, "NV_ENC_ERR_INVALID_CALL", "invalid call"},
	{nvapi.EncErrOutOfMemory, "NV_ENC_ERR_OUT_OF_MEMORY", "out of memory"},
	{nvapi.EncErrEncoderNotInitialized, "NV_ENC_ERR_ENCODER_NOT_INITIALIZED", "encoder not initialized"},
	{nvapi.EncErrUnsupportedParam, "NV_ENC_ERR_UNSUPPORTED_PARAM", "unsupported param"},
	{nvapi.EncErrLockBusy, "NV_ENC_ERR_LOCK_BUSY", "lock busy"},
	{nvapi.EncErrNotEnoughBuffer, "NV_ENC_ERR_NOT_ENOUGH_BUFFER", "not enough buffer"},
	{nvapi.EncErrInvalidVersion, "NV_ENC_ERR_INVALID_VERSION", "invalid version"},
	{nvapi.EncErrMapFailed, "NV_ENC_ERR_MAP_FAILED", "map failed"},
	{nvapi.EncErrNeedMoreInput, "NV_ENC_ERR_NEED_MORE_INPUT", "need more input"},
	{nvapi.EncErrEncoderBusy, "NV_ENC_ERR_ENCODER_BUSY", "encoder busy"},
	{nvapi.EncErrEventNotRegistered, "NV_ENC_ERR_EVENT_NOT_REGISTERD", "event not registered"},
	{nvapi.EncErrGeneric, "NV_ENC_ERR_GENERIC", "generic error"},
	{nvapi.EncErrIncompatibleClientKey, "NV_ENC_ERR_INCOMPATIBLE_CLIENT_KEY", "incompatible client key"},
	{nvapi.EncErrUnimplemented, "NV_ENC_ERR_UNIMPLEMENTED", "unimplemented"},
	{nvapi.EncErrResourceRegisterFailed, "NV_ENC_ERR_RESOURCE_REGISTER_FAILED", "resource register failed"},
	{nvapi.EncErrResourceNotRegistered, "NV_ENC_ERR_RESOURCE_NOT_REGISTERED", "resource not registered"},
	{nvapi.EncErrResourceNotMapped, "NV_ENC_ERR_RESOURCE_NOT_MAPPED", "resource not mapped"},
}

// DescribeEncode looks status up in the static table. Codes not in the table
// yield UnknownName and UnknownDescription with known == false.
func DescribeEncode(status nvapi.NVENCStatus) (name, desc string, known bool) {
	for _, s := range encodeStatuses {
		if s.code == status {
			return s.name, s.desc, true
		}
	}
	return UnknownName, UnknownDescription, false
}

// Encode translates the result of the NVENC call op. Success yields nil.
func Encode(op string, status nvapi.NVENCStatus) error {
	if status == nvapi.EncSuccess {
		return nil
	}
	name, desc, _ := DescribeEncode(status)
	return &Record{
		Kind:        KindEncodeCall,
		Op:          op,
		NativeCode:  int64(status),
		Name:        name,
		Description: desc,
	}
}

// ErrorNamer resolves CUDA result codes to the driver's own strings.
type ErrorNamer interface {
	ErrorName(code nvapi.CUResult) (string, bool)
	ErrorString(code nvapi.CUResult) (string, bool)
}

// Driver translates the result of the CUDA call op. Success yields nil.
// Name and description come from the driver; when either is missing the
// description reads "no description".
func Driver(op string, code nvapi.CUResult, namer ErrorNamer) error {
	if code == nvapi.CUDASuccess {
		return nil
	}
	rec := &Record{
		Kind:        KindDriverCall,
		Op:          op,
		NativeCode:  int64(code),
		Description: "no description",
	}
	if namer == nil {
		return rec
	}
	name, okName := namer.ErrorName(code)
	desc, okDesc := namer.ErrorString(code)
	if okName && okDesc {
		rec.Name = name
		rec.Description = desc
	}
	return rec
}
