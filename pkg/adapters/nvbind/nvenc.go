package nvbind

import (
	"github.com/ebitengine/purego"

	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/ports"
)

// Slots in NV_ENCODE_API_FUNCTION_LIST, counted from the first function
// pointer after the version and reserved words.
const (
	slotGetEncodeGUIDCount  = 1
	slotGetEncodeGUIDs      = 4
	slotDestroyEncoder      = 27
	slotOpenEncodeSessionEx = 29

	// functionListSlots is larger than the named entries plus the reserved
	// tail of every released header, so the driver never writes past it.
	functionListSlots = 320
)

// functionList mirrors NV_ENCODE_API_FUNCTION_LIST. The driver fills fns
// during NvEncodeAPICreateInstance.
type functionList struct {
	version  uint32
	reserved uint32
	fns      [functionListSlots]uintptr
}

// nvencAPI implements ports.EncodeBindings over the NVENC library.
type nvencAPI struct {
	lib    *library
	list   *functionList
	closed bool

	getMaxSupportedVersion func(version *uint32) nvapi.NVENCStatus
	createInstance         func(list *functionList) nvapi.NVENCStatus

	// Filled from the function list once an instance exists.
	openEncodeSessionEx func(params *nvapi.OpenSessionParams, enc *nvapi.Encoder) nvapi.NVENCStatus
	getEncodeGUIDCount  func(enc nvapi.Encoder, count *uint32) nvapi.NVENCStatus
	getEncodeGUIDs      func(enc nvapi.Encoder, guids *nvapi.GUID, size uint32, count *uint32) nvapi.NVENCStatus
	destroyEncoder      func(enc nvapi.Encoder) nvapi.NVENCStatus
}

func openNVENC(name string) (*nvencAPI, error) {
	lib, err := openLibrary(name)
	if err != nil {
		return nil, err
	}

	a := &nvencAPI{lib: lib}
	err = lib.bind([]symbol{
		{"NvEncodeAPIGetMaxSupportedVersion", &a.getMaxSupportedVersion},
		{"NvEncodeAPICreateInstance", &a.createInstance},
	})
	if err != nil {
		lib.close()
		return nil, err
	}
	return a, nil
}

func (a *nvencAPI) MaxSupportedVersion() (uint32, nvapi.NVENCStatus) {
	if a.closed {
		return 0, nvapi.EncErrInvalidCall
	}
	var version uint32
	status := a.getMaxSupportedVersion(&version)
	return version, status
}

// CreateInstance fills the function list and binds the session entry points
// from it.
func (a *nvencAPI) CreateInstance(version uint32) nvapi.NVENCStatus {
	if a.closed {
		return nvapi.EncErrInvalidCall
	}
	list := &functionList{version: version}
	if status := a.createInstance(list); status != nvapi.EncSuccess {
		return status
	}
	a.list = list
	a.bindSlot(&a.openEncodeSessionEx, slotOpenEncodeSessionEx)
	a.bindSlot(&a.getEncodeGUIDCount, slotGetEncodeGUIDCount)
	a.bindSlot(&a.getEncodeGUIDs, slotGetEncodeGUIDs)
	a.bindSlot(&a.destroyEncoder, slotDestroyEncoder)
	return nvapi.EncSuccess
}

// bindSlot leaves fptr nil when the driver left the slot empty.
func (a *nvencAPI) bindSlot(fptr interface{}, slot int) {
	if addr := a.list.fns[slot]; addr != 0 {
		purego.RegisterFunc(fptr, addr)
	}
}

// ready reports whether session calls may go through: an instance must
// exist and the driver must have filled the slot.
func (a *nvencAPI) ready(bound bool) nvapi.NVENCStatus {
	switch {
	case a.closed || a.list == nil:
		return nvapi.EncErrInvalidCall
	case !bound:
		return nvapi.EncErrUnimplemented
	default:
		return nvapi.EncSuccess
	}
}

func (a *nvencAPI) OpenEncodeSession(params *nvapi.OpenSessionParams) (nvapi.Encoder, nvapi.NVENCStatus) {
	if status := a.ready(a.openEncodeSessionEx != nil); status != nvapi.EncSuccess {
		return 0, status
	}
	var enc nvapi.Encoder
	status := a.openEncodeSessionEx(params, &enc)
	return enc, status
}

func (a *nvencAPI) EncodeGUIDCount(enc nvapi.Encoder) (uint32, nvapi.NVENCStatus) {
	if status := a.ready(a.getEncodeGUIDCount != nil); status != nvapi.EncSuccess {
		return 0, status
	}
	var count uint32
	status := a.getEncodeGUIDCount(enc, &count)
	return count, status
}

func (a *nvencAPI) EncodeGUIDs(enc nvapi.Encoder, dst []nvapi.GUID) (uint32, nvapi.NVENCStatus) {
	if status := a.ready(a.getEncodeGUIDs != nil); status != nvapi.EncSuccess {
		return 0, status
	}
	var first *nvapi.GUID
	if len(dst) > 0 {
		first = &dst[0]
	}
	var count uint32
	status := a.getEncodeGUIDs(enc, first, uint32(len(dst)), &count)
	return count, status
}

func (a *nvencAPI) DestroyEncoder(enc nvapi.Encoder) nvapi.NVENCStatus {
	if status := a.ready(a.destroyEncoder != nil); status != nvapi.EncSuccess {
		return status
	}
	return a.destroyEncoder(enc)
}

// Close unloads the library and drops the function list.
func (a *nvencAPI) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.list = nil
	return a.lib.close()
}

var _ ports.EncodeBindings = (*nvencAPI)(nil)
