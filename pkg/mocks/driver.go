package mocks

import (
	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/ports"
)

// contextBase offsets fake context handles from device ordinals.
const contextBase = 0x1000

// ContextFor returns the context handle the mock creates for a device ordinal.
func ContextFor(dev int) nvapi.CUContext {
	return nvapi.CUContext(contextBase + dev)
}

// DriverBindings is a mock implementation of ports.DriverBindings.
// By default it exposes one device per entry in Devices and keeps a
// per-thread style current-context stack.
type DriverBindings struct {
	Devices []string

	// Errors maps result codes to name/description pairs for translation.
	Errors map[nvapi.CUResult][2]string

	InitFunc          func(flags uint32) nvapi.CUResult
	DeviceCountFunc   func() (int, nvapi.CUResult)
	DeviceFunc        func(ordinal int) (nvapi.CUDevice, nvapi.CUResult)
	DeviceNameFunc    func(buf []byte, dev nvapi.CUDevice) nvapi.CUResult
	CtxCreateFunc     func(flags uint32, dev nvapi.CUDevice) (nvapi.CUContext, nvapi.CUResult)
	CtxPopCurrentFunc func() (nvapi.CUContext, nvapi.CUResult)
	CtxDestroyFunc    func(ctx nvapi.CUContext) nvapi.CUResult
	CloseFunc         func() error

	// Recorded calls for verification
	InitCalls  int
	Stack      []nvapi.CUContext
	MaxDepth   int
	Created    []nvapi.CUContext
	Popped     []nvapi.CUContext
	Destroyed  []nvapi.CUContext
	CloseCalls int
}

func (m *DriverBindings) Init(flags uint32) nvapi.CUResult {
	m.InitCalls++
	if m.InitFunc != nil {
		return m.InitFunc(flags)
	}
	return nvapi.CUDASuccess
}

func (m *DriverBindings) DeviceCount() (int, nvapi.CUResult) {
	if m.DeviceCountFunc != nil {
		return m.DeviceCountFunc()
	}
	return len(m.Devices), nvapi.CUDASuccess
}

func (m *DriverBindings) Device(ordinal int) (nvapi.CUDevice, nvapi.CUResult) {
	if m.DeviceFunc != nil {
		return m.DeviceFunc(ordinal)
	}
	return nvapi.CUDevice(ordinal), nvapi.CUDASuccess
}

// DeviceName copies the name into buf, NUL-terminating when there is room.
func (m *DriverBindings) DeviceName(buf []byte, dev nvapi.CUDevice) nvapi.CUResult {
	if m.DeviceNameFunc != nil {
		return m.DeviceNameFunc(buf, dev)
	}
	n := copy(buf, m.Devices[dev])
	if n < len(buf) {
		buf[n] = 0
	}
	return nvapi.CUDASuccess
}

func (m *DriverBindings) CtxCreate(flags uint32, dev nvapi.CUDevice) (nvapi.CUContext, nvapi.CUResult) {
	if m.CtxCreateFunc != nil {
		return m.CtxCreateFunc(flags, dev)
	}
	ctx := ContextFor(int(dev))
	m.Created = append(m.Created, ctx)
	m.Stack = append(m.Stack, ctx)
	if len(m.Stack) > m.MaxDepth {
		m.MaxDepth = len(m.Stack)
	}
	return ctx, nvapi.CUDASuccess
}

func (m *DriverBindings) CtxPopCurrent() (nvapi.CUContext, nvapi.CUResult) {
	if m.CtxPopCurrentFunc != nil {
		return m.CtxPopCurrentFunc()
	}
	if len(m.Stack) == 0 {
		return 0, 201 // CUDA_ERROR_INVALID_CONTEXT
	}
	ctx := m.Stack[len(m.Stack)-1]
	m.Stack = m.Stack[:len(m.Stack)-1]
	m.Popped = append(m.Popped, ctx)
	return ctx, nvapi.CUDASuccess
}

func (m *DriverBindings) CtxDestroy(ctx nvapi.CUContext) nvapi.CUResult {
	m.Destroyed = append(m.Destroyed, ctx)
	if m.CtxDestroyFunc != nil {
		return m.CtxDestroyFunc(ctx)
	}
	return nvapi.CUDASuccess
}

func (m *DriverBindings) ErrorName(code nvapi.CUResult) (string, bool) {
	e, ok := m.Errors[code]
	return e[0], ok
}

func (m *DriverBindings) ErrorString(code nvapi.CUResult) (string, bool) {
	e, ok := m.Errors[code]
	return e[1], ok
}

func (m *DriverBindings) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.DriverBindings = (*DriverBindings)(nil)
