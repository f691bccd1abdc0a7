package nvbind

import (
	"unsafe"

	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/ports"
)

// cudaDeinitialized is CUDA_ERROR_DEINITIALIZED, returned for calls made
// after the library has been closed.
const cudaDeinitialized nvapi.CUResult = 4

// maxErrorStringLen bounds reads of driver-owned C strings.
const maxErrorStringLen = 1024

// cudaDriver implements ports.DriverBindings over the CUDA driver library.
type cudaDriver struct {
	lib    *library
	closed bool

	cuInit           func(flags uint32) nvapi.CUResult
	cuDeviceGetCount func(count *int32) nvapi.CUResult
	cuDeviceGet      func(dev *nvapi.CUDevice, ordinal int32) nvapi.CUResult
	cuDeviceGetName  func(name *byte, length int32, dev nvapi.CUDevice) nvapi.CUResult
	cuCtxCreate      func(ctx *nvapi.CUContext, flags uint32, dev nvapi.CUDevice) nvapi.CUResult
	cuCtxPopCurrent  func(ctx *nvapi.CUContext) nvapi.CUResult
	cuCtxDestroy     func(ctx nvapi.CUContext) nvapi.CUResult
	cuGetErrorName   func(code nvapi.CUResult, str **byte) nvapi.CUResult
	cuGetErrorString func(code nvapi.CUResult, str **byte) nvapi.CUResult
}

func openCUDA(name string) (*cudaDriver, error) {
	lib, err := openLibrary(name)
	if err != nil {
		return nil, err
	}

	d := &cudaDriver{lib: lib}
	err = lib.bind([]symbol{
		{"cuInit", &d.cuInit},
		{"cuDeviceGetCount", &d.cuDeviceGetCount},
		{"cuDeviceGet", &d.cuDeviceGet},
		{"cuDeviceGetName", &d.cuDeviceGetName},
		{"cuCtxCreate_v2", &d.cuCtxCreate},
		{"cuCtxPopCurrent_v2", &d.cuCtxPopCurrent},
		{"cuCtxDestroy_v2", &d.cuCtxDestroy},
		{"cuGetErrorName", &d.cuGetErrorName},
		{"cuGetErrorString", &d.cuGetErrorString},
	})
	if err != nil {
		lib.close()
		return nil, err
	}
	return d, nil
}

func (d *cudaDriver) Init(flags uint32) nvapi.CUResult {
	if d.closed {
		return cudaDeinitialized
	}
	return d.cuInit(flags)
}

func (d *cudaDriver) DeviceCount() (int, nvapi.CUResult) {
	if d.closed {
		return 0, cudaDeinitialized
	}
	var count int32
	code := d.cuDeviceGetCount(&count)
	return int(count), code
}

func (d *cudaDriver) Device(ordinal int) (nvapi.CUDevice, nvapi.CUResult) {
	if d.closed {
		return 0, cudaDeinitialized
	}
	var dev nvapi.CUDevice
	code := d.cuDeviceGet(&dev, int32(ordinal))
	return dev, code
}

func (d *cudaDriver) DeviceName(buf []byte, dev nvapi.CUDevice) nvapi.CUResult {
	if d.closed {
		return cudaDeinitialized
	}
	if len(buf) == 0 {
		return d.cuDeviceGetName(nil, 0, dev)
	}
	return d.cuDeviceGetName(&buf[0], int32(len(buf)), dev)
}

func (d *cudaDriver) CtxCreate(flags uint32, dev nvapi.CUDevice) (nvapi.CUContext, nvapi.CUResult) {
	if d.closed {
		return 0, cudaDeinitialized
	}
	var ctx nvapi.CUContext
	code := d.cuCtxCreate(&ctx, flags, dev)
	return ctx, code
}

func (d *cudaDriver) CtxPopCurrent() (nvapi.CUContext, nvapi.CUResult) {
	if d.closed {
		return 0, cudaDeinitialized
	}
	var ctx nvapi.CUContext
	code := d.cuCtxPopCurrent(&ctx)
	return ctx, code
}

func (d *cudaDriver) CtxDestroy(ctx nvapi.CUContext) nvapi.CUResult {
	if d.closed {
		return cudaDeinitialized
	}
	return d.cuCtxDestroy(ctx)
}

func (d *cudaDriver) ErrorName(code nvapi.CUResult) (string, bool) {
	return d.describe(d.cuGetErrorName, code)
}

func (d *cudaDriver) ErrorString(code nvapi.CUResult) (string, bool) {
	return d.describe(d.cuGetErrorString, code)
}

func (d *cudaDriver) describe(fn func(nvapi.CUResult, **byte) nvapi.CUResult, code nvapi.CUResult) (string, bool) {
	if d.closed {
		return "", false
	}
	var str *byte
	if fn(code, &str) != nvapi.CUDASuccess || str == nil {
		return "", false
	}
	return goString(str, maxErrorStringLen), true
}

// Close unloads the library. Later calls report CUDA_ERROR_DEINITIALIZED.
func (d *cudaDriver) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.lib.close()
}

// goString copies a NUL-terminated C string owned by the driver, reading at
// most max bytes.
func goString(p *byte, max int) string {
	if p == nil {
		return ""
	}
	n := 0
	for n < max && *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

var _ ports.DriverBindings = (*cudaDriver)(nil)
