package nvbind

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/user/nvencprobe/pkg/nvapi"
)

func TestFunctionListLayout(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layout offsets are checked on 64-bit targets only")
	}

	var list functionList
	base := unsafe.Offsetof(list.fns)
	if base != 8 {
		t.Fatalf("function pointers start at %d, want 8", base)
	}

	tests := []struct {
		name   string
		slot   int
		offset uintptr
	}{
		{"nvEncGetEncodeGUIDCount", slotGetEncodeGUIDCount, 16},
		{"nvEncGetEncodeGUIDs", slotGetEncodeGUIDs, 40},
		{"nvEncDestroyEncoder", slotDestroyEncoder, 224},
		{"nvEncOpenEncodeSessionEx", slotOpenEncodeSessionEx, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base + uintptr(tt.slot)*unsafe.Sizeof(uintptr(0))
			if got != tt.offset {
				t.Errorf("offset = %d, want %d", got, tt.offset)
			}
		})
	}
}

func TestOpenSessionParamsLayout(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layout offsets are checked on 64-bit targets only")
	}

	var p nvapi.OpenSessionParams
	if off := unsafe.Offsetof(p.Device); off != 8 {
		t.Errorf("device offset = %d, want 8", off)
	}
	if off := unsafe.Offsetof(p.APIVersion); off != 24 {
		t.Errorf("apiVersion offset = %d, want 24", off)
	}
}

func TestGUIDSize(t *testing.T) {
	if size := unsafe.Sizeof(nvapi.GUID{}); size != 16 {
		t.Errorf("GUID size = %d, want 16", size)
	}
}

func TestGoString(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		max  int
		want string
	}{
		{"terminated", []byte("CUDA_ERROR_INVALID_VALUE\x00junk"), 64, "CUDA_ERROR_INVALID_VALUE"},
		{"empty", []byte{0}, 64, ""},
		{"bounded", []byte("abcdef"), 3, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := goString(&tt.buf[0], tt.max); got != tt.want {
				t.Errorf("goString() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := goString(nil, 10); got != "" {
		t.Errorf("goString(nil) = %q", got)
	}
}

func TestOpener_MissingLibrary(t *testing.T) {
	o := &Opener{
		CUDALibrary:  "libnvencprobe-missing-cuda.so.0",
		NVENCLibrary: "libnvencprobe-missing-nvenc.so.0",
	}

	if _, err := o.OpenDriver(); !errors.Is(err, ErrLibraryNotFound) {
		t.Errorf("OpenDriver error = %v, want ErrLibraryNotFound", err)
	}
	if _, err := o.OpenEncode(); !errors.Is(err, ErrLibraryNotFound) {
		t.Errorf("OpenEncode error = %v, want ErrLibraryNotFound", err)
	}
}

func TestOpener_Defaults(t *testing.T) {
	o := &Opener{NVENCLibrary: "custom-encode"}
	cuda, nvenc := o.libraries()
	if cuda == "" {
		t.Error("expected default CUDA library name")
	}
	if nvenc != "custom-encode" {
		t.Errorf("nvenc = %q, want override", nvenc)
	}
}

func TestNVENC_SessionCallsBeforeInstance(t *testing.T) {
	a := &nvencAPI{}

	if _, status := a.OpenEncodeSession(&nvapi.OpenSessionParams{}); status != nvapi.EncErrInvalidCall {
		t.Errorf("OpenEncodeSession status = %d, want invalid call", status)
	}
	if _, status := a.EncodeGUIDCount(0); status != nvapi.EncErrInvalidCall {
		t.Errorf("EncodeGUIDCount status = %d, want invalid call", status)
	}
	if status := a.DestroyEncoder(0); status != nvapi.EncErrInvalidCall {
		t.Errorf("DestroyEncoder status = %d, want invalid call", status)
	}
}

func TestNVENC_EmptySlot(t *testing.T) {
	a := &nvencAPI{list: &functionList{}}
	if _, status := a.EncodeGUIDs(0, make([]nvapi.GUID, 4)); status != nvapi.EncErrUnimplemented {
		t.Errorf("status = %d, want unimplemented", status)
	}
}

func TestCUDA_CallsAfterClose(t *testing.T) {
	d := &cudaDriver{closed: true}

	if code := d.Init(0); code != cudaDeinitialized {
		t.Errorf("Init = %d, want deinitialized", code)
	}
	if _, ok := d.ErrorName(1); ok {
		t.Error("ErrorName must fail after close")
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}
