package nvapi

import (
	"testing"
	"unsafe"
)

func TestUnpackVersion(t *testing.T) {
	v := UnpackVersion(12<<4 | 1)
	if v.Major != 12 || v.Minor != 1 {
		t.Fatalf("UnpackVersion = %v, want 12.1", v)
	}
	if v.Packed() != 0xc1 {
		t.Errorf("Packed = %#x, want 0xc1", v.Packed())
	}
	if v.String() != "12.1" {
		t.Errorf("String = %q", v.String())
	}
}

func TestVersion_SupportedBy(t *testing.T) {
	tests := []struct {
		name     string
		required Version
		driver   Version
		want     bool
	}{
		{"equal", Version{12, 0}, Version{12, 0}, true},
		{"newer minor", Version{12, 0}, Version{12, 2}, true},
		{"newer major with lower minor", Version{11, 5}, Version{12, 0}, true},
		{"older minor", Version{12, 1}, Version{12, 0}, false},
		{"older major", Version{9, 1}, Version{8, 1}, false},
		{"older major with higher minor", Version{9, 0}, Version{8, 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.required.SupportedBy(tt.driver); got != tt.want {
				t.Errorf("%v.SupportedBy(%v) = %v, want %v", tt.required, tt.driver, got, tt.want)
			}
		})
	}
}

func TestVersion_StructVersion(t *testing.T) {
	v := Version{12, 0}
	if got := v.APIVersion(); got != 12 {
		t.Errorf("APIVersion = %#x, want 0xc", got)
	}
	want := uint32(12 | 2<<16 | 0x7<<28)
	if got := v.FunctionListVersion(); got != want {
		t.Errorf("FunctionListVersion = %#x, want %#x", got, want)
	}

	v = Version{11, 1}
	if got := v.APIVersion(); got != 11|1<<24 {
		t.Errorf("APIVersion = %#x", got)
	}
}

func TestNewOpenSessionParams(t *testing.T) {
	p := NewOpenSessionParams(Version{12, 0}, CUContext(0x1234))
	if p.DeviceType != DeviceTypeCUDA {
		t.Errorf("DeviceType = %d, want CUDA", p.DeviceType)
	}
	if p.Device != 0x1234 {
		t.Errorf("Device = %#x", p.Device)
	}
	if want := (Version{12, 0}).StructVersion(1); p.Version != want {
		t.Errorf("Version = %#x", p.Version)
	}
	if p.APIVersion != 12 {
		t.Errorf("APIVersion = %d", p.APIVersion)
	}
}

func TestGUIDLayout(t *testing.T) {
	if size := unsafe.Sizeof(GUID{}); size != 16 {
		t.Fatalf("GUID size = %d, want 16", size)
	}
	if CodecH264GUID == CodecHEVCGUID || CodecHEVCGUID == CodecAV1GUID {
		t.Fatal("codec GUIDs must be distinct")
	}
	if got := CodecH264GUID.String(); got != "6bc82762-4e63-4ca4-aa85-1e50f321f6bf" {
		t.Errorf("H264 GUID = %s", got)
	}
}

func TestMinimumDriverVersion(t *testing.T) {
	tests := []struct {
		goos string
		v    Version
		want string
	}{
		{"linux", Version{9, 1}, "435.21"},
		{"windows", Version{9, 1}, "436.15"},
		{"linux", Version{9, 2}, "435.21"},
		{"linux", Version{8, 1}, "390.25"},
		{"windows", Version{8, 1}, "390.77"},
		{"linux", Version{8, 0}, "378.13"},
		{"windows", Version{7, 0}, "378.66"},
		{"linux", Version{12, 0}, "520.56.06"},
		{"windows", Version{12, 2}, "531.61"},
	}
	for _, tt := range tests {
		if got := MinimumDriverVersion(tt.goos, tt.v); got != tt.want {
			t.Errorf("MinimumDriverVersion(%s, %v) = %s, want %s", tt.goos, tt.v, got, tt.want)
		}
	}
}

func TestDefaultLibraries(t *testing.T) {
	cuda, nvenc := DefaultLibraries("linux")
	if cuda != "libcuda.so.1" || nvenc != "libnvidia-encode.so.1" {
		t.Errorf("linux libraries = %s, %s", cuda, nvenc)
	}
	cuda, nvenc = DefaultLibraries("windows")
	if cuda != "nvcuda.dll" || nvenc != "nvEncodeAPI64.dll" {
		t.Errorf("windows libraries = %s, %s", cuda, nvenc)
	}
}
