package nvapi

import "fmt"

// API version this build is compiled against.
const (
	APIMajorVersion = 12
	APIMinorVersion = 0
)

// Version is an NVENC interface version.
type Version struct {
	Major uint32
	Minor uint32
}

// BuildVersion is the NVENC API version this build requires.
var BuildVersion = Version{Major: APIMajorVersion, Minor: APIMinorVersion}

// UnpackVersion decodes the value reported by NvEncodeAPIGetMaxSupportedVersion.
func UnpackVersion(packed uint32) Version {
	return Version{Major: packed >> 4, Minor: packed & 0xf}
}

// Packed returns the version encoded as major<<4 | minor.
func (v Version) Packed() uint32 {
	return v.Major<<4 | v.Minor
}

// SupportedBy reports whether a driver advertising max as its highest
// version can serve a caller built against v.
func (v Version) SupportedBy(max Version) bool {
	return v.Major < max.Major || (v.Major == max.Major && v.Minor <= max.Minor)
}

// APIVersion mirrors NVENCAPI_VERSION.
func (v Version) APIVersion() uint32 {
	return v.Major | v.Minor<<24
}

// StructVersion mirrors NVENCAPI_STRUCT_VERSION(n).
func (v Version) StructVersion(n uint32) uint32 {
	return v.APIVersion() | n<<16 | 0x7<<28
}

// FunctionListVersion mirrors NV_ENCODE_API_FUNCTION_LIST_VER.
func (v Version) FunctionListVersion() uint32 {
	return v.StructVersion(2)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
