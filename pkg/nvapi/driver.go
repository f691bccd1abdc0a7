package nvapi

// driverRequirement is the first driver release that ships an NVENC API tier.
type driverRequirement struct {
	api     Version
	windows string
	linux   string
}

// Ordered newest first; the first tier the build version reaches wins.
var driverRequirements = []driverRequirement{
	{Version{12, 1}, "531.61", "530.41.03"},
	{Version{12, 0}, "522.25", "520.56.06"},
	{Version{11, 1}, "471.41", "470.57.02"},
	{Version{11, 0}, "456.71", "455.28"},
	{Version{10, 0}, "450.51", "445.87"},
	{Version{9, 1}, "436.15", "435.21"},
	{Version{9, 0}, "418.81", "418.30"},
	{Version{8, 2}, "397.93", "396.24"},
	{Version{8, 1}, "390.77", "390.25"},
}

var legacyRequirement = driverRequirement{Version{0, 0}, "378.66", "378.13"}

// MinimumDriverVersion returns the oldest NVIDIA driver release able to serve
// a build that requires API version v on the given GOOS.
func MinimumDriverVersion(goos string, v Version) string {
	req := legacyRequirement
	for _, r := range driverRequirements {
		if r.api.SupportedBy(v) {
			req = r
			break
		}
	}
	if goos == "windows" {
		return req.windows
	}
	return req.linux
}

// DefaultLibraries returns the native library names for the CUDA driver and
// the NVENC API on the given GOOS.
func DefaultLibraries(goos string) (cuda, nvenc string) {
	switch goos {
	case "windows":
		return "nvcuda.dll", "nvEncodeAPI64.dll"
	default:
		return "libcuda.so.1", "libnvidia-encode.so.1"
	}
}
