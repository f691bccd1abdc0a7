package nvbind

import (
	"runtime"

	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/ports"
)

// Opener implements ports.BindingsOpener. Empty library names fall back to
// the platform defaults.
type Opener struct {
	CUDALibrary  string
	NVENCLibrary string
}

func (o *Opener) libraries() (cuda, nvenc string) {
	cuda, nvenc = nvapi.DefaultLibraries(runtime.GOOS)
	if o.CUDALibrary != "" {
		cuda = o.CUDALibrary
	}
	if o.NVENCLibrary != "" {
		nvenc = o.NVENCLibrary
	}
	return cuda, nvenc
}

// OpenDriver loads the CUDA driver library and binds its entry points.
func (o *Opener) OpenDriver() (ports.DriverBindings, error) {
	name, _ := o.libraries()
	d, err := openCUDA(name)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// OpenEncode loads the NVENC library and binds its two exports.
func (o *Opener) OpenEncode() (ports.EncodeBindings, error) {
	_, name := o.libraries()
	a, err := openNVENC(name)
	if err != nil {
		return nil, err
	}
	return a, nil
}

var _ ports.BindingsOpener = (*Opener)(nil)
