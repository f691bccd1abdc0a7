package mocks

import "github.com/user/nvencprobe/pkg/ports"

// BindingsOpener is a mock implementation of ports.BindingsOpener.
type BindingsOpener struct {
	Driver    *DriverBindings
	Encode    *EncodeBindings
	DriverErr error
	EncodeErr error

	OpenDriverCalls int
	OpenEncodeCalls int
}

// NewBindingsOpener returns an opener handing out the given bindings.
func NewBindingsOpener(driver *DriverBindings, encode *EncodeBindings) *BindingsOpener {
	return &BindingsOpener{Driver: driver, Encode: encode}
}

func (m *BindingsOpener) OpenDriver() (ports.DriverBindings, error) {
	m.OpenDriverCalls++
	if m.DriverErr != nil {
		return nil, m.DriverErr
	}
	return m.Driver, nil
}

func (m *BindingsOpener) OpenEncode() (ports.EncodeBindings, error) {
	m.OpenEncodeCalls++
	if m.EncodeErr != nil {
		return nil, m.EncodeErr
	}
	return m.Encode, nil
}

var _ ports.BindingsOpener = (*BindingsOpener)(nil)
