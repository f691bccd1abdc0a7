package mocks

import (
	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/ports"
)

// EncodeBindings is a mock implementation of ports.EncodeBindings.
// Sessions are keyed by the CUDA context they were opened on, and the codec
// GUIDs each context reports come from GUIDs.
type EncodeBindings struct {
	MaxVersion nvapi.Version
	GUIDs      map[nvapi.CUContext][]nvapi.GUID

	MaxSupportedVersionFunc func() (uint32, nvapi.NVENCStatus)
	CreateInstanceFunc      func(version uint32) nvapi.NVENCStatus
	OpenEncodeSessionFunc   func(params *nvapi.OpenSessionParams) (nvapi.Encoder, nvapi.NVENCStatus)
	EncodeGUIDCountFunc     func(enc nvapi.Encoder) (uint32, nvapi.NVENCStatus)
	EncodeGUIDsFunc         func(enc nvapi.Encoder, dst []nvapi.GUID) (uint32, nvapi.NVENCStatus)
	DestroyEncoderFunc      func(enc nvapi.Encoder) nvapi.NVENCStatus
	CloseFunc               func() error

	// Recorded calls for verification
	Calls           []string
	InstanceVersion uint32
	OpenParams      []nvapi.OpenSessionParams
	Opened          []nvapi.Encoder
	Destroyed       []nvapi.Encoder
	CloseCalls      int
}

func (m *EncodeBindings) MaxSupportedVersion() (uint32, nvapi.NVENCStatus) {
	m.Calls = append(m.Calls, "MaxSupportedVersion")
	if m.MaxSupportedVersionFunc != nil {
		return m.MaxSupportedVersionFunc()
	}
	return m.MaxVersion.Packed(), nvapi.EncSuccess
}

func (m *EncodeBindings) CreateInstance(version uint32) nvapi.NVENCStatus {
	m.Calls = append(m.Calls, "CreateInstance")
	m.InstanceVersion = version
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(version)
	}
	return nvapi.EncSuccess
}

func (m *EncodeBindings) OpenEncodeSession(params *nvapi.OpenSessionParams) (nvapi.Encoder, nvapi.NVENCStatus) {
	m.Calls = append(m.Calls, "OpenEncodeSession")
	m.OpenParams = append(m.OpenParams, *params)
	if m.OpenEncodeSessionFunc != nil {
		enc, status := m.OpenEncodeSessionFunc(params)
		if status == nvapi.EncSuccess {
			m.Opened = append(m.Opened, enc)
		}
		return enc, status
	}
	enc := nvapi.Encoder(params.Device)
	m.Opened = append(m.Opened, enc)
	return enc, nvapi.EncSuccess
}

func (m *EncodeBindings) EncodeGUIDCount(enc nvapi.Encoder) (uint32, nvapi.NVENCStatus) {
	m.Calls = append(m.Calls, "EncodeGUIDCount")
	if m.EncodeGUIDCountFunc != nil {
		return m.EncodeGUIDCountFunc(enc)
	}
	return uint32(len(m.GUIDs[nvapi.CUContext(enc)])), nvapi.EncSuccess
}

func (m *EncodeBindings) EncodeGUIDs(enc nvapi.Encoder, dst []nvapi.GUID) (uint32, nvapi.NVENCStatus) {
	m.Calls = append(m.Calls, "EncodeGUIDs")
	if m.EncodeGUIDsFunc != nil {
		return m.EncodeGUIDsFunc(enc, dst)
	}
	n := copy(dst, m.GUIDs[nvapi.CUContext(enc)])
	return uint32(n), nvapi.EncSuccess
}

func (m *EncodeBindings) DestroyEncoder(enc nvapi.Encoder) nvapi.NVENCStatus {
	m.Calls = append(m.Calls, "DestroyEncoder")
	m.Destroyed = append(m.Destroyed, enc)
	if m.DestroyEncoderFunc != nil {
		return m.DestroyEncoderFunc(enc)
	}
	return nvapi.EncSuccess
}

func (m *EncodeBindings) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// LiveSessions returns sessions that were opened but never destroyed.
func (m *EncodeBindings) LiveSessions() []nvapi.Encoder {
	destroyed := make(map[nvapi.Encoder]int)
	for _, enc := range m.Destroyed {
		destroyed[enc]++
	}
	var live []nvapi.Encoder
	for _, enc := range m.Opened {
		if destroyed[enc] > 0 {
			destroyed[enc]--
			continue
		}
		live = append(live, enc)
	}
	return live
}

var _ ports.EncodeBindings = (*EncodeBindings)(nil)
