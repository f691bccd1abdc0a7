// Package codec maps NVENC encode GUIDs to the codecs the probe reports.
package codec

import (
	"strings"

	"github.com/user/nvencprobe/pkg/nvapi"
)

// Codec represents a hardware video codec.
type Codec string

const (
	CodecH264 Codec = "H264"
	CodecHEVC Codec = "HEVC"
	CodecAV1  Codec = "AV1"
)

type entry struct {
	codec Codec
	guid  nvapi.GUID
}

// known is ordered; reports follow this order regardless of driver order.
var known = []entry{
	{CodecH264, nvapi.CodecH264GUID},
	{CodecHEVC, nvapi.CodecHEVCGUID},
	{CodecAV1, nvapi.CodecAV1GUID},
}

// Known returns the recognised codecs in table order.
func Known() []Codec {
	codecs := make([]Codec, len(known))
	for i, e := range known {
		codecs[i] = e.codec
	}
	return codecs
}

// Lookup returns the codec identified by guid.
func Lookup(guid nvapi.GUID) (Codec, bool) {
	for _, e := range known {
		if e.guid == guid {
			return e.codec, true
		}
	}
	return "", false
}

// Parse resolves a codec name, ignoring case.
func Parse(name string) (Codec, bool) {
	for _, c := range Known() {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// Match returns the known codecs present in guids, in table order.
// Unrecognised GUIDs are ignored.
func Match(guids []nvapi.GUID) []Codec {
	present := make(map[Codec]bool, len(guids))
	for _, g := range guids {
		if c, ok := Lookup(g); ok {
			present[c] = true
		}
	}

	var matched []Codec
	for _, c := range Known() {
		if present[c] {
			matched = append(matched, c)
		}
	}
	return matched
}
