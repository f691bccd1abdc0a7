// Package nverr translates CUDA and NVENC status codes into a closed error
// taxonomy.
package nverr

import (
	"errors"
	"fmt"

	"github.com/user/nvencprobe/pkg/nvapi"
)

// Kind classifies a failure.
type Kind int

const (
	// KindLoadFailure means a native library or symbol could not be resolved.
	KindLoadFailure Kind = iota + 1
	// KindVersionIncompatible means the driver's max API version is too old.
	KindVersionIncompatible
	// KindDriverCall means a CUDA driver call returned non-success.
	KindDriverCall
	// KindEncodeCall means an NVENC call returned non-success.
	KindEncodeCall
	// KindOutOfMemory means a query buffer could not be allocated.
	KindOutOfMemory
)

func (k Kind) String() string {
	switch k {
	case KindLoadFailure:
		return "LoadFailure"
	case KindVersionIncompatible:
		return "VersionIncompatible"
	case KindDriverCall:
		return "DriverCallFailure"
	case KindEncodeCall:
		return "EncodeCallFailure"
	case KindOutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// ExitCode returns the process exit code for a fatal failure of this kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindLoadFailure:
		return 2
	case KindVersionIncompatible:
		return 3
	case KindDriverCall:
		return 4
	case KindEncodeCall:
		return 5
	case KindOutOfMemory:
		return 6
	default:
		return 1
	}
}

// Record is a translated failure. It is never mutated after construction.
type Record struct {
	Kind        Kind
	Op          string // native function or step that failed
	NativeCode  int64
	Name        string
	Description string
	Err         error
}

// Error renders "<op> failed -> <name>: <description>".
func (r *Record) Error() string {
	if r.Op == "" {
		return r.Description
	}
	if r.Name == "" {
		return fmt.Sprintf("%s failed -> %s", r.Op, r.Description)
	}
	return fmt.Sprintf("%s failed -> %s: %s", r.Op, r.Name, r.Description)
}

func (r *Record) Unwrap() error {
	return r.Err
}

// KindOf returns the kind of the first Record in err's chain, or 0.
func KindOf(err error) Kind {
	var rec *Record
	if errors.As(err, &rec) {
		return rec.Kind
	}
	return 0
}

// ExitCode maps err to a process exit code; nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}

// Load reports a library or symbol that could not be resolved.
func Load(op string, err error) *Record {
	return &Record{
		Kind:        KindLoadFailure,
		Op:          op,
		Name:        KindLoadFailure.String(),
		Description: err.Error(),
		Err:         err,
	}
}

// OutOfMemory reports a query buffer of count entries that could not be allocated.
func OutOfMemory(op string, count uint32) *Record {
	return &Record{
		Kind:        KindOutOfMemory,
		Op:          op,
		NativeCode:  int64(count),
		Name:        KindOutOfMemory.String(),
		Description: fmt.Sprintf("cannot allocate %d entries", count),
	}
}

// VersionIncompatible reports a driver whose max API version is below required.
func VersionIncompatible(required, found nvapi.Version) *Record {
	return &Record{
		Kind:       KindVersionIncompatible,
		NativeCode: int64(found.Packed()),
		Name:       KindVersionIncompatible.String(),
		Description: fmt.Sprintf("Driver does not support the required nvenc API version. Required: %s Found: %s",
			required, found),
	}
}
