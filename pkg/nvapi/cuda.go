// Package nvapi describes the foreign ABI of the CUDA driver and the NVENC API:
// result codes, handles, version packing and the parameter blocks passed
// across the boundary.
package nvapi

// CUResult is a status code returned by every CUDA driver call.
type CUResult int32

// CUDASuccess is the only non-failure CUDA result.
const CUDASuccess CUResult = 0

// CUDevice is a driver-assigned device ordinal handle.
type CUDevice int32

// CUContext is an opaque CUDA context pointer.
type CUContext uintptr

// CtxSchedBlockingSync makes the host thread block on synchronisation
// instead of spinning.
const CtxSchedBlockingSync uint32 = 0x04

// DeviceNameCapacity is the size of the buffer handed to cuDeviceGetName.
const DeviceNameCapacity = 255
