package orchestrator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/user/nvencprobe/pkg/codec"
	"github.com/user/nvencprobe/pkg/loader"
	"github.com/user/nvencprobe/pkg/mocks"
	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/nverr"
	"github.com/user/nvencprobe/pkg/pipeline"
	"github.com/user/nvencprobe/pkg/ports"
	"github.com/user/nvencprobe/pkg/stages/enumerate"
	"github.com/user/nvencprobe/pkg/stages/negotiate"
	"github.com/user/nvencprobe/pkg/stages/probe"
)

// fixture wires real stages and loader over mock bindings.
type fixture struct {
	driver *mocks.DriverBindings
	encode *mocks.EncodeBindings
	opener *mocks.BindingsOpener
	log    *mocks.Logger
}

func newFixture(devices ...string) *fixture {
	driver := &mocks.DriverBindings{Devices: devices}
	encode := &mocks.EncodeBindings{
		MaxVersion: nvapi.BuildVersion,
		GUIDs:      map[nvapi.CUContext][]nvapi.GUID{},
	}
	return &fixture{
		driver: driver,
		encode: encode,
		opener: mocks.NewBindingsOpener(driver, encode),
		log:    mocks.NewLogger(),
	}
}

func (f *fixture) orchestrator(required nvapi.Version) *Orchestrator {
	return New(
		loader.New(f.opener, f.log, required, "linux"),
		negotiate.NewStage(f.log, "linux"),
		enumerate.NewStage(f.log),
		probe.NewStage(f.log),
		f.log,
	)
}

func TestOrchestrator_Run(t *testing.T) {
	f := newFixture("NVIDIA GeForce RTX 4090", "NVIDIA RTX A4000")
	f.encode.GUIDs[mocks.ContextFor(0)] = []nvapi.GUID{nvapi.CodecAV1GUID, nvapi.CodecH264GUID}
	f.encode.GUIDs[mocks.ContextFor(1)] = []nvapi.GUID{nvapi.CodecHEVCGUID, nvapi.CodecH264GUID}

	result, err := f.orchestrator(nvapi.BuildVersion).Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := result.Report
	if len(r.Devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(r.Devices))
	}
	if !reflect.DeepEqual(r.Devices[0].Codecs, []codec.Codec{codec.CodecH264, codec.CodecAV1}) {
		t.Errorf("device 0 codecs = %v", r.Devices[0].Codecs)
	}
	if !reflect.DeepEqual(r.Devices[1].Codecs, []codec.Codec{codec.CodecH264, codec.CodecHEVC}) {
		t.Errorf("device 1 codecs = %v", r.Devices[1].Codecs)
	}

	// One context at a time, each popped and destroyed
	if f.driver.MaxDepth != 1 {
		t.Errorf("expected at most one active context, got depth %d", f.driver.MaxDepth)
	}
	if len(f.driver.Stack) != 0 {
		t.Errorf("contexts left current: %v", f.driver.Stack)
	}
	if !reflect.DeepEqual(f.driver.Destroyed, f.driver.Created) {
		t.Errorf("created %v, destroyed %v", f.driver.Created, f.driver.Destroyed)
	}
	if len(f.encode.LiveSessions()) != 0 {
		t.Errorf("leaked sessions: %v", f.encode.LiveSessions())
	}
	if f.driver.CloseCalls != 1 || f.encode.CloseCalls != 1 {
		t.Error("expected both tables released once")
	}
}

func TestOrchestrator_Run_PartialFailure(t *testing.T) {
	f := newFixture("GPU A", "GPU B")
	f.encode.GUIDs[mocks.ContextFor(0)] = []nvapi.GUID{nvapi.CodecH264GUID, nvapi.CodecAV1GUID}
	f.encode.OpenEncodeSessionFunc = func(params *nvapi.OpenSessionParams) (nvapi.Encoder, nvapi.NVENCStatus) {
		if params.Device == uintptr(mocks.ContextFor(1)) {
			return 0, nvapi.EncErrUnsupportedDevice
		}
		return nvapi.Encoder(params.Device), nvapi.EncSuccess
	}

	result, err := f.orchestrator(nvapi.BuildVersion).Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("device failure must not be fatal: %v", err)
	}
	if nverr.ExitCode(err) != 0 {
		t.Errorf("exit code = %d", nverr.ExitCode(err))
	}

	devices := result.Report.Devices
	if !reflect.DeepEqual(devices[0].Codecs, []codec.Codec{codec.CodecH264, codec.CodecAV1}) {
		t.Errorf("device 0 codecs = %v", devices[0].Codecs)
	}
	if devices[1].Error == "" || len(devices[1].Codecs) != 0 {
		t.Errorf("device 1 = %+v", devices[1])
	}
	if !f.log.Contains(ports.LevelError, "nvEncOpenEncodeSessionEx failed") {
		t.Errorf("expected device 1 failure to be logged, got %v", f.log.Entries())
	}
	if len(f.driver.Popped) != 2 {
		t.Errorf("expected both contexts popped, got %v", f.driver.Popped)
	}
}

func TestOrchestrator_Run_FillFailureContinues(t *testing.T) {
	f := newFixture("GPU A", "GPU B")
	f.encode.GUIDs[mocks.ContextFor(0)] = []nvapi.GUID{nvapi.CodecH264GUID}
	f.encode.GUIDs[mocks.ContextFor(1)] = []nvapi.GUID{nvapi.CodecHEVCGUID}
	f.encode.EncodeGUIDsFunc = func(enc nvapi.Encoder, dst []nvapi.GUID) (uint32, nvapi.NVENCStatus) {
		if enc == nvapi.Encoder(mocks.ContextFor(0)) {
			return 0, nvapi.EncErrGeneric
		}
		return uint32(copy(dst, f.encode.GUIDs[nvapi.CUContext(enc)])), nvapi.EncSuccess
	}

	result, err := f.orchestrator(nvapi.BuildVersion).Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.encode.Destroyed) != 2 || len(f.encode.LiveSessions()) != 0 {
		t.Errorf("expected both sessions destroyed once, got %v", f.encode.Destroyed)
	}
	if !reflect.DeepEqual(result.Report.Devices[1].Codecs, []codec.Codec{codec.CodecHEVC}) {
		t.Errorf("device 1 codecs = %v", result.Report.Devices[1].Codecs)
	}
}

func TestOrchestrator_Run_VersionMismatch(t *testing.T) {
	f := newFixture("GPU A")
	f.encode.MaxVersion = nvapi.Version{Major: 8, Minor: 1}
	config := DefaultConfig()
	config.Required = nvapi.Version{Major: 9, Minor: 1}

	result, err := f.orchestrator(config.Required).Run(context.Background(), config)
	if nverr.KindOf(err) != nverr.KindVersionIncompatible {
		t.Fatalf("expected VersionIncompatible, got %v", err)
	}
	if nverr.ExitCode(err) == 0 {
		t.Error("expected non-zero exit code")
	}
	if result.Report != nil {
		t.Error("no report expected after a fatal failure")
	}
	if f.driver.InitCalls != 0 || len(f.driver.Created) != 0 {
		t.Error("no device may be touched after a mismatch")
	}
	if f.driver.CloseCalls != 1 || f.encode.CloseCalls != 1 {
		t.Error("tables must be released on the abort path")
	}
}

func TestOrchestrator_Run_LoadFailure(t *testing.T) {
	f := newFixture("GPU A")
	f.opener.EncodeErr = errors.New("missing libnvidia-encode")

	_, err := f.orchestrator(nvapi.BuildVersion).Run(context.Background(), DefaultConfig())
	if nverr.ExitCode(err) != 2 {
		t.Fatalf("expected load failure exit code, got %d (%v)", nverr.ExitCode(err), err)
	}
	if f.driver.CloseCalls != 1 {
		t.Error("driver table must be released when the encode table fails")
	}
}

func TestOrchestrator_Run_EnumerationFailure(t *testing.T) {
	f := newFixture("GPU A")
	f.driver.DeviceCountFunc = func() (int, nvapi.CUResult) { return 0, 3 }

	_, err := f.orchestrator(nvapi.BuildVersion).Run(context.Background(), DefaultConfig())
	if nverr.KindOf(err) != nverr.KindDriverCall {
		t.Fatalf("expected DriverCallFailure, got %v", err)
	}
	if f.driver.CloseCalls != 1 {
		t.Error("tables must be released on the abort path")
	}
}

func TestOrchestrator_Run_ContextCreateFailure(t *testing.T) {
	f := newFixture("GPU A", "GPU B")
	f.encode.GUIDs[mocks.ContextFor(1)] = []nvapi.GUID{nvapi.CodecAV1GUID}
	f.driver.Errors = map[nvapi.CUResult][2]string{2: {"CUDA_ERROR_OUT_OF_MEMORY", "out of memory"}}
	f.driver.CtxCreateFunc = func(flags uint32, dev nvapi.CUDevice) (nvapi.CUContext, nvapi.CUResult) {
		if dev == 0 {
			return 0, 2
		}
		ctx := mocks.ContextFor(int(dev))
		f.driver.Stack = append(f.driver.Stack, ctx)
		return ctx, nvapi.CUDASuccess
	}

	result, err := f.orchestrator(nvapi.BuildVersion).Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Report.Devices[0].Error != "cuCtxCreate failed -> CUDA_ERROR_OUT_OF_MEMORY: out of memory" {
		t.Errorf("device 0 error = %q", result.Report.Devices[0].Error)
	}
	if !reflect.DeepEqual(result.Report.Devices[1].Codecs, []codec.Codec{codec.CodecAV1}) {
		t.Errorf("device 1 codecs = %v", result.Report.Devices[1].Codecs)
	}
	if len(f.driver.Popped) != 1 {
		t.Errorf("only the created context may be popped, got %v", f.driver.Popped)
	}
}

func TestOrchestrator_Run_PopFailureLogged(t *testing.T) {
	f := newFixture("GPU A")
	f.driver.CtxPopCurrentFunc = func() (nvapi.CUContext, nvapi.CUResult) { return 0, 201 }

	_, err := f.orchestrator(nvapi.BuildVersion).Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.log.Contains(ports.LevelWarn, "cuCtxPopCurrent failed") {
		t.Errorf("expected pop failure warning, got %v", f.log.Entries())
	}
	if len(f.driver.Destroyed) != 1 {
		t.Error("context must still be destroyed")
	}
}

func TestOrchestrator_Run_StageOrder(t *testing.T) {
	var order []string
	dc := &loader.DriverContext{Driver: &mocks.DriverBindings{}, Encode: &mocks.EncodeBindings{}}

	orch := New(
		loaderFunc(func() (*loader.DriverContext, error) {
			order = append(order, "load")
			return dc, nil
		}),
		stageFunc[pipeline.NegotiateInput, pipeline.NegotiateResult](
			func(ctx context.Context, in pipeline.NegotiateInput) (pipeline.NegotiateResult, error) {
				order = append(order, "negotiate")
				return pipeline.NegotiateResult{Driver: in.Required}, nil
			}),
		stageFunc[pipeline.EnumerateInput, pipeline.EnumerateResult](
			func(ctx context.Context, in pipeline.EnumerateInput) (pipeline.EnumerateResult, error) {
				order = append(order, "enumerate")
				return pipeline.EnumerateResult{Devices: []pipeline.Device{{Index: 0, Name: "a"}, {Index: 1, Name: "b", Handle: 1}}}, nil
			}),
		stageFunc[pipeline.ProbeInput, pipeline.ProbeResult](
			func(ctx context.Context, in pipeline.ProbeInput) (pipeline.ProbeResult, error) {
				order = append(order, "probe")
				return pipeline.ProbeResult{}, nil
			}),
		mocks.NewLogger(),
	)

	if _, err := orch.Run(context.Background(), DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"load", "negotiate", "enumerate", "probe", "probe"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

type stageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

func (f stageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}

type loaderFunc func() (*loader.DriverContext, error)

func (f loaderFunc) Load() (*loader.DriverContext, error) { return f() }

func TestOrchestrator_Run_Cancelled(t *testing.T) {
	f := newFixture("GPU A", "GPU B")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.orchestrator(nvapi.BuildVersion).Run(ctx, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(f.driver.Created) != 0 {
		t.Error("no device may be probed after cancellation")
	}
	if f.driver.CloseCalls != 1 {
		t.Error("tables must be released after cancellation")
	}
}
