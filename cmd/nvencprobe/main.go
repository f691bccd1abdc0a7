// Package main provides the CLI entry point for nvencprobe.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/nvencprobe/pkg/adapters/logger"
	"github.com/user/nvencprobe/pkg/adapters/nvbind"
	"github.com/user/nvencprobe/pkg/adapters/osfilesystem"
	"github.com/user/nvencprobe/pkg/codec"
	"github.com/user/nvencprobe/pkg/config"
	"github.com/user/nvencprobe/pkg/loader"
	"github.com/user/nvencprobe/pkg/nvapi"
	"github.com/user/nvencprobe/pkg/nverr"
	"github.com/user/nvencprobe/pkg/orchestrator"
	"github.com/user/nvencprobe/pkg/ports"
	"github.com/user/nvencprobe/pkg/report"
	"github.com/user/nvencprobe/pkg/stages/enumerate"
	"github.com/user/nvencprobe/pkg/stages/negotiate"
	"github.com/user/nvencprobe/pkg/stages/probe"
)

var version = "dev"

// OpenerFunc builds the native bindings opener for a run.
type OpenerFunc func(cfg config.Config) ports.BindingsOpener

func nativeOpener(cfg config.Config) ports.BindingsOpener {
	return &nvbind.Opener{
		CUDALibrary:  cfg.CUDALibrary,
		NVENCLibrary: cfg.NVENCLibrary,
	}
}

func main() {
	app := newApp(os.Stdout, osfilesystem.New(), nativeOpener)
	if err := app.Run(os.Args); err != nil {
		// Exit codes carried by cli.Exit are handled inside Run.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout io.Writer, fs ports.FileSystem, open OpenerFunc) *cli.App {
	defaults := config.Defaults()

	return &cli.App{
		Name:    "nvencprobe",
		Usage:   l10n.T("Report the hardware video codecs each NVIDIA GPU can encode"),
		Version: version,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "format",
				Aliases:  []string{"f"},
				Value:    defaults.Format,
				Usage:    l10n.T("Report format (text, yaml, json)"),
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Write the report to a file instead of stdout"),
				Category: l10n.T("Output"),
			},
			&cli.StringFlag{
				Name:     "api-version",
				Value:    defaults.Required.String(),
				Usage:    l10n.T("NVENC API version to request (major.minor)"),
				Category: l10n.T("Driver"),
			},
			&cli.StringFlag{
				Name:     "cuda-library",
				Value:    defaults.CUDALibrary,
				Usage:    l10n.T("CUDA driver library name or path"),
				Category: l10n.T("Driver"),
			},
			&cli.StringFlag{
				Name:     "nvenc-library",
				Value:    defaults.NVENCLibrary,
				Usage:    l10n.T("NVENC library name or path"),
				Category: l10n.T("Driver"),
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Value:    defaults.LogLevel,
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Action: probeAction(stdout, fs, open),
		Commands: []*cli.Command{
			{
				Name:      "supports",
				Usage:     l10n.T("Exit 0 when any device can encode the codec, 1 otherwise"),
				ArgsUsage: "<H264|HEVC|AV1>",
				Action:    supportsAction(stdout, open),
			},
			{
				Name:  "requirements",
				Usage: l10n.T("Show the minimum driver for the requested API version"),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "api-version",
						Usage: l10n.T("NVENC API version to request (major.minor)"),
					},
				},
				Action: requirementsAction(stdout),
			},
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(stdout, l10n.F("nvencprobe version %s (NVENC API %s)", version, nvapi.BuildVersion))
					return nil
				},
			},
		},
	}
}

// configFromContext builds and validates the run configuration from flags.
func configFromContext(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	cfg.Format = c.String("format")
	cfg.Output = c.String("output")
	cfg.LogLevel = c.String("log-level")
	cfg.Quiet = c.Bool("quiet")
	cfg.CUDALibrary = c.String("cuda-library")
	cfg.NVENCLibrary = c.String("nvenc-library")

	required, err := config.ParseVersion(apiVersion(c))
	if err != nil {
		return cfg, err
	}
	cfg.Required = required

	return cfg, cfg.Validate()
}

// apiVersion returns the innermost explicitly set --api-version, so the flag
// works before or after a subcommand name.
func apiVersion(c *cli.Context) string {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet("api-version") {
			return ctx.String("api-version")
		}
	}
	return config.Defaults().Required.String()
}

func newLogger(cfg config.Config) ports.Logger {
	if cfg.Quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(cfg.Level())
}

// probeRun is what a completed probe leaves for the command that ran it.
type probeRun struct {
	cfg    config.Config
	log    ports.Logger
	report *report.Report
}

// runProbe loads the driver and probes every device. Returned errors carry
// the process exit code.
func runProbe(c *cli.Context, open OpenerFunc) (*probeRun, error) {
	cfg, err := configFromContext(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	log := newLogger(cfg)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	orch := orchestrator.New(
		loader.New(open(cfg), log, cfg.Required, runtime.GOOS),
		negotiate.NewStage(log, runtime.GOOS),
		enumerate.NewStage(log),
		probe.NewStage(log),
		log,
	)

	log.Debug("Probing with NVENC API %s", cfg.Required)

	// Failures are logged where they occur; only the exit code is left.
	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	if err != nil {
		return nil, cli.Exit("", nverr.ExitCode(err))
	}

	log.Debug("Probed %d devices", len(result.Report.Devices))
	return &probeRun{cfg: cfg, log: log, report: result.Report}, nil
}

func probeAction(stdout io.Writer, fs ports.FileSystem, open OpenerFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		run, err := runProbe(c, open)
		if err != nil {
			return err
		}
		cfg, log := run.cfg, run.log

		formatter, err := report.ForFormat(cfg.Format)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		if cfg.Output == "" {
			err = report.NewWriter(formatter, stdout).Write(run.report)
		} else {
			err = report.Save(fs, formatter, cfg.Output, run.report)
		}
		if err != nil {
			log.Error("Failed to write report: %s", err)
			return cli.Exit("", 1)
		}
		if cfg.Output != "" {
			log.Info("Report saved to %s", cfg.Output)
		}
		return nil
	}
}

func supportsAction(stdout io.Writer, open OpenerFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit(l10n.T("Expected exactly one codec (H264, HEVC, AV1)"), 1)
		}
		want, ok := codec.Parse(c.Args().First())
		if !ok {
			return cli.Exit(l10n.F("Unknown codec %q (H264, HEVC, AV1)", c.Args().First()), 1)
		}

		run, err := runProbe(c, open)
		if err != nil {
			return err
		}

		supported := run.report.Supports(want)
		fmt.Fprintln(stdout, supported)
		if !supported {
			return cli.Exit("", 1)
		}
		return nil
	}
}

func requirementsAction(stdout io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		required, err := config.ParseVersion(apiVersion(c))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		for _, goos := range []string{"windows", "linux"} {
			fmt.Fprintln(stdout, l10n.F("NVENC API %s on %s requires driver %s or newer",
				required, goos, nvapi.MinimumDriverVersion(goos, required)))
		}
		return nil
	}
}
