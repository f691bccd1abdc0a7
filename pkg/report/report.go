// Package report holds the result of a probe run and renders it.
package report

import (
	"github.com/user/nvencprobe/pkg/codec"
	"github.com/user/nvencprobe/pkg/nvapi"
)

// Report contains everything a probe run discovered.
type Report struct {
	RequiredVersion string   `yaml:"required_version" json:"required_version"`
	DriverVersion   string   `yaml:"driver_version" json:"driver_version"`
	Devices         []Device `yaml:"devices" json:"devices"`
}

// Supports reports whether any device advertised c.
func (r *Report) Supports(c codec.Codec) bool {
	for _, d := range r.Devices {
		if d.Supports(c) {
			return true
		}
	}
	return false
}

// Device is the probe outcome for one device.
type Device struct {
	Index  int           `yaml:"index" json:"index"`
	Name   string        `yaml:"name" json:"name"`
	Codecs []codec.Codec `yaml:"codecs" json:"codecs"`
	Error  string        `yaml:"error,omitempty" json:"error,omitempty"`
}

// Supports reports whether the device advertised c.
func (d Device) Supports(c codec.Codec) bool {
	for _, have := range d.Codecs {
		if have == c {
			return true
		}
	}
	return false
}

// Builder provides a fluent interface for building a Report.
type Builder struct {
	report *Report
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		report: &Report{Devices: []Device{}},
	}
}

// WithVersions sets the required and driver-advertised API versions.
func (b *Builder) WithVersions(required, driver nvapi.Version) *Builder {
	b.report.RequiredVersion = required.String()
	b.report.DriverVersion = driver.String()
	return b
}

// AddDevice appends a probed device. A nil err marks a successful probe.
func (b *Builder) AddDevice(index int, name string, codecs []codec.Codec, err error) *Builder {
	d := Device{
		Index:  index,
		Name:   name,
		Codecs: codecs,
	}
	if d.Codecs == nil {
		d.Codecs = []codec.Codec{}
	}
	if err != nil {
		d.Error = err.Error()
	}
	b.report.Devices = append(b.report.Devices, d)
	return b
}

// Build returns the constructed Report.
func (b *Builder) Build() *Report {
	return b.report
}
