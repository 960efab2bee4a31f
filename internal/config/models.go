package config

// Config represents the entire user configuration file.
// It stores decode defaults and streaming server preferences so that
// common invocations need no flags.
type Config struct {
	Version int            `yaml:"version"`
	Decode  *DecodePrefs   `yaml:"decode,omitempty"`
	Serve   *ServePrefs    `yaml:"serve,omitempty"`
	Probes  map[string]int `yaml:"probes,omitempty"` // Channel bit positions for raw captures, by probe name ("sclk", "sdata")
}

// DecodePrefs holds default options for the decode command.
type DecodePrefs struct {
	AddressFormat string `yaml:"address_format"`       // "shifted" or "unshifted"
	CaptureFormat string `yaml:"capture_format"`       // "auto", "csv", or "raw"
	Output        string `yaml:"output"`               // "text", "jsonl", or "pretty"
	ClockBit      uint   `yaml:"clock_bit"`            // Raw capture clock bit position
	DataBit       uint   `yaml:"data_bit"`             // Raw capture data bit position
	SampleRate    uint64 `yaml:"samplerate,omitempty"` // Hz; 0 means unknown
}

// ServePrefs holds default options for the serve command.
type ServePrefs struct {
	Listen   string `yaml:"listen"`             // Listen address, e.g. ":8190"
	Announce bool   `yaml:"announce"`           // Publish the stream over mDNS
	Instance string `yaml:"instance,omitempty"` // mDNS instance name; hostname when empty
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Decode: &DecodePrefs{
			AddressFormat: "shifted",
			CaptureFormat: "auto",
			Output:        "text",
			ClockBit:      0,
			DataBit:       1,
		},
		Serve: &ServePrefs{
			Listen:   ":8190",
			Announce: true,
		},
	}
}

// ProbeBit resolves a named probe to its bit position.
// Returns the fallback when the name is unknown or out of range.
func (c *Config) ProbeBit(name string, fallback uint) uint {
	if bit, ok := c.Probes[name]; ok && bit >= 0 && bit <= 7 {
		return uint(bit)
	}
	return fallback
}
