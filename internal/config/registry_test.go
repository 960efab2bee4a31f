package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "rffetap") {
		t.Errorf("GetConfigDir() = %v, should contain 'rffetap'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != 1 {
		t.Errorf("NewConfig().Version = %v, want 1", cfg.Version)
	}
	if cfg.Decode == nil {
		t.Fatal("NewConfig().Decode should not be nil")
	}
	if cfg.Decode.AddressFormat != "shifted" {
		t.Errorf("AddressFormat = %v, want shifted", cfg.Decode.AddressFormat)
	}
	if cfg.Decode.ClockBit != 0 || cfg.Decode.DataBit != 1 {
		t.Errorf("channel bits = %d/%d, want 0/1", cfg.Decode.ClockBit, cfg.Decode.DataBit)
	}
	if cfg.Serve == nil {
		t.Fatal("NewConfig().Serve should not be nil")
	}
	if cfg.Serve.Listen != ":8190" {
		t.Errorf("Listen = %v, want :8190", cfg.Serve.Listen)
	}
	if !cfg.Serve.Announce {
		t.Error("Announce should be true by default")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		verify  func(t *testing.T, cfg *Config)
	}{
		{
			name: "full document",
			input: `
version: 1
decode:
  address_format: unshifted
  capture_format: raw
  output: jsonl
  clock_bit: 3
  data_bit: 4
  samplerate: 24000000
serve:
  listen: ":9000"
  announce: false
  instance: bench-rig
probes:
  sclk: 3
  sdata: 4
`,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Decode.AddressFormat != "unshifted" {
					t.Errorf("AddressFormat = %v", cfg.Decode.AddressFormat)
				}
				if cfg.Decode.SampleRate != 24_000_000 {
					t.Errorf("SampleRate = %v", cfg.Decode.SampleRate)
				}
				if cfg.Serve.Listen != ":9000" || cfg.Serve.Announce {
					t.Errorf("Serve = %+v", cfg.Serve)
				}
				if cfg.ProbeBit("sclk", 0) != 3 {
					t.Errorf("ProbeBit(sclk) = %d, want 3", cfg.ProbeBit("sclk", 0))
				}
			},
		},
		{
			name:  "missing sections get defaults",
			input: "version: 1\n",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Decode == nil || cfg.Serve == nil {
					t.Fatal("defaults not filled in")
				}
				if cfg.Decode.Output != "text" {
					t.Errorf("Output = %v, want text", cfg.Decode.Output)
				}
			},
		},
		{
			name:    "wrong version",
			input:   "version: 2\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			input:   "version: [1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestProbeBitFallback(t *testing.T) {
	cfg := NewConfig()
	if got := cfg.ProbeBit("sclk", 5); got != 5 {
		t.Errorf("ProbeBit(unknown) = %d, want fallback 5", got)
	}

	cfg.Probes = map[string]int{"sclk": 12}
	if got := cfg.ProbeBit("sclk", 5); got != 5 {
		t.Errorf("ProbeBit(out of range) = %d, want fallback 5", got)
	}

	cfg.Probes = map[string]int{"sclk": -1}
	if got := cfg.ProbeBit("sclk", 5); got != 5 {
		t.Errorf("ProbeBit(negative) = %d, want fallback 5", got)
	}
}
