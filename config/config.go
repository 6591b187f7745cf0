// Package config defines the settings consumed by the DRAM controller and the
// reference host simulator. Settings come from a YAML file, optionally
// overridden by DRAMCTRL_* variables from the environment or a .env file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math/bits"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/dramctrl/timing"
)

// ErrInvalidConfig is returned when the configuration is structurally
// invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// DRAMConfig shapes the reference timing model.
type DRAMConfig struct {
	Channels int `yaml:"channels"`
	Ranks    int `yaml:"ranks"`
	// Banks per rank. Zero uses the technology default.
	Banks int `yaml:"banks"`
	// QueueSize is the number of requests each channel can buffer before
	// rejecting new ones.
	QueueSize int `yaml:"queue_size"`
}

// Config is the already-parsed input of the controller.
type Config struct {
	Standard       string     `yaml:"standard"`
	CPUFreqMHz     uint64     `yaml:"cpu_freq_mhz"`
	CachelineSize  uint64     `yaml:"cacheline_size"`
	MinLatency     uint64     `yaml:"min_latency"`
	Domain         int        `yaml:"domain"`
	NumControllers int        `yaml:"num_controllers"`
	OutDir         string     `yaml:"out_dir"`
	StatsPrefix    string     `yaml:"stats_prefix"`
	ReportInterval uint64     `yaml:"report_interval"` // in cycles, 0 disables
	DRAM           DRAMConfig `yaml:"dram"`
}

// Default returns a single DDR3 controller clocked by a 2 GHz host.
func Default() *Config {
	return &Config{
		Standard:       "DDR3",
		CPUFreqMHz:     2000,
		CachelineSize:  64,
		MinLatency:     100,
		NumControllers: 1,
		OutDir:         ".",
		DRAM: DRAMConfig{
			Channels:  1,
			Ranks:     1,
			QueueSize: 32,
		},
	}
}

// Load reads a YAML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML content on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Env collects DRAMCTRL_* overrides. Values from .env files are used only
// when the process environment does not set the same key.
func Env(envFiles ...string) (map[string]string, error) {
	env := make(map[string]string)

	existing := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}

	if len(existing) > 0 {
		fromFiles, err := godotenv.Read(existing...)
		if err != nil {
			return nil, fmt.Errorf("reading env files: %w", err)
		}

		for k, v := range fromFiles {
			env[k] = v
		}
	}

	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}

	return env, nil
}

var envKeys = []string{
	"DRAMCTRL_STANDARD",
	"DRAMCTRL_CPU_FREQ_MHZ",
	"DRAMCTRL_CACHELINE_SIZE",
	"DRAMCTRL_MIN_LATENCY",
	"DRAMCTRL_NUM_CONTROLLERS",
	"DRAMCTRL_OUT_DIR",
	"DRAMCTRL_STATS_PREFIX",
	"DRAMCTRL_REPORT_INTERVAL",
}

// ApplyEnv overrides fields from an environment map produced by Env.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env["DRAMCTRL_STANDARD"]; ok {
		c.Standard = v
	}

	if v, ok := env["DRAMCTRL_OUT_DIR"]; ok {
		c.OutDir = v
	}

	if v, ok := env["DRAMCTRL_STATS_PREFIX"]; ok {
		c.StatsPrefix = v
	}

	uints := map[string]*uint64{
		"DRAMCTRL_CPU_FREQ_MHZ":    &c.CPUFreqMHz,
		"DRAMCTRL_CACHELINE_SIZE":  &c.CachelineSize,
		"DRAMCTRL_MIN_LATENCY":     &c.MinLatency,
		"DRAMCTRL_REPORT_INTERVAL": &c.ReportInterval,
	}

	for key, field := range uints {
		v, ok := env[key]
		if !ok {
			continue
		}

		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an unsigned integer",
				ErrInvalidConfig, key, v)
		}

		*field = n
	}

	if v, ok := env["DRAMCTRL_NUM_CONTROLLERS"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DRAMCTRL_NUM_CONTROLLERS=%q is not an integer",
				ErrInvalidConfig, v)
		}

		c.NumControllers = n
	}

	return nil
}

// Validate checks that the configuration can build a controller.
func (c *Config) Validate() error {
	if c.Standard == "" {
		return fmt.Errorf("%w: standard must be set", ErrInvalidConfig)
	}

	if c.CPUFreqMHz == 0 {
		return fmt.Errorf("%w: cpu_freq_mhz must be positive", ErrInvalidConfig)
	}

	if c.CachelineSize == 0 || bits.OnesCount64(c.CachelineSize) != 1 {
		return fmt.Errorf("%w: cacheline_size must be a power of two, got %d",
			ErrInvalidConfig, c.CachelineSize)
	}

	if c.MinLatency == 0 {
		return fmt.Errorf("%w: min_latency must be at least 1", ErrInvalidConfig)
	}

	if c.NumControllers < 1 {
		return fmt.Errorf("%w: num_controllers must be at least 1, got %d",
			ErrInvalidConfig, c.NumControllers)
	}

	return c.DRAM.Validate()
}

// Validate checks the timing model shape.
func (d DRAMConfig) Validate() error {
	if d.Channels < 1 || bits.OnesCount(uint(d.Channels)) != 1 {
		return fmt.Errorf("%w: dram.channels must be a power of two, got %d",
			ErrInvalidConfig, d.Channels)
	}

	if d.Ranks < 1 {
		return fmt.Errorf("%w: dram.ranks must be at least 1, got %d",
			ErrInvalidConfig, d.Ranks)
	}

	if d.Banks < 0 {
		return fmt.Errorf("%w: dram.banks must not be negative, got %d",
			ErrInvalidConfig, d.Banks)
	}

	if d.QueueSize < 1 {
		return fmt.Errorf("%w: dram.queue_size must be at least 1, got %d",
			ErrInvalidConfig, d.QueueSize)
	}

	return nil
}

// LineBits returns log2 of the cacheline size.
func (c *Config) LineBits() uint {
	return uint(bits.TrailingZeros64(c.CachelineSize))
}

// CPUFreq returns the host clock frequency.
func (c *Config) CPUFreq() timing.FreqInHz {
	return timing.FreqInHz(c.CPUFreqMHz) * timing.MHz
}
