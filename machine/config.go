package machine

import (
	"errors"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// RAM sizes the proto1 board can be populated with.
var Proto1RamSizes = map[string]uint32{
	"512K": 512 << 10,
	"1M":   1 << 20,
	"2M":   2 << 20,
	"4M":   4 << 20,
	"8M":   8 << 20,
	"16M":  16 << 20,
	"32M":  32 << 20,
	"64M":  64 << 20,
}

// DIP switch settings.
const (
	SWITCH_IO_MODE  = 0x01 // Set: internal video, clear: serial terminal.
	SWITCH_COLUMNS  = 0x02 // Set: 80 columns, clear: 40 columns.
	SWITCH_DEFAULTS = SWITCH_IO_MODE | SWITCH_COLUMNS

	IO_MODE_TERMINAL = "terminal"
	IO_MODE_INTERNAL = "internal"
)

// SwitchConfig is the DIP switch block of the proto1 board.
type SwitchConfig struct {
	IoMode  string `yaml:"io_mode"`
	Columns int    `yaml:"columns"`
}

// Config is a machine configuration file.
type Config struct {
	Verbose  bool         `yaml:"verbose"`
	Ram      string       `yaml:"ram"`
	Switches SwitchConfig `yaml:"switches"`
}

// DefaultConfig returns the factory configuration.
func DefaultConfig() Config {
	return Config{
		Ram: "1M",
		Switches: SwitchConfig{
			IoMode:  IO_MODE_INTERNAL,
			Columns: 80,
		},
	}
}

// ParseConfig reads a YAML configuration over the defaults, and validates it.
func ParseConfig(r io.Reader) (cfg Config, err error) {
	cfg = DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err = decoder.Decode(&cfg)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	err = cfg.Validate()
	return
}

// Validate checks every setting.
func (cfg Config) Validate() (err error) {
	_, err = cfg.RamSize()
	if err != nil {
		return
	}

	_, err = cfg.SwitchBits()
	return
}

// RamSize returns the RAM size in bytes.
func (cfg Config) RamSize() (size uint32, err error) {
	size, ok := Proto1RamSizes[strings.ToUpper(cfg.Ram)]
	if !ok {
		err = &ErrConfig{Key: "ram", Err: ErrConfigRam}
	}
	return
}

// SwitchBits returns the DIP switch settings as bits.
func (cfg Config) SwitchBits() (bits uint8, err error) {
	switch cfg.Switches.IoMode {
	case IO_MODE_TERMINAL:
	case IO_MODE_INTERNAL:
		bits |= SWITCH_IO_MODE
	default:
		err = &ErrConfig{Key: "switches.io_mode", Err: ErrConfigIoMode}
		return
	}

	if !slices.Contains([]int{40, 80}, cfg.Switches.Columns) {
		err = &ErrConfig{Key: "switches.columns", Err: ErrConfigColumns}
		return
	}
	if cfg.Switches.Columns == 80 {
		bits |= SWITCH_COLUMNS
	}

	return
}
