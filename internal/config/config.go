// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CPUConfig returns the CPU configuration for the program options.
func CPUConfig(opts options.Program) cpu.Config {
	return cpu.Config{
		Speed:     opts.Speed,
		MaxCycles: opts.MaxCycles,
	}
}

// DisasmOptions returns the disassembly listing options for the program options.
func DisasmOptions(opts options.Program) disasm.Options {
	disasmOptions := disasm.NewOptions()
	// Apply inverse logic for hex comments and offsets
	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.OffsetComments = !opts.NoOffsets
	return disasmOptions
}
