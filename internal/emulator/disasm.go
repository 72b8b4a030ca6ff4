package emulator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Disassemble writes a disassembly listing of the ROM to the output file
// of the options or to stdout if no output file is set.
func (e *Emulator) Disassemble(ctx context.Context, opts options.Program) error {
	if opts.Output == "" {
		return e.DisassembleTo(ctx, opts, os.Stdout)
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}

	if err := e.DisassembleTo(ctx, opts, file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", opts.Output, err)
	}
	return nil
}

// DisassembleTo writes a disassembly listing of the ROM to the writer.
func (e *Emulator) DisassembleTo(ctx context.Context, opts options.Program, writer io.Writer) error {
	if _, err := e.detector.Detect(opts); err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	rom, err := e.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if !opts.Quiet {
		e.logger.Info("Disassembling Chip-8 ROM",
			log.String("file", rom.Name),
			log.Int("size", rom.Size()))
	}

	dis := disasm.New(e.logger, rom.Data, config.DisasmOptions(opts))
	if err := dis.Process(ctx, writer); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}
