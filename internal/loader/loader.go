// Package loader handles ROM file loading operations.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

var errEmptyROM = errors.New("ROM file is empty")

// ROM is the raw program content of a CHIP-8 ROM file.
type ROM struct {
	Name string // file the ROM was loaded from
	Data []byte // program bytes, loaded at address 0x200
}

// Size returns the program size in bytes.
func (r *ROM) Size() int {
	return len(r.Data)
}

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file at the given path. CHIP-8 ROMs have no header,
// the whole file is program content.
func (l *Loader) Load(path string) (*ROM, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w", path, err)
	}

	rom, err := load(file, int(info.Size()))
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", path, err)
	}
	rom.Name = path
	return rom, nil
}

// LoadFromBytes creates a ROM from an in-memory buffer.
func (l *Loader) LoadFromBytes(data []byte) (*ROM, error) {
	return load(bytes.NewReader(data), len(data))
}

// load reads a raw ROM of the given size. The raw buffer loader pads the
// content to a full bank, only the original length is program content.
func load(reader io.Reader, size int) (*ROM, error) {
	if size == 0 {
		return nil, errEmptyROM
	}

	cart, err := cartridge.LoadBuffer(reader)
	if err != nil {
		return nil, fmt.Errorf("loading buffer: %w", err)
	}
	if len(cart.PRG) < size {
		return nil, fmt.Errorf("loaded %d bytes, expected %d: %w", len(cart.PRG), size, io.ErrUnexpectedEOF)
	}

	return &ROM{
		Data: cart.PRG[:size:size],
	}, nil
}
