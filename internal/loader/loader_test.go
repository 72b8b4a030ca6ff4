package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load CHIP8 file", func(t *testing.T) {
		data := []byte{0x12, 0x34, 0x56, 0x78}
		tmpFile := createTempFile(t, data)

		loader := New()
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.NotNil(t, rom)
		assert.Equal(t, tmpFile, rom.Name)
		assert.Equal(t, len(data), rom.Size())
		assert.Equal(t, data, rom.Data)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()

		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		loader := New()
		_, err := loader.Load(tmpFile)
		assert.ErrorContains(t, err, "empty")
	})
}

func TestLoadFromBytes(t *testing.T) {
	t.Run("load CHIP8 data", func(t *testing.T) {
		data := []byte{0x00, 0xE0, 0xA2, 0x2A}
		loader := New()

		rom, err := loader.LoadFromBytes(data)
		assert.NoError(t, err)
		assert.Equal(t, data, rom.Data)
		assert.Equal(t, "", rom.Name)
	})

	t.Run("large ROM keeps full content", func(t *testing.T) {
		data := make([]byte, 5000)
		data[4999] = 0xFF
		loader := New()

		rom, err := loader.LoadFromBytes(data)
		assert.NoError(t, err)
		assert.Equal(t, 5000, rom.Size())
		assert.Equal(t, byte(0xFF), rom.Data[4999])
	})

	t.Run("error on empty data", func(t *testing.T) {
		loader := New()

		_, err := loader.LoadFromBytes([]byte{})
		assert.Error(t, err)
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
