package disasm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

var subroutineROM = []byte{
	0x00, 0xE0, // cls
	0xA2, 0x0A, // ld I, $20A
	0x22, 0x08, // call $208
	0x12, 0x06, // jp $206
	0x00, 0xEE, // ret
	0xF0, 0x90, // sprite data
}

func TestDisasm_Process(t *testing.T) {
	logger := log.NewTestLogger(t)
	dis := New(logger, subroutineROM, Options{})

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))

	expected := `; ROM CRC32 checksum: 6a4ec795
; Code base address: $0200

Start:
  cls
  ld I, _data_020a
  call _func_0208

_label_0206:
  jp _label_0206

_func_0208:
  ret

_data_020a:
.byte $f0, $90
`
	assert.Equal(t, expected, buf.String())
}

func TestDisasm_Comments(t *testing.T) {
	logger := log.NewTestLogger(t)
	dis := New(logger, subroutineROM, NewOptions())

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "  cls                            ; $0200  00 E0", lines[4])
	assert.Contains(t, buf.String(), ".byte $f0, $90                   ; $020A\n")
}

func TestDisasm_OffsetTypes(t *testing.T) {
	logger := log.NewTestLogger(t)
	dis := New(logger, subroutineROM, Options{})
	assert.NoError(t, dis.Process(context.Background(), &bytes.Buffer{}))

	offsets := dis.Offsets()
	assert.Len(t, offsets, len(subroutineROM))

	tests := []struct {
		index int
		typ   OffsetType
	}{
		{0, CodeOffset},
		{1, CodeOffset},
		{6, CodeOffset | BranchDestination},
		{8, CodeOffset | BranchDestination | CallDestination},
		{10, DataOffset | DataReference},
		{11, DataOffset},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.typ, offsets[tt.index].Type)
	}
	assert.Equal(t, uint16(0x20A), offsets[10].Address)
	assert.Equal(t, "_func_0208", offsets[4].BranchingTo)
}

func TestDisasm_JumpIntoInstruction(t *testing.T) {
	rom := []byte{
		0x12, 0x04, // jp $204
		0x00, 0x00,
		0x60, 0x13, // ld V0, $13
		0x12, 0x05, // jp $205
	}
	logger := log.NewTestLogger(t)
	dis := New(logger, rom, Options{})

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))

	offsets := dis.Offsets()
	assert.True(t, offsets[4].IsType(CodeAsData))
	assert.False(t, offsets[4].IsType(CodeOffset))
	assert.True(t, offsets[5].IsType(DataOffset))
	assert.Equal(t, "_label_0205", offsets[5].Label)
	assert.Equal(t, "jp _label_0205", offsets[6].Code)

	assert.Contains(t, buf.String(), "; branch into instruction detected: ld V0, $13\n")
	assert.Contains(t, buf.String(), "_label_0205:\n.byte $13\n")
}

func TestDisasm_UnknownOpcodeEndsFlow(t *testing.T) {
	rom := []byte{
		0x60, 0x01, // ld V0, $01
		0xFF, 0xFF, // unknown
		0x60, 0x02, // unreachable
	}
	logger := log.NewTestLogger(t)
	dis := New(logger, rom, Options{})
	assert.NoError(t, dis.Process(context.Background(), &bytes.Buffer{}))

	offsets := dis.Offsets()
	assert.True(t, offsets[0].IsType(CodeOffset))
	for _, offset := range offsets[2:] {
		assert.True(t, offset.IsType(DataOffset))
	}
}

func TestDisasm_Skip(t *testing.T) {
	rom := []byte{
		0x30, 0x01, // se V0, $01
		0x12, 0x06, // jp $206
		0x00, 0xE0, // cls
		0x00, 0x00,
	}
	logger := log.NewTestLogger(t)
	dis := New(logger, rom, Options{})
	assert.NoError(t, dis.Process(context.Background(), &bytes.Buffer{}))

	offsets := dis.Offsets()
	assert.True(t, offsets[2].IsType(CodeOffset))
	assert.True(t, offsets[4].IsType(CodeOffset))
	assert.True(t, offsets[6].IsType(DataOffset))
}

func TestDisasm_Cancelled(t *testing.T) {
	logger := log.NewTestLogger(t)
	dis := New(logger, subroutineROM, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := dis.Process(ctx, &bytes.Buffer{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDisasm_Empty(t *testing.T) {
	logger := log.NewTestLogger(t)
	dis := New(logger, nil, Options{})

	var buf bytes.Buffer
	assert.NoError(t, dis.Process(context.Background(), &buf))
	assert.Equal(t, "", buf.String())
}
