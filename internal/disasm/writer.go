package disasm

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/memory"
)

const dataBytesPerLine = 16

// write outputs all code offsets, data bytes and labels of the ROM.
func (dis *Disasm) write(writer io.Writer) error {
	if err := dis.writeCommentHeader(writer); err != nil {
		return err
	}

	var previousLineWasCode bool
	for i := 0; i < len(dis.offsets); i++ {
		offset := &dis.offsets[i]

		if err := writeLabel(writer, i, offset); err != nil {
			return err
		}

		// print an empty line in case of data after code and vice versa
		isCode := offset.IsType(CodeOffset)
		if i > 0 && offset.Label == "" && isCode != previousLineWasCode {
			if _, err := fmt.Fprintln(writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = isCode

		if isCode {
			if len(offset.Data) == 0 {
				continue
			}
			if err := dis.writeCodeLine(writer, offset); err != nil {
				return fmt.Errorf("writing code line: %w", err)
			}
			i += len(offset.Data) - 1
			continue
		}

		count, err := dis.writeData(writer, i)
		if err != nil {
			return err
		}
		i += count - 1
	}
	return nil
}

// writeCommentHeader writes the CRC32 checksum and code base address as comments to the output.
func (dis *Disasm) writeCommentHeader(writer io.Writer) error {
	checksum := crc32.ChecksumIEEE(dis.rom)
	if _, err := fmt.Fprintf(writer, "; ROM CRC32 checksum: %08x\n", checksum); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(writer, "; Code base address: $%04x\n\n", memory.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

func writeLabel(writer io.Writer, index int, offset *Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	if _, err := fmt.Fprintf(writer, "%s:\n", offset.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (dis *Disasm) writeCodeLine(writer io.Writer, offset *Offset) error {
	var comments []string
	if dis.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", offset.Address))
	}
	if dis.options.HexComments {
		comments = append(comments, fmt.Sprintf("%02X %02X", offset.Data[0], offset.Data[1]))
	}
	if offset.Comment != "" {
		comments = append(comments, offset.Comment)
	}

	if len(comments) == 0 {
		_, err := fmt.Fprintf(writer, "  %s\n", offset.Code)
		return err
	}
	_, err := fmt.Fprintf(writer, "  %-30s ; %s\n", offset.Code, strings.Join(comments, "  "))
	return err
}

// writeData writes the data bytes starting at the index, bundled to
// dataBytesPerLine bytes per line. It returns the number of bytes written.
func (dis *Disasm) writeData(writer io.Writer, startIndex int) (int, error) {
	end := dis.dataEnd(startIndex)

	for i := startIndex; i < end; {
		lineEnd := min(i+dataBytesPerLine, end)

		// a commented offset starts its own line
		for j := i + 1; j < lineEnd; j++ {
			if dis.offsets[j].Comment != "" {
				lineEnd = j
				break
			}
		}

		if err := dis.writeDataLine(writer, i, lineEnd); err != nil {
			return 0, err
		}
		i = lineEnd
	}
	return end - startIndex, nil
}

// dataEnd returns the index of the first offset after the start that is
// code or carries a label.
func (dis *Disasm) dataEnd(startIndex int) int {
	for i := startIndex + 1; i < len(dis.offsets); i++ {
		offset := &dis.offsets[i]
		if offset.IsType(CodeOffset) || offset.Label != "" {
			return i
		}
	}
	return len(dis.offsets)
}

func (dis *Disasm) writeDataLine(writer io.Writer, startIndex, endIndex int) error {
	buf := &strings.Builder{}
	buf.WriteString(".byte ")
	for i := startIndex; i < endIndex; i++ {
		fmt.Fprintf(buf, "$%02x, ", dis.rom[i])
	}
	line := strings.TrimRight(buf.String(), ", ")

	offset := &dis.offsets[startIndex]
	comment := offset.Comment
	if dis.options.OffsetComments {
		address := fmt.Sprintf("$%04X", offset.Address)
		if comment == "" {
			comment = address
		} else {
			comment = address + "  " + comment
		}
	}

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(writer, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(writer, "%-32s ; %s\n", line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing data line: %w", err)
	}
	return nil
}
