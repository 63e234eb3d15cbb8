// Package hostimage loads a flat, big-endian program image from disk into
// the word slice a vm.Processor.Load call expects. It intentionally knows
// nothing about ELF or any other container format — just a raw stream of
// 32-bit instruction words, matching the big-endian write side of
// vm.Memory.WriteInst.
package hostimage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// LoadFlatImage reads the file at path and decodes it as a sequence of
// big-endian uint32 instruction words. The file length must be a multiple
// of 4 bytes; anything else is a malformed image.
func LoadFlatImage(path string) ([]uint32, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-supplied image path
	if err != nil {
		return nil, fmt.Errorf("hostimage: open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeFlatImage(f)
}

// DecodeFlatImage reads every big-endian uint32 word from r until EOF.
func DecodeFlatImage(r io.Reader) ([]uint32, error) {
	var words []uint32
	buf := make([]byte, 4)
	for {
		_, err := io.ReadFull(r, buf)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("hostimage: image length is not a multiple of 4 bytes")
		}
		if err != nil {
			return nil, fmt.Errorf("hostimage: read: %w", err)
		}
		words = append(words, binary.BigEndian.Uint32(buf))
	}
	return words, nil
}

// EncodeFlatImage writes words to w as big-endian uint32s, the inverse of
// DecodeFlatImage. It exists mainly so tests and tools can build fixture
// images without hand-assembling bytes.
func EncodeFlatImage(w io.Writer, words []uint32) error {
	buf := make([]byte, 4)
	for _, word := range words {
		binary.BigEndian.PutUint32(buf, word)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("hostimage: write: %w", err)
		}
	}
	return nil
}
