package hostimage_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"rv32i-emu/hostimage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	words := []uint32{0x00000013, 0xFFFFFFFF, 0x80000000, 0x1}

	var buf bytes.Buffer
	require.NoError(t, hostimage.EncodeFlatImage(&buf, words))

	got, err := hostimage.DecodeFlatImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, words, got)
}

func TestDecodeIsBigEndian(t *testing.T) {
	got, err := hostimage.DecodeFlatImage(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint32(0x01020304), got[0])
}

func TestDecodeRejectsTruncatedTrailer(t *testing.T) {
	_, err := hostimage.DecodeFlatImage(bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	assert.Error(t, err)
}

func TestLoadFlatImageFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x00, 0x00, 0x13, 0xDE, 0xAD, 0xBE, 0xEF}, 0600))

	words, err := hostimage.LoadFlatImage(path)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x00000013, 0xDEADBEEF}, words)
}

func TestLoadFlatImageMissingFile(t *testing.T) {
	_, err := hostimage.LoadFlatImage(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
