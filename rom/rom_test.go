package rom

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"hash/crc32"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func imageEntry(name string, offset uint32, data []byte) Entry {
	sum := sha1.Sum(data)
	return Crc(name, offset, uint32(len(data)), crc32.ChecksumIEEE(data), hex.EncodeToString(sum[:]))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	a := []byte{1, 2, 3, 4}
	b := []byte{5, 6}
	filesys := fstest.MapFS{
		"a.bin": {Data: a},
		"b.bin": {Data: b},
	}

	region := &Region{
		Name: "test",
		Size: 8,
		Fill: 0xff,
		Entries: []Entry{
			imageEntry("a.bin", 0, a),
			imageEntry("b.bin", 6, b),
		},
	}

	data, err := Load(filesys, region)
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3, 4, 0xff, 0xff, 5, 6}, data)
}

func TestLoadInterleave(t *testing.T) {
	assert := assert.New(t)

	even := []byte{0x01, 0x03}
	odd := []byte{0x02, 0x04}
	filesys := fstest.MapFS{
		"even.bin": {Data: even},
		"odd.bin":  {Data: odd},
	}

	evenEntry := imageEntry("even.bin", 0, even)
	evenEntry.Interleave16 = true
	oddEntry := imageEntry("odd.bin", 1, odd)
	oddEntry.Interleave16 = true

	region := &Region{Name: "program", Size: 4, Entries: []Entry{evenEntry, oddEntry}}

	data, err := Load(filesys, region)
	assert.NoError(err)
	assert.Equal([]byte{0x01, 0x02, 0x03, 0x04}, data)
	assert.Equal([]uint16{0x0201, 0x0403}, Words16LE(data))
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	good := []byte{1, 2, 3, 4}
	filesys := fstest.MapFS{
		"good.bin":  {Data: good},
		"short.bin": {Data: good[:2]},
	}

	badCrc := imageEntry("good.bin", 0, good)
	badCrc.Crc32 ^= 1

	badSha := imageEntry("good.bin", 0, good)
	badSha.Sha1 = "0000000000000000000000000000000000000000"

	short := imageEntry("short.bin", 0, good)

	wrap := imageEntry("short.bin", 0xffff_ffff, good[:2])

	wrapInterleave := imageEntry("good.bin", 0x8000_0000, good)
	wrapInterleave.Interleave16 = true

	tests := []struct {
		name  string
		entry Entry
		err   error
	}{
		{"missing", imageEntry("none.bin", 0, good), ErrRomMissing},
		{"length", short, ErrRomLength},
		{"crc", badCrc, ErrRomChecksum},
		{"sha1", badSha, ErrRomChecksum},
		{"region", imageEntry("good.bin", 6, good), ErrRomRegion},
		{"wrap", wrap, ErrRomRegion},
		{"wrap interleave", wrapInterleave, ErrRomRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := &Region{Name: "test", Size: 8, Entries: []Entry{tt.entry}}
			var err error
			assert.NotPanics(func() { _, err = Load(filesys, region) })
			assert.ErrorIs(err, tt.err)

			var err_rom *ErrRom
			assert.True(errors.As(err, &err_rom))
			assert.Equal(tt.entry.Name, err_rom.Name)
		})
	}
}

func TestLoadNoDump(t *testing.T) {
	assert := assert.New(t)

	region := &Region{
		Name:    "prom",
		Size:    4,
		Fill:    0x5a,
		Entries: []Entry{{Name: "prom.bin", Length: 4, NoDump: true}},
	}

	data, err := Load(fstest.MapFS{}, region)
	assert.NoError(err)
	assert.Equal([]byte{0x5a, 0x5a, 0x5a, 0x5a}, data)
}

func TestVerifyNoHash(t *testing.T) {
	assert := assert.New(t)

	entry := Entry{Name: "firmware.bin", Length: 3}
	assert.NoError(entry.Verify([]byte{1, 2, 3}))
	assert.ErrorIs(entry.Verify([]byte{1, 2}), ErrRomLength)
}
