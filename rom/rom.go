// Package rom loads ROM regions from image files.
//
// A Region lists the image files that fill it. Each Entry may carry a CRC32
// and a SHA1; when present, the file must match them.
package rom

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"hash/crc32"
	"io/fs"
	"strings"

	"github.com/ezrec/ehbc/translate"
)

// Entry is one ROM image within a region.
type Entry struct {
	Name         string // Image file name.
	Offset       uint32 // Offset into the region.
	Length       uint32 // Image length in bytes.
	Crc32        uint32 // Expected CRC32, if HasCrc32.
	HasCrc32     bool
	Sha1         string // Expected SHA1 as hex, if non-empty.
	Interleave16 bool   // Load into every other byte of the region.
	NoDump       bool   // Image was never dumped, leave the fill.
}

// Region is an area of ROM filled from images.
type Region struct {
	Name    string
	Size    uint32
	Fill    uint8
	Entries []Entry
}

// Crc builds an Entry with a CRC32 and SHA1.
func Crc(name string, offset, length uint32, crc uint32, sha string) Entry {
	return Entry{
		Name:     name,
		Offset:   offset,
		Length:   length,
		Crc32:    crc,
		HasCrc32: true,
		Sha1:     strings.ToLower(sha),
	}
}

// Verify checks an image against the expected hashes of the entry.
func (entry *Entry) Verify(data []byte) (err error) {
	if uint32(len(data)) != entry.Length {
		err = &ErrRom{Name: entry.Name, Err: ErrRomLength}
		return
	}

	if entry.HasCrc32 && crc32.ChecksumIEEE(data) != entry.Crc32 {
		err = &ErrRom{Name: entry.Name, Err: ErrRomChecksum}
		return
	}

	if len(entry.Sha1) != 0 {
		sum := sha1.Sum(data)
		if hex.EncodeToString(sum[:]) != entry.Sha1 {
			err = &ErrRom{Name: entry.Name, Err: ErrRomChecksum}
			return
		}
	}

	return
}

// Load fills a region from the image files in a file system.
func Load(filesys fs.FS, region *Region) (data []byte, err error) {
	data = make([]byte, region.Size)
	if region.Fill != 0 {
		for n := range data {
			data[n] = region.Fill
		}
	}

	for _, entry := range region.Entries {
		if entry.NoDump {
			translate.Logf("rom: %v: %v: no dump", region.Name, entry.Name)
			continue
		}

		var image []byte
		image, err = fs.ReadFile(filesys, entry.Name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = &ErrRom{Name: entry.Name, Err: ErrRomMissing}
			}
			return
		}

		err = entry.Verify(image)
		if err != nil {
			return
		}

		stride := uint32(1)
		if entry.Interleave16 {
			stride = 2
		}

		if entry.Length == 0 || uint64(entry.Offset)+uint64(entry.Length-1)*uint64(stride) >= uint64(region.Size) {
			err = &ErrRom{Name: entry.Name, Err: ErrRomRegion}
			return
		}

		for n, b := range image {
			data[entry.Offset+uint32(n)*stride] = b
		}
	}

	return
}

// Words16LE converts region bytes to little-endian 16-bit words.
func Words16LE(data []byte) (words []uint16) {
	words = make([]uint16, len(data)/2)
	for n := range words {
		words[n] = uint16(data[2*n]) | uint16(data[2*n+1])<<8
	}

	return
}
