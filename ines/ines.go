// Package ines splits dumps in the iNES file format, used for the
// distribution of NES binary programs, into the data areas software lists
// describe them with.
package ines

import (
	"bytes"

	"github.com/go-faster/errors"
)

const Magic = "NES\x1a"

const (
	headerSize  = 16
	trainerSize = 512
	prgBank     = 16 << 10
	chrBank     = 8 << 10
)

// Header holds the decoded fields of an iNES header.
type Header struct {
	PRGSize    int   // PRG ROM size in bytes
	CHRSize    int   // CHR ROM size in bytes, 0 for CHR RAM boards
	Mapper     uint8 // iNES mapper number
	HasTrainer bool  // 512 bytes trainer between header and PRG
	Persistent bool  // battery backed memory
	NES20      bool  // header uses the NES 2.0 extensions
}

func decodeHeader(p []byte) (Header, error) {
	if len(p) < headerSize {
		return Header{}, errors.Errorf("too small, needs %d bytes", headerSize)
	}
	if !Is(p) {
		return Header{}, errors.New("invalid magic number")
	}

	return Header{
		PRGSize:    int(p[4]) * prgBank,
		CHRSize:    int(p[5]) * chrBank,
		Mapper:     p[7]&0xF0 | p[6]>>4,
		HasTrainer: p[6]&0x04 != 0,
		Persistent: p[6]&0x02 != 0,
		NES20:      p[7]&0x0C == 0x08,
	}, nil
}

// Rom is a decoded iNES dump. Its sections reference the decoded buffer.
type Rom struct {
	Header
	Trainer []byte
	PRG     []byte
	CHR     []byte
}

// Is reports whether buf starts with the iNES magic number.
func Is(buf []byte) bool {
	return bytes.HasPrefix(buf, []byte(Magic))
}

// Decode decodes an iNES rom from buf.
func Decode(buf []byte) (*Rom, error) {
	hdr, err := decodeHeader(buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode header")
	}

	rom := &Rom{Header: hdr}
	off := headerSize
	chunk := func(name string, dst *[]byte, size int) error {
		if len(buf) < off+size {
			return errors.Errorf("incomplete %s section (%d bytes missing)", name, off+size-len(buf))
		}
		*dst = buf[off : off+size]
		off += size
		return nil
	}

	if hdr.HasTrainer {
		if err := chunk("TRAINER", &rom.Trainer, trainerSize); err != nil {
			return nil, err
		}
	}
	if err := chunk("PRG", &rom.PRG, hdr.PRGSize); err != nil {
		return nil, err
	}
	if err := chunk("CHR", &rom.CHR, hdr.CHRSize); err != nil {
		return nil, err
	}
	return rom, nil
}

// Section is a named chunk of rom data. Names match the data area names
// used by NES software lists.
type Section struct {
	Name string
	Data []byte
}

// Sections returns the non-empty PRG and CHR sections of the rom.
func (rom *Rom) Sections() []Section {
	var secs []Section
	if len(rom.PRG) != 0 {
		secs = append(secs, Section{Name: "prg", Data: rom.PRG})
	}
	if len(rom.CHR) != 0 {
		secs = append(secs, Section{Name: "chr", Data: rom.CHR})
	}
	return secs
}
