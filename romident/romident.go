// Package romident identifies ROM dumps by looking for their hashes in
// software lists.
package romident

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"os"

	"softlist/ines"
	"softlist/log"
	"softlist/swlist"
)

// Hash holds the hashes of a dump, in the software list notation.
type Hash struct {
	Size uint64
	CRC  string
	SHA1 string
}

// HashOf computes the hashes of data.
func HashOf(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash{
		Size: uint64(len(data)),
		CRC:  fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)),
		SHA1: hex.EncodeToString(sum[:]),
	}
}

// matches reports whether rom describes the data with hash h. SHA1 has
// precedence over CRC when both are known.
func (h Hash) matches(rom swlist.ROMEntry) bool {
	if rom.Disk {
		return false
	}
	if rom.SHA1 != "" {
		return rom.SHA1 == h.SHA1
	}
	return rom.CRC != "" && rom.CRC == h.CRC && rom.Length == h.Size
}

// Match is a ROM entry of a software list matching a dump.
type Match struct {
	Section string // "prg" or "chr" for iNES dumps, empty otherwise
	Info    *swlist.Info
	Part    *swlist.Part
	ROM     swlist.ROMEntry
}

func (m Match) String() string {
	s := fmt.Sprintf("%s:%s %s %s", m.Info.List().Name(), m.Info.Shortname(), m.Part.Name(), m.ROM.Name)
	if m.Section != "" {
		s = m.Section + " = " + s
	}
	return s
}

// Identify looks for data in lists. iNES dumps are first split into their
// PRG and CHR sections, which are identified separately.
func Identify(data []byte, lists ...*swlist.List) []Match {
	if ines.Is(data) {
		rom, err := ines.Decode(data)
		if err == nil {
			var matches []Match
			for _, sec := range rom.Sections() {
				matches = append(matches, find(HashOf(sec.Data), sec.Name, lists)...)
			}
			return matches
		}
		log.ModIdent.WithError(err).Debugf("not a valid iNES rom, hashing the whole file")
	}
	return find(HashOf(data), "", lists)
}

// IdentifyFile identifies the dump at path.
func IdentifyFile(path string, lists ...*swlist.List) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	matches := Identify(data, lists...)
	log.ModIdent.WithFields(log.Fields{
		"file":    path,
		"matches": len(matches),
	}).Debugf("identified")
	return matches, nil
}

func find(h Hash, section string, lists []*swlist.List) []Match {
	var matches []Match
	for _, l := range lists {
		for _, info := range l.Infos() {
			for _, part := range info.Parts() {
				for i := 0; i < part.ROMCount(); i++ {
					rom, _ := part.ROM(i)
					if h.matches(rom) {
						matches = append(matches, Match{
							Section: section,
							Info:    info,
							Part:    part,
							ROM:     rom,
						})
					}
				}
			}
		}
	}
	return matches
}
