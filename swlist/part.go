package swlist

import "fmt"

// Part is one loadable or mountable component of a software item: a
// cartridge, a disk side, a tape...
type Part struct {
	info      *Info
	name      string
	iface     string
	features  []Feature // shared features of info, then the part's own
	nshared   int       // number of inherited features at the head of features
	dataAreas []DataArea
	roms      []ROMEntry
}

// DataArea is a named memory region declared by a part.
type DataArea struct {
	Name       string
	Size       uint64 // 0 for disk areas
	Width      uint8  // data bus width in bits (8, 16, 32 or 64)
	Endianness string // "little" or "big"
	Disk       bool   // true for a disk area
}

// ROMEntry describes a ROM or disk image to load into a data area.
type ROMEntry struct {
	Region    string // name of the owning data or disk area
	Name      string // empty for fill and continue entries
	Offset    uint64
	Length    uint64
	CRC       string // lower case hexadecimal, empty if unknown
	SHA1      string // lower case hexadecimal, empty if unknown
	Value     string // fill value
	LoadFlag  string
	Status    string // "good", "baddump" or "nodump"
	Writeable bool   // disks only
	Disk      bool
}

// Checksum returns the hashes of the ROM in the list notation, for example
// "CRC(3ee6f00b) SHA1(6ff6c4e4...)".
func (r ROMEntry) Checksum() string {
	switch {
	case r.CRC != "" && r.SHA1 != "":
		return fmt.Sprintf("CRC(%s) SHA1(%s)", r.CRC, r.SHA1)
	case r.CRC != "":
		return fmt.Sprintf("CRC(%s)", r.CRC)
	case r.SHA1 != "":
		return fmt.Sprintf("SHA1(%s)", r.SHA1)
	}
	return "NO_DUMP"
}

// Info returns the software item owning p.
func (p *Part) Info() *Info { return p.info }

func (p *Part) Name() string { return p.name }

// Interface returns the slot or peripheral type the part targets.
func (p *Part) Interface() string { return p.iface }

// Features returns the effective feature list of p: the shared features of
// its item followed by its own. The returned slice must not be modified.
func (p *Part) Features() []Feature { return p.features }

// Feature returns the value of the first feature with the given name.
func (p *Part) Feature(name string) (string, bool) {
	return findFeature(p.features, name)
}

func (p *Part) DataAreas() []DataArea { return p.dataAreas }

func (p *Part) dataArea(name string) (DataArea, bool) {
	for _, da := range p.dataAreas {
		if da.Name == name {
			return da, true
		}
	}
	return DataArea{}, false
}

// ROMCount returns the number of ROM entries of p.
func (p *Part) ROMCount() int { return len(p.roms) }

// ROM returns the ROM entry at index. ok is false past the last entry.
func (p *Part) ROM(index int) (rom ROMEntry, ok bool) {
	if index < 0 || index >= len(p.roms) {
		return ROMEntry{}, false
	}
	return p.roms[index], true
}

// MatchesInterface reports whether the part interface is one of the
// comma-separated interfaces in list. A part without interface, or an empty
// list, always matches.
func (p *Part) MatchesInterface(list string) bool {
	if p.iface == "" || list == "" {
		return true
	}
	for _, tok := range tokens(list) {
		if tok == p.iface {
			return true
		}
	}
	return false
}

// IsCompatible checks p against the type and filter of l.
//
// The "incompatibility" feature is checked first, an item listed as not
// running on one of the filter systems is Incompatible. Everything in an
// original system list is Compatible. For compatible system lists the part
// must carry a "compatibility" feature, otherwise it's NotCompatible, that
// shares an item with the list filter.
func (p *Part) IsCompatible(l *List) Compatibility {
	filter := l.Filter()

	if incomp, ok := p.Feature("incompatibility"); ok && filter != "" && sharesToken(incomp, filter) {
		return Incompatible
	}
	if l.Type() == OriginalSystem {
		return Compatible
	}

	comp, ok := p.Feature("compatibility")
	if !ok {
		return NotCompatible
	}
	if filter == "" || sharesToken(comp, filter) {
		return Compatible
	}
	return Incompatible
}
