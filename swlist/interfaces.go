package swlist

import "sort"

// Interfaces is a registry of known part interfaces. Parts declaring an
// interface missing from the registry of their list are kept, but reported.
type Interfaces struct {
	tags map[string]struct{}
}

// NewInterfaces returns a registry containing tags.
func NewInterfaces(tags ...string) *Interfaces {
	r := &Interfaces{tags: make(map[string]struct{}, len(tags))}
	r.Register(tags...)
	return r
}

// Register adds tags to the registry.
func (r *Interfaces) Register(tags ...string) {
	for _, tag := range tags {
		r.tags[tag] = struct{}{}
	}
}

// Known reports whether tag has been registered. A nil registry knows every
// interface.
func (r *Interfaces) Known(tag string) bool {
	if r == nil {
		return true
	}
	_, ok := r.tags[tag]
	return ok
}

// With returns a copy of r extended with tags.
func (r *Interfaces) With(tags ...string) *Interfaces {
	cpy := NewInterfaces(r.Tags()...)
	cpy.Register(tags...)
	return cpy
}

// Tags returns the sorted list of registered interfaces.
func (r *Interfaces) Tags() []string {
	if r == nil {
		return nil
	}
	tags := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DefaultInterfaces holds the interfaces of the slots and media drives
// commonly found in software lists.
var DefaultInterfaces = NewInterfaces(
	// cartridges
	"nes_cart", "snes_cart", "gameboy_cart", "gba_cart", "megadriv_cart",
	"sms_cart", "gamegear_cart", "a2600_cart", "a7800_cart", "a5200_cart",
	"coleco_cart", "intv_cart", "msx_cart", "pce_cart", "n64_cart",
	"vectrex_cart", "ngp_cart", "wswan_cart", "lynx_cart", "c64_cart",
	"vic20_cart", "spectrum_cart", "hh_pps41_cart",
	// tapes
	"cass", "cassette", "c64_cass", "spectrum_cass", "msx_cass", "famicom_cass",
	// disks
	"floppy_3", "floppy_3_5", "floppy_5_25", "floppy_8", "famicom_flop",
	"apple2_flop", "c64_flop", "cdrom", "hdd", "quickload", "snapshot",
)
