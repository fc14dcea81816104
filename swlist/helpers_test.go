package swlist

import (
	"io"
	"testing"
	"unsafe"
)

const sha1a = "0123456789abcdef0123456789abcdef01234567"
const sha1b = "89abcdef0123456789abcdef0123456789abcdef"

const nesList = `<?xml version="1.0"?>
<!DOCTYPE softwarelist SYSTEM "softwarelist.dtd">
<softwarelist name="nes" description="Nintendo Entertainment System cartridges">
	<software name="smb">
		<description>Super Mario Bros.</description>
		<year>1985</year>
		<publisher>Nintendo</publisher>
		<info name="serial" value="NES-SM-USA"/>
		<sharedfeat name="compatibility" value="NTSC"/>
		<part name="cart" interface="nes_cart">
			<feature name="slot" value="nrom"/>
			<feature name="pcb" value="NES-NROM-256"/>
			<dataarea name="prg" size="32768">
				<rom name="smb.prg" size="32768" crc="5cf548d3" sha1="` + sha1a + `" offset="0x0000"/>
			</dataarea>
			<dataarea name="chr" size="0x2000">
				<rom name="smb.chr" size="8192" crc="867b51ad" sha1="` + sha1b + `" offset="0"/>
			</dataarea>
		</part>
	</software>

	<software name="smbj" cloneof="smb">
		<description>Super Mario Bros. (Japan)</description>
		<year>1985</year>
		<publisher>Nintendo</publisher>
		<sharedfeat name="compatibility" value="NTSC"/>
		<part name="cart" interface="nes_cart">
			<dataarea name="prg" size="32768">
				<rom name="smbj.prg" size="32768" crc="5cf548d3"/>
			</dataarea>
		</part>
	</software>

	<software name="zelda" supported="partial">
		<description>The Legend of Zelda</description>
		<year>1986</year>
		<publisher>Nintendo</publisher>
		<notes><![CDATA[Disk System release.]]></notes>
		<part name="flop1" interface="famicom_flop">
			<feature name="part_id" value="Side A"/>
			<diskarea name="flop">
				<disk name="zelda_a" sha1="` + sha1a + `"/>
			</diskarea>
		</part>
		<part name="flop2" interface="famicom_flop">
			<feature name="part_id" value="Side B"/>
		</part>
		<part name="cass" interface="famicom_cass"/>
	</software>
</softwarelist>
`

// countingSource counts the opening and closing of list sources.
type countingSource struct {
	src    Source
	opens  int
	closes int
}

func (cs *countingSource) Open(name string) (io.ReadCloser, error) {
	rc, err := cs.src.Open(name)
	if err != nil {
		return nil, err
	}
	cs.opens++
	return closeCounter{ReadCloser: rc, n: &cs.closes}, nil
}

type closeCounter struct {
	io.ReadCloser
	n *int
}

func (cc closeCounter) Close() error {
	*cc.n++
	return cc.ReadCloser.Close()
}

func newTestList(tb testing.TB, typ ListType, filter, content string) *List {
	tb.Helper()
	return New(Config{
		Name:       "test",
		Type:       typ,
		Filter:     filter,
		Interfaces: DefaultInterfaces,
	}, MapSource{"test": content})
}

// wrap builds a list source from software entries.
func wrap(entries string) string {
	return `<softwarelist name="test" description="Test list">` + entries + `</softwarelist>`
}

func shortnames(infos []*Info) []string {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Shortname()
	}
	return names
}

func tcheck(tb testing.TB, err error) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s\n", err)
}

func sameString(a, b string) bool {
	return a == b && unsafe.StringData(a) == unsafe.StringData(b)
}
