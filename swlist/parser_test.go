package swlist

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParserMalformedEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries string
		items   []string // items expected in the graph
		kind    error    // expected error kind
		msg     string   // expected in errors string
	}{
		{
			name: "software without name",
			entries: `
				<software><description>Nameless</description><part name="cart" interface="nes_cart"/></software>
				<software name="ok"><description>Ok</description><part name="cart" interface="nes_cart"/></software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   `software tag is missing required attribute "name"`,
		},
		{
			name: "part without interface",
			entries: `
				<software name="ok"><description>Ok</description>
					<part name="cart"/>
					<part name="cart2" interface="nes_cart"/>
				</software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   `part tag is missing required attribute "interface"`,
		},
		{
			name: "unknown tag",
			entries: `
				<software name="ok"><description>Ok</description><rating>5</rating><part name="cart" interface="nes_cart"/></software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   "unknown tag rating in software",
		},
		{
			name: "invalid supported",
			entries: `
				<software name="ok" supported="maybe"><description>Ok</description><part name="cart" interface="nes_cart"/></software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   `invalid supported value "maybe"`,
		},
		{
			name: "unknown interface",
			entries: `
				<software name="ok"><description>Ok</description><part name="cart" interface="holodeck"/></software>`,
			items: []string{"ok"},
			kind:  ErrReference,
			msg:   "part cart has unknown interface holodeck",
		},
		{
			name: "unknown parent",
			entries: `
				<software name="ok" cloneof="nope"><description>Ok</description><part name="cart" interface="nes_cart"/></software>`,
			items: []string{"ok"},
			kind:  ErrReference,
			msg:   "software ok is a clone of unknown software nope",
		},
		{
			name: "clone of clone",
			entries: `
				<software name="a"><description>A</description><part name="cart" interface="nes_cart"/></software>
				<software name="b" cloneof="a"><description>B</description><part name="cart" interface="nes_cart"/></software>
				<software name="c" cloneof="b"><description>C</description><part name="cart" interface="nes_cart"/></software>`,
			items: []string{"a", "b", "c"},
			kind:  ErrReference,
			msg:   "software c is a clone of b, which is itself a clone of a",
		},
		{
			name: "rom overflows its area",
			entries: `
				<software name="ok"><description>Ok</description><part name="cart" interface="nes_cart">
					<dataarea name="prg" size="0x4000"><rom name="ok.prg" size="0x4000" offset="0x2000"/></dataarea>
				</part></software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   "rom ok.prg (offset 0x2000, size 0x4000) overflows area prg (size 0x4000)",
		},
		{
			name: "rom offset wraps around",
			entries: `
				<software name="ok"><description>Ok</description><part name="cart" interface="nes_cart">
					<dataarea name="prg" size="16"><rom name="ok.prg" size="2" offset="0xffffffffffffffff"/></dataarea>
				</part></software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   "rom ok.prg (offset 0xffffffffffffffff, size 0x2) overflows area prg (size 0x10)",
		},
		{
			name: "dataarea with invalid size",
			entries: `
				<software name="ok"><description>Ok</description><part name="cart" interface="nes_cart">
					<dataarea name="prg" size="big"><rom name="ok.prg" size="0x4000"/></dataarea>
				</part></software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   `dataarea prg has invalid size "big"`,
		},
		{
			name: "invalid crc",
			entries: `
				<software name="ok"><description>Ok</description><part name="cart" interface="nes_cart">
					<dataarea name="prg" size="16"><rom name="ok.prg" size="16" crc="xyz"/></dataarea>
				</part></software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   `rom ok.prg has invalid crc "xyz"`,
		},
		{
			name: "bad shortname",
			entries: `
				<software name="Super-Game"><description>Super</description><part name="cart" interface="nes_cart"/></software>`,
			items: []string{"Super-Game"},
			kind:  ErrParse,
			msg:   "has a name with characters other than [a-z0-9_]",
		},
		{
			name: "no parts",
			entries: `
				<software name="ok"><description>Ok</description></software>`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   "software ok has no parts",
		},
		{
			name: "duplicate part names",
			entries: `
				<software name="ok"><description>Ok</description>
					<part name="flop" interface="floppy_3_5"/>
					<part name="flop" interface="floppy_3_5"/>
				</software>`,
			items: []string{"ok"},
			kind:  ErrDuplicateKey,
			msg:   "software ok has duplicate part name flop",
		},
		{
			name: "truncated source",
			entries: `
				<software name="ok"><description>Ok</description><part name="cart" interface="nes_cart"/></software>
				<software name="cut"><description>Cut`,
			items: []string{"ok"},
			kind:  ErrParse,
			msg:   "malformed source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := wrap(tt.entries)
			if tt.name == "truncated source" {
				content = strings.TrimSuffix(content, "</softwarelist>")
			}
			l := newTestList(t, OriginalSystem, "", content)

			if diff := cmp.Diff(tt.items, shortnames(l.Infos())); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
			if !l.HasErrors() {
				t.Fatalf("no errors reported")
			}
			if !strings.Contains(l.ErrorsString(), tt.msg) {
				t.Errorf("errors don't contain %q:\n%s", tt.msg, l.ErrorsString())
			}

			found := false
			for _, err := range l.Errors() {
				if errors.Is(err, tt.kind) && strings.Contains(err.Error(), tt.msg) {
					found = true
				}
			}
			if !found {
				t.Errorf("no %v error matching %q:\n%s", tt.kind, tt.msg, l.ErrorsString())
			}
		})
	}
}

func TestParserErrorPosition(t *testing.T) {
	l := newTestList(t, OriginalSystem, "", "<softwarelist name=\"test\">\n\n  <software><part/></software>\n</softwarelist>")

	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1:\n%s", len(errs), l.ErrorsString())
	}
	if !strings.HasPrefix(errs[0].Error(), "test.xml(3.") {
		t.Errorf("error %q not reported on line 3", errs[0])
	}
}

func TestParserFeatureInheritance(t *testing.T) {
	l := newTestList(t, OriginalSystem, "", nesList)

	smb := l.Find("smb", nil)
	want := []Feature{
		{"compatibility", "NTSC"},
		{"slot", "nrom"},
		{"pcb", "NES-NROM-256"},
	}
	if diff := cmp.Diff(want, smb.FirstPart().Features()); diff != "" {
		t.Fatalf("features mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[:1], smb.SharedFeatures()); diff != "" {
		t.Fatalf("shared features mismatch (-want +got):\n%s", diff)
	}

	if v, ok := smb.FirstPart().Feature("slot"); !ok || v != "nrom" {
		t.Errorf("Feature(slot) = %q, %t", v, ok)
	}
	if _, ok := smb.FirstPart().Feature("serial"); ok {
		t.Errorf("other info is inherited by parts")
	}
}

func TestParserLateSharedFeature(t *testing.T) {
	l := newTestList(t, OriginalSystem, "", wrap(`
		<software name="ok"><description>Ok</description>
			<sharedfeat name="a" value="1"/>
			<part name="p1" interface="nes_cart"><feature name="own" value="x"/></part>
			<sharedfeat name="b" value="2"/>
			<part name="p2" interface="nes_cart"/>
		</software>`))

	info := l.Find("ok", nil)
	want := [][]Feature{
		{{"a", "1"}, {"b", "2"}, {"own", "x"}},
		{{"a", "1"}, {"b", "2"}},
	}
	for i, part := range info.Parts() {
		if diff := cmp.Diff(want[i], part.Features()); diff != "" {
			t.Errorf("part %s features mismatch (-want +got):\n%s", part.Name(), diff)
		}
	}
	if !strings.Contains(l.ErrorsString(), "sharedfeat b declared after a part") {
		t.Errorf("late shared feature not reported:\n%s", l.ErrorsString())
	}
}

func TestParserInternsStrings(t *testing.T) {
	l := newTestList(t, OriginalSystem, "", nesList)

	smb := l.Find("smb", nil).FirstPart()
	smbj := l.Find("smbj", nil).FirstPart()
	if !sameString(smb.Interface(), smbj.Interface()) {
		t.Errorf("interfaces not interned")
	}
	if !sameString(l.Find("smb", nil).Publisher(), l.Find("zelda", nil).Publisher()) {
		t.Errorf("publishers not interned")
	}
	if !sameString(l.AddString("Nintendo"), l.Find("smb", nil).Publisher()) {
		t.Errorf("AddString doesn't share the parser pool")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		s    string
		want uint64
		ok   bool
	}{
		{"0", 0, true},
		{"32768", 32768, true},
		{"0x8000", 0x8000, true},
		{"0X10", 16, true},
		{"010", 10, true},
		{"", 0, false},
		{"0xg", 0, false},
		{"-1", 0, false},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.s)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("parseNumber(%q) = %d, %v", tt.s, got, err)
		}
	}
}
