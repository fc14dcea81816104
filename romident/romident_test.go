package romident

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"softlist/swlist"
)

var (
	prg = bytes.Repeat([]byte{0xAA}, 16384)
	chr = bytes.Repeat([]byte{0x55}, 8192)
)

func inesDump() []byte {
	buf := []byte{'N', 'E', 'S', 0x1a, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	buf = append(buf, prg...)
	return append(buf, chr...)
}

func testList(t *testing.T) *swlist.List {
	t.Helper()

	ph, ch := HashOf(prg), HashOf(chr)
	content := fmt.Sprintf(`<softwarelist name="nes" description="NES">
	<software name="game">
		<description>Game</description>
		<part name="cart" interface="nes_cart">
			<dataarea name="prg" size="16384"><rom name="game.prg" size="16384" crc="%s" sha1="%s"/></dataarea>
			<dataarea name="chr" size="8192"><rom name="game.chr" size="8192" crc="%s"/></dataarea>
		</part>
	</software>
	<software name="hack" cloneof="game">
		<description>Game (hack)</description>
		<part name="cart" interface="nes_cart">
			<dataarea name="prg" size="16384"><rom name="hack.prg" size="16384" crc="%s" sha1="%s"/></dataarea>
			<dataarea name="chr" size="8192"><rom name="hack.chr" size="8192" crc="%s"/></dataarea>
		</part>
	</software>
</softwarelist>`, ph.CRC, ph.SHA1, ch.CRC, ph.CRC, "0000000000000000000000000000000000000000", "00000000")

	l := swlist.New(swlist.Config{Name: "nes"}, swlist.MapSource{"nes": content})
	if l.HasErrors() {
		t.Fatalf("test list has errors:\n%s", l.ErrorsString())
	}
	return l
}

func names(matches []Match) []string {
	var strs []string
	for _, m := range matches {
		strs = append(strs, m.String())
	}
	return strs
}

func TestHashOf(t *testing.T) {
	h := HashOf([]byte("abc"))
	want := Hash{Size: 3, CRC: "352441c2", SHA1: "a9993e364706816aba3e25717850c26c9cd0d89d"}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Fatalf("hash mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentifyINES(t *testing.T) {
	l := testList(t)

	want := []string{
		"prg = nes:game cart game.prg",
		"chr = nes:game cart game.chr",
	}
	if diff := cmp.Diff(want, names(Identify(inesDump(), l))); diff != "" {
		t.Fatalf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentifyRaw(t *testing.T) {
	l := testList(t)

	if diff := cmp.Diff([]string{"nes:game cart game.chr"}, names(Identify(chr, l))); diff != "" {
		t.Fatalf("matches mismatch (-want +got):\n%s", diff)
	}
	if m := Identify([]byte("unknown"), l); len(m) != 0 {
		t.Fatalf("unexpected matches %v", names(m))
	}
}

func TestIdentifyFile(t *testing.T) {
	l := testList(t)
	path := filepath.Join(t.TempDir(), "game.nes")
	if err := os.WriteFile(path, inesDump(), 0644); err != nil {
		t.Fatal(err)
	}

	matches, err := IdentifyFile(path, l)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 || matches[0].Info.Shortname() != "game" {
		t.Fatalf("unexpected matches %v", names(matches))
	}

	if _, err := IdentifyFile(filepath.Join(t.TempDir(), "missing.nes"), l); err == nil {
		t.Fatalf("IdentifyFile() of a missing file succeeded")
	}
}
