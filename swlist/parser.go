package swlist

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/text/cases"

	"softlist/strpool"
)

// parser builds the graph of a list by descending the source hierarchy:
//
//	softwarelist > software > part > feature|dataarea > rom
//
// Semantic errors are logged and parsing goes on. Only XML syntax errors stop
// it, keeping the items parsed so far.
type parser struct {
	list   *List
	pool   *strpool.Pool
	folder cases.Caser
	dec    *xml.Decoder

	// position of the last token read
	line, col int

	description string
	infos       []*Info
	byName      map[string]*Info
	errs        []error
}

func newParser(l *List) *parser {
	return &parser{
		list:   l,
		pool:   l.pool,
		folder: cases.Fold(),
		byName: make(map[string]*Info),
	}
}

func (p *parser) parse(r io.Reader) {
	p.dec = xml.NewDecoder(r)

	for {
		tok, err := p.token()
		if err == io.EOF {
			// empty source, not an error in itself.
			return
		}
		if err != nil {
			p.syntaxError(err)
			return
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "softwarelist" {
			p.errorf(ParseError, "expected softwarelist tag, found %s", se.Name.Local)
			return
		}
		if err := p.parseList(se); err != nil {
			p.syntaxError(err)
		}
		return
	}
}

func (p *parser) token() (xml.Token, error) {
	tok, err := p.dec.Token()
	p.line, p.col = p.dec.InputPos()
	return tok, err
}

func (p *parser) errorf(kind ErrorKind, format string, args ...any) {
	p.errs = append(p.errs, &Error{
		Kind:   kind,
		List:   p.list.cfg.Name,
		Line:   p.line,
		Column: p.col,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (p *parser) syntaxError(err error) {
	p.errs = append(p.errs, &Error{
		Kind:   ParseError,
		List:   p.list.cfg.Name,
		Line:   p.line,
		Column: p.col,
		Msg:    "malformed source: " + err.Error(),
		Err:    err,
	})
}

// unknownTag logs an unexpected tag and skips its content.
func (p *parser) unknownTag(se xml.StartElement, parent string) error {
	p.errorf(ParseError, "unknown tag %s in %s", se.Name.Local, parent)
	return p.dec.Skip()
}

// children calls fn for each child element of the current element, until
// its end element. fn must consume the child, up to its end element.
func (p *parser) children(fn func(se xml.StartElement) error) error {
	for {
		tok, err := p.token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if err := fn(tok); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// text returns the trimmed text content of the current element.
func (p *parser) text() (string, error) {
	var sb strings.Builder
	for {
		tok, err := p.token()
		if err != nil {
			return "", err
		}
		switch tok := tok.(type) {
		case xml.CharData:
			sb.Write(tok)
		case xml.StartElement:
			if err := p.unknownTag(tok, "text"); err != nil {
				return "", err
			}
		case xml.EndElement:
			return p.pool.Add(strings.TrimSpace(sb.String())), nil
		}
	}
}

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// required returns the interned values of the given attributes. If one is
// missing, an error is logged and ok is false.
func (p *parser) required(se xml.StartElement, names ...string) (vals []string, ok bool) {
	vals = make([]string, len(names))
	for i, name := range names {
		v, found := attr(se, name)
		if !found || v == "" {
			p.errorf(ParseError, "%s tag is missing required attribute %q, skipped", se.Name.Local, name)
			return nil, false
		}
		vals[i] = p.pool.Add(v)
	}
	return vals, true
}

func (p *parser) optional(se xml.StartElement, name string) string {
	v, _ := attr(se, name)
	return p.pool.Add(v)
}

func (p *parser) parseList(se xml.StartElement) error {
	if _, ok := attr(se, "name"); !ok {
		p.errorf(ParseError, "softwarelist tag is missing attribute \"name\"")
	}
	p.description = p.optional(se, "description")

	return p.children(func(se xml.StartElement) error {
		if se.Name.Local != "software" {
			return p.unknownTag(se, "softwarelist")
		}
		return p.parseSoftware(se)
	})
}

func (p *parser) parseSoftware(se xml.StartElement) error {
	vals, ok := p.required(se, "name")
	if !ok {
		return p.dec.Skip()
	}
	name := vals[0]

	key := p.folder.String(name)
	if first, dup := p.byName[key]; dup {
		p.errorf(DuplicateKeyError, "duplicate software name %s (first declared line %d), skipped", name, first.line)
		return p.dec.Skip()
	}

	supported, ok := parseSupported(p.optional(se, "supported"))
	if !ok {
		p.errorf(ParseError, "software %s: invalid supported value %q, defaulting to yes", name, p.optional(se, "supported"))
	}

	info := &Info{
		list:       p.list,
		line:       p.line,
		shortname:  name,
		parentname: p.optional(se, "cloneof"),
		supported:  supported,
	}

	err := p.children(func(se xml.StartElement) error {
		var err error
		switch se.Name.Local {
		case "description":
			info.longname, err = p.text()
		case "year":
			info.year, err = p.text()
		case "publisher":
			info.publisher, err = p.text()
		case "notes":
			err = p.dec.Skip()
		case "info":
			if f, ok := p.feature(se); ok {
				info.otherInfo = append(info.otherInfo, f)
			}
			err = p.dec.Skip()
		case "sharedfeat":
			if f, ok := p.feature(se); ok {
				p.addShared(info, f)
			}
			err = p.dec.Skip()
		case "part":
			err = p.parsePart(info, se)
		default:
			err = p.unknownTag(se, "software")
		}
		return err
	})
	if err != nil {
		return err
	}

	info.index = len(p.infos)
	p.infos = append(p.infos, info)
	p.byName[key] = info
	return nil
}

func (p *parser) feature(se xml.StartElement) (Feature, bool) {
	vals, ok := p.required(se, "name")
	if !ok {
		return Feature{}, false
	}
	return Feature{Name: vals[0], Value: p.optional(se, "value")}, true
}

// addShared adds a shared feature to info. Parts declared before it get it
// too, at the end of their inherited features.
func (p *parser) addShared(info *Info, f Feature) {
	info.shared = append(info.shared, f)
	if len(info.parts) == 0 {
		return
	}

	p.errorf(ParseError, "software %s: sharedfeat %s declared after a part", info.shortname, f.Name)
	for _, part := range info.parts {
		part.features = append(part.features, Feature{})
		copy(part.features[part.nshared+1:], part.features[part.nshared:])
		part.features[part.nshared] = f
		part.nshared++
	}
}

func (p *parser) parsePart(info *Info, se xml.StartElement) error {
	vals, ok := p.required(se, "name", "interface")
	if !ok {
		return p.dec.Skip()
	}

	part := &Part{
		info:    info,
		name:    vals[0],
		iface:   vals[1],
		nshared: len(info.shared),
	}

	// inherit shared features once and for all.
	part.features = make([]Feature, len(info.shared))
	copy(part.features, info.shared)

	if !p.list.cfg.Interfaces.Known(part.iface) {
		p.errorf(ReferenceError, "software %s: part %s has unknown interface %s", info.shortname, part.name, part.iface)
	}

	err := p.children(func(se xml.StartElement) error {
		switch se.Name.Local {
		case "feature":
			if f, ok := p.feature(se); ok {
				part.features = append(part.features, f)
			}
			return p.dec.Skip()
		case "dataarea":
			return p.parseDataArea(info, part, se)
		case "diskarea":
			return p.parseDiskArea(info, part, se)
		}
		return p.unknownTag(se, "part")
	})
	if err != nil {
		return err
	}

	info.parts = append(info.parts, part)
	return nil
}

func (p *parser) parseDataArea(info *Info, part *Part, se xml.StartElement) error {
	vals, ok := p.required(se, "name", "size")
	if !ok {
		return p.dec.Skip()
	}

	area := DataArea{
		Name:       vals[0],
		Width:      8,
		Endianness: "little",
	}

	var err error
	if area.Size, err = parseNumber(vals[1]); err != nil {
		p.errorf(ParseError, "software %s: dataarea %s has invalid size %q, skipped", info.shortname, area.Name, vals[1])
		return p.dec.Skip()
	}
	if w := p.optional(se, "width"); w != "" {
		width, err := strconv.ParseUint(w, 10, 8)
		if err != nil || (width != 8 && width != 16 && width != 32 && width != 64) {
			p.errorf(ParseError, "software %s: dataarea %s has invalid width %q", info.shortname, area.Name, w)
		} else {
			area.Width = uint8(width)
		}
	}
	if e := p.optional(se, "endianness"); e != "" {
		if e != "little" && e != "big" {
			p.errorf(ParseError, "software %s: dataarea %s has invalid endianness %q", info.shortname, area.Name, e)
		} else {
			area.Endianness = e
		}
	}

	part.dataAreas = append(part.dataAreas, area)

	return p.children(func(se xml.StartElement) error {
		if se.Name.Local != "rom" {
			return p.unknownTag(se, "dataarea")
		}
		p.parseROM(info, area, part, se)
		return p.dec.Skip()
	})
}

func (p *parser) parseROM(info *Info, area DataArea, part *Part, se xml.StartElement) {
	vals, ok := p.required(se, "size")
	if !ok {
		return
	}

	rom := ROMEntry{
		Region:   area.Name,
		Name:     p.optional(se, "name"),
		Value:    p.optional(se, "value"),
		LoadFlag: p.optional(se, "loadflag"),
		Status:   p.status(se),
		CRC:      p.pool.Add(strings.ToLower(p.optional(se, "crc"))),
		SHA1:     p.pool.Add(strings.ToLower(p.optional(se, "sha1"))),
	}

	var err error
	if rom.Length, err = parseNumber(vals[0]); err != nil {
		p.errorf(ParseError, "software %s: rom %s has invalid size %q, skipped", info.shortname, rom.Name, vals[0])
		return
	}
	if off := p.optional(se, "offset"); off != "" {
		if rom.Offset, err = parseNumber(off); err != nil {
			p.errorf(ParseError, "software %s: rom %s has invalid offset %q, skipped", info.shortname, rom.Name, off)
			return
		}
	}

	part.roms = append(part.roms, rom)
}

func (p *parser) parseDiskArea(info *Info, part *Part, se xml.StartElement) error {
	vals, ok := p.required(se, "name")
	if !ok {
		return p.dec.Skip()
	}

	area := DataArea{Name: vals[0], Disk: true}
	part.dataAreas = append(part.dataAreas, area)

	return p.children(func(se xml.StartElement) error {
		if se.Name.Local != "disk" {
			return p.unknownTag(se, "diskarea")
		}
		if vals, ok := p.required(se, "name"); ok {
			part.roms = append(part.roms, ROMEntry{
				Region:    area.Name,
				Name:      vals[0],
				SHA1:      p.pool.Add(strings.ToLower(p.optional(se, "sha1"))),
				Status:    p.status(se),
				Writeable: p.optional(se, "writeable") == "yes",
				Disk:      true,
			})
		}
		return p.dec.Skip()
	})
}

func (p *parser) status(se xml.StartElement) string {
	switch s := p.optional(se, "status"); s {
	case "":
		return "good"
	case "good", "baddump", "nodump":
		return s
	default:
		p.errorf(ParseError, "invalid status %q", s)
		return "good"
	}
}

// parseNumber parses a decimal or 0x prefixed hexadecimal number.
func parseNumber(s string) (uint64, error) {
	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		return strconv.ParseUint(hex, 16, 64)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid number")
	}
	return n, nil
}
