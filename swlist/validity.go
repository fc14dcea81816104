package swlist

import (
	"fmt"
)

const maxShortnameLen = 16

// Check runs the validity checks on the current graph of l and returns its
// findings. They're the same checks run when l is loaded, whose findings are
// part of the list error log.
func (l *List) Check() []error {
	l.EnsureLoaded()
	return l.check()
}

func (l *List) check() []error {
	c := checker{list: l}

	names := make(map[string]*Info, len(l.infos))
	for _, info := range l.infos {
		key := fold(info.shortname)
		if first, ok := names[key]; ok {
			c.errorf(DuplicateKeyError, info, "duplicate software name %s (first declared line %d)", info.shortname, first.line)
			continue
		}
		names[key] = info
	}

	for _, info := range l.infos {
		c.checkName(info)
		c.checkParent(info, names)
		c.checkParts(info)
	}
	return c.errs
}

type checker struct {
	list *List
	errs []error
}

func (c *checker) errorf(kind ErrorKind, info *Info, format string, args ...any) {
	c.errs = append(c.errs, &Error{
		Kind: kind,
		List: c.list.cfg.Name,
		Line: info.line,
		Msg:  fmt.Sprintf(format, args...),
	})
}

func (c *checker) checkName(info *Info) {
	if len(info.shortname) > maxShortnameLen {
		c.errorf(ParseError, info, "software %s has a name longer than %d characters", info.shortname, maxShortnameLen)
	}
	for _, r := range info.shortname {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			c.errorf(ParseError, info, "software %s has a name with characters other than [a-z0-9_]", info.shortname)
			break
		}
	}
	if info.longname == "" {
		c.errorf(ParseError, info, "software %s has no description", info.shortname)
	}
}

func (c *checker) checkParent(info *Info, names map[string]*Info) {
	if info.parentname == "" {
		return
	}

	parent, ok := names[fold(info.parentname)]
	switch {
	case !ok:
		c.errorf(ReferenceError, info, "software %s is a clone of unknown software %s", info.shortname, info.parentname)
	case parent == info:
		c.errorf(ReferenceError, info, "software %s is a clone of itself", info.shortname)
	case parent.parentname != "":
		c.errorf(ReferenceError, info, "software %s is a clone of %s, which is itself a clone of %s", info.shortname, parent.shortname, parent.parentname)
	}
}

func (c *checker) checkParts(info *Info) {
	if len(info.parts) == 0 {
		c.errorf(ParseError, info, "software %s has no parts", info.shortname)
		return
	}

	partNames := make(map[string]bool, len(info.parts))
	for _, part := range info.parts {
		if partNames[part.name] {
			c.errorf(DuplicateKeyError, info, "software %s has duplicate part name %s", info.shortname, part.name)
		}
		partNames[part.name] = true

		for _, rom := range part.roms {
			c.checkROM(info, part, rom)
		}
	}
}

func (c *checker) checkROM(info *Info, part *Part, rom ROMEntry) {
	area, ok := part.dataArea(rom.Region)
	if !ok {
		c.errorf(ReferenceError, info, "software %s part %s: rom %s references undeclared area %s", info.shortname, part.name, rom.Name, rom.Region)
		return
	}
	if !area.Disk && (rom.Length > area.Size || rom.Offset > area.Size-rom.Length) {
		c.errorf(ParseError, info, "software %s part %s: rom %s (offset 0x%x, size 0x%x) overflows area %s (size 0x%x)",
			info.shortname, part.name, rom.Name, rom.Offset, rom.Length, area.Name, area.Size)
	}
	if rom.CRC != "" && !isHex(rom.CRC, 8) {
		c.errorf(ParseError, info, "software %s part %s: rom %s has invalid crc %q", info.shortname, part.name, rom.Name, rom.CRC)
	}
	if rom.SHA1 != "" && !isHex(rom.SHA1, 40) {
		c.errorf(ParseError, info, "software %s part %s: rom %s has invalid sha1 %q", info.shortname, part.name, rom.Name, rom.SHA1)
	}
}

func isHex(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
