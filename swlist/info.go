package swlist

// Info is a software item: one title of a list, possibly a clone of another
// item of the same list.
type Info struct {
	list       *List
	index      int // position in list.infos
	line       int
	shortname  string
	longname   string
	parentname string
	year       string
	publisher  string
	supported  Supported
	otherInfo  []Feature
	shared     []Feature
	parts      []*Part
}

// List returns the list the item belongs to.
func (info *Info) List() *List { return info.list }

// Shortname is the unique key of the item in its list.
func (info *Info) Shortname() string { return info.shortname }

// Longname is the human readable description of the item.
func (info *Info) Longname() string { return info.longname }

// Parentname is the shortname of the item info is a clone of, or empty.
func (info *Info) Parentname() string { return info.parentname }

func (info *Info) Year() string { return info.year }

func (info *Info) Publisher() string { return info.publisher }

func (info *Info) Supported() Supported { return info.supported }

// OtherInfo returns descriptive metadata (serial, developer, ...). It isn't
// inherited by parts.
func (info *Info) OtherInfo() []Feature { return info.otherInfo }

// SharedFeatures returns the features inherited by every part of info.
func (info *Info) SharedFeatures() []Feature { return info.shared }

func (info *Info) Parts() []*Part { return info.parts }

// Parent returns the parent item, nil if info isn't a clone or if the parent
// can't be found.
func (info *Info) Parent() *Info {
	if info.parentname == "" || info.list == nil {
		return nil
	}
	return info.list.lookup(info.parentname)
}

// FirstPart returns the first part of info, or nil.
func (info *Info) FirstPart() *Part {
	if len(info.parts) == 0 {
		return nil
	}
	return info.parts[0]
}

// FindPart looks for a part by name and, if iface is not empty, checks it
// matches the interface. With no name, it returns the first part matching
// iface, or the first part if iface is empty too.
func (info *Info) FindPart(name, iface string) *Part {
	if name == "" && iface == "" {
		return info.FirstPart()
	}

	for _, part := range info.parts {
		if name != "" {
			if name == part.name && (iface == "" || part.MatchesInterface(iface)) {
				return part
			}
		} else if part.MatchesInterface(iface) {
			return part
		}
	}
	return nil
}

// HasMultipleParts reports whether more than one part of info matches iface,
// in which case the user needs to pick one.
func (info *Info) HasMultipleParts(iface string) bool {
	count := 0
	for _, part := range info.parts {
		if part.MatchesInterface(iface) {
			if count++; count > 1 {
				return true
			}
		}
	}
	return false
}
