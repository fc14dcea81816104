package swlist

import (
	"fmt"
	"strings"
)

// Supported is the emulation support level of a software item.
type Supported uint8

const (
	SupportedYes Supported = iota
	SupportedPartial
	SupportedNo
)

func (s Supported) String() string {
	switch s {
	case SupportedYes:
		return "yes"
	case SupportedPartial:
		return "partial"
	case SupportedNo:
		return "no"
	}
	return fmt.Sprintf("Supported(%d)", uint8(s))
}

func parseSupported(s string) (Supported, bool) {
	switch s {
	case "", "yes":
		return SupportedYes, true
	case "partial":
		return SupportedPartial, true
	case "no":
		return SupportedNo, true
	}
	return SupportedYes, false
}

// ListType tells whether a list describes software made for the system it's
// attached to, or software of another system that happens to run on it.
type ListType uint8

const (
	OriginalSystem ListType = iota
	CompatibleSystem
)

func (t ListType) String() string {
	switch t {
	case OriginalSystem:
		return "original"
	case CompatibleSystem:
		return "compatible"
	}
	return fmt.Sprintf("ListType(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t ListType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ListType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "original", "":
		*t = OriginalSystem
	case "compatible":
		*t = CompatibleSystem
	default:
		return fmt.Errorf("invalid list type %q (want original or compatible)", text)
	}
	return nil
}

// Compatibility is the result of checking a part against a list.
type Compatibility uint8

const (
	Compatible    Compatibility = iota // runs on the list system
	Incompatible                       // explicitly declared not to run
	NotCompatible                      // no compatibility information at all
)

func (c Compatibility) String() string {
	switch c {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	case NotCompatible:
		return "not compatible"
	}
	return fmt.Sprintf("Compatibility(%d)", uint8(c))
}

// LoadState is the state of a List graph.
type LoadState uint8

const (
	Unloaded LoadState = iota
	Loaded
	LoadedWithErrors
)

func (s LoadState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case LoadedWithErrors:
		return "loaded with errors"
	}
	return fmt.Sprintf("LoadState(%d)", uint8(s))
}
