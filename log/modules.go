package log

import (
	"fmt"
	"strings"

	"gopkg.in/Sirupsen/logrus.v0"
)

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF
)

// Predefine the modules used throughout the catalog engine. Packages can
// still define their own through NewModule().
const (
	ModSwList Module = iota + 1
	ModConfig
	ModIdent
	ModCLI

	endStandardMods
)

var modCount = endStandardMods

var modDebugMask ModuleMask = 0

var modNames = []string{
	"<error>", "swlist", "config", "ident", "cli",
}

func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if idx != 0 && s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

// ModuleNames returns the names of all registered modules.
func ModuleNames() []string {
	return append([]string(nil), modNames[1:]...)
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
	if modDebugMask != 0 {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) String() string {
	if int(mod) < len(modNames) {
		return modNames[mod]
	}
	return modNames[0]
}

func (mod Module) Enabled(level Level) bool {
	if disabled {
		return false
	}
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

// Implement the whole logging interface directly on modules

func (mod Module) WithFields(fields Fields) Entry {
	return Entry{mod: mod}.WithFields(fields)
}

func (mod Module) WithDelayedFields(getfields func() Fields) Entry {
	return Entry{mod: mod}.WithDelayedFields(getfields)
}

func (mod Module) WithField(key string, value any) Entry {
	return Entry{mod: mod}.WithField(key, value)
}

func (mod Module) WithError(err error) Entry {
	return Entry{mod: mod}.WithError(err)
}

func (mod Module) Debug(args ...any) { Entry{mod: mod}.Debug(args...) }
func (mod Module) Info(args ...any)  { Entry{mod: mod}.Info(args...) }
func (mod Module) Warn(args ...any)  { Entry{mod: mod}.Warn(args...) }
func (mod Module) Error(args ...any) { Entry{mod: mod}.Error(args...) }

// printf-like family

func (mod Module) Debugf(format string, args ...any) {
	Entry{mod: mod}.Debugf(format, args...)
}

func (mod Module) Infof(format string, args ...any) {
	Entry{mod: mod}.Infof(format, args...)
}

func (mod Module) Warnf(format string, args ...any) {
	Entry{mod: mod}.Warnf(format, args...)
}

func (mod Module) Errorf(format string, args ...any) {
	Entry{mod: mod}.Errorf(format, args...)
}

func (mod Module) Fatalf(format string, args ...any) {
	Entry{mod: mod}.Fatalf(format, args...)
}

// ParseModules decodes a comma-separated list of module names into a module
// mask. "all" stands for every module.
func ParseModules(names string) (ModuleMask, error) {
	var mask ModuleMask
	for _, name := range strings.Split(names, ",") {
		switch name = strings.TrimSpace(name); name {
		case "":
		case "all":
			mask |= ModuleMaskAll
		default:
			mod, ok := ModuleByName(name)
			if !ok {
				return 0, fmt.Errorf("unknown log module %s", name)
			}
			mask |= mod.Mask()
		}
	}
	return mask, nil
}
