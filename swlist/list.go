package swlist

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/text/cases"

	"softlist/log"
	"softlist/strpool"
)

// Config holds the configuration of a List.
type Config struct {
	Name   string   // list name, used to locate its source
	Type   ListType // original or compatible system
	Filter string   // comma-separated systems, matched against part compatibility features

	// Interfaces is the registry part interfaces are checked against. nil
	// disables the check.
	Interfaces *Interfaces
}

// A List is a software list. Its graph is parsed from its source the first
// time it's needed, and cached until Release is called.
//
// Once loaded, a List can be queried from multiple goroutines. It has no
// internal locking though: EnsureLoaded, the first query and Release must not
// run concurrently with other calls.
type List struct {
	cfg Config
	src Source

	state       LoadState
	description string
	infos       []*Info
	byName      map[string]*Info // by case-folded shortname
	errs        []error
	pool        *strpool.Pool
}

// New returns a list, which is not loaded until its first query.
func New(cfg Config, src Source) *List {
	return &List{
		cfg:  cfg,
		src:  src,
		pool: strpool.New(),
	}
}

func (l *List) Name() string   { return l.cfg.Name }
func (l *List) Type() ListType { return l.cfg.Type }
func (l *List) Filter() string { return l.cfg.Filter }

// State returns the state of l without loading it.
func (l *List) State() LoadState { return l.state }

// EnsureLoaded parses the list source if l is not loaded yet, then returns
// the resulting state. Parsing happens at most once until Release.
func (l *List) EnsureLoaded() LoadState {
	if l.state == Unloaded {
		l.load()
	}
	return l.state
}

func (l *List) load() {
	start := time.Now()
	p := newParser(l)

	if err := l.parseSource(p); err != nil {
		p.errs = append(p.errs, &Error{
			Kind: SourceUnavailable,
			List: l.cfg.Name,
			Msg:  err.Error(),
			Err:  err,
		})
	}

	l.description = p.description
	l.infos = p.infos
	l.byName = p.byName
	l.errs = append(p.errs, l.check()...)

	l.state = Loaded
	if len(l.errs) != 0 {
		l.state = LoadedWithErrors
	}

	entry := log.ModSwList.WithFields(log.Fields{
		"list":  l.cfg.Name,
		"items": len(l.infos),
		"took":  time.Since(start),
	})
	entry.Debugf("software list parsed")
	for _, err := range l.errs {
		log.ModSwList.Debug(err)
	}
	if l.state == LoadedWithErrors {
		entry.WithField("errors", len(l.errs)).Warnf("software list %s has errors", l.cfg.Name)
	}
}

// parseSource opens the list source and parses it. The source is closed on
// every path.
func (l *List) parseSource(p *parser) error {
	if l.src == nil {
		return errors.Errorf("no source to read %s from", l.cfg.Name)
	}

	rc, err := l.src.Open(l.cfg.Name)
	if err != nil {
		return errors.Wrap(err, "unable to open software list")
	}
	defer rc.Close()

	p.parse(rc)
	return nil
}

// Release drops the parsed graph and the error log. The next query parses the
// source again.
func (l *List) Release() {
	l.state = Unloaded
	l.description = ""
	l.infos = nil
	l.byName = nil
	l.errs = nil
	l.pool = strpool.New()
}

// Description returns the list description, as declared by its source.
func (l *List) Description() string {
	l.EnsureLoaded()
	return l.description
}

// Valid reports whether the list contains at least one item.
func (l *List) Valid() bool {
	l.EnsureLoaded()
	return len(l.infos) > 0
}

// HasErrors reports whether errors were found while loading l.
func (l *List) HasErrors() bool {
	return l.EnsureLoaded() == LoadedWithErrors
}

// Errors returns the error log. Entries are *Error values.
func (l *List) Errors() []error {
	l.EnsureLoaded()
	return l.errs
}

// ErrorsString returns the error log, one error per line.
func (l *List) ErrorsString() string {
	l.EnsureLoaded()

	var sb strings.Builder
	for _, err := range l.errs {
		sb.WriteString(err.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Infos returns the items of l, in source order. The returned slice must not
// be modified.
func (l *List) Infos() []*Info {
	l.EnsureLoaded()
	return l.infos
}

// AddString interns s in the string pool of l. The returned string can be
// held as long as l.
func (l *List) AddString(s string) string {
	return l.pool.Add(s)
}

// Clones returns the items declaring info as their parent.
func (l *List) Clones(info *Info) []*Info {
	if info == nil {
		return nil
	}
	l.EnsureLoaded()

	var clones []*Info
	for _, other := range l.infos {
		if other.parentname != "" && fold(other.parentname) == fold(info.shortname) {
			clones = append(clones, other)
		}
	}
	return clones
}

func (l *List) lookup(shortname string) *Info {
	return l.byName[fold(shortname)]
}

// contains reports whether info is an item of the current graph of l.
func (l *List) contains(info *Info) bool {
	return info != nil && info.list == l && info.index < len(l.infos) && l.infos[info.index] == info
}

func fold(s string) string {
	return cases.Fold().String(s)
}
