package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"golang.org/x/sync/errgroup"

	"softlist/log"
	"softlist/romident"
	"softlist/swlist"
)

var (
	errListErrors = errors.New("software lists have errors")
	errNotFound   = errors.New("no matching software")
)

const approxMatches = 10

func (c *Infos) Run(env *env) error {
	l := env.cfg.NewList(c.List)
	st := summarize(l)

	if env.json {
		return writeJSON(env.out, func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				encodeListHeader(e, l)
				e.Field("items", func(e *jx.Encoder) { e.Int(st.items) })
				e.Field("clones", func(e *jx.Encoder) { e.Int(st.clones) })
				e.Field("parts", func(e *jx.Encoder) { e.Int(st.parts) })
				e.Field("roms", func(e *jx.Encoder) { e.Int(st.roms) })
				e.Field("supported", func(e *jx.Encoder) {
					e.Obj(func(e *jx.Encoder) {
						for _, s := range []swlist.Supported{swlist.SupportedYes, swlist.SupportedPartial, swlist.SupportedNo} {
							e.Field(s.String(), func(e *jx.Encoder) { e.Int(st.supported[s]) })
						}
					})
				})
				encodeErrors(e, l)
			})
		})
	}

	fmt.Fprintf(env.out, "Name:        %s\n", l.Name())
	fmt.Fprintf(env.out, "Description: %s\n", l.Description())
	fmt.Fprintf(env.out, "Type:        %s\n", l.Type())
	fmt.Fprintf(env.out, "Filter:      %s\n", l.Filter())
	fmt.Fprintf(env.out, "State:       %s\n", l.State())
	fmt.Fprintf(env.out, "Items:       %d (%d clones)\n", st.items, st.clones)
	fmt.Fprintf(env.out, "Parts:       %d\n", st.parts)
	fmt.Fprintf(env.out, "ROMs:        %d\n", st.roms)
	fmt.Fprintf(env.out, "Supported:   %d yes, %d partial, %d no\n",
		st.supported[swlist.SupportedYes], st.supported[swlist.SupportedPartial], st.supported[swlist.SupportedNo])
	fmt.Fprintf(env.out, "Errors:      %d\n", len(l.Errors()))
	if l.HasErrors() {
		fmt.Fprintf(env.out, "\n%s", l.ErrorsString())
	}
	return nil
}

type stats struct {
	items, clones, parts, roms int
	supported                  map[swlist.Supported]int
}

func summarize(l *swlist.List) stats {
	st := stats{supported: make(map[swlist.Supported]int)}
	for _, info := range l.Infos() {
		st.items++
		if info.Parentname() != "" {
			st.clones++
		}
		st.supported[info.Supported()]++
		for _, part := range info.Parts() {
			st.parts++
			st.roms += part.ROMCount()
		}
	}
	return st
}

func (c *Find) Run(env *env) error {
	l := env.cfg.NewList(c.List)

	var found []*swlist.Info
	for info := l.Find(c.Pattern, nil); info != nil; info = l.Find(c.Pattern, info) {
		found = append(found, info)
	}

	if len(found) == 0 {
		if !env.json {
			fmt.Fprintf(env.out, "%s: no software matching %q\n", l.Name(), c.Pattern)
			displayMatches(env.out, c.Pattern, l.FindApproxMatches(c.Pattern, approxMatches, ""))
		} else if err := writeJSON(env.out, func(e *jx.Encoder) { encodeInfos(e, nil) }); err != nil {
			return err
		}
		return errNotFound
	}

	if env.json {
		return writeJSON(env.out, func(e *jx.Encoder) { encodeInfos(e, found) })
	}
	for _, info := range found {
		fmt.Fprintf(env.out, "%-18s%s\n", info.Shortname(), info.Longname())
	}
	return nil
}

func (c *Matches) Run(env *env) error {
	l := env.cfg.NewList(c.List)
	matches := l.FindApproxMatches(c.Name, c.Limit, c.Interface)

	if env.json {
		return writeJSON(env.out, func(e *jx.Encoder) { encodeInfos(e, matches) })
	}
	displayMatches(env.out, c.Name, matches)
	return nil
}

func displayMatches(w io.Writer, name string, matches []*swlist.Info) {
	if len(matches) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%q approximately matches the following\n", name)
	fmt.Fprintf(w, "supported software items (best match first):\n\n")
	for _, info := range matches {
		fmt.Fprintf(w, "%-18s%s\n", info.Shortname(), info.Longname())
	}
}

// loadLists loads the named lists concurrently, one goroutine per list.
func loadLists(env *env, names []string) []*swlist.List {
	lists := make([]*swlist.List, len(names))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		g.Go(func() error {
			l := env.cfg.NewList(name)
			l.EnsureLoaded()
			lists[i] = l
			return nil
		})
	}
	g.Wait()
	return lists
}

func (c *Verify) Run(env *env) error {
	lists := loadLists(env, c.Lists)

	nerrs := 0
	for _, l := range lists {
		nerrs += len(l.Errors())
	}
	log.ModCLI.WithFields(log.Fields{"lists": len(lists), "errors": nerrs}).Debugf("verification done")

	if env.json {
		err := writeJSON(env.out, func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range lists {
					e.Obj(func(e *jx.Encoder) {
						encodeListHeader(e, l)
						e.Field("items", func(e *jx.Encoder) { e.Int(len(l.Infos())) })
						encodeErrors(e, l)
					})
				}
			})
		})
		if err != nil {
			return err
		}
	} else {
		for _, l := range lists {
			fmt.Fprintf(env.out, "%s: %d items, %d errors\n", l.Name(), len(l.Infos()), len(l.Errors()))
			fmt.Fprint(env.out, l.ErrorsString())
		}
	}

	if nerrs != 0 {
		return errListErrors
	}
	return nil
}

func (c *Ident) Run(env *env) error {
	lists := loadLists(env, c.Lists)

	type result struct {
		file    string
		matches []romident.Match
	}
	var results []result
	for _, path := range c.Files {
		matches, err := romident.IdentifyFile(path, lists...)
		if err != nil {
			return err
		}
		results = append(results, result{path, matches})
	}

	if env.json {
		return writeJSON(env.out, func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, r := range results {
					e.Obj(func(e *jx.Encoder) {
						e.Field("file", func(e *jx.Encoder) { e.Str(r.file) })
						e.Field("matches", func(e *jx.Encoder) {
							e.Arr(func(e *jx.Encoder) {
								for _, m := range r.matches {
									encodeMatch(e, m)
								}
							})
						})
					})
				}
			})
		})
	}

	for _, r := range results {
		fmt.Fprintf(env.out, "%s:\n", r.file)
		if len(r.matches) == 0 {
			fmt.Fprintf(env.out, "  no match\n")
		}
		for _, m := range r.matches {
			fmt.Fprintf(env.out, "  %s\n", m)
		}
	}
	return nil
}

func (c *Version) Run(env *env) error {
	fmt.Fprintf(env.out, "swlist %s\n", version)
	return nil
}
