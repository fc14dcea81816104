package swlist

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Find returns the first item whose shortname matches name, case-insensitive.
// name can contain * and ? wildcards. If prev is not nil, the search starts
// after it, so that all matches can be enumerated:
//
//	for info := l.Find("smb*", nil); info != nil; info = l.Find("smb*", info) {
//		...
//	}
//
// Without wildcards there's at most one match since shortnames are unique.
func (l *List) Find(name string, prev *Info) *Info {
	if name == "" {
		return nil
	}
	l.EnsureLoaded()

	wild := strings.ContainsAny(name, "*?")
	if !wild {
		info := l.lookup(name)
		if info == nil || prev == nil {
			return info
		}
		if l.contains(prev) && info.index > prev.index {
			return info
		}
		return nil
	}

	start := 0
	if prev != nil {
		if !l.contains(prev) {
			return nil
		}
		start = prev.index + 1
	}

	pattern := fold(name)
	for _, info := range l.infos[start:] {
		if wildMatch(pattern, fold(info.shortname)) {
			return info
		}
	}
	return nil
}

// wildMatch matches s against pattern, where * matches any sequence of
// runes, ? any single rune.
func wildMatch(pattern, s string) bool {
	return wildMatchRunes([]rune(pattern), []rune(s))
}

func wildMatchRunes(pattern, s []rune) bool {
	star, sstar := -1, 0
	pi, si := 0, 0
	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == s[si]):
			pi++
			si++
		case pi < len(pattern) && pattern[pi] == '*':
			star, sstar = pi, si
			pi++
		case star >= 0:
			pi = star + 1
			sstar++
			si = sstar
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

type approxMatch struct {
	info    *Info
	penalty int
}

// FindApproxMatches returns at most limit items whose shortname or longname
// approximately match name, best matches first. If iface is not empty, only
// items having a part matching iface are considered. Parts explicitly
// declared incompatible with l are left out.
//
// Items are ranked by penalty, the smallest edit distance between name and
// their shortname or longname, case-insensitive. A longname containing name
// has a penalty of 1. Ties are broken by shortest, then lexicographically
// smallest, shortname.
func (l *List) FindApproxMatches(name string, limit int, iface string) []*Info {
	if name == "" || limit <= 0 {
		return nil
	}
	l.EnsureLoaded()

	query := fold(name)
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	matches := make([]approxMatch, 0, len(l.infos))
	for _, info := range l.infos {
		part := info.FindPart("", iface)
		if part == nil || part.IsCompatible(l) == Incompatible {
			continue
		}

		pen := distance(dmp, query, fold(info.shortname))
		if info.longname != "" {
			long := fold(info.longname)
			lpen := distance(dmp, query, long)
			if lpen > 1 && strings.Contains(long, query) {
				lpen = 1
			}
			pen = min(pen, lpen)
		}
		matches = append(matches, approxMatch{info: info, penalty: pen})
	}

	slices.SortStableFunc(matches, func(a, b approxMatch) int {
		if a.penalty != b.penalty {
			return a.penalty - b.penalty
		}
		if la, lb := len(a.info.shortname), len(b.info.shortname); la != lb {
			return la - lb
		}
		return strings.Compare(a.info.shortname, b.info.shortname)
	})

	n := min(limit, len(matches))
	infos := make([]*Info, n)
	for i := range infos {
		infos[i] = matches[i].info
	}
	return infos
}

func distance(dmp *diffmatchpatch.DiffMatchPatch, a, b string) int {
	if a == b {
		return 0
	}
	if a == "" || b == "" {
		return max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	}
	return dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
}
