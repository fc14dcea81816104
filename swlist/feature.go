package swlist

import "strings"

// Feature is a name/value metadata pair attached to a software item or part.
type Feature struct {
	Name  string
	Value string
}

func findFeature(features []Feature, name string) (string, bool) {
	for _, f := range features {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// tokens splits a comma-separated list, trimming spaces and dropping empty
// items.
func tokens(s string) []string {
	var toks []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			toks = append(toks, tok)
		}
	}
	return toks
}

// sharesToken reports whether the comma-separated lists a and b have at least
// one item in common.
func sharesToken(a, b string) bool {
	bt := tokens(b)
	for _, ta := range tokens(a) {
		for _, tb := range bt {
			if ta == tb {
				return true
			}
		}
	}
	return false
}
