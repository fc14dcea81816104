package swlist

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// Source gives access to list sources. Open returns the content of the list
// with the given name, the caller closes it.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(name string) (io.ReadCloser, error)

func (f SourceFunc) Open(name string) (io.ReadCloser, error) { return f(name) }

// SearchPath is a Source looking for <name>.xml in each of its directories,
// in order.
type SearchPath []string

func (sp SearchPath) Open(name string) (io.ReadCloser, error) {
	if len(sp) == 0 {
		return nil, errors.Errorf("empty search path, can't look for %s", name)
	}

	var tried []string
	for _, dir := range sp {
		path := filepath.Join(dir, name+".xml")
		f, err := os.Open(path)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		tried = append(tried, path)
	}
	return nil, errors.Errorf("%s not found (tried %s)", name, strings.Join(tried, ", "))
}

// MapSource is an in-memory Source mapping list names to their content.
type MapSource map[string]string

func (ms MapSource) Open(name string) (io.ReadCloser, error) {
	content, ok := ms[name]
	if !ok {
		return nil, errors.Wrap(os.ErrNotExist, name)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}
