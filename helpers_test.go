package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

/* general testing helpers */

func tcheck(tb testing.TB, err error) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s\n", err)
}

func tcheckf(tb testing.TB, err error, format string, args ...any) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s: %s\n", fmt.Sprintf(format, args...), err)
}

// writeFile writes content to name in dir and returns its path.
func writeFile(tb testing.TB, dir, name string, content []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	tcheckf(tb, os.WriteFile(path, content, 0o644), "writing %s", name)
	return path
}

// testEnv is a hash directory and a configuration file pointing to it.
type testEnv struct {
	hash string
	cfg  string
}

func newTestEnv(tb testing.TB, lists map[string]string) testEnv {
	tb.Helper()

	dir := tb.TempDir()
	hash := filepath.Join(dir, "hash")
	tcheck(tb, os.Mkdir(hash, 0o755))
	for name, content := range lists {
		writeFile(tb, hash, name+".xml", []byte(content))
	}

	cfg := fmt.Sprintf(`
[general]
hash_path = [%q]

[[list]]
name = "famicom_flop"
type = "compatible"
filter = "NTSC"
`, hash)
	return testEnv{
		hash: hash,
		cfg:  writeFile(tb, dir, "config.toml", []byte(cfg)),
	}
}

// run runs the swlist command line with the test configuration.
func (te testEnv) run(args ...string) (string, error) {
	var buf bytes.Buffer
	err := run(append([]string{"--config", te.cfg}, args...), &buf)
	return buf.String(), err
}
