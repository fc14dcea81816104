package main

import (
	"fmt"
	"os"

	"github.com/go-faster/errors"
)

const version = "0.3.0"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errListErrors) || errors.Is(err, errNotFound) {
		os.Exit(2)
	}
	checkf(err, "swlist")
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": "+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
