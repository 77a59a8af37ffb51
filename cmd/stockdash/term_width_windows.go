//go:build windows

package main

import (
	"os"
	"strconv"
)

// terminalSize reports the $COLUMNS width and never a terminal.
func terminalSize(f *os.File) (int, bool) {
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n, false
		}
	}
	return 0, false
}
