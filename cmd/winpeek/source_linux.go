//go:build linux

package main

import (
	"winpeek/procinfo"
	"winpeek/procinfo_linux"
)

func newSource() procinfo.Source {
	return procinfo_linux.NewQuerier()
}
