//go:build windows

package main

import (
	"winpeek/procinfo"
	"winpeek/procinfo_windows"
)

func newSource() procinfo.Source {
	return procinfo_windows.NewQuerier()
}
