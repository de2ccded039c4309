// Package hexview renders extracted memory buffers as hex plus ASCII lines
// for terminal inspection. The offset column carries the remote address the
// buffer was copied from, so a line can be correlated with the target's own
// address space.
package hexview

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fatih/color"
)

// Options defines options for customizing the dump output
type Options struct {
	// BytesPerLine defines the number of bytes to display per line
	BytesPerLine int

	// BaseAddr is the remote address of the first byte, shown in the
	// offset column
	BaseAddr uint64

	// ShowASCII determines whether to show the ASCII representation
	ShowASCII bool

	// MaxLines is the maximum number of lines to show (0 for no limit)
	MaxLines int
}

// DefaultOptions returns the default dump options
func DefaultOptions() Options {
	return Options{
		BytesPerLine: 16,
		ShowASCII:    true,
	}
}

var (
	addrColor = color.New(color.FgCyan)
	hexColor  = color.New(color.FgGreen)
	zeroColor = color.New(color.FgHiBlack)
	textColor = color.New(color.FgWhite)
)

// Dump renders data with the given options
func Dump(data []byte, options Options) string {
	var buffer bytes.Buffer
	DumpToWriter(&buffer, data, options)
	return buffer.String()
}

// DumpToWriter writes the rendered dump of data to the specified writer
func DumpToWriter(writer io.Writer, data []byte, options Options) {
	if options.BytesPerLine <= 0 {
		options.BytesPerLine = 16
	}

	lineCount := 0
	for offset := 0; offset < len(data); offset += options.BytesPerLine {
		if options.MaxLines > 0 && lineCount >= options.MaxLines {
			fmt.Fprintf(writer, "... %d more bytes\n", len(data)-offset)
			return
		}

		end := offset + options.BytesPerLine
		if end > len(data) {
			end = len(data)
		}

		formatLine(writer, data[offset:end], options.BaseAddr+uint64(offset), options)
		lineCount++
	}
}

// formatLine formats a single line of the dump
func formatLine(writer io.Writer, data []byte, addr uint64, options Options) {
	fmt.Fprint(writer, addrColor.Sprintf("%012x", addr), "  ")

	half := options.BytesPerLine / 2
	useSplit := options.BytesPerLine >= 8 && len(data) > half

	for i, b := range data {
		if i > 0 {
			if useSplit && i == half {
				fmt.Fprint(writer, " | ")
			} else {
				fmt.Fprint(writer, " ")
			}
		}
		if b == 0 {
			fmt.Fprint(writer, zeroColor.Sprintf("%02x", b))
		} else {
			fmt.Fprint(writer, hexColor.Sprintf("%02x", b))
		}
	}

	// Pad ragged lines so the ASCII column stays aligned. A full line
	// prints two hex digits per byte, single spaces between them, and two
	// extra characters for the mid-line divider.
	if options.ShowASCII {
		fullWidth := printedWidth(options.BytesPerLine, options.BytesPerLine >= 8)
		curWidth := printedWidth(len(data), useSplit)
		if pad := fullWidth - curWidth; pad > 0 {
			fmt.Fprint(writer, strings.Repeat(" ", pad))
		}

		fmt.Fprint(writer, " | ")
		if useSplit && half < len(data) {
			formatASCII(writer, data[:half])
			fmt.Fprint(writer, " ")
			formatASCII(writer, data[half:])
		} else {
			formatASCII(writer, data)
		}
	}

	fmt.Fprintln(writer)
}

func printedWidth(n int, split bool) int {
	if n == 0 {
		return 0
	}
	width := 2*n + (n - 1)
	if split {
		width += 2
	}
	return width
}

// formatASCII formats the ASCII part of a dump line
func formatASCII(writer io.Writer, data []byte) {
	for _, b := range data {
		c := rune(b)
		switch {
		case b == 0:
			fmt.Fprint(writer, zeroColor.Sprint("."))
		case !unicode.IsPrint(c):
			fmt.Fprint(writer, zeroColor.Sprint("."))
		default:
			fmt.Fprint(writer, textColor.Sprint(string(c)))
		}
	}
}
