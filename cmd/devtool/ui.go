package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// console is where devtool reports progress. NO_COLOR disables escape codes.
var console = struct {
	w     io.Writer
	color bool
}{w: os.Stdout, color: os.Getenv("NO_COLOR") == ""}

func printLine(color, prefix, format string, a ...interface{}) {
	msg := prefix + fmt.Sprintf(format, a...)
	if console.color {
		msg = color + msg + colorReset
	}
	fmt.Fprintln(console.w, msg)
}

func PrintInfo(format string, a ...interface{})    { printLine(colorBlue, "i ", format, a...) }
func PrintSuccess(format string, a ...interface{}) { printLine(colorGreen, "ok ", format, a...) }
func PrintWarning(format string, a ...interface{}) { printLine(colorYellow, "! ", format, a...) }
func PrintError(format string, a ...interface{})   { printLine(colorRed, "x ", format, a...) }

func PrintHeader(title string) {
	fmt.Fprintln(console.w)
	printLine(colorYellow, "", "=== %s ===", title)
}
