package debug

/*
 * GBA - Debug trace channels.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"fmt"
	"io"
	"strings"
)

// Per-subsystem trace channels, off by default. The channel names in use
// are cpu, mem, irq and cart; Enable("all") opens everything.

var (
	out     io.Writer
	enabled = map[string]bool{}
	all     bool
)

// SetOutput directs trace output, usually at the log file.
func SetOutput(w io.Writer) {
	out = w
}

// Enable opens a comma-separated list of trace channels.
func Enable(list string) {
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "all" {
			all = true
			continue
		}
		enabled[name] = true
	}
}

// Enabled reports whether a channel is open.
func Enabled(module string) bool {
	return all || enabled[module]
}

// Generic debug message.
func Debugf(module string, format string, a ...interface{}) {
	if out == nil || !Enabled(module) {
		return
	}
	fmt.Fprintf(out, module+": "+format+"\n", a...)
}
