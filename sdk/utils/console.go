// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const (
	iconOK   = "✔"
	iconFail = "✖"
)

/* ------------ status lines for operators (stdout) ------------ */

// Console prints the human-readable progress of a relocation run.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	tag  *color.Color
	ok   *color.Color
	fail *color.Color
}

func NewConsole(w io.Writer, colored bool) *Console {
	c := &Console{
		w:    w,
		tag:  color.New(color.FgCyan),
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed),
	}
	if !colored {
		c.tag.DisableColor()
		c.ok.DisableColor()
		c.fail.DisableColor()
	}
	return c
}

func (c *Console) line(tag, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", c.tag.Sprint("["+tag+"]"), msg)
}

func (c *Console) icon(ok bool) string {
	if ok {
		return c.ok.Sprint(iconOK)
	}
	return c.fail.Sprint(iconFail)
}

func (c *Console) Infof(format string, a ...any) {
	c.line("INFO", fmt.Sprintf(format, a...))
}

func (c *Console) Errorf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", c.fail.Sprint("[ERROR]"), fmt.Sprintf(format, a...))
}

func (c *Console) Copying(sourceURL, src, dst string) {
	c.Infof("Source Blob URL: %s", sourceURL)
	c.Infof("Copying Blob:\n  Source:      %s\n  Destination: %s", src, dst)
}

func (c *Console) Waiting(attempt int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "  %s Copy in progress... Waiting... (%d)\n", c.tag.Sprint("[INFO]"), attempt)
}

func (c *Console) Status(status string) {
	c.line("STATUS", fmt.Sprintf("Copy Operation: %s %s", c.icon(status == "success"), capitalize(status)))
}

func (c *Console) VerifySource(container string, found bool) {
	label := "Not Found"
	if found {
		label = "Found"
	}
	c.line("VERIFY", fmt.Sprintf("Source in '%s': %s %s", container, c.icon(found), label))
}

func (c *Console) VerifyDestination(path string, found bool) {
	label := "Not Found"
	if found {
		label = "Verified"
	}
	c.line("VERIFY", fmt.Sprintf("Destination:\n  %s - %s %s", path, c.icon(found), label))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
