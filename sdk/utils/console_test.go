// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.Copying("memory://local/src/a%20b.png", "a b.png", "fre/images/a b.png")
	c.Waiting(1)
	c.Status("success")
	c.Status("failed")
	c.VerifySource("src", true)
	c.VerifyDestination("fre/images/a b.png", false)
	c.Errorf("Target folder '%s' not found.", "images")

	want := strings.Join([]string{
		"[INFO] Source Blob URL: memory://local/src/a%20b.png",
		"[INFO] Copying Blob:",
		"  Source:      a b.png",
		"  Destination: fre/images/a b.png",
		"  [INFO] Copy in progress... Waiting... (1)",
		"[STATUS] Copy Operation: ✔ Success",
		"[STATUS] Copy Operation: ✖ Failed",
		"[VERIFY] Source in 'src': ✔ Found",
		"[VERIFY] Destination:",
		"  fre/images/a b.png - ✖ Not Found",
		"[ERROR] Target folder 'images' not found.",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "DEBUG")
	require.NoError(t, err)

	logger.Debug("copy started", "source", "a/b.png")
	assert.Contains(t, buf.String(), "copy started")
	assert.Contains(t, buf.String(), "a/b.png")

	_, err = NewLogger(&buf, "chatty")
	assert.Error(t, err)
}

func TestRenderFormats(t *testing.T) {
	v := map[string]string{"source_container": "src"}

	y, err := Render(v, "yaml")
	require.NoError(t, err)
	assert.Equal(t, "source_container: src\n", string(y))

	j, err := Render(v, "JSON")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"source_container\": \"src\"\n}\n", string(j))
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
	assert.Len(t, UUIDv4NoDash(), 32)
}
