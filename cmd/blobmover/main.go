// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Command blobmover copies blobs between folders and containers of an object
// store, following text or JSON manifests.
//
// Usage:
//
//	blobmover <command> [flags]
//
// Commands:
//
//	copy      Copy the entries of a text manifest
//	records   Copy the assets of JSON/YAML language records
//	config    Show or save configuration
package main

import (
	"fmt"
	"os"

	"github.com/scc-digitalhub/blobmover/cmd/blobmover/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
