// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"errors"
	"fmt"

	"github.com/scc-digitalhub/blobmover/sdk/config"
)

// -------- Copy --------

type CopyRequest struct {
	// Empty containers fall back to the configured ones.
	SourceContainer      string
	DestinationContainer string
	SourcePath           string
	DestinationPath      string
}

// Verification is the result of one existence probe.
type Verification struct {
	Checked bool `json:"checked" yaml:"checked"`
	Found   bool `json:"found"   yaml:"found"`
}

type CopyResult struct {
	Source      config.BlobRef    `json:"source"      yaml:"source"`
	Destination config.BlobRef    `json:"destination" yaml:"destination"`
	SourceURL   string            `json:"sourceUrl"   yaml:"sourceUrl"`
	Status      config.CopyStatus `json:"status"      yaml:"status"`

	// Waits counts the pauses spent in the poll loop.
	Waits int `json:"waits" yaml:"waits"`

	SourceCheck      Verification `json:"sourceCheck"      yaml:"sourceCheck"`
	DestinationCheck Verification `json:"destinationCheck" yaml:"destinationCheck"`
}

func (r *CopyResult) Succeeded() bool {
	return r.Status == config.CopyStatusSuccess
}

// -------- Errors --------

// ErrPollLimit is returned when the copy is still pending after the configured
// number of status reads.
var ErrPollLimit = errors.New("copy still pending after max poll attempts")

type CopyFailedError struct {
	Status config.CopyStatus
}

func (e *CopyFailedError) Error() string {
	return fmt.Sprintf("copy ended with status %q", e.Status)
}
