// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrBlobNotFound = errors.New("blob not found")

// CopyStatus mirrors the copy states exposed by the object stores.
type CopyStatus string

const (
	CopyStatusPending    CopyStatus = "pending"
	CopyStatusInProgress CopyStatus = "in_progress"
	CopyStatusSuccess    CopyStatus = "success"
	CopyStatusFailed     CopyStatus = "failed"
	CopyStatusAborted    CopyStatus = "aborted"
)

// Terminal reports whether the copy has left the pending states.
func (s CopyStatus) Terminal() bool {
	return s != CopyStatusPending && s != CopyStatusInProgress
}

// BlobRef identifies a blob by container and path.
type BlobRef struct {
	Container string
	Path      string
}

func (r BlobRef) String() string {
	return r.Container + "/" + r.Path
}

// CopySource carries both the retrieval URL and the plain reference, stores
// pick the form their copy primitive accepts.
type CopySource struct {
	URL string
	BlobRef
}

type BlobProperties struct {
	Name         string
	Size         int64
	LastModified time.Time
	CopyStatus   CopyStatus
}

// ObjectStore is the subset of object-store operations the relocation needs.
// Implementations wrap stateless HTTP clients and may be shared.
type ObjectStore interface {
	// BlobURL builds the retrieval URL of a blob.
	BlobURL(container, path string) string
	// List returns the names of all blobs under prefix, in store order.
	List(ctx context.Context, container, prefix string) ([]string, error)
	// Properties fetches blob properties; a missing blob yields ErrBlobNotFound.
	Properties(ctx context.Context, ref BlobRef) (*BlobProperties, error)
	// StartCopy issues a server-side copy and returns the initial status.
	StartCopy(ctx context.Context, src CopySource, dst BlobRef) (CopyStatus, error)
	// Read downloads a whole blob.
	Read(ctx context.Context, ref BlobRef) ([]byte, error)
}

// NewObjectStore builds the store selected by cfg.Provider.
func NewObjectStore(ctx context.Context, cfg StoreConfig) (ObjectStore, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderAzure, "":
		return NewAzureClient(cfg)
	case ProviderS3:
		return NewS3Client(ctx, cfg)
	case ProviderGCS:
		return NewGCSClient(ctx, cfg)
	case ProviderMinio:
		return NewMinioClient(cfg)
	case ProviderMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store provider %q", cfg.Provider)
	}
}

// EncodePath percent-encodes a blob path for use in a URL. Unreserved
// characters and "/" are kept as they are.
func EncodePath(path string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		if isUnreserved(c) || c == '/' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}
