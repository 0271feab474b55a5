// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

const memoryBaseURL = "memory://local"

// MemoryStore is an in-process ObjectStore. Copies complete immediately unless
// a status script was registered for the destination with ScriptCopy.
type MemoryStore struct {
	mu      sync.Mutex
	blobs   map[BlobRef][]byte
	scripts map[BlobRef][]CopyStatus
	copies  []BlobRef
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs:   map[BlobRef][]byte{},
		scripts: map[BlobRef][]CopyStatus{},
	}
}

func (m *MemoryStore) Put(container, path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[BlobRef{Container: container, Path: path}] = data
}

// ScriptCopy sets the statuses the next copy to dst reports: the first one is
// returned by StartCopy, the rest by successive Properties calls.
func (m *MemoryStore) ScriptCopy(dst BlobRef, statuses ...CopyStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[dst] = statuses
}

// Copies returns the destinations of all copies started so far.
func (m *MemoryStore) Copies() []BlobRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]BlobRef(nil), m.copies...)
}

func (m *MemoryStore) BlobURL(container, path string) string {
	return memoryBaseURL + "/" + container + "/" + EncodePath(path)
}

// List returns names sorted, since maps have no store order.
func (m *MemoryStore) List(_ context.Context, container, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var names []string
	for ref := range m.blobs {
		if ref.Container == container && strings.HasPrefix(ref.Path, prefix) {
			names = append(names, ref.Path)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) Properties(_ context.Context, ref BlobRef) (*BlobProperties, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := CopyStatusSuccess
	if script := m.scripts[ref]; len(script) > 0 {
		status = script[0]
		m.scripts[ref] = script[1:]
	}

	data, ok := m.blobs[ref]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
	}
	return &BlobProperties{
		Name:         ref.Path,
		Size:         int64(len(data)),
		LastModified: time.Now(),
		CopyStatus:   status,
	}, nil
}

func (m *MemoryStore) StartCopy(_ context.Context, src CopySource, dst BlobRef) (CopyStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.blobs[src.BlobRef]
	if !ok {
		return "", fmt.Errorf("copy source %s: %w", src.BlobRef, ErrBlobNotFound)
	}

	status := CopyStatusSuccess
	if script := m.scripts[dst]; len(script) > 0 {
		status = script[0]
		m.scripts[dst] = script[1:]
	}
	// failed and aborted copies leave nothing behind
	if status != CopyStatusFailed && status != CopyStatusAborted {
		m.blobs[dst] = append([]byte(nil), data...)
	}
	m.copies = append(m.copies, dst)
	return status, nil
}

func (m *MemoryStore) Read(_ context.Context, ref BlobRef) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.blobs[ref]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
	}
	return append([]byte(nil), data...), nil
}
