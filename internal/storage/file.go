// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage is a Storage backed by the local filesystem. Blobs are
// sharded into subdirectories by handle prefix to keep directories
// small.
type FileStorage struct {
	root string
}

// NewFileStorage creates a file-backed storage rooted at dir.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &FileStorage{root: dir}, nil
}

// path maps a handle to its on-disk location. Handles arrive from
// untrusted job payloads, so anything too short to shard is rejected.
func (s *FileStorage) path(handle Handle) (string, bool) {
	h := string(handle)
	if len(h) < 4 {
		return "", false
	}
	return filepath.Join(s.root, h[:2], h), true
}

func (s *FileStorage) Store(ctx context.Context, data []byte) (Handle, error) {
	handle := ComputeHandle(data)
	path, _ := s.path(handle)

	if _, err := os.Stat(path); err == nil {
		return handle, nil // Dedup by content hash.
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}

	// Write to a temp file first so a crash never leaves a truncated
	// blob under its final name.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return handle, nil
}

func (s *FileStorage) Load(ctx context.Context, handle Handle) ([]byte, error) {
	path, ok := s.path(handle)
	if !ok {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *FileStorage) Delete(ctx context.Context, handle Handle) error {
	path, ok := s.path(handle)
	if !ok {
		return ErrNotFound
	}
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *FileStorage) Close() error { return nil }
