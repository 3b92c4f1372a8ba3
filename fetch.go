// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package bicepdocs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Azure/bicepdocs/internal/environment"
	getter "github.com/hashicorp/go-getter"
)

// TemplateReference locates a template directory.
// It can point at a local path or at any remote source go-getter understands.
type TemplateReference interface {
	// Fetch makes the referenced directory available on the local
	// filesystem and returns it. destinationDirectory is used for remote
	// sources and ignored by local ones.
	Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error)

	// String returns the source in the form the user supplied it.
	String() string
}

var _ TemplateReference = (*LocalReference)(nil)
var _ TemplateReference = (*RemoteReference)(nil)

// LocalReference is a template directory on the local filesystem.
type LocalReference struct {
	path string
}

// NewLocalReference creates a reference to a local template directory.
func NewLocalReference(path string) *LocalReference {
	return &LocalReference{path: path}
}

// Fetch verifies the directory exists and returns it.
func (r *LocalReference) Fetch(_ context.Context, _ string) (fs.FS, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		return nil, fmt.Errorf("template directory %s: %w", r.path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s: not a directory", r.path)
	}
	return os.DirFS(r.path), nil
}

// String returns the local path.
func (r *LocalReference) String() string {
	return r.path
}

// RemoteReference is a template directory fetched from a go-getter URL,
// e.g. a git repository subdirectory or an HTTP archive.
type RemoteReference struct {
	url string
}

// NewRemoteReference creates a reference to a remote template directory.
func NewRemoteReference(url string) *RemoteReference {
	return &RemoteReference{url: url}
}

// Fetch downloads the remote source into the destination directory.
func (r *RemoteReference) Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error) {
	if err := os.MkdirAll(destinationDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("creating fetch directory %s: %w", destinationDirectory, err)
	}

	client := &getter.Client{
		Ctx:  ctx,
		Src:  r.url,
		Dst:  destinationDirectory,
		Mode: getter.ClientModeDir,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.url, err)
	}
	return os.DirFS(destinationDirectory), nil
}

// String returns the go-getter URL.
func (r *RemoteReference) String() string {
	return r.url
}

// ParseTemplateReference classifies a source string: an existing local
// directory becomes a LocalReference, anything else is treated as a
// go-getter URL.
func ParseTemplateReference(source string) TemplateReference {
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return NewLocalReference(source)
	}
	return NewRemoteReference(source)
}

// FetchTemplateDirectory resolves a source string to a local directory path,
// fetching remote sources into a per-source subdirectory of the bicepdocs
// cache directory.
func FetchTemplateDirectory(ctx context.Context, source string) (string, error) {
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return source, nil
	}

	dst := filepath.Join(environment.BicepDocsDir(), sourceDigest(source))
	if _, err := NewRemoteReference(source).Fetch(ctx, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func sourceDigest(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:8])
}
