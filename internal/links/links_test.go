// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package links

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateURLs(t *testing.T) {
	t.Parallel()

	base := "https://learn.microsoft.com/azure/templates"
	got := CandidateURLs(base, "Microsoft.Storage/storageAccounts/blobServices", "2023-01-01")
	assert.Equal(t, []string{
		base + "/microsoft.storage/2023-01-01/storageaccounts/blobservices",
		base + "/microsoft.storage/storageaccounts/blobservices",
		base + "/microsoft.storage",
	}, got)
}

func TestCandidateURLsProviderOnly(t *testing.T) {
	t.Parallel()

	got := CandidateURLs("https://example.com", "Microsoft.Resources", "")
	assert.Equal(t, []string{"https://example.com/microsoft.resources"}, got)
}

func TestResolvePrefersFirstReachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/specific" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewResolver(srv.Client(), nil)
	got := r.Resolve(context.Background(), []string{srv.URL + "/specific", srv.URL + "/generic"})
	assert.Equal(t, srv.URL+"/generic", got)
}

func TestResolveFallsBackWhenNothingReachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewResolver(srv.Client(), nil)
	got := r.Resolve(context.Background(), []string{srv.URL + "/a", srv.URL + "/b"})
	// Generation must not fail: the most specific candidate is kept.
	assert.Equal(t, srv.URL+"/a", got)
}

func TestNilResolverSkipsProbing(t *testing.T) {
	t.Parallel()

	var r *Resolver
	got := r.Resolve(context.Background(), []string{"https://example.com/a", "https://example.com/b"})
	assert.Equal(t, "https://example.com/a", got)
}

func TestResolveEmptyCandidates(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil, nil)
	require.Equal(t, "", r.Resolve(context.Background(), nil))
}
