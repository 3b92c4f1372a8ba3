// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package links resolves resource type reference documentation URLs.
// Resolution is best-effort: candidates are probed from most to least
// specific and an unreachable endpoint never fails document generation.
package links

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

const (
	maxAttempts    = 2
	requestTimeout = 5 * time.Second
	maxBackoff     = 4 * time.Second
)

// Resolver probes candidate URLs for reachability.
// Create with NewResolver. A nil Resolver is valid and skips probing,
// returning the most specific candidate.
type Resolver struct {
	client *http.Client
	log    *slog.Logger
}

// NewResolver creates a Resolver. A nil client selects a default with a
// per-request timeout; a nil logger discards.
func NewResolver(client *http.Client, log *slog.Logger) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{client: client, log: log}
}

// Resolve returns the first reachable candidate URL, probing in order.
// When no candidate is reachable, or the resolver is nil, the first (most
// specific) candidate is returned so documents always carry a link.
func (r *Resolver) Resolve(ctx context.Context, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	if r == nil {
		return candidates[0]
	}

	for _, c := range candidates {
		if r.reachable(ctx, c) {
			return c
		}
		r.log.Debug("documentation link unreachable, falling back", "url", c)
	}

	r.log.Warn("no documentation link candidate reachable", "url", candidates[0])
	return candidates[0]
}

func (r *Resolver) reachable(ctx context.Context, url string) bool {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(backoff(attempt - 1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return false
		}

		resp, err := r.client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 400 {
			return true
		}

		// Only server errors are worth a retry.
		if resp.StatusCode < 500 {
			return false
		}
	}
	return false
}

// backoff returns a duration for attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > maxBackoff {
		base = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// CandidateURLs builds documentation URL candidates for a resource type at an
// API version, ordered from most to least specific.
func CandidateURLs(baseURL, resourceType, apiVersion string) []string {
	parts := strings.SplitN(resourceType, "/", 2)
	provider := strings.ToLower(parts[0])

	rest := ""
	if len(parts) > 1 {
		rest = strings.ToLower(parts[1])
	}

	candidates := make([]string, 0, 3)
	if rest != "" && apiVersion != "" {
		candidates = append(candidates, fmt.Sprintf("%s/%s/%s/%s", baseURL, provider, apiVersion, rest))
	}
	if rest != "" {
		candidates = append(candidates, fmt.Sprintf("%s/%s/%s", baseURL, provider, rest))
	}
	candidates = append(candidates, fmt.Sprintf("%s/%s", baseURL, provider))
	return candidates
}
