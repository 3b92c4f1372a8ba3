// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package bicepdocs_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Azure/bicepdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storageReadme(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/storage/README.md")
	require.NoError(t, err)
	return data
}

func TestGenerateFullReadme(t *testing.T) {
	t.Parallel()

	d := bicepdocs.NewDocGen("testdata/storage", &bicepdocs.DocGenOptions{
		DisableLinkProbing: true,
		ModuleSource:       "br/public:avm/res/storage/storage-account:0.9.1",
	})

	doc, err := d.Generate(context.Background(), storageReadme(t), nil)
	require.NoError(t, err)
	out := doc.String()

	assert.Contains(t, out, "# Storage Account `[Microsoft.Storage/storageAccounts]`")
	assert.Contains(t, out, "## Resource Types")
	assert.NotContains(t, out, "stale table")
	assert.Contains(t, out, "`Microsoft.Storage/storageAccounts`")

	assert.Contains(t, out, "## Usage examples")
	assert.Contains(t, out, "### Example 1: _Using only defaults_")
	assert.Contains(t, out, "### Example 2: _WAF-aligned_")
	assert.Contains(t, out, "module storageAccount 'br/public:avm/res/storage/storage-account:0.9.1'")

	assert.Contains(t, out, "## Parameters")
	assert.Contains(t, out, "[`name`](#parameter-name)")
	assert.Contains(t, out, "### Parameter: `lock.kind-CanNotDelete`")

	assert.Contains(t, out, "## Outputs")
	assert.Contains(t, out, "`resourceId`")

	// Hand-authored content survives, and the data collection notice is
	// appended after it instead of being spliced in front.
	assert.Contains(t, out, "Deploy with care in production subscriptions.")
	assert.Contains(t, out, "- The storage account name must be globally unique.")
	assert.Contains(t, out, "## Data Collection")
	assert.Less(t, strings.Index(out, "## Notes"), strings.Index(out, "## Data Collection"))
}

func TestGenerateIsIdempotent(t *testing.T) {
	t.Parallel()

	d := bicepdocs.NewDocGen("testdata/storage", &bicepdocs.DocGenOptions{
		DisableLinkProbing: true,
	})
	ctx := context.Background()

	once, err := d.Generate(ctx, storageReadme(t), nil)
	require.NoError(t, err)
	twice, err := d.Generate(ctx, []byte(once.String()), nil)
	require.NoError(t, err)

	assert.Equal(t, once.String(), twice.String())
}

func TestGenerateSectionFilter(t *testing.T) {
	t.Parallel()

	d := bicepdocs.NewDocGen("testdata/storage", &bicepdocs.DocGenOptions{
		DisableLinkProbing: true,
	})

	doc, err := d.Generate(context.Background(), storageReadme(t), []string{"Outputs"})
	require.NoError(t, err)
	out := doc.String()

	assert.Contains(t, out, "## Outputs")
	assert.Contains(t, out, "stale table")
	assert.NotContains(t, out, "## Parameters")
}

func TestGenerateValidationListsAllOffenders(t *testing.T) {
	t.Parallel()

	d := bicepdocs.NewDocGen("testdata/invalid", &bicepdocs.DocGenOptions{
		DisableLinkProbing: true,
	})

	_, err := d.Generate(context.Background(), nil, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "template validation failed")
	assert.ErrorContains(t, err, "parameter 'location'")
	assert.ErrorContains(t, err, "parameter 'tags'")
}

func TestGenerateRemoteNotice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Custom data collection notice.\n")
	}))
	defer srv.Close()

	d := bicepdocs.NewDocGen("testdata/storage", &bicepdocs.DocGenOptions{
		DisableLinkProbing: true,
		NoticeURL:          srv.URL,
	})

	doc, err := d.Generate(context.Background(), storageReadme(t), nil)
	require.NoError(t, err)
	assert.Contains(t, doc.String(), "Custom data collection notice.")
}

func TestGenerateUnreachableNoticeLeavesSectionUntouched(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	readme := string(storageReadme(t)) + "\n## Data Collection\n\nprevious notice text\n"

	d := bicepdocs.NewDocGen("testdata/storage", &bicepdocs.DocGenOptions{
		DisableLinkProbing: true,
		NoticeURL:          srv.URL,
	})

	doc, err := d.Generate(context.Background(), []byte(readme), nil)
	require.NoError(t, err)
	out := doc.String()

	assert.Contains(t, out, "previous notice text")
	assert.NotContains(t, out, "Telemetry collection can be disabled")
}

// fakeCompiler returns canned JSON for any source path and records what it
// was asked to compile.
type fakeCompiler struct {
	output map[string]string
	calls  []string
}

func (f *fakeCompiler) Compile(_ context.Context, path string) ([]byte, error) {
	f.calls = append(f.calls, path)
	for suffix, out := range f.output {
		if strings.HasSuffix(path, suffix) {
			return []byte(out), nil
		}
	}
	return nil, fmt.Errorf("unexpected source %s", path)
}

func TestGenerateCompilesExampleSources(t *testing.T) {
	t.Parallel()

	compiled := `{
		"$schema": "https://schema.management.azure.com/schemas/2019-04-01/deploymentParameters.json#",
		"metadata": { "name": "WAF-aligned from source" },
		"parameters": { "name": { "value": "ssawaf001" } }
	}`

	fc := &fakeCompiler{output: map[string]string{"main.test.bicep": compiled}}
	d := bicepdocs.NewDocGen("testdata/storage", &bicepdocs.DocGenOptions{
		DisableLinkProbing: true,
		Compiler:           fc,
	})

	doc, err := d.Generate(context.Background(), storageReadme(t), nil)
	require.NoError(t, err)

	assert.Contains(t, doc.String(), "_WAF-aligned from source_")
	require.Len(t, fc.calls, 1)
	assert.Contains(t, fc.calls[0], "waf-aligned")
}

func TestGenerateWithoutCompilerUsesPrecompiledCounterpart(t *testing.T) {
	t.Parallel()

	d := bicepdocs.NewDocGen("testdata/storage", &bicepdocs.DocGenOptions{
		DisableLinkProbing: true,
	})

	doc, err := d.Generate(context.Background(), storageReadme(t), nil)
	require.NoError(t, err)
	assert.Contains(t, doc.String(), "### Example 2: _WAF-aligned_")
}

func TestTemplateNotFound(t *testing.T) {
	t.Parallel()

	d := bicepdocs.NewDocGen(t.TempDir(), nil)
	_, err := d.Generate(context.Background(), nil, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "no compiled template found")
}
