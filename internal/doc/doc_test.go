// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package doc

import (
	"context"
	"strings"
	"testing"

	"github.com/Azure/bicepdocs/assets"
	"github.com/Azure/bicepdocs/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existingReadme = `# Old Title

An outdated description.

## Resource Types

stale table

## Notes

Hand-written operator notes.

- keep this list intact
`

func TestRenderReplacesGeneratedSections(t *testing.T) {
	t.Parallel()

	g := NewGenerator(storageModel(t), &Config{
		DocsBaseURL: "https://learn.microsoft.com/azure/templates",
	})

	d, err := g.Render(context.Background(), document.Parse([]byte(existingReadme)), nil)
	require.NoError(t, err)
	out := d.String()

	assert.Contains(t, out, "# Storage Account `[Microsoft.Storage/storageAccounts]`")
	assert.Contains(t, out, "This module deploys a Storage Account.")
	assert.NotContains(t, out, "Old Title")
	assert.NotContains(t, out, "An outdated description.")
	assert.NotContains(t, out, "stale table")

	assert.Contains(t, out,
		"[`Microsoft.Storage/storageAccounts`](https://learn.microsoft.com/azure/templates/microsoft.storage/2023-05-01/storageaccounts)")
}

func TestRenderPreservesHandAuthoredNotes(t *testing.T) {
	t.Parallel()

	g := NewGenerator(storageModel(t), nil)
	d, err := g.Render(context.Background(), document.Parse([]byte(existingReadme)), nil)
	require.NoError(t, err)
	out := d.String()

	assert.Contains(t, out, "## Notes\n\nHand-written operator notes.\n\n- keep this list intact")

	// Generated sections land before the notes.
	assert.Less(t, strings.Index(out, "## Parameters"), strings.Index(out, "## Notes"))
	assert.Less(t, strings.Index(out, "## Outputs"), strings.Index(out, "## Notes"))
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	g := NewGenerator(storageModel(t), nil)
	ctx := context.Background()

	once, err := g.Render(ctx, document.Parse([]byte(existingReadme)), nil)
	require.NoError(t, err)
	twice, err := g.Render(ctx, document.Parse([]byte(once.String())), nil)
	require.NoError(t, err)

	assert.Equal(t, once.String(), twice.String())
}

func TestRenderSectionFilter(t *testing.T) {
	t.Parallel()

	g := NewGenerator(storageModel(t), nil)
	d, err := g.Render(context.Background(), document.Parse([]byte(existingReadme)), []string{SectionOutputs})
	require.NoError(t, err)
	out := d.String()

	assert.Contains(t, out, "# Old Title")
	assert.Contains(t, out, "stale table")
	assert.Contains(t, out, "## Outputs")
	assert.NotContains(t, out, "## Parameters")
}

func TestRenderNavigationListsPresentSections(t *testing.T) {
	t.Parallel()

	g := NewGenerator(storageModel(t), nil)
	d, err := g.Render(context.Background(), document.Parse([]byte(existingReadme)), nil)
	require.NoError(t, err)
	out := d.String()

	nav := strings.Index(out, "## Navigation")
	require.GreaterOrEqual(t, nav, 0)
	assert.Less(t, nav, strings.Index(out, "## Resource Types"))

	assert.Contains(t, out, "- [Resource Types](#resource-types)")
	assert.Contains(t, out, "- [Parameters](#parameters)")
	assert.Contains(t, out, "- [Outputs](#outputs)")
	assert.Contains(t, out, "- [Data Collection](#data-collection)")
	// No examples were supplied, so the section is neither rendered nor listed.
	assert.NotContains(t, out, "- [Usage examples](#usage-examples)")
}

func TestRenderDataCollectionFollowsTelemetryParameter(t *testing.T) {
	t.Parallel()

	withTelemetry := storageModel(t)
	g := NewGenerator(withTelemetry, nil)
	d, err := g.Render(context.Background(), document.Parse([]byte(existingReadme)), nil)
	require.NoError(t, err)
	assert.Contains(t, d.String(), "## Data Collection")
	assert.Contains(t, d.String(), "Telemetry collection can be disabled by setting the `enableTelemetry` parameter to `false`.")

	withoutTelemetry := storageModel(t)
	delete(withoutTelemetry.Parameters, "enableTelemetry")
	g = NewGenerator(withoutTelemetry, nil)
	d, err = g.Render(context.Background(), document.Parse([]byte(existingReadme)), nil)
	require.NoError(t, err)
	assert.NotContains(t, d.String(), "## Data Collection")
}

func TestRenderDataCollectionComesAfterNotes(t *testing.T) {
	t.Parallel()

	g := NewGenerator(storageModel(t), nil)
	d, err := g.Render(context.Background(), document.Parse([]byte(existingReadme)), nil)
	require.NoError(t, err)
	out := d.String()

	notes := strings.Index(out, "## Notes")
	collection := strings.Index(out, "## Data Collection")
	require.GreaterOrEqual(t, notes, 0)
	require.GreaterOrEqual(t, collection, 0)
	assert.Less(t, notes, collection)
}

func TestRenderNoticeUnavailableLeavesSectionUntouched(t *testing.T) {
	t.Parallel()

	readme := existingReadme + "\n## Data Collection\n\nprevious notice text\n"

	g := NewGenerator(storageModel(t), &Config{NoticeUnavailable: true})
	d, err := g.Render(context.Background(), document.Parse([]byte(readme)), nil)
	require.NoError(t, err)
	out := d.String()

	assert.Contains(t, out, "previous notice text")
	assert.NotContains(t, out, "Telemetry collection can be disabled")
}

func TestRenderEmptyModelUsesNoneMarkers(t *testing.T) {
	t.Parallel()

	m := &assets.TemplateModel{
		Metadata: &assets.TemplateMetadata{Name: "Empty Module"},
	}
	g := NewGenerator(m, nil)
	d, err := g.Render(context.Background(), document.New([]string{"# placeholder"}), nil)
	require.NoError(t, err)
	out := d.String()

	assert.Contains(t, out, "# Empty Module")

	sections := []string{SectionResourceTypes, SectionParameters, SectionOutputs, SectionCrossReferences}
	for _, section := range sections {
		assert.Contains(t, out, Marker(section))
	}
	assert.Equal(t, len(sections), strings.Count(out, noneMarker))
}
