// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package doc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "arm expression",
			input: "[resourceId('Microsoft.Storage/storageAccounts', 'dep')]",
			want:  "<dep>",
			ok:    true,
		},
		{
			name:  "dotted output reference",
			input: "nestedDependencies.outputs.storageAccountResourceId",
			want:  "<storageAccountResourceId>",
			ok:    true,
		},
		{
			name:  "trailing value accessor ignored",
			input: "diagnosticDependencies.outputs.logAnalyticsWorkspaceResourceId.value",
			want:  "<logAnalyticsWorkspaceResourceId>",
			ok:    true,
		},
		{
			name:  "host name stays literal",
			input: "contoso.vault.azure.net",
			ok:    false,
		},
		{
			name:  "escaped bracket stays literal",
			input: "[[not-an-expression]",
			ok:    false,
		},
		{
			name:  "multi line function call",
			input: "uniqueString(\n  resourceGroup().id\n)",
			want:  "<id>",
			ok:    true,
		},
		{
			name:  "plain string",
			input: "myStorageAccount",
			ok:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok, err := placeholderFor(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestPlaceholderForUnterminatedFunction(t *testing.T) {
	t.Parallel()

	_, _, err := placeholderFor("uniqueString(\n  resourceGroup().id\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedFunction)
}

func TestSubstitutePlaceholdersWalksComposites(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"resourceId": "nestedDependencies.outputs.storageAccountResourceId",
		"name":       "myStorageAccount",
		"rules": []any{
			map[string]any{"id": "[resourceId('Microsoft.Network/virtualNetworks', 'vnet')]"},
		},
	}

	sub, err := substitutePlaceholders(in)
	require.NoError(t, err)
	got := sub.(map[string]any)
	assert.Equal(t, "<storageAccountResourceId>", got["resourceId"])
	assert.Equal(t, "myStorageAccount", got["name"])
	rules := got["rules"].([]any)
	assert.Equal(t, map[string]any{"id": "<vnet>"}, rules[0])
}

func TestBicepValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "null", input: nil, want: "null"},
		{name: "bool", input: true, want: "true"},
		{name: "integral float", input: float64(42), want: "42"},
		{name: "string", input: "plain", want: "'plain'"},
		{name: "string with interpolation escape", input: "${env}", want: `'\${env}'`},
		{name: "string with quote", input: "it's", want: `'it\'s'`},
		{name: "empty array", input: []any{}, want: "[]"},
		{name: "empty object", input: map[string]any{}, want: "{}"},
		{
			name:  "nested object with sorted keys",
			input: map[string]any{"b": float64(1), "a": []any{"x"}},
			want:  "{\n  a: [\n    'x'\n  ]\n  b: 1\n}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, bicepValue(tc.input, 0))
		})
	}
}

func TestBicepKeyQuotesNonIdentifiers(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "storageAccount", bicepKey("storageAccount"))
	assert.Equal(t, "'Microsoft.Insights'", bicepKey("Microsoft.Insights"))
}
