//go:build !integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storeplan/internal/mapping"
)

func TestSuggestCmd_Metadata(t *testing.T) {
	assert.Equal(t, "suggest", suggestCmd.Use)
	assert.NotEmpty(t, suggestCmd.Short)

	for _, flagName := range []string{"file", "charset", "delimiter", "sheet", "yaml"} {
		assert.NotNil(t, suggestCmd.Flags().Lookup(flagName), "suggest should have --%s flag", flagName)
	}
}

func TestSuggestCmd_GermanHeaders(t *testing.T) {
	setTestConfig(t)

	csv := "Filialname;Bundesland;Umsatz (EUR);Kundengruppe\nx;y;1;z\n"
	path := filepath.Join(t.TempDir(), "filialen.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	oldFile := suggestFile
	suggestFile = path
	defer func() { suggestFile = oldFile }()

	err := suggestCmd.RunE(suggestCmd, nil)
	require.NoError(t, err)
}

func TestSuggestCmd_YAMLOutput(t *testing.T) {
	setTestConfig(t)

	oldFile, oldYAML := suggestFile, suggestYAML
	suggestFile = writeStoresCSV(t)
	suggestYAML = true
	defer func() { suggestFile, suggestYAML = oldFile, oldYAML }()

	err := suggestCmd.RunE(suggestCmd, nil)
	require.NoError(t, err)
}

func TestSuggestCmd_MissingFile(t *testing.T) {
	setTestConfig(t)

	oldFile := suggestFile
	suggestFile = filepath.Join(t.TempDir(), "ghost.csv")
	defer func() { suggestFile = oldFile }()

	err := suggestCmd.RunE(suggestCmd, nil)
	assert.Error(t, err)
}

func TestRequiredWithoutSuggestion(t *testing.T) {
	reg := mapping.DefaultRegistry()

	missing := requiredWithoutSuggestion(reg, []mapping.Suggestion{
		{Requirement: "name", Header: "Filialname", Confidence: 1},
		{Requirement: "region", Header: "Bundesland", Confidence: 1},
	})
	assert.Equal(t, []string{"performance"}, missing)

	missing = requiredWithoutSuggestion(reg, []mapping.Suggestion{
		{Requirement: "name", Header: "Filialname", Confidence: 1},
		{Requirement: "region", Header: "Bundesland", Confidence: 1},
		{Requirement: "performance", Header: "Umsatz", Confidence: 1},
	})
	assert.Empty(t, missing)
}
