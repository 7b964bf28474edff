package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jwalton/gchalk"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	tests := []struct {
		input int
		noun  string
		want  string
	}{
		{0, "asset", "0 assets"},
		{1, "library", "1 library"},
		{999, "artifact", "999 artifacts"},
		{3412, "asset", "3,412 assets"},
		{2500000, "object", "2,500,000 objects"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.input, tt.noun))
		})
	}
	assert.Equal(t, "12 artifacts", Count(uint8(12), "artifact"))
}

func TestPrettyVersion(t *testing.T) {
	level := gchalk.GetLevel()
	gchalk.SetLevel(gchalk.LevelNone)
	defer gchalk.SetLevel(level)

	tests := []struct {
		input string
		want  string
	}{
		{"1.21.1", "1.21.1"},
		{"1.21-pre1", "1.21-pre1"},
		{"24w14potato", "24w14potato"},
		{"1.14.2 Pre-Release 4-extra-long", "1.14.2 Pre-Release …"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, PrettyVersion(tt.input))
		})
	}
}

func TestReadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "17"}`), 0644))

	parsed := struct {
		ID string `json:"id"`
	}{}
	require.NoError(t, ReadJSONFile(path, &parsed))
	assert.Equal(t, "17", parsed.ID)

	assert.True(t, os.IsNotExist(errors.Cause(ReadJSONFile(filepath.Join(t.TempDir(), "missing.json"), &parsed))))

	corrupt := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{"id": `), 0644))
	err := ReadJSONFile(corrupt, &parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt.json")
}
