package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetOverwriteFiles(t *testing.T) {
	originalValue := OverwriteFiles

	testCases := []struct {
		name     string
		input    bool
		expected bool
	}{
		{
			name:     "set to true",
			input:    true,
			expected: true,
		},
		{
			name:     "set to false",
			input:    false,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetOverwriteFiles(tc.input)
			assert.Equal(t, tc.expected, OverwriteFiles)
		})
	}

	OverwriteFiles = originalValue
}

func TestSetDownloadCovers(t *testing.T) {
	originalValue := DownloadCovers
	t.Cleanup(func() { DownloadCovers = originalValue })

	SetDownloadCovers(true)
	assert.True(t, DownloadCovers)

	SetDownloadCovers(false)
	assert.False(t, DownloadCovers)
}

func TestInitConfigReadsViper(t *testing.T) {
	state := struct {
		overwrite bool
		openai    string
		google    string
	}{OverwriteFiles, OpenAIAPIKey, GoogleBooksAPIKey}
	t.Cleanup(func() {
		OverwriteFiles = state.overwrite
		OpenAIAPIKey = state.openai
		GoogleBooksAPIKey = state.google
		viper.Reset()
	})

	viper.Reset()
	viper.Set("OverwriteFiles", true)
	viper.Set("OpenAIAPIKey", "test-openai-key")
	viper.Set("GoogleBooksAPIKey", "test-google-key")

	InitConfig()

	assert.True(t, OverwriteFiles)
	assert.Equal(t, "test-openai-key", OpenAIAPIKey)
	assert.Equal(t, "test-google-key", GoogleBooksAPIKey)
}
