package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing export files should be overwritten
	OverwriteFiles bool
	// DownloadCovers controls whether cover thumbnails are fetched for exported paths
	DownloadCovers bool
	// OpenAIAPIKey is the API key for the librarian chat client
	OpenAIAPIKey string
	// GoogleBooksAPIKey is the optional API key for Google Books cover lookups
	GoogleBooksAPIKey string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("PDFOutputDir", "./pdf/")
	viper.SetDefault("OverwriteFiles", false)

	// Get values from viper
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	OpenAIAPIKey = viper.GetString("OpenAIAPIKey")
	GoogleBooksAPIKey = viper.GetString("GoogleBooksAPIKey")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetDownloadCovers sets the DownloadCovers flag
func SetDownloadCovers(download bool) {
	DownloadCovers = download
}
