package fileutil

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// coverThumbnailWidth is the width covers are resized to before saving.
// Source thumbnails vary wildly; a fixed width keeps exports uniform.
const coverThumbnailWidth = 250

// CoverDownloadOptions holds options for downloading cover images.
type CoverDownloadOptions struct {
	// URL is the source URL of the cover image
	URL string
	// OutputDir is the directory where the cover will be saved
	OutputDir string
	// Filename is the name of the cover file (e.g., "Title - cover.jpg")
	Filename string
	// UpdateCovers forces re-downloading even if cover exists
	UpdateCovers bool
}

// CoverDownloadResult holds the result of a cover download operation.
type CoverDownloadResult struct {
	// Downloaded indicates if a new file was downloaded
	Downloaded bool
	// LocalPath is the full path to the downloaded cover
	LocalPath string
	// RelativePath is the path relative to the export (e.g., "attachments/Title - cover.jpg")
	RelativePath string
	// Filename is just the filename
	Filename string
}

// DownloadCover downloads a cover image into the attachments directory and
// resizes it to a uniform thumbnail width. It skips the download if the
// file already exists and UpdateCovers is false.
func DownloadCover(opts CoverDownloadOptions) (*CoverDownloadResult, error) {
	if opts.URL == "" {
		return nil, nil
	}

	attachmentsDir := filepath.Join(opts.OutputDir, "attachments")
	if err := os.MkdirAll(attachmentsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}

	localPath := filepath.Join(attachmentsDir, opts.Filename)
	result := &CoverDownloadResult{
		LocalPath:    localPath,
		RelativePath: filepath.Join("attachments", opts.Filename),
		Filename:     opts.Filename,
	}

	if FileExists(localPath) && !opts.UpdateCovers {
		slog.Debug("Cover already exists, skipping download", "path", localPath)
		return result, nil
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, opts.URL)
	}

	if err := saveThumbnail(resp.Body, localPath); err != nil {
		return nil, err
	}

	slog.Info("Downloaded cover", "path", localPath)
	result.Downloaded = true

	return result, nil
}

// saveThumbnail decodes the image, scales it down to the thumbnail width
// and writes it out. Images already narrower than the target are saved
// unscaled rather than blown up.
func saveThumbnail(r io.Reader, localPath string) error {
	img, err := imaging.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to decode cover image: %w", err)
	}

	if img.Bounds().Dx() > coverThumbnailWidth {
		img = imaging.Resize(img, coverThumbnailWidth, 0, imaging.Lanczos)
	}

	if err := saveImage(img, localPath); err != nil {
		return fmt.Errorf("failed to save cover image: %w", err)
	}
	return nil
}

func saveImage(img image.Image, localPath string) error {
	return imaging.Save(img, localPath)
}

// BuildCoverFilename creates a standard cover filename from a title.
// Returns: "Title - cover.jpg"
func BuildCoverFilename(title string) string {
	return SanitizeFilename(title) + " - cover.jpg"
}
