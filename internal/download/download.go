// Package download provides ffmpeg-based media downloading.
// Uses exec.Command with explicit argument slices and validates
// output paths against directory traversal attacks.
package download

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"vphim/internal/httputil"
	"vphim/internal/media"
)

// Download fetches a resolved source to a local file using ffmpeg.
// Embed sources are third-party iframe pages, not media; they cannot
// be downloaded.
func Download(src media.ResolvedSource, title string, outputDir string) (string, error) {
	if src.Kind == media.Embed {
		return "", fmt.Errorf("embed sources cannot be downloaded")
	}
	if src.URL == "" {
		return "", fmt.Errorf("no source URL to download")
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	filename := httputil.SanitizeFilename(title) + ".mkv"
	outputPath, err := httputil.SafeDownloadPath(absDir, filename)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	args := []string{
		"-y", // Overwrite output
		"-i", src.URL,
		"-c:v", "copy", // Copy video stream (no re-encoding)
		"-c:a", "copy", // Copy audio stream
		"-metadata", fmt.Sprintf("title=%s", title),
		outputPath,
	}

	cmd := exec.Command(ffmpegPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fmt.Fprintf(os.Stderr, "Downloading to: %s\n", outputPath)

	if err := cmd.Run(); err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}

	return outputPath, nil
}
