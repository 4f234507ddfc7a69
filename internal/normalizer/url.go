package normalizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/accent-lens/internal/tracker"
)

// FromURL downloads the best available audio stream with yt-dlp and extracts
// it to the canonical WAV form. The whole download lands in a fresh temp
// directory registered with the tracker before anything runs, so partial
// downloads are swept with the run.
func (n *implNormalizer) FromURL(ctx context.Context, url string, tr *tracker.Tracker) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("no URL supplied")
	}

	downloadDir, err := os.MkdirTemp(n.cfg.Paths.Temp, "download-*")
	if err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	tr.RegisterDir(downloadDir)

	n.logger.Info(ctx, "Downloading audio from URL: %s", url)

	// yt-dlp handles format selection; the FFmpegExtractAudio post-processor
	// transcodes to WAV with mono/16kHz forced during extraction. The output
	// template names the file deterministically from the source identifier.
	args := []string{
		"-f", "bestaudio/best",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--retries", "3",
		"-x",
		"--audio-format", "wav",
		"--audio-quality", "192",
		"--postprocessor-args", fmt.Sprintf("ffmpeg:-ac %d -ar %d", n.cfg.Audio.Channels, n.cfg.Audio.SampleRate),
		"-o", filepath.Join(downloadDir, "audio_%(id)s.%(ext)s"),
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	}

	out, err := n.executor.Execute(ctx, n.cfg.Tools.YtDlpBinary, args...)
	if err != nil {
		return "", fmt.Errorf("yt-dlp download failed (ensure yt-dlp and ffmpeg are installed and on PATH): %w", err)
	}

	wavPath := resolveOutputPath(out)
	if wavPath == "" {
		return "", fmt.Errorf("yt-dlp reported no output file for %s", url)
	}

	info, err := os.Stat(wavPath)
	if err != nil || info.Size() == 0 {
		return "", fmt.Errorf("yt-dlp failed to produce WAV audio, or the file is empty: %s", wavPath)
	}

	if err := n.verify(wavPath); err != nil {
		return "", err
	}

	n.logger.Info(ctx, "Audio downloaded and processed to: %s", filepath.Base(wavPath))
	return wavPath, nil
}

// resolveOutputPath picks the final file path out of yt-dlp's --print output.
// The extract-audio step renames the download, so the last printed line is
// the path that actually exists.
func resolveOutputPath(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line != "" {
			return line
		}
	}
	return ""
}
