package normalizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/accent-lens/internal/tracker"
)

// FromUpload persists the uploaded bytes next to their original extension and
// transcodes them to the canonical WAV form.
func (n *implNormalizer) FromUpload(ctx context.Context, filename string, data []byte, tr *tracker.Tracker) (string, error) {
	if !SupportedExtension(filename) {
		return "", fmt.Errorf("unsupported file extension %q", filepath.Ext(filename))
	}
	if len(data) == 0 {
		return "", fmt.Errorf("uploaded file %q is empty", filename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	inputPath := filepath.Join(n.cfg.Paths.Temp, "upload_"+uuid.NewString()+ext)
	wavPath := filepath.Join(n.cfg.Paths.Temp, "normalized_"+uuid.NewString()+".wav")

	// Register both paths before the transcode so a partial failure still
	// leaves cleanable state.
	tr.RegisterFile(inputPath)
	tr.RegisterFile(wavPath)

	if err := os.WriteFile(inputPath, data, 0644); err != nil {
		return "", fmt.Errorf("persist upload: %w", err)
	}

	n.logger.Info(ctx, "Converting %q to WAV (mono, %dHz)", filename, n.cfg.Audio.SampleRate)

	if err := n.transcode(ctx, inputPath, wavPath); err != nil {
		return "", err
	}

	if err := n.verify(wavPath); err != nil {
		return "", err
	}

	n.logger.Info(ctx, "File converted to WAV: %s", wavPath)
	return wavPath, nil
}

// transcode runs ffmpeg to produce the canonical audio form:
// audio only, single channel, fixed sample rate, 16-bit PCM.
func (n *implNormalizer) transcode(ctx context.Context, inputPath, wavPath string) error {
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ac", fmt.Sprintf("%d", n.cfg.Audio.Channels),
		"-ar", fmt.Sprintf("%d", n.cfg.Audio.SampleRate),
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := n.executor.Execute(ctx, n.cfg.Tools.FFmpegBinary, args...); err != nil {
		return fmt.Errorf("ffmpeg transcode failed (ensure ffmpeg is installed and on PATH): %w", err)
	}
	return nil
}

// verify confirms the normalized artifact exists, is non-empty, and carries
// the canonical channel count and sample rate. A silently-wrong format must
// never reach the analysis client.
func (n *implNormalizer) verify(wavPath string) error {
	info, err := os.Stat(wavPath)
	if err != nil {
		return fmt.Errorf("normalized audio missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("normalized audio %s is empty", wavPath)
	}

	format, err := ProbeWAV(wavPath)
	if err != nil {
		return fmt.Errorf("probe normalized audio: %w", err)
	}
	if format.Channels != n.cfg.Audio.Channels || format.SampleRate != n.cfg.Audio.SampleRate {
		return fmt.Errorf("normalized audio has %d channel(s) at %dHz, want %d at %dHz",
			format.Channels, format.SampleRate, n.cfg.Audio.Channels, n.cfg.Audio.SampleRate)
	}
	return nil
}
