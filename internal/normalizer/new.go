package normalizer

import (
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/accent-lens/internal/config"
	"github.com/nguyentantai21042004/accent-lens/internal/logger"
	"github.com/nguyentantai21042004/accent-lens/pkg/executor"
)

type implNormalizer struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Normalizer instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Normalizer {
	return &implNormalizer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

var supportedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
}

// SupportedExtension reports whether the filename has an accepted media extension
func SupportedExtension(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
