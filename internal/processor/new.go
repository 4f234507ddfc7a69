package processor

import (
	"github.com/nguyentantai21042004/accent-lens/internal/analysis"
	"github.com/nguyentantai21042004/accent-lens/internal/config"
	"github.com/nguyentantai21042004/accent-lens/internal/logger"
	"github.com/nguyentantai21042004/accent-lens/internal/normalizer"
)

type implProcessor struct {
	cfg        *config.Config
	normalizer normalizer.Normalizer
	analysis   analysis.Client
	logger     logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, norm normalizer.Normalizer, client analysis.Client, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		normalizer: norm,
		analysis:   client,
		logger:     log,
	}
}
