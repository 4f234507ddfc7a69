package analysis

import (
	"github.com/nguyentantai21042004/accent-lens/internal/logger"
)

type implClient struct {
	apiKey string
	model  string
	logger logger.Logger
}

// New creates a Client backed by the Gemini API
func New(apiKey, model string, log logger.Logger) Client {
	return &implClient{
		apiKey: apiKey,
		model:  model,
		logger: log,
	}
}
