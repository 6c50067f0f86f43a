package templating

import (
	"fmt"

	"github.com/kerbinside/gapgen/pkg/logger"
)

// Service renders the player facing texts of a contract
type Service struct {
	engine *Engine
	logger *logger.Logger
}

// NewService creates a new templating service
func NewService(engine *Engine, logger *logger.Logger) *Service {
	return &Service{
		engine: engine,
		logger: logger.Named("templating"),
	}
}

// RenderDescription renders the description paragraphs of a contract
func (s *Service) RenderDescription(data DescriptionData) (string, error) {
	text, err := s.engine.RenderTemplate(DescriptionTemplate, data)
	if err != nil {
		return "", fmt.Errorf("description: %w", err)
	}
	return text, nil
}

// RenderSynopsis renders the one paragraph summary of a contract
func (s *Service) RenderSynopsis(data SynopsisData) (string, error) {
	text, err := s.engine.RenderTemplate(SynopsisTemplate, data)
	if err != nil {
		return "", fmt.Errorf("synopsis: %w", err)
	}
	return text, nil
}
