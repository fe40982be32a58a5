package service

import (
	"time"

	"basegraph.app/fortune/common/llm"
	"basegraph.app/fortune/internal/model"
)

type ServicesConfig struct {
	Generator      llm.Generator
	FortuneMode    model.FortuneMode
	FortuneTimeout time.Duration
}

type Services struct {
	fortunes FortuneService
}

// NewServices wires services around process-wide, read-only dependencies.
func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		fortunes: NewFortuneService(cfg.Generator, FortuneServiceConfig{
			Mode:    cfg.FortuneMode,
			Timeout: cfg.FortuneTimeout,
		}),
	}
}

func (s *Services) Fortunes() FortuneService {
	return s.fortunes
}
