package usecase

import (
	"context"
	"fmt"
	"time"

	"tpp-demo/internal/domain"
)

// Seed is everything built from the seed document at start.
type Seed struct {
	Config   *domain.Config
	Registry *Registry
	Ledger   *domain.Ledger
}

// LoadSeed reads the seed document, validates its use cases and resolves the
// relative dates of its ledger against today.
func LoadSeed(ctx context.Context, repo ConfigRepository, today time.Time) (Seed, error) {
	cfg, err := repo.Load(ctx)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to load seed: %w", err)
	}

	registry, err := NewRegistry(cfg.Categories)
	if err != nil {
		return Seed{}, fmt.Errorf("invalid seed use cases: %w", err)
	}

	return Seed{
		Config:   cfg,
		Registry: registry,
		Ledger:   NormalizeLedger(cfg.Ledger(), today),
	}, nil
}
