package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"gopkg.in/yaml.v3"
)

// SeedData is the content of a seed file. Keys follow the JSON field names of the models.
type SeedData struct {
	Profile      *models.AdminProfile   `json:"profile"`
	Services     []models.Service       `json:"services"`
	Tools        []models.Tool          `json:"tools"`
	Timeline     []models.TimelineEvent `json:"timeline"`
	Testimonials []models.Testimonial   `json:"testimonials"`
	Portfolio    []models.PortfolioItem `json:"portfolio"`
}

// LoadSeedFile parses a YAML seed file.
func LoadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes YAML into SeedData. The document is round-tripped through
// JSON so that the models' json tags define the accepted keys.
func ParseSeed(raw []byte) (*SeedData, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert seed: %w", err)
	}
	var data SeedData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &data, nil
}

// Seed writes data into the owner's collections. Collections that already hold
// records are left alone, so seeding is safe to repeat.
func Seed(ctx context.Context, s *store.Stores, owner string, data *SeedData) error {
	if data == nil {
		return nil
	}
	if data.Profile != nil {
		if _, err := s.Profiles.Get(ctx, owner, owner); errors.Is(err, store.ErrNotFound) {
			p := *data.Profile
			p.ID = owner
			if err := s.Profiles.Save(ctx, owner, &p); err != nil {
				return fmt.Errorf("seed profile: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
	}
	if err := seedCollection(ctx, s.Services, owner, data.Services); err != nil {
		return fmt.Errorf("seed services: %w", err)
	}
	if err := seedCollection(ctx, s.Tools, owner, data.Tools); err != nil {
		return fmt.Errorf("seed tools: %w", err)
	}
	if err := seedCollection(ctx, s.Timeline, owner, data.Timeline); err != nil {
		return fmt.Errorf("seed timeline: %w", err)
	}
	if err := seedCollection(ctx, s.Testimonials, owner, data.Testimonials); err != nil {
		return fmt.Errorf("seed testimonials: %w", err)
	}
	if err := seedCollection(ctx, s.Portfolio, owner, data.Portfolio); err != nil {
		return fmt.Errorf("seed portfolio: %w", err)
	}
	return nil
}

func seedCollection[T any](ctx context.Context, c store.Collection[T], owner string, recs []T) error {
	if len(recs) == 0 {
		return nil
	}
	existing, err := c.List(ctx, owner, store.Query{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range recs {
		if err := c.Save(ctx, owner, &recs[i]); err != nil {
			return err
		}
	}
	return nil
}
