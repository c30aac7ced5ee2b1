// Package idgen issues unique 64-bit identifiers for new entities.
package idgen

import (
	"fmt"

	"github.com/sony/sonyflake"

	"appforge/internal/domain/models"
)

// Generator wraps a Sonyflake instance. Construct once in the composition
// root and inject it; ids are unique per machine-id within the flake epoch.
type Generator struct {
	flake *sonyflake.Sonyflake
}

func New() (*Generator, error) {
	flake, err := sonyflake.New(sonyflake.Settings{})
	if err != nil {
		return nil, fmt.Errorf("init id generator: %w", err)
	}
	return &Generator{flake: flake}, nil
}

// NextID returns a fresh identifier.
func (g *Generator) NextID() (models.ID, error) {
	id, err := g.flake.NextID()
	if err != nil {
		return 0, fmt.Errorf("generate id: %w", err)
	}
	return models.ID(id), nil
}
