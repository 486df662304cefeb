package config

import (
	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

// StageDef is the yaml shape of one pipeline column
type StageDef struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// Transitions is the allowed-transition matrix keyed by origin stage id.
// An empty map allows every transition; a present key restricts that origin
// to the listed targets. The backend does not publish a canonical matrix,
// so this stays configuration rather than code.
type Transitions map[string][]string

// Allowed reports whether moving a deal from one stage to another is
// permitted by the configured matrix.
func (t Transitions) Allowed(from, to types.StageID) bool {
	if len(t) == 0 {
		return true
	}
	targets, ok := t[string(from)]
	if !ok {
		return true
	}
	for _, target := range targets {
		if types.StageID(target) == to {
			return true
		}
	}
	return false
}

// StageModels converts the configured stage definitions into domain stages,
// preserving the configured order.
func (c *Config) StageModels() []*models.Stage {
	stages := make([]*models.Stage, 0, len(c.Stages))
	for _, def := range c.Stages {
		stages = append(stages, &models.Stage{
			ID:    types.StageID(def.ID),
			Label: def.Label,
			Color: def.Color,
		})
	}
	return stages
}

func defaultStageDefs() []StageDef {
	stages := models.DefaultStages()
	defs := make([]StageDef, 0, len(stages))
	for _, s := range stages {
		defs = append(defs, StageDef{ID: string(s.ID), Label: s.Label, Color: s.Color})
	}
	return defs
}
