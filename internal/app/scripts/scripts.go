// Package scripts produces what-to-say guidance for an encounter scenario.
//
// Premium accounts get AI-generated scripts tailored to scenario, region and
// language; everyone else, and any generation failure, gets the built-in
// static catalog. The caller can always tell the two apart via Generated.
package scripts

import (
	"context"
	"time"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
)

// Script is one phrase with guidance on when to say it.
type Script struct {
	Text     string `json:"text"`
	Usage    string `json:"usage"`
	Priority string `json:"priority"`
}

// Advice is a full script set for a scenario.
type Advice struct {
	Scripts       []Script `json:"scripts"`
	Guidance      string   `json:"guidance"`
	StateSpecific string   `json:"stateSpecific"`

	Language string `json:"language"`

	// Generated is true for AI output, false for the static catalog.
	Generated   bool      `json:"generated"`
	GeneratedAt time.Time `json:"timestamp"`
}

// Request describes what to generate scripts for.
type Request struct {
	Scenario models.EncounterType
	Region   string
	Language string
}

// Provider generates scripts on demand.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Advice, error)
}
