/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// PlatePassPolicy decides what happens when a player passes a plate.
type PlatePassPolicy string

const (
	PlatePassReject PlatePassPolicy = "reject" // refuse with action_fail
	PlatePassClear  PlatePassPolicy = "clear"  // forward it and give the passer an empty plate
)

// LevelTimeMode decides how the clock is set when a level starts.
type LevelTimeMode string

const (
	LevelTimeReplace LevelTimeMode = "replace"
	LevelTimeAdd     LevelTimeMode = "add"
)

// SpawnMode decides who receives ingredients on a spawn tick.
type SpawnMode string

const (
	SpawnEach   SpawnMode = "each"
	SpawnSingle SpawnMode = "single"
)

// ObjectivePolicy decides which recipes can be handed out.
type ObjectivePolicy string

const (
	ObjectivesWeighted ObjectivePolicy = "weighted" // only recipes the table can actually make
	ObjectivesUniform  ObjectivePolicy = "uniform"
)

const (
	codeLength  = 4
	defaultName = "Anonymous Chef"
)

type Options struct {
	MaxPlayers int
	MinPlayers int // below this many players a running game ends
	PlateLimit int
	TimeCap    int

	Tick            time.Duration
	LevelPause      time.Duration
	AbilityDuration time.Duration
	ObjectiveTTL    time.Duration // zero disables objective expiry
	IdleTimeout     time.Duration // zero disables the reaper

	Abilities  bool
	PlatePass  PlatePassPolicy
	LevelTime  LevelTimeMode
	Spawn      SpawnMode
	Objectives ObjectivePolicy

	Catalog *Catalog
	Rand    Rand
	Clock   Clock
	Logger  zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxPlayers:      8,
		MinPlayers:      1,
		PlateLimit:      6,
		TimeCap:         999,
		Tick:            time.Second,
		LevelPause:      5 * time.Second,
		AbilityDuration: 6 * time.Second,
		IdleTimeout:     60 * time.Minute,
		Abilities:       true,
		PlatePass:       PlatePassReject,
		LevelTime:       LevelTimeReplace,
		Spawn:           SpawnEach,
		Objectives:      ObjectivesWeighted,
		Logger:          zerolog.Nop(),
	}
}

// Validate checks option values and fills in the collaborators left nil.
func (o *Options) Validate() error {
	if o.MaxPlayers < 1 {
		return fmt.Errorf("max players must be at least 1, got %d", o.MaxPlayers)
	}
	if o.MinPlayers < 1 || o.MinPlayers > o.MaxPlayers {
		return fmt.Errorf("min players must be between 1 and %d, got %d", o.MaxPlayers, o.MinPlayers)
	}
	if o.PlateLimit < 1 {
		return fmt.Errorf("plate limit must be at least 1, got %d", o.PlateLimit)
	}
	if o.Tick <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", o.Tick)
	}

	switch o.PlatePass {
	case PlatePassReject, PlatePassClear:
	default:
		return fmt.Errorf("unknown plate pass policy %q", o.PlatePass)
	}
	switch o.LevelTime {
	case LevelTimeReplace, LevelTimeAdd:
	default:
		return fmt.Errorf("unknown level time mode %q", o.LevelTime)
	}
	switch o.Spawn {
	case SpawnEach, SpawnSingle:
	default:
		return fmt.Errorf("unknown spawn mode %q", o.Spawn)
	}
	switch o.Objectives {
	case ObjectivesWeighted, ObjectivesUniform:
	default:
		return fmt.Errorf("unknown objective policy %q", o.Objectives)
	}

	if o.TimeCap <= 0 {
		o.TimeCap = 999
	}
	if o.Catalog == nil {
		o.Catalog = DefaultCatalog()
	}
	if o.Rand == nil {
		o.Rand = NewSeededRand()
	}
	if o.Clock == nil {
		o.Clock = SystemClock()
	}

	return nil
}
