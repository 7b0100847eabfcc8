/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Seednode/chaoskitchen/kitchen"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	abilities       bool
	abilityDuration time.Duration
	actionBurst     int
	actionRate      float64
	bind            string
	catalog         string
	levelPause      time.Duration
	levelTime       string
	maxPlayers      int
	minPlayers      int
	objectivePolicy string
	objectiveTTL    time.Duration
	plateLimit      int
	platePass       string
	port            int
	prefix          string
	profile         bool
	sessionTimeout  time.Duration
	spawnMode       string
	tick            time.Duration
	tlsCert         string
	tlsKey          string
	verbose         bool
	version         bool

	logger zerolog.Logger
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.actionRate <= 0 {
		return fmt.Errorf("invalid action rate (must be positive): %v", c.actionRate)
	}
	if c.actionBurst < 1 {
		return fmt.Errorf("invalid action burst (must be at least 1): %d", c.actionBurst)
	}
	if c.catalog != "" {
		if _, err := os.Stat(c.catalog); err != nil {
			return fmt.Errorf("catalog file: %w", err)
		}
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// gameOptions turns the flags into engine options, loading the catalog
// override if one was given.
func (c *Config) gameOptions() (kitchen.Options, error) {
	opts := kitchen.DefaultOptions()

	opts.MaxPlayers = c.maxPlayers
	opts.MinPlayers = c.minPlayers
	opts.PlateLimit = c.plateLimit
	opts.Tick = c.tick
	opts.LevelPause = c.levelPause
	opts.AbilityDuration = c.abilityDuration
	opts.ObjectiveTTL = c.objectiveTTL
	opts.IdleTimeout = c.sessionTimeout
	opts.Abilities = c.abilities
	opts.PlatePass = kitchen.PlatePassPolicy(c.platePass)
	opts.LevelTime = kitchen.LevelTimeMode(c.levelTime)
	opts.Spawn = kitchen.SpawnMode(c.spawnMode)
	opts.Objectives = kitchen.ObjectivePolicy(c.objectivePolicy)
	opts.Logger = c.logger.With().Str("component", "kitchen").Logger()

	if c.catalog != "" {
		catalog, err := kitchen.LoadCatalog(c.catalog)
		if err != nil {
			return opts, err
		}
		opts.Catalog = catalog

		logf(c, "CATALOG: Loaded %d recipes, %d abilities and %d levels from %s",
			len(catalog.Recipes), len(catalog.Abilities), len(catalog.Levels), c.catalog)
	}

	return opts, opts.Validate()
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("KITCHEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "chaoskitchen",
		Short:         "A cooperative real-time kitchen party game, served over websockets.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	defaults := kitchen.DefaultOptions()

	fs.BoolVar(&cfg.abilities, "abilities", defaults.Abilities, "hand out station abilities (env: KITCHEN_ABILITIES)")
	fs.DurationVar(&cfg.abilityDuration, "ability-duration", defaults.AbilityDuration, "time an ability takes to transform an ingredient (env: KITCHEN_ABILITY_DURATION)")
	fs.IntVar(&cfg.actionBurst, "action-burst", 40, "messages a connection may send in a burst (env: KITCHEN_ACTION_BURST)")
	fs.Float64Var(&cfg.actionRate, "action-rate", 20, "sustained messages per second allowed per connection (env: KITCHEN_ACTION_RATE)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: KITCHEN_BIND)")
	fs.StringVar(&cfg.catalog, "catalog", "", "path to a json recipe catalog, replacing the built-in menu (env: KITCHEN_CATALOG)")
	fs.DurationVar(&cfg.levelPause, "level-pause", defaults.LevelPause, "pause between levels (env: KITCHEN_LEVEL_PAUSE)")
	fs.StringVar(&cfg.levelTime, "level-time", string(defaults.LevelTime), "how a new level sets the clock: replace or add (env: KITCHEN_LEVEL_TIME)")
	fs.IntVar(&cfg.maxPlayers, "max-players", defaults.MaxPlayers, "maximum players per room (env: KITCHEN_MAX_PLAYERS)")
	fs.IntVar(&cfg.minPlayers, "min-players", defaults.MinPlayers, "a running game ends when fewer players remain (env: KITCHEN_MIN_PLAYERS)")
	fs.StringVar(&cfg.objectivePolicy, "objective-policy", string(defaults.Objectives), "recipe selection: weighted or uniform (env: KITCHEN_OBJECTIVE_POLICY)")
	fs.DurationVar(&cfg.objectiveTTL, "objective-ttl", 0, "time before an unfinished order expires, 0 to disable (env: KITCHEN_OBJECTIVE_TTL)")
	fs.IntVar(&cfg.plateLimit, "plate-limit", defaults.PlateLimit, "maximum ingredients on a plate (env: KITCHEN_PLATE_LIMIT)")
	fs.StringVar(&cfg.platePass, "plate-pass", string(defaults.PlatePass), "passing a plate: reject or clear (env: KITCHEN_PLATE_PASS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: KITCHEN_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: KITCHEN_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: KITCHEN_PROFILE)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", defaults.IdleTimeout, "time before idle rooms are closed (env: KITCHEN_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.spawnMode, "spawn-mode", string(defaults.Spawn), "who gets ingredients on a spawn: each or single (env: KITCHEN_SPAWN_MODE)")
	fs.DurationVar(&cfg.tick, "tick", defaults.Tick, "game loop interval (env: KITCHEN_TICK)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: KITCHEN_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: KITCHEN_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: KITCHEN_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: KITCHEN_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("chaoskitchen v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
