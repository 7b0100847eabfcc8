/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// startLoopLocked launches the game loop for s, replacing any loop it
// already owns. r.mu must be held.
func (m *Manager) startLoopLocked(r *Room, s *Session) {
	if s.cancelLoop != nil {
		s.cancelLoop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelLoop = cancel

	ticker := m.opts.Clock.NewTicker(m.opts.Tick)
	go m.runLoop(ctx, ticker, r, s)
}

func (m *Manager) runLoop(ctx context.Context, ticker Ticker, r *Room, s *Session) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C():
			if !m.tick(ctx, r, s, now) {
				return
			}
		}
	}
}

// tick advances s by one interval and reports whether its loop should keep
// running. The loop stops as soon as it is cancelled or the room no longer
// holds s as a live session.
func (m *Manager) tick(ctx context.Context, r *Room, s *Session, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx.Err() != nil || r.liveSessionLocked() != s {
		return false
	}

	for _, id := range s.order {
		ps := s.players[id]
		if p := ps.Processing; p != nil && !now.Before(p.DoneAt) {
			m.send(id, EventReceiveItem, ReceiveItem{Item: Ingredient(p.Output)})
			ps.Processing = nil
		}
	}

	if m.opts.ObjectiveTTL > 0 {
		for _, id := range s.order {
			ps := s.players[id]
			if !ps.Objective.expired(now) {
				continue
			}
			old := ps.Objective.Name
			m.assignObjective(s, ps, now)
			m.send(id, EventShowAlert, Notice{
				Message: fmt.Sprintf("Too slow! %s expired, your new order is %s.", old, ps.Objective.Name),
			})
		}
	}

	s.timeLeft--

	if now.Sub(s.lastSpawn) > s.spawnEvery {
		m.spawnLocked(s)
		s.lastSpawn = now
	}

	if s.timeLeft <= 0 {
		m.broadcastLocked(r, EventGameOver, GameOver{
			TotalScore: s.total + s.score,
			Message:    "Time's up!",
		})
		r.endSessionLocked()
		m.log.Info().Str("room", r.code).Msg("game over, out of time")
		return false
	}

	m.broadcastStateLocked(r, s)
	return true
}

// spawnPool lists the base ingredients worth handing out: whatever the
// current objectives need, or the whole pantry when nobody has one.
func (m *Manager) spawnPool(s *Session) []string {
	cat := m.opts.Catalog

	var needed []string
	for _, id := range s.order {
		if o := s.players[id].Objective; o != nil {
			if recipe, ok := cat.Recipe(o.Name); ok {
				needed = append(needed, recipe.Ingredients...)
			}
		}
	}
	if len(needed) == 0 {
		needed = cat.BaseIngredients()
	}

	var pool []string
	for _, ing := range needed {
		if base := cat.BaseOf(ing); !slices.Contains(pool, base) {
			pool = append(pool, base)
		}
	}
	return pool
}

func (m *Manager) spawnLocked(s *Session) {
	pool := m.spawnPool(s)
	if len(pool) == 0 || len(s.order) == 0 {
		return
	}

	switch m.opts.Spawn {
	case SpawnSingle:
		id := pick(m.opts.Rand, s.order)
		m.send(id, EventReceiveItem, ReceiveItem{Item: Ingredient(pick(m.opts.Rand, pool))})
	default:
		for _, id := range s.order {
			m.send(id, EventReceiveItem, ReceiveItem{Item: Ingredient(pick(m.opts.Rand, pool))})
		}
	}
}
