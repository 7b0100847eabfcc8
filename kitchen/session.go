/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"context"
	"slices"
	"time"
)

type Objective struct {
	Name      string
	ExpiresAt time.Time // zero when objectives never expire
}

func (o *Objective) expired(now time.Time) bool {
	return o != nil && !o.ExpiresAt.IsZero() && !now.Before(o.ExpiresAt)
}

// Processing is an ability transformation in progress.
type Processing struct {
	Input  string
	Output string
	DoneAt time.Time
}

type PlayerState struct {
	Plate      Plate
	Objective  *Objective
	Ability    string
	Processing *Processing
}

// Session is the state of one game in a room. It is only touched while the
// owning room's lock is held.
type Session struct {
	active   bool
	level    int
	score    int
	total    int
	target   int
	timeLeft int

	order   []string // circular seating, defines neighbors
	players map[string]*PlayerState

	lastSpawn  time.Time
	spawnEvery time.Duration

	cancelLoop context.CancelFunc
	resume     Timer
}

func newSession(order []string) *Session {
	s := &Session{
		order:   order,
		players: make(map[string]*PlayerState, len(order)),
	}
	for _, id := range order {
		s.players[id] = &PlayerState{Plate: EmptyPlate()}
	}
	return s
}

func (s *Session) seating() []string { return slices.Clone(s.order) }

// playerCopy returns a copy of the state for conn.
func (s *Session) playerCopy(conn string) (PlayerState, bool) {
	ps, ok := s.players[conn]
	if !ok {
		return PlayerState{}, false
	}
	return *ps, true
}

// neighbors resolves the seats to the left and right of conn. With fewer than
// two players both sides are conn itself.
func (s *Session) neighbors(conn string) (left, right string, ok bool) {
	i := slices.Index(s.order, conn)
	if i < 0 {
		return "", "", false
	}
	n := len(s.order)
	if n < 2 {
		return conn, conn, true
	}
	return s.order[(i-1+n)%n], s.order[(i+1)%n], true
}

func (s *Session) remove(conn string) bool {
	if _, ok := s.players[conn]; !ok {
		return false
	}
	delete(s.players, conn)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == conn })
	return true
}

// heldAbilities lists the abilities currently assigned, in seat order.
func (s *Session) heldAbilities() []string {
	var out []string
	for _, id := range s.order {
		if a := s.players[id].Ability; a != "" && !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

func (s *Session) stop() {
	if s.cancelLoop != nil {
		s.cancelLoop()
		s.cancelLoop = nil
	}
	if s.resume != nil {
		s.resume.Stop()
		s.resume = nil
	}
}

// applyLevel loads the parameters for level n. With LevelTimeAdd the new
// time budget is added to what is left on the clock.
func (s *Session) applyLevel(n int, l Level, mode LevelTimeMode, now time.Time) {
	s.level = n
	s.score = 0
	s.target = l.TargetScore
	s.spawnEvery = l.spawnEvery()
	s.lastSpawn = now
	if mode == LevelTimeAdd {
		s.timeLeft += l.Time
	} else {
		s.timeLeft = l.Time
	}
}

// assignAbilities deals one ability per player from the catalog pool, padded
// with "no ability" for any extra players.
func (m *Manager) assignAbilities(s *Session) {
	for _, id := range s.order {
		s.players[id].Ability = ""
		s.players[id].Processing = nil
	}
	if !m.opts.Abilities {
		return
	}

	pool := m.opts.Catalog.AbilityNames()
	for len(pool) < len(s.order) {
		pool = append(pool, "")
	}
	m.opts.Rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	for i, id := range s.order {
		s.players[id].Ability = pool[i]
	}
}

// assignObjective hands ps a new recipe to cook.
func (m *Manager) assignObjective(s *Session, ps *PlayerState, now time.Time) {
	cat := m.opts.Catalog

	var choices []string
	if m.opts.Objectives == ObjectivesWeighted {
		choices = cat.ReachableRecipes(s.heldAbilities())
	}
	if len(choices) == 0 {
		choices = cat.RecipeNames()
	}

	obj := &Objective{Name: pick(m.opts.Rand, choices)}
	if m.opts.ObjectiveTTL > 0 {
		obj.ExpiresAt = now.Add(m.opts.ObjectiveTTL)
	}
	ps.Objective = obj
}
