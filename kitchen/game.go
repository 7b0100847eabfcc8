/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"slices"
)

// resolveLocked finds the room an event is aimed at: the named room if a code
// was sent, otherwise the room conn is sitting in. m.mu must be held.
func (m *Manager) resolveLocked(conn, code string) (*Room, bool) {
	if code = normalizeCode(code); code == "" {
		code = m.conns[conn]
	}
	r, ok := m.rooms[code]
	return r, ok
}

// StartGame begins a session in the room. Only the host may start, and only
// when no game is already running; anything else is ignored.
func (m *Manager) StartGame(conn, code string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.resolveLocked(conn, code)
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.host != conn || r.session != nil {
		return false
	}

	now := m.opts.Clock.Now()
	level, ok := m.opts.Catalog.Level(1)
	if !ok {
		return false
	}

	// Fisher-Yates over the roster sets the seating.
	order := slices.Clone(r.roster)
	m.opts.Rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	s := newSession(order)
	s.applyLevel(1, level, LevelTimeReplace, now)
	m.assignAbilities(s)
	for _, id := range s.order {
		m.assignObjective(s, s.players[id], now)
	}
	s.active = true
	r.session = s
	r.lastActive = now

	view := m.viewLocked(r, s)
	for _, id := range s.order {
		left, right, _ := s.neighbors(id)
		m.send(id, EventGameStarted, GameStarted{
			InitialState:  view,
			YourSID:       id,
			YourName:      r.nameLocked(id),
			LeftNeighbor:  r.nameLocked(left),
			RightNeighbor: r.nameLocked(right),
		})
	}

	m.startLoopLocked(r, s)

	m.log.Info().Str("room", r.code).Int("players", len(order)).Msg("game started")

	return true
}
