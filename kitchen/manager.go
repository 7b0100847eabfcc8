/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Manager owns every live room. Lock order is Manager.mu before Room.mu.
type Manager struct {
	opts   Options
	sender Sender
	log    zerolog.Logger

	mu    sync.RWMutex
	rooms map[string]*Room
	conns map[string]string // connection id -> room code
}

func NewManager(sender Sender, opts Options) (*Manager, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		opts:   opts,
		sender: sender,
		log:    opts.Logger,
		rooms:  make(map[string]*Room),
		conns:  make(map[string]string),
	}, nil
}

// Options returns the validated options the manager runs with.
func (m *Manager) Options() Options { return m.opts }

// Room looks up a live room by code.
func (m *Manager) Room(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

// RoomOf returns the room conn currently belongs to.
func (m *Manager) RoomOf(conn string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[m.conns[conn]]
	return r, ok
}

func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// newCodeLocked draws codes until one is free. m.mu must be held for writing.
func (m *Manager) newCodeLocked() string {
	for {
		code := randomCode(m.opts.Rand, codeLength)
		if _, taken := m.rooms[code]; !taken {
			return code
		}
		m.log.Debug().Str("code", code).Msg("room code collision, regenerating")
	}
}

func (m *Manager) send(conn, event string, data any) {
	m.sender.Send(conn, Message{Event: event, Data: data})
}

// broadcastLocked sends to every member of r. r.mu must be held.
func (m *Manager) broadcastLocked(r *Room, event string, data any) {
	for _, id := range r.roster {
		m.send(id, event, data)
	}
}

func (m *Manager) fail(conn string, err error) {
	m.send(conn, EventActionFail, Ack{Message: err.Error(), Sound: soundError})
}

// Run reaps idle rooms until ctx is done, then shuts the manager down.
func (m *Manager) Run(ctx context.Context) {
	if m.opts.IdleTimeout <= 0 {
		<-ctx.Done()
		m.Shutdown()
		return
	}

	ticker := m.opts.Clock.NewTicker(m.opts.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Shutdown()
			return
		case now := <-ticker.C():
			m.Reap(now)
		}
	}
}

// Reap closes rooms that have seen no player activity for IdleTimeout and
// are not in the middle of a game.
func (m *Manager) Reap(now time.Time) int {
	cutoff := now.Add(-m.opts.IdleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()

	reaped := 0
	for code, r := range m.rooms {
		r.mu.Lock()
		if r.session == nil && r.lastActive.Before(cutoff) {
			m.broadcastLocked(r, EventErrorMessage, Notice{Message: "This room was closed after sitting idle."})
			m.closeRoomLocked(code, r)
			reaped++
		}
		r.mu.Unlock()
	}

	if reaped > 0 {
		m.log.Info().Int("rooms", reaped).Msg("reaped idle rooms")
	}
	return reaped
}

// Shutdown stops every session and forgets every room.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for code, r := range m.rooms {
		r.mu.Lock()
		m.closeRoomLocked(code, r)
		r.mu.Unlock()
	}
}

// closeRoomLocked removes r from the registry. Both m.mu and r.mu must be held.
func (m *Manager) closeRoomLocked(code string, r *Room) {
	r.endSessionLocked()
	r.closed = true
	for _, id := range r.roster {
		if m.conns[id] == code {
			delete(m.conns, id)
		}
	}
	delete(m.rooms, code)
}
