/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"strings"
)

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName
	}
	return name
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateRoom opens a new room with conn as its only player and host. A
// connection already sitting in another room leaves it first.
func (m *Manager) CreateRoom(conn, name string) string {
	name = normalizeName(name)
	now := m.opts.Clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.leaveLocked(conn)

	code := m.newCodeLocked()
	r := newRoom(code, conn, name, now)
	m.rooms[code] = r
	m.conns[conn] = code

	r.mu.Lock()
	defer r.mu.Unlock()

	m.send(conn, EventRoomCreated, RoomJoined{RoomID: code, IsHost: true})
	m.broadcastLocked(r, EventUpdateLobby, r.lobbyLocked())

	m.log.Info().Str("room", code).Str("player", name).Msg("room created")

	return code
}

// JoinRoom adds conn to the room with the given code. Failures are reported
// to conn with an error_message event and returned.
func (m *Manager) JoinRoom(conn, name, code string) error {
	name = normalizeName(name)
	code = normalizeCode(code)

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[code]
	if !ok {
		m.send(conn, EventErrorMessage, Notice{Message: ErrRoomNotFound.Error()})
		return ErrRoomNotFound
	}

	r.mu.Lock()
	rejoin := r.hasMemberLocked(conn)
	var err error
	switch {
	case rejoin:
	case r.session != nil:
		err = ErrGameAlreadyStarted
	case len(r.roster) >= m.opts.MaxPlayers:
		err = ErrRoomFull
	}
	r.mu.Unlock()

	if err != nil {
		m.send(conn, EventErrorMessage, Notice{Message: err.Error()})
		return err
	}

	if !rejoin {
		m.leaveLocked(conn)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.addMemberLocked(conn, name)
	r.lastActive = m.opts.Clock.Now()
	m.conns[conn] = code

	m.send(conn, EventJoinSuccess, RoomJoined{RoomID: code, IsHost: r.host == conn})
	m.broadcastLocked(r, EventUpdateLobby, r.lobbyLocked())

	m.log.Info().Str("room", code).Str("player", name).Int("players", len(r.roster)).Msg("player joined")

	return nil
}

// Leave removes conn from whatever room it is in. It is safe to call for
// connections that never joined or have already left.
func (m *Manager) Leave(conn string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leaveLocked(conn)
}

// leaveLocked does the work of Leave. m.mu must be held for writing.
func (m *Manager) leaveLocked(conn string) bool {
	code, ok := m.conns[conn]
	if !ok {
		return false
	}
	delete(m.conns, conn)

	r, ok := m.rooms[code]
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := r.nameLocked(conn)
	if !r.removeMemberLocked(conn) {
		return false
	}
	r.lastActive = m.opts.Clock.Now()

	m.log.Info().Str("room", code).Str("player", name).Msg("player left")

	if len(r.roster) == 0 {
		m.closeRoomLocked(code, r)
		m.log.Info().Str("room", code).Msg("room empty, removed")
		return true
	}

	if s := r.session; s != nil && s.remove(conn) {
		if len(s.order) < m.opts.MinPlayers {
			m.broadcastLocked(r, EventGameOver, GameOver{
				TotalScore: s.total + s.score,
				Message:    "Not enough players left to keep cooking. Game over!",
			})
			r.endSessionLocked()
			m.log.Info().Str("room", code).Msg("game ended, not enough players")
		} else {
			m.sendNeighborsLocked(r, s)
			m.broadcastStateLocked(r, s)
		}
	}

	if r.host == conn {
		r.host = r.roster[0]
		m.broadcastLocked(r, EventNewHost, NewHost{HostSID: r.host})
	}

	m.broadcastLocked(r, EventUpdateLobby, r.lobbyLocked())

	return true
}

// sendNeighborsLocked tells every seated player who sits on either side.
func (m *Manager) sendNeighborsLocked(r *Room, s *Session) {
	for _, id := range s.order {
		left, right, _ := s.neighbors(id)
		m.send(id, EventUpdateNeighbors, Neighbors{
			LeftNeighbor:  r.nameLocked(left),
			RightNeighbor: r.nameLocked(right),
		})
	}
}
