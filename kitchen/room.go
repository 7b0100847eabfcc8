/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"slices"
	"sync"
	"time"
)

// Room is a lobby and, once started, the home of one game session. All
// fields are guarded by mu.
type Room struct {
	mu sync.Mutex

	code       string
	host       string
	roster     []string          // connection ids in join order
	names      map[string]string // connection id -> display name
	session    *Session
	closed     bool
	lastActive time.Time
}

func newRoom(code, host, name string, now time.Time) *Room {
	return &Room{
		code:       code,
		host:       host,
		roster:     []string{host},
		names:      map[string]string{host: name},
		lastActive: now,
	}
}

// Code returns the room's join code.
func (r *Room) Code() string { return r.code }

func (r *Room) hasMemberLocked(conn string) bool {
	_, ok := r.names[conn]
	return ok
}

func (r *Room) addMemberLocked(conn, name string) {
	if r.hasMemberLocked(conn) {
		r.names[conn] = name
		return
	}
	r.roster = append(r.roster, conn)
	r.names[conn] = name
}

func (r *Room) removeMemberLocked(conn string) bool {
	if !r.hasMemberLocked(conn) {
		return false
	}
	delete(r.names, conn)
	r.roster = slices.DeleteFunc(r.roster, func(id string) bool { return id == conn })
	return true
}

func (r *Room) nameLocked(conn string) string {
	if name, ok := r.names[conn]; ok {
		return name
	}
	return "???"
}

func (r *Room) lobbyLocked() LobbyUpdate {
	players := make([]LobbyPlayer, 0, len(r.roster))
	for _, id := range r.roster {
		players = append(players, LobbyPlayer{SID: id, Name: r.names[id]})
	}
	return LobbyUpdate{Players: players, HostSID: r.host, RoomID: r.code}
}

// liveSessionLocked returns the session only while it is running.
func (r *Room) liveSessionLocked() *Session {
	if r.closed || r.session == nil || !r.session.active {
		return nil
	}
	return r.session
}

// endSessionLocked stops any running loop or pending level resume and
// detaches the session from the room.
func (r *Room) endSessionLocked() {
	if r.session == nil {
		return
	}
	r.session.active = false
	r.session.stop()
	r.session = nil
}
