/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sent struct {
	conn string
	msg  Message
}

// recorder is a Sender that keeps everything it is handed.
type recorder struct {
	mu   sync.Mutex
	msgs []sent
}

func (r *recorder) Send(conn string, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, sent{conn, msg})
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}

func (r *recorder) events(conn string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.msgs {
		if s.conn == conn {
			out = append(out, s.msg.Event)
		}
	}
	return out
}

func (r *recorder) all(conn, event string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Message
	for _, s := range r.msgs {
		if s.conn == conn && s.msg.Event == event {
			out = append(out, s.msg)
		}
	}
	return out
}

func (r *recorder) count(conn, event string) int { return len(r.all(conn, event)) }

func (r *recorder) last(t *testing.T, conn, event string) Message {
	t.Helper()
	msgs := r.all(conn, event)
	require.NotEmpty(t, msgs, "no %s sent to %s", event, conn)
	return msgs[len(msgs)-1]
}

// fakeClock only moves when told to. Tickers never fire on their own and
// timers run when fire is called.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
	timers  []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) pending() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.isDone() {
			out = append(out, t)
		}
	}
	return out
}

// fire runs every pending timer.
func (c *fakeClock) fire() int {
	timers := c.pending()
	for _, t := range timers {
		t.run()
	}
	return len(timers)
}

func (c *fakeClock) ticker(i int) *fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickers[i]
}

type fakeTicker struct {
	c chan time.Time

	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type fakeTimer struct {
	d time.Duration
	f func()

	mu   sync.Mutex
	done bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := !t.done
	t.done = true
	return was
}

func (t *fakeTimer) isDone() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (t *fakeTimer) run() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	t.mu.Unlock()
	t.f()
}

// scriptedRand returns the scripted IntN values in order, then zeros.
// Shuffle leaves the order alone.
type scriptedRand struct {
	mu     sync.Mutex
	script []int
}

func (s *scriptedRand) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.script) == 0 {
		return 0
	}
	v := s.script[0]
	s.script = s.script[1:]
	return v % n
}

func (s *scriptedRand) Shuffle(int, func(i, j int)) {}

func newTestManager(t *testing.T, configure ...func(*Options)) (*Manager, *recorder, *fakeClock) {
	t.Helper()

	rec := &recorder{}
	clk := newFakeClock()

	opts := DefaultOptions()
	opts.Rand = NewRand(7)
	opts.Clock = clk
	for _, f := range configure {
		f(&opts)
	}

	m, err := NewManager(rec, opts)
	require.NoError(t, err)
	t.Cleanup(m.Shutdown)

	return m, rec, clk
}

// newLobby creates a room hosted by conns[0] and joins the rest.
func newLobby(t *testing.T, m *Manager, conns ...string) string {
	t.Helper()

	code := m.CreateRoom(conns[0], conns[0])
	for _, c := range conns[1:] {
		require.NoError(t, m.JoinRoom(c, c, code))
	}
	return code
}

// newGame starts a game with the given players and returns the room.
func newGame(t *testing.T, m *Manager, conns ...string) *Room {
	t.Helper()

	code := newLobby(t, m, conns...)
	require.True(t, m.StartGame(conns[0], code))

	r, ok := m.Room(code)
	require.True(t, ok)
	return r
}

// inSession runs f against the room's session under the room lock.
func inSession(t *testing.T, r *Room, f func(s *Session)) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotNil(t, r.session, "room %s has no session", r.code)
	f(r.session)
}

func setObjective(t *testing.T, r *Room, conn, recipe string) {
	t.Helper()
	inSession(t, r, func(s *Session) {
		s.players[conn].Objective = &Objective{Name: recipe}
	})
}

func setPlate(t *testing.T, r *Room, conn string, p Plate) {
	t.Helper()
	inSession(t, r, func(s *Session) {
		s.players[conn].Plate = p
	})
}

func player(t *testing.T, r *Room, conn string) PlayerState {
	t.Helper()
	var ps PlayerState
	inSession(t, r, func(s *Session) {
		var ok bool
		ps, ok = s.playerCopy(conn)
		require.True(t, ok)
	})
	return ps
}
