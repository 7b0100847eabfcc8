/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Rand is the source for every random choice the engine makes: room codes,
// seat order, abilities, objectives and spawns.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a deterministic Rand for the given seed. It is safe for
// concurrent use.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewSeededRand seeds a Rand from crypto/rand.
func NewSeededRand() Rand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	return NewRand(binary.LittleEndian.Uint64(b[:]))
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(r Rand, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = codeAlphabet[r.IntN(len(codeAlphabet))]
	}
	return string(out)
}

func pick[T any](r Rand, from []T) T {
	return from[r.IntN(len(from))]
}
