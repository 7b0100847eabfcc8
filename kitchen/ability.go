/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import "fmt"

// UseAbility starts transforming item at conn's station. The result is
// delivered by the game loop once AbilityDuration has passed.
func (m *Manager) UseAbility(conn, code, item string) error {
	m.mu.RLock()
	r, ok := m.resolveLocked(conn, code)
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.liveSessionLocked()
	if s == nil {
		return nil
	}
	ps, ok := s.players[conn]
	if !ok {
		return nil
	}

	ability, err := m.checkAbility(ps, item)
	if err != nil {
		m.fail(conn, err)
		return err
	}

	now := m.opts.Clock.Now()
	r.lastActive = now
	ps.Processing = &Processing{
		Input:  item,
		Output: ability.Transformations[item],
		DoneAt: now.Add(m.opts.AbilityDuration),
	}

	m.broadcastStateLocked(r, s)
	m.send(conn, EventActionSuccess, Ack{
		Message: fmt.Sprintf("%s %s...", ability.Verb, item),
		Sound:   soundClick,
	})

	return nil
}

func (m *Manager) checkAbility(ps *PlayerState, item string) (*Ability, error) {
	if !m.opts.Abilities || ps.Ability == "" {
		return nil, ErrAbilityUnavailable
	}
	if ps.Processing != nil {
		return nil, ErrAbilityBusy
	}

	ability, ok := m.opts.Catalog.Ability(ps.Ability)
	if !ok {
		return nil, ErrAbilityUnavailable
	}
	if _, ok := ability.Transformations[item]; !ok {
		return nil, ErrInvalidIngredientForAbility
	}
	return ability, nil
}
