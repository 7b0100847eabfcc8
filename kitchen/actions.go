/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"fmt"
	"slices"
)

type ActionType string

const (
	ActionPassItem         ActionType = "pass_item"
	ActionAddToPlate       ActionType = "add_to_plate"
	ActionTakeFromConveyor ActionType = "take_from_conveyor"
	ActionTrashItem        ActionType = "trash_item"
	ActionGetEmptyPlate    ActionType = "get_empty_plate"
	ActionSubmitOrder      ActionType = "submit_order"
)

type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// Action is a player_action payload.
type Action struct {
	Type             ActionType `json:"type"`
	Direction        Direction  `json:"direction,omitempty"`
	Item             *Item      `json:"item,omitempty"`
	NewPlateContents []string   `json:"new_plate_contents,omitempty"`
}

// PlayerAction applies one action for conn. Rejections are reported to conn
// with action_fail and returned; stale or malformed actions (no such room,
// no running game, unknown player or action) are dropped and return nil.
func (m *Manager) PlayerAction(conn, code string, a Action) error {
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
	r.lastActive = m.opts.Clock.Now()

	var (
		err      error
		terminal bool
	)
	switch a.Type {
	case ActionPassItem:
		err = m.passItemLocked(s, conn, ps, a)
	case ActionAddToPlate:
		err = m.addToPlate(ps, a.NewPlateContents)
	case ActionTakeFromConveyor:
		err = m.takeFromConveyor(ps, a.Item)
	case ActionTrashItem:
		if a.Item != nil && a.Item.Kind == KindPlate {
			ps.Plate = NoPlate()
		}
	case ActionGetEmptyPlate:
		if !ps.Plate.Held() {
			ps.Plate = EmptyPlate()
		}
	case ActionSubmitOrder:
		terminal, err = m.submitOrderLocked(r, s, conn, ps)
	default:
		return nil
	}

	if err != nil {
		m.fail(conn, err)
	}
	if !terminal {
		m.broadcastStateLocked(r, s)
	}

	return err
}

// passItemLocked forwards an item to the neighbor on the requested side. The
// item itself is taken on trust from the client.
func (m *Manager) passItemLocked(s *Session, conn string, ps *PlayerState, a Action) error {
	if a.Item == nil {
		return nil
	}

	switch a.Item.Kind {
	case KindPlate:
		if m.opts.PlatePass == PlatePassReject {
			return ErrCannotPassPlate
		}
		ps.Plate = EmptyPlate()
	case KindIngredient:
	default:
		return nil
	}

	left, right, ok := s.neighbors(conn)
	if !ok {
		return nil
	}
	target := right
	if a.Direction == Left {
		target = left
	}

	m.send(target, EventReceiveItem, ReceiveItem{Item: *a.Item})
	return nil
}

func (m *Manager) addToPlate(ps *PlayerState, contents []string) error {
	if !ps.Plate.Held() {
		return nil
	}
	if len(contents) > m.opts.PlateLimit {
		return ErrPlateFull
	}
	ps.Plate = PlateOf(contents)
	return nil
}

func (m *Manager) takeFromConveyor(ps *PlayerState, item *Item) error {
	if item == nil {
		return nil
	}

	switch item.Kind {
	case KindPlate:
		if len(item.Contents) > m.opts.PlateLimit {
			return ErrPlateFull
		}
		ps.Plate = PlateOf(item.Contents)
	case KindIngredient:
		// Loose ingredients stay on the client's conveyor.
	}
	return nil
}

// submitOrderLocked checks the plate against the player's objective and
// scores it. terminal is true when the handler already sent the event that
// ends this state (level_complete or game_won).
func (m *Manager) submitOrderLocked(r *Room, s *Session, conn string, ps *PlayerState) (terminal bool, err error) {
	if !ps.Plate.Held() {
		return false, ErrNoPlate
	}
	if ps.Objective == nil {
		return false, nil
	}

	recipe, ok := m.opts.Catalog.Recipe(ps.Objective.Name)
	if !ok || !slices.Equal(ps.Plate.sorted(), recipe.Ingredients) {
		return false, ErrInvalidRecipeMatch
	}

	now := m.opts.Clock.Now()

	s.score += recipe.Points
	s.timeLeft = min(s.timeLeft+recipe.TimeBonus, m.opts.TimeCap)
	m.assignObjective(s, ps, now)
	ps.Plate = EmptyPlate()

	m.send(conn, EventActionSuccess, Ack{
		Message: fmt.Sprintf("%s served! (+%d points)", recipe.Name, recipe.Points),
		Sound:   soundSuccess,
	})

	if s.score < s.target {
		return false, nil
	}

	s.total += s.score

	next := s.level + 1
	if level, ok := m.opts.Catalog.Level(next); ok {
		m.completeLevelLocked(r, s, next, level)
		return true, nil
	}

	m.broadcastLocked(r, EventGameWon, GameWon{TotalScore: s.total})
	r.endSessionLocked()
	m.log.Info().Str("room", r.code).Int("total", s.total).Msg("game won")

	return true, nil
}

// completeLevelLocked pauses the session between levels. The next level
// starts after LevelPause unless the room or session goes away first.
func (m *Manager) completeLevelLocked(r *Room, s *Session, next int, level Level) {
	s.active = false
	if s.cancelLoop != nil {
		s.cancelLoop()
		s.cancelLoop = nil
	}

	m.broadcastLocked(r, EventLevelComplete, LevelComplete{
		Level:      s.level,
		LevelScore: s.score,
		TotalScore: s.total,
	})
	m.log.Info().Str("room", r.code).Int("level", s.level).Int("score", s.score).Msg("level complete")

	s.resume = m.opts.Clock.AfterFunc(m.opts.LevelPause, func() {
		m.startLevel(r, s, next, level)
	})
}

func (m *Manager) startLevel(r *Room, s *Session, n int, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.session != s || s.active {
		return
	}
	s.resume = nil

	now := m.opts.Clock.Now()
	s.applyLevel(n, level, m.opts.LevelTime, now)
	for _, id := range s.order {
		s.players[id].Plate = EmptyPlate()
	}
	m.assignAbilities(s)
	for _, id := range s.order {
		m.assignObjective(s, s.players[id], now)
	}

	m.broadcastLocked(r, EventClearAllItems, struct{}{})
	s.active = true
	m.broadcastLocked(r, EventStartNextLevel, m.viewLocked(r, s))

	m.startLoopLocked(r, s)

	m.log.Info().Str("room", r.code).Int("level", n).Msg("level started")
}
