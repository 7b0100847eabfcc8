/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import "time"

// StateView is the session snapshot sent to clients, enriched with every
// player's objective for display.
type StateView struct {
	IsActive    bool                  `json:"is_active"`
	Level       int                   `json:"level"`
	Score       int                   `json:"score"`
	TotalScore  int                   `json:"total_score"`
	TargetScore int                   `json:"target_score"`
	TimeLeft    int                   `json:"time_left"`
	PlayerOrder []string              `json:"player_order_sids"`
	Players     map[string]PlayerView `json:"players_state"`

	AllPlayerObjectives []ObjectiveView `json:"all_player_objectives"`
}

type PlayerView struct {
	Plate             Plate           `json:"plate"`
	Objective         *ObjectiveRef   `json:"objective"`
	Ability           *string         `json:"ability"`
	AbilityProcessing *ProcessingView `json:"ability_processing"`
}

type ObjectiveRef struct {
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ProcessingView struct {
	Input   string    `json:"input"`
	Output  string    `json:"output"`
	EndTime time.Time `json:"end_time"`
}

type ObjectiveView struct {
	PlayerName    string           `json:"player_name"`
	ObjectiveName string           `json:"objective_name"`
	Ingredients   []IngredientHint `json:"ingredients"`
	Points        int              `json:"points"`
}

// IngredientHint names a recipe ingredient and, for transformed ones, the
// ability and base ingredient that produce it.
type IngredientHint struct {
	Name string `json:"name"`
	Hint string `json:"hint,omitempty"`
	Base string `json:"base,omitempty"`
}

// viewLocked builds the augmented snapshot. r.mu must be held.
func (m *Manager) viewLocked(r *Room, s *Session) *StateView {
	cat := m.opts.Catalog

	v := &StateView{
		IsActive:    s.active,
		Level:       s.level,
		Score:       s.score,
		TotalScore:  s.total,
		TargetScore: s.target,
		TimeLeft:    s.timeLeft,
		PlayerOrder: s.seating(),
		Players:     make(map[string]PlayerView, len(s.players)),

		AllPlayerObjectives: []ObjectiveView{},
	}

	for _, id := range s.order {
		ps := s.players[id]

		pv := PlayerView{Plate: ps.Plate}
		if ps.Ability != "" {
			ability := ps.Ability
			pv.Ability = &ability
		}
		if p := ps.Processing; p != nil {
			pv.AbilityProcessing = &ProcessingView{Input: p.Input, Output: p.Output, EndTime: p.DoneAt}
		}

		if o := ps.Objective; o != nil {
			ref := &ObjectiveRef{Name: o.Name}
			if !o.ExpiresAt.IsZero() {
				at := o.ExpiresAt
				ref.ExpiresAt = &at
			}
			pv.Objective = ref

			if recipe, ok := cat.Recipe(o.Name); ok {
				hints := make([]IngredientHint, 0, len(recipe.Ingredients))
				for _, ing := range recipe.Ingredients {
					h := IngredientHint{Name: ing, Hint: cat.Producer(ing)}
					if h.Hint != "" {
						h.Base = cat.BaseOf(ing)
					}
					hints = append(hints, h)
				}
				v.AllPlayerObjectives = append(v.AllPlayerObjectives, ObjectiveView{
					PlayerName:    r.nameLocked(id),
					ObjectiveName: o.Name,
					Ingredients:   hints,
					Points:        recipe.Points,
				})
			}
		}

		v.Players[id] = pv
	}

	return v
}

func (m *Manager) broadcastStateLocked(r *Room, s *Session) {
	m.broadcastLocked(r, EventUpdateGameState, m.viewLocked(r, s))
}

// State returns the current augmented snapshot for the room, or nil when no
// game is in progress.
func (m *Manager) State(code string) *StateView {
	r, ok := m.Room(normalizeCode(code))
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil
	}
	return m.viewLocked(r, r.session)
}
