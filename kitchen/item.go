/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"encoding/json"
	"fmt"
	"slices"
)

type ItemKind string

const (
	KindIngredient ItemKind = "ingredient"
	KindPlate      ItemKind = "plate"
)

// Item is something a player can hold on their conveyor: a single
// ingredient, or a plate with its contents.
type Item struct {
	Kind     ItemKind
	Name     string   // ingredient only
	Contents []string // plate only
}

func Ingredient(name string) Item { return Item{Kind: KindIngredient, Name: name} }

func PlateItem(contents []string) Item {
	return Item{Kind: KindPlate, Contents: slices.Clone(contents)}
}

type wireItem struct {
	Type     ItemKind `json:"type"`
	Name     string   `json:"name,omitempty"`
	Contents []string `json:"contents,omitempty"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	switch i.Kind {
	case KindIngredient:
		return json.Marshal(wireItem{Type: i.Kind, Name: i.Name})
	case KindPlate:
		contents := i.Contents
		if contents == nil {
			contents = []string{}
		}
		return json.Marshal(struct {
			Type     ItemKind `json:"type"`
			Contents []string `json:"contents"`
		}{i.Kind, contents})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, i.Kind)
	}
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case KindIngredient:
		*i = Ingredient(w.Name)
	case KindPlate:
		*i = PlateItem(w.Contents)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownItem, w.Type)
	}
	return nil
}

// Plate is what a player is holding at their station. The zero value is
// "no plate", which is distinct from an empty plate.
type Plate struct {
	held  bool
	items []string
}

func NoPlate() Plate { return Plate{} }
func EmptyPlate() Plate { return Plate{held: true, items: []string{}} }

func PlateOf(items []string) Plate {
	return Plate{held: true, items: slices.Clone(items)}
}

func (p Plate) Held() bool { return p.held }
func (p Plate) Len() int { return len(p.items) }
func (p Plate) Items() []string { return slices.Clone(p.items) }

// sorted returns the plate contents in comparison order.
func (p Plate) sorted() []string {
	s := slices.Clone(p.items)
	slices.Sort(s)
	return s
}

// MarshalJSON encodes "no plate" as null and a held plate as its items.
func (p Plate) MarshalJSON() ([]byte, error) {
	if !p.held {
		return []byte("null"), nil
	}
	if p.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.items)
}

// UnmarshalJSON reverses MarshalJSON: null is no plate, an array is a held
// plate with those items.
func (p *Plate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = NoPlate()
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = []string{}
	}
	*p = PlateOf(items)
	return nil
}
