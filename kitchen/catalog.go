/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sauerbraten/jsonfile"
)

// Recipe is a dish a player can be asked to assemble.
type Recipe struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Points      int      `json:"points"`
	TimeBonus   int      `json:"time_bonus"`
}

// Ability turns one ingredient into another at a player's station.
type Ability struct {
	Name            string            `json:"name"`
	Verb            string            `json:"verb"`
	Transformations map[string]string `json:"transformations"`
}

// Level holds the parameters for one stage of a session.
type Level struct {
	TargetScore   int `json:"target_score"`
	Time          int `json:"time"`
	SpawnInterval int `json:"spawn_interval"`
}

func (l Level) spawnEvery() time.Duration {
	return time.Duration(l.SpawnInterval) * time.Second
}

// Catalog is the static game content. Call index (via NewCatalog or
// LoadCatalog) before use; the lookup helpers rely on the derived tables.
type Catalog struct {
	Recipes   []Recipe  `json:"recipes"`
	Abilities []Ability `json:"abilities"`
	Levels    []Level   `json:"levels"`

	recipes     map[string]*Recipe
	abilities   map[string]*Ability
	normal      []string            // recipes needing no transformed ingredient
	byAbility   map[string][]string // ability -> transformed recipes it unlocks
	baseOf      map[string]string   // transformed ingredient -> input ingredient
	producer    map[string]string   // transformed ingredient -> ability name
	ingredients []string            // every ingredient any recipe uses
}

var errEmptyCatalog = errors.New("catalog needs at least one recipe and one level")

// NewCatalog validates the content and builds the lookup tables.
func NewCatalog(recipes []Recipe, abilities []Ability, levels []Level) (*Catalog, error) {
	c := &Catalog{Recipes: recipes, Abilities: abilities, Levels: levels}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCatalog reads a catalog from a JSON file. Lines starting with // are
// treated as comments.
func LoadCatalog(path string) (*Catalog, error) {
	c := &Catalog{}
	if err := jsonfile.ParseFile(path, c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := c.index(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) index() error {
	if len(c.Recipes) == 0 || len(c.Levels) == 0 {
		return errEmptyCatalog
	}

	c.recipes = make(map[string]*Recipe, len(c.Recipes))
	c.abilities = make(map[string]*Ability, len(c.Abilities))
	c.byAbility = make(map[string][]string, len(c.Abilities))
	c.baseOf = make(map[string]string)
	c.producer = make(map[string]string)
	c.normal = nil
	c.ingredients = nil

	for i := range c.Abilities {
		a := &c.Abilities[i]
		if a.Name == "" {
			return fmt.Errorf("ability %d has no name", i)
		}
		if _, dup := c.abilities[a.Name]; dup {
			return fmt.Errorf("duplicate ability %q", a.Name)
		}
		c.abilities[a.Name] = a
		for in, out := range a.Transformations {
			c.baseOf[out] = in
			c.producer[out] = a.Name
		}
	}

	// Chained transformations collapse so baseOf always names something
	// that can be spawned.
	step := c.baseOf
	c.baseOf = make(map[string]string, len(step))
	for out := range step {
		base, visited := out, make(map[string]bool)
		for {
			in, ok := step[base]
			if !ok {
				break
			}
			if visited[base] {
				return fmt.Errorf("ability transformations loop through %q", out)
			}
			visited[base] = true
			base = in
		}
		c.baseOf[out] = base
	}

	seen := make(map[string]bool)
	for i := range c.Recipes {
		r := &c.Recipes[i]
		if r.Name == "" || len(r.Ingredients) == 0 {
			return fmt.Errorf("recipe %d needs a name and ingredients", i)
		}
		if _, dup := c.recipes[r.Name]; dup {
			return fmt.Errorf("duplicate recipe %q", r.Name)
		}
		r.Ingredients = slices.Clone(r.Ingredients)
		slices.Sort(r.Ingredients)
		c.recipes[r.Name] = r

		transformed := false
		for _, ing := range r.Ingredients {
			if !seen[ing] {
				seen[ing] = true
				c.ingredients = append(c.ingredients, ing)
			}
			if ability, ok := c.producer[ing]; ok {
				transformed = true
				if !slices.Contains(c.byAbility[ability], r.Name) {
					c.byAbility[ability] = append(c.byAbility[ability], r.Name)
				}
			}
		}
		if !transformed {
			c.normal = append(c.normal, r.Name)
		}
	}
	slices.Sort(c.ingredients)

	for i, l := range c.Levels {
		if l.TargetScore <= 0 || l.Time <= 0 || l.SpawnInterval < 0 {
			return fmt.Errorf("level %d has invalid parameters", i+1)
		}
	}

	return nil
}

// Recipe looks up a recipe by name.
func (c *Catalog) Recipe(name string) (*Recipe, bool) {
	r, ok := c.recipes[name]
	return r, ok
}

// Ability looks up an ability by name.
func (c *Catalog) Ability(name string) (*Ability, bool) {
	a, ok := c.abilities[name]
	return a, ok
}

// Level returns the parameters for level n, counted from 1.
func (c *Catalog) Level(n int) (Level, bool) {
	if n < 1 || n > len(c.Levels) {
		return Level{}, false
	}
	return c.Levels[n-1], true
}

// AbilityNames lists the abilities in catalog order.
func (c *Catalog) AbilityNames() []string {
	names := make([]string, 0, len(c.Abilities))
	for _, a := range c.Abilities {
		names = append(names, a.Name)
	}
	return names
}

// RecipeNames lists every recipe in catalog order.
func (c *Catalog) RecipeNames() []string {
	names := make([]string, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		names = append(names, r.Name)
	}
	return names
}

// ReachableRecipes returns the recipes that can be completed with the given
// abilities in play: every normal recipe plus the transformed recipes those
// abilities unlock.
func (c *Catalog) ReachableRecipes(abilities []string) []string {
	out := slices.Clone(c.normal)
	for _, name := range c.AbilityNames() {
		if !slices.Contains(abilities, name) {
			continue
		}
		for _, r := range c.byAbility[name] {
			if !slices.Contains(out, r) {
				out = append(out, r)
			}
		}
	}
	return out
}

// BaseOf maps a transformed ingredient back to the spawnable ingredient it
// is ultimately made from. Untransformed ingredients map to themselves.
func (c *Catalog) BaseOf(ingredient string) string {
	if base, ok := c.baseOf[ingredient]; ok {
		return base
	}
	return ingredient
}

// Producer names the ability that makes ingredient, or "" for base ones.
func (c *Catalog) Producer(ingredient string) string {
	return c.producer[ingredient]
}

// BaseIngredients lists what can be spawned to make every recipe.
func (c *Catalog) BaseIngredients() []string {
	var out []string
	for _, ing := range c.ingredients {
		if base := c.BaseOf(ing); !slices.Contains(out, base) {
			out = append(out, base)
		}
	}
	slices.Sort(out)
	return out
}

// DefaultCatalog is the built-in menu.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		[]Recipe{
			{Name: "Garden Salad", Ingredients: []string{"🥬", "🍅", "🥕"}, Points: 50, TimeBonus: 10},
			{Name: "Burger", Ingredients: []string{"🍞", "🥩", "🧀"}, Points: 100, TimeBonus: 15},
			{Name: "Sandwich", Ingredients: []string{"🍞", "🍖", "🥬"}, Points: 80, TimeBonus: 12},
			{Name: "Steak", Ingredients: []string{"🥩", "🥔", "🥕"}, Points: 150, TimeBonus: 20},
			{Name: "Fried Egg", Ingredients: []string{"🥚", "🥚"}, Points: 40, TimeBonus: 8},
			{Name: "Pizza", Ingredients: []string{"🍕", "🍄", "🧀", "🍖"}, Points: 200, TimeBonus: 25},
			{Name: "Tom Yum Goong", Ingredients: []string{"🦐", "🍄", "🌶️"}, Points: 170, TimeBonus: 22},
			{Name: "Pad Thai", Ingredients: []string{"🍜", "🦐", "🥜"}, Points: 160, TimeBonus: 21},
			{Name: "Fried Rice", Ingredients: []string{"🍚", "🥚", "🥕"}, Points: 90, TimeBonus: 13},
			{Name: "Green Curry", Ingredients: []string{"🍗", "🍆", "🥥"}, Points: 190, TimeBonus: 24},
			{Name: "Sushi", Ingredients: []string{"🍣", "🍚", "🐟"}, Points: 130, TimeBonus: 18},
			{Name: "Spaghetti", Ingredients: []string{"🍝", "🥫", "🥩"}, Points: 110, TimeBonus: 16},
			{Name: "Ice Cream", Ingredients: []string{"🍨", "🍒"}, Points: 35, TimeBonus: 7},
			{Name: "Fruit Bowl", Ingredients: []string{"🍓", "🍌", "🍎"}, Points: 30, TimeBonus: 5},

			{Name: "Big Breakfast", Ingredients: []string{"🍳", "🥓", "🍞"}, Points: 180, TimeBonus: 20},
			{Name: "Steak and Fries", Ingredients: []string{"🥓", "🍟", "🥗"}, Points: 220, TimeBonus: 25},
			{Name: "Seafood Boil", Ingredients: []string{"🦞", "🍄", "🌶️"}, Points: 200, TimeBonus: 22},
			{Name: "Healthy Salad", Ingredients: []string{"🥗", "🥒", "🍅"}, Points: 160, TimeBonus: 18},
			{Name: "Fried Chicken", Ingredients: []string{"🍗", "🍟"}, Points: 60, TimeBonus: 10},
			{Name: "Papaya Salad", Ingredients: []string{"🥗", "🌶️", "🍅", "🥜"}, Points: 140, TimeBonus: 19},
		},
		[]Ability{
			{Name: "Pan", Verb: "Frying", Transformations: map[string]string{"🥚": "🍳", "🥩": "🥓"}},
			{Name: "Pot", Verb: "Boiling", Transformations: map[string]string{"🦐": "🦞", "🥔": "🍟"}},
			{Name: "Cutting Board", Verb: "Chopping", Transformations: map[string]string{"🥬": "🥗", "🥕": "🥒"}},
		},
		[]Level{
			{TargetScore: 300, Time: 180, SpawnInterval: 4},
			{TargetScore: 500, Time: 180, SpawnInterval: 3},
			{TargetScore: 800, Time: 180, SpawnInterval: 3},
		},
	)
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return c
}
