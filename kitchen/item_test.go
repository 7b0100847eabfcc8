/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kitchen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemJSON(t *testing.T) {
	b, err := json.Marshal(Ingredient("🍅"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ingredient","name":"🍅"}`, string(b))

	b, err = json.Marshal(PlateItem(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"plate","contents":[]}`, string(b))

	var it Item
	require.NoError(t, json.Unmarshal([]byte(`{"type":"plate","contents":["🍞","🍳"]}`), &it))
	assert.Equal(t, KindPlate, it.Kind)
	assert.Equal(t, []string{"🍞", "🍳"}, it.Contents)

	err = json.Unmarshal([]byte(`{"type":"spoon"}`), &it)
	assert.ErrorIs(t, err, ErrUnknownItem)

	_, err = json.Marshal(Item{Kind: "spoon"})
	assert.Error(t, err)
}

func TestPlate(t *testing.T) {
	none := NoPlate()
	assert.False(t, none.Held())

	empty := EmptyPlate()
	assert.True(t, empty.Held())
	assert.Zero(t, empty.Len())

	src := []string{"🥬", "🍅"}
	p := PlateOf(src)
	src[0] = "🍌"
	assert.Equal(t, []string{"🥬", "🍅"}, p.Items(), "plate must not alias its input")
	assert.Equal(t, []string{"🍅", "🥬"}, p.sorted())

	for _, tt := range []struct {
		plate Plate
		want  string
	}{
		{NoPlate(), `null`},
		{EmptyPlate(), `[]`},
		{Plate{held: true}, `[]`},
		{PlateOf([]string{"🍨"}), `["🍨"]`},
	} {
		b, err := json.Marshal(tt.plate)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(b))

		var back Plate
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, tt.plate.Held(), back.Held())
		assert.Equal(t, tt.plate.Len(), back.Len())
		assert.ElementsMatch(t, tt.plate.Items(), back.Items())
	}

	var bad Plate
	assert.Error(t, json.Unmarshal([]byte(`{"items":[]}`), &bad))
}

func TestPlateInsideView(t *testing.T) {
	type view struct {
		Plate Plate `json:"plate"`
	}

	var v view
	require.NoError(t, json.Unmarshal([]byte(`{"plate":[]}`), &v))
	assert.True(t, v.Plate.Held())
	assert.Zero(t, v.Plate.Len())

	require.NoError(t, json.Unmarshal([]byte(`{"plate":null}`), &v))
	assert.False(t, v.Plate.Held())

	require.NoError(t, json.Unmarshal([]byte(`{"plate":["🍞","🍳"]}`), &v))
	assert.Equal(t, []string{"🍞", "🍳"}, v.Plate.Items())
}
