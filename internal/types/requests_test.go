package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextListAcceptsStringOrArray(t *testing.T) {
	tests := []struct {
		name string
		body string
		want TextList
	}{
		{"array", `{"instructions":["boil","serve"]}`, TextList{"boil", "serve"}},
		{"single string", `{"instructions":"Boil the water, then serve."}`, TextList{"Boil the water, then serve."}},
		{"null", `{"instructions":null}`, nil},
		{"absent", `{}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateRecipeRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.Instructions)
		})
	}

	var req CreateRecipeRequest
	assert.Error(t, json.Unmarshal([]byte(`{"ingredients":42}`), &req))
}

func TestCookingTimeAlias(t *testing.T) {
	var create CreateRecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"cookingTime":40}`), &create))
	assert.Equal(t, 40, create.Minutes())

	create = CreateRecipeRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"cooking_time":15,"cookingTime":40}`), &create))
	assert.Equal(t, 15, create.Minutes())

	var update UpdateRecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &update))
	assert.Nil(t, update.Minutes())

	require.NoError(t, json.Unmarshal([]byte(`{"cookingTime":0}`), &update))
	require.NotNil(t, update.Minutes())
	assert.Equal(t, 0, *update.Minutes())
}
