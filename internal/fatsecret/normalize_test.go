package fatsecret

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

func TestToArray(t *testing.T) {
	assert.Nil(t, ToArray(nil))
	assert.Equal(t, []any{"a"}, ToArray("a"))
	assert.Equal(t, []any{"a", "b"}, ToArray([]any{"a", "b"}))
	assert.Equal(t, []any{map[string]any{"k": "v"}}, ToArray(map[string]any{"k": "v"}))
}

func TestPickPrimaryRecipeTotality(t *testing.T) {
	// Every sparse shape must yield nil or a single record, never a panic
	// and never an array.
	cases := []string{
		`{}`,
		`{"recipe":{}}`,
		`{"recipes":{}}`,
		`{"recipes":{"recipe":[]}}`,
		`{"recipes":{"recipe":{"recipe_id":"1"}}}`,
		`{"recipes":{"recipe":[{"recipe_id":"1"},{"recipe_id":"2"}]}}`,
	}
	for _, raw := range cases {
		rec := PickPrimaryRecipe(decode(t, raw))
		if rec != nil {
			_, isArray := any(rec).([]any)
			assert.False(t, isArray, raw)
		}
	}
	assert.Nil(t, PickPrimaryRecipe(nil))

	// Direct singular wins.
	rec := PickPrimaryRecipe(decode(t, `{"recipe":{"recipe_id":"7"}}`))
	assert.Equal(t, "7", asString(rec["recipe_id"]))

	// Plural array yields the first element.
	rec = PickPrimaryRecipe(decode(t, `{"recipes":{"recipe":[{"recipe_id":"1"},{"recipe_id":"2"}]}}`))
	assert.Equal(t, "1", asString(rec["recipe_id"]))

	// Collapsed single-element collection still yields the record.
	rec = PickPrimaryRecipe(decode(t, `{"recipes":{"recipe":{"recipe_id":"3"}}}`))
	assert.Equal(t, "3", asString(rec["recipe_id"]))
}

func TestPickPrimaryFood(t *testing.T) {
	rec := PickPrimaryFood(decode(t, `{"food":{"food_id":"42"}}`))
	assert.Equal(t, "42", asString(rec["food_id"]))
	assert.Nil(t, PickPrimaryFood(decode(t, `{}`)))
}

func TestPickImage(t *testing.T) {
	// Direct image wins.
	rec := decode(t, `{"recipe_image":"a.jpg","recipe_images":{"recipe_image":["b.jpg"]}}`)
	assert.Equal(t, "a.jpg", PickImage(rec))

	// First of the coerced collection otherwise, whether array or collapsed.
	rec = decode(t, `{"recipe_images":{"recipe_image":["b.jpg","c.jpg"]}}`)
	assert.Equal(t, "b.jpg", PickImage(rec))
	rec = decode(t, `{"recipe_images":{"recipe_image":"b.jpg"}}`)
	assert.Equal(t, "b.jpg", PickImage(rec))

	assert.Equal(t, "", PickImage(decode(t, `{}`)))
	assert.Equal(t, "", PickImage(nil))
}

func TestNormalizeIngredients(t *testing.T) {
	list := []any{
		"2 dl milk",
		map[string]any{"ingredient_description": "1 tbsp butter"},
		map[string]any{"number_of_units": "2", "measurement_description": "cups", "food_name": "flour"},
		map[string]any{"name": "salt"},
		map[string]any{"text": "  pepper  "},
		map[string]any{},
		"",
	}
	assert.Equal(t, []string{
		"2 dl milk",
		"1 tbsp butter",
		"2 cups flour",
		"salt",
		"pepper",
	}, NormalizeIngredients(list))

	// Numeric quantities compose without trailing zero noise.
	got := NormalizeIngredients([]any{
		decode(t, `{"number_of_units":2,"measurement_description":"cups","food_name":"flour"}`),
	})
	assert.Equal(t, []string{"2 cups flour"}, got)
}

func TestNormalizeCategories(t *testing.T) {
	list := []any{
		"Breakfast",
		map[string]any{"recipe_category_name": "Baked"},
		map[string]any{"name": " Dessert "},
		map[string]any{},
		"",
	}
	assert.Equal(t, []string{"Breakfast", "Baked", "Dessert"}, NormalizeCategories(list))
}

func TestNormalizeNutrition(t *testing.T) {
	// Dedicated nutrition object wins over serving fallback.
	rec := decode(t, `{
		"recipe_nutrition":{"calories":"320","carbohydrate":"40","fat":"10","protein":"12"},
		"serving_sizes":{"serving":{"calories":"999"}}
	}`)
	n := NormalizeNutrition(rec)
	assert.NotNil(t, n)
	assert.Equal(t, "320", n.Calories)

	// Serving fallback, including the collapsed single-object shape.
	rec = decode(t, `{"serving_sizes":{"serving":{"calories":"210","carbohydrate":"5","fat":"18","protein":"7"}}}`)
	n = NormalizeNutrition(rec)
	assert.NotNil(t, n)
	assert.Equal(t, "210", n.Calories)
	assert.Equal(t, "7", n.Protein)

	// Values arrive as provided, numeric included.
	rec = decode(t, `{"recipe_nutrition":{"calories":320}}`)
	n = NormalizeNutrition(rec)
	assert.Equal(t, float64(320), n.Calories)

	assert.Nil(t, NormalizeNutrition(decode(t, `{}`)))
	assert.Nil(t, NormalizeNutrition(nil))
}

func TestNormalizeDirections(t *testing.T) {
	rec := decode(t, `{"directions":{"direction":[
		{"direction_number":"2","direction_description":"Second listed first"},
		{"direction_number":"1","direction_description":" Trim me "},
		{"direction_number":"3","direction_description":"  "}
	]}}`)
	got := NormalizeDirections(rec)
	// Upstream order wins over step numbers; empty steps are dropped.
	assert.Equal(t, []Direction{
		{Number: "2", Text: "Second listed first"},
		{Number: "1", Text: "Trim me"},
	}, got)

	// Collapsed single direction.
	rec = decode(t, `{"directions":{"direction":{"direction_number":1,"direction_description":"Only step"}}}`)
	assert.Equal(t, []Direction{{Number: "1", Text: "Only step"}}, NormalizeDirections(rec))

	assert.Empty(t, NormalizeDirections(decode(t, `{}`)))
	assert.Empty(t, NormalizeDirections(nil))
}

func TestNormalizeRecipe(t *testing.T) {
	rec := decode(t, `{
		"recipe_id": 91,
		"recipe_name": "Oat Porridge",
		"recipe_description": "Plain porridge",
		"recipe_images": {"recipe_image": "porridge.jpg"},
		"recipe_ingredients": {"ingredient": {"ingredient_description": "1 dl oats"}},
		"recipe_types": {"recipe_type": "Breakfast"},
		"serving_sizes": {"serving": {"calories": "150", "protein": "5"}},
		"directions": {"direction": {"direction_number": "1", "direction_description": "Boil"}}
	}`)
	got := NormalizeRecipe(PickPrimaryRecipe(map[string]any{"recipe": rec}))
	assert.NotNil(t, got)
	assert.Equal(t, "91", got.ID)
	assert.Equal(t, "Oat Porridge", got.Name)
	assert.Equal(t, "Plain porridge", got.Description)
	assert.Equal(t, "porridge.jpg", got.Image)
	assert.Equal(t, []string{"1 dl oats"}, got.Ingredients)
	assert.Equal(t, []string{"Breakfast"}, got.Types)
	assert.Equal(t, "150", got.Nutrition.Calories)
	assert.Equal(t, []Direction{{Number: "1", Text: "Boil"}}, got.Directions)

	assert.Nil(t, NormalizeRecipe(nil))
}
