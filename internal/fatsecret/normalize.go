package fatsecret

import (
	"strconv"
	"strings"
)

// The FatSecret JSON serializer collapses one-element collections to a bare
// object, so every field that is logically a list must be array-coerced
// before use. ToArray is that single coercion point.

// ToArray coerces a value that may be absent, a single object or an array
// into an array.
func ToArray(v any) []any {
	if v == nil {
		return nil
	}
	if arr, ok := v.([]any); ok {
		return arr
	}
	return []any{v}
}

// Nutrition is the four-field nutrition summary of a recipe. Values are kept
// exactly as upstream provides them (string or numeric).
type Nutrition struct {
	Calories     any `json:"calories,omitempty"`
	Carbohydrate any `json:"carbohydrate,omitempty"`
	Fat          any `json:"fat,omitempty"`
	Protein      any `json:"protein,omitempty"`
}

// Direction is one numbered preparation step.
type Direction struct {
	Number string `json:"step_number"`
	Text   string `json:"text"`
}

// NormalizedRecipe is the stable internal shape of an upstream recipe record.
// It is computed per request and never persisted.
type NormalizedRecipe struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	Ingredients []string    `json:"ingredients"`
	Types       []string    `json:"types"`
	Nutrition   *Nutrition  `json:"nutrition,omitempty"`
	Directions  []Direction `json:"directions"`
}

// PickPrimaryRecipe extracts the single recipe record from a response that
// nests it under "recipe" or "recipes.recipe". Returns nil if absent.
func PickPrimaryRecipe(payload map[string]any) map[string]any {
	return pickPrimary(payload, "recipe", "recipes")
}

// PickPrimaryFood extracts the single food record from a response that nests
// it under "food" or "foods.food".
func PickPrimaryFood(payload map[string]any) map[string]any {
	return pickPrimary(payload, "food", "foods")
}

func pickPrimary(payload map[string]any, singular, plural string) map[string]any {
	if payload == nil {
		return nil
	}
	if rec := asMap(payload[singular]); rec != nil {
		return rec
	}
	wrapper := asMap(payload[plural])
	if wrapper == nil {
		return nil
	}
	arr := ToArray(wrapper[singular])
	if len(arr) == 0 {
		return nil
	}
	return asMap(arr[0])
}

// PickImage selects the first available image: the record's direct
// recipe_image, else the first entry of recipe_images.recipe_image.
func PickImage(rec map[string]any) string {
	if rec == nil {
		return ""
	}
	if img := asString(rec["recipe_image"]); img != "" {
		return img
	}
	wrapper := asMap(rec["recipe_images"])
	if wrapper == nil {
		return ""
	}
	arr := ToArray(wrapper["recipe_image"])
	if len(arr) == 0 {
		return ""
	}
	return asString(arr[0])
}

// NormalizeIngredients flattens a coerced ingredient list to strings,
// preserving order and dropping empty results.
func NormalizeIngredients(list []any) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		var s string
		switch {
		case isString(v):
			s = v.(string)
		default:
			m := asMap(v)
			switch {
			case m == nil:
			case asString(m["ingredient_description"]) != "":
				s = asString(m["ingredient_description"])
			case asString(m["food_name"]) != "" && asString(m["number_of_units"]) != "" && asString(m["measurement_description"]) != "":
				s = asString(m["number_of_units"]) + " " + asString(m["measurement_description"]) + " " + asString(m["food_name"])
			case asString(m["name"]) != "":
				s = asString(m["name"])
			default:
				s = asString(m["text"])
			}
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NormalizeCategories flattens a coerced category/type list to strings.
func NormalizeCategories(list []any) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		var s string
		switch {
		case isString(v):
			s = v.(string)
		default:
			m := asMap(v)
			switch {
			case m == nil:
				s = asString(v)
			case asString(m["recipe_category_name"]) != "":
				s = asString(m["recipe_category_name"])
			default:
				s = asString(m["name"])
			}
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NormalizeNutrition prefers the explicit recipe_nutrition object, else the
// first serving of serving_sizes. Nil when neither is present.
func NormalizeNutrition(rec map[string]any) *Nutrition {
	if rec == nil {
		return nil
	}
	src := asMap(rec["recipe_nutrition"])
	if src == nil {
		if wrapper := asMap(rec["serving_sizes"]); wrapper != nil {
			arr := ToArray(wrapper["serving"])
			if len(arr) > 0 {
				src = asMap(arr[0])
			}
		}
	}
	if src == nil {
		return nil
	}
	return &Nutrition{
		Calories:     src["calories"],
		Carbohydrate: src["carbohydrate"],
		Fat:          src["fat"],
		Protein:      src["protein"],
	}
}

// NormalizeDirections maps the coerced direction list to numbered steps,
// dropping steps with empty text. Upstream order is preserved even when it
// disagrees with the step numbers.
func NormalizeDirections(rec map[string]any) []Direction {
	if rec == nil {
		return nil
	}
	wrapper := asMap(rec["directions"])
	if wrapper == nil {
		return nil
	}
	arr := ToArray(wrapper["direction"])
	out := make([]Direction, 0, len(arr))
	for _, v := range arr {
		m := asMap(v)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(asString(m["direction_description"]))
		if text == "" {
			continue
		}
		out = append(out, Direction{
			Number: asString(m["direction_number"]),
			Text:   text,
		})
	}
	return out
}

// NormalizeRecipe assembles the full normalized shape from a single recipe
// record. Returns nil for a nil record.
func NormalizeRecipe(rec map[string]any) *NormalizedRecipe {
	if rec == nil {
		return nil
	}

	ingredientsSrc := collectionField(rec, "recipe_ingredients", "ingredient")
	if ingredientsSrc == nil {
		ingredientsSrc = collectionField(rec, "ingredients", "ingredient")
	}
	typesSrc := collectionField(rec, "recipe_types", "recipe_type")
	if typesSrc == nil {
		typesSrc = collectionField(rec, "recipe_categories", "recipe_category")
	}

	return &NormalizedRecipe{
		ID:          asString(rec["recipe_id"]),
		Name:        asString(rec["recipe_name"]),
		Description: asString(rec["recipe_description"]),
		Image:       PickImage(rec),
		Ingredients: NormalizeIngredients(ingredientsSrc),
		Types:       NormalizeCategories(typesSrc),
		Nutrition:   NormalizeNutrition(rec),
		Directions:  NormalizeDirections(rec),
	}
}

func collectionField(rec map[string]any, wrapper, field string) []any {
	w := asMap(rec[wrapper])
	if w == nil {
		return nil
	}
	if w[field] == nil {
		return nil
	}
	return ToArray(w[field])
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// asString renders scalar JSON values as strings; numbers keep their compact
// form ("2", not "2.000000").
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
