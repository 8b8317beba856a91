package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMealsRejectsMalformedJSON(t *testing.T) {
	_, err := ParseMeals([]byte(`{"not": "an array"`))
	assert.Error(t, err)
}

func TestParseMealsRejectsNamelessMeal(t *testing.T) {
	_, err := ParseMeals([]byte(`[{"calories": 400}]`))
	assert.Error(t, err)
}

func TestParseMealsAcceptsValidInput(t *testing.T) {
	meals, err := ParseMeals([]byte(`[{"name":"Breakfast","calories":450,"items":["oats","banana"]}]`))
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Breakfast", meals[0].Name)
	assert.Equal(t, 450, meals[0].Calories)
}

func TestParseMacrosRejectsNegativeValues(t *testing.T) {
	_, err := ParseMacros([]byte(`{"protein_g":-1,"carbs_g":200,"fat_g":60}`))
	assert.Error(t, err)
}

func TestParseMacrosEmptyInputIsNil(t *testing.T) {
	m, err := ParseMacros(nil)
	require.NoError(t, err)
	assert.Nil(t, m)
}
