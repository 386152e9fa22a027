package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recruiter/internal/entities"
)

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, "Porto Alegre/RS", NormalizeValue(FieldCity, "  poa "))
	assert.Equal(t, "LinkedIn", NormalizeValue(FieldSource, "linked in"))
	assert.Equal(t, "Financeiro, Compras", NormalizeValue(FieldInterestAreas, " financeiro,, ,compras,"))
	assert.Equal(t, "(51) 99999-0000", NormalizeValue(FieldPhone, " (51) 99999-0000 "))
	assert.Equal(t, "", NormalizeValue(FieldCity, "   "))
}

func TestApplyValues(t *testing.T) {
	t.Run("sets and normalizes fields", func(t *testing.T) {
		c := &entities.Candidate{FullName: "Ana", City: "Canoas/RS", Phone: "123"}

		changed, err := ApplyValues(c, map[string]string{
			"city":   "porto alegre",
			"source": "insta",
			"phone":  "",
		})
		require.NoError(t, err)

		assert.Equal(t, []Field{FieldCity, FieldPhone, FieldSource}, changed)
		assert.Equal(t, "Porto Alegre/RS", c.City)
		assert.Equal(t, "Instagram", c.Source)
		assert.Empty(t, c.Phone)
		assert.Equal(t, "Ana", c.FullName)
	})

	t.Run("unknown field leaves candidate untouched", func(t *testing.T) {
		c := &entities.Candidate{City: "Canoas/RS"}

		_, err := ApplyValues(c, map[string]string{"city": "poa", "shoeSize": "42"})
		assert.ErrorIs(t, err, ErrUnknownField)
		assert.Equal(t, "Canoas/RS", c.City)
	})
}
