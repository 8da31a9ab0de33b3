package catalog

import (
	"strings"
	"testing"

	"villafinder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_MissingPriceUsesPlaceholder(t *testing.T) {
	listings, _, err := models.DecodeListings([]byte(`[{"id":1,"name":"A","price":1000},{"id":2,"name":"B"}]`))
	require.NoError(t, err)

	var s ResultState
	s.Complete(s.Begin(models.Filter{}), listings, nil)
	view := Render(s)

	require.Len(t, view.Cards, 2)
	assert.Equal(t, "1,000", view.Cards[0].PriceLabel)
	require.NotNil(t, view.Cards[0].Price)
	assert.Equal(t, PlaceholderPrice, view.Cards[1].PriceLabel)
	assert.Nil(t, view.Cards[1].Price)
	assert.NotContains(t, view.Cards[1].PriceLabel, "NaN")
	assert.Equal(t, "Found 2 villas matching your criteria", view.Summary)
}

func TestNewCard_Placeholders(t *testing.T) {
	card := NewCard(models.Listing{ID: "x"})

	assert.Equal(t, PlaceholderName, card.Name)
	assert.Equal(t, PlaceholderLocation, card.Location)
	assert.Equal(t, PlaceholderImage, card.Image)
	assert.Empty(t, card.Amenities)
	assert.Empty(t, card.MoreChip)
	assert.Empty(t, card.Description)
}

func TestNewCard_AmenityChipsAndDescription(t *testing.T) {
	desc := strings.Repeat("é", 130)
	card := NewCard(models.Listing{
		ID:          "x",
		Description: &desc,
		Amenities:   []string{"Pool", "Garden", "Security", "Parking", "Gym", "Spa"},
		Premium:     true,
	})

	assert.Equal(t, []string{"Pool", "Garden", "Security", "Parking"}, card.Amenities)
	assert.Equal(t, "+2 more", card.MoreChip)
	assert.Equal(t, strings.Repeat("é", 120)+"...", card.Description)
	assert.True(t, card.Premium)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1,250,000", FormatPrice(price(1250000)))
	assert.Equal(t, "999.50", FormatPrice(price(999.5)))
	assert.Equal(t, PlaceholderPrice, FormatPrice(nil))
}

func TestRender_SummaryIncludesLocation(t *testing.T) {
	var s ResultState
	s.Complete(s.Begin(models.Filter{Location: "Goa"}), []models.Listing{named("1", "A")}, nil)
	assert.Equal(t, "Found 1 villas matching your criteria in Goa", Render(s).Summary)
}
