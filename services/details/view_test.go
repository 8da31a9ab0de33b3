package details

import (
	"testing"

	"villafinder/models"
	"villafinder/services/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpened_DefaultsToOverview(t *testing.T) {
	p := Opened()
	assert.True(t, p.Open)
	assert.Equal(t, TabOverview, p.Tab)
}

func TestPanel_Select(t *testing.T) {
	p := Opened()
	require.NoError(t, p.Select(TabAmenities))
	assert.Equal(t, TabAmenities, p.Tab)

	assert.ErrorIs(t, p.Select("reviews"), ErrUnknownTab)
	assert.Equal(t, TabAmenities, p.Tab)
}

func TestRender_Tabs(t *testing.T) {
	desc := "Sea view"
	loc := "Goa"
	beds := 3
	l := models.Listing{ID: "1", Description: &desc, Location: &loc, Bedrooms: &beds, Amenities: []string{"Pool"}}

	v := Render(l, Opened())
	require.NotNil(t, v.Overview)
	assert.Equal(t, "Sea view", v.Overview.Description)
	assert.Equal(t, 3, *v.Overview.Bedrooms)
	assert.Nil(t, v.Location)
	assert.Equal(t, catalog.PlaceholderName, v.Name)

	v = Render(l, Panel{Open: true, Tab: TabAmenities})
	assert.Equal(t, []string{"Pool"}, v.Amenities)
	assert.Nil(t, v.Overview)

	v = Render(l, Panel{Open: true, Tab: TabLocation})
	require.NotNil(t, v.Location)
	assert.Equal(t, "Goa", v.Location.Label)
	assert.True(t, v.Location.Known)
}

func TestRender_MissingFields(t *testing.T) {
	v := Render(models.Listing{ID: "1"}, Panel{Open: true, Tab: TabLocation})
	assert.Equal(t, catalog.PlaceholderLocation, v.Location.Label)
	assert.False(t, v.Location.Known)
	assert.Equal(t, catalog.PlaceholderPrice, v.PriceText)
	assert.Equal(t, catalog.PlaceholderImage, v.Image)
}
