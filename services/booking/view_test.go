package booking

import (
	"testing"

	"villafinder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_TotalFollowsDuration(t *testing.T) {
	w := Open(listing(priced(2000)))

	v := Render(w)
	require.NotNil(t, v.Total)
	assert.Equal(t, 2000.0, *v.Total)
	assert.Equal(t, "2,000", v.TotalLabel)
	assert.Equal(t, 1, v.StepNumber)
	assert.True(t, v.RequiresCard)

	w.Update(models.DraftUpdate{Duration: num(12)})
	v = Render(w)
	assert.Equal(t, 24000.0, *v.Total)
	assert.Equal(t, "24,000", v.TotalLabel)

	require.Len(t, v.Durations, 6)
	assert.Equal(t, "1 month", v.Durations[0].Label)
	assert.Equal(t, "24 months", v.Durations[5].Label)
	assert.Equal(t, "48,000", v.Durations[5].Total)
}

func TestRender_NoPrice(t *testing.T) {
	v := Render(Open(listing(nil)))
	assert.Nil(t, v.Total)
	assert.Equal(t, "Price on request", v.TotalLabel)
	assert.Equal(t, "Price on request", v.UnitPrice)
}

func TestRender_HidesCardBehindHint(t *testing.T) {
	w := Open(listing(priced(1000)))
	fillCard(w)

	v := Render(w)
	assert.Empty(t, v.Draft.CardNumber)
	assert.Empty(t, v.Draft.CardCVC)
	assert.Equal(t, "12/29", v.Draft.CardExpiry)
	assert.Equal(t, "**** 4242", v.CardHint)
}
