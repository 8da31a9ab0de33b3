package catalog

import (
	"errors"
	"strings"
	"testing"

	"villafinder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(id, name string) models.Listing {
	return models.Listing{ID: id, Name: &name}
}

func TestResultState_Lifecycle(t *testing.T) {
	var s ResultState
	assert.Equal(t, StatusLoading, s.Status())

	seq := s.Begin(models.Filter{})
	assert.Equal(t, StatusLoading, s.Status())

	require.True(t, s.Complete(seq, []models.Listing{named("1", "A")}, nil))
	assert.Equal(t, StatusReady, s.Status())

	seq = s.Begin(models.Filter{Location: "Goa"})
	assert.Equal(t, StatusRefreshing, s.Status())
	assert.Len(t, s.Listings, 1, "prior results stay visible while refreshing")

	require.True(t, s.Complete(seq, []models.Listing{}, nil))
	assert.Equal(t, StatusEmpty, s.Status())
}

func TestResultState_ErrorKeepsPreviousResults(t *testing.T) {
	var s ResultState
	seq := s.Begin(models.Filter{})
	s.Complete(seq, []models.Listing{named("1", "A"), named("2", "B")}, nil)

	seq = s.Begin(models.Filter{Location: "Nowhere"})
	s.Complete(seq, nil, errors.New("boom"))

	assert.Equal(t, StatusError, s.Status())
	assert.Equal(t, MsgFetchFailed, s.Error)
	assert.Len(t, s.Listings, 2)

	view := Render(s)
	assert.Len(t, view.Cards, 2)
	assert.Equal(t, MsgFetchFailed, view.Error)
}

func TestResultState_EmptyIsNotError(t *testing.T) {
	var s ResultState
	s.Complete(s.Begin(models.Filter{}), nil, nil)

	view := Render(s)
	assert.Equal(t, StatusEmpty, view.Status)
	assert.Empty(t, view.Error)
	assert.Equal(t, "No villas match your search criteria", view.Summary)
}

func TestResultState_StaleCompletionIgnored(t *testing.T) {
	var s ResultState
	older := s.Begin(models.Filter{Location: "Old"})
	newer := s.Begin(models.Filter{Location: "New"})

	require.True(t, s.Complete(newer, []models.Listing{named("n", "New")}, nil))
	assert.False(t, s.Complete(older, []models.Listing{named("o", "Old")}, nil))

	require.Len(t, s.Listings, 1)
	assert.Equal(t, "n", s.Listings[0].ID)
	assert.False(t, s.InFlight)
}

func TestResultState_AssignsIDsAndFinds(t *testing.T) {
	var s ResultState
	s.Complete(s.Begin(models.Filter{}), []models.Listing{named("", "NoID"), named("7", "Seven")}, nil)

	assert.True(t, strings.HasPrefix(s.Listings[0].ID, "local-"))
	l, ok := s.Find("7")
	require.True(t, ok)
	assert.Equal(t, "Seven", *l.Name)

	_, ok = s.Find("missing")
	assert.False(t, ok)
}
