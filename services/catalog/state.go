package catalog

import (
	"fmt"

	"villafinder/models"

	"github.com/google/uuid"
)

// Render states of the result area.
const (
	StatusLoading    = "loading"    // first query still running, nothing to show
	StatusRefreshing = "refreshing" // earlier results shown while a new query runs
	StatusError      = "error"
	StatusEmpty      = "empty"
	StatusReady      = "ready"
)

// ResultState is the catalog part of a browser session.
// Failed queries keep the previously displayed listings and only set Error.
type ResultState struct {
	Listings []models.Listing `json:"listings"`
	Filter   models.Filter    `json:"filter"`
	Loaded   bool             `json:"loaded"`
	InFlight bool             `json:"inFlight"`
	Error    string           `json:"error,omitempty"`
	Seq      uint64           `json:"seq"`
}

// Begin records a new query and returns its sequence number.
func (s *ResultState) Begin(filter models.Filter) uint64 {
	s.Seq++
	s.Filter = filter.Normalized()
	s.InFlight = true
	return s.Seq
}

// Complete applies a query outcome. Outcomes of superseded queries are
// ignored and reported as not applied.
func (s *ResultState) Complete(seq uint64, listings []models.Listing, err error) bool {
	if seq != s.Seq {
		return false
	}
	s.InFlight = false
	if err != nil {
		s.Error = MsgFetchFailed
		return true
	}
	s.Error = ""
	s.Loaded = true
	s.Listings = assignMissingIDs(listings)
	return true
}

// Status reports which rendering state applies.
func (s *ResultState) Status() string {
	switch {
	case s.InFlight && !s.Loaded:
		return StatusLoading
	case s.InFlight:
		return StatusRefreshing
	case s.Error != "":
		return StatusError
	case !s.Loaded:
		return StatusLoading
	case len(s.Listings) == 0:
		return StatusEmpty
	default:
		return StatusReady
	}
}

// Find returns the listing with id from the current results.
func (s *ResultState) Find(id string) (models.Listing, bool) {
	for _, l := range s.Listings {
		if l.ID == id {
			return l, true
		}
	}
	return models.Listing{}, false
}

// Records without an upstream id still need to be selectable.
func assignMissingIDs(listings []models.Listing) []models.Listing {
	out := make([]models.Listing, len(listings))
	for i, l := range listings {
		if l.ID == "" {
			l.ID = fmt.Sprintf("local-%s", uuid.NewString())
		}
		out[i] = l
	}
	return out
}
