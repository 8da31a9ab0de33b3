package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"villafinder/models"
	"villafinder/services/api"

	"go.uber.org/zap"
)

// MsgFetchFailed is shown whenever the listings endpoint cannot be read.
const MsgFetchFailed = "Failed to fetch villas"

// ErrFetch wraps every failure of Search.
var ErrFetch = errors.New(MsgFetchFailed)

// Service queries the listings endpoint.
type Service interface {
	Search(ctx context.Context, filter models.Filter) ([]models.Listing, error)
}

// DefaultCatalogService implements Service against the remote villa API.
type DefaultCatalogService struct {
	API    *api.Client
	Logger *zap.Logger
}

// EncodeFilter serializes only the non-empty filter fields.
func EncodeFilter(filter models.Filter) url.Values {
	filter = filter.Normalized()
	q := url.Values{}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	return q
}

// Search issues one GET against the listings endpoint with the current filter.
func (s *DefaultCatalogService) Search(ctx context.Context, filter models.Filter) ([]models.Listing, error) {
	resp, err := s.API.Get(ctx, api.VillasPath, EncodeFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	listings, skipped, err := models.DecodeListings(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if skipped > 0 && s.Logger != nil {
		s.Logger.Warn("Skipped unreadable listing records", zap.Int("skipped", skipped))
	}
	return listings, nil
}
