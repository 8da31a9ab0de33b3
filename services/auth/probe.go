package auth

import (
	"context"
	"fmt"
)

// Probe issues GET {base}{HealthPath}; any 2xx means the API is reachable.
func (s *DefaultAuthService) Probe(ctx context.Context) error {
	path := s.HealthPath
	if path == "" {
		path = "/api/health"
	}
	resp, err := s.API.Get(ctx, path, nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode)
	}
	return nil
}
