// Package health reports service readiness.
package health

import (
	"context"
	"fmt"

	"github.com/localhive/placedex/internal/db"
)

// Service checks the dependencies the API cannot serve without.
type Service struct {
	store db.Pinger
}

// New creates a health service.
func New(store db.Pinger) *Service {
	return &Service{store: store}
}

// Check pings the store.
func (s *Service) Check(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store ping: %w", err)
	}
	return nil
}
