// Package handler is the HTTP surface consumed by the mobile app: book
// cataloging CRUD, wishlist management and recommendation requests.
package handler

import (
	"go.uber.org/zap"

	"shelfmate/backend/internal/recommend"
	"shelfmate/backend/internal/store"
)

// Handler carries the dependencies shared by all endpoints.
type Handler struct {
	store  store.Store
	recs   *recommend.Service
	logger *zap.Logger
}

// New creates a Handler. logger may be nil.
func New(st store.Store, recs *recommend.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: st, recs: recs, logger: logger}
}
