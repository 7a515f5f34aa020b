package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"substation-inspection-backend/internal/catalog"
	"substation-inspection-backend/internal/intake"
	"substation-inspection-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	intake   *intake.Service
	store    store.Store
	stations []catalog.Substation
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(svc *intake.Service, s store.Store, stations []catalog.Substation, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		intake:   svc,
		store:    s,
		stations: stations,
		webpush:  webpushOptions,
	}
}
