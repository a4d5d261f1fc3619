package http

import (
	"github.com/MKhiriev/go-pos-terminal/internal/logger"
	"github.com/MKhiriev/go-pos-terminal/internal/metrics"
	"github.com/MKhiriev/go-pos-terminal/internal/prefs"
	"github.com/MKhiriev/go-pos-terminal/internal/service"
)

type Handler struct {
	services *service.Services
	prefs    *prefs.Store
	metrics  *metrics.Metrics

	logger *logger.Logger
}

// NewHandler builds the local API handler. prefs and m may be nil; the
// matching routes then answer 404 or are not mounted.
func NewHandler(services *service.Services, prefs *prefs.Store, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		prefs:    prefs,
		metrics:  m,
		logger:   logger,
	}
}
