package http

import (
	"github.com/gorilla/websocket"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator

	// fuzziness is passed to the search index of every post list request.
	fuzziness float64
	upgrader  websocket.Upgrader

	logger *logger.Logger
}

func NewHandler(services *service.Services, fuzziness float64, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validators.NewQueryValidator(),
		fuzziness: fuzziness,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}
