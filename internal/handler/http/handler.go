package http

import (
	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/service"
	"github.com/MKhiriev/go-product-sync/internal/utils"
)

type Handler struct {
	services  *service.Services
	signer    *utils.Signer
	staticDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.ServerConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		signer:    utils.NewSigner(cfg.HashKey),
		staticDir: cfg.StaticDir,
		logger:    logger,
	}
}
