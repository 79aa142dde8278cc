package service

import (
	"github.com/MKhiriev/go-product-sync/internal/broker"
	"github.com/MKhiriev/go-product-sync/internal/config"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/internal/store"
	"github.com/MKhiriev/go-product-sync/internal/validators"
)

type Services struct {
	ProductService ProductService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, publisher broker.Publisher, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.Version, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		ProductService: NewProductService(storages.ProductRepository, validators.NewProductValidator(), publisher, logger),
		AppInfoService: appInfo,
	}, nil
}
