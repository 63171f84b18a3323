package storage

import (
	"fmt"

	"github.com/infravue/infravue/pkg/config"
	"github.com/infravue/infravue/pkg/storage/local"
	"github.com/infravue/infravue/pkg/storage/s3"
)

// New creates a store backend based on configuration.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "", "local":
		basePath := cfg.Local.BasePath
		if basePath == "" {
			basePath = "data/uploads"
		}
		return local.New(basePath)

	case "s3":
		return s3.New(s3.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PathStyle: cfg.S3.PathStyle,
		})

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
