package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nardonidigital/agency-api/config"
	miniostore "github.com/nardonidigital/agency-api/internal/adapters/minio"
)

// ConnectStorage connects to object storage and ensures the document bucket
// exists.
func ConnectStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*miniostore.DocumentStore, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("build storage client: %w", err)
	}

	store, err := miniostore.NewDocumentStore(ctx, client, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("init document store: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "object storage connected", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	}

	return store, nil
}
