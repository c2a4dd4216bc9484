package storage

import (
	"context"
	"log/slog"

	"shopfront/config"
	"shopfront/internal/domain/lifecycle"
	"shopfront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket URL schemes: file://, s3://, gs://, mem://
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const defaultBucketURL = "mem://"

// Params holds dependencies for the uploader, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (service.FileUploader, error) {
	cfg := params.Config.Storage
	if cfg == nil {
		cfg = &config.StorageConfig{}
	}

	bucketURL := cfg.BucketURL
	if bucketURL == "" {
		params.Logger.Warn("Storage bucket not configured, uploads are kept in memory")
		bucketURL = defaultBucketURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobUploader(bucket, cfg.PublicBaseURL, cfg.KeyPrefix, params.Logger), nil
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
