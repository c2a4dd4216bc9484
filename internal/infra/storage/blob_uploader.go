// Package storage moves uploaded files into a gocloud.dev blob bucket.
package storage

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"shopfront/internal/domain/service"
	"shopfront/internal/util"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

// blobUploader stores files under content-addressed keys: <prefix>/<sha[:2]>/<sha><ext>.
type blobUploader struct {
	bucket        *blob.Bucket
	publicBaseURL string
	keyPrefix     string
	logger        *slog.Logger
}

// NewBlobUploader wraps an open bucket.
func NewBlobUploader(bucket *blob.Bucket, publicBaseURL, keyPrefix string, logger *slog.Logger) service.FileUploader {
	return &blobUploader{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		keyPrefix:     strings.Trim(keyPrefix, "/"),
		logger:        logger,
	}
}

// Upload copies localPath into the bucket and removes the local file afterwards.
func (u *blobUploader) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", errors.New("no file to upload")
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			u.logger.WarnContext(ctx, "Failed to remove temporary upload", slog.String("path", localPath), slog.Any("error", err))
		}
	}()

	checksum, err := util.FileSHA256(localPath)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", errors.Wrap(err, "failed to stat upload")
	}

	key := u.objectKey(checksum, filepath.Ext(localPath))
	if err := u.bucket.Upload(ctx, key, file, nil); err != nil {
		return "", errors.Wrapf(err, "failed to write object %s", key)
	}

	u.logger.InfoContext(ctx, "File uploaded",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(info.Size())),
	)

	return u.publicBaseURL + "/" + key, nil
}

func (u *blobUploader) objectKey(checksum, ext string) string {
	return path.Join(u.keyPrefix, checksum[:2], checksum+strings.ToLower(ext))
}
