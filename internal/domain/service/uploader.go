package service

import "context"

// FileUploader moves a local file to durable storage.
type FileUploader interface {
	// Upload stores the file at localPath and returns its durable URL.
	// The local file is removed whether or not the upload succeeds.
	Upload(ctx context.Context, localPath string) (string, error)
}
