package entity

import (
	"context"
	"io"
)

type StorageRepository interface {
	UploadObject(ctx context.Context, bucket string, key string, r io.Reader) error
	UploadFile(ctx context.Context, bucket string, path string) error
}
