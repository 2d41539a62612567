package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xShinnRyuu/amazon-neptune-tools/config"
	"github.com/xShinnRyuu/amazon-neptune-tools/internal/compression"
	"github.com/xShinnRyuu/amazon-neptune-tools/internal/storage/s3repo"
	"github.com/xShinnRyuu/amazon-neptune-tools/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	dir := flag.String("dir", "", "directory containing the exported CSV files")
	removeOriginals := flag.Bool("remove-originals", cfg.Export.RemoveOriginals, "delete each CSV after successful compression")
	bucket := flag.String("bucket", cfg.Export.UploadBucket, "S3 bucket to upload compressed files to (empty disables upload)")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: compress -dir <export-directory> [-remove-originals] [-bucket <name>]")
		os.Exit(2)
	}

	l := logger.New(cfg.Log.Level)
	ctx := context.Background()

	rep := compression.NewReporter(os.Stderr)
	summary, err := compression.Run(ctx, *dir, *removeOriginals, rep)
	if err != nil {
		l.Fatal(err)
	}

	if *bucket != "" && summary.Succeeded > 0 {
		uploadCompressed(ctx, cfg, l, *dir, *bucket)
	}
}

// uploadCompressed pushes every compressed artifact in dir to the bucket so
// the bulk loader can read them. Upload problems are logged and skipped;
// the compression work on disk is already done.
func uploadCompressed(ctx context.Context, cfg *config.Config, l logger.Interface, dir, bucket string) {
	repo, err := s3repo.NewS3Repository(cfg.S3)
	if err != nil {
		l.Error(err)
		l.Fatal("Failed to init S3 Repository")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		l.Error(err)
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), compression.GzipSuffix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := repo.UploadFile(ctx, bucket, path); err != nil {
			l.Error(err)
			continue
		}
		l.Info("uploaded %s to bucket %s", e.Name(), bucket)
	}
}
