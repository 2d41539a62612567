package s3repo

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xShinnRyuu/amazon-neptune-tools/config"
	"github.com/xShinnRyuu/amazon-neptune-tools/entity"
)

const traceName = "S3-Repo"

// S3Repository uploads compressed export files so the Neptune bulk loader
// can read them.
type S3Repository struct {
	sess *s3.Client
}

var _ entity.StorageRepository = (*S3Repository)(nil)

// NewS3Repository builds a client from the configured endpoint and static
// credentials (local object stores), or from the default AWS resolver chain
// when no endpoint is set.
func NewS3Repository(cfg config.S3) (*S3Repository, error) {
	if cfg.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...any) (aws.Endpoint, error) {
			return aws.Endpoint{
				PartitionID:       "aws",
				SigningRegion:     cfg.Region,
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
			}, nil
		})

		awsCfg := aws.Config{
			Region:                      cfg.Region,
			EndpointResolverWithOptions: resolver,
			Credentials:                 credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		}

		return &S3Repository{s3.NewFromConfig(awsCfg)}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	return &S3Repository{s3.NewFromConfig(awsCfg)}, nil
}

func (s3Repo *S3Repository) UploadObject(ctx context.Context, bucket string, key string, r io.Reader) error {
	ctx, span := otel.Tracer(traceName).Start(ctx, "UploadObject")
	defer span.End()
	span.SetAttributes(attribute.String("bucket", bucket), attribute.String("key", key))

	uploader := manager.NewUploader(s3Repo.sess)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return err
	}

	return nil
}

// UploadFile streams one local file to the bucket under its base name.
func (s3Repo *S3Repository) UploadFile(ctx context.Context, bucket string, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return s3Repo.UploadObject(ctx, bucket, filepath.Base(path), f)
}
