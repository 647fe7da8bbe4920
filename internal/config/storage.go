package config

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store uploads case and content attachments to object storage and hands
// back their public URLs for persistence.
type S3Store struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

func NewS3Store(cfg *AppConfig) (*S3Store, error) {
	awsConf, err := awscfg.LoadDefaultConfig(context.Background(), awscfg.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsConf)
	return &S3Store{
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		region:   cfg.AWSRegion,
	}, nil
}

// UploadMultipart streams one multipart file part to the bucket under a
// random key, keeping the original extension.
func (s *S3Store) UploadMultipart(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := "uploads/" + uuid.NewString() + filepath.Ext(fh.Filename)
	contentType := fh.Header.Get("Content-Type")

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	// uuid-based keys are already URL safe
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
