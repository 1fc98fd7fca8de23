package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/studenthive/student-keeper/internal/config"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/models"
)

// objectStoreClient is the slice of the S3 API the media service uses.
type objectStoreClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// mediaService stores profile pictures in an S3-compatible bucket under
// "students/<uuid><ext>" keys and exposes them through the configured
// public base URL.
type mediaService struct {
	client        objectStoreClient
	bucket        string
	publicBaseURL string
	logger        *logger.Logger
}

// NewMediaService builds the S3 client from static credentials and wires
// the media service. A non-empty cfg.Endpoint switches the client to
// path-style addressing, which MinIO and other self-hosted stores expect.
func NewMediaService(ctx context.Context, cfg config.Media, logger *logger.Logger) (MediaService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading object store config ended with error: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &mediaService{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Upload stores the image under a freshly generated key and returns its
// public URL. Keys never derive from the original file name beyond the
// extension, so uploads cannot collide or traverse paths.
func (m *mediaService) Upload(ctx context.Context, image models.ImageUpload) (string, error) {
	log := logger.FromContext(ctx)

	key := "students/" + uuid.NewString() + strings.ToLower(filepath.Ext(image.Name))

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image.Data),
		ContentType: aws.String(image.ContentType),
	})
	if err != nil {
		log.Err(err).Str("key", key).Msg("object upload ended with error")
		return "", fmt.Errorf("object upload ended with error: %w", err)
	}

	return m.publicBaseURL + "/" + key, nil
}

// Delete removes the object a previously returned URL points at. URLs
// outside the configured base are rejected so the service cannot be
// steered into deleting arbitrary keys.
func (m *mediaService) Delete(ctx context.Context, url string) error {
	log := logger.FromContext(ctx)

	key := strings.TrimPrefix(url, m.publicBaseURL+"/")
	if key == url || key == "" {
		return fmt.Errorf("%w: %s", ErrUnknownMediaURL, url)
	}

	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Err(err).Str("key", key).Msg("object deletion ended with error")
		return fmt.Errorf("object deletion ended with error: %w", err)
	}

	return nil
}
