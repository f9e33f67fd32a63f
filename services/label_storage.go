package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/officina-stampa/fulfillment-api/config"
)

// LabelStorage defines the interface for exported label persistence
type LabelStorage interface {
	UploadLabel(ctx context.Context, key string, data []byte) error
	GetPresignedURL(ctx context.Context, key string) (string, error)
	DeleteLabel(ctx context.Context, key string) error
}

// S3LabelStorage stores exported label PNGs in an S3 bucket
type S3LabelStorage struct {
	client *s3.Client
	bucket string
}

var labelStorageInstance LabelStorage

// InitLabelStorage initializes the label storage with AWS credentials
func InitLabelStorage() (LabelStorage, error) {
	cfg := appConfig.GetConfig()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	labelStorageInstance = &S3LabelStorage{
		client: client,
		bucket: cfg.AWSS3Bucket,
	}

	return labelStorageInstance, nil
}

// GetLabelStorage returns the initialized label storage instance
func GetLabelStorage() LabelStorage {
	return labelStorageInstance
}

// SetLabelStorage sets the label storage instance (primarily for testing)
func SetLabelStorage(storage LabelStorage) {
	labelStorageInstance = storage
}

// UploadLabel uploads a rendered label PNG under the given key
func (s *S3LabelStorage) UploadLabel(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload label to S3: %w", err)
	}
	return nil
}

// GetPresignedURL generates a presigned URL for downloading an exported label
// The URL expires after 1 hour
func (s *S3LabelStorage) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	log.Printf("Generated presigned URL for key %s", key)
	return request.URL, nil
}

// DeleteLabel deletes an exported label from S3
func (s *S3LabelStorage) DeleteLabel(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete label from S3: %w", err)
	}

	return nil
}
