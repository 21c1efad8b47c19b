package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"forge-backend/internal/billing"
	appconfig "forge-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 10 * time.Minute

// ReceiptUpload is a presigned PUT the client uploads the receipt file to,
// plus the public URL the stored expense should reference
type ReceiptUpload struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

type ReceiptService struct {
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// NewReceiptService builds an S3-compatible client against the configured
// R2 endpoint. Returns an error when the bucket is not configured.
func NewReceiptService(cfg *appconfig.Config) (*ReceiptService, error) {
	if cfg.R2.Bucket == "" || cfg.R2.Endpoint == "" {
		return nil, fmt.Errorf("receipt storage not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKey,
			cfg.R2.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.R2.Region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2.Endpoint)
	})

	return &ReceiptService{
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.R2.Bucket,
		publicBaseURL: strings.TrimRight(cfg.R2.PublicBaseURL, "/"),
	}, nil
}

// PresignUpload returns a short-lived PUT URL for a receipt file. The object
// key is namespaced per user so receipts never collide across accounts.
func (s *ReceiptService) PresignUpload(ctx context.Context, userID uuid.UUID, filename, contentType string) (*ReceiptUpload, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".pdf", ".png", ".jpg", ".jpeg", ".webp", ".heic":
	default:
		return nil, billing.NewValidationError("unsupported receipt file type")
	}

	key := fmt.Sprintf("receipts/%s/%s%s", userID, uuid.New(), ext)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, err
	}

	return &ReceiptUpload{
		UploadURL: req.URL,
		PublicURL: s.publicBaseURL + "/" + key,
		Key:       key,
	}, nil
}
