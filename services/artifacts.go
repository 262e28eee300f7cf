package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArtifactStore uploads export documents to S3 so downloads come from object
// storage instead of inline data URLs. It is optional; without a configured
// bucket, exports stay self-contained.
type ArtifactStore struct {
	client *s3.Client
	bucket string
	region string
}

// NewArtifactStore returns nil when no bucket is configured.
func NewArtifactStore(ctx context.Context, bucket, region string) (*ArtifactStore, error) {
	if bucket == "" {
		return nil, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &ArtifactStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// Upload stores a rendered document and returns its public object URL.
func (a *ArtifactStore) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	_, err := a.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, strings.TrimPrefix(key, "/")), nil
}
