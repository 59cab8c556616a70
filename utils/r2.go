// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	// CDNBaseURL prefixes returned object URLs. Defaults to the bucket endpoint.
	CDNBaseURL string
	// Endpoint overrides the Cloudflare endpoint (R2_ENDPOINT), e.g. for MinIO.
	Endpoint string
}

// R2Store writes objects to a Cloudflare R2 (S3-compatible) bucket.
type R2Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewR2Store(ctx context.Context, rc R2Config) (*R2Store, error) {
	endpoint := rc.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", rc.AccountID)
	}
	baseURL := rc.CDNBaseURL
	if baseURL == "" {
		baseURL = endpoint + "/" + rc.Bucket
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithHTTPClient(HTTPClient),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			rc.AccessKeyID, rc.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &R2Store{client: client, bucket: rc.Bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put uploads body under key and returns the public URL of the object.
func (r *R2Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return r.URL(key), nil
}

func (r *R2Store) URL(key string) string {
	return r.baseURL + "/" + strings.TrimLeft(key, "/")
}
