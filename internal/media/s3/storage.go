package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/frahmantamala/sewa-portal/internal"
)

// Client is the subset of the S3 API the storage needs.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type Storage struct {
	client        Client
	bucket        string
	region        string
	publicBaseURL string
	endpoint      string
}

// New builds an S3 client from the default credential chain, or from static
// keys when both are configured. A custom endpoint selects an S3-compatible
// service such as MinIO.
func New(ctx context.Context, cfg internal.ObjectStorageConfig) (*Storage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client, cfg), nil
}

func NewWithClient(client Client, cfg internal.ObjectStorageConfig) *Storage {
	return &Storage{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
	}
}

// Put uploads body under key. The SDK derives the content length from the
// seekable body, so size is only used to reject empty uploads.
func (s *Storage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("put object %s: empty body", key)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL returns where key can be fetched publicly.
func (s *Storage) URL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	switch {
	case s.publicBaseURL != "":
		return s.publicBaseURL + "/" + escaped
	case s.endpoint != "":
		return s.endpoint + "/" + s.bucket + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

func (s *Storage) Name() string {
	return "object_storage"
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}
