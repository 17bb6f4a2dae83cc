package storage

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

// S3Provider represents the S3-compatible storage provider
type S3Provider string

const (
	S3ProviderAWS    S3Provider = "aws"
	S3ProviderWasabi S3Provider = "wasabi"
	// S3ProviderCustom targets any S3 compatible endpoint, e.g. MinIO.
	S3ProviderCustom S3Provider = "custom"
)

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
}

// S3Config holds configuration for the avatar bucket.
type S3Config struct {
	Provider        S3Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint is a host name, required for the custom provider and optional
	// for Wasabi (derived from Region when empty).
	Endpoint string
	// PublicBaseURL prefixes object keys in returned URLs. When empty the
	// virtual-hosted AWS URL is used.
	PublicBaseURL string
}

// Enabled reports whether enough settings are present to talk to a bucket.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

func (c S3Config) endpoint() string {
	switch c.Provider {
	case S3ProviderWasabi:
		if c.Endpoint != "" {
			return c.Endpoint
		}
		if ep, ok := WasabiEndpoints[c.Region]; ok {
			return ep
		}
		return "s3.ap-southeast-1.wasabisys.com"
	case S3ProviderCustom:
		return c.Endpoint
	default:
		return ""
	}
}

// NewS3Client creates an S3 client for AWS, Wasabi or a custom endpoint.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := cfg.endpoint()
	if endpoint == "" {
		return s3.NewFromConfig(awsCfg), nil
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	// Non-AWS providers need path-style addressing
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

// objectPutter is the subset of the S3 API used by S3AvatarStore.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3AvatarStore writes avatars to a single bucket.
type S3AvatarStore struct {
	client objectPutter
	cfg    S3Config
}

func NewS3AvatarStore(client *s3.Client, cfg S3Config) *S3AvatarStore {
	return &S3AvatarStore{client: client, cfg: cfg}
}

func (s *S3AvatarStore) PutAvatar(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", fmt.Errorf("put avatar %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL returns the public address of key.
func (s *S3AvatarStore) URL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	if ep := s.cfg.endpoint(); ep != "" {
		if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
			ep = "https://" + ep
		}
		return fmt.Sprintf("%s/%s/%s", ep, s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
