package resmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"
)

// DefaultRegion is used when S3Config.Region is empty.
const DefaultRegion = "us-east-1"

// DefaultMaxObjectSize caps the size of a fetched document.
const DefaultMaxObjectSize = 4 << 20 // 4MB

// S3Config holds S3-compatible storage settings.
type S3Config struct {
	// Bucket is the bucket holding the documents (required).
	Bucket string `env:"FLUENT_S3_BUCKET"`

	// Prefix is prepended to every resource path, e.g. "locales".
	Prefix string `env:"FLUENT_S3_PREFIX"`

	AccessKey string `env:"FLUENT_S3_ACCESS_KEY"`
	SecretKey string `env:"FLUENT_S3_SECRET_KEY"`

	// Endpoint is a custom endpoint URL for MinIO and other S3-compatible
	// services.
	Endpoint string `env:"FLUENT_S3_ENDPOINT"`

	Region string `env:"FLUENT_S3_REGION" envDefault:"us-east-1"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `env:"FLUENT_S3_PATH_STYLE"`

	// MaxObjectSize caps the size of a document. Default 4MB.
	MaxObjectSize int64 `env:"FLUENT_S3_MAX_OBJECT_SIZE"`
}

// LoadS3Config reads S3Config from FLUENT_S3_* environment variables.
func LoadS3Config() (S3Config, error) {
	var cfg S3Config
	if err := env.Parse(&cfg); err != nil {
		return S3Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c *S3Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxObjectSize <= 0 {
		c.MaxObjectSize = DefaultMaxObjectSize
	}
}

func (c *S3Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("%w: access key and secret key are required", ErrInvalidConfig)
	}
	return nil
}

// ObjectGetter is the part of the S3 client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads documents from an S3 bucket.
type S3Source struct {
	client ObjectGetter
	cfg    S3Config
}

// NewS3Source creates an S3 client for cfg.
func NewS3Source(cfg S3Config) (*S3Source, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Source{client: s3.New(s3.Options{}, opts...), cfg: cfg}, nil
}

// NewS3SourceWithClient uses an existing client. Only Bucket, Prefix and
// MaxObjectSize of cfg are used.
func NewS3SourceWithClient(client ObjectGetter, cfg S3Config) (*S3Source, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil client", ErrInvalidConfig)
	}
	cfg.applyDefaults()
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}
	return &S3Source{client: client, cfg: cfg}, nil
}

// Key returns the object key for a resource path.
func (s *S3Source) Key(p string) string {
	p = strings.TrimPrefix(p, "/")
	if s.cfg.Prefix == "" {
		return p
	}
	return path.Join(s.cfg.Prefix, p)
}

func (s *S3Source) Fetch(ctx context.Context, p string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.Key(p)),
	})
	if err != nil {
		return nil, wrapS3Error(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, s.cfg.MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFetchFailed, p, err)
	}
	if int64(len(data)) > s.cfg.MaxObjectSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetchFailed, p, s.cfg.MaxObjectSize)
	}
	return data, nil
}
