package store

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"mime"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/mkdom/internal/errors"
)

// S3API is the part of *s3.Client the store uses.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config configures the client built by NewS3Client.
type S3Config struct {
	// Region overrides the configured region. Without either, us-east-1.
	Region string
	// Endpoint overrides the service endpoint, for S3-compatible servers.
	Endpoint string
	// UsePathStyle addresses buckets as path segments.
	UsePathStyle bool
}

// NewS3Client builds an S3 client from the default AWS configuration chain:
// environment, shared config and credentials files, SSO and instance roles.
// Region and endpoint in cfg override what the chain resolves.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.New("E180").WithDetail("load AWS configuration").Wrap(err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// S3Store keeps documents as objects in one bucket.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store returns a store for bucket. Keys are joined to prefix.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) key(k string) string {
	return s.prefix + k
}

// Load fetches the object under key.
func (s *S3Store) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if stderrors.As(err, &nsk) {
			return nil, errors.New("E180").WithDetailf("s3://%s/%s", s.bucket, s.key(key))
		}
		return nil, errors.New("E180").WithDetailf("s3://%s/%s", s.bucket, s.key(key)).Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("E180").WithDetailf("s3://%s/%s", s.bucket, s.key(key)).Wrap(err)
	}
	return data, nil
}

// Save uploads data under key.
func (s *S3Store) Save(ctx context.Context, key string, data []byte) error {
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return errors.New("E181").WithDetailf("s3://%s/%s", s.bucket, s.key(key)).Wrap(err)
	}
	return nil
}
