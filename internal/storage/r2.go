// Package storage reads and writes artifacts in a Cloudflare R2 bucket
// through the S3 API.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var ErrObjectNotFound = errors.New("object not found")

// R2Config holds the bucket credentials.
type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

type R2Client struct {
	client *s3.Client
	bucket string
}

func NewR2Client(ctx context.Context, c R2Config) (*R2Client, error) {
	if c.Endpoint == "" || c.AccessKey == "" || c.SecretKey == "" || c.Bucket == "" {
		return nil, errors.New("R2 endpoint, credentials and bucket are required")
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				c.AccessKey,
				c.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading R2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{
		client: client,
		bucket: c.Bucket,
	}, nil
}

// Open streams an object. The caller closes the reader.
func (r *R2Client) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}
	return out.Body, nil
}
