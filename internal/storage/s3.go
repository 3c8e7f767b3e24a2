package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"go.uber.org/zap"
)

// S3Options configures the S3-compatible backend
type S3Options struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

// S3KV stores each snapshot as the object <prefix><key>.json
type S3KV struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 creates an S3 client. A custom endpoint switches to path-style
// addressing for S3-compatible stores such as MinIO.
func NewS3(opts S3Options) *S3KV {
	s3Opts := s3.Options{
		Region: opts.Region,
	}
	if opts.AccessKeyID != "" {
		s3Opts.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")
	}
	if opts.Endpoint != "" {
		s3Opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3Opts.UsePathStyle = true
		s3Opts.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		s3Opts.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	}

	logger.Info("S3 snapshot storage initialized",
		zap.String("bucket", opts.Bucket),
		zap.String("endpoint", opts.Endpoint),
		zap.String("region", opts.Region),
	)

	return &S3KV{
		client: s3.New(s3Opts),
		bucket: opts.Bucket,
		prefix: opts.Prefix,
	}
}

func (s *S3KV) Name() string { return "s3" }

func (s *S3KV) objectKey(key string) string {
	return s.prefix + key + ".json"
}

func (s *S3KV) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if isS3NotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	defer out.Body.Close()

	value, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return value, nil
}

func (s *S3KV) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put snapshot %s: %w", key, err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	if err == nil {
		return false
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
