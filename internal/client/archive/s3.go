// Package archive copies exported event books to S3-compatible storage and
// returns a time-limited download link.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

// Config addresses the bucket. Endpoint is optional (MinIO and friends);
// empty credentials fall back to the default AWS chain.
type Config struct {
	Bucket     string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Prefix     string
	LinkExpiry time.Duration
}

// Result locates an archived object.
type Result struct {
	Key string
	URL string
}

// Archiver uploads exported files.
type Archiver interface {
	Archive(ctx context.Context, name, contentType string, data []byte) (*Result, error)
}

type S3Archiver struct {
	cfg Config
}

func NewS3Archiver(cfg Config) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive: bucket is required")
	}
	if cfg.LinkExpiry <= 0 {
		cfg.LinkExpiry = 24 * time.Hour
	}
	return &S3Archiver{cfg: cfg}, nil
}

// StorageKey returns prefix/yyyy/mm/dd/<uuid>-name.
func (a *S3Archiver) StorageKey(name string) string {
	d := now()
	return path.Join(a.cfg.Prefix, fmt.Sprintf("%d/%02d/%02d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), path.Base(name)))
}

func (a *S3Archiver) client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if a.cfg.Region != "" {
		opts = append(opts, config.WithRegion(a.cfg.Region))
	}
	if a.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(a.cfg.AccessKey, a.cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if a.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(a.cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Archive uploads data and presigns a GET link for it.
func (a *S3Archiver) Archive(ctx context.Context, name, contentType string, data []byte) (*Result, error) {
	c, err := a.client(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive: aws config: %w", err)
	}

	key := a.StorageKey(name)
	in := &s3.PutObjectInput{
		Bucket:        aws.String(a.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := putObject(c, ctx, in); err != nil {
		return nil, fmt.Errorf("archive: put %s: %w", key, err)
	}

	req, err := presignGetObject(newS3PresignClient(c), ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(a.cfg.LinkExpiry))
	if err != nil {
		return nil, fmt.Errorf("archive: presign %s: %w", key, err)
	}

	return &Result{Key: key, URL: req.URL}, nil
}
