// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

// S3Config configures the generic object-storage backend. Works against
// AWS S3 and S3-compatible services (MinIO and the like) via Endpoint.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string // key prefix for all objects
	UsePathStyle    bool
}

// s3Provider implements [Provider] on top of aws-sdk-go-v2. The key space
// is flat: folder operations are prefix operations, EnsurePathExists is a
// no-op.
type s3Provider struct {
	cfg     S3Config
	log     *logger.Logger
	retryer *Retryer

	mu     sync.Mutex
	client *s3.Client
}

// NewS3Provider constructs the S3 backend. The AWS client is built lazily
// in Initialize so an unconfigured backend can still be registered.
func NewS3Provider(cfg S3Config, log *logger.Logger) Provider {
	return &s3Provider{
		cfg:     cfg,
		log:     log,
		retryer: NewRetryer(DefaultRetryConfig()),
	}
}

func (p *s3Provider) Name() string { return "s3" }

func (p *s3Provider) IsConfigured() bool {
	return p.cfg.Bucket != "" && p.cfg.AccessKeyID != "" && p.cfg.SecretAccessKey != ""
}

func (p *s3Provider) Initialize(ctx context.Context) error {
	if !p.IsConfigured() {
		return fmt.Errorf("%w: bucket and credentials are required", ErrConfigIncomplete)
	}

	region := p.cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.cfg.AccessKeyID, p.cfg.SecretAccessKey, ""),
		),
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if p.cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(p.cfg.Endpoint)
			o.UsePathStyle = p.cfg.UsePathStyle
		})
	}

	p.mu.Lock()
	p.client = s3.NewFromConfig(awsCfg, s3Opts...)
	p.mu.Unlock()

	p.log.Info().
		Str("func", "s3Provider.Initialize").
		Str("bucket", p.cfg.Bucket).
		Str("region", region).
		Msg("s3 provider initialized")

	return nil
}

func (p *s3Provider) getClient() (*s3.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return nil, fmt.Errorf("%w: provider not initialized", ErrConfigIncomplete)
	}
	return p.client, nil
}

func (p *s3Provider) fullKey(key string) string {
	return p.cfg.Prefix + key
}

func (p *s3Provider) Upload(ctx context.Context, key string, data []byte, isMetadata bool) error {
	client, err := p.getClient()
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(p.cfg.Bucket),
		Key:    aws.String(p.fullKey(key)),
		Body:   bytes.NewReader(data),
	}
	if isMetadata {
		input.ContentType = aws.String("application/json")
	} else {
		input.ContentType = aws.String("application/octet-stream")
	}

	return p.retryer.Do(ctx, func() error {
		if _, err := client.PutObject(ctx, input); err != nil {
			return classifyS3Error("put object", err)
		}
		return nil
	})
}

func (p *s3Provider) Download(ctx context.Context, key string, _ bool) ([]byte, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	return p.retryer.DoBytes(ctx, func() ([]byte, error) {
		resp, err := client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(p.cfg.Bucket),
			Key:    aws.String(p.fullKey(key)),
		})
		if err != nil {
			return nil, classifyS3Error("get object", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read object body: %v", ErrNetworkTransient, err)
		}
		return data, nil
	})
}

func (p *s3Provider) Delete(ctx context.Context, key string) error {
	client, err := p.getClient()
	if err != nil {
		return err
	}

	return p.retryer.Do(ctx, func() error {
		_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(p.cfg.Bucket),
			Key:    aws.String(p.fullKey(key)),
		})
		if err != nil {
			err = classifyS3Error("delete object", err)
			if errors.Is(err, ErrNotFound) {
				return nil // deleting an absent object is fine
			}
			return err
		}
		return nil
	})
}

func (p *s3Provider) List(ctx context.Context, prefix string) ([]string, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.cfg.Bucket),
		Prefix: aws.String(p.fullKey(prefix)),
	})
	return p.collectKeys(ctx, paginator)
}

// objectPager is the slice of the SDK paginator collectKeys needs.
type objectPager interface {
	HasMorePages() bool
	NextPage(context.Context, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// collectKeys drains the paginator, retrying each page fetch. The
// continuation token only advances on a successful response, so a retried
// page is re-fetched, never skipped.
func (p *s3Provider) collectKeys(ctx context.Context, pager objectPager) ([]string, error) {
	var keys []string
	for pager.HasMorePages() {
		var page *s3.ListObjectsV2Output
		err := p.retryer.Do(ctx, func() error {
			out, err := pager.NextPage(ctx)
			if err != nil {
				return classifyS3Error("list objects", err)
			}
			page = out
			return nil
		})
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, strings.TrimPrefix(*obj.Key, p.cfg.Prefix))
		}
	}
	return keys, nil
}

func (p *s3Provider) CopyObject(ctx context.Context, src, dst string) error {
	client, err := p.getClient()
	if err != nil {
		return err
	}

	return p.retryer.Do(ctx, func() error {
		_, err := client.CopyObject(ctx, &s3.CopyObjectInput{
			Bucket:     aws.String(p.cfg.Bucket),
			CopySource: aws.String(p.cfg.Bucket + "/" + p.fullKey(src)),
			Key:        aws.String(p.fullKey(dst)),
		})
		if err != nil {
			return classifyS3Error("copy object", err)
		}
		return nil
	})
}

// EnsurePathExists is a no-op: S3 key spaces have no real folders.
func (p *s3Provider) EnsurePathExists(_ context.Context, _ string) error {
	return nil
}

// DeleteFolder removes every object under the given prefix.
func (p *s3Provider) DeleteFolder(ctx context.Context, path string) error {
	if path != "" && !strings.HasSuffix(path, "/") {
		path += "/"
	}

	keys, err := p.List(ctx, path)
	if err != nil {
		return fmt.Errorf("list folder %q: %w", path, err)
	}

	for _, key := range keys {
		if err := p.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %q in folder %q: %w", key, path, err)
		}
	}

	return nil
}

func (p *s3Provider) Verify(ctx context.Context) error {
	if _, err := p.List(ctx, ""); err != nil {
		return fmt.Errorf("verify s3 credentials: %w", err)
	}
	return nil
}

// classifyS3Error maps SDK failures into the provider taxonomy.
func classifyS3Error(op string, err error) error {
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "NotFound") || strings.Contains(msg, "NoSuchKey") || strings.Contains(msg, "404"):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case strings.Contains(msg, "ExpiredToken") || strings.Contains(msg, "InvalidAccessKeyId") ||
		strings.Contains(msg, "SignatureDoesNotMatch") || strings.Contains(msg, "AccessDenied") ||
		strings.Contains(msg, "403"):
		return fmt.Errorf("%s: %w: %v", op, ErrAuthExpired, err)
	case strings.Contains(msg, "SlowDown") || strings.Contains(msg, "TooManyRequests") || strings.Contains(msg, "429"):
		return fmt.Errorf("%s: %w: %v", op, ErrRateLimited, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, ErrNetworkTransient, err)
	}
}
