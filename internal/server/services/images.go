package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/sooldama/sooldama/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ImageResolver turns a stored image reference into a URL a browser can load.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// ImageSigner resolves object keys in the image bucket to presigned GET URLs.
// Absolute http(s) references pass through untouched, and so does everything
// when no bucket is configured.
type ImageSigner struct {
	bucket   string
	region   string
	user     string
	password string
	endpoint string
	ttl      time.Duration

	mu     sync.Mutex
	client *s3.PresignClient
}

func NewImageSigner(cfg *sc.Config) *ImageSigner {
	return &ImageSigner{
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		user:     cfg.S3RootUser,
		password: cfg.S3RootPassword,
		endpoint: cfg.S3BaseEndpoint,
		ttl:      cfg.ImageURLTTL,
	}
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func (s *ImageSigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.user,
			s.password,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.endpoint)
		o.UsePathStyle = true
	})

	s.client = newS3PresignClient(client)
	return s.client, nil
}

func (s *ImageSigner) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" || s.bucket == "" || isAbsoluteURL(ref) {
		return ref, nil
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.bucket
	key := strings.TrimPrefix(ref, "/")

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
