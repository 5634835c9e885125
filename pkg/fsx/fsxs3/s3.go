package fsxs3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// API is the subset of the S3 client used by S3FileSystem
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3FileSystem struct {
	client  API
	bucket  string
	prefix  string
	baseURL string
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

// NewS3FileSystem stores objects under prefix in bucket
func NewS3FileSystem(client API, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// WithPublicBaseURL serves object URLs from a CDN or custom domain
func (fs *S3FileSystem) WithPublicBaseURL(baseURL string) *S3FileSystem {
	fs.baseURL = strings.TrimRight(baseURL, "/")
	return fs
}

func (fs *S3FileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func (fs *S3FileSystem) key(p string) string {
	p = strings.TrimLeft(p, "/")
	if fs.prefix == "" {
		return p
	}
	return fs.prefix + "/" + p
}

func (fs *S3FileSystem) WriteFile(ctx context.Context, p string, data io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
		Body:   data,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := fs.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put %s: %w", p, err)
	}
	return nil
}

func (fs *S3FileSystem) DeleteFile(ctx context.Context, p string) error {
	_, err := fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", p, err)
	}
	return nil
}

// URL returns the public URL of the object at p
func (fs *S3FileSystem) URL(p string) string {
	if fs.baseURL != "" {
		return fs.baseURL + "/" + fs.key(p)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", fs.bucket, fs.key(p))
}
