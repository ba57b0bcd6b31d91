package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploaded keys are never rewritten, so objects may be cached forever.
const s3CacheControl = "public, max-age=31536000, immutable"

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 stores images as <prefix>/<yyyy>/<mm>/<uuid><ext> in one bucket and
// serves them from PublicBaseURL.
type S3 struct {
	api        objectAPI
	bucket     string
	prefix     string
	publicBase string
	now        func() time.Time
}

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newS3(s3.NewFromConfig(awsCfg), cfg), nil
}

func newS3(api objectAPI, cfg S3Config) *S3 {
	return &S3{
		api:        api,
		bucket:     cfg.Bucket,
		prefix:     strings.Trim(cfg.Prefix, "/"),
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		now:        time.Now,
	}
}

func (s *S3) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	key := s.objectKey(in.Filename)
	obj := &s3.PutObjectInput{
		Bucket:       &s.bucket,
		Key:          &key,
		Body:         r,
		ContentType:  &in.ContentType,
		CacheControl: ptr(s3CacheControl),
	}
	if in.Size > 0 {
		obj.ContentLength = &in.Size
	}
	if _, err := s.api.PutObject(ctx, obj); err != nil {
		return PutResult{}, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return PutResult{Key: key, URL: s.publicBase + "/" + key}, nil
}

// Delete refuses keys outside the configured prefix.
func (s *S3) Delete(ctx context.Context, key string) error {
	key = path.Clean(strings.TrimPrefix(key, "/"))
	if key == "." || strings.HasPrefix(key, "..") {
		return errors.New("s3 delete: invalid key")
	}
	if s.prefix != "" && !strings.HasPrefix(key, s.prefix+"/") {
		return fmt.Errorf("s3 delete: key %q outside prefix %q", key, s.prefix)
	}
	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (s *S3) objectKey(filename string) string {
	t := s.now().UTC()
	name := fmt.Sprintf("%04d/%02d/%s%s", t.Year(), int(t.Month()), uuid.NewString(), safeExt(filename))
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *S3) String() string { return fmt.Sprintf("s3(%s/%s)", s.bucket, s.prefix) }

func ptr[T any](v T) *T { return &v }
