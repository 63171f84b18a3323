// Package s3 implements the S3-compatible asset store backend.
// It works with AWS S3, Aliyun OSS, MinIO and other S3-compatible services.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/infravue/infravue/pkg/common"
	"github.com/infravue/infravue/pkg/validator"
)

// Config holds S3 storage configuration.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PathStyle bool // Use path-style URLs (required for MinIO)
}

// Store implements the storage.Store interface on an S3 bucket. Object keys
// follow the same {projectID}/{filename} layout as the local backend.
//
// S3 has no native rename; Rename is a server-side copy followed by a
// delete and is therefore not atomic. Deployments that need strict
// rename atomicity should use the local backend.
type Store struct {
	client *s3.Client
	bucket string
}

// New creates a new S3 store.
func New(cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("access key and secret key are required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	var optFns []func(*awsconfig.LoadOptions) error
	optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	optFns = append(optFns, awsconfig.WithCredentialsProvider(
		credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	))

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3OptFns []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3OptFns = append(s3OptFns, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.PathStyle {
		s3OptFns = append(s3OptFns, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return &Store{
		client: s3.NewFromConfig(awsCfg, s3OptFns...),
		bucket: cfg.Bucket,
	}, nil
}

// Put uploads content, failing if the key is already occupied.
func (s *Store) Put(ctx context.Context, projectID uint, filename string, content []byte) error {
	if err := validator.ValidateFilename(filename); err != nil {
		return err
	}

	key := s.key(projectID, filename)
	exists, err := s.headExists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", common.ErrConflict, filename)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return fmt.Errorf("%w: put object: %v", common.ErrStorage, err)
	}
	return nil
}

// Open retrieves stored content.
func (s *Store) Open(ctx context.Context, projectID uint, filename string) (io.ReadCloser, error) {
	if err := validator.ValidateFilename(filename); err != nil {
		return nil, err
	}

	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(projectID, filename)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, filename)
		}
		return nil, fmt.Errorf("%w: get object: %v", common.ErrStorage, err)
	}
	return output.Body, nil
}

// Exists checks if the key is occupied.
func (s *Store) Exists(ctx context.Context, projectID uint, filename string) (bool, error) {
	if err := validator.ValidateFilename(filename); err != nil {
		return false, err
	}
	return s.headExists(ctx, s.key(projectID, filename))
}

// Rename copies the object to the new key and deletes the old one.
func (s *Store) Rename(ctx context.Context, projectID uint, oldName, newName string) error {
	if err := validator.ValidateFilename(oldName); err != nil {
		return err
	}
	if err := validator.ValidateFilename(newName); err != nil {
		return err
	}

	oldKey := s.key(projectID, oldName)
	newKey := s.key(projectID, newName)

	exists, err := s.headExists(ctx, newKey)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", common.ErrConflict, newName)
	}

	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + oldKey),
		Key:        aws.String(newKey),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", common.ErrNotFound, oldName)
		}
		return fmt.Errorf("%w: copy object: %v", common.ErrStorage, err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(oldKey),
	}); err != nil {
		return fmt.Errorf("%w: delete old object: %v", common.ErrStorage, err)
	}
	return nil
}

// Delete removes the object. S3 deletes are idempotent already.
func (s *Store) Delete(ctx context.Context, projectID uint, filename string) error {
	if err := validator.ValidateFilename(filename); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(projectID, filename)),
	})
	if err != nil {
		return fmt.Errorf("%w: delete object: %v", common.ErrStorage, err)
	}
	return nil
}

// Type returns "s3" as the backend identifier.
func (s *Store) Type() string {
	return "s3"
}

func (s *Store) key(projectID uint, filename string) string {
	return fmt.Sprintf("%d/%s", projectID, filename)
}

func (s *Store) headExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: head object: %v", common.ErrStorage, err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "NotFound") ||
		strings.Contains(err.Error(), "NoSuchKey") ||
		strings.Contains(err.Error(), "404")
}
