package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps uploaded files in an S3 bucket under a key prefix, one prefix
// per storage area.
type S3Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
}

func NewS3Store(client *s3.Client, bucket, prefix, baseURL string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix, baseURL: baseURL}
}

func (s *S3Store) key(name string) string {
	return fmt.Sprintf("%s/%s", s.prefix, name)
}

func (s *S3Store) Save(ctx context.Context, originalFilename string, content io.Reader) (string, error) {
	name := uniqueName("", originalFilename)

	// Multipart uploads arrive as unseekable streams; buffer so the SDK can
	// sign the payload.
	body, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", s.key(name), err)
	}

	return name, nil
}

func (s *S3Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", s.key(name), err)
	}

	return nil
}

func (s *S3Store) URL(name string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, s.key(name))
}
