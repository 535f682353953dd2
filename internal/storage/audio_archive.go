package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/mech-ai/internal/metrics"
	"github.com/BruksfildServices01/mech-ai/internal/validators"
)

// putter is the subset of *s3.Client used here.
type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// AudioArchive stores uploaded audio under audio/YYYY/MM/DD/<uuid><ext>.
type AudioArchive struct {
	client putter
	bucket string
	now    func() time.Time
	newID  func() string
}

func NewS3AudioArchive(cfg S3Config) *AudioArchive {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		// MinIO e afins
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return newAudioArchive(s3.New(opts), cfg.Bucket)
}

func newAudioArchive(client putter, bucket string) *AudioArchive {
	return &AudioArchive{
		client: client,
		bucket: bucket,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Archive uploads audio and returns its object key.
func (a *AudioArchive) Archive(ctx context.Context, audio []byte, mimeType string) (string, error) {
	defer metrics.ObserveSince("s3_put_audio", time.Now())

	key := a.key(mimeType)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(audio),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	return key, nil
}

func (a *AudioArchive) key(mimeType string) string {
	return fmt.Sprintf("audio/%s/%s%s",
		a.now().UTC().Format("2006/01/02"),
		a.newID(),
		validators.ExtensionForMIME(mimeType),
	)
}
