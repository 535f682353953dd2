package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestArchive(p *fakePutter) *AudioArchive {
	a := newAudioArchive(p, "mech-audio")
	a.now = func() time.Time { return time.Date(2024, 10, 5, 23, 0, 0, 0, time.UTC) }
	a.newID = func() string { return "abc" }
	return a
}

func TestArchive(t *testing.T) {
	p := &fakePutter{}

	key, err := newTestArchive(p).Archive(context.Background(), []byte("RIFF"), "audio/wav")
	require.NoError(t, err)

	assert.Equal(t, "audio/2024/10/05/abc.wav", key)
	assert.Equal(t, "mech-audio", aws.ToString(p.in.Bucket))
	assert.Equal(t, key, aws.ToString(p.in.Key))
	assert.Equal(t, "audio/wav", aws.ToString(p.in.ContentType))
	assert.Equal(t, []byte("RIFF"), p.body)
}

func TestArchive_Error(t *testing.T) {
	boom := errors.New("access denied")
	_, err := newTestArchive(&fakePutter{err: boom}).Archive(context.Background(), []byte("x"), "audio/ogg")
	assert.ErrorIs(t, err, boom)
}

func TestNewS3AudioArchive(t *testing.T) {
	a := NewS3AudioArchive(S3Config{
		Bucket:          "b",
		Region:          "us-east-1",
		AccessKeyID:     "id",
		SecretAccessKey: "secret",
		Endpoint:        "http://localhost:9000",
	})
	assert.Equal(t, "b", a.bucket)
	assert.NotNil(t, a.client)
}
