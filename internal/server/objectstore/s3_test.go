package objectstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/sportclip/highlightd/internal/server/config"
)

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000/"
	cfg.S3Bucket = "highlights"
	return cfg
}

func TestEnabled(t *testing.T) {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	assert.False(t, NewS3Archive(cfg).Enabled())

	assert.True(t, NewS3Archive(testConfig()).Enabled())
}

func TestRandomStorageKey(t *testing.T) {
	k1 := RandomStorageKey("alice")
	k2 := RandomStorageKey("alice")

	assert.True(t, strings.HasPrefix(k1, "videos/alice/"))
	assert.NotEqual(t, k1, k2)
}

func TestStoreUploadsSpooledFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("bytes"), 0o600))

	origPut := putObject
	defer func() { putObject = origPut }()

	var gotBucket, gotKey string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		return &s3.PutObjectOutput{}, nil
	}

	a := NewS3Archive(testConfig())
	err := a.Store(context.Background(), "videos/alice/k", path)
	require.NoError(t, err)
	assert.Equal(t, "highlights", gotBucket)
	assert.Equal(t, "videos/alice/k", gotKey)
}

func TestStoreMissingFile(t *testing.T) {
	a := NewS3Archive(testConfig())
	err := a.Store(context.Background(), "k", "/nonexistent/clip.mp4")
	assert.Error(t, err)
}

func TestPresignGet(t *testing.T) {
	origPresign := presignGetObject
	defer func() { presignGetObject = origPresign }()

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + aws.ToString(in.Key)}, nil
	}

	a := NewS3Archive(testConfig())
	url, err := a.PresignGet(context.Background(), "videos/alice/k")
	require.NoError(t, err)
	assert.Equal(t, "http://signed/videos/alice/k", url)
}

func TestPresignGetError(t *testing.T) {
	origPresign := presignGetObject
	defer func() { presignGetObject = origPresign }()

	boom := errors.New("presign failed")
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, boom
	}

	a := NewS3Archive(testConfig())
	_, err := a.PresignGet(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
}
