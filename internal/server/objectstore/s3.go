// Package objectstore archives uploaded source videos to an S3-compatible
// bucket and issues presigned playback links. Archival is optional: an
// empty base endpoint in config disables it.
package objectstore

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/sportclip/highlightd/internal/server/config"
)

// Seams for testing the AWS SDK calls.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const presignValidity = 15 * time.Minute

// S3Archive copies uploaded videos into a bucket keyed per account and day.
type S3Archive struct {
	config *sc.Config
}

func NewS3Archive(config *sc.Config) *S3Archive {
	return &S3Archive{config: config}
}

// Enabled reports whether archival is configured.
func (a *S3Archive) Enabled() bool {
	return a.config.S3BaseEndpoint != "" && a.config.S3Bucket != ""
}

// RandomStorageKey builds a collision-free object key under the account's
// date-partitioned prefix.
func RandomStorageKey(accountID string) string {
	d := time.Now()
	return fmt.Sprintf("videos/%s/%d/%d/%d/%v", accountID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (a *S3Archive) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(a.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.config.S3RootUser,
			a.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(a.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Store uploads the file at path under key.
func (a *S3Archive) Store(ctx context.Context, key string, path string) error {
	client, err := a.getClient(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open spooled payload: %w", err)
	}
	defer f.Close()

	bucket := a.config.S3Bucket
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("archive put: %w", err)
	}

	return nil
}

// PresignGet returns a time-limited GET URL for a stored object.
func (a *S3Archive) PresignGet(ctx context.Context, key string) (string, error) {
	client, err := a.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := a.config.S3Bucket
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
