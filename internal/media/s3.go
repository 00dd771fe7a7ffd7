package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
)

// S3Relay stores media in an S3-compatible bucket.
type S3Relay struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	baseURL  string
	probe    bool
}

// NewS3Relay configures an uploader targeting the configured object store.
func NewS3Relay(ctx context.Context, cfg *config.Config) (*S3Relay, error) {
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return nil, fmt.Errorf("s3 relay: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint := strings.TrimSpace(cfg.S3Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 10 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &S3Relay{
		client:   client,
		uploader: uploader,
		bucket:   cfg.S3Bucket,
		prefix:   cfg.S3Prefix,
		baseURL:  strings.TrimSuffix(cfg.S3PublicBaseURL, "/"),
		probe:    cfg.FFProbeEnabled,
	}, nil
}

func (r *S3Relay) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if localPath == "" {
		return nil, ErrEmptyPath
	}
	defer os.Remove(localPath)

	asset := &Asset{}
	if r.probe && isVideo(localPath) {
		d, err := ProbeDuration(localPath)
		if err != nil {
			slog.WarnContext(ctx, "video duration probe failed", "path", localPath, "error", err)
		}
		asset.Duration = d
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	key := objectName(r.prefix, localPath)
	_, err = r.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(localPath)),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload %s: %w", key, err)
	}

	asset.URL = r.urlFor(key)
	return asset, nil
}

func (r *S3Relay) Delete(ctx context.Context, ref string) error {
	key := r.keyFor(ref)
	if key == "" {
		return nil
	}
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (r *S3Relay) urlFor(key string) string {
	if r.baseURL == "" {
		return key
	}
	return r.baseURL + "/" + key
}

func (r *S3Relay) keyFor(ref string) string {
	ref = strings.TrimSpace(ref)
	if r.baseURL != "" {
		ref = strings.TrimPrefix(ref, r.baseURL)
	}
	return strings.TrimLeft(ref, "/")
}
