package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/trimlylabs/trimly-api/internal/config"
)

const (
	maxPhotoEdge = 512
	webpQuality  = 85
)

// PhotoStore normalizes barber profile photos (resize + webp) and
// uploads them to an S3-compatible bucket.
type PhotoStore struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

// NewPhotoStore returns nil when no bucket is configured; callers must
// treat a nil store as "photo upload disabled".
func NewPhotoStore(cfg *config.Config) *PhotoStore {
	if cfg.S3Bucket == "" {
		return nil
	}

	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, ""),
	}

	// Custom endpoints (MinIO, DO Spaces) need path-style addressing.
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &PhotoStore{
		client:   s3.New(opts),
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		endpoint: cfg.S3Endpoint,
	}
}

// Upload decodes, downscales and re-encodes the photo as webp, then
// puts it under barbers/<id>/. Returns the public URL.
func (s *PhotoStore) Upload(ctx context.Context, barberID uint, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	resized := downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("barbers/%d/%s.webp", barberID, uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return s.publicURL(key), nil
}

func (s *PhotoStore) publicURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// downscale caps the longest edge at maxPhotoEdge, keeping aspect.
func downscale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxPhotoEdge && h <= maxPhotoEdge {
		return src
	}

	if w >= h {
		h = h * maxPhotoEdge / w
		w = maxPhotoEdge
	} else {
		w = w * maxPhotoEdge / h
		h = maxPhotoEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
