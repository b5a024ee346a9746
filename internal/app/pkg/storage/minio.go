package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIO struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIO creates a MinIO client and makes sure the bucket exists.
// hostPort looks like "127.0.0.1:9000".
func NewMinIO(ctx context.Context, hostPort, accessKey, secretKey, bucket string, useSSL bool, publicBase string) (*MinIO, error) {
	c, err := minio.New(hostPort, &minio.Options{Creds: credentials.NewStaticV4(accessKey, secretKey, ""), Secure: useSSL})
	if err != nil {
		return nil, err
	}

	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	if publicBase == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicBase = scheme + "://" + hostPort
	}
	return &MinIO{client: c, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

var nonSafe = regexp.MustCompile(`[^a-z0-9\-_.]+`)

// SanitizeFileName keeps only [a-z0-9-_.] so names are safe object keys.
func SanitizeFileName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = nonSafe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_")
	if name == "" {
		name = "file"
	}
	return name
}

// Put uploads body under key and returns the object's public URL.
func (m *MinIO) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", m.bucket, key, err)
	}
	return m.PublicURL(key), nil
}

func (m *MinIO) PublicURL(key string) string {
	u, err := url.Parse(m.publicBase)
	if err != nil {
		return m.publicBase + "/" + path.Join(m.bucket, key)
	}
	u.Path = path.Join(u.Path, m.bucket, key)
	return u.String()
}
