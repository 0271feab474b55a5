// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioClient struct {
	client *minio.Client
}

// NewMinioClient expects EndpointURL as host[:port], optionally with a scheme.
func NewMinioClient(cfg StoreConfig) (*MinioClient, error) {
	if cfg.EndpointURL == "" {
		return nil, errors.New("minio store needs an endpoint")
	}

	endpoint := cfg.EndpointURL
	secure := cfg.Secure
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = strings.TrimPrefix(endpoint, "https://")
		secure = true
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = strings.TrimPrefix(endpoint, "http://")
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.AccessToken),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioClient{client: client}, nil
}

func (c *MinioClient) BlobURL(container, path string) string {
	u := c.client.EndpointURL()
	return strings.TrimSuffix(u.String(), "/") + "/" + container + "/" + EncodePath(path)
}

func (c *MinioClient) List(ctx context.Context, container, prefix string) ([]string, error) {
	var names []string
	for obj := range c.client.ListObjects(ctx, container, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", container, obj.Err)
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

func (c *MinioClient) Properties(ctx context.Context, ref BlobRef) (*BlobProperties, error) {
	info, err := c.client.StatObject(ctx, ref.Container, ref.Path, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", ref, err)
	}
	return &BlobProperties{
		Name:         info.Key,
		Size:         info.Size,
		LastModified: info.LastModified,
		CopyStatus:   CopyStatusSuccess,
	}, nil
}

func (c *MinioClient) StartCopy(ctx context.Context, src CopySource, dst BlobRef) (CopyStatus, error) {
	_, err := c.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dst.Container, Object: dst.Path},
		minio.CopySrcOptions{Bucket: src.Container, Object: src.Path},
	)
	if err != nil {
		return "", fmt.Errorf("copy %s to %s failed: %w", src.BlobRef, dst, err)
	}
	return CopyStatusSuccess, nil
}

func (c *MinioClient) Read(ctx context.Context, ref BlobRef) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, ref.Container, ref.Path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", ref, err)
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	if err != nil {
		if isMinioNotFound(err) {
			return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	return b, nil
}

func isMinioNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}
