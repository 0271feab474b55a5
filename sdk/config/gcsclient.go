// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const gcsBaseURL = "https://storage.googleapis.com"

type GCSClient struct {
	client *storage.Client
}

// NewGCSClient uses the credentials file when set, Application Default Credentials otherwise.
func NewGCSClient(ctx context.Context, cfg StoreConfig) (*GCSClient, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.EndpointURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.EndpointURL))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSClient{client: client}, nil
}

func (c *GCSClient) Close() error {
	return c.client.Close()
}

func (c *GCSClient) BlobURL(container, path string) string {
	return gcsBaseURL + "/" + container + "/" + EncodePath(path)
}

func (c *GCSClient) List(ctx context.Context, container, prefix string) ([]string, error) {
	it := c.client.Bucket(container).Objects(ctx, &storage.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", container, err)
		}
		if attrs.Name != "" {
			names = append(names, attrs.Name)
		}
	}
	return names, nil
}

func (c *GCSClient) Properties(ctx context.Context, ref BlobRef) (*BlobProperties, error) {
	attrs, err := c.client.Bucket(ref.Container).Object(ref.Path).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to get attrs of %s: %w", ref, err)
	}
	return &BlobProperties{
		Name:         attrs.Name,
		Size:         attrs.Size,
		LastModified: attrs.Updated,
		CopyStatus:   CopyStatusSuccess,
	}, nil
}

// StartCopy runs a rewrite-based copy; Run returns once the object exists.
func (c *GCSClient) StartCopy(ctx context.Context, src CopySource, dst BlobRef) (CopyStatus, error) {
	srcObj := c.client.Bucket(src.Container).Object(src.Path)
	dstObj := c.client.Bucket(dst.Container).Object(dst.Path)

	if _, err := dstObj.CopierFrom(srcObj).Run(ctx); err != nil {
		return "", fmt.Errorf("copy %s to %s failed: %w", src.BlobRef, dst, err)
	}
	return CopyStatusSuccess, nil
}

func (c *GCSClient) Read(ctx context.Context, ref BlobRef) ([]byte, error) {
	r, err := c.client.Bucket(ref.Container).Object(ref.Path).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", ref, err)
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	return b, nil
}
