// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3Client struct {
	s3       *s3.Client
	region   string
	endpoint string
}

func NewS3Client(ctx context.Context, cfgCreds StoreConfig) (*S3Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfgCreds.Region),
	}
	// static keys when given, default chain otherwise
	if cfgCreds.AccessKey != "" {
		creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfgCreds.AccessKey,
			cfgCreds.SecretKey,
			cfgCreds.AccessToken,
		))
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Options := func(o *s3.Options) {
		if cfgCreds.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfgCreds.EndpointURL)
			o.UsePathStyle = true // needed by most S3-compatible stores
		}
		if cfgCreds.UsePathStyle {
			o.UsePathStyle = true
		}
	}

	return &S3Client{
		s3:       s3.NewFromConfig(cfg, s3Options),
		region:   cfgCreds.Region,
		endpoint: strings.TrimSuffix(cfgCreds.EndpointURL, "/"),
	}, nil
}

func (c *S3Client) BlobURL(container, path string) string {
	if c.endpoint != "" {
		return c.endpoint + "/" + container + "/" + EncodePath(path)
	}
	region := c.region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", container, region, EncodePath(path))
}

/* -------------------- LIST (paged) -------------------- */

func (c *S3Client) listPage(
	ctx context.Context,
	bucket string,
	prefix string,
	maxKeys *int32,
	continuationToken *string,
) ([]string, *string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:            aws.String(bucket),
		Prefix:            aws.String(prefix),
		MaxKeys:           maxKeys,
		ContinuationToken: continuationToken,
	}

	resp, err := c.s3.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list objects in S3: %w", err)
	}

	keys := make([]string, 0, len(resp.Contents))
	for _, obj := range resp.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, resp.NextContinuationToken, nil
}

func (c *S3Client) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	var all []string
	var token *string
	max := int32(1000)

	for {
		keys, nextToken, err := c.listPage(ctx, bucket, prefix, &max, token)
		if err != nil {
			return nil, err
		}
		all = append(all, keys...)
		if nextToken == nil || *nextToken == "" {
			break
		}
		token = nextToken
	}
	return all, nil
}

/* -------------------- PROPERTIES / COPY -------------------- */

func (c *S3Client) Properties(ctx context.Context, ref BlobRef) (*BlobProperties, error) {
	out, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(ref.Container),
		Key:    aws.String(ref.Path),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to head object %s: %w", ref, err)
	}

	props := &BlobProperties{
		Name:       ref.Path,
		Size:       aws.ToInt64(out.ContentLength),
		CopyStatus: CopyStatusSuccess,
	}
	if out.LastModified != nil {
		props.LastModified = *out.LastModified
	}
	return props, nil
}

// StartCopy uses CopyObject, which completes server side before returning.
func (c *S3Client) StartCopy(ctx context.Context, src CopySource, dst BlobRef) (CopyStatus, error) {
	_, err := c.s3.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dst.Container),
		Key:        aws.String(dst.Path),
		CopySource: aws.String(src.Container + "/" + EncodePath(src.Path)),
	})
	if err != nil {
		return "", fmt.Errorf("copy %s to %s failed: %w", src.BlobRef, dst, err)
	}
	return CopyStatusSuccess, nil
}

/* -------------------- DOWNLOAD -------------------- */

func (c *S3Client) Read(ctx context.Context, ref BlobRef) ([]byte, error) {
	buf := manager.NewWriteAtBuffer([]byte{})
	_, err := manager.NewDownloader(c.s3).Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(ref.Container),
		Key:    aws.String(ref.Path),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	return buf.Bytes(), nil
}

func isS3NotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
