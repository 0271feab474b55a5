// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

type AzureClient struct {
	client *azblob.Client
}

// NewAzureClient accepts either a connection string or an account name/key pair.
func NewAzureClient(cfg StoreConfig) (*AzureClient, error) {
	var (
		client *azblob.Client
		err    error
	)
	switch {
	case cfg.ConnectionString != "":
		client, err = azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	case cfg.AccountName != "" && cfg.AccountKey != "":
		cred, cerr := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
		if cerr != nil {
			return nil, fmt.Errorf("invalid azure shared key: %w", cerr)
		}
		serviceURL := cfg.EndpointURL
		if serviceURL == "" {
			serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.AccountName)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	default:
		return nil, errors.New("azure store needs a connection string or account name and key")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create azure client: %w", err)
	}
	return &AzureClient{client: client}, nil
}

func (c *AzureClient) BlobURL(container, path string) string {
	return strings.TrimSuffix(c.client.URL(), "/") + "/" + container + "/" + EncodePath(path)
}

func (c *AzureClient) List(ctx context.Context, container, prefix string) ([]string, error) {
	opts := &azblob.ListBlobsFlatOptions{}
	if prefix != "" {
		opts.Prefix = to.Ptr(prefix)
	}

	var names []string
	pager := c.client.NewListBlobsFlatPager(container, opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs in %s: %w", container, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

func (c *AzureClient) Properties(ctx context.Context, ref BlobRef) (*BlobProperties, error) {
	bc := c.client.ServiceClient().NewContainerClient(ref.Container).NewBlobClient(ref.Path)
	resp, err := bc.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to get properties of %s: %w", ref, err)
	}

	props := &BlobProperties{Name: ref.Path, CopyStatus: CopyStatusSuccess}
	if resp.ContentLength != nil {
		props.Size = *resp.ContentLength
	}
	if resp.LastModified != nil {
		props.LastModified = *resp.LastModified
	}
	// blobs never written by a copy carry no copy status
	if resp.CopyStatus != nil {
		props.CopyStatus = CopyStatus(*resp.CopyStatus)
	}
	return props, nil
}

func (c *AzureClient) StartCopy(ctx context.Context, src CopySource, dst BlobRef) (CopyStatus, error) {
	bc := c.client.ServiceClient().NewContainerClient(dst.Container).NewBlobClient(dst.Path)
	resp, err := bc.StartCopyFromURL(ctx, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("start copy to %s failed: %w", dst, err)
	}
	if resp.CopyStatus == nil {
		return CopyStatusPending, nil
	}
	return CopyStatus(*resp.CopyStatus), nil
}

func (c *AzureClient) Read(ctx context.Context, ref BlobRef) ([]byte, error) {
	resp, err := c.client.DownloadStream(ctx, ref.Container, ref.Path, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, fmt.Errorf("%s: %w", ref, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to download %s: %w", ref, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	return b, nil
}
