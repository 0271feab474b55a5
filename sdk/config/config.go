// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Config is the whole configuration handed to the SDK (no viper here).
type Config struct {
	Store StoreConfig
	Copy  CopyConfig
}

const (
	ProviderAzure  = "azure"
	ProviderS3     = "s3"
	ProviderGCS    = "gcs"
	ProviderMinio  = "minio"
	ProviderMemory = "memory"
)

type StoreConfig struct {
	Provider string

	// Azure
	ConnectionString string
	AccountName      string
	AccountKey       string

	// S3 / MinIO
	AccessKey    string
	SecretKey    string
	AccessToken  string
	Region       string
	EndpointURL  string
	UsePathStyle bool
	Secure       bool

	// GCS
	CredentialsFile string
}

type VerifyMode string

const (
	VerifyNone        VerifyMode = "none"
	VerifyDestination VerifyMode = "destination"
	VerifyBoth        VerifyMode = "both"
)

const DefaultPollInterval = 2 * time.Second

type CopyConfig struct {
	SourceContainer      string
	DestinationContainer string

	// PollInterval is the wait between two status reads; zero means DefaultPollInterval.
	PollInterval time.Duration
	// MaxPollAttempts bounds the poll loop; zero polls until a terminal status.
	MaxPollAttempts int

	Verify VerifyMode
}

// DestinationOrSource returns the destination container, falling back to the
// source one for same-container moves.
func (c CopyConfig) DestinationOrSource() string {
	if c.DestinationContainer != "" {
		return c.DestinationContainer
	}
	return c.SourceContainer
}

func (c CopyConfig) Interval() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return c.PollInterval
}
