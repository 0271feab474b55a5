// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName            = ".blobmover.ini"
	DotEnvName         = ".env"
	CurrentEnvironment = "current_environment"
	UpdatedEnvKey      = "updated_environment"

	StoreProvider         = "store_provider"
	AzureConnectionString = "azure_connection_string"
	AzureAccountName      = "azure_account_name"
	AzureAccountKey       = "azure_account_key"
	AwsAccessKeyID        = "aws_access_key_id"
	AwsSecretAccessKey    = "aws_secret_access_key"
	AwsSessionToken       = "aws_session_token"
	AwsRegion             = "aws_region"
	AwsEndpointURL        = "aws_endpoint_url"
	S3PathStyle           = "s3_path_style"
	GcsCredentialsFile    = "gcs_credentials_file"
	MinioEndpoint         = "minio_endpoint"
	MinioSecure           = "minio_secure"

	SourceContainer      = "source_container"
	DestinationContainer = "destination_container"
	SourceFile           = "source_file"
	DestinationFile      = "destination_file"
	ManifestPrefix       = "manifest_prefix"
	LanguageMapFile      = "language_map_file"

	PollInterval    = "poll_interval"
	MaxPollAttempts = "max_poll_attempts"
	Verify          = "verify"
	LogLevel        = "log_level"
)
