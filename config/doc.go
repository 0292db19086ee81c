// Package config provides configuration loading and validation for filewriter.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (FILEWRITER_ prefix, plus a few unprefixed names)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with the FILEWRITER_ prefix:
//   - server.port → FILEWRITER_SERVER_PORT
//   - storage.bucket → FILEWRITER_STORAGE_BUCKET
//
// These keys also accept an unprefixed name; the prefixed one wins when both are set:
//   - server.port → PORT
//   - storage.endpoint → S3_ENDPOINT
//   - storage.access_key_id → S3_ACCESS_KEY_ID
//   - storage.secret_access_key → S3_SECRET_ACCESS_KEY
//   - storage.bucket → S3_BUCKET_NAME
//   - storage.region → S3_REGION
//   - database.dsn → DATABASE_URL
//
// # Validation
//
//   - Port must be 1-65535
//   - server.root must be static or listing
//   - storage.type must be s3 or filesystem; s3 needs endpoint and credentials
//   - storage.bucket is always required
//   - database.dsn is required while metadata.enabled is true
//   - metadata.tag_update must be keep or replace
//   - Log level must be debug, info, warn, or error
package config
