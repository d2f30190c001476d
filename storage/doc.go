// Package storage provides a unified interface over the platform's storage
// providers with pluggable backends.
//
// The Storage interface covers object operations (upload, download, delete,
// batch delete, list, stat, copy, move, duplicate, signed and public URLs)
// plus folder emulation, and follows the component pattern for lifecycle
// management. Providers that cannot implement an operation return a typed
// NOT_SUPPORTED error rather than omitting the method.
//
// # Backends
//
//   - storage/s3: AWS S3 and S3-compatible stores (Cloudflare R2, MinIO,
//     DigitalOcean Spaces, Supabase Storage, custom endpoints)
//   - storage/cloudinary: Cloudinary media CDN
//   - storage/local: local filesystem for development and testing
//
// Backends register themselves via RegisterFactory from init(), so callers
// blank-import the ones they want:
//
//	import (
//	    "github.com/pelatformlabs/toolkits-sub000/storage"
//	    _ "github.com/pelatformlabs/toolkits-sub000/storage/s3"
//	)
//
//	store, err := storage.New(storage.Config{
//	    Provider: storage.ProviderAWS,
//	    Bucket:   "my-bucket",
//	    Region:   "us-east-1",
//	}, log)
//
// Configuration can also come from PELATFORM_S3_* / PELATFORM_CLOUDINARY_*
// environment variables via LoadFromEnv.
package storage
