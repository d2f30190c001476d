package storage

import (
	"context"
)

// Storage is the full capability set every provider exposes. Providers that
// cannot implement an operation return a typed NOT_SUPPORTED error from it
// instead of panicking or omitting the method; callers branch on
// errors.AsAppError when they need to distinguish.
type Storage interface {
	// Provider returns the provider discriminant ("aws", "cloudinary", ...).
	Provider() string

	// Upload stores the object described by opts and returns its metadata.
	Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error)

	// Download returns a streaming reader for the object at opts.Key.
	// The caller is responsible for closing DownloadResult.Body.
	Download(ctx context.Context, opts DownloadOptions) (*DownloadResult, error)

	// Delete removes the object at key. Deleting a missing object is not an
	// error.
	Delete(ctx context.Context, key string) error

	// BatchDelete removes many objects in as few provider calls as possible.
	// Per-key failures are aggregated in the result, not returned as an error.
	BatchDelete(ctx context.Context, keys []string) (*BatchDeleteResult, error)

	// List returns files (and, with a delimiter, folders) under opts.Prefix.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Exists checks whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)

	// Stat returns metadata for the object at key.
	Stat(ctx context.Context, key string) (*FileInfo, error)

	// Copy duplicates the object at opts.SourceKey to opts.DestKey.
	Copy(ctx context.Context, opts CopyOptions) error

	// Move relocates an object. On flat stores this is copy-then-delete and
	// is not atomic: a failed delete after a successful copy leaves both
	// objects in place, and the returned error names the leftover source.
	Move(ctx context.Context, opts CopyOptions) error

	// Duplicate copies an object within the same store, deriving a
	// "<name>-copy<ext>" destination when opts.DestKey is empty. It returns
	// the destination key.
	Duplicate(ctx context.Context, opts DuplicateOptions) (string, error)

	// SignedURL returns a time-limited URL for private access to key.
	SignedURL(ctx context.Context, opts SignedURLOptions) (string, error)

	// PublicURL returns the permanent public URL for the object at key.
	// It does not check that the object exists or is publicly readable.
	PublicURL(ctx context.Context, key string) (string, error)

	FolderStorage
}

// FolderStorage groups the folder-level operations. Object stores are flat;
// S3-family providers emulate folders with trailing-slash marker objects and
// prefix fan-out, Cloudinary maps them onto its asset folders where it can.
type FolderStorage interface {
	// CreateFolder materializes an empty folder at prefix.
	CreateFolder(ctx context.Context, prefix string) error

	// DeleteFolder removes every object under prefix and returns the number
	// of objects deleted.
	DeleteFolder(ctx context.Context, prefix string) (int, error)

	// FolderExists checks whether prefix exists as a folder (marker object
	// or at least one object beneath it).
	FolderExists(ctx context.Context, prefix string) (bool, error)

	// ListFolders returns the immediate sub-folders of prefix.
	ListFolders(ctx context.Context, prefix string) ([]FolderInfo, error)

	// CopyFolder copies every object under src to the same relative path
	// under dest and returns the number of objects copied.
	CopyFolder(ctx context.Context, src, dest string) (int, error)

	// MoveFolder is CopyFolder followed by DeleteFolder, with the same
	// non-atomicity caveat as Move.
	MoveFolder(ctx context.Context, src, dest string) (int, error)
}
