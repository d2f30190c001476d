package storage

import (
	"io"
	"time"
)

// FileInfo contains metadata about a stored object. Snapshots are
// regenerated on each query and never mutated.
type FileInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
	ContentType  string
}

// FolderInfo describes a folder (common prefix) returned by list operations.
type FolderInfo struct {
	// Prefix is the full folder path including the trailing slash.
	Prefix string
	// Name is the last path segment without slashes.
	Name string
}

// UploadOptions describes a single upload.
type UploadOptions struct {
	Key  string
	Body io.Reader
	// Size is the content length when known; providers that require it
	// (multipart thresholds, Content-Length headers) may buffer otherwise.
	Size int64
	// ContentType overrides detection. When empty the provider derives it
	// from the key's extension, falling back to content sniffing.
	ContentType  string
	CacheControl string
	Metadata     map[string]string
	// ACLPublic requests a public-read object where the provider supports
	// per-object ACLs.
	ACLPublic bool
}

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	Key          string
	ETag         string
	Size         int64
	ContentType  string
	URL          string
	LastModified time.Time
}

// DownloadOptions describes a single download.
type DownloadOptions struct {
	Key string
	// Range is an optional HTTP range spec such as "bytes=0-1023".
	Range string
}

// DownloadResult carries the object stream and its metadata.
// The caller must close Body.
type DownloadResult struct {
	Body         io.ReadCloser
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// ListOptions controls listing.
type ListOptions struct {
	Prefix string
	// Delimiter groups keys into folders; "/" gives filesystem-like
	// semantics. Empty means a flat recursive listing.
	Delimiter string
	// MaxKeys caps the page size; 0 uses the provider default.
	MaxKeys int32
	// ContinuationToken resumes a truncated listing.
	ContinuationToken string
}

// ListResult is one page of a listing.
type ListResult struct {
	Files     []FileInfo
	Folders   []FolderInfo
	NextToken string
	Truncated bool
}

// CopyOptions describes a copy or move between two keys in the same store.
type CopyOptions struct {
	SourceKey string
	DestKey   string
}

// DuplicateOptions describes an in-store duplication.
type DuplicateOptions struct {
	SourceKey string
	// DestKey is optional; when empty the provider derives
	// "<name>-copy<ext>" next to the source.
	DestKey string
}

// SignedURLMethod selects the HTTP method a signed URL grants.
type SignedURLMethod string

const (
	SignedGET SignedURLMethod = "GET"
	SignedPUT SignedURLMethod = "PUT"
)

// DefaultSignedURLExpiry applies when SignedURLOptions.Expiry is zero.
const DefaultSignedURLExpiry = 15 * time.Minute

// SignedURLOptions describes a pre-signed URL request.
type SignedURLOptions struct {
	Key    string
	Expiry time.Duration
	Method SignedURLMethod
}

// BatchError records one failed key in a batch delete.
type BatchError struct {
	Key     string
	Message string
}

// BatchDeleteResult aggregates the outcome of a batch delete. A partially
// failed batch is not an operation error; callers inspect Failed.
type BatchDeleteResult struct {
	Deleted []string
	Failed  []BatchError
}
