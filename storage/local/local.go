// Package local implements the storage backend on the local filesystem.
// It exists for development and tests; keys map onto relative file paths
// under a base directory and folders are real directories.
package local

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
	"github.com/pelatformlabs/toolkits-sub000/storage"
)

func init() {
	storage.RegisterFactory(storage.ProviderLocal, func(cfg storage.Config, log *logger.Logger) (storage.Storage, error) {
		return NewStorage(cfg.BasePath)
	})
}

// Storage implements storage.Storage using the local filesystem.
type Storage struct {
	basePath string
}

var _ storage.Storage = (*Storage)(nil)

// NewStorage creates a new local filesystem storage rooted at basePath.
func NewStorage(basePath string) (*Storage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve base path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create base directory: %w", err)
	}
	return &Storage{basePath: abs}, nil
}

func (s *Storage) Provider() string { return storage.ProviderLocal }

// fullPath resolves a key under the base directory and rejects traversal
// outside of it.
func (s *Storage) fullPath(key string) (string, error) {
	full := filepath.Join(s.basePath, filepath.Clean("/"+storage.CleanKey(key)))
	if !strings.HasPrefix(full, s.basePath) {
		return "", apperrors.Validation(fmt.Sprintf("key escapes storage root: %s", key))
	}
	return full, nil
}

func (s *Storage) Upload(_ context.Context, opts storage.UploadOptions) (*storage.UploadResult, error) {
	full, err := s.fullPath(opts.Key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close() //nolint:errcheck // write errors surface from io.Copy

	n, err := io.Copy(f, opts.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: write file: %w", err)
	}

	ct := opts.ContentType
	if ct == "" {
		ct = storage.TypeByExtension(opts.Key)
	}

	res := &storage.UploadResult{
		Key:         storage.CleanKey(opts.Key),
		Size:        n,
		ContentType: ct,
	}
	if info, err := os.Stat(full); err == nil {
		res.LastModified = info.ModTime()
	}
	res.URL, _ = s.PublicURL(context.Background(), opts.Key)
	return res, nil
}

func (s *Storage) Download(_ context.Context, opts storage.DownloadOptions) (*storage.DownloadResult, error) {
	full, err := s.fullPath(opts.Key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrKeyNotFound(opts.Key)
		}
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("storage: stat file: %w", err)
	}
	return &storage.DownloadResult{
		Body:         f,
		Size:         info.Size(),
		ContentType:  storage.TypeByExtension(opts.Key),
		LastModified: info.ModTime(),
	}, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	full, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

func (s *Storage) BatchDelete(ctx context.Context, keys []string) (*storage.BatchDeleteResult, error) {
	result := &storage.BatchDeleteResult{}
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			result.Failed = append(result.Failed, storage.BatchError{Key: key, Message: err.Error()})
			continue
		}
		result.Deleted = append(result.Deleted, key)
	}
	return result, nil
}

func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	full, err := s.fullPath(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("storage: stat file: %w", err)
	}
	return !info.IsDir(), nil
}

func (s *Storage) Stat(_ context.Context, key string) (*storage.FileInfo, error) {
	full, err := s.fullPath(key)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrKeyNotFound(key)
		}
		return nil, fmt.Errorf("storage: stat file: %w", err)
	}
	if info.IsDir() {
		return nil, storage.ErrKeyNotFound(key)
	}
	return &storage.FileInfo{
		Key:          storage.CleanKey(key),
		Size:         info.Size(),
		LastModified: info.ModTime(),
		ContentType:  storage.TypeByExtension(key),
	}, nil
}

func (s *Storage) List(_ context.Context, opts storage.ListOptions) (*storage.ListResult, error) {
	prefix := storage.CleanKey(opts.Prefix)
	result := &storage.ListResult{}
	folderSeen := map[string]bool{}

	err := filepath.Walk(s.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		if opts.Delimiter != "" {
			rest := strings.TrimPrefix(key, prefix)
			if i := strings.Index(rest, opts.Delimiter); i >= 0 {
				folder := prefix + rest[:i+1]
				if !folderSeen[folder] {
					folderSeen[folder] = true
					result.Folders = append(result.Folders, storage.FolderInfo{
						Prefix: folder,
						Name:   storage.BaseName(folder),
					})
				}
				return nil
			}
		}

		result.Files = append(result.Files, storage.FileInfo{
			Key:          key,
			Size:         info.Size(),
			LastModified: info.ModTime(),
			ContentType:  storage.TypeByExtension(key),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list files: %w", err)
	}

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Key < result.Files[j].Key })
	sort.Slice(result.Folders, func(i, j int) bool { return result.Folders[i].Prefix < result.Folders[j].Prefix })

	// Keys are sorted, so the continuation token is simply the last key of
	// the previous page.
	if opts.ContinuationToken != "" {
		from := sort.Search(len(result.Files), func(i int) bool {
			return result.Files[i].Key > opts.ContinuationToken
		})
		result.Files = result.Files[from:]
	}
	if opts.MaxKeys > 0 && int32(len(result.Files)) > opts.MaxKeys {
		result.Files = result.Files[:opts.MaxKeys]
		result.NextToken = result.Files[len(result.Files)-1].Key
		result.Truncated = true
	}
	return result, nil
}

func (s *Storage) Copy(ctx context.Context, opts storage.CopyOptions) error {
	src, err := s.Download(ctx, storage.DownloadOptions{Key: opts.SourceKey})
	if err != nil {
		return err
	}
	defer src.Body.Close()

	_, err = s.Upload(ctx, storage.UploadOptions{Key: opts.DestKey, Body: src.Body})
	return err
}

func (s *Storage) Move(ctx context.Context, opts storage.CopyOptions) error {
	srcFull, err := s.fullPath(opts.SourceKey)
	if err != nil {
		return err
	}
	destFull, err := s.fullPath(opts.DestKey)
	if err != nil {
		return err
	}
	if _, err := os.Stat(srcFull); os.IsNotExist(err) {
		return storage.ErrKeyNotFound(opts.SourceKey)
	}
	if err := os.MkdirAll(filepath.Dir(destFull), 0o750); err != nil {
		return fmt.Errorf("storage: create directory: %w", err)
	}
	// Rename is atomic on the same filesystem.
	if err := os.Rename(srcFull, destFull); err != nil {
		return fmt.Errorf("storage: move file: %w", err)
	}
	return nil
}

func (s *Storage) Duplicate(ctx context.Context, opts storage.DuplicateOptions) (string, error) {
	dest := opts.DestKey
	if dest == "" {
		dest = storage.DuplicateKey(opts.SourceKey)
	}
	if err := s.Copy(ctx, storage.CopyOptions{SourceKey: opts.SourceKey, DestKey: dest}); err != nil {
		return "", err
	}
	return dest, nil
}

// SignedURL returns a plain file URL; the local backend has no signing
// authority, and the URL shape keeps caller code uniform in development.
func (s *Storage) SignedURL(ctx context.Context, opts storage.SignedURLOptions) (string, error) {
	return s.PublicURL(ctx, opts.Key)
}

func (s *Storage) PublicURL(_ context.Context, key string) (string, error) {
	full, err := s.fullPath(key)
	if err != nil {
		return "", err
	}
	u := &url.URL{Scheme: "file", Path: full}
	return u.String(), nil
}

// --- folder operations ---

func (s *Storage) folderPath(prefix string) (string, error) {
	return s.fullPath(strings.TrimSuffix(storage.FolderPrefix(prefix), "/"))
}

func (s *Storage) CreateFolder(_ context.Context, prefix string) error {
	full, err := s.folderPath(prefix)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0o750); err != nil {
		return fmt.Errorf("storage: create folder: %w", err)
	}
	return nil
}

func (s *Storage) DeleteFolder(ctx context.Context, prefix string) (int, error) {
	list, err := s.List(ctx, storage.ListOptions{Prefix: storage.FolderPrefix(prefix)})
	if err != nil {
		return 0, err
	}
	full, err := s.folderPath(prefix)
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(full); err != nil {
		return 0, fmt.Errorf("storage: delete folder: %w", err)
	}
	return len(list.Files), nil
}

func (s *Storage) FolderExists(_ context.Context, prefix string) (bool, error) {
	full, err := s.folderPath(prefix)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("storage: stat folder: %w", err)
	}
	return info.IsDir(), nil
}

func (s *Storage) ListFolders(_ context.Context, prefix string) ([]storage.FolderInfo, error) {
	full, err := s.folderPath(prefix)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: read folder: %w", err)
	}

	var folders []storage.FolderInfo
	base := storage.FolderPrefix(prefix)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		folders = append(folders, storage.FolderInfo{
			Prefix: base + e.Name() + "/",
			Name:   e.Name(),
		})
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Prefix < folders[j].Prefix })
	return folders, nil
}

func (s *Storage) CopyFolder(ctx context.Context, src, dest string) (int, error) {
	srcPrefix := storage.FolderPrefix(src)
	destPrefix := storage.FolderPrefix(dest)

	list, err := s.List(ctx, storage.ListOptions{Prefix: srcPrefix})
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, f := range list.Files {
		destKey := destPrefix + strings.TrimPrefix(f.Key, srcPrefix)
		if err := s.Copy(ctx, storage.CopyOptions{SourceKey: f.Key, DestKey: destKey}); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

func (s *Storage) MoveFolder(ctx context.Context, src, dest string) (int, error) {
	n, err := s.CopyFolder(ctx, src, dest)
	if err != nil {
		return 0, err
	}
	if _, err := s.DeleteFolder(ctx, src); err != nil {
		return n, err
	}
	return n, nil
}
