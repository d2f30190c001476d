package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pelatformlabs/toolkits-sub000/component"
	"github.com/pelatformlabs/toolkits-sub000/storage"
	"github.com/pelatformlabs/toolkits-sub000/testutil"
)

// memFile holds a stored object's data and metadata.
type memFile struct {
	data        []byte
	contentType string
	modTime     time.Time
}

// Component is a test storage backend backed by an in-memory map.
// It implements component.Component, testutil.TestComponent, and
// storage.Storage, including the folder operations, so provider-agnostic
// code can be exercised without network access.
type Component struct {
	files   map[string]*memFile
	started bool
	mu      sync.RWMutex
}

var _ component.Component = (*Component)(nil)
var _ testutil.TestComponent = (*Component)(nil)
var _ storage.Storage = (*Component)(nil)

// NewComponent creates a new in-memory storage test component.
func NewComponent() *Component {
	return &Component{}
}

// New creates an in-memory storage that is already started, for tests that
// do not need the component lifecycle.
func New() *Component {
	return &Component{files: make(map[string]*memFile), started: true}
}

// Storage returns the component itself as a storage.Storage interface.
func (c *Component) Storage() storage.Storage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return nil
	}
	return c
}

// --- component.Component ---

func (c *Component) Name() string { return "storage-test" }

func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return fmt.Errorf("component already started")
	}
	c.files = make(map[string]*memFile)
	c.started = true
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = nil
	c.started = false
	return nil
}

func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// --- testutil.TestComponent ---

func (c *Component) Reset(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return fmt.Errorf("component not started")
	}
	c.files = make(map[string]*memFile)
	return nil
}

func (c *Component) Snapshot(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return nil, fmt.Errorf("component not started")
	}
	snap := make(map[string]*memFile, len(c.files))
	for k, v := range c.files {
		cp := *v
		cp.data = append([]byte(nil), v.data...)
		snap[k] = &cp
	}
	return snap, nil
}

func (c *Component) Restore(_ context.Context, snap interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return fmt.Errorf("component not started")
	}
	s, ok := snap.(map[string]*memFile)
	if !ok {
		return fmt.Errorf("invalid snapshot type: expected map[string]*memFile, got %T", snap)
	}
	c.files = make(map[string]*memFile, len(s))
	for k, v := range s {
		cp := *v
		cp.data = append([]byte(nil), v.data...)
		c.files[k] = &cp
	}
	return nil
}

// --- storage.Storage ---

func (c *Component) Provider() string { return "memory" }

func (c *Component) Upload(_ context.Context, opts storage.UploadOptions) (*storage.UploadResult, error) {
	data, err := io.ReadAll(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload data: %w", err)
	}
	ct := opts.ContentType
	if ct == "" {
		ct = storage.TypeByExtension(opts.Key)
	}
	now := time.Now()

	c.mu.Lock()
	c.files[opts.Key] = &memFile{data: data, contentType: ct, modTime: now}
	c.mu.Unlock()

	return &storage.UploadResult{
		Key:          opts.Key,
		Size:         int64(len(data)),
		ContentType:  ct,
		URL:          "mem://" + opts.Key,
		LastModified: now,
	}, nil
}

func (c *Component) Download(_ context.Context, opts storage.DownloadOptions) (*storage.DownloadResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.files[opts.Key]
	if !ok {
		return nil, storage.ErrKeyNotFound(opts.Key)
	}
	return &storage.DownloadResult{
		Body:         io.NopCloser(bytes.NewReader(f.data)),
		Size:         int64(len(f.data)),
		ContentType:  f.contentType,
		LastModified: f.modTime,
	}, nil
}

func (c *Component) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, key)
	return nil
}

func (c *Component) BatchDelete(_ context.Context, keys []string) (*storage.BatchDeleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := &storage.BatchDeleteResult{}
	for _, key := range keys {
		delete(c.files, key)
		res.Deleted = append(res.Deleted, key)
	}
	return res, nil
}

func (c *Component) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.files[key]
	return ok, nil
}

func (c *Component) Stat(_ context.Context, key string) (*storage.FileInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.files[key]
	if !ok {
		return nil, storage.ErrKeyNotFound(key)
	}
	return &storage.FileInfo{
		Key:          key,
		Size:         int64(len(f.data)),
		LastModified: f.modTime,
		ContentType:  f.contentType,
	}, nil
}

func (c *Component) List(_ context.Context, opts storage.ListOptions) (*storage.ListResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := &storage.ListResult{}
	folderSeen := map[string]bool{}
	for key, f := range c.files {
		if !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, opts.Prefix)
		if opts.Delimiter != "" {
			if i := strings.Index(rest, opts.Delimiter); i >= 0 {
				prefix := opts.Prefix + rest[:i+1]
				if !folderSeen[prefix] {
					folderSeen[prefix] = true
					res.Folders = append(res.Folders, storage.FolderInfo{
						Prefix: prefix,
						Name:   storage.BaseName(prefix),
					})
				}
				continue
			}
		}
		if strings.HasSuffix(key, "/") {
			// folder marker, not a file
			continue
		}
		res.Files = append(res.Files, storage.FileInfo{
			Key:          key,
			Size:         int64(len(f.data)),
			LastModified: f.modTime,
			ContentType:  f.contentType,
		})
	}
	sort.Slice(res.Files, func(i, j int) bool { return res.Files[i].Key < res.Files[j].Key })
	sort.Slice(res.Folders, func(i, j int) bool { return res.Folders[i].Prefix < res.Folders[j].Prefix })
	return res, nil
}

func (c *Component) Copy(_ context.Context, opts storage.CopyOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	src, ok := c.files[opts.SourceKey]
	if !ok {
		return storage.ErrKeyNotFound(opts.SourceKey)
	}
	cp := *src
	cp.data = append([]byte(nil), src.data...)
	cp.modTime = time.Now()
	c.files[opts.DestKey] = &cp
	return nil
}

func (c *Component) Move(ctx context.Context, opts storage.CopyOptions) error {
	if err := c.Copy(ctx, opts); err != nil {
		return err
	}
	return c.Delete(ctx, opts.SourceKey)
}

func (c *Component) Duplicate(ctx context.Context, opts storage.DuplicateOptions) (string, error) {
	dest := opts.DestKey
	if dest == "" {
		dest = storage.DuplicateKey(opts.SourceKey)
	}
	if err := c.Copy(ctx, storage.CopyOptions{SourceKey: opts.SourceKey, DestKey: dest}); err != nil {
		return "", err
	}
	return dest, nil
}

func (c *Component) SignedURL(_ context.Context, opts storage.SignedURLOptions) (string, error) {
	expiry := opts.Expiry
	if expiry <= 0 {
		expiry = storage.DefaultSignedURLExpiry
	}
	return fmt.Sprintf("mem://%s?expires=%d", opts.Key, int(expiry.Seconds())), nil
}

func (c *Component) PublicURL(_ context.Context, key string) (string, error) {
	return "mem://" + key, nil
}

// --- storage.FolderStorage ---

func (c *Component) CreateFolder(_ context.Context, prefix string) error {
	prefix = storage.FolderPrefix(prefix)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[prefix] = &memFile{modTime: time.Now()}
	return nil
}

func (c *Component) DeleteFolder(_ context.Context, prefix string) (int, error) {
	prefix = storage.FolderPrefix(prefix)
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key := range c.files {
		if strings.HasPrefix(key, prefix) {
			delete(c.files, key)
			n++
		}
	}
	return n, nil
}

func (c *Component) FolderExists(_ context.Context, prefix string) (bool, error) {
	prefix = storage.FolderPrefix(prefix)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for key := range c.files {
		if strings.HasPrefix(key, prefix) {
			return true, nil
		}
	}
	return false, nil
}

func (c *Component) ListFolders(ctx context.Context, prefix string) ([]storage.FolderInfo, error) {
	res, err := c.List(ctx, storage.ListOptions{
		Prefix:    storage.FolderPrefix(prefix),
		Delimiter: "/",
	})
	if err != nil {
		return nil, err
	}
	return res.Folders, nil
}

func (c *Component) CopyFolder(_ context.Context, src, dest string) (int, error) {
	srcPrefix := storage.FolderPrefix(src)
	destPrefix := storage.FolderPrefix(dest)
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key, f := range c.files {
		if !strings.HasPrefix(key, srcPrefix) {
			continue
		}
		cp := *f
		cp.data = append([]byte(nil), f.data...)
		c.files[destPrefix+strings.TrimPrefix(key, srcPrefix)] = &cp
		if !strings.HasSuffix(key, "/") {
			n++
		}
	}
	return n, nil
}

func (c *Component) MoveFolder(ctx context.Context, src, dest string) (int, error) {
	n, err := c.CopyFolder(ctx, src, dest)
	if err != nil {
		return 0, err
	}
	if _, err := c.DeleteFolder(ctx, src); err != nil {
		return n, err
	}
	return n, nil
}
