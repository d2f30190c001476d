// Package cloudinary implements the storage backend for the Cloudinary
// media CDN. Cloudinary is asset-oriented rather than object-oriented:
// byte-level reads and in-store copies have no API equivalent, so Download,
// Copy, Move and Duplicate return typed NOT_SUPPORTED errors and callers are
// expected to work with delivery URLs instead.
package cloudinary

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
	"github.com/pelatformlabs/toolkits-sub000/storage"
)

// resourceTypes is the probe order for operations that need an asset's
// resource type: most platform assets are images, then videos, then raw.
var resourceTypes = []string{"image", "video", "raw"}

func init() {
	storage.RegisterFactory(storage.ProviderCloudinary, func(cfg storage.Config, log *logger.Logger) (storage.Storage, error) {
		return NewStorage(cfg, log)
	})
}

// Storage implements storage.Storage on top of the Cloudinary upload and
// admin APIs.
type Storage struct {
	api       mediaAPI
	cloudName string
	log       *logger.Logger
}

var _ storage.Storage = (*Storage)(nil)

// NewStorage creates a Cloudinary storage backend from the given config.
func NewStorage(cfg storage.Config, log *logger.Logger) (*Storage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, apperrors.ConfigError(fmt.Sprintf("storage: cloudinary init: %v", err))
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Storage{
		api:       &sdkClient{cld: cld},
		cloudName: cfg.CloudName,
		log:       log.WithComponent("storage.cloudinary"),
	}, nil
}

func (s *Storage) Provider() string { return storage.ProviderCloudinary }

func (s *Storage) Upload(ctx context.Context, opts storage.UploadOptions) (*storage.UploadResult, error) {
	key := storage.CleanKey(opts.Key)
	if key == "" {
		return nil, apperrors.Validation("upload key must not be empty")
	}

	res, err := s.api.Upload(ctx, opts.Body, uploader.UploadParams{
		PublicID:     key,
		Overwrite:    api.Bool(true),
		ResourceType: "auto",
	})
	if err != nil {
		return nil, apperrors.ExternalServiceError("cloudinary", err)
	}

	s.log.Debug("uploaded asset", logger.Fields(
		logger.FieldKey, res.PublicID,
	))
	return &storage.UploadResult{
		Key:         res.PublicID,
		Size:        int64(res.Bytes),
		ContentType: opts.ContentType,
		URL:         res.SecureURL,
	}, nil
}

// Download is not supported: Cloudinary delivers assets through its CDN,
// not through an object-read API.
func (s *Storage) Download(_ context.Context, opts storage.DownloadOptions) (*storage.DownloadResult, error) {
	return nil, storage.ErrNotSupported("download", storage.ProviderCloudinary)
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	key = storage.CleanKey(key)
	for _, rt := range resourceTypes {
		res, err := s.api.Destroy(ctx, uploader.DestroyParams{
			PublicID:     key,
			ResourceType: rt,
		})
		if err != nil {
			return apperrors.ExternalServiceError("cloudinary", err)
		}
		if res.Result == "ok" {
			return nil
		}
	}
	// Destroy reports "not found" for every type; deletes are idempotent.
	return nil
}

func (s *Storage) BatchDelete(ctx context.Context, keys []string) (*storage.BatchDeleteResult, error) {
	result := &storage.BatchDeleteResult{}
	if len(keys) == 0 {
		return result, nil
	}

	cleaned := make([]string, len(keys))
	for i, key := range keys {
		cleaned[i] = storage.CleanKey(key)
	}

	remaining := map[string]bool{}
	for _, key := range cleaned {
		remaining[key] = true
	}

	for _, rt := range resourceTypes {
		if len(remaining) == 0 {
			break
		}
		batch := make([]string, 0, len(remaining))
		for key := range remaining {
			batch = append(batch, key)
		}
		res, err := s.api.DeleteAssets(ctx, admin.DeleteAssetsParams{
			PublicIDs:    api.CldAPIArray(batch),
			AssetType:    api.AssetType(rt),
			DeliveryType: "upload",
		})
		if err != nil {
			return nil, apperrors.ExternalServiceError("cloudinary", err)
		}
		for key, state := range res.Deleted {
			if state == "deleted" {
				result.Deleted = append(result.Deleted, key)
				delete(remaining, key)
			}
		}
	}

	// Whatever is left did not exist under any resource type. Deleting a
	// missing object is not an error, so count it as done.
	for key := range remaining {
		result.Deleted = append(result.Deleted, key)
	}
	return result, nil
}

func (s *Storage) List(ctx context.Context, opts storage.ListOptions) (*storage.ListResult, error) {
	params := admin.AssetsParams{
		Prefix:       opts.Prefix,
		DeliveryType: "upload",
	}
	if opts.MaxKeys > 0 {
		params.MaxResults = int(opts.MaxKeys)
	}
	if opts.ContinuationToken != "" {
		params.NextCursor = opts.ContinuationToken
	}

	res, err := s.api.Assets(ctx, params)
	if err != nil {
		return nil, apperrors.ExternalServiceError("cloudinary", err)
	}

	result := &storage.ListResult{
		NextToken: res.NextCursor,
		Truncated: res.NextCursor != "",
	}
	for _, a := range res.Assets {
		result.Files = append(result.Files, storage.FileInfo{
			Key:          a.PublicID,
			Size:         int64(a.Bytes),
			LastModified: a.CreatedAt,
			ContentType:  storage.TypeByExtension("." + a.Format),
		})
	}
	return result, nil
}

func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.stat(ctx, storage.CleanKey(key))
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Storage) Stat(ctx context.Context, key string) (*storage.FileInfo, error) {
	return s.stat(ctx, storage.CleanKey(key))
}

func (s *Storage) stat(ctx context.Context, key string) (*storage.FileInfo, error) {
	// probeErr keeps the first transport failure; a later not-found probe
	// must not downgrade it to NOT_FOUND.
	var probeErr error
	for _, rt := range resourceTypes {
		res, err := s.api.Asset(ctx, admin.AssetParams{
			PublicID:  key,
			AssetType: api.AssetType(rt),
		})
		if err == nil && res.Error.Message != "" {
			err = fmt.Errorf("%s", res.Error.Message)
		}
		if err != nil {
			if probeErr == nil && !isNotFoundMessage(err) {
				probeErr = err
			}
			continue
		}
		return &storage.FileInfo{
			Key:          res.PublicID,
			Size:         int64(res.Bytes),
			LastModified: res.CreatedAt,
			ContentType:  storage.TypeByExtension("." + res.Format),
		}, nil
	}
	if probeErr != nil {
		return nil, apperrors.ExternalServiceError("cloudinary", probeErr)
	}
	return nil, storage.ErrKeyNotFound(key)
}

// Copy is not supported: the Cloudinary API has no server-side asset copy.
func (s *Storage) Copy(_ context.Context, opts storage.CopyOptions) error {
	return storage.ErrNotSupported("copy", storage.ProviderCloudinary)
}

// Move is not supported; renames require the rename endpoint with different
// semantics than a key move.
func (s *Storage) Move(_ context.Context, opts storage.CopyOptions) error {
	return storage.ErrNotSupported("move", storage.ProviderCloudinary)
}

// Duplicate is not supported for the same reason as Copy.
func (s *Storage) Duplicate(_ context.Context, opts storage.DuplicateOptions) (string, error) {
	return "", storage.ErrNotSupported("duplicate", storage.ProviderCloudinary)
}

// SignedURL is not supported: Cloudinary private assets use signed delivery
// transformations, which do not map onto expiring GET/PUT URLs.
func (s *Storage) SignedURL(_ context.Context, opts storage.SignedURLOptions) (string, error) {
	return "", storage.ErrNotSupported("signed url", storage.ProviderCloudinary)
}

// PublicURL builds the CDN delivery URL for an asset, assuming the image
// resource type that platform assets default to.
func (s *Storage) PublicURL(_ context.Context, key string) (string, error) {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s",
		s.cloudName, storage.CleanKey(key)), nil
}

// --- folder operations ---

func (s *Storage) CreateFolder(ctx context.Context, prefix string) error {
	folder := strings.TrimSuffix(storage.FolderPrefix(prefix), "/")
	if folder == "" {
		return apperrors.Validation("folder name must not be empty")
	}
	if _, err := s.api.CreateFolder(ctx, admin.CreateFolderParams{Folder: folder}); err != nil {
		return apperrors.ExternalServiceError("cloudinary", err)
	}
	return nil
}

func (s *Storage) DeleteFolder(ctx context.Context, prefix string) (int, error) {
	folder := strings.TrimSuffix(storage.FolderPrefix(prefix), "/")

	// Cloudinary refuses to delete non-empty folders, so clear assets first.
	deleted := 0
	for {
		page, err := s.List(ctx, storage.ListOptions{Prefix: folder + "/"})
		if err != nil {
			return deleted, err
		}
		if len(page.Files) == 0 {
			break
		}
		keys := make([]string, len(page.Files))
		for i, f := range page.Files {
			keys[i] = f.Key
		}
		res, err := s.BatchDelete(ctx, keys)
		if err != nil {
			return deleted, err
		}
		deleted += len(res.Deleted)
		if !page.Truncated {
			break
		}
	}

	if _, err := s.api.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folder}); err != nil {
		return deleted, apperrors.ExternalServiceError("cloudinary", err)
	}
	return deleted, nil
}

func (s *Storage) FolderExists(ctx context.Context, prefix string) (bool, error) {
	folder := strings.TrimSuffix(storage.FolderPrefix(prefix), "/")
	parent := ""
	name := folder
	if i := strings.LastIndex(folder, "/"); i >= 0 {
		parent, name = folder[:i], folder[i+1:]
	}

	res, err := s.api.SubFolders(ctx, admin.SubFoldersParams{Folder: parent})
	if err != nil {
		return false, apperrors.ExternalServiceError("cloudinary", err)
	}
	for _, f := range res.Folders {
		if f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *Storage) ListFolders(ctx context.Context, prefix string) ([]storage.FolderInfo, error) {
	folder := strings.TrimSuffix(storage.FolderPrefix(prefix), "/")

	res, err := s.api.SubFolders(ctx, admin.SubFoldersParams{Folder: folder})
	if err != nil {
		return nil, apperrors.ExternalServiceError("cloudinary", err)
	}

	folders := make([]storage.FolderInfo, 0, len(res.Folders))
	for _, f := range res.Folders {
		folders = append(folders, storage.FolderInfo{
			Prefix: f.Path + "/",
			Name:   f.Name,
		})
	}
	return folders, nil
}

// CopyFolder is not supported; see Copy.
func (s *Storage) CopyFolder(_ context.Context, src, dest string) (int, error) {
	return 0, storage.ErrNotSupported("copy folder", storage.ProviderCloudinary)
}

// MoveFolder is not supported; see Move.
func (s *Storage) MoveFolder(_ context.Context, src, dest string) (int, error) {
	return 0, storage.ErrNotSupported("move folder", storage.ProviderCloudinary)
}

func isNotFoundMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "resource not found")
}
