package cloudinary

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// mediaAPI is the slice of the Cloudinary SDK this backend uses. Tests
// inject a mock implementation.
type mediaAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
	Asset(ctx context.Context, params admin.AssetParams) (*admin.AssetResult, error)
	Assets(ctx context.Context, params admin.AssetsParams) (*admin.AssetsResult, error)
	DeleteAssets(ctx context.Context, params admin.DeleteAssetsParams) (*admin.DeleteAssetsResult, error)
	CreateFolder(ctx context.Context, params admin.CreateFolderParams) (*admin.CreateFolderResult, error)
	DeleteFolder(ctx context.Context, params admin.DeleteFolderParams) (*admin.DeleteFolderResult, error)
	SubFolders(ctx context.Context, params admin.SubFoldersParams) (*admin.FoldersResult, error)
}

// sdkClient adapts *cloudinary.Cloudinary to mediaAPI.
type sdkClient struct {
	cld *cloudinary.Cloudinary
}

func (c *sdkClient) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	return c.cld.Upload.Upload(ctx, file, params)
}

func (c *sdkClient) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	return c.cld.Upload.Destroy(ctx, params)
}

func (c *sdkClient) Asset(ctx context.Context, params admin.AssetParams) (*admin.AssetResult, error) {
	return c.cld.Admin.Asset(ctx, params)
}

func (c *sdkClient) Assets(ctx context.Context, params admin.AssetsParams) (*admin.AssetsResult, error) {
	return c.cld.Admin.Assets(ctx, params)
}

func (c *sdkClient) DeleteAssets(ctx context.Context, params admin.DeleteAssetsParams) (*admin.DeleteAssetsResult, error) {
	return c.cld.Admin.DeleteAssets(ctx, params)
}

func (c *sdkClient) CreateFolder(ctx context.Context, params admin.CreateFolderParams) (*admin.CreateFolderResult, error) {
	return c.cld.Admin.CreateFolder(ctx, params)
}

func (c *sdkClient) DeleteFolder(ctx context.Context, params admin.DeleteFolderParams) (*admin.DeleteFolderResult, error) {
	return c.cld.Admin.DeleteFolder(ctx, params)
}

func (c *sdkClient) SubFolders(ctx context.Context, params admin.SubFoldersParams) (*admin.FoldersResult, error) {
	return c.cld.Admin.SubFolders(ctx, params)
}
