// Package s3 implements the storage backend for AWS S3 and S3-compatible
// services: Cloudflare R2, MinIO, DigitalOcean Spaces, Supabase Storage and
// custom endpoints. Folders are emulated with trailing-slash marker objects
// and delimiter listings.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
	"github.com/pelatformlabs/toolkits-sub000/storage"
)

// maxKeysPerDelete is the S3 DeleteObjects limit per request.
const maxKeysPerDelete = 1000

func init() {
	storage.RegisterFactory("s3", func(cfg storage.Config, log *logger.Logger) (storage.Storage, error) {
		return NewStorage(context.Background(), cfg, log)
	})
}

// Storage implements storage.Storage over the S3 wire protocol.
type Storage struct {
	client   S3API
	presign  Presigner
	provider string
	bucket   string
	region   string
	endpoint string
	// publicBase is the prefix for PublicURL; derived from the provider
	// when Config.PublicBaseURL is empty.
	publicBase  string
	maxFileSize int64
	log         *logger.Logger
}

var _ storage.Storage = (*Storage)(nil)

// NewStorage creates an S3 storage backend from the given config. The AWS
// default credential chain applies when no static keys are configured.
func NewStorage(ctx context.Context, cfg storage.Config, log *logger.Logger) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	client := awss3.NewFromConfig(awsCfg, s3Opts...)
	if log == nil {
		log = logger.Nop()
	}

	s := &Storage{
		client:      client,
		presign:     awss3.NewPresignClient(client),
		provider:    cfg.Provider,
		bucket:      cfg.Bucket,
		region:      cfg.Region,
		endpoint:    strings.TrimSuffix(cfg.Endpoint, "/"),
		maxFileSize: cfg.MaxFileSize,
		log:         log.WithComponent("storage.s3"),
	}
	s.publicBase = strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if s.publicBase == "" {
		s.publicBase = s.derivePublicBase()
	}
	return s, nil
}

// newWithClient wires explicit API implementations, for tests.
func newWithClient(client S3API, presign Presigner, provider, bucket string) *Storage {
	s := &Storage{
		client:   client,
		presign:  presign,
		provider: provider,
		bucket:   bucket,
		region:   "us-east-1",
		log:      logger.Nop().WithComponent("storage.s3"),
	}
	s.publicBase = s.derivePublicBase()
	return s
}

// Provider returns the configured provider discriminant, not "s3", so
// callers see which S3-compatible service is behind the interface.
func (s *Storage) Provider() string { return s.provider }

func (s *Storage) Upload(ctx context.Context, opts storage.UploadOptions) (*storage.UploadResult, error) {
	key := storage.CleanKey(opts.Key)
	if key == "" {
		return nil, apperrors.Validation("upload key must not be empty")
	}
	if s.maxFileSize > 0 && opts.Size > s.maxFileSize {
		return nil, storage.ErrFileTooLarge(opts.Size, s.maxFileSize)
	}

	body := opts.Body
	ct := opts.ContentType
	if ct == "" {
		ct = storage.TypeByExtension(key)
		if ct == "application/octet-stream" && body != nil {
			sniffed, replay, err := storage.DetectContentType(body)
			if err != nil {
				return nil, apperrors.Wrap(err)
			}
			ct = sniffed
			body = replay
		}
	}

	input := &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(ct),
	}
	if opts.Size > 0 {
		input.ContentLength = aws.Int64(opts.Size)
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}
	if len(opts.Metadata) > 0 {
		input.Metadata = opts.Metadata
	}
	if opts.ACLPublic {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return nil, s.wrapErr("upload", key, err)
	}

	url, _ := s.PublicURL(ctx, key)
	s.log.Debug("uploaded object", logger.Fields(
		logger.FieldKey, key,
		logger.FieldBucket, s.bucket,
	))
	return &storage.UploadResult{
		Key:         key,
		ETag:        aws.ToString(out.ETag),
		Size:        opts.Size,
		ContentType: ct,
		URL:         url,
	}, nil
}

func (s *Storage) Download(ctx context.Context, opts storage.DownloadOptions) (*storage.DownloadResult, error) {
	input := &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storage.CleanKey(opts.Key)),
	}
	if opts.Range != "" {
		input.Range = aws.String(opts.Range)
	}

	out, err := s.client.GetObject(ctx, input)
	if err != nil {
		return nil, s.wrapErr("download", opts.Key, err)
	}

	res := &storage.DownloadResult{
		Body:        out.Body,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
	}
	if out.LastModified != nil {
		res.LastModified = *out.LastModified
	}
	return res, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storage.CleanKey(key)),
	})
	if err != nil {
		return s.wrapErr("delete", key, err)
	}
	return nil
}

func (s *Storage) BatchDelete(ctx context.Context, keys []string) (*storage.BatchDeleteResult, error) {
	result := &storage.BatchDeleteResult{}
	for start := 0; start < len(keys); start += maxKeysPerDelete {
		end := start + maxKeysPerDelete
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[start:end]

		objects := make([]types.ObjectIdentifier, len(chunk))
		for i, key := range chunk {
			objects[i] = types.ObjectIdentifier{Key: aws.String(storage.CleanKey(key))}
		}

		out, err := s.client.DeleteObjects(ctx, &awss3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(false),
			},
		})
		if err != nil {
			return nil, s.wrapErr("batch delete", "", err)
		}

		for _, d := range out.Deleted {
			result.Deleted = append(result.Deleted, aws.ToString(d.Key))
		}
		for _, e := range out.Errors {
			result.Failed = append(result.Failed, storage.BatchError{
				Key:     aws.ToString(e.Key),
				Message: aws.ToString(e.Message),
			})
		}
	}
	return result, nil
}

func (s *Storage) List(ctx context.Context, opts storage.ListOptions) (*storage.ListResult, error) {
	input := &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(opts.Prefix),
	}
	if opts.Delimiter != "" {
		input.Delimiter = aws.String(opts.Delimiter)
	}
	if opts.MaxKeys > 0 {
		input.MaxKeys = aws.Int32(opts.MaxKeys)
	}
	if opts.ContinuationToken != "" {
		input.ContinuationToken = aws.String(opts.ContinuationToken)
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, s.wrapErr("list", opts.Prefix, err)
	}

	result := &storage.ListResult{
		NextToken: aws.ToString(out.NextContinuationToken),
		Truncated: aws.ToBool(out.IsTruncated),
	}
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if strings.HasSuffix(key, "/") {
			// folder marker
			continue
		}
		fi := storage.FileInfo{
			Key:  key,
			Size: aws.ToInt64(obj.Size),
			ETag: aws.ToString(obj.ETag),
		}
		if obj.LastModified != nil {
			fi.LastModified = *obj.LastModified
		}
		result.Files = append(result.Files, fi)
	}
	for _, cp := range out.CommonPrefixes {
		prefix := aws.ToString(cp.Prefix)
		result.Folders = append(result.Folders, storage.FolderInfo{
			Prefix: prefix,
			Name:   storage.BaseName(prefix),
		})
	}
	return result, nil
}

func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storage.CleanKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, s.wrapErr("exists", key, err)
	}
	return true, nil
}

func (s *Storage) Stat(ctx context.Context, key string) (*storage.FileInfo, error) {
	out, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storage.CleanKey(key)),
	})
	if err != nil {
		return nil, s.wrapErr("stat", key, err)
	}

	fi := &storage.FileInfo{
		Key:         storage.CleanKey(key),
		Size:        aws.ToInt64(out.ContentLength),
		ETag:        aws.ToString(out.ETag),
		ContentType: aws.ToString(out.ContentType),
	}
	if out.LastModified != nil {
		fi.LastModified = *out.LastModified
	}
	return fi, nil
}

func (s *Storage) Copy(ctx context.Context, opts storage.CopyOptions) error {
	src := storage.CleanKey(opts.SourceKey)
	dest := storage.CleanKey(opts.DestKey)
	_, err := s.client.CopyObject(ctx, &awss3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		Key:        aws.String(dest),
		CopySource: aws.String(s.bucket + "/" + src),
	})
	if err != nil {
		return s.wrapErr("copy", src, err)
	}
	return nil
}

func (s *Storage) Move(ctx context.Context, opts storage.CopyOptions) error {
	if err := s.Copy(ctx, opts); err != nil {
		return err
	}
	if err := s.Delete(ctx, opts.SourceKey); err != nil {
		// Copy landed but cleanup failed: both objects exist now.
		return apperrors.Internal(fmt.Errorf(
			"move: copied to %s but failed to delete source %s: %w",
			opts.DestKey, opts.SourceKey, err))
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

func (s *Storage) SignedURL(ctx context.Context, opts storage.SignedURLOptions) (string, error) {
	expiry := opts.Expiry
	if expiry <= 0 {
		expiry = storage.DefaultSignedURLExpiry
	}
	key := storage.CleanKey(opts.Key)

	presignOpt := func(o *awss3.PresignOptions) { o.Expires = expiry }

	switch opts.Method {
	case storage.SignedPUT:
		req, err := s.presign.PresignPutObject(ctx, &awss3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}, presignOpt)
		if err != nil {
			return "", s.wrapErr("sign url", key, err)
		}
		return req.URL, nil
	default:
		req, err := s.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}, presignOpt)
		if err != nil {
			return "", s.wrapErr("sign url", key, err)
		}
		return req.URL, nil
	}
}

func (s *Storage) PublicURL(_ context.Context, key string) (string, error) {
	return s.publicBase + "/" + storage.CleanKey(key), nil
}

// derivePublicBase maps the provider to its public URL shape.
func (s *Storage) derivePublicBase() string {
	switch s.provider {
	case storage.ProviderAWS, "":
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region)
	case storage.ProviderSupabase:
		// Supabase serves public objects under /object/public/<bucket>.
		return fmt.Sprintf("%s/object/public/%s", s.endpoint, s.bucket)
	default:
		// R2, MinIO, Spaces and custom endpoints use path-style URLs.
		return fmt.Sprintf("%s/%s", s.endpoint, s.bucket)
	}
}

// --- folder operations ---

func (s *Storage) CreateFolder(ctx context.Context, prefix string) error {
	marker := storage.FolderPrefix(prefix)
	if marker == "" {
		return apperrors.Validation("folder name must not be empty")
	}
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(marker),
		Body:          strings.NewReader(""),
		ContentLength: aws.Int64(0),
	})
	if err != nil {
		return s.wrapErr("create folder", marker, err)
	}
	return nil
}

func (s *Storage) DeleteFolder(ctx context.Context, prefix string) (int, error) {
	keys, err := s.listAllKeys(ctx, storage.FolderPrefix(prefix))
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	res, err := s.BatchDelete(ctx, keys)
	if err != nil {
		return 0, err
	}
	if len(res.Failed) > 0 {
		return len(res.Deleted), apperrors.Internal(fmt.Errorf(
			"delete folder %s: %d of %d objects failed, first: %s",
			prefix, len(res.Failed), len(keys), res.Failed[0].Message))
	}
	return len(res.Deleted), nil
}

func (s *Storage) FolderExists(ctx context.Context, prefix string) (bool, error) {
	out, err := s.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(storage.FolderPrefix(prefix)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, s.wrapErr("folder exists", prefix, err)
	}
	return aws.ToInt32(out.KeyCount) > 0, nil
}

func (s *Storage) ListFolders(ctx context.Context, prefix string) ([]storage.FolderInfo, error) {
	var folders []storage.FolderInfo
	opts := storage.ListOptions{Prefix: storage.FolderPrefix(prefix), Delimiter: "/"}
	for {
		page, err := s.List(ctx, opts)
		if err != nil {
			return nil, err
		}
		folders = append(folders, page.Folders...)
		if !page.Truncated || page.NextToken == "" {
			break
		}
		opts.ContinuationToken = page.NextToken
	}
	return folders, nil
}

func (s *Storage) CopyFolder(ctx context.Context, src, dest string) (int, error) {
	srcPrefix := storage.FolderPrefix(src)
	destPrefix := storage.FolderPrefix(dest)

	keys, err := s.listAllKeys(ctx, srcPrefix)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, key := range keys {
		destKey := destPrefix + strings.TrimPrefix(key, srcPrefix)
		if err := s.Copy(ctx, storage.CopyOptions{SourceKey: key, DestKey: destKey}); err != nil {
			return copied, err
		}
		if !strings.HasSuffix(key, "/") {
			copied++
		}
	}
	return copied, nil
}

func (s *Storage) MoveFolder(ctx context.Context, src, dest string) (int, error) {
	n, err := s.CopyFolder(ctx, src, dest)
	if err != nil {
		return 0, err
	}
	if _, err := s.DeleteFolder(ctx, src); err != nil {
		return n, apperrors.Internal(fmt.Errorf(
			"move folder: copied to %s but failed to delete source %s: %w", dest, src, err))
	}
	return n, nil
}

// listAllKeys walks the full listing under prefix, markers included.
func (s *Storage) listAllKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	input := &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	for {
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, s.wrapErr("list", prefix, err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}
	return keys, nil
}

// wrapErr maps SDK failures onto the platform error taxonomy.
func (s *Storage) wrapErr(op, key string, err error) error {
	if isNotFound(err) {
		return storage.ErrKeyNotFound(key)
	}
	return apperrors.Internal(fmt.Errorf("storage: s3 %s %s: %w", op, key, err))
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
