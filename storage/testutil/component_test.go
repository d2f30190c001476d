package testutil

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pelatformlabs/toolkits-sub000/component"
	"github.com/pelatformlabs/toolkits-sub000/storage"
	"github.com/pelatformlabs/toolkits-sub000/testutil"
)

func TestComponent_Interfaces(t *testing.T) {
	comp := NewComponent()
	var _ component.Component = comp
	var _ testutil.TestComponent = comp
	var _ storage.Storage = comp
}

func TestComponent_Lifecycle(t *testing.T) {
	comp := NewComponent()
	ctx := context.Background()

	if comp.Storage() != nil {
		t.Error("Storage() should be nil before Start")
	}

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if comp.Storage() == nil {
		t.Error("Storage() should not be nil after Start")
	}

	health := comp.Health(ctx)
	if health.Status != component.StatusHealthy {
		t.Errorf("Health = %q, want %q", health.Status, component.StatusHealthy)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
}

func upload(t *testing.T, s storage.Storage, key, body string) {
	t.Helper()
	_, err := s.Upload(context.Background(), storage.UploadOptions{
		Key:  key,
		Body: strings.NewReader(body),
		Size: int64(len(body)),
	})
	if err != nil {
		t.Fatalf("Upload(%s) failed: %v", key, err)
	}
}

func TestComponent_UploadDownload(t *testing.T) {
	s := New()
	ctx := context.Background()

	upload(t, s, "test.txt", "hello world")

	exists, _ := s.Exists(ctx, "test.txt")
	if !exists {
		t.Error("Exists should return true after Upload")
	}

	res, err := s.Download(ctx, storage.DownloadOptions{Key: "test.txt"})
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer res.Body.Close()

	data, _ := io.ReadAll(res.Body)
	if string(data) != "hello world" {
		t.Errorf("Download = %q, want %q", string(data), "hello world")
	}
	if res.ContentType != "text/plain" {
		t.Errorf("ContentType = %q, want text/plain", res.ContentType)
	}

	if _, err := s.Download(ctx, storage.DownloadOptions{Key: "missing.txt"}); !storage.IsNotFound(err) {
		t.Errorf("Download(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestComponent_DeleteListURL(t *testing.T) {
	s := New()
	ctx := context.Background()

	upload(t, s, "dir/a.txt", "a")
	upload(t, s, "dir/b.txt", "b")
	upload(t, s, "other.txt", "c")

	res, _ := s.List(ctx, storage.ListOptions{Prefix: "dir/"})
	if len(res.Files) != 2 {
		t.Errorf("List(dir/) = %d files, want 2", len(res.Files))
	}

	url, _ := s.PublicURL(ctx, "dir/a.txt")
	if url != "mem://dir/a.txt" {
		t.Errorf("PublicURL = %q, want %q", url, "mem://dir/a.txt")
	}

	s.Delete(ctx, "dir/a.txt")
	exists, _ := s.Exists(ctx, "dir/a.txt")
	if exists {
		t.Error("Exists should return false after Delete")
	}
}

func TestComponent_ListDelimiter(t *testing.T) {
	s := New()
	ctx := context.Background()

	upload(t, s, "docs/a.txt", "a")
	upload(t, s, "docs/sub/b.txt", "b")
	upload(t, s, "docs/sub/c.txt", "c")

	res, err := s.List(ctx, storage.ListOptions{Prefix: "docs/", Delimiter: "/"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].Key != "docs/a.txt" {
		t.Errorf("Files = %v, want [docs/a.txt]", res.Files)
	}
	if len(res.Folders) != 1 || res.Folders[0].Prefix != "docs/sub/" {
		t.Errorf("Folders = %v, want [docs/sub/]", res.Folders)
	}
	if res.Folders[0].Name != "sub" {
		t.Errorf("Folder name = %q, want sub", res.Folders[0].Name)
	}
}

func TestComponent_CopyMoveDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	upload(t, s, "src.txt", "payload")

	if err := s.Copy(ctx, storage.CopyOptions{SourceKey: "src.txt", DestKey: "copy.txt"}); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	exists, _ := s.Exists(ctx, "copy.txt")
	if !exists {
		t.Error("copy.txt should exist after Copy")
	}

	if err := s.Move(ctx, storage.CopyOptions{SourceKey: "copy.txt", DestKey: "moved.txt"}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if ok, _ := s.Exists(ctx, "copy.txt"); ok {
		t.Error("copy.txt should be gone after Move")
	}
	if ok, _ := s.Exists(ctx, "moved.txt"); !ok {
		t.Error("moved.txt should exist after Move")
	}

	dest, err := s.Duplicate(ctx, storage.DuplicateOptions{SourceKey: "src.txt"})
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if dest != "src-copy.txt" {
		t.Errorf("Duplicate dest = %q, want src-copy.txt", dest)
	}
	if ok, _ := s.Exists(ctx, dest); !ok {
		t.Error("duplicate should exist")
	}
}

func TestComponent_Folders(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateFolder(ctx, "uploads"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	if ok, _ := s.FolderExists(ctx, "uploads"); !ok {
		t.Error("FolderExists should be true after CreateFolder")
	}

	upload(t, s, "uploads/a.txt", "a")
	upload(t, s, "uploads/b.txt", "b")

	n, err := s.CopyFolder(ctx, "uploads", "archive")
	if err != nil {
		t.Fatalf("CopyFolder failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CopyFolder copied %d objects, want 2", n)
	}
	if ok, _ := s.Exists(ctx, "archive/a.txt"); !ok {
		t.Error("archive/a.txt should exist after CopyFolder")
	}

	n, err = s.DeleteFolder(ctx, "uploads")
	if err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}
	if n != 3 { // marker + two files
		t.Errorf("DeleteFolder removed %d objects, want 3", n)
	}
	if ok, _ := s.FolderExists(ctx, "uploads"); ok {
		t.Error("FolderExists should be false after DeleteFolder")
	}
}

func TestComponent_BatchDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	upload(t, s, "a.txt", "a")
	upload(t, s, "b.txt", "b")

	res, err := s.BatchDelete(ctx, []string{"a.txt", "b.txt", "missing.txt"})
	if err != nil {
		t.Fatalf("BatchDelete failed: %v", err)
	}
	if len(res.Deleted) != 3 || len(res.Failed) != 0 {
		t.Errorf("BatchDelete = %d deleted/%d failed, want 3/0", len(res.Deleted), len(res.Failed))
	}
}

func TestComponent_ResetSnapshotRestore(t *testing.T) {
	comp := NewComponent()
	ctx := context.Background()
	comp.Start(ctx)
	defer comp.Stop(ctx)

	upload(t, comp, "a.txt", "data-a")
	upload(t, comp, "b.txt", "data-b")

	snap, err := comp.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}

	// Modify state
	upload(t, comp, "c.txt", "data-c")
	comp.Delete(ctx, "a.txt")

	// Restore
	if err := comp.Restore(ctx, snap); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	exists, _ := comp.Exists(ctx, "a.txt")
	if !exists {
		t.Error("'a.txt' should exist after Restore")
	}
	exists, _ = comp.Exists(ctx, "c.txt")
	if exists {
		t.Error("'c.txt' should not exist after Restore")
	}

	// Reset
	if err := comp.Reset(ctx); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	res, _ := comp.List(ctx, storage.ListOptions{})
	if len(res.Files) != 0 {
		t.Errorf("List after Reset = %d files, want 0", len(res.Files))
	}
}
