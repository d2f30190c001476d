// Package testutil provides testing utilities for the storage module.
//
// It includes an in-memory storage backend that implements the full
// storage.Storage interface (folder operations included) plus the
// component.Component and testutil.TestComponent interfaces.
//
// # Quick Start
//
//	store := testutil.New()
//	store.Upload(ctx, storage.UploadOptions{
//	    Key:  "path/file.txt",
//	    Body: strings.NewReader("hello"),
//	})
package testutil
