package storage_test

import (
	"strings"
	"testing"

	apperrors "github.com/pelatformlabs/toolkits-sub000/errors"
	"github.com/pelatformlabs/toolkits-sub000/logger"
	"github.com/pelatformlabs/toolkits-sub000/storage"
	"github.com/pelatformlabs/toolkits-sub000/storage/testutil"
)

func init() {
	// Stand-in backend for the whole S3 provider family.
	storage.RegisterFactory("s3", func(cfg storage.Config, log *logger.Logger) (storage.Storage, error) {
		return testutil.New(), nil
	})
}

func TestNew_DispatchesS3Family(t *testing.T) {
	for _, provider := range storage.S3Providers {
		cfg := storage.Config{
			Provider: provider,
			Bucket:   "b",
			Region:   "auto",
			Endpoint: "https://example.com",
			AccessKey: "ak",
			SecretKey: "sk",
		}
		store, err := storage.New(cfg, nil)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", provider, err)
		}
		if store == nil {
			t.Fatalf("New(%s) returned nil storage", provider)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := storage.New(storage.Config{Provider: storage.ProviderAWS}, nil)
	if err == nil {
		t.Fatal("New() = nil error for config without bucket")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeConfigError {
		t.Errorf("error = %v, want CONFIG_ERROR", err)
	}
}

func TestNew_UnregisteredProvider(t *testing.T) {
	cfg := storage.Config{
		Provider:  storage.ProviderCloudinary,
		CloudName: "demo", APIKey: "k", APISecret: "s",
	}
	_, err := storage.New(cfg, nil)
	if err == nil {
		t.Fatal("New() = nil error for provider with no registered factory")
	}
	if !strings.Contains(err.Error(), "no backend registered") {
		t.Errorf("error = %q, want registration hint", err.Error())
	}
}

func TestRegisterFactory_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	storage.RegisterFactory("s3", func(cfg storage.Config, log *logger.Logger) (storage.Storage, error) {
		return nil, nil
	})
}

func TestRegisteredProviders(t *testing.T) {
	names := storage.RegisteredProviders()
	found := false
	for _, n := range names {
		if n == "s3" {
			found = true
		}
	}
	if !found {
		t.Errorf("RegisteredProviders() = %v, want it to include s3", names)
	}
}
