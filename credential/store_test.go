package credential

import (
	"context"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "studio.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestGetMissing(t *testing.T) {
	s, _ := openTemp(t)
	v, ok, err := s.Get(context.Background(), KeyName)
	if err != nil || ok || v != "" {
		t.Errorf("Get() = %q, %v, %v; want empty, false, nil", v, ok, err)
	}
}

func TestSetOverwrites(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	for _, v := range []string{"first", "second"} {
		if err := s.Set(ctx, ModelName, v); err != nil {
			t.Fatal(err)
		}
	}
	v, ok, err := s.Get(ctx, ModelName)
	if err != nil || !ok || v != "second" {
		t.Errorf("Get() = %q, %v, %v; want second", v, ok, err)
	}
}

func TestAPIKeyPersists(t *testing.T) {
	s, path := openTemp(t)
	ctx := context.Background()
	if err := s.SaveAPIKey(ctx, "  secret-key \n"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	key, err := reopened.APIKey(ctx)
	if err != nil || key != "secret-key" {
		t.Errorf("APIKey() = %q, %v; want secret-key", key, err)
	}

	if err := reopened.SaveAPIKey(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if key, _ := reopened.APIKey(ctx); key != "" {
		t.Errorf("APIKey() = %q after clearing", key)
	}
}

func TestDeleteMissing(t *testing.T) {
	s, _ := openTemp(t)
	if err := s.Delete(context.Background(), "nothing"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}
