package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMirrorFileLocal(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Kurse.pdf")
	if err := os.WriteFile(src, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	provider, err := NewProvider(context.Background(), Config{Provider: "local", ArchiveDir: filepath.Join(dir, "archive")})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	svc := NewService(provider)

	result, err := svc.MirrorFile(context.Background(), src, &UploadOptions{Folder: "2024"})
	if err != nil {
		t.Fatalf("MirrorFile() error = %v", err)
	}
	if result.Size != 4 || result.Format != "pdf" {
		t.Errorf("result = %+v", result)
	}
	if !strings.HasPrefix(result.PublicID, "2024/Kurse_") {
		t.Errorf("PublicID = %q", result.PublicID)
	}
	if _, err := os.Stat(result.URL); err != nil {
		t.Errorf("archived file missing: %v", err)
	}

	if err := provider.Delete(context.Background(), result.PublicID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestMirrorFileRejectsType(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	provider, err := NewLocalProvider(filepath.Join(dir, "archive"), "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewService(provider).MirrorFile(context.Background(), src, nil); err == nil {
		t.Error("expected error for .txt file")
	}
}

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "none"})
	if err != nil || p != nil {
		t.Errorf("NewProvider(none) = %v, %v", p, err)
	}
	if NewService(nil).Enabled() {
		t.Error("service without provider must be disabled")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "ftp"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
