package services

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("MEDIA_ROOT", dir)
	defer os.Unsetenv("MEDIA_ROOT")

	src := filepath.Join(dir, "src.png")
	if err := os.WriteFile(src, []byte("fake png bytes"), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	f, err := os.Open(src)
	if err != nil {
		t.Fatalf("open source file: %v", err)
	}
	defer f.Close()

	path, err := SaveUpload(f, &multipart.FileHeader{Filename: "photo.PNG"})
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}

	// 返回的是带上传前缀的相对路径，扩展名转小写
	if !strings.HasPrefix(path, UploadPrefix+"/") || !strings.HasSuffix(path, ".png") {
		t.Errorf("path = %q, want %s/<name>.png", path, UploadPrefix)
	}

	// 文件内容落盘
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

func TestSaveUploadRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("MEDIA_ROOT", dir)
	defer os.Unsetenv("MEDIA_ROOT")

	src := filepath.Join(dir, "src.bin")
	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	f, err := os.Open(src)
	if err != nil {
		t.Fatalf("open source file: %v", err)
	}
	defer f.Close()

	if _, err := SaveUpload(f, &multipart.FileHeader{Filename: "evil.exe"}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
