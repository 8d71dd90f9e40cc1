package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"moke/internal/utils"
)

// UploadPrefix 上传图片在 media 目录下的子路径
const UploadPrefix = "posts"

// MediaRoot 上传文件的根目录，可通过环境变量覆盖
func MediaRoot() string {
	root := os.Getenv("MEDIA_ROOT")
	if root == "" {
		root = "./media"
	}
	return root
}

// SaveUpload 把上传的图片写入 media 目录，返回存入数据库的相对路径。
// 数据库只保存路径引用，不保存文件内容。
func SaveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("不支持的图片格式: %s", ext)
	}

	dir := filepath.Join(MediaRoot(), UploadPrefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %w", err)
	}

	name := utils.RandStringBytesMaskImpr(12) + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}

	return filepath.ToSlash(filepath.Join(UploadPrefix, name)), nil
}
