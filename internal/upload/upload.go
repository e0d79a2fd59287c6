// Package upload 將上傳檔案寫入本機目錄並回傳對外 URL
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	MaxImageSize    = 10 << 20
	MaxDocumentSize = 5 << 20
	PublicPrefix    = "/uploads"
)

var (
	ErrTooLarge    = errors.New("file too large")
	ErrUnsupported = errors.New("unsupported file type")
	ErrEmpty       = errors.New("empty file")
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// oleMagic 舊版 .doc (Compound File Binary) 的檔頭
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// FileStore 無狀態的檔案服務，啟動時建立一次後注入各 handler
type FileStore struct {
	root   string
	prefix string
}

func NewFileStore(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("upload root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("upload root: %w", err)
	}
	return &FileStore{root: abs, prefix: PublicPrefix}, nil
}

// Root 回傳實際存放目錄，供靜態檔案路由使用
func (s *FileStore) Root() string { return s.root }

func readLimited(fh *multipart.FileHeader, max int64) ([]byte, error) {
	if fh.Size > max {
		return nil, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(content)) > max {
		return nil, ErrTooLarge
	}
	if len(content) == 0 {
		return nil, ErrEmpty
	}
	return content, nil
}

// SaveImage 驗證圖片（jpeg/png/gif/webp，可解析尺寸）後存到 dir
func (s *FileStore) SaveImage(fh *multipart.FileHeader, dir string) (string, error) {
	content, err := readLimited(fh, MaxImageSize)
	if err != nil {
		return "", err
	}
	ext, ok := imageExt[http.DetectContentType(content)]
	if !ok {
		return "", ErrUnsupported
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(content)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return s.write(dir, ext, content)
}

// SaveDocument 接受 pdf/doc/docx，副檔名與內容需一致
func (s *FileStore) SaveDocument(fh *multipart.FileHeader, dir string) (string, error) {
	content, err := readLimited(fh, MaxDocumentSize)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	sniffed := http.DetectContentType(content)
	ok := false
	switch ext {
	case ".pdf":
		ok = sniffed == "application/pdf"
	case ".docx":
		ok = sniffed == "application/zip"
	case ".doc":
		ok = bytes.HasPrefix(content, oleMagic)
	}
	if !ok {
		return "", ErrUnsupported
	}
	return s.write(dir, ext, content)
}

func (s *FileStore) write(dir, ext string, content []byte) (string, error) {
	dir = path.Clean("/" + dir)[1:]
	target := filepath.Join(s.root, filepath.FromSlash(dir))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(target, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path.Join(s.prefix, dir, name), nil
}

// Remove 刪除先前回傳的 URL；檔案不存在或 URL 不屬於本服務時忽略
func (s *FileStore) Remove(url string) error {
	if !strings.HasPrefix(url, s.prefix+"/") {
		return nil
	}
	rel := path.Clean("/" + strings.TrimPrefix(url, s.prefix))
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return nil
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
