package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadErrors collects per-file validation failures so the caller sees
// every problem in one response instead of fixing them one at a time.
type UploadErrors []string

func (e UploadErrors) Error() string {
	return strings.Join(e, "; ")
}

// StorageService writes product images to local disk and serves them
// back as /uploads URLs.
type StorageService struct {
	uploadPath   string
	maxFileSize  int64
	allowedTypes map[string]bool
	maxImages    int
}

// NewStorageService creates a new storage service
func NewStorageService(uploadPath string, maxFileSize int64, allowedTypes []string, maxImages int) *StorageService {
	typeSet := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		typeSet[t] = true
	}
	return &StorageService{
		uploadPath:   uploadPath,
		maxFileSize:  maxFileSize,
		allowedTypes: typeSet,
		maxImages:    maxImages,
	}
}

// MaxImages returns the per-product image cap
func (s *StorageService) MaxImages() int {
	return s.maxImages
}

// SaveProductImages validates and stores a batch of uploaded images for
// a product. All validation (image cap and per-file size/type) runs
// before any file is written; if a later write fails, files already
// written in this batch are removed so a failed submission leaves
// nothing behind. Returns the public URLs of the stored files.
func (s *StorageService) SaveProductImages(existingCount int, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, errors.New("no image files provided")
	}
	if existingCount+len(files) > s.maxImages {
		return nil, fmt.Errorf("a product can have at most %d images (%d existing, %d uploaded)",
			s.maxImages, existingCount, len(files))
	}

	var validationErrors UploadErrors
	for _, header := range files {
		if header.Size > s.maxFileSize {
			validationErrors = append(validationErrors,
				fmt.Sprintf("%s: file too large (max %d bytes)", header.Filename, s.maxFileSize))
		}
		contentType := header.Header.Get("Content-Type")
		if !s.allowedTypes[contentType] {
			validationErrors = append(validationErrors,
				fmt.Sprintf("%s: unsupported type %q", header.Filename, contentType))
		}
	}
	if len(validationErrors) > 0 {
		return nil, validationErrors
	}

	uploadDir := filepath.Join(s.uploadPath, "products")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	var written []string
	var urls []string
	for _, header := range files {
		filename := fmt.Sprintf("product_%s_%d%s", uuid.New().String(), time.Now().Unix(), extensionFor(header))
		filePath := filepath.Join(uploadDir, filename)

		if err := saveFile(header, filePath); err != nil {
			for _, path := range written {
				os.Remove(path)
			}
			return nil, fmt.Errorf("failed to save %s: %w", header.Filename, err)
		}
		written = append(written, filePath)
		urls = append(urls, "/uploads/products/"+filename)
	}

	return urls, nil
}

// DeleteImage removes a stored image by its public URL. A missing file
// is not an error; the goal state is identical.
func (s *StorageService) DeleteImage(imageURL string) error {
	filename := filepath.Base(imageURL)
	if filename == "." || filename == "/" || strings.Contains(filename, "..") {
		return fmt.Errorf("invalid image URL: %s", imageURL)
	}

	filePath := filepath.Join(s.uploadPath, "products", filename)
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func saveFile(header *multipart.FileHeader, filePath string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func extensionFor(header *multipart.FileHeader) string {
	if ext := filepath.Ext(header.Filename); ext != "" {
		return strings.ToLower(ext)
	}
	switch header.Header.Get("Content-Type") {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ".img"
}
