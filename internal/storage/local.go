package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Bucket names for stored attachments. Each ledger keeps its proofs in
// its own bucket so owner-ID prefixes never collide across ledgers.
const (
	BucketProofs           = "proofs"
	BucketPayableProofs    = "payable-proofs"
	BucketCommissionProofs = "commission-proofs"
	BucketInvoices         = "invoices"
)

// LocalStorage stores attachments on the local filesystem, one directory
// per bucket. Object keys follow the `{owner_id}_{sanitized_filename}`
// convention so all objects of an owner share a listable prefix.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9_.-] with
// an underscore, including spaces and accented letters
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// ObjectKey builds the storage key for a file owned by the given record
func ObjectKey(ownerID uint, filename string) string {
	return fmt.Sprintf("%d_%s", ownerID, SanitizeFilename(filename))
}

// Upload stores a file under the bucket with the given key, replacing any
// existing objects that share the owner prefix first. At most one object
// per owner survives.
func (s *LocalStorage) Upload(file multipart.File, bucket string, ownerID uint, filename string) (string, error) {
	key := ObjectKey(ownerID, filename)

	if err := s.RemoveByPrefix(bucket, fmt.Sprintf("%d_", ownerID)); err != nil {
		return "", err
	}

	dir := filepath.Join(s.basePath, bucket)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create bucket directory: %w", err)
	}

	path := filepath.Join(dir, key)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return key, nil
}

// ListByPrefix returns the keys in a bucket that start with prefix
func (s *LocalStorage) ListByPrefix(bucket, prefix string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, bucket))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list bucket: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			keys = append(keys, entry.Name())
		}
	}
	return keys, nil
}

// RemoveByPrefix deletes every object in a bucket whose key starts with prefix
func (s *LocalStorage) RemoveByPrefix(bucket, prefix string) error {
	keys, err := s.ListByPrefix(bucket, prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := os.Remove(filepath.Join(s.basePath, bucket, key)); err != nil {
			return fmt.Errorf("failed to remove object %s: %w", key, err)
		}
	}
	return nil
}

// Download returns an object for reading
func (s *LocalStorage) Download(bucket, key string) (*os.File, error) {
	return os.Open(filepath.Join(s.basePath, bucket, key))
}

// Exists checks if an object exists
func (s *LocalStorage) Exists(bucket, key string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, bucket, key))
	return err == nil
}

// GetFullPath returns the absolute path for serving an object
func (s *LocalStorage) GetFullPath(bucket, key string) string {
	return filepath.Join(s.basePath, bucket, key)
}

// PublicURL builds the URL an object is served under
func (s *LocalStorage) PublicURL(baseURL, bucket, key string) string {
	return fmt.Sprintf("%s/files/%s/%s", strings.TrimRight(baseURL, "/"), bucket, key)
}

// ValidContentTypes returns allowed MIME types for uploads
func ValidContentTypes() map[string]bool {
	return map[string]bool{
		"application/pdf": true,
		"image/jpeg":      true,
		"image/jpg":       true,
		"image/png":       true,
	}
}

// MaxFileSize returns the maximum allowed file size (10MB)
func MaxFileSize() int64 {
	return 10 * 1024 * 1024 // 10 MB
}

// IsValidContentType checks if the content type is allowed
func IsValidContentType(contentType string) bool {
	return ValidContentTypes()[contentType]
}
