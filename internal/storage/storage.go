// Package storage provides file storage for uploaded datasets
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Priyuuuuu/smartdata-standardization/internal/errors"

	"github.com/google/uuid"
)

// FileStorage defines the interface for file storage operations.
// Stored files are re-read by path (the dataset readers dispatch on
// the file extension), so the interface deals in paths, not readers.
type FileStorage interface {
	Store(ctx context.Context, file io.Reader, filename string) (string, error)
	Delete(ctx context.Context, filePath string) error
	Exists(ctx context.Context, filePath string) (bool, error)
	GetFileSize(filePath string) (int64, error)
}

// Config holds configuration for file storage
type Config struct {
	BasePath  string // Base directory for local storage
	ChunkSize int    // Chunk size for streaming copies
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		BasePath:  "uploads/datasets",
		ChunkSize: 1024 * 1024, // 1MB
	}
}

// LocalFileStorage implements FileStorage using the local filesystem
type LocalFileStorage struct {
	config *Config
}

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(config *Config) *LocalFileStorage {
	if config == nil {
		config = DefaultConfig()
	}
	return &LocalFileStorage{config: config}
}

// NewLocalFileStorageWithPath creates a local file storage rooted at basePath
func NewLocalFileStorageWithPath(basePath string) *LocalFileStorage {
	config := DefaultConfig()
	config.BasePath = basePath
	return NewLocalFileStorage(config)
}

// Store saves a file to the local filesystem with a unique name
func (s *LocalFileStorage) Store(ctx context.Context, file io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(s.config.BasePath, 0755); err != nil {
		return "", errors.StorageError("failed to create storage directory", err)
	}

	// Generate unique filename to prevent conflicts
	ext := filepath.Ext(filename)
	baseName := filename[:len(filename)-len(ext)]
	timestamp := time.Now().Format("20060102_150405")
	uniqueName := fmt.Sprintf("%s_%s_%s%s", baseName, timestamp, uuid.New().String()[:8], ext)

	filePath := filepath.Join(s.config.BasePath, uniqueName)

	destFile, err := os.Create(filePath)
	if err != nil {
		return "", errors.StorageError("failed to create destination file", err)
	}
	defer destFile.Close()

	// Copy file contents with chunking for large files
	buf := make([]byte, s.config.ChunkSize)
	if _, err := io.CopyBuffer(destFile, file, buf); err != nil {
		os.Remove(filePath) // Clean up on failure
		return "", errors.StorageError("failed to copy file contents", err)
	}

	return filePath, nil
}

// Delete removes a file from storage
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return errors.StorageError("failed to delete file", err)
	}
	return nil
}

// Exists checks if a file exists in storage
func (s *LocalFileStorage) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.StorageError("failed to check file existence", err)
	}
	return true, nil
}

// GetFileSize returns the size of a stored file
func (s *LocalFileStorage) GetFileSize(filePath string) (int64, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, errors.StorageError("failed to get file info", err)
	}
	return info.Size(), nil
}

// Ensure LocalFileStorage implements the storage interface
var _ FileStorage = (*LocalFileStorage)(nil)
