package diskcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Storage defines the interface for on-disk snapshot operations
type Storage interface {
	Get(key string) (*Entry, error)
	Set(key string, content []byte) error
	IsExpired(key string, ttl time.Duration) (bool, error)
	Remove(key string) error
}

// Entry represents a cached snapshot with its metadata
type Entry struct {
	Content   []byte    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// FileStorage implements Storage using the file system.
// Snapshots let a restart render channel and category lists immediately
// while the remote refresh runs in the background.
type FileStorage struct {
	baseDir string
}

// NewFileStorage creates a new file-based snapshot storage
// It ensures the snapshot directory exists before returning
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("snapshot directory cannot be empty")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &FileStorage{
		baseDir: baseDir,
	}, nil
}

// Get retrieves a cached entry by key
func (fs *FileStorage) Get(key string) (*Entry, error) {
	filePath := fs.getFilePath(key)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &entry, nil
}

// Set stores content in the snapshot with the current timestamp
func (fs *FileStorage) Set(key string, content []byte) error {
	entry := Entry{
		Content:   content,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	filePath := fs.getFilePath(key)

	// Ensure parent directory exists (defensive, should already exist)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot subdirectory: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}

// IsExpired checks if a snapshot has exceeded the TTL
func (fs *FileStorage) IsExpired(key string, ttl time.Duration) (bool, error) {
	entry, err := fs.Get(key)
	if err != nil {
		// If the snapshot doesn't exist, consider it expired
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check expiration: %w", err)
	}

	age := time.Since(entry.Timestamp)
	return age > ttl, nil
}

// Remove deletes a snapshot by key; missing snapshots are not an error
func (fs *FileStorage) Remove(key string) error {
	err := os.Remove(fs.getFilePath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot file: %w", err)
	}
	return nil
}

// getFilePath generates a file path from a snapshot key
// The key is hashed to create a safe filename
func (fs *FileStorage) getFilePath(key string) string {
	hash := sha256.Sum256([]byte(key))
	filename := hex.EncodeToString(hash[:]) + ".json"
	return filepath.Join(fs.baseDir, filename)
}

// Save marshals a value and stores it under the given key
func Save[T any](s Storage, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot value: %w", err)
	}
	return s.Set(key, data)
}

// Load retrieves and unmarshals a value stored under the given key.
// It reports false when the snapshot is missing, unreadable or older
// than the TTL.
func Load[T any](s Storage, key string, ttl time.Duration) (T, bool) {
	var value T

	entry, err := s.Get(key)
	if err != nil {
		return value, false
	}
	if ttl > 0 && time.Since(entry.Timestamp) > ttl {
		return value, false
	}
	if err := json.Unmarshal(entry.Content, &value); err != nil {
		return value, false
	}
	return value, true
}
