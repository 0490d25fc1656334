package client

import (
	"os"
	"path/filepath"
	"strings"
)

// SellerStore remembers the seller's name across sessions, independent of any
// particular report. The browser client kept this in localStorage; here it is
// an explicit store with load/save hooks.
type SellerStore interface {
	Load() (string, error)
	Save(name string) error
}

// FileSellerStore keeps the name in a small plain-text file
type FileSellerStore struct {
	Path string
}

func NewFileSellerStore(path string) *FileSellerStore {
	if path == "" {
		path = defaultSellerPath()
	}
	return &FileSellerStore{Path: path}
}

func defaultSellerPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".seller_name"
	}
	return filepath.Join(dir, "parfumnotebook", "seller_name")
}

func (s *FileSellerStore) Load() (string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *FileSellerStore) Save(name string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(name+"\n"), 0o600)
}
