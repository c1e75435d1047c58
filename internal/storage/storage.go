// Package storage stores property images behind an afero filesystem and
// hands back durable retrievable URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

type Config struct {
	// Backend is one of os, memory.
	Backend string `conf:"backend" yaml:"backend" json:"backend"`
	// Dir is the root directory for the os backend.
	Dir string `conf:"dir" yaml:"dir" json:"dir"`
	// PublicBaseURL prefixes every returned image URL.
	PublicBaseURL string `conf:"public_base_url" yaml:"public_base_url" json:"public_base_url"`
}

// ImageStore accepts image payloads and returns retrievable URLs. The
// filesystem is abstracted so tests run against an in-memory backend.
type ImageStore struct {
	fs      afero.Fs
	baseURL string
}

func NewImageStore(cfg Config) (*ImageStore, error) {
	var fs afero.Fs

	switch cfg.Backend {
	case "memory":
		fs = afero.NewMemMapFs()
	case "os", "":
		dir := cfg.Dir
		if dir == "" {
			dir = "data/images"
		}

		base := afero.NewOsFs()
		if err := base.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create image dir: %w", err)
		}

		fs = afero.NewBasePathFs(base, dir)
	default:
		return nil, fmt.Errorf("invalid storage backend: %s", cfg.Backend)
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = "/images"
	}

	return &ImageStore{fs: fs, baseURL: baseURL}, nil
}

// Save writes one image payload and returns its public URL. The stored name
// is a fresh UUID so uploads never collide; the original extension is kept
// for content-type sniffing by whatever serves the files.
func (s *ImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + strings.ToLower(path.Ext(filename))

	if err := afero.WriteReader(s.fs, name, r); err != nil {
		return "", fmt.Errorf("failed to store image %q: %w", filename, err)
	}

	return s.baseURL + "/" + name, nil
}

// Remove deletes the blob behind a URL previously returned by Save. Missing
// blobs are not an error; removal is best effort during cascade deletes.
func (s *ImageStore) Remove(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !strings.HasPrefix(url, s.baseURL+"/") {
		return fmt.Errorf("url %q does not belong to this store", url)
	}

	name := strings.TrimPrefix(url, s.baseURL+"/")

	err := s.fs.Remove(name)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image %q: %w", name, err)
	}

	return nil
}
