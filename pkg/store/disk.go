package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/peterbourgon/diskv/v3"
)

// Load creates a disk-backed KV using the provided config. A nil config
// falls back to LoadConfig.
func Load(cfg Config) (*Disk, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// Disk is the diskv-backed KV implementation. Keys are dash-separated and
// map onto a directory tree, so a trip's four slices live together under one
// directory named by the trip id.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

func (p *Disk) Read(key string) ([]byte, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (p *Disk) Write(key string, value []byte) error {
	if err := p.d.Write(key, value); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return fmt.Errorf("%w: %s", ErrStorageFull, key)
		}
		return err
	}
	return nil
}

func (p *Disk) Erase(key string) error {
	if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (p *Disk) Has(key string) bool {
	return p.d.Has(key)
}

func (p *Disk) Keys(ctx context.Context) <-chan string {
	return p.d.Keys(ctx.Done())
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
