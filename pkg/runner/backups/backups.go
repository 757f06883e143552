// Package backups implements the backup CLI verbs: exporting a trip to a
// file or compact string and importing either form back as a new trip.
package backups

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/backup"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

type Export struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string

	// Dir receives the backup file; empty means the working directory.
	Dir string
	Now func() time.Time
}

func (e *Export) Do(ctx context.Context) error {
	if e.Registry == nil {
		return errors.New("can not export, no registry")
	}
	found, err := e.Registry.Find(e.Trip)
	if err != nil {
		return err
	}
	now := e.Now
	if now == nil {
		now = time.Now
	}
	b, err := backup.Export(e.KV, found.ID, now())
	if err != nil {
		return err
	}
	path := filepath.Join(e.Dir, backup.FileName(b.Settings.Name))
	if err := backup.WriteFile(path, b); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", found.Name, path)
	return nil
}

// Encode prints a trip as a compact copy-paste string.
type Encode struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Now      func() time.Time
}

func (e *Encode) Do(ctx context.Context) error {
	if e.Registry == nil {
		return errors.New("can not encode, no registry")
	}
	found, err := e.Registry.Find(e.Trip)
	if err != nil {
		return err
	}
	now := e.Now
	if now == nil {
		now = time.Now
	}
	b, err := backup.Export(e.KV, found.ID, now())
	if err != nil {
		return err
	}
	s, err := backup.EncodeCompact(b)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}

// Import reads a backup file and creates a new trip from it, or restores
// it over an existing trip when Into is set. Nothing is written unless the
// whole bundle validates.
type Import struct {
	Registry *registry.Registry
	Path     string

	// Into names an existing trip to overwrite instead of creating one.
	Into string
}

func (i *Import) Do(ctx context.Context) error {
	if i.Registry == nil {
		return errors.New("can not import, no registry")
	}
	if _, err := os.Stat(i.Path); err != nil {
		return fmt.Errorf("can not read backup file: %w", err)
	}
	b, err := backup.ReadFile(i.Path)
	if err != nil {
		return err
	}
	return absorb(i.Registry, b, i.Into)
}

// Decode imports a trip from a compact string or raw bundle JSON.
type Decode struct {
	Registry *registry.Registry
	Input    string
	Into     string
}

func (d *Decode) Do(ctx context.Context) error {
	if d.Registry == nil {
		return errors.New("can not decode, no registry")
	}
	b, err := backup.DecodeCompact(d.Input)
	if err != nil {
		return err
	}
	if err := backup.Validate(b); err != nil {
		return err
	}
	return absorb(d.Registry, b, d.Into)
}

// absorb lands a validated bundle: as a fresh trip by default, or over the
// trip named by into.
func absorb(reg *registry.Registry, b trip.Bundle, into string) error {
	if into != "" {
		found, err := reg.Find(into)
		if err != nil {
			return err
		}
		if err := reg.RestoreBundle(found.ID, b); err != nil {
			return err
		}
		fmt.Printf("restored %s into %s\n", b.Settings.Name, found.Name)
		return nil
	}
	id, err := reg.ImportBundle(b)
	if err != nil {
		return err
	}
	fmt.Printf("imported %s as %s\n", b.Settings.Name, id)
	return nil
}
