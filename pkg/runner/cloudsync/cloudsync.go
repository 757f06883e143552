// Package cloudsync implements the cloud mirror CLI verbs. Push and pull
// are manual and last-writer-wins; the remote holds one document per trip.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/backup"
	"github.com/chobits1012/japantriphelper/pkg/cloud"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/ticket"
)

type Push struct {
	Registry *registry.Registry
	KV       store.KV
	Client   *cloud.Client
	Config   cloud.Config

	Trip string
	// Code overwrites an existing remote document; empty mints a new one.
	Code string
	Now  func() time.Time
}

func (p *Push) Do(ctx context.Context) error {
	if p.Registry == nil {
		return errors.New("can not push, no registry")
	}
	found, err := p.Registry.Find(p.Trip)
	if err != nil {
		return err
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	b, err := backup.Export(p.KV, found.ID, now())
	if err != nil {
		return err
	}

	if warn, remaining := ticket.CheckBudget(b, 0); warn {
		fmt.Printf("warning: ticket images are close to the remote document limit (%d bytes left)\n", remaining)
	}

	client := p.Client
	if client == nil {
		client = cloud.New()
	}
	code, err := client.Push(ctx, p.Config, b, p.Code)
	if err != nil {
		return err
	}
	fmt.Printf("pushed %s, sync code %s\n", found.Name, code)
	return nil
}

type Pull struct {
	Registry *registry.Registry
	Client   *cloud.Client
	Config   cloud.Config

	Code string
	// Into names an existing trip to overwrite instead of creating one.
	Into string
}

func (p *Pull) Do(ctx context.Context) error {
	if p.Registry == nil {
		return errors.New("can not pull, no registry")
	}
	client := p.Client
	if client == nil {
		client = cloud.New()
	}
	b, err := client.Pull(ctx, p.Config, p.Code)
	if err != nil {
		return err
	}
	if err := backup.Validate(b); err != nil {
		return err
	}
	if p.Into != "" {
		found, err := p.Registry.Find(p.Into)
		if err != nil {
			return err
		}
		if err := p.Registry.RestoreBundle(found.ID, b); err != nil {
			return err
		}
		fmt.Printf("pulled %s into %s\n", b.Settings.Name, found.Name)
		return nil
	}
	id, err := p.Registry.ImportBundle(b)
	if err != nil {
		return err
	}
	fmt.Printf("pulled %s as %s\n", b.Settings.Name, id)
	return nil
}
