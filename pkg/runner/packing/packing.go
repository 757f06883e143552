// Package packing implements the checklist CLI verbs.
package packing

import (
	"context"
	"errors"

	"github.com/chobits1012/japantriphelper/pkg/checklist"
	"github.com/chobits1012/japantriphelper/pkg/printers"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
)

func open(reg *registry.Registry, kv store.KV, tripQuery string) (*checklist.Store, error) {
	if reg == nil {
		return nil, errors.New("no registry")
	}
	found, err := reg.Find(tripQuery)
	if err != nil {
		return nil, err
	}
	return checklist.New(kv, found.ID), nil
}

func print(cs *checklist.Store) error {
	categories, err := cs.Load()
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Checklist(categories...)
	return nil
}

type List struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
}

func (l *List) Do(ctx context.Context) error {
	cs, err := open(l.Registry, l.KV, l.Trip)
	if err != nil {
		return err
	}
	return print(cs)
}

type AddCategory struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Title    string
}

func (a *AddCategory) Do(ctx context.Context) error {
	cs, err := open(a.Registry, a.KV, a.Trip)
	if err != nil {
		return err
	}
	if _, err := cs.AddCategory(a.Title); err != nil {
		return err
	}
	return print(cs)
}

type AddItem struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Category string
	Text     string
}

func (a *AddItem) Do(ctx context.Context) error {
	cs, err := open(a.Registry, a.KV, a.Trip)
	if err != nil {
		return err
	}
	if _, err := cs.AddItem(a.Category, a.Text); err != nil {
		return err
	}
	return print(cs)
}

type Toggle struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Item     string
}

func (t *Toggle) Do(ctx context.Context) error {
	cs, err := open(t.Registry, t.KV, t.Trip)
	if err != nil {
		return err
	}
	if err := cs.ToggleItem(t.Item); err != nil {
		return err
	}
	return print(cs)
}

type Collapse struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Category string
}

func (c *Collapse) Do(ctx context.Context) error {
	cs, err := open(c.Registry, c.KV, c.Trip)
	if err != nil {
		return err
	}
	if err := cs.ToggleCollapse(c.Category); err != nil {
		return err
	}
	return print(cs)
}

// Remove deletes an item, or a whole category when no item id is given.
type Remove struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Category string
	Item     string
}

func (r *Remove) Do(ctx context.Context) error {
	cs, err := open(r.Registry, r.KV, r.Trip)
	if err != nil {
		return err
	}
	if r.Item != "" {
		err = cs.DeleteItem(r.Item)
	} else {
		err = cs.DeleteCategory(r.Category)
	}
	if err != nil {
		return err
	}
	return print(cs)
}
