// Package expenses implements the ledger CLI verbs.
package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/chobits1012/japantriphelper/pkg/ledger"
	"github.com/chobits1012/japantriphelper/pkg/printers"
	"github.com/chobits1012/japantriphelper/pkg/rates"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

type List struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
}

func (l *List) Do(ctx context.Context) error {
	if l.Registry == nil {
		return errors.New("can not list, no registry")
	}
	found, err := l.Registry.Find(l.Trip)
	if err != nil {
		return err
	}
	settings, err := l.Registry.Settings(found.ID)
	if err != nil {
		return err
	}
	entries, err := ledger.New(l.KV, found.ID).Load()
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Expenses(settings, entries...)
	return nil
}

type Add struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string

	Date     string
	Title    string
	Amount   int
	Category trip.ExpenseCategory
}

func (a *Add) Do(ctx context.Context) error {
	found, err := a.Registry.Find(a.Trip)
	if err != nil {
		return err
	}
	if _, err := ledger.New(a.KV, found.ID).Add(a.Date, a.Title, a.Amount, a.Category); err != nil {
		return err
	}
	return (&List{Registry: a.Registry, KV: a.KV, Trip: a.Trip}).Do(ctx)
}

type Remove struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	ID       string
}

func (r *Remove) Do(ctx context.Context) error {
	found, err := r.Registry.Find(r.Trip)
	if err != nil {
		return err
	}
	if err := ledger.New(r.KV, found.ID).Delete(r.ID); err != nil {
		return err
	}
	return (&List{Registry: r.Registry, KV: r.KV, Trip: r.Trip}).Do(ctx)
}

// Convert prints one amount in both currencies using the live rate.
type Convert struct {
	Client *rates.Client

	AmountJPY int
	Amount    float64
}

func (c *Convert) Do(ctx context.Context) error {
	client := c.Client
	if client == nil {
		client = &rates.Client{}
	}
	rate, err := client.Fetch(ctx)
	if err != nil {
		return err
	}

	if c.AmountJPY > 0 {
		fmt.Printf("¥%d = %.2f (rate %.2f, as of %s)\n",
			c.AmountJPY, rate.FromJPY(c.AmountJPY), rate.JPYPerUnit, rate.FetchedAt.Format("2006-01-02 15:04"))
		return nil
	}
	fmt.Printf("%.2f = ¥%d (rate %.2f, as of %s)\n",
		c.Amount, rate.ToJPY(c.Amount), rate.JPYPerUnit, rate.FetchedAt.Format("2006-01-02 15:04"))
	return nil
}
