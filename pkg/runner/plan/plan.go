// Package plan implements the plan-variant CLI verbs: switching a day
// between its A/B/C schedules and clearing the active one.
package plan

import (
	"context"
	"errors"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/printers"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

type Switch struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Day      string
	Target   trip.PlanID
}

func (s *Switch) Do(ctx context.Context) error {
	if s.Registry == nil {
		return errors.New("can not switch, no registry")
	}
	found, err := s.Registry.Find(s.Trip)
	if err != nil {
		return err
	}
	days, err := itinerary.New(s.KV, found.ID).SwitchPlanByID(s.Day, s.Target)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Days(days...)
	return nil
}

type Clear struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Day      string
}

func (c *Clear) Do(ctx context.Context) error {
	if c.Registry == nil {
		return errors.New("can not clear, no registry")
	}
	found, err := c.Registry.Find(c.Trip)
	if err != nil {
		return err
	}
	days, err := itinerary.New(c.KV, found.ID).ClearPlanByID(c.Day)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Days(days...)
	return nil
}
