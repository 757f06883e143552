// Package printers renders trips, itineraries, expenses, and checklists
// for the terminal.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/chobits1012/japantriphelper/pkg/checklist"
	"github.com/chobits1012/japantriphelper/pkg/ledger"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

func (pp *PrettyPrint) id(y *color.Color, id string) {
	if !pp.ShowID {
		return
	}
	short := id
	if len(short) > 16 {
		short = short[:16]
	}
	_, _ = y.Print(short)
	_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(short)))
}

// Trips renders the registry list, most recent first order preserved.
func (pp *PrettyPrint) Trips(trips ...trip.Summary) {
	pp.Title("Trips")
	if len(trips) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range trips {
		name := b.Sprint(t.Name)
		when := trip.FormatDate(t.StartDate)
		days := f.Sprintf("%d days", t.Days)
		if pp.ShowID {
			tbl.AddRow(y.Sprint(t.ID), name, when, string(t.Season), days)
		} else {
			tbl.AddRow(name, when, string(t.Season), days)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Days renders the itinerary schedule, one block per day.
func (pp *PrettyPrint) Days(days ...trip.Day) {
	if len(days) == 0 {
		pp.none()
		return
	}

	h := color.New(color.Bold, color.Underline)
	f := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for i := range days {
		d := &days[i]
		pp.id(y, d.ID)

		header := fmt.Sprintf("%s  %s %s", d.Label(), d.MMDD(), d.WeekdayShort())
		if d.Active() != trip.PlanA {
			header += fmt.Sprintf("  (Plan %s)", d.Active())
		}
		_, _ = h.Println(header)

		if d.Title != "" {
			fmt.Println(d.Title)
		}
		if d.Location != "" {
			_, _ = f.Printf("%s %s%s\n", d.WeatherIcon, d.Location, tempSuffix(d.Temp))
		}
		if d.Pass {
			_, _ = f.Printf("pass: %s\n", passLabel(d))
		}

		pp.Events(d.Events...)
	}
}

func tempSuffix(temp string) string {
	if temp == "" {
		return ""
	}
	return "  " + temp
}

func passLabel(d *trip.Day) string {
	name := d.PassName
	if name == "" {
		name = "rail pass"
	}
	if d.PassDurationDays > 0 {
		return fmt.Sprintf("%s (%d days)", name, d.PassDurationDays)
	}
	return name
}

// Events renders one day's schedule rows.
func (pp *PrettyPrint) Events(events ...trip.Event) {
	if len(events) == 0 {
		pp.none()
		return
	}

	hi := color.New(color.FgHiYellow)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range events {
		title := e.Title
		if e.Highlight {
			title = hi.Sprint("★ " + e.Title)
		}
		extra := string(e.Category)
		if e.Transport != "" {
			extra = e.Transport
		}
		tbl.AddRow(e.Time, title, f.Sprint(extra))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
}

// Expenses renders the ledger with per-category totals and, when a budget
// is set, the remaining amount.
func (pp *PrettyPrint) Expenses(settings trip.Settings, expenses ...trip.Expense) {
	pp.Title("Expenses")
	if len(expenses) == 0 {
		pp.none()
		return
	}

	f := color.New(color.Faint)
	b := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range expenses {
		tbl.AddRow(e.Date, e.Title, f.Sprint(string(e.Category)), yen(e.AmountJPY))
	}
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(color.Output, tbl)

	totals := ledger.TotalsByCategory(expenses)
	sub := uitable.New()
	sub.Separator = "  "
	for _, c := range trip.AllExpenseCategories() {
		if totals[c] == 0 {
			continue
		}
		sub.AddRow(f.Sprint(string(c)), yen(totals[c]))
	}
	sub.AddRow(b.Sprint("total"), b.Sprint(yen(ledger.TotalJPY(expenses))))
	if remaining, ok := ledger.Remaining(settings, expenses); ok {
		label := "remaining"
		if remaining < 0 {
			label = "over budget"
			remaining = -remaining
		}
		sub.AddRow(f.Sprint(label), yen(remaining))
	}
	sub.RightAlign(1)
	_, _ = fmt.Fprintln(color.Output, sub)
	fmt.Println("")
}

func yen(amount int) string {
	return fmt.Sprintf("¥%d", amount)
}

// Checklist renders packing categories with their progress counts.
func (pp *PrettyPrint) Checklist(categories ...trip.ChecklistCategory) {
	checked, total := checklist.Progress(categories)
	pp.Title(fmt.Sprintf("Packing %d/%d", checked, total))
	if len(categories) == 0 {
		pp.none()
		return
	}

	b := color.New(color.Bold)
	f := color.New(color.Faint)
	done := color.New(color.Faint, color.CrossedOut)

	for _, c := range categories {
		n := 0
		for _, item := range c.Items {
			if item.Checked {
				n++
			}
		}
		_, _ = b.Print(c.Title)
		_, _ = f.Printf(" %d/%d\n", n, len(c.Items))
		if c.IsCollapsed {
			continue
		}
		for _, item := range c.Items {
			if item.Checked {
				_, _ = done.Printf("  [x] %s\n", item.Text)
			} else {
				fmt.Printf("  [ ] %s\n", item.Text)
			}
		}
	}
	fmt.Println("")
}
