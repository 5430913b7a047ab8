package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Nassty/cal2/internal/calendar"
	"github.com/Nassty/cal2/internal/holiday"
	"github.com/Nassty/cal2/pkg/dateutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"
)

// Mode selects how much of the calendar Display renders.
type Mode int

const (
	// ModeQuarter renders the previous, current and next month.
	ModeQuarter Mode = iota
	// ModeMonth renders the current month only.
	ModeMonth
	// ModeYear renders all twelve months of the current year.
	ModeYear
)

// ParseMode maps a --mode flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "q":
		return ModeQuarter, nil
	case "month":
		return ModeMonth, nil
	case "year":
		return ModeYear, nil
	default:
		return 0, fmt.Errorf("invalid mode %q: must be one of q, month, year", s)
	}
}

// Format selects the List output format.
type Format int

const (
	// FormatTable prints one holiday per line.
	FormatTable Format = iota
	// FormatJSON prints an indented JSON array.
	FormatJSON
	// FormatMarkdown prints a markdown table.
	FormatMarkdown
)

// ParseFormat maps a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return 0, fmt.Errorf("invalid format %q: must be one of table, json, markdown", s)
	}
}

// HolidaySource is the holiday lookup surface the commands run against.
type HolidaySource interface {
	// Holidays returns the year's holiday map, fetching it from the
	// provider when it is not cached yet.
	Holidays(year int) (holiday.Map, error)

	// Load returns the cached map only. A missing cache yields an
	// empty map, not an error.
	Load(year int) (holiday.Map, error)

	// Save persists the map as the year's cache.
	Save(year int, hm holiday.Map) error
}

// App implements the CLI commands on top of a holiday source.
type App struct {
	svc    HolidaySource
	out    io.Writer
	now    func() time.Time
	logger *zap.Logger
}

// New creates an App writing its output to out. The now function anchors
// every command to a single point in time; pass time.Now outside of tests.
func New(svc HolidaySource, out io.Writer, now func() time.Time, logger *zap.Logger) *App {
	if now == nil {
		now = time.Now
	}
	return &App{
		svc:    svc,
		out:    out,
		now:    now,
		logger: logger,
	}
}

// Display renders the calendar for the current date in the given mode,
// with holidays, weekends and today highlighted.
func (a *App) Display(mode Mode) error {
	today := dateutil.StartOfDay(a.now())

	hm, err := a.svc.Holidays(today.Year())
	if err != nil {
		return err
	}

	current, err := calendar.New(int(today.Month()), today.Year())
	if err != nil {
		return err
	}

	var months []calendar.Month
	switch mode {
	case ModeMonth:
		months = []calendar.Month{current}
	case ModeYear:
		for month := 1; month <= 12; month++ {
			m, err := calendar.New(month, today.Year())
			if err != nil {
				return err
			}
			months = append(months, m)
		}
	default:
		months = []calendar.Month{current.Prev(), current, current.Next()}
	}

	fmt.Fprint(a.out, calendar.Render(months, hm, today))
	return nil
}

// listItem is one holiday row of the json output.
type listItem struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// List prints the current year's holidays sorted by date.
func (a *App) List(format Format) error {
	year := a.now().Year()

	hm, err := a.svc.Holidays(year)
	if err != nil {
		return err
	}

	if len(hm) == 0 {
		fmt.Fprintln(a.out, "No holidays found")
		return nil
	}

	keys := sortedKeys(hm)

	switch format {
	case FormatJSON:
		items := make([]listItem, 0, len(keys))
		for _, key := range keys {
			entry := hm[key]
			items = append(items, listItem{
				Date: fmt.Sprintf("%d-%02d-%02d", year, key.Month, key.Day),
				Name: entry.Name,
				Kind: entry.Kind.String(),
			})
		}
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to encode holidays: %w", err)
		}
	case FormatMarkdown:
		header := [3]string{"Date", "Name", "Kind"}
		var widths [3]int
		for i, cell := range header {
			widths[i] = text.RuneWidthWithoutEscSequences(cell)
		}

		rows := make([][3]string, 0, len(keys))
		for _, key := range keys {
			entry := hm[key]
			row := [3]string{
				fmt.Sprintf("%d-%02d-%02d", year, key.Month, key.Day),
				entry.Name,
				entry.Kind.String(),
			}
			for i, cell := range row {
				if w := text.RuneWidthWithoutEscSequences(cell); w > widths[i] {
					widths[i] = w
				}
			}
			rows = append(rows, row)
		}

		tw := table.NewWriter()
		tw.Style().Format.Header = text.FormatDefault
		tw.AppendHeader(padRow(header, widths))
		for _, row := range rows {
			tw.AppendRow(padRow(row, widths))
		}
		fmt.Fprintln(a.out, tw.RenderMarkdown())
	default:
		for _, key := range keys {
			entry := hm[key]
			fmt.Fprintf(a.out, "%d-%02d-%02d  %s [%s]\n", year, key.Month, key.Day, entry.Name, entry.Kind)
		}
	}

	return nil
}

// Add marks day/month as a custom holiday in the current year's cache.
// An existing entry on that date is kept untouched.
func (a *App) Add(day, month int) error {
	year := a.now().Year()

	hm, err := a.svc.Load(year)
	if err != nil {
		return err
	}

	key := holiday.Key{Day: day, Month: month}
	if _, ok := hm[key]; !ok {
		hm[key] = holiday.Custom(fmt.Sprintf("Custom holiday (%02d/%02d)", day, month))
	}

	if err := a.svc.Save(year, hm); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "OK")
	return nil
}

// Delete removes the day/month entry from the current year's cache.
// Deleting a date that is not marked is not an error.
func (a *App) Delete(day, month int) error {
	year := a.now().Year()

	hm, err := a.svc.Load(year)
	if err != nil {
		return err
	}

	delete(hm, holiday.Key{Day: day, Month: month})

	if err := a.svc.Save(year, hm); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "OK")
	return nil
}

// padRow pads every cell to its column width. The markdown renderer writes
// cells as-is, so the padding is what keeps the columns aligned.
func padRow(row [3]string, widths [3]int) table.Row {
	out := make(table.Row, len(row))
	for i, cell := range row {
		out[i] = cell + strings.Repeat(" ", widths[i]-text.RuneWidthWithoutEscSequences(cell))
	}
	return out
}

// sortedKeys returns the map's keys ordered by month, then day.
func sortedKeys(hm holiday.Map) []holiday.Key {
	keys := make([]holiday.Key, 0, len(hm))
	for key := range hm {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Month != keys[j].Month {
			return keys[i].Month < keys[j].Month
		}
		return keys[i].Day < keys[j].Day
	})
	return keys
}
