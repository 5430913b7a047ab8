package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/Nassty/cal2/internal/holiday"
	"github.com/Nassty/cal2/pkg/dateutil"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Months are arranged this many per row, the way wall calendars fold
const monthsPerRow = 3

// CellClass is the display class of one day cell
type CellClass int

const (
	CellPlain CellClass = iota
	CellToday
	CellWeekend
	CellHoliday
)

var (
	todayStyle   = color.New(color.ReverseVideo)
	weekendStyle = color.New(color.FgRed)
	holidayStyle = color.New(color.FgRed, color.Bold)
)

// Classify picks the display class for a single day. Today wins over
// weekend, weekend over holiday, so each cell gets exactly one class.
func Classify(date, today time.Time, hm holiday.Map) CellClass {
	if dateutil.IsSameDay(date, today) {
		return CellToday
	}
	if dateutil.IsWeekend(date) {
		return CellWeekend
	}
	if _, ok := hm[holiday.Key{Day: date.Day(), Month: int(date.Month())}]; ok {
		return CellHoliday
	}
	return CellPlain
}

// Render draws the given months side by side in rows of three, with day
// cells styled according to their class
func Render(months []Month, hm holiday.Map, today time.Time) string {
	blocks := make([][]string, 0, len(months))
	for _, m := range months {
		blocks = append(blocks, strings.Split(renderMonth(m, hm, today), "\n"))
	}

	var b strings.Builder
	for start := 0; start < len(blocks); start += monthsPerRow {
		end := start + monthsPerRow
		if end > len(blocks) {
			end = len(blocks)
		}
		joinBlocks(&b, blocks[start:end])
	}
	return b.String()
}

func renderMonth(m Month, hm holiday.Map, today time.Time) string {
	t := table.NewWriter()
	t.SetTitle(m.Name())
	t.Style().Title.Align = text.AlignCenter
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"})

	configs := make([]table.ColumnConfig, 7)
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignRight}
	}
	t.SetColumnConfigs(configs)

	for _, week := range m.Weeks() {
		row := make(table.Row, 0, 7)
		for _, day := range week {
			if day == 0 {
				row = append(row, "")
				continue
			}
			row = append(row, formatDay(m, day, hm, today))
		}
		t.AppendRow(row)
	}

	return t.Render()
}

func formatDay(m Month, day int, hm holiday.Map, today time.Time) string {
	cell := strconv.Itoa(day)

	switch Classify(m.Date(day), today, hm) {
	case CellToday:
		return todayStyle.Sprint(cell)
	case CellWeekend:
		return weekendStyle.Sprint(cell)
	case CellHoliday:
		return holidayStyle.Sprint(cell)
	default:
		return cell
	}
}

// joinBlocks writes the pre-rendered month blocks next to each other,
// padding shorter blocks so columns stay aligned
func joinBlocks(b *strings.Builder, blocks [][]string) {
	height := 0
	widths := make([]int, len(blocks))
	for i, block := range blocks {
		if len(block) > height {
			height = len(block)
		}
		widths[i] = text.RuneWidthWithoutEscSequences(block[0])
	}

	for line := 0; line < height; line++ {
		for i, block := range blocks {
			if i > 0 {
				b.WriteString("  ")
			}
			if line < len(block) {
				b.WriteString(block[line])
			} else {
				b.WriteString(strings.Repeat(" ", widths[i]))
			}
		}
		b.WriteByte('\n')
	}
}
