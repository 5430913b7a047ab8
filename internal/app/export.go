package app

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// ExportICS writes the current year's holidays as an iCalendar document,
// one all-day event per entry. Stored day/month pairs that do not form a
// real date in the year are skipped.
func (a *App) ExportICS(w io.Writer) error {
	year := a.now().Year()

	hm, err := a.svc.Holidays(year)
	if err != nil {
		return err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cal2//holiday calendar//EN")

	for _, key := range sortedKeys(hm) {
		date := time.Date(year, time.Month(key.Month), key.Day, 0, 0, 0, 0, time.UTC)
		if date.Year() != year || int(date.Month()) != key.Month || date.Day() != key.Day {
			a.logger.Warn("Skipping entry with impossible date",
				zap.Int("day", key.Day),
				zap.Int("month", key.Month))
			continue
		}

		entry := hm[key]
		event := cal.AddEvent(fmt.Sprintf("cal2-%d-%02d-%02d@cal2.local", year, key.Month, key.Day))
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetSummary(entry.Name)
		event.SetDescription(entry.Kind.String())
		event.SetDtStampTime(a.now())
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}

	return nil
}
