package holiday

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	argentinaDatosBaseURL = "https://api.argentinadatos.com/v1/feriados"
	openHolidaysBaseURL   = "https://openholidaysapi.org/PublicHolidays"

	defaultHTTPTimeout = 10 * time.Second
)

// Fetcher downloads a year of holidays from a provider's HTTP API
type Fetcher struct {
	httpClient      *http.Client
	logger          *zap.Logger
	argentinaURL    string
	openHolidaysURL string
	progress        io.Writer
}

// argentinaHoliday is one entry of the ArgentinaDatos feriados response
type argentinaHoliday struct {
	Fecha  string `json:"fecha"`
	Nombre string `json:"nombre"`
}

// openHolidaysEntry is one entry of the OpenHolidays PublicHolidays response
type openHolidaysEntry struct {
	StartDate string             `json:"startDate"`
	Name      []openHolidaysName `json:"name"`
}

type openHolidaysName struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// NewFetcher creates a Fetcher talking to the production APIs. The fetch
// spinner is shown only when stderr is a terminal.
func NewFetcher(logger *zap.Logger) *Fetcher {
	progress := io.Writer(io.Discard)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		progress = os.Stderr
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:          logger,
		argentinaURL:    argentinaDatosBaseURL,
		openHolidaysURL: openHolidaysBaseURL,
		progress:        progress,
	}
}

// Fetch downloads all holidays of the given year from the provider. One
// request covers the whole year; there are no retries.
func (f *Fetcher) Fetch(year int, p Provider) (Map, error) {
	url := f.url(year, p)

	f.logger.Debug("Fetching holidays",
		zap.String("url", url),
		zap.Int("year", year),
		zap.String("provider", p.Slug()))

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(f.progress),
		progressbar.OptionSetDescription("Fetching holidays..."),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
	)
	defer bar.Close()

	resp, err := f.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	if p.IsDefault() {
		var entries []argentinaHoliday
		if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
			return nil, fmt.Errorf("failed to parse holiday response: %w", err)
		}
		return f.mapArgentina(entries), nil
	}

	var entries []openHolidaysEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}
	return f.mapOpenHolidays(entries), nil
}

func (f *Fetcher) url(year int, p Provider) string {
	if p.IsDefault() {
		return fmt.Sprintf("%s/%d", f.argentinaURL, year)
	}
	return fmt.Sprintf("%s?countryIsoCode=%s&languageIsoCode=EN&validFrom=%d-01-01&validTo=%d-12-31",
		f.openHolidaysURL, p.Country(), year, year)
}

func (f *Fetcher) mapArgentina(entries []argentinaHoliday) Map {
	hm := make(Map, len(entries))
	for _, entry := range entries {
		key, ok := parseDayMonth(entry.Fecha)
		if !ok {
			f.logger.Warn("Skipping holiday with malformed date",
				zap.String("date", entry.Fecha),
				zap.String("name", entry.Nombre))
			continue
		}
		hm[key] = Official(entry.Nombre)
	}
	return hm
}

func (f *Fetcher) mapOpenHolidays(entries []openHolidaysEntry) Map {
	hm := make(Map, len(entries))
	for _, entry := range entries {
		key, ok := parseDayMonth(entry.StartDate)
		if !ok {
			f.logger.Warn("Skipping holiday with malformed date",
				zap.String("date", entry.StartDate))
			continue
		}
		hm[key] = Official(pickName(entry.Name))
	}
	return hm
}

// parseDayMonth extracts (day, month) from a YYYY-MM-DD string. Values are
// taken as sent, without range checks; the providers own their calendars.
func parseDayMonth(date string) (Key, bool) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return Key{}, false
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Key{}, false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Key{}, false
	}

	return Key{Day: day, Month: month}, true
}

// pickName prefers the English name and falls back to the first one listed
func pickName(names []openHolidaysName) string {
	for _, n := range names {
		if strings.EqualFold(n.Language, "EN") {
			return n.Text
		}
	}
	if len(names) > 0 {
		return names[0].Text
	}
	return "Public holiday"
}
