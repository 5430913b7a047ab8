package holiday

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestFetcherArgentinaDatos(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2024" {
			t.Errorf("unexpected path %q, want /2024", r.URL.Path)
		}
		w.Write([]byte(`[
			{"fecha": "2024-01-01", "nombre": "Año Nuevo"},
			{"fecha": "2024-03-24", "nombre": "Día de la Memoria"},
			{"fecha": "garbage", "nombre": "Broken"}
		]`))
	}))
	defer server.Close()

	fetcher := NewFetcher(logger)
	fetcher.argentinaURL = server.URL

	hm, err := fetcher.Fetch(2024, DefaultProvider())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(hm) != 2 {
		t.Fatalf("Fetch() returned %d entries, want 2 (malformed date dropped)", len(hm))
	}

	entry, ok := hm[Key{Day: 1, Month: 1}]
	if !ok {
		t.Fatal("Fetch() missing entry for 1/1")
	}
	if entry.Name != "Año Nuevo" {
		t.Errorf("Name = %q, want %q", entry.Name, "Año Nuevo")
	}
	if entry.Kind != KindOfficial {
		t.Errorf("Kind = %v, want KindOfficial", entry.Kind)
	}

	if _, ok := hm[Key{Day: 24, Month: 3}]; !ok {
		t.Error("Fetch() missing entry for 24/3")
	}
}

func TestFetcherKeepsOutOfRangeDates(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"fecha": "2024-13-40", "nombre": "Strange"}]`))
	}))
	defer server.Close()

	fetcher := NewFetcher(logger)
	fetcher.argentinaURL = server.URL

	hm, err := fetcher.Fetch(2024, DefaultProvider())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if _, ok := hm[Key{Day: 40, Month: 13}]; !ok {
		t.Error("Fetch() dropped out-of-range date, want it stored as sent")
	}
}

func TestFetcherOpenHolidaysNames(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("countryIsoCode") != "DE" {
			t.Errorf("countryIsoCode = %q, want DE", query.Get("countryIsoCode"))
		}
		if query.Get("validFrom") != "2024-01-01" || query.Get("validTo") != "2024-12-31" {
			t.Errorf("validity window = %q..%q, want full year", query.Get("validFrom"), query.Get("validTo"))
		}
		w.Write([]byte(`[
			{"startDate": "2024-10-03", "name": [
				{"language": "DE", "text": "Tag der Deutschen Einheit"},
				{"language": "EN", "text": "Day of German Unity"}
			]},
			{"startDate": "2024-12-25", "name": [
				{"language": "DE", "text": "Weihnachten"}
			]},
			{"startDate": "2024-12-26", "name": []}
		]`))
	}))
	defer server.Close()

	provider, err := ResolveProvider("de")
	if err != nil {
		t.Fatalf("ResolveProvider error = %v", err)
	}

	fetcher := NewFetcher(logger)
	fetcher.openHolidaysURL = server.URL

	hm, err := fetcher.Fetch(2024, provider)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"english preferred", Key{Day: 3, Month: 10}, "Day of German Unity"},
		{"first name fallback", Key{Day: 25, Month: 12}, "Weihnachten"},
		{"default name for empty list", Key{Day: 26, Month: 12}, "Public holiday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := hm[tt.key]
			if !ok {
				t.Fatalf("missing entry for %+v", tt.key)
			}
			if entry.Name != tt.want {
				t.Errorf("Name = %q, want %q", entry.Name, tt.want)
			}
		})
	}
}

func TestFetcherErrors(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			fetcher := NewFetcher(logger)
			fetcher.argentinaURL = server.URL

			if _, err := fetcher.Fetch(2024, DefaultProvider()); err == nil {
				t.Error("Fetch() expected error, got nil")
			}
		})
	}
}

func TestFetcherURL(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	fetcher := NewFetcher(logger)

	us, err := ResolveProvider("us")
	if err != nil {
		t.Fatalf("ResolveProvider error = %v", err)
	}

	tests := []struct {
		name     string
		provider Provider
		want     string
	}{
		{
			name:     "argentina datos",
			provider: DefaultProvider(),
			want:     "https://api.argentinadatos.com/v1/feriados/2024",
		},
		{
			name:     "openholidays",
			provider: us,
			want:     "https://openholidaysapi.org/PublicHolidays?countryIsoCode=US&languageIsoCode=EN&validFrom=2024-01-01&validTo=2024-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fetcher.url(2024, tt.provider); got != tt.want {
				t.Errorf("url() = %q, want %q", got, tt.want)
			}
		})
	}
}
