package holiday

// Kind represents the origin of a holiday entry
type Kind int

const (
	KindOfficial Kind = iota + 1
	KindCustom
)

// String returns the lowercase label used in listings and exports
func (k Kind) String() string {
	switch k {
	case KindOfficial:
		return "official"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Entry represents one annotated day of the year
type Entry struct {
	Name string
	Kind Kind
}

// Official builds an entry sourced from a provider API
func Official(name string) Entry {
	return Entry{Name: name, Kind: KindOfficial}
}

// Custom builds an entry added by the user
func Custom(name string) Entry {
	return Entry{Name: name, Kind: KindCustom}
}

// Key addresses a day within a year. No calendar validation happens at
// this level, so impossible pairs like (31, 2) are storable.
type Key struct {
	Day   int
	Month int
}

// Map holds all annotated days of a single year
type Map map[Key]Entry
