package refdata

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abhisek/geodrill/internal/quiz"
)

//go:embed data/*.json
var embedded embed.FS

// ErrInvalidData is wrapped by every load failure caused by bad content.
var ErrInvalidData = errors.New("invalid reference data")

const (
	countriesFile = "countries.json"
	languagesFile = "languages.json"
)

// Catalog holds the immutable reference lists for both variants.
type Catalog struct {
	countries []Country
	languages []Language
}

// Default loads the reference data compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded data: %w", err)
	}
	return load(sub)
}

// LoadDir loads countries.json and languages.json from dir. A file missing
// from dir falls back to the embedded list; a file present but invalid is
// an error.
func LoadDir(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded data: %w", err)
	}
	return load(overlayFS{primary: os.DirFS(dir), fallback: sub})
}

func load(fsys fs.FS) (*Catalog, error) {
	var c Catalog
	if err := decode(fsys, countriesFile, countrySchema, &c.countries); err != nil {
		return nil, err
	}
	if err := decode(fsys, languagesFile, languageSchema, &c.languages); err != nil {
		return nil, err
	}
	if err := checkUnique(c.countries, c.languages); err != nil {
		return nil, err
	}
	return &c, nil
}

func decode(fsys fs.FS, name string, schema string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := validate(schema, raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidData, name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidData, name, err)
	}
	return nil
}

func checkUnique(countries []Country, languages []Language) error {
	seen := make(map[string]bool, len(countries))
	for _, c := range countries {
		if seen[c.Code] {
			return fmt.Errorf("%w: duplicate country code %q", ErrInvalidData, c.Code)
		}
		seen[c.Code] = true
	}
	seen = make(map[string]bool, len(languages))
	for _, l := range languages {
		if seen[l.Code] {
			return fmt.Errorf("%w: duplicate language code %q", ErrInvalidData, l.Code)
		}
		seen[l.Code] = true
	}
	return nil
}

// Countries returns a copy of the country list.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// Languages returns a copy of the language list.
func (c *Catalog) Languages() []Language {
	out := make([]Language, len(c.languages))
	copy(out, c.languages)
	return out
}

// Items returns the quiz pool for a variant, in data-file order.
func (c *Catalog) Items(v quiz.Variant) []quiz.Item {
	switch v {
	case quiz.Languages:
		out := make([]quiz.Item, len(c.languages))
		for i, l := range c.languages {
			out[i] = l
		}
		return out
	default:
		out := make([]quiz.Item, len(c.countries))
		for i, ct := range c.countries {
			out[i] = ct
		}
		return out
	}
}

// Lookup finds an item by key within a variant.
func (c *Catalog) Lookup(v quiz.Variant, key string) (quiz.Item, bool) {
	for _, it := range c.Items(v) {
		if it.Key() == key {
			return it, true
		}
	}
	return nil, false
}

// overlayFS reads from primary and falls back when a file does not exist.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return o.fallback.Open(name)
	}
	return nil, err
}
