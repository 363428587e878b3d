package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog is returned when a catalog fails validation.
var ErrInvalidCatalog = errors.New("invalid content catalog")

// Catalog is the read-only set of units shipped with the app.
type Catalog struct {
	units []Unit
	byID  map[string]int
}

type catalogFile struct {
	Units []Unit `yaml:"units"`
}

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which is a build defect.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads and validates a catalog file from disk.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML catalog bytes and validates the result.
func Parse(b []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := Validate(f.Units); err != nil {
		return nil, err
	}

	c := &Catalog{units: f.Units, byID: make(map[string]int, len(f.Units))}
	for i, u := range f.Units {
		c.byID[u.ID] = i
	}
	return c, nil
}

// Units returns a copy of every unit in catalog order.
func (c *Catalog) Units() []Unit {
	out := make([]Unit, len(c.units))
	for i, u := range c.units {
		out[i] = u.Clone()
	}
	return out
}

// Unit looks up a unit by ID.
func (c *Catalog) Unit(id string) (Unit, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Unit{}, false
	}
	return c.units[i].Clone(), true
}

// Validate checks structural rules: unique IDs, non-empty units, known
// enum values and progress within bounds.
func Validate(units []Unit) error {
	if len(units) == 0 {
		return fmt.Errorf("%w: no units", ErrInvalidCatalog)
	}

	unitIDs := make(map[string]bool, len(units))
	itemIDs := make(map[string]bool)

	for i, u := range units {
		if strings.TrimSpace(u.ID) == "" {
			return fmt.Errorf("%w: unit %d has no id", ErrInvalidCatalog, i)
		}
		if unitIDs[u.ID] {
			return fmt.Errorf("%w: duplicate unit id %q", ErrInvalidCatalog, u.ID)
		}
		unitIDs[u.ID] = true

		if strings.TrimSpace(u.Title) == "" {
			return fmt.Errorf("%w: unit %q has no title", ErrInvalidCatalog, u.ID)
		}
		if !u.Level.Valid() {
			return fmt.Errorf("%w: unit %q has unknown level %q", ErrInvalidCatalog, u.ID, u.Level)
		}
		if u.Progress < 0 || u.Progress > 100 {
			return fmt.Errorf("%w: unit %q progress %d out of range", ErrInvalidCatalog, u.ID, u.Progress)
		}
		if len(u.Items) == 0 {
			return fmt.Errorf("%w: unit %q has no items", ErrInvalidCatalog, u.ID)
		}

		for _, it := range u.Items {
			if strings.TrimSpace(it.ID) == "" || strings.TrimSpace(it.Text) == "" {
				return fmt.Errorf("%w: unit %q has an item without id or text", ErrInvalidCatalog, u.ID)
			}
			if itemIDs[it.ID] {
				return fmt.Errorf("%w: duplicate item id %q", ErrInvalidCatalog, it.ID)
			}
			itemIDs[it.ID] = true

			switch it.Kind {
			case KindWord, KindPhrase, KindSentence:
			default:
				return fmt.Errorf("%w: item %q has unknown kind %q", ErrInvalidCatalog, it.ID, it.Kind)
			}
		}
	}
	return nil
}
