package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/platecost/backend/internal/domain"
)

//go:embed baseline.yaml
var baselineYAML []byte

// packageSpec is the YAML shape of a package size
type packageSpec struct {
	Amount float64 `yaml:"amount"`
	Unit   string  `yaml:"unit"`
}

// entrySpec is the YAML shape of a single baseline price entry
type entrySpec struct {
	Key         string      `yaml:"key"`
	Description string      `yaml:"description"`
	Package     packageSpec `yaml:"package"`
	Price       float64     `yaml:"price"`
	PromoPrice  float64     `yaml:"promo_price,omitempty"`
}

type baselineFile struct {
	Entries []entrySpec `yaml:"entries"`
}

// Baseline is the static price catalog loaded from the embedded snapshot.
// It is immutable after load, so lookups need no locking.
type Baseline struct {
	entries map[string]*domain.CatalogEntry
	keys    []string
}

// LoadBaseline parses the embedded baseline snapshot
func LoadBaseline() (*Baseline, error) {
	var file baselineFile
	if err := yaml.Unmarshal(baselineYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse baseline catalog: %w", err)
	}
	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("baseline catalog is empty")
	}

	entries := make([]domain.CatalogEntry, 0, len(file.Entries))
	for _, spec := range file.Entries {
		if spec.Key == "" || spec.Price <= 0 || spec.Package.Amount <= 0 {
			return nil, fmt.Errorf("invalid baseline entry: %q", spec.Key)
		}
		entries = append(entries, domain.CatalogEntry{
			Key:         spec.Key,
			Description: spec.Description,
			PackageSize: domain.PackageSize{
				Amount: spec.Package.Amount,
				Unit:   spec.Package.Unit,
			},
			PackagePrice: spec.Price,
			PromoPrice:   spec.PromoPrice,
			Provenance:   domain.ProvenanceBaseline,
		})
	}

	return NewBaseline(entries), nil
}

// NewBaseline builds a catalog from explicit entries (used by tests and by
// callers supplying their own snapshot).
func NewBaseline(entries []domain.CatalogEntry) *Baseline {
	b := &Baseline{
		entries: make(map[string]*domain.CatalogEntry, len(entries)),
	}
	for i := range entries {
		entry := entries[i]
		if entry.Provenance == "" {
			entry.Provenance = domain.ProvenanceBaseline
		}
		b.entries[entry.Key] = &entry
		b.keys = append(b.keys, entry.Key)
	}
	sort.Strings(b.keys)
	return b
}

// Lookup returns the entry for an exact normalized key
func (b *Baseline) Lookup(key string) (*domain.CatalogEntry, bool) {
	entry, ok := b.entries[key]
	return entry, ok
}

// Keys returns all catalog keys in sorted order for deterministic scans
func (b *Baseline) Keys() []string {
	return b.keys
}
