package catalog

import (
	"sort"
	"testing"

	"github.com/platecost/backend/internal/domain"
)

func TestLoadBaseline(t *testing.T) {
	baseline, err := LoadBaseline()
	if err != nil {
		t.Fatalf("LoadBaseline() error = %v", err)
	}

	if len(baseline.Keys()) == 0 {
		t.Fatal("baseline catalog is empty")
	}

	// Staples the matcher and tests rely on
	for _, key := range []string{"egg", "olive oil", "onion", "flour", "garlic", "milk"} {
		entry, ok := baseline.Lookup(key)
		if !ok {
			t.Errorf("Lookup(%q) not found", key)
			continue
		}
		if entry.PackagePrice <= 0 {
			t.Errorf("%q: price = %v, want positive", key, entry.PackagePrice)
		}
		if entry.PackageSize.Amount <= 0 {
			t.Errorf("%q: package amount = %v, want positive", key, entry.PackageSize.Amount)
		}
		if entry.Provenance != domain.ProvenanceBaseline {
			t.Errorf("%q: provenance = %q, want baseline", key, entry.Provenance)
		}
	}
}

func TestBaseline_KeysSorted(t *testing.T) {
	baseline, err := LoadBaseline()
	if err != nil {
		t.Fatalf("LoadBaseline() error = %v", err)
	}

	keys := baseline.Keys()
	if !sort.StringsAreSorted(keys) {
		t.Error("Keys() must be sorted for deterministic matching scans")
	}
}

func TestNewBaseline_DefaultsProvenance(t *testing.T) {
	baseline := NewBaseline([]domain.CatalogEntry{
		{
			Key:          "test item",
			PackageSize:  domain.PackageSize{Amount: 1, Unit: "each"},
			PackagePrice: 1.00,
		},
	})

	entry, ok := baseline.Lookup("test item")
	if !ok {
		t.Fatal("Lookup failed")
	}
	if entry.Provenance != domain.ProvenanceBaseline {
		t.Errorf("provenance = %q, want baseline default", entry.Provenance)
	}
}
