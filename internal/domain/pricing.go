package domain

// ProvenanceBaseline marks entries sourced from the static baseline catalog.
// Live providers report their own name as provenance.
const ProvenanceBaseline = "baseline"

// MatchReason records how an ingredient was resolved against a catalog
type MatchReason string

const (
	MatchExact     MatchReason = "exact"
	MatchAlias     MatchReason = "alias"
	MatchSubstring MatchReason = "substring"
	MatchFallback  MatchReason = "fallback-estimate"
)

// PackageSize is the size of a priced package: an amount in a canonical unit
type PackageSize struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CatalogEntry is a priced grocery package from the baseline catalog or a
// live provider. PromoPrice of 0 means no promotion.
type CatalogEntry struct {
	Key           string      `json:"key"`
	Description   string      `json:"description"`
	PackageSize   PackageSize `json:"packageSize"`
	PackagePrice  float64     `json:"packagePrice"`
	PromoPrice    float64     `json:"promoPrice,omitempty"`
	Provenance    string      `json:"provenance"`
	StoreLocation string      `json:"storeLocation,omitempty"`
	StockLevel    string      `json:"stockLevel,omitempty"`
}

// EffectivePrice returns the promo price when one exists and undercuts the
// regular price, otherwise the regular package price.
func (e *CatalogEntry) EffectivePrice() float64 {
	if e.PromoPrice > 0 && e.PromoPrice < e.PackagePrice {
		return e.PromoPrice
	}
	return e.PackagePrice
}

// MatchResult links an ingredient to at most one catalog entry. Entry may be
// nil; the cost calculator then applies the fallback heuristic. CostScale
// discounts the matched entry's cost basis for derivative ingredients
// (e.g. egg yolk = half an egg).
type MatchResult struct {
	Entry      *CatalogEntry `json:"entry,omitempty"`
	Confidence Confidence    `json:"confidence"`
	Reason     MatchReason   `json:"matchReason"`
	CostScale  float64       `json:"costScale,omitempty"`
}

// ProviderQuote is the normalized shape every live pricing provider maps its
// response into at the boundary. Core logic never sees raw provider payloads.
type ProviderQuote struct {
	MatchedDescription string      `json:"matchedDescription"`
	PackagePrice       float64     `json:"packagePrice"`
	PromoPrice         float64     `json:"promoPrice,omitempty"`
	PackageSize        PackageSize `json:"packageSize"`
	Confidence         Confidence  `json:"confidence"`
	Provenance         string      `json:"provenance"`
	StoreLocation      string      `json:"storeLocation,omitempty"`
	StockLevel         string      `json:"stockLevel,omitempty"`
}

// Entry converts a provider quote into a catalog entry so the portion cost
// calculator treats baseline and live results uniformly.
func (q *ProviderQuote) Entry() *CatalogEntry {
	return &CatalogEntry{
		Description:   q.MatchedDescription,
		PackageSize:   q.PackageSize,
		PackagePrice:  q.PackagePrice,
		PromoPrice:    q.PromoPrice,
		Provenance:    q.Provenance,
		StoreLocation: q.StoreLocation,
		StockLevel:    q.StockLevel,
	}
}
