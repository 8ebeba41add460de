package domain

// Confidence is a coarse quality tier on a cost estimate, driven by match
// specificity and data source.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// rank orders confidence tiers: low < medium < high
func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// Min returns the lower of two confidence tiers
func (c Confidence) Min(other Confidence) Confidence {
	if other.rank() < c.rank() {
		return other
	}
	return c
}

// Ingredient is a single recipe line item as supplied by the caller.
// WeightGrams is an optional explicit override (0 = unset).
type Ingredient struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Unit        string  `json:"unit"`
	WeightGrams float64 `json:"weightGrams,omitempty"`
}

// CostBreakdown is the per-ingredient result of the portion cost calculation
type CostBreakdown struct {
	PortionCost      float64 `json:"portionCost"`
	PackagePrice     float64 `json:"packagePrice"`
	PackagesNeeded   int     `json:"packagesNeeded"`
	WasteAmount      float64 `json:"wasteAmount"`
	WasteUnit        string  `json:"wasteUnit,omitempty"`
	UtilizationRatio float64 `json:"utilizationRatio"`
}

// IngredientEstimate carries the per-item diagnostics surfaced to the review
// UI alongside the computed cost.
type IngredientEstimate struct {
	Original           string     `json:"original"`
	MatchedDescription string     `json:"matchedDescription,omitempty"`
	PriceLabel         string     `json:"priceLabel,omitempty"`
	EstimatedCost      float64    `json:"estimatedCost"`
	Confidence         Confidence `json:"confidence"`
	NeedsReview        bool       `json:"needsReview"`
	PackagesNeeded     int        `json:"packagesNeeded,omitempty"`
	PackageSize        string     `json:"packageSize,omitempty"`
	PortionCost        float64    `json:"portionCost"`
	PackagePrice       float64    `json:"packagePrice,omitempty"`
	Provenance         string     `json:"provenance,omitempty"`
	ValidationError    string     `json:"validationError,omitempty"`
}

// RecipeCostResult aggregates all per-ingredient estimates
type RecipeCostResult struct {
	EstimateID     string               `json:"estimateId"`
	TotalCost      float64              `json:"totalCost"`
	CostPerServing float64              `json:"costPerServing"`
	Servings       int                  `json:"servings"`
	Confidence     Confidence           `json:"confidence"`
	NeedsReview    bool                 `json:"needsReview"`
	Items          []IngredientEstimate `json:"items"`
}
