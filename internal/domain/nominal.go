package domain

// ItemType classifies a financial line item for nominal code matching.
type ItemType string

const (
	ItemLabor       ItemType = "Labor"
	ItemPart        ItemType = "Part"
	ItemMOT         ItemType = "MOT"
	ItemPurchase    ItemType = "Purchase"
	ItemCourtesyCar ItemType = "CourtesyCar"
	ItemStorage     ItemType = "Storage"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemLabor, ItemPart, ItemMOT, ItemPurchase, ItemCourtesyCar, ItemStorage:
		return true
	}
	return false
}

// AllEntities is the rule entity id that applies to every business entity.
const AllEntities = "all"

// NominalCode is an accounting ledger category.
type NominalCode struct {
	ID   string `json:"id" yaml:"id"`
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// NominalCodeRule maps line items to a nominal code. Keywords and
// ExcludeKeywords are comma separated, case-insensitive substrings.
type NominalCodeRule struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Priority        int      `json:"priority" yaml:"priority"`
	EntityID        string   `json:"entityId" yaml:"entity_id"`
	ItemType        ItemType `json:"itemType" yaml:"item_type"`
	Keywords        string   `json:"keywords" yaml:"keywords"`
	ExcludeKeywords string   `json:"excludeKeywords" yaml:"exclude_keywords"`
	NominalCodeID   string   `json:"nominalCodeId" yaml:"nominal_code_id"`
}

// LineItem is a single financial line from an invoice, estimate or purchase
// order. A nil IsLabor marks a purchase-order line.
type LineItem struct {
	Description     string  `json:"description"`
	IsLabor         *bool   `json:"isLabor,omitempty"`
	IsCourtesyCar   bool    `json:"isCourtesyCar,omitempty"`
	IsStorageCharge bool    `json:"isStorageCharge,omitempty"`
	NetAmount       float64 `json:"netAmount,omitempty"`
}
