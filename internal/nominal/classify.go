package nominal

import (
	"strings"

	"garage/internal/domain"
)

// Classify determines the item type used for rule matching.
func Classify(item domain.LineItem) domain.ItemType {
	switch {
	case strings.Contains(lower(item.Description), "mot test"):
		return domain.ItemMOT
	case item.IsCourtesyCar:
		return domain.ItemCourtesyCar
	case item.IsStorageCharge:
		return domain.ItemStorage
	case item.IsLabor == nil:
		return domain.ItemPurchase
	case *item.IsLabor:
		return domain.ItemLabor
	default:
		return domain.ItemPart
	}
}

// Assignment is the outcome of matching one line item.
type Assignment struct {
	Item          domain.LineItem `json:"item"`
	ItemType      domain.ItemType `json:"itemType"`
	NominalCodeID *string         `json:"nominalCodeId"`
}

// AssignAll classifies and matches every item against rules for entityID.
func AssignAll(items []domain.LineItem, entityID string, rules []domain.NominalCodeRule) []Assignment {
	out := make([]Assignment, 0, len(items))
	for _, item := range items {
		a := Assignment{Item: item, ItemType: Classify(item)}
		if id, ok := Assign(item.Description, a.ItemType, entityID, rules); ok {
			a.NominalCodeID = &id
		}
		out = append(out, a)
	}
	return out
}
