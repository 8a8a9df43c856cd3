// Package classify assigns business-meaningful categories to extracted
// transactions using ordered rule layers.
package classify

import (
	"strings"

	"github.com/layak-app/layak/internal/model"
)

// Ruleset is the external configuration the classifier runs against: the
// known supplier list and the keyword sets. It is loaded once and shared
// read-only across concurrent classifications; classification logic never
// changes when the lists do.
type Ruleset struct {
	Suppliers        []string
	OwnerKeywords    []string
	FeeKeywords      []string
	TransferKeywords []string
}

// DefaultRuleset returns the built-in keyword sets. The supplier list is
// empty by default; it is business-specific and comes from configuration.
func DefaultRuleset() Ruleset {
	return Ruleset{
		OwnerKeywords: []string{
			"PAYMENT",
			"THANK YOU",
			"TERIMA KASIH",
			"BAYARAN",
		},
		FeeKeywords: []string{
			"SERVICE CHARGE",
			"BANK CHARGE",
			"ANNUAL FEE",
			"STAMP DUTY",
			"LATE CHARGE",
		},
		TransferKeywords: []string{
			"TRANSFER TO OWN",
			"OWN ACCOUNT TRANSFER",
			"INTERBANK GIRO OWN",
		},
	}
}

// ruleDefault is recorded as RuleMatched when no configured rule fired and
// the direction-based default decided the category.
const ruleDefault = "default"

// Classifier applies the rule layers. It is pure and deterministic: the
// same description, direction, and ruleset always yield the same category
// and matched rule.
type Classifier struct {
	rules Ruleset
}

// New creates a classifier over the given ruleset.
func New(rules Ruleset) *Classifier {
	return &Classifier{rules: rules}
}

// Classify assigns a category to one transaction. Layers are ordered and
// the first match wins:
//
//	debit:  supplier substring → supplier; fee keyword → bank-fee;
//	        transfer keyword → transfer; otherwise owner-drawing.
//	credit: owner-payment keyword → owner-drawing; transfer keyword →
//	        transfer; otherwise business-inflow.
//
// The asymmetric defaults are deliberate policy, not an omission: outflow
// the business cannot explain is attributed to the owner, and inflow the
// owner cannot explain is attributed to the business.
func (c *Classifier) Classify(txn model.RawTransaction) model.ClassifiedTransaction {
	classified := model.ClassifiedTransaction{RawTransaction: txn}
	description := strings.ToUpper(txn.Description)

	if txn.Direction == model.DirectionDebit {
		if supplier, ok := matchAny(description, c.rules.Suppliers); ok {
			classified.Category = model.CategorySupplier
			classified.RuleMatched = supplier
			return classified
		}
		if keyword, ok := matchAny(description, c.rules.FeeKeywords); ok {
			classified.Category = model.CategoryBankFee
			classified.RuleMatched = keyword
			return classified
		}
		if keyword, ok := matchAny(description, c.rules.TransferKeywords); ok {
			classified.Category = model.CategoryTransfer
			classified.RuleMatched = keyword
			return classified
		}
		classified.Category = model.CategoryOwnerDrawing
		classified.RuleMatched = ruleDefault
		return classified
	}

	if keyword, ok := matchAny(description, c.rules.OwnerKeywords); ok {
		classified.Category = model.CategoryOwnerDrawing
		classified.RuleMatched = keyword
		return classified
	}
	if keyword, ok := matchAny(description, c.rules.TransferKeywords); ok {
		classified.Category = model.CategoryTransfer
		classified.RuleMatched = keyword
		return classified
	}
	classified.Category = model.CategoryBusinessInflow
	classified.RuleMatched = ruleDefault
	return classified
}

// ClassifyAll classifies a full extraction in order.
func (c *Classifier) ClassifyAll(txns []model.RawTransaction) []model.ClassifiedTransaction {
	classified := make([]model.ClassifiedTransaction, 0, len(txns))
	for _, txn := range txns {
		classified = append(classified, c.Classify(txn))
	}
	return classified
}

// matchAny does a case-insensitive substring match of the description
// against each candidate in order, returning the first hit.
func matchAny(upperDescription string, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(upperDescription, strings.ToUpper(candidate)) {
			return candidate, true
		}
	}
	return "", false
}
