// reports/finance.go
package reports

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vectornet/vectornet_backend/models"
)

// categoryLevels is the single payment-category -> report-level table
// shared by every aggregation call site. Chains deeper than three levels
// collapse into the participant bucket, labelled "3+".
var categoryLevels = map[models.PaymentCategory]int{
	models.PaymentCategoryNetwork:      0,
	models.PaymentCategoryRecommender:  1,
	models.PaymentCategoryIntermediate: 2,
	models.PaymentCategoryParticipant:  3,
}

var categoryLevelLabels = map[int]string{
	0: "network",
	1: "1",
	2: "2",
	3: "3+",
}

// CategoryLevel returns the report level for a payment category.
func CategoryLevel(category models.PaymentCategory) int {
	if lvl, ok := categoryLevels[category]; ok {
		return lvl
	}
	return categoryLevels[models.PaymentCategoryParticipant]
}

// FinancialAggregator sums commission payment records. Cancelled payments
// contribute to no bucket; paid amounts land in Received, pending amounts
// in Pending. Transaction counts are distinct businesses, not payment
// rows. All sums use exact decimal arithmetic: stored float amounts are
// lifted to decimals once, here, and never summed as floats.
type FinancialAggregator struct {
	payments []models.Payment
}

func NewFinancialAggregator(payments []models.Payment) *FinancialAggregator {
	return &FinancialAggregator{payments: payments}
}

// ByPartner aggregates per beneficiary partner. Every partner in the
// snapshot gets an entry, explicitly zero when it has no payment records.
// Network-level shares have no partner beneficiary and are skipped here;
// they still count toward Totals and the category levels.
func (fa *FinancialAggregator) ByPartner(partners []models.Partner) map[primitive.ObjectID]models.FinancialSummary {
	out := make(map[primitive.ObjectID]models.FinancialSummary, len(partners))
	businesses := make(map[primitive.ObjectID]map[primitive.ObjectID]bool, len(partners))
	for _, p := range partners {
		out[p.ID] = models.FinancialSummary{}
		businesses[p.ID] = make(map[primitive.ObjectID]bool)
	}

	for _, pay := range fa.payments {
		if pay.PartnerID == nil || pay.Status == models.PaymentStatusCancelled {
			continue
		}
		id := *pay.PartnerID
		sum, ok := out[id]
		if !ok {
			// payment for a partner outside the snapshot; still surfaced
			sum = models.FinancialSummary{}
			businesses[id] = make(map[primitive.ObjectID]bool)
		}
		sum = addPayment(sum, pay)
		if !businesses[id][pay.BusinessID] {
			businesses[id][pay.BusinessID] = true
			sum.TransactionCount++
		}
		out[id] = sum
	}
	return out
}

// ByLevel regroups per-partner aggregates by resolved tree level. Orphan
// aggregates (level -1) keep their own bucket so data-integrity issues
// stay visible.
func (fa *FinancialAggregator) ByLevel(levels map[primitive.ObjectID]int, perPartner map[primitive.ObjectID]models.FinancialSummary) map[int]models.FinancialSummary {
	out := make(map[int]models.FinancialSummary)
	for id, sum := range perPartner {
		lvl, ok := levels[id]
		if !ok {
			lvl = OrphanLevel
		}
		agg := out[lvl]
		agg.Received = agg.Received.Add(sum.Received)
		agg.Pending = agg.Pending.Add(sum.Pending)
		agg.TransactionCount += sum.TransactionCount
		out[lvl] = agg
	}
	return out
}

// ByCategoryLevel aggregates by the shared category -> level table. All
// four buckets are always present with explicit zeros.
func (fa *FinancialAggregator) ByCategoryLevel() map[int]models.FinancialSummary {
	out := make(map[int]models.FinancialSummary, len(categoryLevelLabels))
	businesses := make(map[int]map[primitive.ObjectID]bool, len(categoryLevelLabels))
	for lvl := range categoryLevelLabels {
		out[lvl] = models.FinancialSummary{}
		businesses[lvl] = make(map[primitive.ObjectID]bool)
	}

	for _, pay := range fa.payments {
		if pay.Status == models.PaymentStatusCancelled {
			continue
		}
		lvl := CategoryLevel(pay.Category)
		sum := addPayment(out[lvl], pay)
		if !businesses[lvl][pay.BusinessID] {
			businesses[lvl][pay.BusinessID] = true
			sum.TransactionCount++
		}
		out[lvl] = sum
	}
	return out
}

// LevelLabel returns the display label for a category level.
func LevelLabel(level int) string {
	if label, ok := categoryLevelLabels[level]; ok {
		return label
	}
	return "3+"
}

// Totals aggregates across the whole payment set. By construction the
// result equals the sum of the per-partner aggregates plus network-level
// shares, and the sum of the category-level aggregates.
func (fa *FinancialAggregator) Totals() models.FinancialSummary {
	var total models.FinancialSummary
	businesses := make(map[primitive.ObjectID]bool)
	for _, pay := range fa.payments {
		if pay.Status == models.PaymentStatusCancelled {
			continue
		}
		total = addPayment(total, pay)
		if !businesses[pay.BusinessID] {
			businesses[pay.BusinessID] = true
			total.TransactionCount++
		}
	}
	return total
}

func addPayment(sum models.FinancialSummary, pay models.Payment) models.FinancialSummary {
	amount := decimal.NewFromFloat(pay.Amount)
	switch pay.Status {
	case models.PaymentStatusPaid:
		sum.Received = sum.Received.Add(amount)
	case models.PaymentStatusPending:
		sum.Pending = sum.Pending.Add(amount)
	}
	return sum
}
