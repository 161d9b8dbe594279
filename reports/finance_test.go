package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vectornet/vectornet_backend/models"
)

func testPayment(partner *primitive.ObjectID, business byte, category models.PaymentCategory, amount float64, status models.PaymentStatus) models.Payment {
	return models.Payment{
		ID:         primitive.NewObjectID(),
		BusinessID: oid(business),
		NetworkID:  oid(0xFF),
		PartnerID:  partner,
		Category:   category,
		Amount:     amount,
		Status:     status,
	}
}

func TestByPartnerZeroEntriesForAllPartners(t *testing.T) {
	partners := chainSnapshot()
	agg := NewFinancialAggregator(nil)

	perPartner := agg.ByPartner(partners)
	require.Len(t, perPartner, len(partners))
	for _, p := range partners {
		sum, ok := perPartner[p.ID]
		require.True(t, ok)
		assert.True(t, sum.Received.IsZero())
		assert.True(t, sum.Pending.IsZero())
		assert.Equal(t, 0, sum.TransactionCount)
	}
}

func TestByPartnerSums(t *testing.T) {
	partners := chainSnapshot()
	payments := []models.Payment{
		testPayment(oidPtr(0x0B), 0x30, models.PaymentCategoryRecommender, 10, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0B), 0x31, models.PaymentCategoryRecommender, 2.5, models.PaymentStatusPending),
		testPayment(oidPtr(0x0C), 0x30, models.PaymentCategoryParticipant, 90, models.PaymentStatusPending),
		// cancelled rows never count
		testPayment(oidPtr(0x0C), 0x32, models.PaymentCategoryParticipant, 500, models.PaymentStatusCancelled),
		// network share has no partner beneficiary
		testPayment(nil, 0x30, models.PaymentCategoryNetwork, 1, models.PaymentStatusPaid),
	}

	perPartner := NewFinancialAggregator(payments).ByPartner(partners)

	b := perPartner[oid(0x0B)]
	assert.Equal(t, "10", b.Received.String())
	assert.Equal(t, "2.5", b.Pending.String())
	assert.Equal(t, 2, b.TransactionCount)

	c := perPartner[oid(0x0C)]
	assert.True(t, c.Received.IsZero())
	assert.Equal(t, "90", c.Pending.String())
	assert.Equal(t, 1, c.TransactionCount)
}

func TestByPartnerDistinctBusinessCount(t *testing.T) {
	payments := []models.Payment{
		testPayment(oidPtr(0x0B), 0x30, models.PaymentCategoryRecommender, 1, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0B), 0x30, models.PaymentCategoryRecommender, 2, models.PaymentStatusPending),
		testPayment(oidPtr(0x0B), 0x31, models.PaymentCategoryRecommender, 3, models.PaymentStatusPaid),
	}

	perPartner := NewFinancialAggregator(payments).ByPartner(chainSnapshot())
	sum := perPartner[oid(0x0B)]
	assert.Equal(t, 2, sum.TransactionCount)
	assert.Equal(t, "4", sum.Received.String())
	assert.Equal(t, "2", sum.Pending.String())
}

func TestByPartnerOutsideSnapshotStillSurfaced(t *testing.T) {
	payments := []models.Payment{
		testPayment(oidPtr(0x55), 0x30, models.PaymentCategoryRecommender, 7, models.PaymentStatusPaid),
	}

	perPartner := NewFinancialAggregator(payments).ByPartner(chainSnapshot())
	sum, ok := perPartner[oid(0x55)]
	require.True(t, ok)
	assert.Equal(t, "7", sum.Received.String())
	assert.Equal(t, 1, sum.TransactionCount)
}

func TestByCategoryLevel(t *testing.T) {
	payments := []models.Payment{
		testPayment(oidPtr(0x0B), 0x30, models.PaymentCategoryRecommender, 10, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0C), 0x30, models.PaymentCategoryParticipant, 90, models.PaymentStatusPending),
		testPayment(nil, 0x30, models.PaymentCategoryNetwork, 5, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0C), 0x31, models.PaymentCategoryParticipant, 400, models.PaymentStatusCancelled),
	}

	byLevel := NewFinancialAggregator(payments).ByCategoryLevel()
	require.Len(t, byLevel, 4)

	assert.Equal(t, "5", byLevel[0].Received.String())
	assert.Equal(t, "10", byLevel[1].Received.String())
	assert.True(t, byLevel[1].Pending.IsZero())
	assert.True(t, byLevel[2].Received.IsZero())
	assert.True(t, byLevel[2].Pending.IsZero())
	assert.Equal(t, 0, byLevel[2].TransactionCount)
	assert.Equal(t, "90", byLevel[3].Pending.String())
	assert.Equal(t, 1, byLevel[3].TransactionCount)
}

func TestByLevelRegroupsAndKeepsOrphanBucket(t *testing.T) {
	partners := chainSnapshot()
	payments := []models.Payment{
		testPayment(oidPtr(0x0A), 0x30, models.PaymentCategoryRecommender, 1, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0B), 0x30, models.PaymentCategoryIntermediate, 2, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0D), 0x31, models.PaymentCategoryParticipant, 3, models.PaymentStatusPending),
	}
	agg := NewFinancialAggregator(payments)
	perPartner := agg.ByPartner(partners)

	levels := map[primitive.ObjectID]int{
		oid(0x0A): 0,
		oid(0x0B): 1,
		oid(0x0C): 2,
		// D resolves to no level
	}
	byLevel := agg.ByLevel(levels, perPartner)

	assert.Equal(t, "1", byLevel[0].Received.String())
	assert.Equal(t, "2", byLevel[1].Received.String())
	assert.Equal(t, "3", byLevel[OrphanLevel].Pending.String())
}

// Conservation: the grand total must equal the sum across category levels
// and the sum across partners plus network shares.
func TestTotalsMatchBreakdowns(t *testing.T) {
	payments := []models.Payment{
		testPayment(nil, 0x30, models.PaymentCategoryNetwork, 1, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0A), 0x30, models.PaymentCategoryRecommender, 3, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0B), 0x30, models.PaymentCategoryIntermediate, 2, models.PaymentStatusPending),
		testPayment(oidPtr(0x0C), 0x31, models.PaymentCategoryParticipant, 4, models.PaymentStatusPending),
		testPayment(oidPtr(0x0C), 0x31, models.PaymentCategoryParticipant, 9, models.PaymentStatusCancelled),
	}
	agg := NewFinancialAggregator(payments)

	totals := agg.Totals()
	assert.Equal(t, "4", totals.Received.String())
	assert.Equal(t, "6", totals.Pending.String())
	assert.Equal(t, 2, totals.TransactionCount)

	var catReceived, catPending decimal.Decimal
	for _, sum := range agg.ByCategoryLevel() {
		catReceived = catReceived.Add(sum.Received)
		catPending = catPending.Add(sum.Pending)
	}
	assert.True(t, totals.Received.Equal(catReceived))
	assert.True(t, totals.Pending.Equal(catPending))

	var partReceived, partPending decimal.Decimal
	for _, sum := range agg.ByPartner(chainSnapshot()) {
		partReceived = partReceived.Add(sum.Received)
		partPending = partPending.Add(sum.Pending)
	}
	// network shares carry no partner beneficiary
	partReceived = partReceived.Add(decimal.NewFromInt(1))
	assert.True(t, totals.Received.Equal(partReceived))
	assert.True(t, totals.Pending.Equal(partPending))
}

func TestCategoryLevelMapping(t *testing.T) {
	assert.Equal(t, 0, CategoryLevel(models.PaymentCategoryNetwork))
	assert.Equal(t, 1, CategoryLevel(models.PaymentCategoryRecommender))
	assert.Equal(t, 2, CategoryLevel(models.PaymentCategoryIntermediate))
	assert.Equal(t, 3, CategoryLevel(models.PaymentCategoryParticipant))
	assert.Equal(t, 3, CategoryLevel(models.PaymentCategory("unknown")))

	assert.Equal(t, "network", LevelLabel(0))
	assert.Equal(t, "1", LevelLabel(1))
	assert.Equal(t, "2", LevelLabel(2))
	assert.Equal(t, "3+", LevelLabel(3))
	assert.Equal(t, "3+", LevelLabel(9))
}
