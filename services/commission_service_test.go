package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vectornet/vectornet_backend/models"
)

func testPolicy() CommissionPolicy {
	return CommissionPolicy{
		NetworkPercent:      decimal.NewFromInt(1),
		RecommenderPercent:  decimal.NewFromInt(3),
		IntermediatePercent: decimal.NewFromInt(2),
		ParticipantPercent:  decimal.NewFromInt(4),
	}
}

func svcOID(b byte) primitive.ObjectID {
	return primitive.ObjectID{b}
}

func svcPartner(b byte, name string) models.Partner {
	return models.Partner{ID: svcOID(b), FullName: name}
}

func svcBusiness(amount float64) *models.Business {
	return &models.Business{
		ID:        svcOID(0xB0),
		NetworkID: svcOID(0xFF),
		PartnerID: svcOID(0x01),
		Amount:    amount,
		Status:    models.BusinessStatusRecorded,
	}
}

func paymentByCategory(t *testing.T, payments []models.Payment, category models.PaymentCategory) models.Payment {
	t.Helper()
	for _, p := range payments {
		if p.Category == category {
			return p
		}
	}
	t.Fatalf("no payment with category %s", category)
	return models.Payment{}
}

func TestBuildCommissionPaymentsFullChain(t *testing.T) {
	partner := svcPartner(0x01, "Paula")
	chain := []models.Partner{
		svcPartner(0x02, "Rita"),
		svcPartner(0x03, "Ivan"),
		svcPartner(0x04, "Nadia"),
	}

	payments := BuildCommissionPayments(testPolicy(), svcBusiness(1000), &partner, chain)
	require.Len(t, payments, 4)

	participant := paymentByCategory(t, payments, models.PaymentCategoryParticipant)
	assert.Equal(t, svcOID(0x01), *participant.PartnerID)
	assert.InEpsilon(t, 40.0, participant.Amount, 1e-9)

	recommender := paymentByCategory(t, payments, models.PaymentCategoryRecommender)
	assert.Equal(t, svcOID(0x02), *recommender.PartnerID)
	assert.InEpsilon(t, 30.0, recommender.Amount, 1e-9)

	intermediate := paymentByCategory(t, payments, models.PaymentCategoryIntermediate)
	assert.Equal(t, svcOID(0x03), *intermediate.PartnerID)
	assert.InEpsilon(t, 20.0, intermediate.Amount, 1e-9)

	network := paymentByCategory(t, payments, models.PaymentCategoryNetwork)
	assert.Nil(t, network.PartnerID)
	assert.InEpsilon(t, 10.0, network.Amount, 1e-9)

	for _, p := range payments {
		assert.Equal(t, models.PaymentStatusPending, p.Status)
		assert.Equal(t, svcOID(0xB0), p.BusinessID)
	}
}

// Missing ancestors roll their shares up into the network share.
func TestBuildCommissionPaymentsShortChain(t *testing.T) {
	partner := svcPartner(0x01, "Paula")

	payments := BuildCommissionPayments(testPolicy(), svcBusiness(1000), &partner, nil)
	require.Len(t, payments, 2)

	participant := paymentByCategory(t, payments, models.PaymentCategoryParticipant)
	assert.InEpsilon(t, 40.0, participant.Amount, 1e-9)

	network := paymentByCategory(t, payments, models.PaymentCategoryNetwork)
	assert.InEpsilon(t, 60.0, network.Amount, 1e-9)
}

func TestBuildCommissionPaymentsOneAncestor(t *testing.T) {
	partner := svcPartner(0x01, "Paula")
	chain := []models.Partner{svcPartner(0x02, "Rita")}

	payments := BuildCommissionPayments(testPolicy(), svcBusiness(100), &partner, chain)
	require.Len(t, payments, 3)

	network := paymentByCategory(t, payments, models.PaymentCategoryNetwork)
	// network 1% plus the unassigned intermediate 2%
	assert.InEpsilon(t, 3.0, network.Amount, 1e-9)
}

func TestBuildCommissionPaymentsZeroSharesOmitted(t *testing.T) {
	policy := testPolicy()
	policy.IntermediatePercent = decimal.Zero
	partner := svcPartner(0x01, "Paula")
	chain := []models.Partner{
		svcPartner(0x02, "Rita"),
		svcPartner(0x03, "Ivan"),
	}

	payments := BuildCommissionPayments(policy, svcBusiness(1000), &partner, chain)
	require.Len(t, payments, 3)
	for _, p := range payments {
		assert.NotEqual(t, models.PaymentCategoryIntermediate, p.Category)
	}
}

func TestLoadCommissionPolicyDefaults(t *testing.T) {
	t.Setenv("COMMISSION_NETWORK_PERCENT", "")
	t.Setenv("COMMISSION_RECOMMENDER_PERCENT", "")
	t.Setenv("COMMISSION_INTERMEDIATE_PERCENT", "")
	t.Setenv("COMMISSION_PARTICIPANT_PERCENT", "")

	policy := LoadCommissionPolicy()
	assert.Equal(t, "1", policy.NetworkPercent.String())
	assert.Equal(t, "3", policy.RecommenderPercent.String())
	assert.Equal(t, "2", policy.IntermediatePercent.String())
	assert.Equal(t, "4", policy.ParticipantPercent.String())
}

func TestLoadCommissionPolicyFromEnv(t *testing.T) {
	t.Setenv("COMMISSION_NETWORK_PERCENT", "2.5")
	t.Setenv("COMMISSION_PARTICIPANT_PERCENT", "-3")

	policy := LoadCommissionPolicy()
	assert.Equal(t, "2.5", policy.NetworkPercent.String())
	// negative values are rejected in favor of the default
	assert.Equal(t, "4", policy.ParticipantPercent.String())
}
