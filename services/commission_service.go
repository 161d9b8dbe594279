// services/commission_service.go
package services

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vectornet/vectornet_backend/models"
	"github.com/vectornet/vectornet_backend/repositories"
)

// CommissionPolicy holds the commission percentages applied to a business
// amount. Shares whose beneficiary cannot be resolved roll up into the
// network share, so the distributed total always equals the policy total.
type CommissionPolicy struct {
	NetworkPercent      decimal.Decimal
	RecommenderPercent  decimal.Decimal
	IntermediatePercent decimal.Decimal
	ParticipantPercent  decimal.Decimal
}

// LoadCommissionPolicy reads the commission percentages from the
// environment, falling back to the standard 1/3/2/4 split.
func LoadCommissionPolicy() CommissionPolicy {
	return CommissionPolicy{
		NetworkPercent:      percentFromEnv("COMMISSION_NETWORK_PERCENT", 1),
		RecommenderPercent:  percentFromEnv("COMMISSION_RECOMMENDER_PERCENT", 3),
		IntermediatePercent: percentFromEnv("COMMISSION_INTERMEDIATE_PERCENT", 2),
		ParticipantPercent:  percentFromEnv("COMMISSION_PARTICIPANT_PERCENT", 4),
	}
}

func percentFromEnv(key string, fallback int64) decimal.Decimal {
	if raw := os.Getenv(key); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
			return d
		}
	}
	return decimal.NewFromInt(fallback)
}

// CommissionService materializes pending commission payments when a
// business is recorded.
type CommissionService struct {
	policy      CommissionPolicy
	partnerRepo *repositories.PartnerRepository
	paymentRepo *repositories.PaymentRepository
}

func NewCommissionService(db *mongo.Client) *CommissionService {
	return &CommissionService{
		policy:      LoadCommissionPolicy(),
		partnerRepo: repositories.NewPartnerRepository(db),
		paymentRepo: repositories.NewPaymentRepository(db),
	}
}

// DistributeCommission resolves the recording partner's recommender chain
// and inserts one pending payment per commission share.
func (s *CommissionService) DistributeCommission(business *models.Business) ([]models.Payment, error) {
	partner, err := s.partnerRepo.FindByID(business.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve business partner: %w", err)
	}

	chain, err := s.partnerRepo.AncestorChain(partner, business.NetworkID, 512)
	if err != nil {
		return nil, fmt.Errorf("failed to walk recommender chain: %w", err)
	}

	payments := BuildCommissionPayments(s.policy, business, partner, chain)
	if err := s.paymentRepo.InsertMany(payments); err != nil {
		return nil, fmt.Errorf("failed to insert commission payments: %w", err)
	}
	return payments, nil
}

// BuildCommissionPayments computes the commission split for one business.
// The recording partner receives the participant share, the first ancestor
// the recommender share, the second the intermediate share, and the
// network keeps its own share. Shares without a resolvable beneficiary
// roll up into the network share.
func BuildCommissionPayments(policy CommissionPolicy, business *models.Business, partner *models.Partner, chain []models.Partner) []models.Payment {
	amount := decimal.NewFromFloat(business.Amount)
	networkShare := share(amount, policy.NetworkPercent)

	payments := make([]models.Payment, 0, 4)
	add := func(beneficiary *models.Partner, category models.PaymentCategory, value decimal.Decimal) {
		if value.IsZero() {
			return
		}
		if beneficiary == nil {
			networkShare = networkShare.Add(value)
			return
		}
		id := beneficiary.ID
		payments = append(payments, models.Payment{
			BusinessID: business.ID,
			NetworkID:  business.NetworkID,
			PartnerID:  &id,
			Category:   category,
			Amount:     toFloat(value),
			Status:     models.PaymentStatusPending,
		})
	}

	add(partner, models.PaymentCategoryParticipant, share(amount, policy.ParticipantPercent))
	add(ancestorAt(chain, 0), models.PaymentCategoryRecommender, share(amount, policy.RecommenderPercent))
	add(ancestorAt(chain, 1), models.PaymentCategoryIntermediate, share(amount, policy.IntermediatePercent))

	if !networkShare.IsZero() {
		payments = append(payments, models.Payment{
			BusinessID: business.ID,
			NetworkID:  business.NetworkID,
			Category:   models.PaymentCategoryNetwork,
			Amount:     toFloat(networkShare),
			Status:     models.PaymentStatusPending,
		})
	}
	return payments
}

func share(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(decimal.NewFromInt(100))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func ancestorAt(chain []models.Partner, i int) *models.Partner {
	if i >= len(chain) {
		return nil
	}
	return &chain[i]
}
