// models/report.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FinancialSummary aggregates commission results for one partner, one
// level, or a whole network. Amounts are exact decimals; the zero value is
// a valid all-zero summary.
type FinancialSummary struct {
	Received         decimal.Decimal `json:"received"`
	Pending          decimal.Decimal `json:"pending"`
	TransactionCount int             `json:"transactionCount"`
}

// PartnerNode is one node of a derived partner tree. Level is 0 for
// partners directly under the network root and -1 for orphans (depth
// undefined). Children keep snapshot insertion order until a sort is
// applied.
type PartnerNode struct {
	ID              primitive.ObjectID  `json:"id"`
	NetworkID       primitive.ObjectID  `json:"networkId"`
	RecommenderID   *primitive.ObjectID `json:"recommenderId,omitempty"`
	RecommenderName string              `json:"recommenderName,omitempty"`
	FullName        string              `json:"fullName"`
	IsActive        bool                `json:"isActive"`
	CreatedAt       time.Time           `json:"createdAt"`
	Level           int                 `json:"level"`
	Finance         FinancialSummary    `json:"finance"`
	Children        []*PartnerNode      `json:"children,omitempty"`
}

// LevelSummary aggregates one level of a partner tree.
type LevelSummary struct {
	Level            int             `json:"level"`
	ActiveCount      int             `json:"activeCount"`
	InactiveCount    int             `json:"inactiveCount"`
	Received         decimal.Decimal `json:"received"`
	Pending          decimal.Decimal `json:"pending"`
	TransactionCount int             `json:"transactionCount"`
}

// NetworkReport is the partner-hierarchy report for one network. Orphans
// (partners whose recommender cannot be resolved) are surfaced separately
// and never merged into the tree.
type NetworkReport struct {
	NetworkID   primitive.ObjectID `json:"networkId"`
	NetworkName string             `json:"networkName"`
	Tree        []*PartnerNode     `json:"tree"`
	Orphans     []*PartnerNode     `json:"orphans,omitempty"`
	Levels      []LevelSummary     `json:"levels"`
	Totals      FinancialSummary   `json:"totals"`
	MaxDepth    int                `json:"maxDepth"`
}

// FinancialLevel is one row of the category-based financial report. Level
// follows the shared payment-category mapping (network share at 0, deeper
// chains collapse into the "3+" bucket).
type FinancialLevel struct {
	Level            int             `json:"level"`
	Label            string          `json:"label"`
	Received         decimal.Decimal `json:"received"`
	Pending          decimal.Decimal `json:"pending"`
	TransactionCount int             `json:"transactionCount"`
}

type FinancialReport struct {
	NetworkID   primitive.ObjectID `json:"networkId"`
	NetworkName string             `json:"networkName"`
	Levels      []FinancialLevel   `json:"levels"`
	Totals      FinancialSummary   `json:"totals"`
}

// BusinessRow is one partner's line in the business report.
type BusinessRow struct {
	PartnerID        primitive.ObjectID `json:"partnerId"`
	FullName         string             `json:"fullName"`
	Level            int                `json:"level"`
	IsActive         bool               `json:"isActive"`
	Received         decimal.Decimal    `json:"received"`
	Pending          decimal.Decimal    `json:"pending"`
	TransactionCount int                `json:"transactionCount"`
}

type BusinessReport struct {
	NetworkID   primitive.ObjectID `json:"networkId"`
	NetworkName string             `json:"networkName"`
	Rows        []BusinessRow      `json:"rows"`
	Totals      FinancialSummary   `json:"totals"`
}
