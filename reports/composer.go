// reports/composer.go
package reports

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vectornet/vectornet_backend/models"
)

// TreeReportOptions control one tree report composition.
type TreeReportOptions struct {
	ActiveOnly bool
	SortBy     SortKey
	Direction  SortDirection
	MaxDepth   int // 0 = unbounded
}

// ReportComposer produces the report structures for one network from an
// immutable snapshot of its partners and payment records. It performs no
// I/O and holds no state across calls; concurrent composers over the same
// or different snapshots never interfere.
type ReportComposer struct {
	network  models.Network
	partners []models.Partner
	payments []models.Payment
}

func NewReportComposer(network models.Network, partners []models.Partner, payments []models.Payment) *ReportComposer {
	return &ReportComposer{network: network, partners: partners, payments: payments}
}

// TreeReport builds the full partner-hierarchy report: tree construction,
// financial annotation, optional active-only filtering, recursive sort,
// per-level summary and grand totals. A network with no partners yields a
// well-formed empty report, not an error.
func (rc *ReportComposer) TreeReport(opts TreeReportOptions) (*models.NetworkReport, error) {
	index := NewGraphIndex(rc.partners)
	builder := NewTreeBuilder(index, rc.network)

	forest, err := builder.BuildForest(opts.MaxDepth)
	if err != nil {
		return nil, err
	}

	aggregator := NewFinancialAggregator(rc.payments)
	perPartner := aggregator.ByPartner(rc.partners)
	annotate(forest.Roots, perPartner)
	annotate(forest.Orphans, perPartner)

	// level summary counts both active and inactive partners, so it is
	// taken before the active-only filter
	levels := levelSummaries(forest.Roots)

	tree := forest.Roots
	orphans := forest.Orphans
	if opts.ActiveOnly {
		tree = filterActive(tree)
		orphans = filterActive(orphans)
	}

	sorter := NewTreeSorter(opts.SortBy, opts.Direction)
	sorter.Sort(tree)
	sorter.Sort(orphans)

	return &models.NetworkReport{
		NetworkID:   rc.network.ID,
		NetworkName: rc.network.Name,
		Tree:        tree,
		Orphans:     orphans,
		Levels:      levels,
		Totals:      aggregator.Totals(),
		MaxDepth:    forest.MaxDepth(),
	}, nil
}

// SubtreeReport builds the annotated descendant subtree of one partner.
func (rc *ReportComposer) SubtreeReport(rootID primitive.ObjectID, opts TreeReportOptions) (*models.PartnerNode, error) {
	index := NewGraphIndex(rc.partners)
	builder := NewTreeBuilder(index, rc.network)

	root, err := builder.BuildSubtree(rootID, opts.MaxDepth)
	if err != nil {
		return nil, err
	}

	perPartner := NewFinancialAggregator(rc.payments).ByPartner(rc.partners)
	annotate([]*models.PartnerNode{root}, perPartner)

	sorter := NewTreeSorter(opts.SortBy, opts.Direction)
	sorter.Sort(root.Children)
	return root, nil
}

// FinancialReport builds the category-level financial summary. All four
// level buckets are present with explicit zeros, ordered ascending.
func (rc *ReportComposer) FinancialReport() (*models.FinancialReport, error) {
	aggregator := NewFinancialAggregator(rc.payments)
	byLevel := aggregator.ByCategoryLevel()

	levels := make([]int, 0, len(byLevel))
	for lvl := range byLevel {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)

	rows := make([]models.FinancialLevel, 0, len(levels))
	for _, lvl := range levels {
		sum := byLevel[lvl]
		rows = append(rows, models.FinancialLevel{
			Level:            lvl,
			Label:            LevelLabel(lvl),
			Received:         sum.Received,
			Pending:          sum.Pending,
			TransactionCount: sum.TransactionCount,
		})
	}

	return &models.FinancialReport{
		NetworkID:   rc.network.ID,
		NetworkName: rc.network.Name,
		Levels:      rows,
		Totals:      aggregator.Totals(),
	}, nil
}

// BusinessReport builds per-partner business rows ordered by received
// amount (highest first, stable on ties). topN > 0 keeps only the leading
// rows.
func (rc *ReportComposer) BusinessReport(topN int) (*models.BusinessReport, error) {
	index := NewGraphIndex(rc.partners)
	builder := NewTreeBuilder(index, rc.network)

	forest, err := builder.BuildForest(0)
	if err != nil {
		return nil, err
	}
	levels := make(map[primitive.ObjectID]int, index.Size())
	collectLevels(forest.Roots, levels)
	collectLevels(forest.Orphans, levels)

	aggregator := NewFinancialAggregator(rc.payments)
	perPartner := aggregator.ByPartner(rc.partners)

	rows := make([]models.BusinessRow, 0, len(rc.partners))
	for _, p := range rc.partners {
		sum := perPartner[p.ID]
		lvl, ok := levels[p.ID]
		if !ok {
			lvl = OrphanLevel
		}
		rows = append(rows, models.BusinessRow{
			PartnerID:        p.ID,
			FullName:         p.FullName,
			Level:            lvl,
			IsActive:         p.IsActive,
			Received:         sum.Received,
			Pending:          sum.Pending,
			TransactionCount: sum.TransactionCount,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Received.Cmp(rows[j].Received) > 0
	})
	if topN > 0 && topN < len(rows) {
		rows = rows[:topN]
	}

	return &models.BusinessReport{
		NetworkID:   rc.network.ID,
		NetworkName: rc.network.Name,
		Rows:        rows,
		Totals:      aggregator.Totals(),
	}, nil
}

// annotate is the tree annotator: it attaches per-partner financial
// aggregates onto every node of the given trees, defaulting to all-zero
// summaries. Tree structure is never touched.
func annotate(nodes []*models.PartnerNode, perPartner map[primitive.ObjectID]models.FinancialSummary) {
	for _, n := range nodes {
		n.Finance = perPartner[n.ID]
		annotate(n.Children, perPartner)
	}
}

// filterActive prunes inactive partners; an inactive node's subtree goes
// with it.
func filterActive(nodes []*models.PartnerNode) []*models.PartnerNode {
	out := make([]*models.PartnerNode, 0, len(nodes))
	for _, n := range nodes {
		if !n.IsActive {
			continue
		}
		n.Children = filterActive(n.Children)
		out = append(out, n)
	}
	return out
}

// levelSummaries walks the trees and aggregates member counts and
// finances per level, ordered ascending.
func levelSummaries(roots []*models.PartnerNode) []models.LevelSummary {
	byLevel := make(map[int]models.LevelSummary)
	var walk func(nodes []*models.PartnerNode)
	walk = func(nodes []*models.PartnerNode) {
		for _, n := range nodes {
			sum := byLevel[n.Level]
			sum.Level = n.Level
			if n.IsActive {
				sum.ActiveCount++
			} else {
				sum.InactiveCount++
			}
			sum.Received = sum.Received.Add(n.Finance.Received)
			sum.Pending = sum.Pending.Add(n.Finance.Pending)
			sum.TransactionCount += n.Finance.TransactionCount
			byLevel[n.Level] = sum
			walk(n.Children)
		}
	}
	walk(roots)

	levels := make([]int, 0, len(byLevel))
	for lvl := range byLevel {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)

	out := make([]models.LevelSummary, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, byLevel[lvl])
	}
	return out
}

func collectLevels(nodes []*models.PartnerNode, out map[primitive.ObjectID]int) {
	for _, n := range nodes {
		out[n.ID] = n.Level
		collectLevels(n.Children, out)
	}
}
