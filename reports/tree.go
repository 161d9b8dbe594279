// reports/tree.go
package reports

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vectornet/vectornet_backend/models"
)

// MaxChainDepth is the hard cap on tree recursion. A well-formed network
// never gets close; hitting it means the snapshot is structurally
// inconsistent.
const MaxChainDepth = 512

// OrphanLevel is the depth sentinel for partners whose recommender cannot
// be resolved (depth undefined).
const OrphanLevel = -1

// Forest is the result of a full-network build: the partner trees rooted
// directly under the network, plus the orphan bucket. MaxLevel is the
// highest level observed in the trees (-1 when the forest is empty).
type Forest struct {
	Roots    []*models.PartnerNode
	Orphans  []*models.PartnerNode
	MaxLevel int
}

// MaxDepth reports the tree depth by convention: highest level + 1, so a
// lone root yields 1 and an empty forest yields 0.
func (f *Forest) MaxDepth() int {
	return f.MaxLevel + 1
}

// TreeBuilder reconstructs partner trees from a flat snapshot. It only
// reads from the GraphIndex; all produced nodes are freshly allocated.
type TreeBuilder struct {
	index   *GraphIndex
	network models.Network
}

func NewTreeBuilder(index *GraphIndex, network models.Network) *TreeBuilder {
	return &TreeBuilder{index: index, network: network}
}

// BuildForest partitions the snapshot into roots, properly-linked
// descendants and orphans, then expands every root depth-first. maxLevel
// bounds expansion when > 0: nodes deeper than maxLevel are not attached
// (the node at the bound keeps its place, its subtree is not expanded).
// Partners that are neither roots nor orphans but remain unreachable from
// any root (residual corruption, e.g. a cycle detached from all roots) are
// reported in the orphan bucket rather than silently dropped.
func (tb *TreeBuilder) BuildForest(maxLevel int) (*Forest, error) {
	forest := &Forest{MaxLevel: -1}
	visited := make(map[primitive.ObjectID]bool, tb.index.Size())

	for _, id := range tb.index.IDs() {
		p, _ := tb.index.Partner(id)
		if !tb.isRoot(p) {
			continue
		}
		node, err := tb.expand(p, 0, maxLevel, visited)
		if err != nil {
			return nil, err
		}
		forest.Roots = append(forest.Roots, node)
	}

	for _, id := range tb.index.IDs() {
		if visited[id] {
			continue
		}
		p, _ := tb.index.Partner(id)
		forest.Orphans = append(forest.Orphans, tb.orphanNode(p))
	}

	forest.MaxLevel = maxObservedLevel(forest.Roots)
	return forest, nil
}

// BuildSubtree expands only the descendant subtree of the given root
// partner, with the root at level 0. Returns ErrRootNotFound when the
// identifier does not resolve within the snapshot.
func (tb *TreeBuilder) BuildSubtree(rootID primitive.ObjectID, maxLevel int) (*models.PartnerNode, error) {
	root, ok := tb.index.Partner(rootID)
	if !ok {
		return nil, ErrRootNotFound
	}
	visited := make(map[primitive.ObjectID]bool, tb.index.Size())
	return tb.expand(root, 0, maxLevel, visited)
}

// isRoot reports whether the partner hangs directly under the network
// root. Partners with a dangling recommender are not roots; the residual
// sweep in BuildForest surfaces them as orphans.
func (tb *TreeBuilder) isRoot(p *models.Partner) bool {
	return p.RecommenderID == nil || *p.RecommenderID == tb.network.ID
}

// expand builds the node for p at the given level and recurses into its
// children. The visited set defends against residual cycles: a child seen
// before is skipped instead of revisited. Recursion always walks the full
// structure so the visited set stays complete; when maxLevel bounds the
// build, deeper nodes are traversed but not attached.
func (tb *TreeBuilder) expand(p *models.Partner, level, maxLevel int, visited map[primitive.ObjectID]bool) (*models.PartnerNode, error) {
	if level > MaxChainDepth {
		return nil, ErrChainTooDeep
	}
	visited[p.ID] = true

	node := &models.PartnerNode{
		ID:              p.ID,
		NetworkID:       p.NetworkID,
		RecommenderID:   p.RecommenderID,
		RecommenderName: tb.recommenderName(p),
		FullName:        p.FullName,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		Level:           level,
	}

	for _, child := range tb.index.Children(p.ID) {
		if visited[child.ID] {
			continue
		}
		childNode, err := tb.expand(child, level+1, maxLevel, visited)
		if err != nil {
			return nil, err
		}
		if maxLevel > 0 && level+1 > maxLevel {
			continue // beyond the bound: visited, not attached
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}

func (tb *TreeBuilder) orphanNode(p *models.Partner) *models.PartnerNode {
	return &models.PartnerNode{
		ID:              p.ID,
		NetworkID:       p.NetworkID,
		RecommenderID:   p.RecommenderID,
		RecommenderName: tb.recommenderName(p),
		FullName:        p.FullName,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		Level:           OrphanLevel,
	}
}

// recommenderName resolves the display name of a partner's recommender,
// falling back to the network name when the partner hangs directly under
// the network root.
func (tb *TreeBuilder) recommenderName(p *models.Partner) string {
	if p.RecommenderID == nil || *p.RecommenderID == tb.network.ID {
		return tb.network.Name
	}
	if rec, ok := tb.index.Partner(*p.RecommenderID); ok {
		return rec.FullName
	}
	return ""
}

func maxObservedLevel(nodes []*models.PartnerNode) int {
	max := -1
	for _, n := range nodes {
		if n.Level > max {
			max = n.Level
		}
		if childMax := maxObservedLevel(n.Children); childMax > max {
			max = childMax
		}
	}
	return max
}
