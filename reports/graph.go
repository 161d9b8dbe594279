// reports/graph.go
package reports

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vectornet/vectornet_backend/models"
)

// GraphIndex holds O(1) lookup structures over a flat partner snapshot:
// identifier -> partner and recommender identifier -> children. Partners
// are kept as identifier-keyed entries; parent/child structure is always
// resolved through these maps, never through embedded pointers.
type GraphIndex struct {
	byID          map[primitive.ObjectID]*models.Partner
	byRecommender map[primitive.ObjectID][]*models.Partner
	order         []primitive.ObjectID
}

// NewGraphIndex builds the index over a partner snapshot. The snapshot is
// not mutated; children lists preserve snapshot order so repeated builds
// are deterministic. An empty snapshot yields empty indexes.
func NewGraphIndex(partners []models.Partner) *GraphIndex {
	g := &GraphIndex{
		byID:          make(map[primitive.ObjectID]*models.Partner, len(partners)),
		byRecommender: make(map[primitive.ObjectID][]*models.Partner),
		order:         make([]primitive.ObjectID, 0, len(partners)),
	}
	for i := range partners {
		p := &partners[i]
		g.byID[p.ID] = p
		g.order = append(g.order, p.ID)
		if p.RecommenderID != nil {
			g.byRecommender[*p.RecommenderID] = append(g.byRecommender[*p.RecommenderID], p)
		}
	}
	return g
}

// Partner returns the partner with the given identifier.
func (g *GraphIndex) Partner(id primitive.ObjectID) (*models.Partner, bool) {
	p, ok := g.byID[id]
	return p, ok
}

// Children returns the partners whose recommender is the given identifier,
// in snapshot order.
func (g *GraphIndex) Children(id primitive.ObjectID) []*models.Partner {
	return g.byRecommender[id]
}

// Size returns the number of indexed partners.
func (g *GraphIndex) Size() int {
	return len(g.byID)
}

// IDs returns all partner identifiers in snapshot order.
func (g *GraphIndex) IDs() []primitive.ObjectID {
	return g.order
}
