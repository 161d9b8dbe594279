// reports/cycle.go
package reports

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CycleGuard validates proposed recommender edges before they are written.
// It walks the recommender chain upward from the proposed parent; if the
// candidate child appears anywhere on that walk, admitting the edge would
// make the child its own ancestor.
type CycleGuard struct {
	index     *GraphIndex
	networkID primitive.ObjectID
}

func NewCycleGuard(index *GraphIndex, networkID primitive.ObjectID) *CycleGuard {
	return &CycleGuard{index: index, networkID: networkID}
}

// WouldCreateCycle reports whether setting candidateChildID's recommender
// to proposedRecommenderID would create a cycle. The walk is bounded to
// N+1 steps (N = indexed partner count); exceeding the bound means the
// existing chain is already corrupted and is reported as ErrChainTooDeep,
// never as "no cycle".
func (cg *CycleGuard) WouldCreateCycle(candidateChildID, proposedRecommenderID primitive.ObjectID) (bool, error) {
	if candidateChildID == proposedRecommenderID {
		return true, nil
	}

	maxSteps := cg.index.Size() + 1
	current := proposedRecommenderID
	for step := 0; ; step++ {
		if step >= maxSteps {
			return false, ErrChainTooDeep
		}
		if current == cg.networkID {
			return false, nil // reached the network root sentinel
		}
		node, ok := cg.index.Partner(current)
		if !ok {
			return false, nil // dangling reference terminates the chain
		}
		if node.ID == candidateChildID {
			return true, nil
		}
		if node.RecommenderID == nil {
			return false, nil
		}
		current = *node.RecommenderID
	}
}
