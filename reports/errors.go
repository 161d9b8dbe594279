// reports/errors.go
package reports

import "errors"

var (
	// ErrNetworkNotFound is returned when a report is requested for a
	// network that is not present in the supplied data.
	ErrNetworkNotFound = errors.New("network not found")

	// ErrRootNotFound is returned by subtree builds when the requested
	// root partner does not exist in the given network.
	ErrRootNotFound = errors.New("root partner not found")

	// ErrChainTooDeep signals a structurally inconsistent recommender
	// chain: a walk exceeded the partner count (or the hard recursion
	// cap) without reaching a root.
	ErrChainTooDeep = errors.New("recommender chain exceeds partner count")

	// ErrRecommenderCycle rejects a proposed recommender assignment that
	// would make a partner its own transitive ancestor.
	ErrRecommenderCycle = errors.New("recommender assignment would create a cycle")

	ErrInvalidSortKey       = errors.New("invalid sort key")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
)
