// reports/sorter.go
package reports

import (
	"sort"
	"strings"

	"github.com/vectornet/vectornet_backend/models"
)

// SortKey is the closed set of fields a partner tree can be ordered by.
// Free-form sort strings are normalized at the boundary via ParseSortKey;
// nothing below the parser ever dispatches on a string.
type SortKey int

const (
	SortByName SortKey = iota
	SortByLevel
	SortByReceived
	SortByPending
)

type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// ParseSortKey maps a request parameter onto a SortKey. The empty string
// defaults to name ordering; anything else unrecognized is rejected.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return SortByName, nil
	case "level":
		return SortByLevel, nil
	case "received":
		return SortByReceived, nil
	case "pending":
		return SortByPending, nil
	default:
		return SortByName, ErrInvalidSortKey
	}
}

func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	default:
		return SortAscending, ErrInvalidSortDirection
	}
}

// TreeSorter recursively orders the children of every node by one
// field/direction. Sorting is stable: ties keep insertion order, so
// repeated sorts of identical input are deterministic. This is the only
// component that mutates child ordering.
type TreeSorter struct {
	key SortKey
	dir SortDirection
}

func NewTreeSorter(key SortKey, dir SortDirection) *TreeSorter {
	return &TreeSorter{key: key, dir: dir}
}

// Sort orders the given sibling list and every descendant sibling list
// with the same key and direction.
func (ts *TreeSorter) Sort(nodes []*models.PartnerNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return ts.less(nodes[i], nodes[j])
	})
	for _, n := range nodes {
		ts.Sort(n.Children)
	}
}

func (ts *TreeSorter) less(a, b *models.PartnerNode) bool {
	cmp := ts.compare(a, b)
	if ts.dir == SortDescending {
		return cmp > 0
	}
	return cmp < 0
}

func (ts *TreeSorter) compare(a, b *models.PartnerNode) int {
	switch ts.key {
	case SortByLevel:
		switch {
		case a.Level < b.Level:
			return -1
		case a.Level > b.Level:
			return 1
		}
		return 0
	case SortByReceived:
		return a.Finance.Received.Cmp(b.Finance.Received)
	case SortByPending:
		return a.Finance.Pending.Cmp(b.Finance.Pending)
	default:
		return strings.Compare(a.FullName, b.FullName)
	}
}
