package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectornet/vectornet_backend/models"
)

func namedNode(name string, received int64) *models.PartnerNode {
	return &models.PartnerNode{
		FullName: name,
		Finance:  models.FinancialSummary{Received: decimal.NewFromInt(received)},
	}
}

func siblingNames(nodes []*models.PartnerNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.FullName
	}
	return out
}

func TestSortByNameRecursesIntoChildren(t *testing.T) {
	root := namedNode("root", 0)
	root.Children = []*models.PartnerNode{
		namedNode("carol", 0),
		namedNode("alice", 0),
		namedNode("bob", 0),
	}
	root.Children[1].Children = []*models.PartnerNode{
		namedNode("zoe", 0),
		namedNode("mia", 0),
	}
	tree := []*models.PartnerNode{root}

	NewTreeSorter(SortByName, SortAscending).Sort(tree)

	assert.Equal(t, []string{"alice", "bob", "carol"}, siblingNames(root.Children))
	assert.Equal(t, []string{"mia", "zoe"}, siblingNames(root.Children[0].Children))
}

func TestSortDescendingReversesAscending(t *testing.T) {
	nodes := []*models.PartnerNode{
		namedNode("alice", 5),
		namedNode("bob", 20),
		namedNode("carol", 10),
	}

	NewTreeSorter(SortByReceived, SortAscending).Sort(nodes)
	assert.Equal(t, []string{"alice", "carol", "bob"}, siblingNames(nodes))

	NewTreeSorter(SortByReceived, SortDescending).Sort(nodes)
	assert.Equal(t, []string{"bob", "carol", "alice"}, siblingNames(nodes))
}

func TestSortIsStableOnTies(t *testing.T) {
	nodes := []*models.PartnerNode{
		namedNode("first", 7),
		namedNode("second", 7),
		namedNode("third", 7),
	}

	NewTreeSorter(SortByReceived, SortDescending).Sort(nodes)
	assert.Equal(t, []string{"first", "second", "third"}, siblingNames(nodes))

	NewTreeSorter(SortByReceived, SortAscending).Sort(nodes)
	assert.Equal(t, []string{"first", "second", "third"}, siblingNames(nodes))
}

func TestSortByLevel(t *testing.T) {
	nodes := []*models.PartnerNode{
		{FullName: "deep", Level: 3},
		{FullName: "shallow", Level: 1},
		{FullName: "mid", Level: 2},
	}
	NewTreeSorter(SortByLevel, SortAscending).Sort(nodes)
	assert.Equal(t, []string{"shallow", "mid", "deep"}, siblingNames(nodes))
}

func TestSortByPending(t *testing.T) {
	a := namedNode("a", 0)
	a.Finance.Pending = decimal.NewFromInt(9)
	b := namedNode("b", 0)
	b.Finance.Pending = decimal.NewFromInt(3)
	nodes := []*models.PartnerNode{a, b}

	NewTreeSorter(SortByPending, SortAscending).Sort(nodes)
	assert.Equal(t, []string{"b", "a"}, siblingNames(nodes))
}

func TestParseSortKey(t *testing.T) {
	for input, want := range map[string]SortKey{
		"":          SortByName,
		"name":      SortByName,
		"Level":     SortByLevel,
		" received": SortByReceived,
		"PENDING":   SortByPending,
	} {
		key, err := ParseSortKey(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, key, "input %q", input)
	}

	_, err := ParseSortKey("amount")
	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestParseSortDirection(t *testing.T) {
	for input, want := range map[string]SortDirection{
		"":           SortAscending,
		"asc":        SortAscending,
		"Ascending":  SortAscending,
		"desc":       SortDescending,
		"DESCENDING": SortDescending,
	} {
		dir, err := ParseSortDirection(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, dir, "input %q", input)
	}

	_, err := ParseSortDirection("down")
	assert.ErrorIs(t, err, ErrInvalidSortDirection)
}
