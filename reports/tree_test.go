package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vectornet/vectornet_backend/models"
)

// oid builds a deterministic ObjectID for tests.
func oid(b byte) primitive.ObjectID {
	return primitive.ObjectID{b}
}

func oidPtr(b byte) *primitive.ObjectID {
	id := oid(b)
	return &id
}

func testNetwork() models.Network {
	return models.Network{ID: oid(0xFF), Name: "Vector One"}
}

func testPartner(id byte, recommender *primitive.ObjectID, name string, active bool) models.Partner {
	return models.Partner{
		ID:            oid(id),
		NetworkID:     oid(0xFF),
		RecommenderID: recommender,
		FullName:      name,
		IsActive:      active,
	}
}

// chainSnapshot is the reference scenario: A is a root, B is recommended
// by A, C by B, and D declares a recommender that matches no known
// partner.
func chainSnapshot() []models.Partner {
	return []models.Partner{
		testPartner(0x0A, nil, "Alice", true),
		testPartner(0x0B, oidPtr(0x0A), "Bob", true),
		testPartner(0x0C, oidPtr(0x0B), "Carol", true),
		testPartner(0x0D, oidPtr(0xEE), "Dave", true),
	}
}

func TestBuildForestChain(t *testing.T) {
	builder := NewTreeBuilder(NewGraphIndex(chainSnapshot()), testNetwork())

	forest, err := builder.BuildForest(0)
	require.NoError(t, err)

	require.Len(t, forest.Roots, 1)
	root := forest.Roots[0]
	assert.Equal(t, oid(0x0A), root.ID)
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, "Vector One", root.RecommenderName)

	require.Len(t, root.Children, 1)
	b := root.Children[0]
	assert.Equal(t, oid(0x0B), b.ID)
	assert.Equal(t, 1, b.Level)
	assert.Equal(t, "Alice", b.RecommenderName)

	require.Len(t, b.Children, 1)
	c := b.Children[0]
	assert.Equal(t, oid(0x0C), c.ID)
	assert.Equal(t, 2, c.Level)
	assert.Empty(t, c.Children)

	require.Len(t, forest.Orphans, 1)
	assert.Equal(t, oid(0x0D), forest.Orphans[0].ID)
	assert.Equal(t, OrphanLevel, forest.Orphans[0].Level)

	assert.Equal(t, 3, forest.MaxDepth())
}

func TestBuildForestLevelInvariant(t *testing.T) {
	builder := NewTreeBuilder(NewGraphIndex(chainSnapshot()), testNetwork())
	forest, err := builder.BuildForest(0)
	require.NoError(t, err)

	var check func(nodes []*models.PartnerNode, parentLevel int)
	check = func(nodes []*models.PartnerNode, parentLevel int) {
		for _, n := range nodes {
			assert.Equal(t, parentLevel+1, n.Level)
			check(n.Children, n.Level)
		}
	}
	for _, root := range forest.Roots {
		assert.Equal(t, 0, root.Level)
		check(root.Children, 0)
	}
}

func TestBuildForestPartitionIsExact(t *testing.T) {
	partners := chainSnapshot()
	builder := NewTreeBuilder(NewGraphIndex(partners), testNetwork())
	forest, err := builder.BuildForest(0)
	require.NoError(t, err)

	seen := make(map[primitive.ObjectID]int)
	var count func(nodes []*models.PartnerNode)
	count = func(nodes []*models.PartnerNode) {
		for _, n := range nodes {
			seen[n.ID]++
			count(n.Children)
		}
	}
	count(forest.Roots)
	count(forest.Orphans)

	require.Len(t, seen, len(partners))
	for _, p := range partners {
		assert.Equal(t, 1, seen[p.ID], "partner %s must appear exactly once", p.FullName)
	}
}

func TestBuildForestNetworkSentinelRoot(t *testing.T) {
	// a recommender equal to the network ID means "directly under the root"
	partners := []models.Partner{
		testPartner(0x0A, oidPtr(0xFF), "Alice", true),
	}
	builder := NewTreeBuilder(NewGraphIndex(partners), testNetwork())
	forest, err := builder.BuildForest(0)
	require.NoError(t, err)
	require.Len(t, forest.Roots, 1)
	assert.Empty(t, forest.Orphans)
	assert.Equal(t, "Vector One", forest.Roots[0].RecommenderName)
}

func TestBuildForestEmpty(t *testing.T) {
	builder := NewTreeBuilder(NewGraphIndex(nil), testNetwork())
	forest, err := builder.BuildForest(0)
	require.NoError(t, err)
	assert.Empty(t, forest.Roots)
	assert.Empty(t, forest.Orphans)
	assert.Equal(t, 0, forest.MaxDepth())
}

func TestBuildForestMaxLevelTruncates(t *testing.T) {
	builder := NewTreeBuilder(NewGraphIndex(chainSnapshot()), testNetwork())
	forest, err := builder.BuildForest(1)
	require.NoError(t, err)

	require.Len(t, forest.Roots, 1)
	require.Len(t, forest.Roots[0].Children, 1)
	// C sits beyond the bound: not attached, but not reported as orphan either
	assert.Empty(t, forest.Roots[0].Children[0].Children)
	require.Len(t, forest.Orphans, 1)
	assert.Equal(t, oid(0x0D), forest.Orphans[0].ID)
}

func TestBuildForestDetachedCycleBecomesOrphans(t *testing.T) {
	partners := []models.Partner{
		testPartner(0x0A, nil, "Alice", true),
		testPartner(0x01, oidPtr(0x02), "Xavier", true),
		testPartner(0x02, oidPtr(0x01), "Yvonne", true),
	}
	builder := NewTreeBuilder(NewGraphIndex(partners), testNetwork())
	forest, err := builder.BuildForest(0)
	require.NoError(t, err)

	require.Len(t, forest.Roots, 1)
	require.Len(t, forest.Orphans, 2)
	for _, o := range forest.Orphans {
		assert.Equal(t, OrphanLevel, o.Level)
	}
}

func TestBuildSubtree(t *testing.T) {
	builder := NewTreeBuilder(NewGraphIndex(chainSnapshot()), testNetwork())

	root, err := builder.BuildSubtree(oid(0x0B), 0)
	require.NoError(t, err)
	assert.Equal(t, oid(0x0B), root.ID)
	assert.Equal(t, 0, root.Level)
	require.Len(t, root.Children, 1)
	assert.Equal(t, oid(0x0C), root.Children[0].ID)
	assert.Equal(t, 1, root.Children[0].Level)
}

func TestBuildSubtreeRootNotFound(t *testing.T) {
	builder := NewTreeBuilder(NewGraphIndex(chainSnapshot()), testNetwork())
	_, err := builder.BuildSubtree(oid(0x77), 0)
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestGraphIndexLookups(t *testing.T) {
	index := NewGraphIndex(chainSnapshot())

	assert.Equal(t, 4, index.Size())

	p, ok := index.Partner(oid(0x0B))
	require.True(t, ok)
	assert.Equal(t, "Bob", p.FullName)

	children := index.Children(oid(0x0A))
	require.Len(t, children, 1)
	assert.Equal(t, "Bob", children[0].FullName)

	assert.Empty(t, index.Children(oid(0x0C)))

	empty := NewGraphIndex(nil)
	assert.Equal(t, 0, empty.Size())
	_, ok = empty.Partner(oid(0x0A))
	assert.False(t, ok)
}
