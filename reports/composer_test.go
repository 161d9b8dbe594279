package reports

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectornet/vectornet_backend/models"
)

func composerFixture() *ReportComposer {
	partners := []models.Partner{
		testPartner(0x0A, nil, "Alice", true),
		testPartner(0x0B, oidPtr(0x0A), "Bob", true),
		testPartner(0x0C, oidPtr(0x0A), "Carol", false),
		testPartner(0x0D, oidPtr(0x0C), "Dave", true),
	}
	payments := []models.Payment{
		testPayment(oidPtr(0x0B), 0x30, models.PaymentCategoryRecommender, 10, models.PaymentStatusPaid),
		testPayment(oidPtr(0x0D), 0x30, models.PaymentCategoryParticipant, 90, models.PaymentStatusPending),
		testPayment(nil, 0x30, models.PaymentCategoryNetwork, 5, models.PaymentStatusPaid),
	}
	return NewReportComposer(testNetwork(), partners, payments)
}

func TestTreeReport(t *testing.T) {
	report, err := composerFixture().TreeReport(TreeReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, oid(0xFF), report.NetworkID)
	assert.Equal(t, "Vector One", report.NetworkName)
	assert.Empty(t, report.Orphans)
	assert.Equal(t, 3, report.MaxDepth)

	require.Len(t, report.Tree, 1)
	root := report.Tree[0]
	require.Len(t, root.Children, 2)
	// name-ascending by default
	assert.Equal(t, "Bob", root.Children[0].FullName)
	assert.Equal(t, "Carol", root.Children[1].FullName)

	assert.Equal(t, "10", root.Children[0].Finance.Received.String())
	assert.True(t, root.Finance.Received.IsZero())

	assert.Equal(t, "15", report.Totals.Received.String())
	assert.Equal(t, "90", report.Totals.Pending.String())
}

func TestTreeReportLevelSummariesCountInactive(t *testing.T) {
	report, err := composerFixture().TreeReport(TreeReportOptions{ActiveOnly: true})
	require.NoError(t, err)

	// Carol and her subtree are filtered from the tree
	require.Len(t, report.Tree, 1)
	require.Len(t, report.Tree[0].Children, 1)
	assert.Equal(t, "Bob", report.Tree[0].Children[0].FullName)

	// but level summaries still account for everyone
	require.Len(t, report.Levels, 3)
	assert.Equal(t, 1, report.Levels[0].ActiveCount)
	assert.Equal(t, 1, report.Levels[1].ActiveCount)
	assert.Equal(t, 1, report.Levels[1].InactiveCount)
	assert.Equal(t, 1, report.Levels[2].ActiveCount)
	assert.Equal(t, "90", report.Levels[2].Pending.String())
}

func TestTreeReportEmptyNetwork(t *testing.T) {
	composer := NewReportComposer(testNetwork(), nil, nil)
	report, err := composer.TreeReport(TreeReportOptions{})
	require.NoError(t, err)

	assert.Empty(t, report.Tree)
	assert.Empty(t, report.Orphans)
	assert.Empty(t, report.Levels)
	assert.Equal(t, 0, report.MaxDepth)
	assert.True(t, report.Totals.Received.IsZero())
	assert.True(t, report.Totals.Pending.IsZero())
}

// Composing the same snapshot twice must produce byte-identical output.
func TestTreeReportIsDeterministic(t *testing.T) {
	opts := TreeReportOptions{SortBy: SortByReceived, Direction: SortDescending}

	first, err := composerFixture().TreeReport(opts)
	require.NoError(t, err)
	second, err := composerFixture().TreeReport(opts)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSubtreeReport(t *testing.T) {
	root, err := composerFixture().SubtreeReport(oid(0x0C), TreeReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, oid(0x0C), root.ID)
	assert.Equal(t, 0, root.Level)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "Dave", root.Children[0].FullName)
	assert.Equal(t, "90", root.Children[0].Finance.Pending.String())
}

func TestSubtreeReportUnknownRoot(t *testing.T) {
	_, err := composerFixture().SubtreeReport(oid(0x66), TreeReportOptions{})
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestFinancialReport(t *testing.T) {
	report, err := composerFixture().FinancialReport()
	require.NoError(t, err)

	require.Len(t, report.Levels, 4)
	assert.Equal(t, "network", report.Levels[0].Label)
	assert.Equal(t, "5", report.Levels[0].Received.String())
	assert.Equal(t, "10", report.Levels[1].Received.String())
	assert.Equal(t, "2", report.Levels[2].Label)
	assert.True(t, report.Levels[2].Received.IsZero())
	assert.Equal(t, "3+", report.Levels[3].Label)
	assert.Equal(t, "90", report.Levels[3].Pending.String())

	assert.Equal(t, "15", report.Totals.Received.String())
}

func TestBusinessReport(t *testing.T) {
	report, err := composerFixture().BusinessReport(0)
	require.NoError(t, err)

	require.Len(t, report.Rows, 4)
	// highest received first
	assert.Equal(t, "Bob", report.Rows[0].FullName)
	assert.Equal(t, 1, report.Rows[0].Level)
	// zero-received rows keep snapshot order
	assert.Equal(t, "Alice", report.Rows[1].FullName)
	assert.Equal(t, "Carol", report.Rows[2].FullName)
	assert.Equal(t, "Dave", report.Rows[3].FullName)
	assert.Equal(t, 2, report.Rows[3].Level)
}

func TestBusinessReportTopN(t *testing.T) {
	report, err := composerFixture().BusinessReport(2)
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "Bob", report.Rows[0].FullName)
}
