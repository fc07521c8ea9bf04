package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportStore struct {
	books   []BookIssueStat
	monthly []MonthlyStat
	members []MemberActivityStat
}

func (f *fakeReportStore) MostIssuedBooks(context.Context) ([]BookIssueStat, error) {
	return f.books, nil
}

func (f *fakeReportStore) MonthlyIssueCounts(context.Context) ([]MonthlyStat, error) {
	return f.monthly, nil
}

func (f *fakeReportStore) MemberActivity(context.Context) ([]MemberActivityStat, error) {
	return f.members, nil
}

func TestMostIssuedBooksEmptyStore(t *testing.T) {
	svc := &Service{store: &fakeReportStore{}}

	res, err := svc.MostIssuedBooks(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestMostIssuedBooksLimit(t *testing.T) {
	store := &fakeReportStore{books: []BookIssueStat{
		{Title: "Dune", BookID: "B1", IssueCount: 9},
		{Title: "Hyperion", BookID: "B2", IssueCount: 4},
		{Title: "Solaris", BookID: "B3", IssueCount: 1},
	}}
	svc := &Service{store: store}

	res, err := svc.MostIssuedBooks(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Dune", res[0].Title)
	assert.Equal(t, "Hyperion", res[1].Title)

	// zero limit returns the full ranking
	res, err = svc.MostIssuedBooks(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestMonthlyIssueCountsChronologicalOrder(t *testing.T) {
	// the store yields newest first; the service reverses
	store := &fakeReportStore{monthly: []MonthlyStat{
		{Month: "2024-06", Issues: 3},
		{Month: "2024-05", Issues: 7},
		{Month: "2024-03", Issues: 2},
	}}
	svc := &Service{store: store}

	res, err := svc.MonthlyIssueCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "2024-03", res[0].Month)
	assert.Equal(t, "2024-05", res[1].Month)
	assert.Equal(t, "2024-06", res[2].Month)
}

func TestMonthlyIssueCountsEmptyStore(t *testing.T) {
	svc := &Service{store: &fakeReportStore{}}

	res, err := svc.MonthlyIssueCounts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestMemberActivityEmptyStore(t *testing.T) {
	svc := &Service{store: &fakeReportStore{}}

	res, err := svc.MemberActivity(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestMemberActivityPassesThrough(t *testing.T) {
	store := &fakeReportStore{members: []MemberActivityStat{
		{MemberName: "Asha Rao", MemberID: 201, BooksBorrowed: 5},
		{MemberName: "Ben Okafor", MemberID: 202, BooksBorrowed: 2},
	}}
	svc := &Service{store: store}

	res, err := svc.MemberActivity(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, int64(201), res[0].MemberID)
}
