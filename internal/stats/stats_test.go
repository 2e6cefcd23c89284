package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamedex/backend/internal/stats"
)

func f(v float64) *float64 { return &v }
func i(v int64) *int64     { return &v }

func TestCriticAverage(t *testing.T) {
	tests := []struct {
		name string
		pcts []*float64
		want *float64
	}{
		{name: "no_releases", pcts: nil, want: nil},
		{name: "all_nil", pcts: []*float64{nil, nil}, want: nil},
		{name: "single_value", pcts: []*float64{f(87)}, want: f(87)},
		{name: "skips_nil_values", pcts: []*float64{f(80), nil, f(90)}, want: f(85)},
		{name: "rounds_to_one_decimal", pcts: []*float64{f(80), f(81), f(81)}, want: f(80.7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.CriticAverage(tt.pcts)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestUserAverage_IsWeightedNotAverageOfAverages(t *testing.T) {
	// (9/3=3.0) and (6/3=2.0) must average to (9+6)/(3+3)=2.5,
	// not (3.0+2.0)/2.
	got := stats.UserAverage([]*float64{f(9), f(6)}, []*int64{i(3), i(3)})
	require.NotNil(t, got)
	assert.InDelta(t, 2.5, *got, 1e-9)
}

func TestUserAverage_WeightsUnevenCounts(t *testing.T) {
	// (10/4=2.5) and (5/1=5.0): weighted = 15/5 = 3.0.
	got := stats.UserAverage([]*float64{f(10), f(5)}, []*int64{i(4), i(1)})
	require.NotNil(t, got)
	assert.InDelta(t, 3.0, *got, 1e-9)
}

func TestUserAverage_UndefinedCases(t *testing.T) {
	assert.Nil(t, stats.UserAverage(nil, nil))
	assert.Nil(t, stats.UserAverage([]*float64{nil}, []*int64{nil}))
	assert.Nil(t, stats.UserAverage([]*float64{f(0)}, []*int64{i(0)}))
}

func TestUserAverage_IgnoresNilReleases(t *testing.T) {
	got := stats.UserAverage([]*float64{f(9), nil}, []*int64{i(3), nil})
	require.NotNil(t, got)
	assert.InDelta(t, 3.0, *got, 1e-9)
}

func TestSummarize(t *testing.T) {
	critic, user := stats.Summarize([]stats.ReleaseStats{
		{CriticPct: f(80), TotalPlayerRating: f(9), NumPlayersRated: i(3)},
		{CriticPct: nil, TotalPlayerRating: f(6), NumPlayersRated: i(3)},
	})
	require.NotNil(t, critic)
	assert.InDelta(t, 80.0, *critic, 1e-9)
	require.NotNil(t, user)
	assert.InDelta(t, 2.5, *user, 1e-9)
}

func TestReleaseAverage(t *testing.T) {
	got := stats.ReleaseAverage(f(10), i(4))
	require.NotNil(t, got)
	assert.InDelta(t, 2.5, *got, 1e-9)

	assert.Nil(t, stats.ReleaseAverage(nil, nil))
	assert.Nil(t, stats.ReleaseAverage(f(3), nil))
	assert.Nil(t, stats.ReleaseAverage(f(0), i(0)))
}

func TestRound1(t *testing.T) {
	assert.InDelta(t, 2.5, stats.Round1(2.45), 1e-9)
	assert.InDelta(t, 2.4, stats.Round1(2.44), 1e-9)
	assert.InDelta(t, -2.5, stats.Round1(-2.45), 1e-9)
	assert.Nil(t, stats.Round1Ptr(nil))
}
