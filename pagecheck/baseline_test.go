package pagecheck_test

import (
	"testing"

	"github.com/Tito2912/prosperfactory.com/pagecheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseline_Compare(t *testing.T) {
	t.Parallel()

	baseline, err := pagecheck.LoadBaseline("../.testdata/state_baseline.json")
	require.NoError(t, err)

	tests := []struct {
		name         string
		report       pagecheck.Report
		wantDiff     bool
		wantContains []string
	}{
		{
			name: "matching keys in a different order",
			report: pagecheck.Report{
				Path:      "index.html",
				StateKeys: []string{"user", "locale", "offers"},
				HasState:  true,
			},
			wantDiff: false,
		},
		{
			name: "missing key",
			report: pagecheck.Report{
				Path:      "index.html",
				StateKeys: []string{"locale", "user"},
				HasState:  true,
			},
			wantDiff:     true,
			wantContains: []string{`"offers"`},
		},
		{
			name: "state object expected absent",
			report: pagecheck.Report{
				Path: "fr/index.html",
			},
			wantDiff: false,
		},
		{
			name: "state object appeared unexpectedly",
			report: pagecheck.Report{
				Path:      "fr/index.html",
				StateKeys: []string{"locale"},
				HasState:  true,
			},
			wantDiff:     true,
			wantContains: []string{"null", `"locale"`},
		},
		{
			name: "page not covered by the baseline",
			report: pagecheck.Report{
				Path:      "de/index.html",
				StateKeys: []string{"anything"},
				HasState:  true,
			},
			wantDiff: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diff, err := baseline.Compare(&tt.report)
			require.NoError(t, err)
			if !tt.wantDiff {
				assert.Empty(t, diff)

				return
			}
			assert.NotEmpty(t, diff)
			for _, want := range tt.wantContains {
				assert.Contains(t, diff, want)
			}
		})
	}
}

func TestBaseline_CompareRejectsMalformedEntry(t *testing.T) {
	t.Parallel()

	baseline := pagecheck.Baseline{"index.html": []byte(`{"locale": true}`)}
	_, err := baseline.Compare(&pagecheck.Report{Path: "index.html"})
	assert.Error(t, err)
}

func TestLoadBaseline_Errors(t *testing.T) {
	t.Parallel()

	_, err := pagecheck.LoadBaseline("../.testdata/nope.json")
	assert.Error(t, err)

	_, err = pagecheck.LoadBaseline("../.testdata/site/index.html")
	assert.Error(t, err)
}
