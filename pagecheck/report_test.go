package pagecheck_test

import (
	"bytes"
	"testing"

	"github.com/Tito2912/prosperfactory.com/pagecheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report pagecheck.Report
		want   string
	}{
		{
			name: "no state object and no logs",
			report: pagecheck.Report{
				Path: "es/index.html",
			},
			want: "es/index.html\n logs: []\n state keys: null\n",
		},
		{
			name: "logs and state keys",
			report: pagecheck.Report{
				Path:      "fr/index.html",
				Logs:      []string{"console[warning] careful", "pageerror Error: boom"},
				StateKeys: []string{"locale", "user"},
				HasState:  true,
			},
			want: "fr/index.html\n" +
				" logs: [\"console[warning] careful\", \"pageerror Error: boom\"]\n" +
				" state keys: [\"locale\", \"user\"]\n",
		},
		{
			name: "baseline diff is indented",
			report: pagecheck.Report{
				Path:         "index.html",
				StateKeys:    []string{},
				HasState:     true,
				BaselineDiff: "@ [0]\n- \"locale\"\n",
			},
			want: "index.html\n logs: []\n state keys: []\n" +
				" baseline diff:\n   @ [0]\n   - \"locale\"\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, pagecheck.WriteReport(&buf, &tt.report))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestReport_Clean(t *testing.T) {
	t.Parallel()

	assert.True(t, (&pagecheck.Report{}).Clean())
	assert.False(t, (&pagecheck.Report{Logs: []string{"pageerror x"}}).Clean())
	assert.False(t, (&pagecheck.Report{BaselineDiff: "@ []\n"}).Clean())
}
