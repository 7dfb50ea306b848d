package pagecheck

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	jd "github.com/josephburnett/jd/lib"
)

// Baseline maps a page path to the state keys it is expected to expose.
// A null entry means the page must not define a global state object.
type Baseline map[string]json.RawMessage

func LoadBaseline(path string) (Baseline, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read baseline %s: %w", path, err)
	}

	var baseline Baseline
	if err := json.Unmarshal(file, &baseline); err != nil {
		return nil, fmt.Errorf("cannot unmarshal baseline %s: %w", path, err)
	}

	return baseline, nil
}

// Compare returns the rendered jd diff between the expected and the actual
// state keys of report. Key order is ignored.
func (b Baseline) Compare(report *Report) (string, error) {
	raw, ok := b[report.Path]
	if !ok {
		return "", nil
	}

	var expectedKeys []string
	if err := json.Unmarshal(raw, &expectedKeys); err != nil {
		return "", fmt.Errorf("%s: baseline entry must be a list of keys or null: %w", report.Path, err)
	}

	expected, err := keysJSON(expectedKeys, expectedKeys != nil)
	if err != nil {
		return "", err
	}
	actual, err := keysJSON(report.StateKeys, report.HasState)
	if err != nil {
		return "", err
	}

	first, err := jd.ReadJsonString(expected)
	if err != nil {
		return "", fmt.Errorf("%s: %w", report.Path, err)
	}
	second, err := jd.ReadJsonString(actual)
	if err != nil {
		return "", fmt.Errorf("%s: %w", report.Path, err)
	}

	return first.Diff(second).Render(), nil
}

func keysJSON(keys []string, present bool) (string, error) {
	if !present {
		return "null", nil
	}

	sorted := append([]string{}, keys...)
	sort.Strings(sorted)
	out, err := json.Marshal(sorted)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
