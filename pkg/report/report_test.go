package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/scenario"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []*scenario.Result {
	return []*scenario.Result{
		{
			Scenario: "basic",
			Source:   "builtin:basic.yaml",
			Variants: []scenario.VariantResult{
				{Name: "global-args", Global: true, Args: true, Duration: time.Millisecond,
					Steps: []scenario.StepResult{{Index: 1, Op: "add", Label: "add handler"}, {Index: 2, Op: "fire", Label: "fire"}}},
			},
		},
		{
			Scenario: "blocks",
			Variants: []scenario.VariantResult{
				{Name: "args", Duration: 2 * time.Millisecond,
					Steps: []scenario.StepResult{
						{Index: 1, Op: "add", Label: "add h1"},
						{Index: 2, Op: "fire", Label: "blocking h1 omits it", Failures: []string{"h1 ran; should not have"}},
					}},
				{Name: "noargs", Duration: time.Millisecond,
					Steps: []scenario.StepResult{{Index: 1, Op: "add", Label: "add h1"}}},
			},
		},
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatAuto, "auto"},
		{FormatTerminal, "term"},
		{FormatText, "text"},
		{FormatJSON, "json"},
		{FormatJUnit, "junit"},
		{Format(999), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"TERM", FormatTerminal, false},
		{"terminal", FormatTerminal, false},
		{"plain", FormatText, false},
		{"json", FormatJSON, false},
		{"junit", FormatJUnit, false},
		{"xml", FormatJUnit, false},
		{"yaml", FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolve(t *testing.T) {
	// A regular file is never a terminal
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, FormatText, Resolve(FormatAuto, f, false))
	assert.Equal(t, FormatText, Resolve(FormatAuto, nil, false))
	assert.Equal(t, FormatJSON, Resolve(FormatJSON, f, true))
	assert.Equal(t, FormatTerminal, Resolve(FormatTerminal, f, false))
	assert.Equal(t, FormatText, Resolve(FormatTerminal, f, true))
}

func TestDetectFormat_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, FormatText, DetectFormat(os.Stdout))
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResults(), Options{Format: FormatText}))

	expected := "PASS basic (1 variant(s))\n" +
		"FAIL blocks (2 variant(s))\n" +
		"  args failed\n" +
		"    step 2 (blocking h1 omits it)\n" +
		"      h1 ran; should not have\n" +
		"  noargs ok\n" +
		"FAIL: 2 scenario(s), 1 failed; 3 variant(s), 1 failed; 5 step(s), 1 failed\n"
	assert.Equal(t, expected, buf.String())
}

func TestRender_TextWraps(t *testing.T) {
	results := []*scenario.Result{{
		Scenario: "long",
		Variants: []scenario.VariantResult{{Name: "v", Steps: []scenario.StepResult{{
			Index: 1, Op: "fire", Label: "fire",
			Failures: []string{"incorrect sender seen by a handler with a rather long name"},
		}}}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, results, Options{Format: FormatText, Width: 40}))
	assert.Contains(t, buf.String(), "      incorrect sender seen by a handler\n      with a rather long name\n")
}

func TestWrap(t *testing.T) {
	long := "incorrect sender seen by a handler with a rather long name"

	assert.Equal(t, long, wrap(long, 19), "narrow widths leave the line alone")
	assert.Equal(t, "incorrect sender seen by a\nhandler with a rather long name", wrap(long, 31))
	assert.Equal(t, "short", wrap("short", 40))
}

func TestRender_Term(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResults(), Options{Format: FormatTerminal}))

	out := buf.String()
	assert.Contains(t, out, "basic")
	assert.Contains(t, out, "blocking h1 omits it")
	assert.Contains(t, out, "h1 ran; should not have")
	assert.Contains(t, out, "1 scenario(s) failed")
	assert.Contains(t, out, "Scenarios")
	assert.Contains(t, out, "Variants")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResults(), Options{Format: FormatJSON}))

	var decoded struct {
		Summary scenario.Summary `json:"summary"`
		Results []struct {
			Scenario string `json:"scenario"`
			Variants []struct {
				Name  string `json:"name"`
				Steps []struct {
					Failures []string `json:"failures"`
				} `json:"steps"`
			} `json:"variants"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Summary.FailedScenarios)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "blocks", decoded.Results[1].Scenario)
	assert.Equal(t, []string{"h1 ran; should not have"}, decoded.Results[1].Variants[0].Steps[1].Failures)
}

func TestRender_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, Options{Format: FormatJSON}))
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestRender_JUnit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResults(), Options{Format: FormatJUnit}))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("testsuites")
	require.NotNil(t, root)
	assert.Equal(t, "uievent", root.SelectAttrValue("name", ""))
	assert.Equal(t, "3", root.SelectAttrValue("tests", ""))
	assert.Equal(t, "1", root.SelectAttrValue("failures", ""))

	suites := root.SelectElements("testsuite")
	require.Len(t, suites, 2)
	assert.Equal(t, "builtin:basic.yaml", suites[0].SelectAttrValue("file", ""))
	assert.Equal(t, "0.003000", suites[1].SelectAttrValue("time", ""))

	cases := suites[1].SelectElements("testcase")
	require.Len(t, cases, 2)
	failure := cases[0].SelectElement("failure")
	require.NotNil(t, failure)
	assert.Equal(t, "step 2 (blocking h1 omits it)", failure.SelectAttrValue("message", ""))
	assert.Equal(t, "h1 ran; should not have", failure.Text())
	assert.Nil(t, cases[1].SelectElement("failure"))
}

func TestRender_UnresolvedFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, nil, Options{Format: FormatAuto})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestParseStyles(t *testing.T) {
	styles, err := ParseStyles([]byte(`
colors:
  red: {light: "#ff0000", dark: "#ff5555"}
styles:
  Alert: {bold: true, foreground: red}
`))
	require.NoError(t, err)
	assert.True(t, styles.Get("Alert").GetBold())
	assert.False(t, styles.Get("Missing").GetBold())

	_, err = ParseStyles([]byte("colors: ["))
	assert.Error(t, err)

	assert.Contains(t, DefaultStyles(), "Fail")
}
