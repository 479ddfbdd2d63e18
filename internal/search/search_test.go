package search

import (
	"testing"

	"github.com/filecms/filecms/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_SingleMatch(t *testing.T) {
	chapters := []Chapter{
		{Number: 1, Name: "Intro", Text: "Opening words.\n\nRuby is great, they said.\n\nClosing."},
		{Number: 2, Name: "Other", Text: "no match"},
	}

	res := Search("Ruby", chapters)
	require.Len(t, res, 1)
	require.Equal(t, "Intro", res[0].Name)
	require.Equal(t, 1, res[0].Number)
	require.Equal(t, []Paragraph{{Text: "Ruby is great, they said.", Index: 1}}, res[0].Paragraphs)

	html := Highlight(res[0].Paragraphs[0].Text, "Ruby")
	assert.Equal(t, "<strong>Ruby</strong> is great, they said.", string(html))
}

func TestSearch_EmptyTerm(t *testing.T) {
	chapters := []Chapter{{Number: 1, Name: "A", Text: "anything"}}
	before := testutil.ToFloat64(metrics.SearchQueries)
	res := Search("", chapters)
	require.NotNil(t, res)
	require.Empty(t, res)
	require.Equal(t, before, testutil.ToFloat64(metrics.SearchQueries))

	Search("any", chapters)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.SearchQueries))
}

func TestSearch_CaseSensitiveAndOrdered(t *testing.T) {
	chapters := []Chapter{
		{Number: 1, Name: "One", Text: "holmes"},
		{Number: 2, Name: "Two", Text: "Holmes\n\nWatson\n\nHolmes again"},
		{Number: 3, Name: "Three", Text: "Holmes"},
	}
	res := Search("Holmes", chapters)
	require.Len(t, res, 2)
	require.Equal(t, 2, res[0].Number)
	require.Equal(t, []Paragraph{{Text: "Holmes", Index: 0}, {Text: "Holmes again", Index: 2}}, res[0].Paragraphs)
	require.Equal(t, 3, res[1].Number)
}

func TestHighlight_LiteralAndEscaped(t *testing.T) {
	assert.Equal(t, "a <strong>.*</strong> b", string(Highlight("a .* b", ".*")))
	assert.Equal(t, "&lt;b&gt; <strong>x&amp;y</strong>", string(Highlight("<b> x&y", "x&y")))
	assert.Equal(t, "<strong>ab</strong><strong>ab</strong>", string(Highlight("abab", "ab")))
	assert.Equal(t, "plain &amp; text", string(Highlight("plain & text", "")))
}

func TestInParagraphs(t *testing.T) {
	html := InParagraphs("first\n\nsecond <i>")
	assert.Equal(t, `<p id="paragraph0">first</p><p id="paragraph1">second &lt;i&gt;</p>`, string(html))
}

func TestParagraphs_DropsTrailingBlanks(t *testing.T) {
	require.Equal(t, []string{"first", "second"}, Paragraphs("first\n\nsecond\n\n"))
	require.Equal(t, []string{"first", "", "third"}, Paragraphs("first\n\n\n\nthird"))
	require.Empty(t, Paragraphs(""))

	html := InParagraphs("only\n\n")
	assert.Equal(t, `<p id="paragraph0">only</p>`, string(html))
}
