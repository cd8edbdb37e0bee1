package htmlpatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `<article class="tweet">
    <div class="tweet-header">
        <span class="name">someone</span>
        <span class="timestamp">· 2h</span>
    </div>
    <div class="tweet-text">
        old tweet body
    </div>
</article>
`

func TestRegionFind(t *testing.T) {
	span, count, err := TweetText.Find(testDocument)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "\n        old tweet body\n    ", testDocument[span.Start:span.End])

	content, err := Timestamp.Content(testDocument)
	require.NoError(t, err)
	assert.Equal(t, "· 2h", content)
}

func TestRegionNotFound(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "no open marker", doc: `<div class="tweet">text</div>`},
		{name: "different class", doc: `<div class="tweet-text-old">text</div>`},
		{name: "single quotes", doc: `<div class='tweet-text'>text</div>`},
		{name: "no close marker", doc: `<div class="tweet-text">text`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := TweetText.Replace(tt.doc, "new")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRegionNotFound))
			assert.Equal(t, tt.doc, out)
		})
	}
}

func TestRegionReplace(t *testing.T) {
	tests := []struct {
		name    string
		region  Region
		doc     string
		content string
		want    string
	}{
		{
			name:    "keeps indentation",
			region:  TweetText,
			doc:     "<div class=\"tweet-text\">\n    old\n</div>",
			content: "new",
			want:    "<div class=\"tweet-text\">\n    new\n</div>",
		},
		{
			name:    "inline",
			region:  TweetText,
			doc:     `<div class="tweet-text">old</div>`,
			content: "new",
			want:    `<div class="tweet-text">new</div>`,
		},
		{
			name:    "empty inner",
			region:  TweetText,
			doc:     `<div class="tweet-text"></div>`,
			content: "new",
			want:    `<div class="tweet-text">new</div>`,
		},
		{
			name:    "whitespace only inner",
			region:  TweetText,
			doc:     "<div class=\"tweet-text\">\n  </div>",
			content: "new",
			want:    "<div class=\"tweet-text\">\n  new</div>",
		},
		{
			name:    "timestamp prefix",
			region:  Timestamp,
			doc:     `<span class="timestamp">· 2h</span>`,
			content: "30m",
			want:    `<span class="timestamp">· 30m</span>`,
		},
		{
			name:    "multi-line old content",
			region:  TweetText,
			doc:     "<div class=\"tweet-text\">\n  line one\n  line two\n</div><p>after</p>",
			content: "new",
			want:    "<div class=\"tweet-text\">\n  new\n</div><p>after</p>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count, err := tt.region.Replace(tt.doc, tt.content)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegionReplaceFirstOfMany(t *testing.T) {
	doc := `<div class="tweet-text">a</div><div class="tweet-text">b</div>`
	got, count, err := TweetText.Replace(doc, "c")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, `<div class="tweet-text">c</div><div class="tweet-text">b</div>`, got)
}

func TestTimestampRegionNeedsDot(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		want  string
		found bool
	}{
		{
			name: "no dot",
			doc:  `<span class="timestamp">2h</span>`,
		},
		{
			name: "label on a second line",
			doc:  "<span class=\"timestamp\">· 2h\n  ago</span>",
		},
		{
			name:  "whitespace after the dot may span lines",
			doc:   "<span class=\"timestamp\">·\n   2h</span>",
			want:  `<span class="timestamp">· 5m</span>`,
			found: true,
		},
		{
			name:  "skips a span without the dot",
			doc:   `<span class="timestamp">draft</span><span class="timestamp">·3d</span>`,
			want:  `<span class="timestamp">draft</span><span class="timestamp">· 5m</span>`,
			found: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count, err := Timestamp.Replace(tt.doc, "5m")
			if !tt.found {
				require.ErrorIs(t, err, ErrRegionNotFound)
				assert.Equal(t, 0, count)
				assert.Equal(t, tt.doc, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, count)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	now := time.Date(2025, time.July, 14, 12, 0, 0, 0, time.UTC)

	t.Run("text only leaves timestamp alone", func(t *testing.T) {
		res, err := Apply(testDocument, Update{Text: "Hello <b>world</b>"}, now)
		require.NoError(t, err)

		content, err := TweetText.Content(res.Document)
		require.NoError(t, err)
		assert.Equal(t, "\n        Hello &lt;b&gt;world&lt;/b&gt;\n    ", content)

		stamp, err := Timestamp.Content(res.Document)
		require.NoError(t, err)
		assert.Equal(t, "· 2h", stamp)
		assert.False(t, res.TimestampUpdated)
		assert.Empty(t, res.TimeLabel)
	})

	t.Run("text and timestamp", func(t *testing.T) {
		posted := now.Add(-30 * time.Minute)
		res, err := Apply(testDocument, Update{Text: "hi", PostedAt: &posted}, now)
		require.NoError(t, err)

		stamp, err := Timestamp.Content(res.Document)
		require.NoError(t, err)
		assert.Equal(t, "· 30m", stamp)
		assert.Equal(t, "30m", res.TimeLabel)
		assert.True(t, res.TimestampUpdated)
	})

	t.Run("missing timestamp region is skipped", func(t *testing.T) {
		doc := `<div class="tweet-text">old</div>`
		posted := now.Add(-2 * time.Hour)
		res, err := Apply(doc, Update{Text: "new", PostedAt: &posted}, now)
		require.NoError(t, err)
		assert.Equal(t, `<div class="tweet-text">new</div>`, res.Document)
		assert.False(t, res.TimestampUpdated)
		assert.Equal(t, 0, res.TimestampCount)
	})

	t.Run("missing tweet region fails", func(t *testing.T) {
		doc := `<span class="timestamp">· 2h</span>`
		posted := now.Add(-2 * time.Hour)
		res, err := Apply(doc, Update{Text: "new", PostedAt: &posted}, now)
		require.ErrorIs(t, err, ErrRegionNotFound)
		assert.Nil(t, res)
	})
}
