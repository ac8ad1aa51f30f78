package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/product-extractor/pkg/document"
	"github.com/donaldgifford/product-extractor/pkg/extract"
)

func TestParseFragment(t *testing.T) {
	t.Parallel()

	t.Run("object", func(t *testing.T) {
		t.Parallel()

		f := extract.ParseFragment(`{"@type":"Product","name":"Widget"}`)
		require.True(t, f.OK())
		obj, ok := f.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Widget", obj["name"])
	})

	t.Run("graph is unwrapped", func(t *testing.T) {
		t.Parallel()

		f := extract.ParseFragment(`{"@context":"https://schema.org","@graph":[{"@type":"WebPage"},{"@type":"Product"}]}`)
		require.True(t, f.OK())
		nodes, ok := f.Data.([]any)
		require.True(t, ok)
		assert.Len(t, nodes, 2)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		f := extract.ParseFragment(`{"@type": "Product",`)
		assert.False(t, f.OK())
		assert.ErrorContains(t, f.Err, "parsing JSON-LD")
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		f := extract.ParseFragment("  \n ")
		assert.False(t, f.OK())
	})

	t.Run("null", func(t *testing.T) {
		t.Parallel()

		f := extract.ParseFragment("null")
		assert.True(t, f.OK())
		assert.Nil(t, f.Data)
	})
}

func TestParseFragments_Independent(t *testing.T) {
	t.Parallel()

	doc, err := document.ParseString(`<html><head>
<script type="application/ld+json">{ not json </script>
<script type="application/ld+json">{"@type":"Product"}</script>
</head></html>`, "https://shop.example/p")
	require.NoError(t, err)

	frags := extract.ParseFragments(doc)
	require.Len(t, frags, 2)
	assert.False(t, frags[0].OK())
	assert.True(t, frags[1].OK())
}

func TestFindField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		field  string
		want   any
		wantOK bool
	}{
		{
			name:   "nested offers",
			raw:    `{"@type":"Product","offers":{"@type":"Offer","price":"19.99","priceCurrency":"USD"}}`,
			field:  "price",
			want:   "19.99",
			wantOK: true,
		},
		{
			name:   "offers array first usable hit",
			raw:    `[{"@type":"Organization"},{"offers":[{"price":""},{"price":5}]}]`,
			field:  "price",
			want:   float64(5),
			wantOK: true,
		},
		{
			name:   "relation before own field",
			raw:    `{"price":1,"offers":{"price":2}}`,
			field:  "price",
			want:   float64(2),
			wantOK: true,
		},
		{
			name:   "own field when relation misses",
			raw:    `{"price":1,"offers":{"availability":"InStock"}}`,
			field:  "price",
			want:   float64(1),
			wantOK: true,
		},
		{
			name:  "null value",
			raw:   `{"price":null}`,
			field: "price",
		},
		{
			name:  "scalar root",
			raw:   `42`,
			field: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := extract.ParseFragment(tt.raw)
			require.True(t, f.OK())

			got, ok := extract.FindField(f.Data, tt.field, "offers")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
