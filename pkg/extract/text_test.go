package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/product-extractor/pkg/extract"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: " \n\t ", want: ""},
		{name: "collapses runs", raw: "  Hello \n\t  world  ", want: "Hello world"},
		{name: "non-breaking space", raw: "a\u00a0\u00a0b", want: "a b"},
		{name: "entity", raw: "Fish &amp; Chips", want: "Fish & Chips"},
		{name: "bare ampersand", raw: "Fish & Chips", want: "Fish & Chips"},
		{name: "escaped angle bracket", raw: "5 &lt; 6", want: "5 < 6"},
		{name: "strips tags", raw: "<b>Bold</b>\n<i>text</i>", want: "Bold text"},
		{name: "composes accents", raw: "Cafe\u0301", want: "Caf\u00e9"},
		{name: "keeps trademark sign", raw: "Widget™", want: "Widget™"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.CleanText(tt.raw))
		})
	}
}
