package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/product-extractor/pkg/extract"
)

func TestResolveURL(t *testing.T) {
	t.Parallel()

	const base = "https://shop.example/p/1"

	tests := []struct {
		name   string
		raw    string
		base   string
		want   string
		wantOK bool
	}{
		{name: "absolute unchanged", raw: "https://cdn.example/a.jpg", base: base, want: "https://cdn.example/a.jpg", wantOK: true},
		{name: "absolute keeps case", raw: "HTTPS://CDN.example/A.jpg", base: base, want: "HTTPS://CDN.example/A.jpg", wantOK: true},
		{name: "root relative", raw: "/img/a.jpg", base: base, want: "https://shop.example/img/a.jpg", wantOK: true},
		{name: "path relative", raw: "a.jpg", base: base, want: "https://shop.example/p/a.jpg", wantOK: true},
		{name: "dot segments", raw: "../img/a.jpg", base: base, want: "https://shop.example/img/a.jpg", wantOK: true},
		{name: "protocol relative https", raw: "//cdn.example/a.jpg", base: base, want: "https://cdn.example/a.jpg", wantOK: true},
		{name: "protocol relative http", raw: "//cdn.example/a.jpg", base: "http://shop.example/", want: "http://cdn.example/a.jpg", wantOK: true},
		{name: "surrounding whitespace", raw: "  /a.jpg\n", base: base, want: "https://shop.example/a.jpg", wantOK: true},
		{name: "empty", raw: "", base: base},
		{name: "blank", raw: "   ", base: base},
		{name: "relative base", raw: "/a.jpg", base: "not a url"},
		{name: "unparseable", raw: "http://[::1", base: base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := extract.ResolveURL(tt.raw, tt.base)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
