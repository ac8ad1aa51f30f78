package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/donaldgifford/product-extractor/pkg/document"
)

type storefront struct {
	domain     string
	currency   string
	convention Convention
}

// amazonStorefronts covers the regional Amazon marketplaces.
var amazonStorefronts = []storefront{
	{"amazon.com", "USD", ConventionUS},
	{"amazon.ca", "CAD", ConventionUS},
	{"amazon.com.mx", "MXN", ConventionUS},
	{"amazon.com.br", "BRL", ConventionEU},
	{"amazon.co.uk", "GBP", ConventionUS},
	{"amazon.ie", "EUR", ConventionUS},
	{"amazon.de", "EUR", ConventionEU},
	{"amazon.at", "EUR", ConventionEU},
	{"amazon.fr", "EUR", ConventionEU},
	{"amazon.it", "EUR", ConventionEU},
	{"amazon.es", "EUR", ConventionEU},
	{"amazon.nl", "EUR", ConventionEU},
	{"amazon.com.be", "EUR", ConventionEU},
	{"amazon.pl", "PLN", ConventionEU},
	{"amazon.se", "SEK", ConventionEU},
	{"amazon.com.tr", "TRY", ConventionEU},
	{"amazon.ae", "AED", ConventionUS},
	{"amazon.sa", "SAR", ConventionUS},
	{"amazon.eg", "EGP", ConventionUS},
	{"amazon.in", "INR", ConventionUS},
	{"amazon.sg", "SGD", ConventionUS},
	{"amazon.com.au", "AUD", ConventionUS},
	{"amazon.co.jp", "JPY", ConventionUS},
}

// storefrontFor finds the storefront whose domain equals hostname or is a
// parent domain of it.
func storefrontFor(hostname string) (storefront, bool) {
	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	for _, sf := range amazonStorefronts {
		if hostname == sf.domain || strings.HasSuffix(hostname, "."+sf.domain) {
			return sf, true
		}
	}
	return storefront{}, false
}

const (
	amazonHostFragment = "amazon."
	amazonHiResToken   = "._AC_SL1500_."
	maxGalleryImages   = 5
)

// amazonSizeCode matches the "._SX300_SY300_QL70_." style resolution segment
// in Amazon media URLs.
var amazonSizeCode = regexp.MustCompile(`\._[A-Za-z0-9,_-]+_\.`)

var (
	amazonViewerSelectors = []string{
		"#landingImage",
		"#imgBlkFront",
		"#ebooksImgBlkFront",
		"#main-image",
	}
	amazonThumbnailSelector = "#altImages li:not(.videoThumbnail) img"

	amazonPriceSelectors = []string{
		"#corePrice_feature_div .a-price .a-offscreen",
		"#corePriceDisplay_desktop_feature_div .a-price .a-offscreen",
		"#corePrice_desktop .a-price .a-offscreen",
		"#apex_desktop .a-price .a-offscreen",
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		"#priceblock_saleprice",
		"#price_inside_buybox",
		"#kindle-price",
		".a-price .a-offscreen",
	}
	amazonHiddenPrices = []struct {
		selector string
		attr     string
	}{
		{"#twister-plus-price-data-price", "value"},
		{"#attach-base-product-price", "value"},
		{"[data-a-price]", "data-a-price"},
	}
	amazonSymbolSelectors = []string{".a-price-symbol", ".a-price .a-offscreen"}
)

type amazonProfile struct{}

func (amazonProfile) Name() string { return "amazon" }

func (amazonProfile) Description() string {
	return "Amazon marketplaces: high-resolution viewer images, price widgets and storefront currencies."
}

func (amazonProfile) Matches(loc document.Location) bool {
	return strings.Contains(strings.ToLower(loc.Hostname), amazonHostFragment)
}

// Images collects the primary viewer image, up to five gallery thumbnails,
// and falls back to og:image, all rewritten to high resolution.
func (amazonProfile) Images(doc document.Document) []string {
	base := doc.Location().Href
	set := newURLSet()

	if primary := amazonPrimaryImage(doc); primary != "" {
		set.add(primary, base)
	}

	added := 0
	for _, img := range doc.Query(amazonThumbnailSelector) {
		if added >= maxGalleryImages {
			break
		}
		src := imageSource(img)
		if src == "" || isVideoOverlay(src) {
			continue
		}
		if set.add(UpgradeAmazonImage(src), base) {
			added++
		}
	}

	if set.len() == 0 {
		if og, ok := doc.Meta("og:image"); ok {
			set.add(UpgradeAmazonImage(og), base)
		}
	}
	return set.urls
}

func amazonPrimaryImage(doc document.Document) string {
	for _, sel := range amazonViewerSelectors {
		els := doc.Query(sel)
		if len(els) == 0 {
			continue
		}
		el := els[0]
		if hires := firstAttr(el, "data-old-hires"); hires != "" {
			return hires
		}
		if dyn, ok := el.Attr("data-a-dynamic-image"); ok {
			if best := largestDynamicImage(dyn); best != "" {
				return best
			}
		}
		if src := imageSource(el); src != "" {
			return UpgradeAmazonImage(src)
		}
	}
	return ""
}

// largestDynamicImage picks the entry with the largest area from a
// data-a-dynamic-image map of url -> [width, height]. Ties go to the
// lexically smallest URL.
func largestDynamicImage(raw string) string {
	var sizes map[string][]float64
	if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
		return ""
	}
	best, bestArea := "", -1.0
	for u, dims := range sizes {
		if len(dims) < 2 || strings.TrimSpace(u) == "" {
			continue
		}
		area := dims[0] * dims[1]
		if area > bestArea || (area == bestArea && u < best) {
			best, bestArea = u, area
		}
	}
	return best
}

// UpgradeAmazonImage rewrites the resolution segment of an Amazon media URL
// to the high-resolution token. Other URLs are returned unchanged.
func UpgradeAmazonImage(u string) string {
	return amazonSizeCode.ReplaceAllString(u, amazonHiResToken)
}

func isVideoOverlay(u string) bool {
	lower := strings.ToLower(u)
	return strings.Contains(lower, "play-button") || strings.Contains(lower, "pkplay")
}

// Price tries the offscreen price widgets, then hidden price inputs, then
// the whole/fraction price parts.
func (amazonProfile) Price(doc document.Document) (float64, bool) {
	host := doc.Location().Hostname

	for _, sel := range amazonPriceSelectors {
		for _, el := range doc.Query(sel) {
			text := strings.TrimSpace(el.Text())
			if text == "" {
				continue
			}
			if v, ok := NormalizeRetailerPrice(text, host); ok {
				return v, true
			}
		}
	}

	for _, hp := range amazonHiddenPrices {
		for _, el := range doc.Query(hp.selector) {
			if raw := firstAttr(el, hp.attr); raw != "" {
				if v, ok := NormalizeRetailerPrice(raw, host); ok {
					return v, true
				}
			}
		}
	}

	return amazonPriceParts(doc)
}

func amazonPriceParts(doc document.Document) (float64, bool) {
	wholes := doc.Query(".a-price-whole")
	if len(wholes) == 0 {
		return 0, false
	}
	whole := digitsOnly(wholes[0].Text())
	if whole == "" {
		return 0, false
	}

	fraction := "00"
	if fracs := doc.Query(".a-price-fraction"); len(fracs) > 0 {
		if f := digitsOnly(fracs[0].Text()); f != "" {
			fraction = f
		}
	}

	v, err := strconv.ParseFloat(whole+"."+fraction, 64)
	if err != nil {
		return 0, false
	}
	return validPrice(v)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Currency looks the storefront up by domain, then sniffs the price symbol.
func (amazonProfile) Currency(doc document.Document) (string, bool) {
	if sf, ok := storefrontFor(doc.Location().Hostname); ok {
		return sf.currency, true
	}
	for _, sel := range amazonSymbolSelectors {
		for _, el := range doc.Query(sel) {
			if code, ok := sniffCurrency(el.Text()); ok {
				return code, true
			}
		}
	}
	return "", false
}
