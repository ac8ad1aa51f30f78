package extract

import (
	"github.com/donaldgifford/product-extractor/pkg/document"
	domain "github.com/donaldgifford/product-extractor/pkg/types"
)

// SiteProfile supplies retailer-specific extraction overrides that run
// before the generic cascade. A profile reports a miss by returning no
// images or false.
type SiteProfile interface {
	Name() string
	Description() string
	Matches(loc document.Location) bool
	Images(doc document.Document) []string
	Price(doc document.Document) (float64, bool)
	Currency(doc document.Document) (string, bool)
}

// Site profiles.
var (
	Generic SiteProfile = genericProfile{}
	Amazon  SiteProfile = amazonProfile{}
)

// retailerProfiles are matched in order; the first match wins.
var retailerProfiles = []SiteProfile{Amazon}

// ProfileFor selects the site profile for a document location.
func ProfileFor(loc document.Location) SiteProfile {
	for _, p := range retailerProfiles {
		if p.Matches(loc) {
			return p
		}
	}
	return Generic
}

// Profiles lists every known profile, generic first.
func Profiles() []domain.ProfileInfo {
	all := append([]SiteProfile{Generic}, retailerProfiles...)
	out := make([]domain.ProfileInfo, 0, len(all))
	for _, p := range all {
		out = append(out, domain.ProfileInfo{Name: p.Name(), Description: p.Description()})
	}
	return out
}

type genericProfile struct{}

func (genericProfile) Name() string { return "generic" }

func (genericProfile) Description() string {
	return "Structured data, meta tags and heuristic selectors only."
}

func (genericProfile) Matches(document.Location) bool { return true }

func (genericProfile) Images(document.Document) []string { return nil }

func (genericProfile) Price(document.Document) (float64, bool) { return 0, false }

func (genericProfile) Currency(document.Document) (string, bool) { return "", false }
