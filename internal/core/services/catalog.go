package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/unitrack-labs/syllabus-core/internal/core/domain"
	"github.com/unitrack-labs/syllabus-core/internal/core/ports/driving"
)

// Institution describes one syllabus site the catalog knows how to query.
type Institution struct {
	Name     string
	BaseURL  string
	SchoolID string
}

// listingPath and detailPath are the public syllabus endpoints shared by
// every known institution site.
const (
	listingPath = "/Pages/PublicSubjects"
	detailPath  = "/Pages/PublicSyllabus"
)

// Catalog maps institution identifiers to their syllabus sites and owns
// the URL construction and detail-link filtering rules.
type Catalog struct {
	institutions map[string]Institution
}

// NewCatalog creates a Catalog over the given institutions.
func NewCatalog(institutions map[string]Institution) *Catalog {
	return &Catalog{institutions: institutions}
}

// DefaultCatalog returns the built-in institution mapping.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[string]Institution{
		"kosen-tokyo": {
			Name:     "Tokyo College of Technology",
			BaseURL:  "https://syllabus.kosen-k.go.jp",
			SchoolID: "04",
		},
		"kosen-nagaoka": {
			Name:     "Nagaoka College of Technology",
			BaseURL:  "https://syllabus.kosen-k.go.jp",
			SchoolID: "12",
		},
		"kosen-kagawa": {
			Name:     "Kagawa College of Technology",
			BaseURL:  "https://syllabus.kosen-k.go.jp",
			SchoolID: "37",
		},
	})
}

// Institution returns the mapping for id.
func (c *Catalog) Institution(id string) (Institution, error) {
	inst, ok := c.institutions[id]
	if !ok {
		return Institution{}, fmt.Errorf("%w: %q", domain.ErrUnknownInstitution, id)
	}
	return inst, nil
}

// ListingURL constructs the catalog listing page URL for one department.
func (c *Catalog) ListingURL(req driving.IngestRequest) (string, error) {
	inst, err := c.Institution(req.InstitutionID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s?school_id=%s&department_id=%s&grade=%d&year=%d",
		strings.TrimSuffix(inst.BaseURL, "/"), listingPath,
		url.QueryEscape(inst.SchoolID), url.QueryEscape(req.DepartmentID),
		req.GradeLevel, req.AcademicYear), nil
}

// FilterDetailLinks keeps the links that look like detail documents for the
// requested institution and department, de-duplicated in first-seen order.
// A detail link must point at the detail path on the institution's host,
// carry the same department identifier, and name a subject.
func (c *Catalog) FilterDetailLinks(req driving.IngestRequest, links []string) []string {
	inst, err := c.Institution(req.InstitutionID)
	if err != nil {
		return nil
	}

	base, err := url.Parse(inst.BaseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, link := range links {
		parsed, err := url.Parse(link)
		if err != nil {
			continue
		}
		if parsed.Host != base.Host || !strings.Contains(parsed.Path, detailPath) {
			continue
		}
		query := parsed.Query()
		if query.Get("department_id") != req.DepartmentID {
			continue
		}
		if query.Get("subject_id") == "" {
			continue
		}
		if seen[link] {
			continue
		}
		seen[link] = true
		out = append(out, link)
	}
	return out
}
