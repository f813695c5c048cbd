// Package export flattens the enriched snapshot into the downstream formats
// consumed by outreach tooling: contactable-lead CSV, LinkedIn URL lists,
// and an Excel workbook.
package export

import (
	"encoding/csv"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/model"
)

// contactableHeader flattens company and person fields per row. The apolloId
// is an internal cross-reference and stays out of outreach exports.
var contactableHeader = []string{
	"company_name",
	"company_founded",
	"company_location",
	"person_role",
	"person_name",
	"person_linkedinUrl",
	"person_email",
	"person_phoneNumber",
}

// WriteContactableCSV writes one row per person that has at least one
// contact field, joined with their company. Returns the row count.
func WriteContactableCSV(path string, companies []model.Company) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(contactableHeader); err != nil {
		return 0, eris.Wrap(err, "export: write header")
	}

	rows := 0
	for _, company := range companies {
		for _, person := range company.People {
			if !person.HasContactInfo() {
				continue
			}
			record := []string{
				company.Name,
				deref(company.Founded),
				deref(company.Location),
				person.Role,
				person.Name,
				deref(person.LinkedinURL),
				deref(person.Email),
				deref(person.PhoneNumber),
			}
			if err := w.Write(record); err != nil {
				return rows, eris.Wrap(err, "export: write row")
			}
			rows++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return rows, eris.Wrap(err, "export: flush")
	}

	zap.L().Info("contactable csv written", zap.String("path", path), zap.Int("rows", rows))
	return rows, nil
}

// WriteLinkedInCSV collects unique LinkedIn URLs across the collection,
// sorted, one per row under a "url" header. Companies with more than
// maxPeoplePerCompany people are skipped entirely: oversized rosters in the
// source are usually scrape noise rather than a founding team.
func WriteLinkedInCSV(path string, companies []model.Company, maxPeoplePerCompany int) (int, error) {
	unique := map[string]struct{}{}
	for _, company := range companies {
		if maxPeoplePerCompany > 0 && len(company.People) > maxPeoplePerCompany {
			continue
		}
		for _, person := range company.People {
			if person.LinkedinURL != nil && *person.LinkedinURL != "" {
				unique[*person.LinkedinURL] = struct{}{}
			}
		}
	}

	urls := make([]string, 0, len(unique))
	for u := range unique {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	f, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"url"}); err != nil {
		return 0, eris.Wrap(err, "export: write header")
	}
	for _, u := range urls {
		if err := w.Write([]string{u}); err != nil {
			return 0, eris.Wrap(err, "export: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, eris.Wrap(err, "export: flush")
	}

	zap.L().Info("linkedin csv written", zap.String("path", path), zap.Int("urls", len(urls)))
	return len(urls), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
