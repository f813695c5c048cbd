// Package reconcile merges freshly sourced records into the enriched
// collection with find-or-create semantics keyed on normalized names.
package reconcile

import (
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/lookup"
	"github.com/vecta-co/leadgen-cli/internal/model"
	"github.com/vecta-co/leadgen-cli/internal/normalize"
)

// UpsertCompany finds the company matching incoming's normalized name key, or
// appends a deep copy when none exists. On a match the descriptive scalars
// merge sticky: an incoming non-nil value wins, an incoming nil never erases
// a stored value. Returns a pointer into the collection.
func UpsertCompany(collection *[]model.Company, incoming model.Company) *model.Company {
	key := normalize.CompanyKey(incoming.Name)

	for i := range *collection {
		existing := &(*collection)[i]
		if normalize.CompanyKey(existing.Name) != key {
			continue
		}

		existing.Description = pickNonNil(incoming.Description, existing.Description)
		existing.Location = pickNonNil(incoming.Location, existing.Location)
		existing.Industry = pickNonNil(incoming.Industry, existing.Industry)
		existing.Founded = pickNonNil(incoming.Founded, existing.Founded)
		return existing
	}

	*collection = append(*collection, incoming.Clone())
	zap.L().Debug("reconcile: created company", zap.String("name", incoming.Name))
	return &(*collection)[len(*collection)-1]
}

// UpsertPerson finds the person matching incoming's normalized key within the
// company, or appends a deep copy. On a match, role and linkedinUrl are
// overwritten unconditionally: the source file is authoritative for both,
// unlike the contact fields which only ever merge sticky via ApplyLookup.
func UpsertPerson(company *model.Company, incoming model.Person) *model.Person {
	companyKey := normalize.CompanyKey(company.Name)
	key := normalize.PersonKey(companyKey, incoming.Name)

	for i := range company.People {
		existing := &company.People[i]
		if normalize.PersonKey(companyKey, existing.Name) != key {
			continue
		}

		existing.Role = incoming.Role
		existing.LinkedinURL = cloneNonNil(incoming.LinkedinURL)
		return existing
	}

	company.People = append(company.People, incoming.Clone())
	return &company.People[len(company.People)-1]
}

// ApplyLookup writes a lookup result's contact fields onto the person with
// sticky precedence: fetched non-nil values overwrite, fetched nils preserve
// whatever enrichment a previous run stored.
func ApplyLookup(person *model.Person, res lookup.Result) {
	person.PhoneNumber = pickNonNil(res.PhoneNumber, person.PhoneNumber)
	person.Email = pickNonNil(res.Email, person.Email)
	person.ApolloID = pickNonNil(res.ApolloID, person.ApolloID)
}

// RemovePerson deletes the person matching name's normalized key from the
// company. Used only by the strict-role runner path; upserts never delete.
func RemovePerson(company *model.Company, personName string) bool {
	companyKey := normalize.CompanyKey(company.Name)
	key := normalize.PersonKey(companyKey, personName)

	for i := range company.People {
		if normalize.PersonKey(companyKey, company.People[i].Name) == key {
			company.People = append(company.People[:i], company.People[i+1:]...)
			return true
		}
	}
	return false
}

func pickNonNil(incoming, existing *string) *string {
	if incoming != nil {
		v := *incoming
		return &v
	}
	return existing
}

func cloneNonNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
