// Package model defines the lead record types shared across the pipeline.
package model

// Company is both the source and the enriched record for a company. A source
// file carries companies without contact fields; an enriched snapshot carries
// the same shape with contact fields filled in on people.
type Company struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Industry    *string  `json:"industry"`
	Founded     *string  `json:"founded"`
	People      []Person `json:"people"`
}

// Person is a contact at a company. Role is the free-text title from the
// source, not a canonical role. The contact fields are absent until a lookup
// fills them in.
type Person struct {
	Role        string  `json:"role"`
	Name        string  `json:"name"`
	LinkedinURL *string `json:"linkedinUrl"`

	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Email       *string `json:"email,omitempty"`
	ApolloID    *string `json:"apolloId,omitempty"`
}

// HasContactInfo reports whether the person carries at least one non-empty
// contact field.
func (p Person) HasContactInfo() bool {
	if p.Email != nil && *p.Email != "" {
		return true
	}
	if p.PhoneNumber != nil && *p.PhoneNumber != "" {
		return true
	}
	return false
}

// Clone returns a deep copy of the person.
func (p Person) Clone() Person {
	out := p
	out.LinkedinURL = cloneString(p.LinkedinURL)
	out.PhoneNumber = cloneString(p.PhoneNumber)
	out.Email = cloneString(p.Email)
	out.ApolloID = cloneString(p.ApolloID)
	return out
}

// Clone returns a deep copy of the company, including its people.
func (c Company) Clone() Company {
	out := c
	out.Description = cloneString(c.Description)
	out.Location = cloneString(c.Location)
	out.Industry = cloneString(c.Industry)
	out.Founded = cloneString(c.Founded)
	out.People = make([]Person, len(c.People))
	for i, p := range c.People {
		out.People[i] = p.Clone()
	}
	return out
}

// CloneAll deep-copies a company collection.
func CloneAll(companies []Company) []Company {
	out := make([]Company, len(companies))
	for i, c := range companies {
		out[i] = c.Clone()
	}
	return out
}

// CountPeople returns the total number of people across the collection.
func CountPeople(companies []Company) int {
	n := 0
	for _, c := range companies {
		n += len(c.People)
	}
	return n
}

// StringPtr returns a pointer to s. Convenience for building records.
func StringPtr(s string) *string {
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
