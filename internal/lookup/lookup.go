// Package lookup abstracts the external contact-lookup service behind a
// single-call interface so the batch runner never depends on a concrete
// transport.
package lookup

import (
	"context"

	"github.com/vecta-co/leadgen-cli/internal/role"
)

// Request identifies the person to look up. ExpectedRole, when non-empty,
// asks the backend to confirm the found record's title classifies to the
// same canonical role before reporting a match.
type Request struct {
	PersonName   string
	CompanyName  string
	ExpectedRole role.Role
}

// Result is the outcome of one lookup. A role mismatch or a no-match both
// come back as Matched=false with nil fields; they are not errors.
type Result struct {
	Matched     bool
	PhoneNumber *string
	Email       *string
	ApolloID    *string
}

// Client performs a single external lookup per person. Implementations must
// bound their own calls (timeouts) and may be backed by a REST API or a
// driven browser session; the runner treats every returned error as
// Matched=false and never aborts the batch over one person.
type Client interface {
	Lookup(ctx context.Context, req Request) (Result, error)
}
