package lookup

import (
	"context"

	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/role"
	"github.com/vecta-co/leadgen-cli/pkg/apollo"
)

// apolloClient backs the lookup contract with the Apollo.io people-match
// endpoint.
type apolloClient struct {
	api apollo.Client
}

// NewApollo wraps an Apollo API client as a lookup Client.
func NewApollo(api apollo.Client) Client {
	return &apolloClient{api: api}
}

func (c *apolloClient) Lookup(ctx context.Context, req Request) (Result, error) {
	person, err := c.api.MatchPerson(ctx, apollo.MatchPersonRequest{
		Name:                 req.PersonName,
		OrganizationName:     req.CompanyName,
		RevealPersonalEmails: true,
	})
	if err != nil {
		return Result{}, err
	}
	if person == nil {
		zap.L().Debug("lookup: no apollo match",
			zap.String("person", req.PersonName),
			zap.String("company", req.CompanyName),
		)
		return Result{}, nil
	}

	// A record whose title classifies to a different canonical role is a
	// likely-wrong identity match and counts as not found.
	if req.ExpectedRole != "" {
		found, ok := role.Infer(person.Title)
		if !ok || role.Key(found) != role.Key(req.ExpectedRole) {
			zap.L().Debug("lookup: role mismatch",
				zap.String("person", req.PersonName),
				zap.String("apollo_title", person.Title),
				zap.String("expected_role", string(req.ExpectedRole)),
			)
			return Result{}, nil
		}
	}

	res := Result{Matched: true}
	if person.ID != "" {
		res.ApolloID = &person.ID
	}
	if person.Email != "" {
		res.Email = &person.Email
	}
	if phone := pickPhone(person.PhoneNumbers); phone != "" {
		res.PhoneNumber = &phone
	}
	return res, nil
}

// pickPhone prefers the first sanitized number, falling back to the raw one.
func pickPhone(numbers []apollo.PhoneNumber) string {
	for _, n := range numbers {
		if n.SanitizedNumber != "" {
			return n.SanitizedNumber
		}
		if n.RawNumber != "" {
			return n.RawNumber
		}
	}
	return ""
}
