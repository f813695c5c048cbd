// Package apollo provides a client for the Apollo.io REST API.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.apollo.io"

// Client defines the Apollo.io operations used by the enrichment pipelines.
type Client interface {
	// MatchPerson resolves a person by name and organization and returns
	// their contact record, or nil when Apollo has no match.
	MatchPerson(ctx context.Context, req MatchPersonRequest) (*Person, error)

	// SearchOrganizations searches organizations by name.
	SearchOrganizations(ctx context.Context, req SearchOrganizationsRequest) (*OrganizationSearchResponse, error)

	// UnlockContact reveals locked emails and phone numbers for a person or
	// organization by Apollo ID. objectType is "person" or "organization".
	UnlockContact(ctx context.Context, id string, objectType string) (*UnlockResponse, error)
}

// MatchPersonRequest is the body for POST /v1/people/match.
type MatchPersonRequest struct {
	Name                 string `json:"name,omitempty"`
	OrganizationName     string `json:"organization_name,omitempty"`
	LinkedinURL          string `json:"linkedin_url,omitempty"`
	RevealPersonalEmails bool   `json:"reveal_personal_emails"`
	RevealPhoneNumber    bool   `json:"reveal_phone_number"`
}

// Person is the contact record returned by a people match.
type Person struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	Email        string        `json:"email"`
	LinkedinURL  string        `json:"linkedin_url"`
	PhoneNumbers []PhoneNumber `json:"phone_numbers"`
	Organization *OrgRef       `json:"organization"`
}

// PhoneNumber is a revealed phone entry.
type PhoneNumber struct {
	RawNumber       string `json:"raw_number"`
	SanitizedNumber string `json:"sanitized_number"`
	Type            string `json:"type"`
}

// OrgRef names the organization a matched person belongs to.
type OrgRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchOrganizationsRequest is the body for POST /api/v1/organizations/search.
type SearchOrganizationsRequest struct {
	OrganizationNames    []string `json:"organization_names"`
	Page                 int      `json:"page"`
	PerPage              int      `json:"per_page"`
	RevealPersonalEmails bool     `json:"reveal_personal_emails"`
	RevealPhoneNumber    bool     `json:"reveal_phone_number"`
}

// Organization is an Apollo organization record. Only the fields the
// pipeline consumes are decoded; the rest of the payload is dropped.
type Organization struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	WebsiteURL      *string  `json:"website_url"`
	LinkedinURL     *string  `json:"linkedin_url"`
	PrimaryDomain   *string  `json:"primary_domain"`
	Industry        *string  `json:"industry"`
	Phone           *string  `json:"phone"`
	SanitizedPhone  *string  `json:"sanitized_phone"`
	FoundedYear     *int     `json:"founded_year"`
	EstimatedEmploy *int     `json:"estimated_num_employees"`
	RawAddress      *string  `json:"raw_address"`
	City            *string  `json:"city"`
	Country         *string  `json:"country"`
	Keywords        []string `json:"keywords"`

	// Filled in after a contacts/unlock call.
	UnlockedEmails []UnlockedEmail `json:"unlocked_emails,omitempty"`
	UnlockedPhones []PhoneNumber   `json:"unlocked_phone_numbers,omitempty"`
}

// OrganizationSearchResponse is the decoded organization search payload.
type OrganizationSearchResponse struct {
	Organizations []Organization `json:"organizations"`
	Pagination    Pagination     `json:"pagination"`
}

// Pagination describes result paging.
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	TotalEntries int `json:"total_entries"`
	TotalPages   int `json:"total_pages"`
}

// UnlockedEmail is a revealed email entry.
type UnlockedEmail struct {
	Email       string `json:"email"`
	EmailStatus string `json:"email_status"`
}

// UnlockResponse is the decoded contacts/unlock payload.
type UnlockResponse struct {
	Emails       []UnlockedEmail `json:"emails"`
	PhoneNumbers []PhoneNumber   `json:"phone_numbers"`
}

// Option configures the Apollo client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets a per-second rate limit for Apollo API calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an Apollo.io API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) MatchPerson(ctx context.Context, req MatchPersonRequest) (*Person, error) {
	var result struct {
		Person *Person `json:"person"`
	}
	if err := c.post(ctx, "/v1/people/match", req, &result); err != nil {
		return nil, err
	}
	return result.Person, nil
}

func (c *httpClient) SearchOrganizations(ctx context.Context, req SearchOrganizationsRequest) (*OrganizationSearchResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PerPage == 0 {
		req.PerPage = 1
	}

	var result OrganizationSearchResponse
	if err := c.post(ctx, "/api/v1/organizations/search", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) UnlockContact(ctx context.Context, id string, objectType string) (*UnlockResponse, error) {
	body := struct {
		ID         string `json:"id"`
		ObjectType string `json:"object_type"`
	}{ID: id, ObjectType: objectType}

	var result UnlockResponse
	if err := c.post(ctx, "/v1/contacts/unlock", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// post sends a JSON POST and decodes the response into out.
func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "apollo: rate limit")
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "apollo: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "apollo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Cache-Control", "no-cache")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return eris.Wrapf(err, "apollo: post %s", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "apollo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("apollo: %s returned status %d: %s", path, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "apollo: unmarshal response")
	}

	return nil
}
