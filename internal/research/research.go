// Package research builds company profiles from web-grounded LLM answers.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/pkg/perplexity"
)

const systemPrompt = `You are a company research assistant. Answer with a single JSON object and nothing else. Use null for any field you cannot verify. Do not guess.`

const questionTemplate = `Research the company %q and return a JSON object with exactly these keys:
{
  "name": "official company name or null",
  "foundedYear": "four-digit year as a string or null",
  "locationCity": "headquarters city and region or null",
  "totalFunding": "total funding raised, e.g. \"$12M\", or null",
  "latestFundingStage": "e.g. \"Seed\", \"Series A\", or null",
  "description": "one-sentence description or null",
  "website": "primary website URL or null"
}`

// CompanyProfile is the structured result of researching one company.
// Fields the model could not verify are nil.
type CompanyProfile struct {
	Name               *string `json:"name"`
	FoundedYear        *string `json:"foundedYear"`
	LocationCity       *string `json:"locationCity"`
	TotalFunding       *string `json:"totalFunding"`
	LatestFundingStage *string `json:"latestFundingStage"`
	Description        *string `json:"description"`
	Website            *string `json:"website"`
}

// Researcher answers company research questions.
type Researcher struct {
	client perplexity.Client
}

// New creates a Researcher backed by the given Perplexity client.
func New(client perplexity.Client) *Researcher {
	return &Researcher{client: client}
}

// Profile researches a single company and returns its structured profile.
func (r *Researcher) Profile(ctx context.Context, companyName string) (*CompanyProfile, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, eris.New("research: company name is empty")
	}

	reply, err := r.client.Ask(ctx, systemPrompt, fmt.Sprintf(questionTemplate, companyName))
	if err != nil {
		return nil, eris.Wrapf(err, "research: query %q", companyName)
	}

	doc, err := extractJSON(reply)
	if err != nil {
		zap.L().Warn("unparseable research reply",
			zap.String("company", companyName),
			zap.String("reply", reply))
		return nil, eris.Wrapf(err, "research: parse reply for %q", companyName)
	}

	var profile CompanyProfile
	if err := json.Unmarshal([]byte(doc), &profile); err != nil {
		return nil, eris.Wrapf(err, "research: decode profile for %q", companyName)
	}
	return &profile, nil
}

// extractJSON returns the first balanced top-level JSON object in s. Models
// sometimes wrap payloads in prose or markdown fences.
func extractJSON(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", eris.New("no JSON object in reply")
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", eris.New("unterminated JSON object in reply")
}
