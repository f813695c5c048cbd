package runner

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecta-co/leadgen-cli/internal/model"
	"github.com/vecta-co/leadgen-cli/pkg/apollo"
)

// fakeOrgAPI serves canned organization search and unlock responses.
type fakeOrgAPI struct {
	orgs        map[string]apollo.Organization // keyed by requested name
	searchErr   error
	unlockErr   error
	searchCalls []string
}

func (f *fakeOrgAPI) MatchPerson(_ context.Context, _ apollo.MatchPersonRequest) (*apollo.Person, error) {
	return nil, eris.New("not implemented")
}

func (f *fakeOrgAPI) SearchOrganizations(_ context.Context, req apollo.SearchOrganizationsRequest) (*apollo.OrganizationSearchResponse, error) {
	name := req.OrganizationNames[0]
	f.searchCalls = append(f.searchCalls, name)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	resp := &apollo.OrganizationSearchResponse{}
	if org, ok := f.orgs[name]; ok {
		resp.Organizations = []apollo.Organization{org}
	}
	return resp, nil
}

func (f *fakeOrgAPI) UnlockContact(_ context.Context, _ string, _ string) (*apollo.UnlockResponse, error) {
	if f.unlockErr != nil {
		return nil, f.unlockErr
	}
	return &apollo.UnlockResponse{
		Emails: []apollo.UnlockedEmail{{Email: "info@acme.com", EmailStatus: "verified"}},
	}, nil
}

func TestOrgRunDedupesByNormalizedName(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "orgs.json")
	api := &fakeOrgAPI{orgs: map[string]apollo.Organization{
		"Acme Inc": {ID: "org-1", Name: "Acme"},
	}}

	source := []model.Company{
		{Name: "Acme Inc"},
		{Name: "acme, inc."}, // same normalized key, searched once
		{Name: "Globex"},
	}

	r := NewOrgs(api, nil, OrgOptions{OutputPath: out})
	summary, err := r.Run(context.Background(), source)
	require.NoError(t, err)

	assert.Equal(t, []string{"Acme Inc", "Globex"}, api.searchCalls)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Found)
	assert.Equal(t, 1, summary.NotFound)
}

func TestOrgRunAttachesUnlockedContacts(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "orgs.json")
	api := &fakeOrgAPI{orgs: map[string]apollo.Organization{
		"Acme": {ID: "org-1", Name: "Acme"},
	}}

	r := NewOrgs(api, nil, OrgOptions{OutputPath: out})
	_, err := r.Run(context.Background(), []model.Company{{Name: "Acme"}})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var enriched []apollo.Organization
	require.NoError(t, json.Unmarshal(data, &enriched))
	require.Len(t, enriched, 1)
	require.Len(t, enriched[0].UnlockedEmails, 1)
	assert.Equal(t, "info@acme.com", enriched[0].UnlockedEmails[0].Email)
}

func TestOrgRunSearchErrorAbsorbed(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "orgs.json")
	api := &fakeOrgAPI{searchErr: eris.New("rate limited")}

	r := NewOrgs(api, nil, OrgOptions{OutputPath: out})
	summary, err := r.Run(context.Background(), []model.Company{{Name: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NotFound)

	// An all-miss run still leaves a valid empty snapshot behind.
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestOrgRunUnlockErrorKeepsRecord(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "orgs.json")
	api := &fakeOrgAPI{
		orgs:      map[string]apollo.Organization{"Acme": {ID: "org-1", Name: "Acme"}},
		unlockErr: eris.New("insufficient credits"),
	}

	r := NewOrgs(api, nil, OrgOptions{OutputPath: out})
	summary, err := r.Run(context.Background(), []model.Company{{Name: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Found)

	var enriched []apollo.Organization
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &enriched))
	require.Len(t, enriched, 1)
	assert.Empty(t, enriched[0].UnlockedEmails)
}

func TestOrgRunLimit(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "orgs.json")
	api := &fakeOrgAPI{}

	source := []model.Company{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	r := NewOrgs(api, nil, OrgOptions{OutputPath: out, Limit: 2})
	summary, err := r.Run(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Len(t, api.searchCalls, 2)
}
