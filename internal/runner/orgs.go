package runner

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vecta-co/leadgen-cli/internal/model"
	"github.com/vecta-co/leadgen-cli/internal/normalize"
	"github.com/vecta-co/leadgen-cli/internal/snapshot"
	"github.com/vecta-co/leadgen-cli/internal/store"
	"github.com/vecta-co/leadgen-cli/pkg/apollo"
)

// OrgOptions configures an organization-enrichment run.
type OrgOptions struct {
	InputPath  string
	OutputPath string
	Delay      time.Duration
	Limit      int
}

// OrgRunner enriches companies at the organization level: dedupe the source
// by normalized name, search Apollo for each unique organization, unlock its
// contact info, and persist the raw records incrementally.
type OrgRunner struct {
	api    apollo.Client
	ledger store.Store // optional
	opts   OrgOptions
}

// NewOrgs creates an OrgRunner. ledger may be nil.
func NewOrgs(api apollo.Client, ledger store.Store, opts OrgOptions) *OrgRunner {
	return &OrgRunner{api: api, ledger: ledger, opts: opts}
}

// Run searches every unique organization name in source. Per-org API
// failures are absorbed and counted as not found.
func (r *OrgRunner) Run(ctx context.Context, source []model.Company) (summary model.RunSummary, err error) {
	names := dedupeNames(source)
	zap.L().Info("organizations deduplicated",
		zap.Int("source_companies", len(source)),
		zap.Int("unique", len(names)),
	)

	runID := r.recordStart(ctx)
	defer func() { r.recordFinish(ctx, runID, runStatus(err), &summary) }()

	limiter := rate.NewLimiter(rate.Every(r.opts.Delay), 1)
	var enriched []apollo.Organization

	for i, name := range names {
		if r.opts.Limit > 0 && summary.Processed >= r.opts.Limit {
			zap.L().Info("organization limit reached", zap.Int("limit", r.opts.Limit))
			break
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Processed++
		zap.L().Info("searching organization",
			zap.Int("n", i+1),
			zap.Int("total", len(names)),
			zap.String("organization", name),
		)

		org := r.search(ctx, name)
		if org == nil {
			summary.NotFound++
		} else {
			summary.Found++
			r.unlock(ctx, org)
			enriched = append(enriched, *org)

			if err := snapshot.WriteValue(r.opts.OutputPath, enriched); err != nil {
				zap.L().Error("organization snapshot write failed",
					zap.String("path", r.opts.OutputPath),
					zap.Error(err),
				)
			}
		}

		if err := limiter.Wait(ctx); err != nil {
			return summary, err
		}
	}

	if enriched == nil {
		enriched = []apollo.Organization{}
	}
	if err := snapshot.WriteValue(r.opts.OutputPath, enriched); err != nil {
		zap.L().Error("organization snapshot write failed",
			zap.String("path", r.opts.OutputPath),
			zap.Error(err),
		)
	}

	zap.L().Info("organization enrichment complete",
		zap.Int("processed", summary.Processed),
		zap.Int("found", summary.Found),
		zap.Int("not_found", summary.NotFound),
	)
	return summary, nil
}

// search returns the best organization match for name, or nil when Apollo
// has none or the call fails.
func (r *OrgRunner) search(ctx context.Context, name string) *apollo.Organization {
	resp, err := r.api.SearchOrganizations(ctx, apollo.SearchOrganizationsRequest{
		OrganizationNames:    []string{name},
		PerPage:              1,
		Page:                 1,
		RevealPersonalEmails: true,
		RevealPhoneNumber:    true,
	})
	if err != nil {
		zap.L().Warn("organization search failed",
			zap.String("organization", name),
			zap.Error(err),
		)
		return nil
	}
	if len(resp.Organizations) == 0 {
		return nil
	}
	org := resp.Organizations[0]
	return &org
}

// unlock reveals locked contact info and attaches it to the record. Failures
// leave the record without unlocked fields.
func (r *OrgRunner) unlock(ctx context.Context, org *apollo.Organization) {
	resp, err := r.api.UnlockContact(ctx, org.ID, "organization")
	if err != nil {
		zap.L().Warn("contact unlock failed",
			zap.String("organization", org.Name),
			zap.Error(err),
		)
		return
	}
	org.UnlockedEmails = resp.Emails
	org.UnlockedPhones = resp.PhoneNumbers
}

// dedupeNames keeps the first original spelling per normalized company key,
// in source order.
func dedupeNames(source []model.Company) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, c := range source {
		key := normalize.CompanyKey(c.Name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, c.Name)
	}
	return names
}

func (r *OrgRunner) recordStart(ctx context.Context) string {
	if r.ledger == nil {
		return ""
	}
	run, err := r.ledger.CreateRun(ctx, model.RunKindOrgs, r.opts.InputPath, r.opts.OutputPath)
	if err != nil {
		zap.L().Warn("ledger: create run failed", zap.Error(err))
		return ""
	}
	return run.ID
}

func (r *OrgRunner) recordFinish(ctx context.Context, runID string, status model.RunStatus, summary *model.RunSummary) {
	if r.ledger == nil || runID == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := r.ledger.CompleteRun(ctx, runID, status, summary); err != nil {
		zap.L().Warn("ledger: complete run failed", zap.Error(err))
	}
}
