// Package runner drives the resumable enrichment batches: iterate the source
// collection, look up each person externally, reconcile the result, and
// persist the full snapshot after every single item so an interrupted run
// loses at most the in-flight lookup.
package runner

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vecta-co/leadgen-cli/internal/lookup"
	"github.com/vecta-co/leadgen-cli/internal/model"
	"github.com/vecta-co/leadgen-cli/internal/reconcile"
	"github.com/vecta-co/leadgen-cli/internal/role"
	"github.com/vecta-co/leadgen-cli/internal/snapshot"
	"github.com/vecta-co/leadgen-cli/internal/store"
)

// Options configures an enrichment run.
type Options struct {
	// InputPath is recorded in the run ledger; the source collection itself
	// is passed to Run already parsed.
	InputPath string

	// OutputPath is the enriched snapshot. If it already exists and parses,
	// it seeds the run (resume); if it exists but is malformed, the run
	// starts fresh from a deep copy of the source with a warning.
	OutputPath string

	// Delay is the fixed pause between people. No backoff, no adaptation.
	Delay time.Duration

	// Limit caps how many people are looked up this run (0 = no cap).
	Limit int

	// Force re-looks-up people who already carry contact info; without it
	// they are skipped and counted in RunSummary.Skipped.
	Force bool

	// StrictRole removes a person from the enriched set when the lookup
	// cannot confirm their expected role. Without it the person is kept
	// with contact fields untouched.
	StrictRole bool
}

// Runner is the sequential batch driver. It is single-worker by design: the
// lookup backend may hold an exclusive session, and the snapshot file needs
// a single writer.
type Runner struct {
	client lookup.Client
	ledger store.Store // optional
	opts   Options
}

// New creates a Runner. ledger may be nil to skip run recording.
func New(client lookup.Client, ledger store.Store, opts Options) *Runner {
	return &Runner{client: client, ledger: ledger, opts: opts}
}

// Run enriches every person in source and returns the summary counters.
// Per-person failures never abort the batch; the returned error is non-nil
// only for cancellation.
func (r *Runner) Run(ctx context.Context, source []model.Company) (summary model.RunSummary, err error) {
	enriched := r.seed(source)

	runID := r.recordStart(ctx, model.RunKindEnrich)
	defer func() { r.recordFinish(ctx, runID, runStatus(err), &summary) }()

	limiter := rate.NewLimiter(rate.Every(r.opts.Delay), 1)
	total := model.CountPeople(source)

	for _, company := range source {
		enrichedCompany := reconcile.UpsertCompany(&enriched, company)
		zap.L().Info("processing company", zap.String("company", company.Name))

		for _, person := range company.People {
			if r.opts.Limit > 0 && summary.Processed >= r.opts.Limit {
				zap.L().Info("person limit reached", zap.Int("limit", r.opts.Limit))
				// Company-level merges done since the last write still need
				// to land on disk.
				r.persist(enriched)
				return summary, nil
			}
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			enrichedPerson := reconcile.UpsertPerson(enrichedCompany, person)

			if !r.opts.Force && enrichedPerson.HasContactInfo() {
				summary.Skipped++
				zap.L().Debug("skipping already-enriched person",
					zap.String("person", person.Name),
					zap.String("company", company.Name),
				)
				continue
			}

			summary.Processed++
			zap.L().Info("enriching person",
				zap.Int("n", summary.Processed),
				zap.Int("total", total),
				zap.String("person", person.Name),
				zap.String("role", person.Role),
				zap.String("company", company.Name),
			)

			var res lookup.Result
			if expected, ok := role.Infer(person.Role); !ok {
				// A title outside the canonical role set can never be
				// confirmed, so the person counts as unmatched without
				// spending a lookup.
				zap.L().Info("no canonical role for title",
					zap.String("person", person.Name),
					zap.String("role", person.Role),
					zap.String("company", company.Name),
				)
			} else {
				var lookupErr error
				res, lookupErr = r.client.Lookup(ctx, lookup.Request{
					PersonName:   person.Name,
					CompanyName:  company.Name,
					ExpectedRole: expected,
				})
				if lookupErr != nil {
					// Transport failures are absorbed into "not matched".
					zap.L().Warn("lookup failed",
						zap.String("person", person.Name),
						zap.Error(lookupErr),
					)
					res = lookup.Result{}
				}
			}

			if !res.Matched && r.opts.StrictRole {
				// The person was upserted above so the same key locates
				// them for removal.
				if reconcile.RemovePerson(enrichedCompany, person.Name) {
					summary.Removed++
					zap.L().Info("removed person on unconfirmed role",
						zap.String("person", person.Name),
						zap.String("company", company.Name),
					)
				}
				r.persist(enriched)
				if err := limiter.Wait(ctx); err != nil {
					return summary, err
				}
				continue
			}

			reconcile.ApplyLookup(enrichedPerson, res)

			if res.PhoneNumber != nil || res.Email != nil || res.ApolloID != nil {
				summary.Found++
			} else {
				summary.NotFound++
			}

			r.persist(enriched)

			if err := limiter.Wait(ctx); err != nil {
				return summary, err
			}
		}
	}

	// Final write covers the all-skipped case, where company-level merges
	// may still have changed the collection.
	r.persist(enriched)

	zap.L().Info("enrichment complete",
		zap.Int("processed", summary.Processed),
		zap.Int("found", summary.Found),
		zap.Int("not_found", summary.NotFound),
		zap.Int("removed", summary.Removed),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// seed loads the previous snapshot for resume, degrading to a fresh deep
// copy of the source when the file is missing or malformed.
func (r *Runner) seed(source []model.Company) []model.Company {
	previous, err := snapshot.Load(r.opts.OutputPath)
	if err != nil {
		zap.L().Warn("previous output unreadable, starting fresh",
			zap.String("path", r.opts.OutputPath),
			zap.Error(err),
		)
		return model.CloneAll(source)
	}
	if previous == nil {
		return model.CloneAll(source)
	}

	zap.L().Info("resuming from previous output",
		zap.String("path", r.opts.OutputPath),
		zap.Int("companies", len(previous)),
	)
	return previous
}

// persist writes the full collection. A failed write is logged and the loop
// continues: the in-memory state stays correct and the next write catches up.
func (r *Runner) persist(enriched []model.Company) {
	if err := snapshot.Write(r.opts.OutputPath, enriched); err != nil {
		zap.L().Error("snapshot write failed",
			zap.String("path", r.opts.OutputPath),
			zap.Error(err),
		)
	}
}

func (r *Runner) recordStart(ctx context.Context, kind model.RunKind) string {
	if r.ledger == nil {
		return ""
	}
	run, err := r.ledger.CreateRun(ctx, kind, r.opts.InputPath, r.opts.OutputPath)
	if err != nil {
		zap.L().Warn("ledger: create run failed", zap.Error(err))
		return ""
	}
	return run.ID
}

func (r *Runner) recordFinish(ctx context.Context, runID string, status model.RunStatus, summary *model.RunSummary) {
	if r.ledger == nil || runID == "" {
		return
	}
	// The run record should land even when the batch was cancelled.
	ctx = context.WithoutCancel(ctx)
	if err := r.ledger.CompleteRun(ctx, runID, status, summary); err != nil {
		zap.L().Warn("ledger: complete run failed", zap.Error(err))
	}
}

// runStatus maps a Run return error to the recorded status. The only
// returned errors are cancellations; absorbed per-item failures stay
// complete.
func runStatus(err error) model.RunStatus {
	if err != nil {
		return model.RunStatusFailed
	}
	return model.RunStatusComplete
}
