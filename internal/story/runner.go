package story

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"

	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

// defaultPolicyID is the policy removed by DELETE_COMPLIANCE when the step
// names none.
const defaultPolicyID = "policy 1"

// cleanupTimeout bounds policy deletion once the story has ended.
const cleanupTimeout = time.Minute

// Options configures a Runner.
type Options struct {
	// Out receives the story narrative. Defaults to io.Discard.
	Out io.Writer

	// Logger is optional.
	Logger hclog.Logger

	// Now and Sleep replace the wall clock in tests.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Runner executes stories. It remembers the records created so far so that
// later steps can refer to them by local id. A Runner is not safe for
// concurrent use.
type Runner struct {
	backend Backend
	out     io.Writer
	logger  hclog.Logger
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error

	assets   map[string]archivist.Asset
	events   []archivist.Event
	policies map[string]archivist.CompliancePolicy

	// policyOrder keeps creation order for cleanup.
	policyOrder []string
}

// NewRunner returns a Runner using backend.
func NewRunner(backend Backend, opts Options) *Runner {
	r := &Runner{
		backend:  backend,
		out:      opts.Out,
		logger:   opts.Logger,
		now:      opts.Now,
		sleep:    opts.Sleep,
		assets:   map[string]archivist.Asset{},
		policies: map[string]archivist.CompliancePolicy{},
	}
	if r.out == nil {
		r.out = io.Discard
	}
	if r.logger == nil {
		r.logger = hclog.NewNullLogger()
	}
	r.logger = r.logger.Named("story")
	if r.now == nil {
		r.now = time.Now
	}
	if r.sleep == nil {
		r.sleep = sleepContext
	}
	return r
}

// Events returns the events created so far.
func (r *Runner) Events() []archivist.Event {
	return r.events
}

// Run executes every operation of s in order, stopping at the first
// failure, and then deletes all policies the story created. Cleanup runs
// even when ctx has been cancelled. The returned error aggregates the
// failing operation and any cleanup failures.
func (r *Runner) Run(ctx context.Context, s *Story) error {
	var result *multierror.Error

	for i, step := range s.Operations {
		if err := r.runStep(ctx, step); err != nil {
			result = multierror.Append(result, fmt.Errorf("operation %d: %w", i+1, err))
			break
		}
	}

	r.println("Cleanup!")
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := r.deleteAllPolicies(cleanupCtx); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	op, err := step.Operation()
	if err != nil {
		return err
	}

	var common struct {
		ToPrint  string  `mapstructure:"to_print"`
		WaitTime float64 `mapstructure:"wait_time"`
	}
	if err := decodeArgs(step, &common); err != nil {
		return err
	}

	if common.ToPrint != "" {
		r.println(common.ToPrint)
	}
	if common.WaitTime > 0 {
		r.printf("Waiting for %v seconds\n", common.WaitTime)
		wait := time.Duration(common.WaitTime * float64(time.Second))
		if err := r.sleep(ctx, wait); err != nil {
			return err
		}
	}

	r.logger.Debug("running operation", "operation", op)

	switch op {
	case CreateAsset:
		err = r.createAsset(ctx, step)
	case CreateEvent:
		err = r.createEvent(ctx, step)
	case CreateCompliancePolicy:
		err = r.createPolicy(ctx, step)
	case CheckCompliance:
		err = r.checkCompliance(ctx, step)
	case DeleteCompliance:
		err = r.deleteCompliance(ctx, step)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.println("")
	return nil
}

func (r *Runner) createAsset(ctx context.Context, step Step) error {
	var args struct {
		AssetID    string         `mapstructure:"asset_id"`
		Behaviours []string       `mapstructure:"behaviours"`
		Attributes map[string]any `mapstructure:"attributes"`
	}
	if err := requireArgs(step, "asset_id", "attributes"); err != nil {
		return err
	}
	if err := decodeArgs(step, &args); err != nil {
		return err
	}

	asset, err := r.backend.CreateAsset(ctx, args.Behaviours, args.Attributes)
	if err != nil {
		return err
	}
	r.println("Asset Created!")
	r.logger.Info("asset created", "asset_id", args.AssetID, "identity", asset.Identity())

	r.assets[args.AssetID] = asset
	return nil
}

func (r *Runner) createEvent(ctx context.Context, step Step) error {
	var args struct {
		AssetID         string         `mapstructure:"asset_id"`
		Properties      map[string]any `mapstructure:"properties"`
		Attributes      map[string]any `mapstructure:"attributes"`
		AssetAttributes map[string]any `mapstructure:"asset_attributes"`
	}
	if err := requireArgs(step, "asset_id"); err != nil {
		return err
	}
	if err := decodeArgs(step, &args); err != nil {
		return err
	}

	asset, err := r.asset(args.AssetID)
	if err != nil {
		return err
	}

	event, err := r.backend.CreateEvent(ctx, asset.Identity(),
		args.Properties, args.Attributes, args.AssetAttributes)
	if err != nil {
		return err
	}
	r.println("Event created!")
	r.logger.Info("event created", "asset_id", args.AssetID, "identity", event.Identity())

	r.events = append(r.events, event)
	return nil
}

func (r *Runner) createPolicy(ctx context.Context, step Step) error {
	var args struct {
		PolicyID                string                   `mapstructure:"policy_id"`
		Description             string                   `mapstructure:"description"`
		DisplayName             string                   `mapstructure:"display_name"`
		AssetFilter             []archivist.FilterClause `mapstructure:"asset_filter"`
		PolicyType              string                   `mapstructure:"policy_type"`
		RichnessAssertions      []archivist.FilterClause `mapstructure:"richness_assertions"`
		EventDisplayType        string                   `mapstructure:"event_display_type"`
		ClosingEventDisplayType string                   `mapstructure:"closing_event_display_type"`
		TimePeriodSeconds       int64                    `mapstructure:"time_period_seconds"`
		DynamicWindow           int64                    `mapstructure:"dynamic_window"`
		DynamicVariability      float64                  `mapstructure:"dynamic_variability"`
	}
	if err := requireArgs(step, "policy_id", "description", "display_name", "asset_filter", "policy_type"); err != nil {
		return err
	}
	if err := decodeArgs(step, &args); err != nil {
		return err
	}

	policyType, err := archivist.ParsePolicyType(args.PolicyType)
	if err != nil {
		return err
	}

	policy, err := r.backend.CreatePolicy(ctx, archivist.PolicyRequest{
		ComplianceType:          policyType,
		Description:             args.Description,
		DisplayName:             args.DisplayName,
		AssetFilter:             args.AssetFilter,
		EventDisplayType:        args.EventDisplayType,
		ClosingEventDisplayType: args.ClosingEventDisplayType,
		TimePeriodSeconds:       args.TimePeriodSeconds,
		DynamicWindow:           args.DynamicWindow,
		DynamicVariability:      args.DynamicVariability,
		RichnessAssertions:      args.RichnessAssertions,
	})
	if err != nil {
		return err
	}
	r.println("Policy Created!")
	r.logger.Info("policy created", "policy_id", args.PolicyID, "identity", policy.Identity())

	if _, ok := r.policies[args.PolicyID]; !ok {
		r.policyOrder = append(r.policyOrder, args.PolicyID)
	}
	r.policies[args.PolicyID] = policy
	return nil
}

func (r *Runner) checkCompliance(ctx context.Context, step Step) error {
	var args struct {
		AssetID    string  `mapstructure:"asset_id"`
		SecondsAgo float64 `mapstructure:"seconds_ago"`
	}
	if err := requireArgs(step, "asset_id"); err != nil {
		return err
	}
	if err := decodeArgs(step, &args); err != nil {
		return err
	}

	asset, err := r.asset(args.AssetID)
	if err != nil {
		return err
	}

	var at time.Time
	if args.SecondsAgo > 0 {
		at = r.now().Add(-time.Duration(args.SecondsAgo * float64(time.Second)))
	}

	compliance, err := r.backend.ReadCompliance(ctx, asset.Identity(), at)
	if err != nil {
		return err
	}
	r.printf("Compliance: %t\n", compliance.Compliant())

	for _, outcome := range compliance.Outcomes() {
		if outcome.Reason == "" {
			continue
		}
		policy, err := r.backend.ReadPolicy(ctx, outcome.PolicyIdentity)
		if err != nil {
			return err
		}
		r.printf("\tPolicy: %s. Reason: %s\n", policy.Name(), outcome.Reason)
	}
	return nil
}

func (r *Runner) deleteCompliance(ctx context.Context, step Step) error {
	var args struct {
		PolicyID string `mapstructure:"policy_id"`
	}
	if err := decodeArgs(step, &args); err != nil {
		return err
	}
	if args.PolicyID == "" {
		args.PolicyID = defaultPolicyID
	}
	return r.deletePolicy(ctx, args.PolicyID)
}

func (r *Runner) deletePolicy(ctx context.Context, policyID string) error {
	policy, ok := r.policies[policyID]
	if !ok {
		return fmt.Errorf("unknown policy_id %q", policyID)
	}
	if err := r.backend.DeletePolicy(ctx, policy.Identity()); err != nil {
		return err
	}
	r.println("Policy Deleted!")
	r.logger.Info("policy deleted", "policy_id", policyID, "identity", policy.Identity())

	delete(r.policies, policyID)
	return nil
}

// deleteAllPolicies tries every remaining policy even if some fail.
func (r *Runner) deleteAllPolicies(ctx context.Context) error {
	var result *multierror.Error
	for _, id := range r.policyOrder {
		if _, ok := r.policies[id]; !ok {
			continue
		}
		if err := r.deletePolicy(ctx, id); err != nil {
			result = multierror.Append(result, fmt.Errorf("error deleting policy %q: %w", id, err))
		}
	}
	r.policyOrder = nil
	return result.ErrorOrNil()
}

func (r *Runner) asset(assetID string) (archivist.Asset, error) {
	asset, ok := r.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("unknown asset_id %q", assetID)
	}
	return asset, nil
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *Runner) printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// requireArgs fails for the first key missing from step.
func requireArgs(step Step, keys ...string) error {
	for _, k := range keys {
		if _, ok := step[k]; !ok {
			return fmt.Errorf("missing required argument %q", k)
		}
	}
	return nil
}

// decodeArgs decodes the step into out. Scalars are weakly typed so that
// wait_time: "10" and wait_time: 10 are equivalent.
func decodeArgs(step Step, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any(step)); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
