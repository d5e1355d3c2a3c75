package archivist

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	compliancePoliciesSubpath = "v1"
	compliancePoliciesLabel   = "compliance_policies"
)

// PolicyType is the kind of a compliance policy. It is sent by name.
type PolicyType string

const (
	PolicyTypeUndefined      PolicyType = "COMPLIANCE_TYPE_UNDEFINED"
	PolicySince              PolicyType = "COMPLIANCE_SINCE"
	PolicyCurrentOutstanding PolicyType = "COMPLIANCE_CURRENT_OUTSTANDING"
	PolicyPeriodOutstanding  PolicyType = "COMPLIANCE_PERIOD_OUTSTANDING"
	PolicyDynamicTolerance   PolicyType = "COMPLIANCE_DYNAMIC_TOLERANCE"
	PolicyRichness           PolicyType = "COMPLIANCE_RICHNESS"
)

// PolicyTypes lists every known policy type.
var PolicyTypes = []PolicyType{
	PolicyTypeUndefined,
	PolicySince,
	PolicyCurrentOutstanding,
	PolicyPeriodOutstanding,
	PolicyDynamicTolerance,
	PolicyRichness,
}

// ParsePolicyType returns the PolicyType called name.
func ParsePolicyType(name string) (PolicyType, error) {
	for _, t := range PolicyTypes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown compliance policy type %q", name)
}

// FilterClause is one element of an asset_filter or richness_assertions
// list, e.g. {"or": ["attributes.arc_display_type=Door"]}.
type FilterClause struct {
	Or []string `json:"or"`
}

// PolicyRequest is the body of a compliance policy create request.
type PolicyRequest struct {
	ComplianceType          PolicyType     `json:"compliance_type"`
	Description             string         `json:"description"`
	DisplayName             string         `json:"display_name"`
	AssetFilter             []FilterClause `json:"asset_filter"`
	EventDisplayType        string         `json:"event_display_type"`
	ClosingEventDisplayType string         `json:"closing_event_display_type"`
	TimePeriodSeconds       int64          `json:"time_period_seconds"`
	DynamicWindow           int64          `json:"dynamic_window"`
	DynamicVariability      float64        `json:"dynamic_variability"`
	RichnessAssertions      []FilterClause `json:"richness_assertions,omitempty"`
}

// Validate checks the fields each policy type requires.
func (r PolicyRequest) Validate() error {
	if r.ComplianceType == "" {
		r.ComplianceType = PolicyTypeUndefined
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.ComplianceType, validation.In(policyTypesAny()...)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.DisplayName, validation.Required),
		validation.Field(&r.AssetFilter, validation.Required),
		validation.Field(&r.RichnessAssertions,
			validation.When(r.ComplianceType == PolicyRichness, validation.Required)),
		validation.Field(&r.TimePeriodSeconds,
			validation.When(r.ComplianceType == PolicySince || r.ComplianceType == PolicyPeriodOutstanding,
				validation.Required, validation.Min(int64(1)))),
		validation.Field(&r.EventDisplayType,
			validation.When(r.ComplianceType != PolicyRichness && r.ComplianceType != PolicyTypeUndefined,
				validation.Required)),
		validation.Field(&r.DynamicWindow,
			validation.When(r.ComplianceType == PolicyDynamicTolerance, validation.Required, validation.Min(int64(1)))),
		validation.Field(&r.DynamicVariability,
			validation.When(r.ComplianceType == PolicyDynamicTolerance, validation.Required)),
	)
}

func policyTypesAny() []interface{} {
	out := make([]interface{}, len(PolicyTypes))
	for i, t := range PolicyTypes {
		out[i] = t
	}
	return out
}

// CompliancePolicies manages compliance policies.
type CompliancePolicies struct {
	endpoint *endpoint[CompliancePolicy]
}

// Create validates req and creates the policy.
func (p *CompliancePolicies) Create(ctx context.Context, req PolicyRequest) (CompliancePolicy, error) {
	if req.ComplianceType == "" {
		req.ComplianceType = PolicyTypeUndefined
	}
	if err := req.Validate(); err != nil {
		return nil, &Error{Op: compliancePoliciesLabel + ".create", Err: ErrBadRequest, Msg: err.Error()}
	}
	return p.endpoint.create(ctx, p.endpoint.collectionPath(), req, false)
}

// CreateFromData creates a policy from a raw request body, e.g. one read
// from a YAML or JSON file. No client-side validation is done.
func (p *CompliancePolicies) CreateFromData(ctx context.Context, data map[string]any) (CompliancePolicy, error) {
	return p.endpoint.create(ctx, p.endpoint.collectionPath(), data, false)
}

// Read reads a policy, e.g. "compliance_policies/xxxxxxxx".
func (p *CompliancePolicies) Read(ctx context.Context, identity string) (CompliancePolicy, error) {
	return p.endpoint.read(ctx, identity)
}

// Delete deletes a policy.
func (p *CompliancePolicies) Delete(ctx context.Context, identity string) (CompliancePolicy, error) {
	return p.endpoint.delete(ctx, identity)
}

// Count counts policies matching filter, e.g. {"display_name": "foo"}.
func (p *CompliancePolicies) Count(ctx context.Context, filter Filter) (int, error) {
	return p.endpoint.count(ctx, p.endpoint.collectionPath(), filter)
}

// List lists policies matching filter, e.g.
// {"compliance_type": "COMPLIANCE_DYNAMIC_TOLERANCE"}.
func (p *CompliancePolicies) List(filter Filter, opts ...ListOption) *Cursor[CompliancePolicy] {
	o := applyListOptions(opts)
	return p.endpoint.list(p.endpoint.collectionPath(), o.pageSize, filter)
}

// ReadBySignature returns the one policy matching filter.
func (p *CompliancePolicies) ReadBySignature(ctx context.Context, filter Filter) (CompliancePolicy, error) {
	return p.endpoint.readBySignature(ctx, p.endpoint.collectionPath(), filter)
}
