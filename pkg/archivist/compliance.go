package archivist

import (
	"context"
	"net/http"
	"time"
)

const (
	complianceSubpath = "v1"
	complianceLabel   = "compliance"
)

// Compliance is the compliance report of one asset.
type Compliance map[string]any

// Compliant reports the overall outcome.
func (c Compliance) Compliant() bool {
	ok, _ := c["compliant"].(bool)
	return ok
}

// PolicyOutcome is the result of evaluating one policy against an asset.
type PolicyOutcome struct {
	PolicyIdentity string
	Compliant      bool
	Reason         string
}

// Outcomes returns the per-policy results.
func (c Compliance) Outcomes() []PolicyOutcome {
	raw, _ := c["compliance"].([]any)
	outcomes := make([]PolicyOutcome, 0, len(raw))
	for _, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		var o PolicyOutcome
		o.PolicyIdentity, _ = m["compliance_policy_identity"].(string)
		o.Compliant, _ = m["compliant"].(bool)
		o.Reason, _ = m["reason"].(string)
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// ComplianceClient reads asset compliance.
type ComplianceClient struct {
	client *Client
}

// Read returns the compliance of the asset at compliantAt, or now when
// compliantAt is zero.
func (c *ComplianceClient) Read(ctx context.Context, assetIdentity string, compliantAt time.Time) (Compliance, error) {
	op := complianceLabel + ".read"
	if assetIdentity == "" {
		return nil, &Error{Op: op, Err: ErrBadRequest, Msg: "asset identity is required"}
	}

	var q query
	if !compliantAt.IsZero() {
		q = query{{"compliant_at", compliantAt.UTC().Format(time.RFC3339)}}
	}

	path := complianceSubpath + "/" + complianceLabel + "/" + assetIdentity
	resp, err := c.client.do(ctx, op, http.MethodGet, path, q, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[Compliance](op, resp)
}
