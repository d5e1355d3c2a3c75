package archivist

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompliance_Read(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"compliant": false,
			"compliance": []any{
				map[string]any{
					"compliance_policy_identity": "compliance_policies/1",
					"compliant":                  true,
					"reason":                     "",
				},
				map[string]any{
					"compliance_policy_identity": "compliance_policies/2",
					"compliant":                  false,
					"reason":                     "No events found",
				},
			},
		})
	})

	ctx := context.Background()
	at := time.Date(2021, 3, 4, 10, 30, 0, 0, time.FixedZone("CET", 3600))

	compliance, err := client.Compliance().Read(ctx, assetIdentity, at)
	require.NoError(t, err)
	assert.False(t, compliance.Compliant())
	assert.Equal(t, []PolicyOutcome{
		{PolicyIdentity: "compliance_policies/1", Compliant: true},
		{PolicyIdentity: "compliance_policies/2", Compliant: false, Reason: "No events found"},
	}, compliance.Outcomes())

	_, err = client.Compliance().Read(ctx, assetIdentity, time.Time{})
	require.NoError(t, err)

	reqs := rec.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/archivist/v1/compliance/"+assetIdentity, reqs[0].Path)
	assert.Equal(t, "compliant_at=2021-03-04T09%3A30%3A00Z", reqs[0].RawQuery)
	assert.Empty(t, reqs[1].RawQuery, "zero time means now")
}

func TestCompliance_ReadRequiresAsset(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.Compliance().Read(context.Background(), "", time.Time{})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Empty(t, rec.all())
}

func sincePolicy() PolicyRequest {
	return PolicyRequest{
		ComplianceType:    PolicySince,
		Description:       "Maintenance should be performed every 72 hours",
		DisplayName:       "Maintenance Performed",
		AssetFilter:       []FilterClause{{Or: []string{"attributes.arc_display_type=Traffic light"}}},
		EventDisplayType:  "Maintenance Performed",
		TimePeriodSeconds: 72 * 60 * 60,
	}
}

func TestPolicyRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*PolicyRequest)
		errorMsg string
	}{
		{name: "valid since", mutate: func(*PolicyRequest) {}},
		{
			name:     "missing display name",
			mutate:   func(r *PolicyRequest) { r.DisplayName = "" },
			errorMsg: "display_name",
		},
		{
			name:     "missing asset filter",
			mutate:   func(r *PolicyRequest) { r.AssetFilter = nil },
			errorMsg: "asset_filter",
		},
		{
			name:     "since without period",
			mutate:   func(r *PolicyRequest) { r.TimePeriodSeconds = 0 },
			errorMsg: "time_period_seconds",
		},
		{
			name:     "unknown type",
			mutate:   func(r *PolicyRequest) { r.ComplianceType = "COMPLIANCE_BOGUS" },
			errorMsg: "compliance_type",
		},
		{
			name: "dynamic tolerance without window",
			mutate: func(r *PolicyRequest) {
				r.ComplianceType = PolicyDynamicTolerance
				r.DynamicVariability = 0.5
			},
			errorMsg: "dynamic_window",
		},
		{
			name: "valid dynamic tolerance",
			mutate: func(r *PolicyRequest) {
				r.ComplianceType = PolicyDynamicTolerance
				r.DynamicWindow = 86400
				r.DynamicVariability = 0.5
			},
		},
		{
			name: "richness without assertions",
			mutate: func(r *PolicyRequest) {
				r.ComplianceType = PolicyRichness
				r.EventDisplayType = ""
			},
			errorMsg: "richness_assertions",
		},
		{
			name: "valid richness",
			mutate: func(r *PolicyRequest) {
				r.ComplianceType = PolicyRichness
				r.EventDisplayType = ""
				r.RichnessAssertions = []FilterClause{{Or: []string{"radiation_level<7"}}}
			},
		},
		{
			name: "current outstanding needs event type",
			mutate: func(r *PolicyRequest) {
				r.ComplianceType = PolicyCurrentOutstanding
				r.EventDisplayType = ""
				r.ClosingEventDisplayType = "Maintenance Performed"
			},
			errorMsg: "event_display_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sincePolicy()
			tt.mutate(&req)

			err := req.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestCompliancePolicies_Create(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"identity":     "compliance_policies/xxxxxxxx",
			"display_name": "Maintenance Performed",
		})
	})

	policy, err := client.CompliancePolicies().Create(context.Background(), sincePolicy())
	require.NoError(t, err)
	assert.Equal(t, "compliance_policies/xxxxxxxx", policy.Identity())
	assert.Equal(t, "Maintenance Performed", policy.Name())

	reqs := rec.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/archivist/v1/compliance_policies", reqs[0].Path)
	assert.JSONEq(t, `{
		"compliance_type": "COMPLIANCE_SINCE",
		"description": "Maintenance should be performed every 72 hours",
		"display_name": "Maintenance Performed",
		"asset_filter": [{"or": ["attributes.arc_display_type=Traffic light"]}],
		"event_display_type": "Maintenance Performed",
		"closing_event_display_type": "",
		"time_period_seconds": 259200,
		"dynamic_window": 0,
		"dynamic_variability": 0
	}`, string(reqs[0].Body))
}

func TestCompliancePolicies_CreateInvalid(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		w.WriteHeader(http.StatusOK)
	})

	req := sincePolicy()
	req.TimePeriodSeconds = 0

	_, err := client.CompliancePolicies().Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Empty(t, rec.all(), "invalid policies are rejected locally")
}

func TestCompliancePolicies_ListAndDelete(t *testing.T) {
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request, _ recordedRequest) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusOK)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"compliance_policies": []any{map[string]any{"identity": "compliance_policies/1"}},
		})
	})

	ctx := context.Background()
	policies, err := client.CompliancePolicies().List(
		Filter{"compliance_type": string(PolicyDynamicTolerance)}, WithPageSize(10)).Collect(ctx)
	require.NoError(t, err)
	require.Len(t, policies, 1)

	deleted, err := client.CompliancePolicies().Delete(ctx, policies[0].Identity())
	require.NoError(t, err)
	assert.Empty(t, deleted)

	reqs := rec.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, "page_size=10&compliance_type=COMPLIANCE_DYNAMIC_TOLERANCE", reqs[0].RawQuery)
	assert.Equal(t, "/archivist/v1/compliance_policies/1", reqs[1].Path)
}

func TestParsePolicyType(t *testing.T) {
	for _, pt := range PolicyTypes {
		got, err := ParsePolicyType(string(pt))
		require.NoError(t, err)
		assert.Equal(t, pt, got)
	}

	_, err := ParsePolicyType("COMPLIANCE_NOPE")
	assert.Error(t, err)
}
