package story

import (
	"context"
	"time"

	"github.com/jitsuin-inc/archivist-go/pkg/archivist"
)

// Backend is the subset of the Archivist API a story uses.
type Backend interface {
	CreateAsset(ctx context.Context, behaviours []string, attrs archivist.Attributes) (archivist.Asset, error)
	CreateEvent(ctx context.Context, assetIdentity string, props archivist.EventProperties, attrs, assetAttrs archivist.Attributes) (archivist.Event, error)
	CreatePolicy(ctx context.Context, req archivist.PolicyRequest) (archivist.CompliancePolicy, error)
	ReadPolicy(ctx context.Context, identity string) (archivist.CompliancePolicy, error)
	DeletePolicy(ctx context.Context, identity string) error
	ReadCompliance(ctx context.Context, assetIdentity string, at time.Time) (archivist.Compliance, error)
}

// clientBackend runs a story against a live client. Assets and events are
// created with confirmation so later steps see them on the ledger.
type clientBackend struct {
	client *archivist.Client
}

// NewBackend returns a Backend backed by client.
func NewBackend(client *archivist.Client) Backend {
	return &clientBackend{client: client}
}

func (b *clientBackend) CreateAsset(ctx context.Context, behaviours []string, attrs archivist.Attributes) (archivist.Asset, error) {
	return b.client.Assets().Create(ctx, behaviours, attrs, archivist.WithConfirmation())
}

func (b *clientBackend) CreateEvent(ctx context.Context, assetIdentity string, props archivist.EventProperties, attrs, assetAttrs archivist.Attributes) (archivist.Event, error) {
	return b.client.Events().Create(ctx, assetIdentity, props, attrs, assetAttrs, archivist.WithConfirmation())
}

func (b *clientBackend) CreatePolicy(ctx context.Context, req archivist.PolicyRequest) (archivist.CompliancePolicy, error) {
	return b.client.CompliancePolicies().Create(ctx, req)
}

func (b *clientBackend) ReadPolicy(ctx context.Context, identity string) (archivist.CompliancePolicy, error) {
	return b.client.CompliancePolicies().Read(ctx, identity)
}

func (b *clientBackend) DeletePolicy(ctx context.Context, identity string) error {
	_, err := b.client.CompliancePolicies().Delete(ctx, identity)
	return err
}

func (b *clientBackend) ReadCompliance(ctx context.Context, assetIdentity string, at time.Time) (archivist.Compliance, error) {
	return b.client.Compliance().Read(ctx, assetIdentity, at)
}
