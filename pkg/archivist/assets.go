package archivist

import (
	"context"
)

const (
	assetsSubpath = "v2"
	assetsLabel   = "assets"
)

// Assets manages assets.
//
//	asset, err := client.Assets().Create(ctx,
//	    []string{"RecordEvidence"},
//	    archivist.Attributes{"arc_display_name": "Radiation bag 1"},
//	    archivist.WithConfirmation(),
//	)
type Assets struct {
	endpoint *endpoint[Asset]
}

type assetRequest struct {
	Behaviours []string   `json:"behaviours"`
	Attributes Attributes `json:"attributes"`
}

// Create creates an asset with the given behaviours and attributes.
// arc_display_type controls how sharing policies group the asset, so set it
// with care.
func (a *Assets) Create(ctx context.Context, behaviours []string, attrs Attributes, opts ...CreateOption) (Asset, error) {
	o := applyCreateOptions(opts)
	if attrs == nil {
		attrs = Attributes{}
	}
	return a.endpoint.create(ctx, a.endpoint.collectionPath(), assetRequest{
		Behaviours: nonNil(behaviours),
		Attributes: attrs,
	}, o.confirm)
}

// CreateFromData creates an asset from a raw request body, e.g. one read
// from a YAML or JSON file.
func (a *Assets) CreateFromData(ctx context.Context, data map[string]any, opts ...CreateOption) (Asset, error) {
	o := applyCreateOptions(opts)
	return a.endpoint.create(ctx, a.endpoint.collectionPath(), data, o.confirm)
}

// Read reads an asset, e.g. "assets/xxxxxxxx".
func (a *Assets) Read(ctx context.Context, identity string) (Asset, error) {
	return a.endpoint.read(ctx, identity)
}

// Update patches the asset's attributes. Only the given keys change.
func (a *Assets) Update(ctx context.Context, identity string, attrs Attributes) (Asset, error) {
	return a.endpoint.update(ctx, identity, map[string]any{"attributes": attrs})
}

// Delete deletes an asset. The effect is server-defined.
func (a *Assets) Delete(ctx context.Context, identity string) (Asset, error) {
	return a.endpoint.delete(ctx, identity)
}

// Count counts assets whose properties match props and whose attributes
// match attrs.
func (a *Assets) Count(ctx context.Context, props Filter, attrs Attributes) (int, error) {
	return a.endpoint.count(ctx, a.endpoint.collectionPath(), assetsFilter(props, attrs))
}

// List lists assets whose properties match props and whose attributes match
// attrs.
func (a *Assets) List(props Filter, attrs Attributes, opts ...ListOption) *Cursor[Asset] {
	o := applyListOptions(opts)
	return a.endpoint.list(a.endpoint.collectionPath(), o.pageSize, assetsFilter(props, attrs))
}

// ReadBySignature returns the one asset matching props and attrs.
func (a *Assets) ReadBySignature(ctx context.Context, props Filter, attrs Attributes) (Asset, error) {
	return a.endpoint.readBySignature(ctx, a.endpoint.collectionPath(), assetsFilter(props, attrs))
}

// WaitForConfirmation blocks until the asset is CONFIRMED.
func (a *Assets) WaitForConfirmation(ctx context.Context, asset Asset) (Asset, error) {
	return waitForConfirmation(ctx, a.endpoint, asset)
}

func assetsFilter(props Filter, attrs Attributes) Filter {
	return mergeFilters(props, map[string]Attributes{"attributes": attrs})
}
