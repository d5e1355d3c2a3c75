package archivist

import (
	"context"
	"strings"
)

const (
	eventsSubpath = "v2"
	eventsLabel   = "events"

	// AllAssets selects events of every asset in List and Count.
	AllAssets = "assets/-"
)

// Events manages events. Events live under their asset, so collection
// operations take the asset identity.
type Events struct {
	endpoint *endpoint[Event]
}

// EventProperties are the top-level fields of an event request, such as
// operation, behaviour, timestamp_declared and principal_declared.
type EventProperties map[string]any

// Create records an event against assetIdentity. props are sent as top
// level fields, attrs as event_attributes and assetAttrs as
// asset_attributes.
func (e *Events) Create(ctx context.Context, assetIdentity string, props EventProperties, attrs, assetAttrs Attributes, opts ...CreateOption) (Event, error) {
	o := applyCreateOptions(opts)
	if assetIdentity == "" {
		return nil, &Error{Op: eventsLabel + ".create", Err: ErrBadRequest, Msg: "asset identity is required"}
	}

	body := make(map[string]any, len(props)+2)
	for k, v := range props {
		body[k] = v
	}
	if attrs == nil {
		attrs = Attributes{}
	}
	body["event_attributes"] = attrs
	if len(assetAttrs) > 0 {
		body["asset_attributes"] = assetAttrs
	}

	return e.endpoint.create(ctx, eventsCollection(assetIdentity), body, o.confirm)
}

// Read reads an event, e.g. "assets/xxxxxxxx/events/yyyyyyyy".
func (e *Events) Read(ctx context.Context, identity string) (Event, error) {
	return e.endpoint.read(ctx, identity)
}

// Update patches the event's attributes.
func (e *Events) Update(ctx context.Context, identity string, attrs Attributes) (Event, error) {
	return e.endpoint.update(ctx, identity, map[string]any{"event_attributes": attrs})
}

// Delete deletes an event. The effect is server-defined.
func (e *Events) Delete(ctx context.Context, identity string) (Event, error) {
	return e.endpoint.delete(ctx, identity)
}

// EventsQuery selects events for List, Count and ReadBySignature.
type EventsQuery struct {
	// AssetIdentity restricts the query to one asset. Empty means AllAssets.
	AssetIdentity   string
	Props           Filter
	Attrs           Attributes
	AssetAttributes Attributes
}

func (q EventsQuery) path() string {
	asset := q.AssetIdentity
	if asset == "" {
		asset = AllAssets
	}
	return eventsCollection(asset)
}

func (q EventsQuery) filter() Filter {
	return mergeFilters(q.Props, map[string]Attributes{
		"event_attributes": q.Attrs,
		"asset_attributes": q.AssetAttributes,
	})
}

// Count counts events matching q.
func (e *Events) Count(ctx context.Context, q EventsQuery) (int, error) {
	return e.endpoint.count(ctx, q.path(), q.filter())
}

// List lists events matching q.
func (e *Events) List(q EventsQuery, opts ...ListOption) *Cursor[Event] {
	o := applyListOptions(opts)
	return e.endpoint.list(q.path(), o.pageSize, q.filter())
}

// ReadBySignature returns the one event matching q.
func (e *Events) ReadBySignature(ctx context.Context, q EventsQuery) (Event, error) {
	return e.endpoint.readBySignature(ctx, q.path(), q.filter())
}

// WaitForConfirmation blocks until the event is CONFIRMED.
func (e *Events) WaitForConfirmation(ctx context.Context, event Event) (Event, error) {
	return waitForConfirmation(ctx, e.endpoint, event)
}

func eventsCollection(assetIdentity string) string {
	return eventsSubpath + "/" + strings.Trim(assetIdentity, "/") + "/" + eventsLabel
}
