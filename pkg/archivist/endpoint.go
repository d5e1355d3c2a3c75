package archivist

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// endpoint implements the create/read/update/delete/count/list shape shared
// by every resource type. Collection operations address
// <subpath>/<label>; record operations address <subpath>/<identity>.
type endpoint[T ~map[string]any] struct {
	client  *Client
	subpath string
	label   string
}

func newEndpoint[T ~map[string]any](c *Client, subpath, label string) *endpoint[T] {
	return &endpoint[T]{client: c, subpath: subpath, label: label}
}

func (e *endpoint[T]) collectionPath() string {
	return e.subpath + "/" + e.label
}

func (e *endpoint[T]) recordPath(identity string) string {
	return e.subpath + "/" + identity
}

// create POSTs body to path and optionally waits for confirmation.
func (e *endpoint[T]) create(ctx context.Context, path string, body any, confirm bool) (T, error) {
	op := e.label + ".create"
	resp, err := e.client.do(ctx, op, http.MethodPost, path, nil, body, nil)
	if err != nil {
		return nil, err
	}
	record, err := decodeRecord[T](op, resp)
	if err != nil {
		return nil, err
	}
	if !confirm {
		return record, nil
	}
	return waitForConfirmation(ctx, e, record)
}

// read fetches a single record by identity.
func (e *endpoint[T]) read(ctx context.Context, identity string) (T, error) {
	op := e.label + ".read"
	if identity == "" {
		return nil, &Error{Op: op, Err: ErrBadRequest, Msg: "identity is required"}
	}
	resp, err := e.client.do(ctx, op, http.MethodGet, e.recordPath(identity), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](op, resp)
}

// update PATCHes only the supplied fields.
func (e *endpoint[T]) update(ctx context.Context, identity string, fields any) (T, error) {
	op := e.label + ".update"
	if identity == "" {
		return nil, &Error{Op: op, Err: ErrBadRequest, Msg: "identity is required"}
	}
	resp, err := e.client.do(ctx, op, http.MethodPatch, e.recordPath(identity), nil, fields, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](op, resp)
}

// delete issues a DELETE and returns whatever body the server sent,
// possibly an empty record.
func (e *endpoint[T]) delete(ctx context.Context, identity string) (T, error) {
	op := e.label + ".delete"
	if identity == "" {
		return nil, &Error{Op: op, Err: ErrBadRequest, Msg: "identity is required"}
	}
	resp, err := e.client.do(ctx, op, http.MethodDelete, e.recordPath(identity), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord[T](op, resp)
}

// count asks for a single-record page and reads the total from the
// response header instead of counting items.
func (e *endpoint[T]) count(ctx context.Context, path string, filter Filter) (int, error) {
	op := e.label + ".count"
	header := http.Header{}
	header.Set(HeaderRequestTotalCount, "true")

	resp, err := e.client.do(ctx, op, http.MethodGet, path, newQuery(1, "", filter), nil, header)
	if err != nil {
		return 0, err
	}

	raw := resp.header.Get(HeaderTotalCount)
	if raw == "" {
		return 0, &Error{Op: op, StatusCode: resp.status, Err: ErrArchivist,
			Msg: fmt.Sprintf("response has no %s header", HeaderTotalCount)}
	}
	total, err := strconv.Atoi(raw)
	if err != nil || total < 0 {
		return 0, &Error{Op: op, StatusCode: resp.status, Err: ErrArchivist,
			Msg: fmt.Sprintf("invalid %s header %q", HeaderTotalCount, raw)}
	}
	return total, nil
}

// list returns a lazy cursor over path.
func (e *endpoint[T]) list(path string, pageSize int, filter Filter) *Cursor[T] {
	return newCursor[T](e.client, e.label+".list", path, e.label, pageSize, filter)
}

// readBySignature returns the single record matching filter. Two records
// are requested so that duplicates can be detected.
func (e *endpoint[T]) readBySignature(ctx context.Context, path string, filter Filter) (T, error) {
	op := e.label + ".read_by_signature"
	page, err := newCursor[T](e.client, op, path, e.label, 2, filter).NextPage(ctx)
	if err != nil {
		return nil, err
	}
	switch len(page) {
	case 0:
		return nil, &Error{Op: op, Err: ErrNotFound, Msg: "no " + e.label + " match the signature"}
	case 1:
		return page[0], nil
	default:
		return nil, &Error{Op: op, Err: ErrDuplicate, Msg: "more than one " + e.label + " match the signature"}
	}
}

// ListOption configures a List call.
type ListOption func(*listOptions)

type listOptions struct {
	pageSize int
}

// WithPageSize overrides the configured page size for one List call.
func WithPageSize(n int) ListOption {
	return func(o *listOptions) {
		o.pageSize = n
	}
}

func applyListOptions(opts []ListOption) listOptions {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CreateOption configures a Create call.
type CreateOption func(*createOptions)

type createOptions struct {
	confirm bool
}

// WithConfirmation makes Create block until the new record reaches a
// terminal confirmation status or Config.ConfirmTimeout elapses.
func WithConfirmation() CreateOption {
	return func(o *createOptions) {
		o.confirm = true
	}
}

func applyCreateOptions(opts []CreateOption) createOptions {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
