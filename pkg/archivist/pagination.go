package archivist

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
)

// Cursor lazily fetches pages of records from a list endpoint. Each call
// to NextPage issues one GET; only the absence of a continuation token
// ends the sequence, so a short page does not.
//
// A Cursor is forward-only, cannot be restarted and is not safe for
// concurrent use.
type Cursor[T ~map[string]any] struct {
	client   *Client
	op       string
	path     string
	label    string
	pageSize int
	filter   Filter

	token string
	done  bool
	pages int
}

func newCursor[T ~map[string]any](client *Client, op, path, label string, pageSize int, filter Filter) *Cursor[T] {
	if pageSize <= 0 {
		pageSize = client.config.PageSize
	}
	return &Cursor[T]{
		client:   client,
		op:       op,
		path:     path,
		label:    label,
		pageSize: pageSize,
		filter:   filter,
	}
}

// Done reports whether the last page has been fetched.
func (c *Cursor[T]) Done() bool {
	return c.done
}

// NextPage fetches the next page. It returns nil, nil once the sequence is
// exhausted. After an error the cursor stops.
func (c *Cursor[T]) NextPage(ctx context.Context) ([]T, error) {
	if c.done {
		return nil, nil
	}

	q := newQuery(c.pageSize, c.token, c.filter)
	resp, err := c.client.do(ctx, c.op, http.MethodGet, c.path, q, nil, nil)
	if err != nil {
		c.done = true
		return nil, err
	}

	var page map[string]json.RawMessage
	if err := json.Unmarshal(resp.body, &page); err != nil {
		c.done = true
		return nil, &Error{Op: c.op, StatusCode: resp.status, Body: resp.body, Err: ErrArchivist,
			Msg: fmt.Sprintf("failed to decode page: %v", err)}
	}

	var items []T
	if raw, ok := page[c.label]; ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			c.done = true
			return nil, &Error{Op: c.op, StatusCode: resp.status, Body: resp.body, Err: ErrArchivist,
				Msg: fmt.Sprintf("failed to decode %s: %v", c.label, err)}
		}
	}

	c.pages++
	c.token = nextPageToken(resp.header, page)
	if c.token == "" {
		c.done = true
	}

	c.client.logger.Trace("fetched page",
		"op", c.op,
		"page", c.pages,
		"items", len(items),
		"more", !c.done,
	)

	if items == nil {
		items = []T{}
	}
	return items, nil
}

// All yields every remaining record across pages, fetching lazily. Iteration
// stops after the first error, which is yielded with a nil record.
func (c *Cursor[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for !c.done {
			items, err := c.NextPage(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// Collect fetches all remaining pages and returns all records concatenated.
func (c *Cursor[T]) Collect(ctx context.Context) ([]T, error) {
	all := []T{}
	for record, err := range c.All(ctx) {
		if err != nil {
			return all, err
		}
		all = append(all, record)
	}
	return all, nil
}

// nextPageToken prefers the header and falls back to the body field.
func nextPageToken(header http.Header, page map[string]json.RawMessage) string {
	if token := header.Get(HeaderNextPageToken); token != "" {
		return token
	}
	raw, ok := page["next_page_token"]
	if !ok {
		return ""
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return ""
	}
	return token
}
