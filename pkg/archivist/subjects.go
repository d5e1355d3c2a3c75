package archivist

import (
	"context"
)

const (
	subjectsSubpath = "v2/subjects"
	subjectsLabel   = "subjects"
)

// Subjects manages subjects: the parties (wallets and ledger nodes) that
// records are shared with.
type Subjects struct {
	endpoint *endpoint[Subject]
}

// SubjectUpdate holds the fields to change on a subject. Zero-valued
// fields are omitted from the request and left untouched by the server.
// The key lists are pointers so that an empty list clears the keys.
type SubjectUpdate struct {
	DisplayName    string    `json:"display_name,omitempty"`
	WalletPubKeys  *[]string `json:"wallet_pub_key,omitempty"`
	TesseraPubKeys *[]string `json:"tessera_pub_key,omitempty"`
}

type subjectRequest struct {
	DisplayName    string   `json:"display_name"`
	WalletPubKeys  []string `json:"wallet_pub_key"`
	TesseraPubKeys []string `json:"tessera_pub_key"`
}

// Create creates a subject.
func (s *Subjects) Create(ctx context.Context, displayName string, walletPubKeys, tesseraPubKeys []string, opts ...CreateOption) (Subject, error) {
	o := applyCreateOptions(opts)
	return s.endpoint.create(ctx, s.endpoint.collectionPath(), subjectRequest{
		DisplayName:    displayName,
		WalletPubKeys:  nonNil(walletPubKeys),
		TesseraPubKeys: nonNil(tesseraPubKeys),
	}, o.confirm)
}

// Read reads a subject, e.g. "subjects/xxxxxxxx".
func (s *Subjects) Read(ctx context.Context, identity string) (Subject, error) {
	return s.endpoint.read(ctx, identity)
}

// Update changes the non-zero fields of update.
func (s *Subjects) Update(ctx context.Context, identity string, update SubjectUpdate) (Subject, error) {
	return s.endpoint.update(ctx, identity, update)
}

// Delete deletes a subject.
func (s *Subjects) Delete(ctx context.Context, identity string) (Subject, error) {
	return s.endpoint.delete(ctx, identity)
}

// Count counts subjects matching filter, e.g. {"display_name": "foo"}.
func (s *Subjects) Count(ctx context.Context, filter Filter) (int, error) {
	return s.endpoint.count(ctx, s.endpoint.collectionPath(), filter)
}

// List lists subjects matching filter.
func (s *Subjects) List(filter Filter, opts ...ListOption) *Cursor[Subject] {
	o := applyListOptions(opts)
	return s.endpoint.list(s.endpoint.collectionPath(), o.pageSize, filter)
}

// ReadBySignature returns the one subject matching filter.
func (s *Subjects) ReadBySignature(ctx context.Context, filter Filter) (Subject, error) {
	return s.endpoint.readBySignature(ctx, s.endpoint.collectionPath(), filter)
}

// WaitForConfirmation blocks until the subject is CONFIRMED.
func (s *Subjects) WaitForConfirmation(ctx context.Context, subject Subject) (Subject, error) {
	return waitForConfirmation(ctx, s.endpoint, subject)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
