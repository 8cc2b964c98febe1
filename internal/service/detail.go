package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/samandr77/docflow/internal/entity"
)

type DocumentDetail struct {
	screen

	documents Documents
	users     Users
	session   entity.Session
	id        string

	doc      entity.Document
	managers []entity.User
}

func (s *Service) DocumentDetail(sess entity.Session, id string) *DocumentDetail {
	d := &DocumentDetail{documents: s.documents, users: s.users, session: sess, id: id}
	d.mount()

	return d
}

// Load fetches the document, and the manager roster when the caller may
// still request an approval for it.
func (d *DocumentDetail) Load(ctx context.Context) error {
	doc, err := d.documents.Document(ctx, d.id)
	if err != nil {
		return fail(err, MsgDetailFailed)
	}

	var managers []entity.User

	if canRequest(doc, d.session) {
		managers, err = d.users.Managers(ctx)
		if err != nil {
			return fail(err, MsgDetailFailed)
		}
	}

	return d.update(func() bool {
		d.doc = doc
		d.managers = managers

		return true
	})
}

func canRequest(doc entity.Document, sess entity.Session) bool {
	return doc.UploadedBy.ID == sess.UserID && doc.ApprovalStatus == entity.ApprovalNotRequested
}

func (d *DocumentDetail) Document() entity.Document {
	var out entity.Document

	d.read(func() { out = d.doc })

	return out
}

func (d *DocumentDetail) IsOwner() bool {
	return d.Document().UploadedBy.ID == d.session.UserID
}

func (d *DocumentDetail) CanRequestApproval() bool {
	return canRequest(d.Document(), d.session)
}

func (d *DocumentDetail) Managers() []entity.User {
	var out []entity.User

	d.read(func() { out = slices.Clone(d.managers) })

	return out
}

// RequestApproval routes the document to managerID and reloads it. A failed
// reload keeps the last state; the request itself already went through.
func (d *DocumentDetail) RequestApproval(ctx context.Context, managerID string) error {
	if managerID == "" {
		return entity.ErrNoManagerSelected
	}

	if err := d.documents.RequestApproval(ctx, d.id, managerID); err != nil {
		return fail(err, MsgRequestFailed)
	}

	if err := d.Load(ctx); err != nil {
		slog.WarnContext(ctx, "reload document after approval request", "document_id", d.id, "error", err)
	}

	return nil
}
