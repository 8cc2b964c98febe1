package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/samandr77/docflow/internal/entity"
)

type ApprovedDocs struct {
	screen

	documents Documents
	users     Users

	items []entity.Document
}

func (s *Service) ApprovedDocs() *ApprovedDocs {
	a := &ApprovedDocs{documents: s.documents, users: s.users}
	a.mount()

	return a
}

func (a *ApprovedDocs) Load(ctx context.Context) error {
	docs, err := a.documents.ApprovedDocuments(ctx)
	if err != nil {
		return fail(err, MsgApprovedFailed)
	}

	return a.update(func() bool {
		a.items = docs
		return true
	})
}

func (a *ApprovedDocs) Documents() []entity.Document {
	var out []entity.Document

	a.read(func() { out = slices.Clone(a.items) })

	return out
}

// Forward hands an approved document to a staff member picked by number.
func (a *ApprovedDocs) Forward(ctx context.Context, docID string, p Prompter) (entity.User, error) {
	staff, err := a.users.Staff(ctx)
	if err != nil {
		return entity.User{}, fail(err, MsgStaffFailed)
	}

	if len(staff) == 0 {
		return entity.User{}, entity.ErrNoStaffSelected
	}

	answer, ok, err := p.Prompt(ctx, "Select a staff member:\n\n"+numbered(staff))
	if err != nil {
		return entity.User{}, fmt.Errorf("prompt staff: %w", err)
	}

	if !ok || answer == "" {
		return entity.User{}, entity.ErrNoStaffSelected
	}

	target, err := pick(staff, answer)
	if err != nil {
		return entity.User{}, err
	}

	confirmed, err := p.Confirm(ctx, fmt.Sprintf("Forward this document to %s?", target.Name))
	if err != nil {
		return entity.User{}, fmt.Errorf("confirm forward: %w", err)
	}

	if !confirmed {
		return entity.User{}, entity.ErrCancelled
	}

	if err := a.documents.ForwardDocument(ctx, docID, target.ID); err != nil {
		return entity.User{}, fail(err, MsgDocForwardFailed)
	}

	return target, nil
}
