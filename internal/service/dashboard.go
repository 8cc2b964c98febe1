package service

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/samandr77/docflow/internal/entity"
)

type Dashboard struct {
	screen

	documents Documents
	session   entity.Session
	svc       *Service

	items []entity.Document
}

func (s *Service) Dashboard(sess entity.Session) *Dashboard {
	d := &Dashboard{documents: s.documents, session: sess, svc: s}
	d.mount()

	return d
}

func (d *Dashboard) Load(ctx context.Context) error {
	docs, err := d.documents.Documents(ctx)
	if err != nil {
		return fail(err, MsgDashboardFailed)
	}

	return d.update(func() bool { return d.replace(docs) })
}

// Refresh is the background poll. Errors keep the last good list.
func (d *Dashboard) Refresh(ctx context.Context) error {
	docs, err := d.documents.Documents(ctx)
	if err != nil {
		return fmt.Errorf("refresh documents: %w", err)
	}

	return discardLate(ctx, d.update(func() bool { return d.replace(docs) }), "dashboard")
}

// Start polls every dashboard interval until Unmount.
func (d *Dashboard) Start(ctx context.Context) {
	d.startPolling(ctx, "dashboard", d.svc.polling.DashboardInterval, d.Refresh)
}

func (d *Dashboard) replace(docs []entity.Document) bool {
	if docs == nil {
		docs = []entity.Document{}
	}

	if d.items != nil && reflect.DeepEqual(d.items, docs) {
		return false
	}

	d.items = docs

	return true
}

func (d *Dashboard) Documents() []entity.Document {
	var out []entity.Document

	d.read(func() { out = slices.Clone(d.items) })

	return out
}

func (d *Dashboard) CanUpload() bool {
	return d.session.Role.Can(entity.CapUpload)
}
