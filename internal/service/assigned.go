package service

import (
	"context"
	"slices"

	"github.com/samandr77/docflow/internal/entity"
)

type AssignedDocs struct {
	screen

	alerts Alerts

	items []entity.Alert
}

func (s *Service) AssignedDocs() *AssignedDocs {
	a := &AssignedDocs{alerts: s.alerts}
	a.mount()

	return a
}

// Load drops assignments whose document was deleted.
func (a *AssignedDocs) Load(ctx context.Context) error {
	records, err := a.alerts.AssignedDocuments(ctx)
	if err != nil {
		return fail(err, MsgAssignedFailed)
	}

	records = slices.DeleteFunc(records, func(r entity.Alert) bool { return r.Document == nil })

	return a.update(func() bool {
		a.items = records
		return true
	})
}

func (a *AssignedDocs) Assignments() []entity.Alert {
	var out []entity.Alert

	a.read(func() { out = slices.Clone(a.items) })

	return out
}
