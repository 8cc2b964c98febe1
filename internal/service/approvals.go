package service

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/samandr77/docflow/internal/entity"
)

type ApprovalsQueue struct {
	screen

	approvals  Approvals
	users      Users
	session    entity.Session
	svc        *Service
	suppressed *Suppressor

	items    []entity.Approval
	managers []entity.User
}

func (s *Service) ApprovalsQueue(sess entity.Session) *ApprovalsQueue {
	q := &ApprovalsQueue{
		approvals:  s.approvals,
		users:      s.users,
		session:    sess,
		svc:        s,
		suppressed: NewSuppressor(s.polling.SuppressionTTL),
	}
	q.mount()

	return q
}

func (q *ApprovalsQueue) fetch(ctx context.Context) ([]entity.Approval, []entity.User, error) {
	var (
		approvals []entity.Approval
		managers  []entity.User
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		approvals, err = q.approvals.Approvals(gctx, 0)

		return err
	})

	g.Go(func() error {
		var err error
		managers, err = q.users.Managers(gctx)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return approvals, managers, nil
}

func (q *ApprovalsQueue) Load(ctx context.Context) error {
	approvals, managers, err := q.fetch(ctx)
	if err != nil {
		return fail(err, MsgApprovalsFailed)
	}

	return q.update(func() bool { return q.replace(approvals, managers) })
}

// Refresh is the background poll. Errors keep the last good queue.
func (q *ApprovalsQueue) Refresh(ctx context.Context) error {
	approvals, managers, err := q.fetch(ctx)
	if err != nil {
		return fmt.Errorf("refresh approvals: %w", err)
	}

	return discardLate(ctx, q.update(func() bool { return q.replace(approvals, managers) }), "approvals")
}

func (q *ApprovalsQueue) Start(ctx context.Context) {
	q.startPolling(ctx, "approvals", q.svc.polling.ApprovalsInterval, q.Refresh)
}

// replace applies a successful fetch minus the suppressed ids.
func (q *ApprovalsQueue) replace(approvals []entity.Approval, managers []entity.User) bool {
	ids := make([]string, 0, len(approvals))
	for _, a := range approvals {
		ids = append(ids, a.ID)
	}

	hidden := q.suppressed.Reconcile(ids)

	visible := make([]entity.Approval, 0, len(approvals))

	for _, a := range approvals {
		if _, ok := hidden[a.ID]; !ok {
			visible = append(visible, a)
		}
	}

	if managers == nil {
		managers = []entity.User{}
	}

	if q.items != nil && reflect.DeepEqual(q.items, visible) && reflect.DeepEqual(q.managers, managers) {
		return false
	}

	q.items = visible
	q.managers = managers

	return true
}

func (q *ApprovalsQueue) Items() []entity.Approval {
	var out []entity.Approval

	q.read(func() { out = slices.Clone(q.items) })

	return out
}

func (q *ApprovalsQueue) Item(id string) (entity.Approval, bool) {
	for _, a := range q.Items() {
		if a.ID == id {
			return a, true
		}
	}

	return entity.Approval{}, false
}

func (q *ApprovalsQueue) Managers() []entity.User {
	var out []entity.User

	q.read(func() { out = slices.Clone(q.managers) })

	return out
}

// Decide asks for confirmation and records the decision. The item leaves the
// queue right away.
func (q *ApprovalsQueue) Decide(ctx context.Context, id string, decision entity.Decision, p Prompter) error {
	if !decision.IsValid() {
		return entity.NewValidationError(fmt.Sprintf("Unknown decision %q.", decision))
	}

	question := fmt.Sprintf("Are you sure you want to %s this document?", decisionVerb(decision))

	ok, err := p.Confirm(ctx, question)
	if err != nil {
		return fmt.Errorf("confirm decision: %w", err)
	}

	if !ok {
		return entity.ErrCancelled
	}

	if err := q.approvals.Decide(ctx, id, decision); err != nil {
		return fail(err, MsgDecisionFailed)
	}

	q.removeActedOn(id)

	return nil
}

func decisionVerb(d entity.Decision) string {
	switch d {
	case entity.DecisionApproved:
		return "approve"
	case entity.DecisionRejected:
		return "reject"
	default:
		return strings.ToLower(string(d))
	}
}

// ForwardCandidates are the managers other than the caller.
func (q *ApprovalsQueue) ForwardCandidates() []entity.User {
	managers := q.Managers()

	out := make([]entity.User, 0, len(managers))

	for _, m := range managers {
		if m.ID != q.session.UserID {
			out = append(out, m)
		}
	}

	return out
}

// Forward reassigns the approval to a manager picked by number.
func (q *ApprovalsQueue) Forward(ctx context.Context, id string, p Prompter) error {
	candidates := q.ForwardCandidates()
	if len(candidates) == 0 {
		return entity.ErrNoOtherManagers
	}

	answer, ok, err := p.Prompt(ctx, "Select a manager to forward this to:\n\n"+numbered(candidates))
	if err != nil {
		return fmt.Errorf("prompt manager: %w", err)
	}

	if !ok {
		return entity.ErrCancelled
	}

	target, err := pick(candidates, answer)
	if err != nil {
		return err
	}

	if err := q.approvals.ForwardApproval(ctx, id, target.ID); err != nil {
		return fail(err, MsgForwardFailed)
	}

	q.removeActedOn(id)

	return nil
}

func (q *ApprovalsQueue) removeActedOn(id string) {
	q.suppressed.Add(id)

	_ = q.update(func() bool {
		before := len(q.items)
		q.items = slices.DeleteFunc(q.items, func(a entity.Approval) bool { return a.ID == id })

		return len(q.items) != before
	})
}

func (q *ApprovalsQueue) Suppressed(id string) bool {
	return q.suppressed.Has(id)
}

func numbered(users []entity.User) string {
	lines := make([]string, 0, len(users))

	for i, u := range users {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, u.Name))
	}

	return strings.Join(lines, "\n")
}

// pick resolves a 1-based answer against users.
func pick(users []entity.User, answer string) (entity.User, error) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(answer), ".")))
	if err != nil || n < 1 || n > len(users) {
		return entity.User{}, entity.ErrInvalidSelection
	}

	return users[n-1], nil
}
