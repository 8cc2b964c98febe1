package service_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/internal/service"
)

var (
	docA = entity.Document{ID: "d1", OriginalName: "a.pdf", Status: entity.DocStatusProcessing, UploadedBy: entity.UserRef{ID: "s1"}}
	docB = entity.Document{ID: "d2", OriginalName: "b.pdf", Status: entity.DocStatusCompleted, UploadedBy: entity.UserRef{ID: "s1"}}
)

func TestDashboard_PollingIdempotence(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	d := ts.s.Dashboard(staff)
	r.True(d.CanUpload())
	r.False(ts.s.Dashboard(manager).CanUpload())

	var changes atomic.Int32
	d.OnChange(func() { changes.Add(1) })

	gomock.InOrder(
		ts.documents.EXPECT().Documents(gomock.Any()).Return([]entity.Document{docA}, nil),
		ts.documents.EXPECT().Documents(gomock.Any()).Return([]entity.Document{docA}, nil),
		ts.documents.EXPECT().Documents(gomock.Any()).Return([]entity.Document{docB, docA}, nil),
		ts.documents.EXPECT().Documents(gomock.Any()).Return(nil, errDown),
	)

	r.NoError(d.Load(ctx))
	r.Equal(int32(1), changes.Load())

	r.NoError(d.Refresh(ctx))
	r.Equal(int32(1), changes.Load(), "identical poll must not re-render")

	r.NoError(d.Refresh(ctx))
	r.Equal(int32(2), changes.Load())
	r.Equal([]entity.Document{docB, docA}, d.Documents(), "backend order is kept")

	r.ErrorIs(d.Refresh(ctx), errDown)
	r.Equal([]entity.Document{docB, docA}, d.Documents(), "failed poll keeps last good list")
	r.Equal(int32(2), changes.Load())
}

func TestDashboard_LoadFailure(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ts.documents.EXPECT().Documents(gomock.Any()).Return(nil, errDown)

	err := ts.s.Dashboard(staff).Load(context.Background())
	r.ErrorIs(err, errDown)
	r.Equal(service.MsgDashboardFailed, entity.UserMessage(err, ""))
}

func TestDashboard_UnmountStopsPollingAndDropsLateResponses(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	var polls atomic.Int32

	ts.documents.EXPECT().Documents(gomock.Any()).DoAndReturn(func(context.Context) ([]entity.Document, error) {
		polls.Add(1)
		return []entity.Document{docA}, nil
	}).AnyTimes()

	d := ts.s.Dashboard(staff)
	d.Start(ctx)
	r.True(d.Polling())

	r.Eventually(func() bool { return polls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	d.Unmount()
	r.False(d.Polling())
	r.False(d.Mounted())

	after := polls.Load()
	time.Sleep(40 * time.Millisecond)
	r.Equal(after, polls.Load())

	r.NoError(d.Refresh(ctx), "late poll is discarded silently")
	r.ErrorIs(d.Load(ctx), entity.ErrUnmounted)
}

func TestUpload_Submit(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	u := ts.s.Upload()

	r.ErrorIs(u.Submit(ctx), entity.ErrNoFileSelected)
	r.Equal("Please select a file first.", entity.UserMessage(u.Submit(ctx), ""))

	r.True(entity.IsValidation(u.Select(filepath.Join(t.TempDir(), "missing.pdf"))))
	r.True(entity.IsValidation(u.Select(t.TempDir())))

	path := filepath.Join(t.TempDir(), "report.pdf")
	r.NoError(os.WriteFile(path, []byte("%PDF-1.4"), 0o600))
	r.NoError(u.Select(path))

	gomock.InOrder(
		ts.documents.EXPECT().UploadDocument(gomock.Any(), "report.pdf", gomock.Any()).Return(backendErr(413, "File too large")).Times(1),
		ts.documents.EXPECT().UploadDocument(gomock.Any(), "report.pdf", gomock.Any()).Return(errDown).Times(1),
		ts.documents.EXPECT().UploadDocument(gomock.Any(), "report.pdf", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, content io.Reader) error {
				b, err := io.ReadAll(content)
				r.NoError(err)
				r.Equal("%PDF-1.4", string(b))

				return nil
			}).Times(1),
	)

	err := u.Submit(ctx)
	r.Equal("File too large", entity.UserMessage(err, ""))
	r.Equal(path, u.Selected(), "selection survives a failure")

	err = u.Submit(ctx)
	r.Equal(service.MsgUploadFailed, entity.UserMessage(err, ""))

	r.NoError(u.Submit(ctx))
	r.Empty(u.Selected())
}

func TestDocumentDetail(t *testing.T) {
	t.Parallel()

	managers := []entity.User{{ID: "m1", Name: "Mia", Role: entity.RoleManager}}

	tests := []struct {
		name         string
		session      entity.Session
		doc          entity.Document
		mockBehavior func(ts *TestService)
		wantManagers []entity.User
		wantCanReq   bool
	}{
		{
			name:    "owner before request sees managers",
			session: staff,
			doc:     entity.Document{ID: "d1", UploadedBy: entity.UserRef{ID: "s1"}, ApprovalStatus: entity.ApprovalNotRequested},
			mockBehavior: func(ts *TestService) {
				ts.users.EXPECT().Managers(gomock.Any()).Return(managers, nil)
			},
			wantManagers: managers,
			wantCanReq:   true,
		},
		{
			name:         "owner after request",
			session:      staff,
			doc:          entity.Document{ID: "d1", UploadedBy: entity.UserRef{ID: "s1"}, ApprovalStatus: entity.ApprovalPending},
			mockBehavior: func(*TestService) {},
		},
		{
			name:         "someone else's document",
			session:      manager,
			doc:          entity.Document{ID: "d1", UploadedBy: entity.UserRef{ID: "s1", Name: "Ann"}, ApprovalStatus: entity.ApprovalNotRequested},
			mockBehavior: func(*TestService) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			ts := NewTestService(t)

			ts.documents.EXPECT().Document(gomock.Any(), "d1").Return(tt.doc, nil)
			tt.mockBehavior(ts)

			d := ts.s.DocumentDetail(tt.session, "d1")
			r.NoError(d.Load(context.Background()))
			r.Equal(tt.doc, d.Document())
			r.Equal(tt.wantManagers, d.Managers())
			r.Equal(tt.wantCanReq, d.CanRequestApproval())
		})
	}
}

func TestDocumentDetail_RequestApproval(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	pending := entity.Document{ID: "d1", UploadedBy: entity.UserRef{ID: "s1"}, ApprovalStatus: entity.ApprovalPending}

	d := ts.s.DocumentDetail(staff, "d1")

	r.ErrorIs(d.RequestApproval(ctx, ""), entity.ErrNoManagerSelected)

	gomock.InOrder(
		ts.documents.EXPECT().RequestApproval(gomock.Any(), "d1", "m1").Return(backendErr(400, "Approval already requested")),
		ts.documents.EXPECT().RequestApproval(gomock.Any(), "d1", "m1").Return(nil),
		ts.documents.EXPECT().Document(gomock.Any(), "d1").Return(pending, nil),
	)

	err := d.RequestApproval(ctx, "m1")
	r.Equal("Approval already requested", entity.UserMessage(err, ""))

	r.NoError(d.RequestApproval(ctx, "m1"))
	r.Equal(entity.ApprovalPending, d.Document().ApprovalStatus)
	r.True(d.IsOwner())
	r.False(d.CanRequestApproval())
}

func TestDocumentDetail_RequestApprovalReloadFails(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	doc := entity.Document{ID: "d1", UploadedBy: entity.UserRef{ID: "s1"}, ApprovalStatus: entity.ApprovalNotRequested}
	managers := []entity.User{{ID: "m1", Name: "Bo"}}

	gomock.InOrder(
		ts.documents.EXPECT().Document(gomock.Any(), "d1").Return(doc, nil),
		ts.users.EXPECT().Managers(gomock.Any()).Return(managers, nil),
		ts.documents.EXPECT().RequestApproval(gomock.Any(), "d1", "m1").Return(nil),
		ts.documents.EXPECT().Document(gomock.Any(), "d1").Return(entity.Document{}, errDown),
	)

	d := ts.s.DocumentDetail(staff, "d1")
	r.NoError(d.Load(ctx))

	r.NoError(d.RequestApproval(ctx, "m1"), "accepted request is reported as done")
	r.Equal(doc, d.Document(), "last state is kept")
}

func TestApprovedDocs_Forward(t *testing.T) {
	t.Parallel()

	staffList := []entity.User{{ID: "s1", Name: "Ann"}, {ID: "s2", Name: "Raj"}}

	tests := []struct {
		name         string
		mockBehavior func(ts *TestService)
		wantErr      error
		wantMessage  string
		wantTarget   string
	}{
		{
			name: "staff list unavailable",
			mockBehavior: func(ts *TestService) {
				ts.users.EXPECT().Staff(gomock.Any()).Return(nil, errDown)
			},
			wantErr:     errDown,
			wantMessage: service.MsgStaffFailed,
		},
		{
			name: "no selection",
			mockBehavior: func(ts *TestService) {
				ts.users.EXPECT().Staff(gomock.Any()).Return(staffList, nil)
				ts.prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("", true, nil)
			},
			wantErr:     entity.ErrNoStaffSelected,
			wantMessage: "Please select a staff member.",
		},
		{
			name: "out of range",
			mockBehavior: func(ts *TestService) {
				ts.users.EXPECT().Staff(gomock.Any()).Return(staffList, nil)
				ts.prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("3", true, nil)
			},
			wantErr: entity.ErrInvalidSelection,
		},
		{
			name: "declined confirmation",
			mockBehavior: func(ts *TestService) {
				ts.users.EXPECT().Staff(gomock.Any()).Return(staffList, nil)
				ts.prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return("2", true, nil)
				ts.prompter.EXPECT().Confirm(gomock.Any(), "Forward this document to Raj?").Return(false, nil)
			},
			wantErr: entity.ErrCancelled,
		},
		{
			name: "forwarded",
			mockBehavior: func(ts *TestService) {
				ts.users.EXPECT().Staff(gomock.Any()).Return(staffList, nil)
				ts.prompter.EXPECT().Prompt(gomock.Any(), "Select a staff member:\n\n1. Ann\n2. Raj").Return("2", true, nil)
				ts.prompter.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
				ts.documents.EXPECT().ForwardDocument(gomock.Any(), "d1", "s2").Return(nil).Times(1)
			},
			wantTarget: "s2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			ts := NewTestService(t)

			tt.mockBehavior(ts)

			target, err := ts.s.ApprovedDocs().Forward(context.Background(), "d1", ts.prompter)
			if tt.wantErr != nil {
				r.ErrorIs(err, tt.wantErr)

				if tt.wantMessage != "" {
					r.Equal(tt.wantMessage, entity.UserMessage(err, ""))
				}

				return
			}

			r.NoError(err)
			r.Equal(tt.wantTarget, target.ID)
		})
	}
}

func TestAssignedDocs_DropsDeletedDocuments(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ts.alerts.EXPECT().AssignedDocuments(gomock.Any()).Return([]entity.Alert{
		{ID: "al1", Message: "forwarded", Document: &docA},
		{ID: "al2", Message: "forwarded", Document: nil},
	}, nil)

	a := ts.s.AssignedDocs()
	r.NoError(a.Load(context.Background()))
	r.Len(a.Assignments(), 1)
	r.Equal("al1", a.Assignments()[0].ID)
}
