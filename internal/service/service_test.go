package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/docflow/internal/clients/docflow"
	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/internal/mocks"
	"github.com/samandr77/docflow/internal/service"
	"github.com/samandr77/docflow/pkg/config"
)

type TestService struct {
	auth      *mocks.MockAuth
	documents *mocks.MockDocuments
	approvals *mocks.MockApprovals
	users     *mocks.MockUsers
	alerts    *mocks.MockAlerts
	sessions  *mocks.MockSessions
	prompter  *mocks.MockPrompter
	s         *service.Service
}

func NewTestService(t *testing.T) *TestService {
	t.Helper()

	ctrl := gomock.NewController(t)

	ts := &TestService{
		auth:      mocks.NewMockAuth(ctrl),
		documents: mocks.NewMockDocuments(ctrl),
		approvals: mocks.NewMockApprovals(ctrl),
		users:     mocks.NewMockUsers(ctrl),
		alerts:    mocks.NewMockAlerts(ctrl),
		sessions:  mocks.NewMockSessions(ctrl),
		prompter:  mocks.NewMockPrompter(ctrl),
	}

	ts.s = service.New(service.Deps{
		Auth:      ts.auth,
		Documents: ts.documents,
		Approvals: ts.approvals,
		Users:     ts.users,
		Alerts:    ts.alerts,
		Sessions:  ts.sessions,
	}, config.Polling{
		DashboardInterval: 10 * time.Millisecond,
		ApprovalsInterval: 10 * time.Millisecond,
		SuppressionTTL:    time.Minute,
	})

	return ts
}

var (
	staff   = entity.Session{UserID: "s1", Name: "Ann", Role: entity.RoleStaff, Token: "t"}
	manager = entity.Session{UserID: "m1", Name: "Mia", Role: entity.RoleManager, Token: "t"}
	errDown = errors.New("dial tcp: connection refused")
)

func backendErr(status int, msg string) error {
	return &docflow.HTTPError{StatusCode: status, Message: msg}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	creds := entity.Credentials{Email: "ann@kmrl.in", Password: "pw"}

	tests := []struct {
		name         string
		creds        entity.Credentials
		mockBehavior func(ts *TestService)
		wantPath     string
		wantErr      error
		wantMessage  string
	}{
		{
			name:  "staff goes to dashboard",
			creds: creds,
			mockBehavior: func(ts *TestService) {
				ts.auth.EXPECT().Login(gomock.Any(), creds).Return(staff, nil)
				ts.sessions.EXPECT().Login(gomock.Any(), staff).Return(nil)
			},
			wantPath: "/dashboard",
		},
		{
			name:  "manager goes to manager dashboard",
			creds: creds,
			mockBehavior: func(ts *TestService) {
				ts.auth.EXPECT().Login(gomock.Any(), creds).Return(manager, nil)
				ts.sessions.EXPECT().Login(gomock.Any(), manager).Return(nil)
			},
			wantPath: "/manager-dashboard",
		},
		{
			name:  "admin goes to admin console",
			creds: creds,
			mockBehavior: func(ts *TestService) {
				admin := entity.Session{UserID: "a1", Role: entity.RoleAdmin, Token: "t"}
				ts.auth.EXPECT().Login(gomock.Any(), creds).Return(admin, nil)
				ts.sessions.EXPECT().Login(gomock.Any(), admin).Return(nil)
			},
			wantPath: "/admin",
		},
		{
			name:  "backend message is shown",
			creds: creds,
			mockBehavior: func(ts *TestService) {
				ts.auth.EXPECT().Login(gomock.Any(), creds).Return(entity.Session{}, backendErr(401, "Account locked"))
			},
			wantErr:     entity.ErrUnauthorized,
			wantMessage: "Account locked",
		},
		{
			name:  "network failure uses fallback",
			creds: creds,
			mockBehavior: func(ts *TestService) {
				ts.auth.EXPECT().Login(gomock.Any(), creds).Return(entity.Session{}, errDown)
			},
			wantErr:     errDown,
			wantMessage: service.MsgLoginFailed,
		},
		{
			name:         "empty credentials never reach the backend",
			creds:        entity.Credentials{Email: "ann@kmrl.in"},
			mockBehavior: func(*TestService) {},
			wantErr:      entity.ErrCredentials,
			wantMessage:  "Email and password are required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			ts := NewTestService(t)

			tt.mockBehavior(ts)

			path, err := ts.s.Login(context.Background(), tt.creds)
			if tt.wantErr != nil {
				r.ErrorIs(err, tt.wantErr)
				r.Equal(tt.wantMessage, entity.UserMessage(err, "unexpected"))

				return
			}

			r.NoError(err)
			r.Equal(tt.wantPath, path)
		})
	}
}

func TestService_Logout(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ts.sessions.EXPECT().Logout(gomock.Any()).Return(nil)
	r.NoError(ts.s.Logout(context.Background()))

	ts.sessions.EXPECT().Logout(gomock.Any()).Return(errors.New("disk full"))
	r.Error(ts.s.Logout(context.Background()))
}

func TestService_CreateUser(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	in := entity.UserInput{Name: "Bo", Email: "bo@kmrl.in", Password: "pw", Role: entity.RoleManager, Department: "HR"}

	ts.users.EXPECT().CreateUser(gomock.Any(), in).Return(nil)

	msg, err := ts.s.CreateUser(ctx, in)
	r.NoError(err)
	r.Equal(`User "Bo" created successfully!`, msg)

	_, err = ts.s.CreateUser(ctx, entity.UserInput{Name: "Bo", Email: "bo@kmrl.in"})
	r.True(entity.IsValidation(err))

	ts.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(backendErr(400, "User already exists"))

	_, err = ts.s.CreateUser(ctx, in)
	r.Equal("User already exists", entity.UserMessage(err, ""))
}
