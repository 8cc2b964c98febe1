package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/pkg/config"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Auth interface {
	Login(ctx context.Context, creds entity.Credentials) (entity.Session, error)
}

type Documents interface {
	Documents(ctx context.Context) ([]entity.Document, error)
	Document(ctx context.Context, id string) (entity.Document, error)
	ApprovedDocuments(ctx context.Context) ([]entity.Document, error)
	DocumentStats(ctx context.Context) ([]entity.CategoryStat, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader) error
	RequestApproval(ctx context.Context, docID, managerID string) error
	ForwardDocument(ctx context.Context, docID, staffID string) error
}

type Approvals interface {
	Approvals(ctx context.Context, limit int) ([]entity.Approval, error)
	ApprovalStats(ctx context.Context) (entity.ApprovalStats, error)
	Decide(ctx context.Context, approvalID string, decision entity.Decision) error
	ForwardApproval(ctx context.Context, approvalID, newApproverID string) error
}

type Users interface {
	Users(ctx context.Context) ([]entity.User, error)
	Managers(ctx context.Context) ([]entity.User, error)
	Staff(ctx context.Context) ([]entity.User, error)
	Profile(ctx context.Context) (entity.User, error)
	History(ctx context.Context) ([]entity.HistoryEvent, error)
	CreateUser(ctx context.Context, in entity.UserInput) error
	UpdateUser(ctx context.Context, in entity.UserInput) error
	DeleteUser(ctx context.Context, id string) error
}

type Alerts interface {
	Alerts(ctx context.Context) ([]entity.Alert, error)
	AssignedDocuments(ctx context.Context) ([]entity.Alert, error)
}

type Sessions interface {
	Current() (entity.Session, bool)
	Login(ctx context.Context, s entity.Session) error
	Logout(ctx context.Context) error
}

// Prompter asks the user for decisions that interrupt an action.
// ok is false when the user cancelled the prompt.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
	Prompt(ctx context.Context, question string) (answer string, ok bool, err error)
}

type Deps struct {
	Auth      Auth
	Documents Documents
	Approvals Approvals
	Users     Users
	Alerts    Alerts
	Sessions  Sessions
}

type Service struct {
	auth      Auth
	documents Documents
	approvals Approvals
	users     Users
	alerts    Alerts
	sessions  Sessions
	polling   config.Polling
}

func New(deps Deps, polling config.Polling) *Service {
	return &Service{
		auth:      deps.Auth,
		documents: deps.Documents,
		approvals: deps.Approvals,
		users:     deps.Users,
		alerts:    deps.Alerts,
		sessions:  deps.Sessions,
		polling:   polling,
	}
}

// Login authenticates, stores the session and returns the role's home path.
func (s *Service) Login(ctx context.Context, creds entity.Credentials) (string, error) {
	if creds.Email == "" || creds.Password == "" {
		return "", entity.ErrCredentials
	}

	sess, err := s.auth.Login(ctx, creds)
	if err != nil {
		return "", fail(err, MsgLoginFailed)
	}

	if err := s.sessions.Login(ctx, sess); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return HomePath(sess.Role), nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func HomePath(role entity.Role) string {
	switch role {
	case entity.RoleStaff:
		return "/dashboard"
	case entity.RoleManager:
		return "/manager-dashboard"
	case entity.RoleAdmin:
		return "/admin"
	default:
		slog.Warn("unknown role, using dashboard", "role", role)
		return "/dashboard"
	}
}
