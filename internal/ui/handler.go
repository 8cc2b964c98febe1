package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/internal/service"
)

type Handler struct {
	svc      *service.Service
	sessions SessionReader
	term     *Terminal
	prompter service.Prompter
}

func NewHandler(svc *service.Service, sessions SessionReader, term *Terminal, prompter service.Prompter) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		term:     term,
		prompter: prompter,
	}
}

type loader interface {
	unmounter
	Load(ctx context.Context) error
	OnChange(fn func())
}

// mount loads s, renders v and keeps re-rendering it on every change.
func (h *Handler) mount(w http.ResponseWriter, r *http.Request, s loader, v *view, fallback string) bool {
	ctx := r.Context()

	v.screen = s

	if err := s.Load(ctx); err != nil {
		s.Unmount()
		SendErr(ctx, w, statusFor(err), err, fallback)

		return false
	}

	s.OnChange(func() { h.term.Redraw(v) })
	SendView(w, v)

	return true
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = fmt.Fprintf(w, "Page not found: %s\nType \"nav\" to list the available screens.\n", r.URL.Path)
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Current()
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, service.HomePath(sess.Role), http.StatusSeeOther)
}

func (h *Handler) Login(w http.ResponseWriter, _ *http.Request) {
	v := &view{title: "Sign in"}

	v.render = func(w io.Writer) {
		heading(w, v.title)
		_, _ = fmt.Fprintln(w, "Document management system. Sign in to continue.")
		hint(w, "login <email>")
	}

	v.commands = map[string]command{
		"login": {
			usage: "login <email>",
			run: func(ctx context.Context, args []string) (string, error) {
				if len(args) == 0 {
					return "", entity.ErrCredentials
				}

				password, ok, err := h.prompter.Prompt(ctx, "Password:")
				if err != nil {
					return "", fmt.Errorf("read password: %w", err)
				}

				if !ok {
					return "", entity.ErrCancelled
				}

				return h.svc.Login(ctx, entity.Credentials{Email: args[0], Password: password})
			},
		},
	}

	SendView(w, v)
}

func sessionOf(r *http.Request) entity.Session {
	sess, _ := entity.SessionFromCtx(r.Context())
	return sess
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionOf(r)
	d := h.svc.Dashboard(sess)

	v := &view{title: "My documents"}

	v.render = func(w io.Writer) {
		heading(w, v.title)
		_, _ = fmt.Fprintf(w, "Welcome, %s\n\n", sess.Name)
		renderDocuments(w, d.Documents())

		if d.CanUpload() {
			hint(w, "open <n>", "upload")
		} else {
			hint(w, "open <n>")
		}
	}

	v.commands = map[string]command{
		"open": {usage: "open <n>", run: func(_ context.Context, args []string) (string, error) {
			doc, err := choose(d.Documents(), args)
			if err != nil {
				return "", err
			}

			return "/document/" + doc.ID, nil
		}},
		"upload": {usage: "upload", run: func(context.Context, []string) (string, error) {
			if !d.CanUpload() {
				return "", entity.NewValidationError("Only staff can upload documents.")
			}

			return "/upload", nil
		}},
	}

	if h.mount(w, r, d, v, service.MsgDashboardFailed) {
		d.Start(r.Context())
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	u := h.svc.Upload()

	v := &view{title: "Upload document", screen: u}

	v.render = func(w io.Writer) {
		heading(w, v.title)

		if sel := u.Selected(); sel != "" {
			_, _ = fmt.Fprintf(w, "Selected: %s\n", sel)
		} else {
			_, _ = fmt.Fprintln(w, "No file selected.")
		}

		hint(w, "select <path>", "submit")
	}

	v.commands = map[string]command{
		"select": {usage: "select <path>", run: func(_ context.Context, args []string) (string, error) {
			return "", u.Select(strings.Join(args, " "))
		}},
		"submit": {usage: "submit", run: func(ctx context.Context, _ []string) (string, error) {
			if err := u.Submit(ctx); err != nil {
				return "", err
			}

			h.term.Println(service.MsgUploadDone)

			return "/dashboard", nil
		}},
	}

	u.OnChange(func() { h.term.Redraw(v) })
	SendView(w, v)
}

func (h *Handler) DocumentDetail(w http.ResponseWriter, r *http.Request) {
	d := h.svc.DocumentDetail(sessionOf(r), chi.URLParam(r, "id"))

	v := &view{title: "Document"}

	v.render = func(w io.Writer) {
		heading(w, v.title)
		renderDocument(w, d.Document())

		if d.CanRequestApproval() {
			_, _ = fmt.Fprintln(w, "\nRequest approval from:")
			renderNumbered(w, d.Managers())
			hint(w, "request <n>")
		}
	}

	v.commands = map[string]command{
		"request": {usage: "request <n>", run: func(ctx context.Context, args []string) (string, error) {
			var managerID string

			if len(args) > 0 {
				m, err := choose(d.Managers(), args)
				if err != nil {
					return "", err
				}

				managerID = m.ID
			}

			if err := d.RequestApproval(ctx, managerID); err != nil {
				return "", err
			}

			h.term.Println(service.MsgRequestDone)

			return "", nil
		}},
	}

	h.mount(w, r, d, v, service.MsgDetailFailed)
}

func (h *Handler) Approvals(w http.ResponseWriter, r *http.Request) {
	q := h.svc.ApprovalsQueue(sessionOf(r))

	v := &view{title: "Pending approvals"}

	v.render = func(w io.Writer) {
		heading(w, v.title)
		renderApprovals(w, q.Items())
		hint(w, "approve <n>", "reject <n>", "forward <n>", "open <n>")
	}

	decide := func(d entity.Decision) func(context.Context, []string) (string, error) {
		return func(ctx context.Context, args []string) (string, error) {
			a, err := choose(q.Items(), args)
			if err != nil {
				return "", err
			}

			if err := q.Decide(ctx, a.ID, d, h.prompter); err != nil {
				return "", err
			}

			h.term.Println(service.DecisionDone(d))

			return "", nil
		}
	}

	v.commands = map[string]command{
		"approve": {usage: "approve <n>", run: decide(entity.DecisionApproved)},
		"reject":  {usage: "reject <n>", run: decide(entity.DecisionRejected)},
		"forward": {usage: "forward <n>", run: func(ctx context.Context, args []string) (string, error) {
			a, err := choose(q.Items(), args)
			if err != nil {
				return "", err
			}

			if err := q.Forward(ctx, a.ID, h.prompter); err != nil {
				return "", err
			}

			h.term.Println(service.MsgForwardDone)

			return "", nil
		}},
		"open": {usage: "open <n>", run: func(_ context.Context, args []string) (string, error) {
			a, err := choose(q.Items(), args)
			if err != nil {
				return "", err
			}

			if a.Document == nil {
				return "", entity.ErrNotFound
			}

			return "/document/" + a.Document.ID, nil
		}},
	}

	if h.mount(w, r, q, v, service.MsgApprovalsFailed) {
		q.Start(r.Context())
	}
}

func (h *Handler) ApprovedDocs(w http.ResponseWriter, r *http.Request) {
	a := h.svc.ApprovedDocs()

	v := &view{title: "Approved documents"}

	v.render = func(w io.Writer) {
		heading(w, v.title)

		docs := a.Documents()
		if len(docs) == 0 {
			empty(w, "No documents have been approved yet.")
		} else {
			table(w, "#\tNAME\tUPLOADED BY\tUPLOADED", func(tw io.Writer) {
				for i, d := range docs {
					_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, d.OriginalName, d.UploadedBy.Label(), when(d.CreatedAt))
				}
			})
		}

		hint(w, "forward <n>", "open <n>")
	}

	v.commands = map[string]command{
		"forward": {usage: "forward <n>", run: func(ctx context.Context, args []string) (string, error) {
			doc, err := choose(a.Documents(), args)
			if err != nil {
				return "", err
			}

			if _, err := a.Forward(ctx, doc.ID, h.prompter); err != nil {
				return "", err
			}

			h.term.Println(service.MsgDocForwardDone)

			return "", nil
		}},
		"open": {usage: "open <n>", run: func(_ context.Context, args []string) (string, error) {
			doc, err := choose(a.Documents(), args)
			if err != nil {
				return "", err
			}

			return "/document/" + doc.ID, nil
		}},
	}

	h.mount(w, r, a, v, service.MsgApprovedFailed)
}

func (h *Handler) AssignedDocs(w http.ResponseWriter, r *http.Request) {
	a := h.svc.AssignedDocs()

	v := &view{title: "Documents assigned to me"}

	v.render = func(w io.Writer) {
		heading(w, v.title)

		items := a.Assignments()
		if len(items) == 0 {
			empty(w, "Nothing has been forwarded to you.")
		}

		for i, item := range items {
			_, _ = fmt.Fprintf(w, "%d. %s\n   %s  %s\n", i+1, item.Document.OriginalName, item.Message, when(item.CreatedAt))
		}

		hint(w, "open <n>")
	}

	v.commands = map[string]command{
		"open": {usage: "open <n>", run: func(_ context.Context, args []string) (string, error) {
			item, err := choose(a.Assignments(), args)
			if err != nil {
				return "", err
			}

			return "/document/" + item.Document.ID, nil
		}},
	}

	h.mount(w, r, a, v, service.MsgAssignedFailed)
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	a := h.svc.Analytics()

	v := &view{title: "Document analytics"}

	v.render = func(w io.Writer) {
		heading(w, v.title)
		renderChart(w, a.Chart())
	}

	h.mount(w, r, a, v, service.MsgAnalyticsFailed)
}

func (h *Handler) ManagerDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionOf(r)
	m := h.svc.ManagerDashboard()

	v := &view{title: "Manager dashboard"}

	v.render = func(w io.Writer) {
		heading(w, v.title)

		stats := m.Stats()
		_, _ = fmt.Fprintf(w, "Welcome, %s\n\nPending: %d   Approved: %d\n\nRecent requests:\n", sess.Name, stats.PendingCount, stats.ApprovedCount)
		renderApprovals(w, m.Recent())
		hint(w, "open <n>", "/approvals")
	}

	v.commands = map[string]command{
		"open": {usage: "open <n>", run: func(_ context.Context, args []string) (string, error) {
			a, err := choose(m.Recent(), args)
			if err != nil {
				return "", err
			}

			if a.Document == nil {
				return "", entity.ErrNotFound
			}

			return "/document/" + a.Document.ID, nil
		}},
	}

	h.mount(w, r, m, v, service.MsgManagerFailed)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p := h.svc.Profile()

	v := &view{title: "Profile"}

	v.render = func(w io.Writer) {
		heading(w, v.title)

		u := p.User()
		_, _ = fmt.Fprintf(w, "Name:       %s\nEmail:      %s\nRole:       %s\nDepartment: %s\n\nActivity:\n", u.Name, u.Email, u.Role, u.Department)
		renderHistory(w, p.History())
	}

	h.mount(w, r, p, v, service.MsgProfileFailed)
}

func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	a := h.svc.AlertsList()

	v := &view{title: "Notifications"}

	v.render = func(w io.Writer) {
		heading(w, v.title)
		renderAlerts(w, a.Alerts())
		hint(w, "open <n>")
	}

	v.commands = map[string]command{
		"open": {usage: "open <n>", run: func(_ context.Context, args []string) (string, error) {
			alert, err := choose(a.Alerts(), args)
			if err != nil {
				return "", err
			}

			if alert.Link == "" {
				return "", entity.NewValidationError("This notification has no link.")
			}

			return alert.Link, nil
		}},
	}

	h.mount(w, r, a, v, service.MsgAlertsFailed)
}

func (h *Handler) CreateUser(w http.ResponseWriter, _ *http.Request) {
	v := &view{title: "Create user"}

	v.render = func(w io.Writer) {
		heading(w, v.title)
		_, _ = fmt.Fprintf(w, "Roles: %s, %s, %s\nDepartments: %s\n", entity.RoleStaff, entity.RoleManager, entity.RoleAdmin, strings.Join(entity.Departments, ", "))
		hint(w, "create")
	}

	v.commands = map[string]command{
		"create": {usage: "create", run: func(ctx context.Context, _ []string) (string, error) {
			in, err := h.askUser(ctx, entity.UserInput{Role: entity.RoleStaff, Department: entity.Departments[0]}, true)
			if err != nil {
				return "", err
			}

			msg, err := h.svc.CreateUser(ctx, in)
			if err != nil {
				return "", err
			}

			h.term.Println(msg)

			return "", nil
		}},
	}

	SendView(w, v)
}

type formField struct {
	label  string
	value  *string
	secret bool
}

// askUser fills a user form field by field. An empty answer keeps the
// current value.
func (h *Handler) askUser(ctx context.Context, in entity.UserInput, withPassword bool) (entity.UserInput, error) {
	role := string(in.Role)

	fields := []formField{
		{label: "Name", value: &in.Name},
		{label: "Email", value: &in.Email},
	}

	if withPassword {
		fields = append(fields, formField{label: "Password", value: &in.Password, secret: true})
	}

	fields = append(fields,
		formField{label: "Role", value: &role},
		formField{label: "Department", value: &in.Department},
	)

	for _, f := range fields {
		question := f.label + ":"
		if *f.value != "" && !f.secret {
			question = fmt.Sprintf("%s [%s]:", f.label, *f.value)
		}

		answer, ok, err := h.prompter.Prompt(ctx, question)
		if err != nil {
			return entity.UserInput{}, fmt.Errorf("read %s: %w", strings.ToLower(f.label), err)
		}

		if !ok {
			return entity.UserInput{}, entity.ErrCancelled
		}

		if answer != "" {
			*f.value = answer
		}
	}

	in.Role = entity.Role(role)

	return in, nil
}

func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	a := h.svc.Admin()

	v := &view{title: "Administrator control tower"}

	v.render = func(w io.Writer) {
		heading(w, v.title)

		f := a.Filter()
		_, _ = fmt.Fprintf(w, "Search: %q  Role: %s  Department: %s\n\n", f.Search, orAll(f.Role), orAll(f.Department))
		renderUsers(w, a.Users())

		_, _ = fmt.Fprintln(w, "\nDocuments by category:")
		renderChart(w, a.Chart())

		_, _ = fmt.Fprintln(w, "\nRecent events:")
		renderAlerts(w, a.RecentEvents())

		hint(w, "search <text>", "role <role|all>", "dept <department|all>", "add", "edit <n>", "delete <n>")
	}

	setFilter := func(apply func(f *service.UserFilter, value string)) func(context.Context, []string) (string, error) {
		return func(_ context.Context, args []string) (string, error) {
			f := a.Filter()
			apply(&f, strings.Join(args, " "))
			a.SetFilter(f)

			return "", nil
		}
	}

	v.commands = map[string]command{
		"search": {usage: "search <text>", run: setFilter(func(f *service.UserFilter, s string) { f.Search = s })},
		"role":   {usage: "role <role|all>", run: setFilter(func(f *service.UserFilter, s string) { f.Role = s })},
		"dept":   {usage: "dept <department|all>", run: setFilter(func(f *service.UserFilter, s string) { f.Department = s })},
		"add": {usage: "add", run: func(ctx context.Context, _ []string) (string, error) {
			in, err := h.askUser(ctx, entity.UserInput{Role: entity.RoleStaff, Department: entity.Departments[0]}, true)
			if err != nil {
				return "", err
			}

			return "", a.Save(ctx, in)
		}},
		"edit": {usage: "edit <n>", run: func(ctx context.Context, args []string) (string, error) {
			u, err := choose(a.Users(), args)
			if err != nil {
				return "", err
			}

			in, err := h.askUser(ctx, entity.UserInput{
				ID:         u.ID,
				Name:       u.Name,
				Email:      u.Email,
				Role:       u.Role,
				Department: u.Department,
			}, false)
			if err != nil {
				return "", err
			}

			return "", a.Save(ctx, in)
		}},
		"delete": {usage: "delete <n>", run: func(ctx context.Context, args []string) (string, error) {
			u, err := choose(a.Users(), args)
			if err != nil {
				return "", err
			}

			return "", a.Delete(ctx, u.ID, h.prompter)
		}},
	}

	h.mount(w, r, a, v, service.MsgAdminFailed)
}

func orAll(s string) string {
	if s == "" {
		return service.FilterAll
	}

	return s
}

// IsSilent reports errors the REPL should not print.
func IsSilent(err error) bool {
	return errors.Is(err, entity.ErrCancelled) || errors.Is(err, entity.ErrUnmounted)
}
