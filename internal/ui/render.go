package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/internal/service"
)

const (
	barWidth   = 30
	timeLayout = "2006-01-02 15:04"
)

func heading(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "== %s ==\n", title)
}

func table(w io.Writer, header string, rows func(tw io.Writer)) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, header)
	rows(tw)
	_ = tw.Flush()
}

func empty(w io.Writer, text string) {
	_, _ = fmt.Fprintf(w, "  %s\n", text)
}

func when(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Local().Format(timeLayout)
}

func hint(w io.Writer, cmds ...string) {
	if len(cmds) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\ncommands: %s\n", strings.Join(cmds, ", "))
}

func renderDocuments(w io.Writer, docs []entity.Document) {
	if len(docs) == 0 {
		empty(w, "No documents yet.")
		return
	}

	table(w, "#\tNAME\tSTATUS\tAPPROVAL\tUPLOADED", func(tw io.Writer) {
		for i, d := range docs {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, d.OriginalName, d.Status, d.ApprovalStatus, when(d.CreatedAt))
		}
	})
}

func renderDocument(w io.Writer, d entity.Document) {
	_, _ = fmt.Fprintf(w, "Name:        %s\n", d.OriginalName)
	_, _ = fmt.Fprintf(w, "Type:        %s\n", d.FileType)
	_, _ = fmt.Fprintf(w, "Status:      %s\n", d.Status)
	_, _ = fmt.Fprintf(w, "Approval:    %s\n", d.ApprovalStatus)
	_, _ = fmt.Fprintf(w, "Uploaded by: %s\n", d.UploadedBy.Label())
	_, _ = fmt.Fprintf(w, "Uploaded at: %s\n", when(d.CreatedAt))

	if d.Summary != "" {
		_, _ = fmt.Fprintf(w, "\nSummary:\n%s\n", d.Summary)
	}
}

func renderUsers(w io.Writer, users []entity.User) {
	if len(users) == 0 {
		empty(w, "No users match.")
		return
	}

	table(w, "#\tNAME\tEMAIL\tROLE\tDEPARTMENT", func(tw io.Writer) {
		for i, u := range users {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, u.Name, u.Email, u.Role, u.Department)
		}
	})
}

func renderNumbered(w io.Writer, users []entity.User) {
	for i, u := range users {
		_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, u.Name)
	}
}

func renderApprovals(w io.Writer, approvals []entity.Approval) {
	if len(approvals) == 0 {
		empty(w, "You have no pending approval requests.")
		return
	}

	table(w, "#\tDOCUMENT\tREQUESTED BY\tSTATUS\tSINCE", func(tw io.Writer) {
		for i, a := range approvals {
			requester := a.Requester.Label()
			if a.Requester.Email != "" {
				requester += " (" + a.Requester.Email + ")"
			}

			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, a.DocumentName(), requester, a.Status, when(a.CreatedAt))
		}
	})
}

func renderAlerts(w io.Writer, alerts []entity.Alert) {
	if len(alerts) == 0 {
		empty(w, "No new notifications")
		return
	}

	for i, a := range alerts {
		_, _ = fmt.Fprintf(w, "%d. %s\n   %s", i+1, a.Message, when(a.CreatedAt))

		if a.Link != "" {
			_, _ = fmt.Fprintf(w, "  -> %s", a.Link)
		}

		_, _ = fmt.Fprintln(w)
	}
}

func renderChart(w io.Writer, chart service.Chart) {
	if chart.Total == 0 {
		empty(w, "No data to chart.")
		return
	}

	width := decimal.NewFromInt(barWidth)
	hundred := decimal.NewFromInt(100)

	table(w, "CATEGORY\tCOUNT\tSHARE\t", func(tw io.Writer) {
		for _, s := range chart.Segments {
			n := int(s.Share.Mul(width).Div(hundred).Round(0).IntPart())
			if n == 0 && s.Count > 0 {
				n = 1
			}

			_, _ = fmt.Fprintf(tw, "%s\t%d\t%s%%\t%s %s\n", s.Label, s.Count, s.Share.StringFixed(1), strings.Repeat("#", n), s.Color)
		}
	})
}

func renderHistory(w io.Writer, events []entity.HistoryEvent) {
	if len(events) == 0 {
		empty(w, "No activity yet.")
		return
	}

	for _, e := range events {
		_, _ = fmt.Fprintf(w, "  %s  %s\n", when(e.Date), e.Describe())
	}
}
