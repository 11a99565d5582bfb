package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Kariqs/agromarket-api/services"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34")).MarginTop(1)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func (p *panel) heading(title string) {
	fmt.Fprintln(p.out, headingStyle.Render(title))
}

func (p *panel) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(p.out, mutedStyle.Render("  (none)"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(p.out, t.String())
}

func stamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func count(n int64) string {
	return strconv.FormatInt(n, 10)
}

func (p *panel) printDashboard(ctx context.Context) error {
	stats, err := p.reports().Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	p.heading("DASHBOARD")
	p.table([]string{"Metric", "Count"}, [][]string{
		{"Users", count(stats.Users)},
		{"Admins", count(stats.Admins)},
		{"Farmers", count(stats.Farmers)},
		{"Buyers", count(stats.Buyers)},
		{"Equipment listings", count(stats.Equipment)},
		{"Animal listings", count(stats.Animals)},
		{"Land listings", count(stats.Land)},
		{"Nursery listings", count(stats.Nurseries)},
		{"Experts", count(stats.Experts)},
		{"Marketplace items", count(stats.MarketplaceItems)},
		{"Orders", count(stats.Orders)},
		{"Pending orders", count(stats.PendingOrders)},
		{"Unread messages", count(stats.UnreadMessages)},
		{"Emails sent", count(stats.EmailsSent)},
		{"Emails failed", count(stats.EmailsFailed)},
		{"Unread notifications", count(stats.UnreadNotifications)},
		{"File uploads", count(stats.FileUploads)},
		{"Failed uploads", count(stats.FailedUploads)},
	})
	return nil
}

func (p *panel) printUsers(ctx context.Context) error {
	users, err := p.reports().RecentUsers(ctx, p.limit)
	if err != nil {
		return fmt.Errorf("users: %w", err)
	}

	p.heading("RECENT USERS")
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Email, u.FullName, u.UserType, yesNo(u.HasAdminAccess()), stamp(u.CreatedAt)})
	}
	p.table([]string{"ID", "Email", "Name", "Type", "Admin", "Joined"}, rows)
	return nil
}

func (p *panel) printAdmins(ctx context.Context) error {
	admins, err := p.admins().ListAdmins(ctx)
	if err != nil {
		return err
	}

	p.heading("ADMINS")
	rows := make([][]string, 0, len(admins))
	for _, a := range admins {
		rows = append(rows, []string{a.ID, a.Email, a.FullName, a.Role, a.UserType})
	}
	p.table([]string{"ID", "Email", "Name", "Role", "Type"}, rows)
	return nil
}

func (p *panel) printAdminResult(action string, res *services.AdminResult) {
	switch {
	case res.Created:
		fmt.Fprintln(p.out, okStyle.Render(fmt.Sprintf("Created admin profile %s (%s)", res.Profile.Email, res.Profile.ID)))
	case res.Changed:
		fmt.Fprintln(p.out, okStyle.Render(fmt.Sprintf("Admin access %s for %s (%s)", action, res.Profile.Email, res.Profile.ID)))
	default:
		fmt.Fprintln(p.out, mutedStyle.Render(fmt.Sprintf("%s (%s) is already an admin", res.Profile.Email, res.Profile.ID)))
	}
}

func (p *panel) printEmails(ctx context.Context) error {
	emails, err := p.reports().RecentEmails(ctx, p.limit)
	if err != nil {
		return fmt.Errorf("emails: %w", err)
	}

	p.heading("RECENT EMAILS")
	rows := make([][]string, 0, len(emails))
	for _, e := range emails {
		rows = append(rows, []string{e.Recipient, e.Subject, e.Status, e.Error, stamp(e.CreatedAt)})
	}
	p.table([]string{"Recipient", "Subject", "Status", "Error", "Sent"}, rows)
	return nil
}

func (p *panel) printFiles(ctx context.Context) error {
	files, err := p.reports().RecentFiles(ctx, p.limit)
	if err != nil {
		return fmt.Errorf("files: %w", err)
	}

	p.heading("RECENT FILE UPLOADS")
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.FileName, f.Entity, f.ContentType, strconv.FormatInt(f.Size, 10), f.Status, stamp(f.CreatedAt)})
	}
	p.table([]string{"File", "Entity", "Type", "Bytes", "Status", "Uploaded"}, rows)
	return nil
}

func (p *panel) printNotifications(ctx context.Context) error {
	notes, err := p.notifier().List(ctx, false, p.limit)
	if err != nil {
		return err
	}

	p.heading("RECENT NOTIFICATIONS")
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{n.Type, n.Title, n.Message, yesNo(n.IsRead), stamp(n.CreatedAt)})
	}
	p.table([]string{"Type", "Title", "Message", "Read", "Created"}, rows)
	return nil
}

func breakdownRows(counts map[string]int64) [][]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		label := k
		if label == "" {
			label = "(unset)"
		}
		rows = append(rows, []string{label, count(counts[k])})
	}
	return rows
}

func (p *panel) printReports(ctx context.Context) error {
	report, err := p.reports().Reports(ctx)
	if err != nil {
		return fmt.Errorf("reports: %w", err)
	}

	p.heading("USERS BY TYPE")
	p.table([]string{"Type", "Count"}, breakdownRows(report.UserTypes))

	tables := make([]string, 0, len(report.ListingsByTable))
	for name := range report.ListingsByTable {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	for _, name := range tables {
		p.heading("LISTINGS: " + name)
		p.table([]string{"Category", "Count"}, breakdownRows(report.ListingsByTable[name]))
	}

	p.heading("ORDERS BY STATUS")
	p.table([]string{"Status", "Count"}, breakdownRows(report.OrdersByStatus))

	p.heading("EMAIL DELIVERY")
	fmt.Fprintf(p.out, "Success rate: %.1f%%\n", report.EmailSuccessRate)
	return nil
}
