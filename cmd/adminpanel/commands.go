package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func dashboardCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show record counts for every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.printDashboard(cmd.Context())
		},
	}
}

func usersCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the most recent profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.printUsers(cmd.Context())
		},
	}
}

func addAdminCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "add-admin <email>",
		Short: "Grant admin access by email, creating the profile if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := p.admins().AddAdminByEmail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("add admin %s: %w", args[0], err)
			}
			p.printAdminResult("granted", res)
			return nil
		},
	}
}

func addAdminIDCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "add-admin-id <id>",
		Short: "Grant admin access to an existing profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := p.admins().AddAdminByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("add admin %s: %w", args[0], err)
			}
			p.printAdminResult("granted", res)
			return nil
		},
	}
}

func removeAdminCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-admin <id>",
		Short: "Revoke admin access from a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := p.admins().RemoveAdmin(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("remove admin %s: %w", args[0], err)
			}
			p.printAdminResult("revoked", res)
			return nil
		},
	}
}

func listAdminsCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "list-admins",
		Short: "List every profile with admin access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.printAdmins(cmd.Context())
		},
	}
}

func emailsCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "emails",
		Short: "Show recent email deliveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.printEmails(cmd.Context())
		},
	}
}

func filesCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "Show recent file uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.printFiles(cmd.Context())
		},
	}
}

func notificationsCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show recent admin notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.printNotifications(cmd.Context())
		},
	}
}

func reportsCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "Show user, listing, order and email breakdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return p.printReports(cmd.Context())
		},
	}
}

func allCmd(p *panel) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every read-only report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			steps := []func() error{
				func() error { return p.printDashboard(ctx) },
				func() error { return p.printUsers(ctx) },
				func() error { return p.printAdmins(ctx) },
				func() error { return p.printEmails(ctx) },
				func() error { return p.printFiles(ctx) },
				func() error { return p.printNotifications(ctx) },
				func() error { return p.printReports(ctx) },
			}
			for _, step := range steps {
				if err := step(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
