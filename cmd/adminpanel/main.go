// Command adminpanel inspects and administers the marketplace database
// from a terminal: dashboard counts, recent activity and the admin toggle.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Kariqs/agromarket-api/config"
	"github.com/Kariqs/agromarket-api/experts"
	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type panel struct {
	db      *gorm.DB
	logger  *zap.Logger
	out     io.Writer
	experts experts.Repository

	envFile string
	limit   int
	verbose bool
}

func (p *panel) admins() *services.AdminService {
	return services.NewAdminService(p.db, p.logger)
}

func (p *panel) reports() *services.ReportService {
	return services.NewReportService(p.db, p.experts)
}

func (p *panel) notifier() *services.Notifier {
	return services.NewNotifier(p.db, p.logger)
}

// connect is skipped when a database was injected.
func (p *panel) connect(ctx context.Context) error {
	if p.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		p.logger = logger
	}
	if p.db != nil {
		return nil
	}

	cfg, err := config.Load(p.envFile)
	if err != nil {
		return err
	}
	db, err := initializers.OpenDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	p.db = db

	p.experts = experts.NewGormRepository(db)
	if cfg.ExpertStore == "mongo" {
		mongoDB, err := initializers.ConnectToMongo(ctx, cfg)
		if err != nil {
			return fmt.Errorf("expert store: %w", err)
		}
		p.experts = experts.NewMongoRepository(mongoDB)
	}
	return nil
}

func newRootCmd(p *panel) *cobra.Command {
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.out == nil {
		p.out = os.Stdout
	}

	root := &cobra.Command{
		Use:   "adminpanel",
		Short: "Administer the AgroMarket database",
		Long: `Inspect and administer the AgroMarket database.

Reads the same environment (.env, DB_DRIVER, DB_DSN, EXPERT_STORE, ...) as
the API server and talks to the database directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return p.connect(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&p.envFile, "env-file", ".env", "environment file to load before reading the environment")
	root.PersistentFlags().IntVar(&p.limit, "limit", 10, "number of rows to show in activity listings")
	root.PersistentFlags().BoolVarP(&p.verbose, "verbose", "v", false, "log to stderr")
	root.SetOut(p.out)

	root.AddCommand(
		dashboardCmd(p),
		usersCmd(p),
		addAdminCmd(p),
		addAdminIDCmd(p),
		removeAdminCmd(p),
		listAdminsCmd(p),
		emailsCmd(p),
		filesCmd(p),
		notificationsCmd(p),
		reportsCmd(p),
		allCmd(p),
	)
	return root
}

func main() {
	if err := newRootCmd(&panel{}).Execute(); err != nil {
		os.Exit(1)
	}
}
