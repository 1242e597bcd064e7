package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gp-wales/internal/addrparse"
	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/config"
	"github.com/gp-wales/internal/county"
	"github.com/gp-wales/internal/db"
	"github.com/gp-wales/internal/importer"
	"github.com/gp-wales/internal/menu"
	"github.com/gp-wales/internal/report"
	"github.com/gp-wales/internal/store"
	"github.com/gp-wales/internal/web"
)

var (
	configFile string
	debugFlag  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gprx",
		Short: "Welsh GP prescribing and QOF analysis",
		Long:  `Interactive and batch analysis of GP prescribing and QOF achievement data for Wales`,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug output")

	rootCmd.AddCommand(createMenuCmd())
	rootCmd.AddCommand(createResolveCmd())
	rootCmd.AddCommand(createClassifyCmd())
	rootCmd.AddCommand(createCountiesCmd())
	rootCmd.AddCommand(createLoadCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig reads configuration; --debug wins over DEBUG.
func loadConfig() *config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if debugFlag {
		cfg.Debug = true
	}
	return cfg
}

// deps is the wiring shared by the subcommands that read the dataset.
type deps struct {
	cfg   *config.Config
	conn  *db.Connection
	store *store.Store
	svc   *analysis.Service
}

func connect(ctx context.Context) *deps {
	cfg := loadConfig()

	mode, err := county.ParseMatchMode(cfg.Analysis.PostcodeMatch)
	if err != nil {
		log.Fatalf("Invalid postcode match mode: %v", err)
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	st := store.New(conn, cfg.Debug)
	svc := analysis.New(st, county.NewResolver(mode), cfg.Analysis, cfg.Debug)
	return &deps{cfg: cfg, conn: conn, store: st, svc: svc}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func createMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive analysis menu",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signalContext()
			defer stop()

			d := connect(ctx)
			defer d.conn.Close()

			charts, err := report.NewCharts(d.cfg.Charts)
			if err != nil {
				log.Fatalf("Failed to prepare chart directory: %v", err)
			}
			if dir := charts.Dir(); dir != "" {
				fmt.Printf("Charts for this session: %s\n", dir)
			}

			m := menu.New(os.Stdin, os.Stdout, d.store, d.svc, charts, d.cfg.Debug)
			if err := m.Run(ctx); err != nil {
				log.Fatalf("Menu failed: %v", err)
			}
		},
	}
}

func createResolveCmd() *cobra.Command {
	var postcode, countyName, posttown, address string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an address to its unitary authority",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			mode, err := county.ParseMatchMode(cfg.Analysis.PostcodeMatch)
			if err != nil {
				log.Fatalf("Invalid postcode match mode: %v", err)
			}
			r := county.NewResolver(mode)

			if address != "" {
				c, resolved := addrparse.Resolve(r, address)
				fmt.Printf("Parsed: postcode=%q city=%q county=%q\n", c.Postcode, c.City, c.County)
				fmt.Println(resolved)
				return
			}
			if postcode == "" && countyName == "" && posttown == "" {
				log.Fatalf("One of --postcode, --county, --posttown or --address is required")
			}
			fmt.Println(r.Resolve(postcode, countyName, posttown))
		},
	}

	cmd.Flags().StringVar(&postcode, "postcode", "", "practice postcode")
	cmd.Flags().StringVar(&countyName, "county", "", "county as recorded")
	cmd.Flags().StringVar(&posttown, "posttown", "", "post town as recorded")
	cmd.Flags().StringVar(&address, "address", "", "one-line address to parse")
	return cmd
}

func createClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [practice-id]",
		Short: "Classify a practice as Big or Small",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signalContext()
			defer stop()

			d := connect(ctx)
			defer d.conn.Close()

			res, err := d.svc.Size(ctx, args[0])
			if err != nil {
				log.Fatalf("Failed to classify %s: %v", args[0], err)
			}
			report.NewPrinter(os.Stdout).Size(res)
		},
	}
}

func createCountiesCmd() *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "counties",
		Short: "Aggregate practices by unitary authority",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signalContext()
			defer stop()

			d := connect(ctx)
			defer d.conn.Close()

			rep, err := d.svc.CountyAggregation(ctx)
			if err != nil {
				log.Fatalf("County aggregation failed: %v", err)
			}
			report.NewPrinter(os.Stdout).Counties(rep)

			if xlsxPath != "" {
				if err := report.WriteCountyWorkbook(xlsxPath, rep); err != nil {
					log.Fatalf("Failed to write workbook: %v", err)
				}
				fmt.Printf("Workbook saved to %s\n", xlsxPath)
			}
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the aggregation to this .xlsx file")
	return cmd
}

func createLoadCmd() *cobra.Command {
	var addressFile, prescribingFile, qofFile string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load CSV extracts into the database",
		Long:  `Create the schema if needed and import practice addresses, prescribing rows and QOF achievement from CSV`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signalContext()
			defer stop()

			d := connect(ctx)
			defer d.conn.Close()

			if err := d.conn.CreateSchema(ctx); err != nil {
				log.Fatalf("Failed to create schema: %v", err)
			}

			imp := importer.NewCSVImporter(d.conn, d.cfg.Debug)
			jobs := []struct {
				file  string
				table importer.Table
			}{
				{addressFile, importer.AddressTable},
				{prescribingFile, importer.PrescribingTable},
				{qofFile, importer.AchievementTable},
			}

			loaded := 0
			for _, job := range jobs {
				if job.file == "" {
					continue
				}
				res, err := imp.ImportCSV(ctx, job.file, job.table)
				if err != nil {
					log.Fatalf("Failed to import %s: %v", job.file, err)
				}
				fmt.Printf("%s: %d rows imported, %d skipped\n", res.Table, res.Imported, res.Errors)
				loaded++
			}
			if loaded == 0 {
				log.Fatalf("Nothing to load: pass --address, --prescribing or --qof")
			}
		},
	}

	cmd.Flags().StringVar(&addressFile, "address", "", "practice address CSV")
	cmd.Flags().StringVar(&prescribingFile, "prescribing", "", "prescribing CSV")
	cmd.Flags().StringVar(&qofFile, "qof", "", "QOF achievement CSV")
	return cmd
}

func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and metrics over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signalContext()
			defer stop()

			d := connect(ctx)
			defer d.conn.Close()

			fmt.Println("=== GP Wales API ===")
			fmt.Printf("Database: %s (%s)\n", d.cfg.Database.Name, d.cfg.Database.Driver)

			srv := web.NewServer(d.cfg.Web, d.store, d.svc)
			if err := srv.Start(ctx); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signalContext()
			defer stop()

			d := connect(ctx)
			defer d.conn.Close()

			fmt.Println("Database connection successful!")

			for _, table := range []string{"address", "gp_data_up_to_2015", "qof_achievement"} {
				var count int
				err := d.conn.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
				if err != nil {
					log.Printf("Error counting %s records: %v", table, err)
					continue
				}
				fmt.Printf("%s rows: %d\n", table, count)
			}
		},
	}
}
