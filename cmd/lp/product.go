package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kanthai/launchpad/internal/config"
	"github.com/kanthai/launchpad/internal/db"
	"github.com/kanthai/launchpad/internal/metrics"
	"github.com/kanthai/launchpad/internal/product"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Product management commands",
	}

	cmd.AddCommand(newProductCreateCmd())
	cmd.AddCommand(newProductListCmd())
	cmd.AddCommand(newProductShowCmd())
	cmd.AddCommand(newProductUpdateCmd())
	cmd.AddCommand(newProductStatusCmd())
	cmd.AddCommand(newProductDeleteCmd())
	cmd.AddCommand(newProductAttachCmd())
	cmd.AddCommand(newProductMetricsCmd())
	return cmd
}

// connectFromConfig loads config and returns a GORM DB connection.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.Database.Name, err)
	}

	return cfg, gormDB, nil
}

// parseAssignments turns repeated Role=email flags into a map.
func parseAssignments(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		role, email, ok := strings.Cut(pair, "=")
		if !ok || role == "" {
			return nil, fmt.Errorf("bad --assign %q, want Role=email", pair)
		}
		out[role] = email
	}
	return out, nil
}

func newProductCreateCmd() *cobra.Command {
	var (
		configPath  string
		sku         string
		name        string
		category    string
		subCategory string
		launchMonth string
		goLive      string
		channels    []string
		cost        float64
		price       float64
		activate    bool
		templateID  string
		assigns     []string
		actor       string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new product",
		Long:  "Creates a product. With --activate, generates its launch checklist from the template immediately.",
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(assigns)
			if err != nil {
				return err
			}
			return runProductCreate(cmd, configPath, product.CreateOpts{
				SKUCode:       sku,
				ProductName:   name,
				Category:      category,
				SubCategory:   subCategory,
				LaunchMonth:   launchMonth,
				GoLiveDate:    goLive,
				SalesChannels: channels,
				Cost:          cost,
				Price:         price,
				Activate:      activate,
				TemplateID:    templateID,
				Assignments:   assignments,
				Actor:         actor,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&sku, "sku", "", "SKU code")
	cmd.Flags().StringVar(&name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&category, "category", "", "product category")
	cmd.Flags().StringVar(&subCategory, "sub-category", "", "product sub-category")
	cmd.Flags().StringVar(&launchMonth, "launch-month", "", "target launch month (e.g. 2024-06)")
	cmd.Flags().StringVar(&goLive, "go-live", "", "go-live date, YYYY-MM-DD (required)")
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "sales channel (repeatable)")
	cmd.Flags().Float64Var(&cost, "cost", 0, "unit cost")
	cmd.Flags().Float64Var(&price, "price", 0, "selling price")
	cmd.Flags().BoolVar(&activate, "activate", false, "activate and generate the launch checklist")
	cmd.Flags().StringVar(&templateID, "template", "", "task template id (defaults to config)")
	cmd.Flags().StringArrayVar(&assigns, "assign", nil, "role assignment, Role=email (repeatable)")
	cmd.Flags().StringVar(&actor, "actor", "", "acting user email")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("go-live")
	return cmd
}

func runProductCreate(cmd *cobra.Command, configPath string, opts product.CreateOpts) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if opts.TemplateID == "" {
		opts.TemplateID = cfg.Template
	}

	p, tasks, err := product.Create(gormDB, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created product %s (%s)\n", p.ProductID, p.Status)
	fmt.Fprintf(out, "Go-live: %s\n", p.GoLiveDate)
	if len(tasks) > 0 {
		fmt.Fprintf(out, "Generated %d checklist tasks\n", len(tasks))
	}
	return nil
}

func newProductListCmd() *cobra.Command {
	var (
		configPath  string
		status      string
		category    string
		launchMonth string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long:  "Lists products with optional filters. Output is formatted as a table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductList(cmd, configPath, product.ListFilters{
				Status:      status,
				Category:    category,
				LaunchMonth: launchMonth,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&launchMonth, "launch-month", "", "filter by launch month")
	return cmd
}

func runProductList(cmd *cobra.Command, configPath string, filters product.ListFilters) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	products, err := product.List(gormDB, filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(products) == 0 {
		fmt.Fprintln(out, "No products found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tGO-LIVE\tSTATUS\tGP%")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\n",
			p.ProductID, truncate(p.ProductName, 32), p.Category, p.GoLiveDate, p.Status, p.GPPct)
	}
	return w.Flush()
}

func newProductShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show a product and its checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductShow(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	return cmd
}

func runProductShow(cmd *cobra.Command, configPath, productID string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	p, err := product.Get(gormDB, productID)
	if err != nil {
		return err
	}
	tasks, err := product.Tasks(gormDB, productID)
	if err != nil {
		return err
	}
	assignments, err := product.Assignments(gormDB, productID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s — %s\n", p.ProductID, p.ProductName)
	fmt.Fprintf(out, "Status:    %s\n", p.Status)
	fmt.Fprintf(out, "Category:  %s", p.Category)
	if p.SubCategory != "" {
		fmt.Fprintf(out, " / %s", p.SubCategory)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Go-live:   %s\n", p.GoLiveDate)
	if p.SalesChannel != "" {
		fmt.Fprintf(out, "Channels:  %s\n", p.SalesChannel)
	}
	if p.Price > 0 {
		fmt.Fprintf(out, "Economics: cost %.2f, price %.2f, GP %.1f%%\n", p.Cost, p.Price, p.GPPct)
	}
	if len(assignments) > 0 {
		fmt.Fprintln(out, "Owners:")
		for role, email := range assignments {
			fmt.Fprintf(out, "  %s: %s\n", role, email)
		}
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out, "\nNo checklist tasks (product not activated).")
		return nil
	}

	fmt.Fprintf(out, "\nChecklist (%d tasks):\n", len(tasks))
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tTASK\tPHASE\tDUE\tSTATUS\tOWNER")
	for _, pt := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			pt.ProductTaskID, pt.TaskCode, truncate(pt.TaskName, 28), pt.Phase, pt.DueDate, pt.Status, pt.OwnerEmail)
	}
	return w.Flush()
}

func newProductUpdateCmd() *cobra.Command {
	var (
		configPath  string
		sku         string
		name        string
		category    string
		subCategory string
		launchMonth string
		goLive      string
		cost        float64
		price       float64
		activate    bool
		actor       string
	)

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update a product",
		Long:  "Updates product fields. Moving the go-live date of an active product shifts its whole checklist.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := product.UpdateOpts{
				SKUCode:     sku,
				ProductName: name,
				Category:    category,
				SubCategory: subCategory,
				LaunchMonth: launchMonth,
				GoLiveDate:  goLive,
				Actor:       actor,
			}
			if cmd.Flags().Changed("cost") {
				opts.Cost = &cost
			}
			if cmd.Flags().Changed("price") {
				opts.Price = &price
			}
			if cmd.Flags().Changed("activate") {
				opts.Activate = &activate
			}
			return runProductUpdate(cmd, configPath, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&sku, "sku", "", "SKU code")
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&category, "category", "", "product category")
	cmd.Flags().StringVar(&subCategory, "sub-category", "", "product sub-category")
	cmd.Flags().StringVar(&launchMonth, "launch-month", "", "target launch month")
	cmd.Flags().StringVar(&goLive, "go-live", "", "new go-live date, YYYY-MM-DD")
	cmd.Flags().Float64Var(&cost, "cost", 0, "unit cost")
	cmd.Flags().Float64Var(&price, "price", 0, "selling price")
	cmd.Flags().BoolVar(&activate, "activate", false, "activate a draft product")
	cmd.Flags().StringVar(&actor, "actor", "", "acting user email")
	return cmd
}

func runProductUpdate(cmd *cobra.Command, configPath, productID string, opts product.UpdateOpts) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	p, shifted, err := product.Update(gormDB, productID, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Updated product %s\n", p.ProductID)
	if shifted > 0 {
		fmt.Fprintf(out, "Rescheduled %d tasks to match go-live %s\n", shifted, p.GoLiveDate)
	}
	return nil
}

func newProductStatusCmd() *cobra.Command {
	var (
		configPath string
		actor      string
	)

	cmd := &cobra.Command{
		Use:   "status <product-id> <status>",
		Short: "Set a product's lifecycle status",
		Long:  "Sets the product status (Draft, Active, Hold, Launched).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := product.UpdateStatus(gormDB, args[0], args[1], actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %s is now %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&actor, "actor", "", "acting user email")
	return cmd
}

func newProductDeleteCmd() *cobra.Command {
	var (
		configPath string
		actor      string
	)

	cmd := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Long:  "Deletes the product row. Checklist tasks are kept for audit history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := product.Delete(gormDB, args[0], actor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&actor, "actor", "", "acting user email")
	return cmd
}

func newProductAttachCmd() *cobra.Command {
	var (
		configPath string
		taskID     string
		attType    string
		driveURL   string
		actor      string
	)

	cmd := &cobra.Command{
		Use:   "attach <product-id>",
		Short: "Record a file attachment",
		Long:  "Records a drive-hosted file against a product, optionally tied to one of its tasks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			att, err := product.AddAttachment(gormDB, product.AttachOpts{
				ProductID:     args[0],
				ProductTaskID: taskID,
				Type:          attType,
				DriveURL:      driveURL,
				Actor:         actor,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded attachment %s\n", att.AttachmentID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&taskID, "task", "", "product task id to attach to")
	cmd.Flags().StringVar(&attType, "type", "", "attachment type (e.g. artwork, contract)")
	cmd.Flags().StringVar(&driveURL, "url", "", "drive URL of the file (required)")
	cmd.Flags().StringVar(&actor, "actor", "", "acting user email")
	cmd.MarkFlagRequired("url")
	return cmd
}

func newProductMetricsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "metrics <product-id>",
		Short: "Show launch metrics for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductMetrics(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	return cmd
}

func runProductMetrics(cmd *cobra.Command, configPath, productID string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	p, err := product.Get(gormDB, productID)
	if err != nil {
		return err
	}
	tasks, err := product.Tasks(gormDB, productID)
	if err != nil {
		return err
	}

	m := metrics.ComputeProductMetrics(*p, tasks, time.Now())
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s — %s\n", p.ProductID, p.ProductName)
	fmt.Fprintf(out, "Completion: %d%%\n", m.WeightedCompletion)
	if m.HasTargetDate {
		fmt.Fprintf(out, "Go-live:    %s (%d days out)\n", p.GoLiveDate, m.DaysToLaunch)
		fmt.Fprintf(out, "Forecast:   %s (variance %+d days)\n", m.ForecastDate, m.ScheduleVarianceDays)
	}
	fmt.Fprintf(out, "Risk:       %d (%s)\n", m.RiskScore, m.RiskBand)
	for _, d := range m.RiskDrivers {
		fmt.Fprintf(out, "  - %s\n", d)
	}
	if len(m.Readiness) > 0 {
		fmt.Fprintln(out, "Readiness:")
		for _, fr := range m.Readiness {
			fmt.Fprintf(out, "  %s: %d/%d (%d%%)\n", fr.Name, fr.Done, fr.Total, fr.Pct)
		}
	}
	return nil
}
