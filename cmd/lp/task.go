package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/task"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Checklist task commands",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var (
		configPath string
		status     string
		owner      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks across products",
		Long:  "Lists checklist tasks with optional filters, ordered by due date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskList(cmd, configPath, status, owner)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&owner, "owner", "", "filter by owner email")
	return cmd
}

func runTaskList(cmd *cobra.Command, configPath, status, owner string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	tasks, err := listTasks(gormDB, status, owner)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tTASK\tDUE\tSTATUS\tOWNER")
	for _, pt := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			pt.ProductTaskID, pt.ProductID, truncate(pt.TaskName, 28), pt.DueDate, pt.Status, pt.OwnerEmail)
	}
	return w.Flush()
}

func listTasks(db *gorm.DB, status, owner string) ([]models.ProductTask, error) {
	q := db.Model(&models.ProductTask{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if owner != "" {
		q = q.Where("owner_email = ?", owner)
	}

	var tasks []models.ProductTask
	if err := q.Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		configPath string
		status     string
		priority   string
		owner      string
		startDate  string
		dueDate    string
		notes      string
		blocker    string
		actor      string
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a checklist task",
		Long:  "Updates task fields. Any status can be set from any other status.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := task.UpdateOpts{
				Status:     status,
				Priority:   priority,
				OwnerEmail: owner,
				StartDate:  startDate,
				DueDate:    dueDate,
				Actor:      actor,
			}
			if cmd.Flags().Changed("notes") {
				opts.Notes = &notes
			}
			if cmd.Flags().Changed("blocker") {
				opts.BlockerReason = &blocker
			}
			return runTaskUpdate(cmd, configPath, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "launchpad.yaml", "path to Launchpad config file")
	cmd.Flags().StringVar(&status, "status", "", "new status (NotStarted, InProgress, Blocked, QA, Review, Approved, Done)")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")
	cmd.Flags().StringVar(&owner, "owner", "", "new owner email")
	cmd.Flags().StringVar(&startDate, "start", "", "new start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&dueDate, "due", "", "new due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&notes, "notes", "", "task notes (empty clears)")
	cmd.Flags().StringVar(&blocker, "blocker", "", "blocker reason (empty clears)")
	cmd.Flags().StringVar(&actor, "actor", "", "acting user email")
	return cmd
}

func runTaskUpdate(cmd *cobra.Command, configPath, taskID string, opts task.UpdateOpts) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	pt, err := task.Update(gormDB, taskID, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Updated task %s (%s)\n", pt.ProductTaskID, pt.Status)
	if pt.Status == models.StatusBlocked && pt.BlockerReason != "" {
		fmt.Fprintf(out, "Blocked: %s\n", pt.BlockerReason)
	}
	return nil
}
