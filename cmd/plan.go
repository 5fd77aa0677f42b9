package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/studycopilot/studycopilot-cli/service"
	"github.com/studycopilot/studycopilot-cli/types"
)

var (
	planDocs        []string
	planExamDate    string
	planHoursPerDay int
	planDay         int
	planTask        string
	planCompleted   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and track a study plan",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a study plan leading up to an exam date",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(planDocs) == 0 {
			return fmt.Errorf("pass at least one document id with --docs")
		}
		if planExamDate == "" {
			return fmt.Errorf("pass the exam date with --exam-date (YYYY-MM-DD)")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		planner := service.NewPlannerService(a.api, a.log)
		plan, err := planner.Generate(context.Background(), planDocs, planExamDate, planHoursPerDay)
		if err != nil {
			return err
		}
		printPlan(plan)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your study plans; the most recent is the active one",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		planner := service.NewPlannerService(a.api, a.log)
		plans, err := planner.Load(context.Background())
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("No study plans yet. Generate one with 'studycopilot plan generate'.")
			return nil
		}
		printPlan(planner.Active())
		if len(plans) > 1 {
			fmt.Printf("\n(%d older plans not shown)\n", len(plans)-1)
		}
		return nil
	},
}

var planToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Mark a task of the active plan complete or incomplete",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planTask == "" {
			return fmt.Errorf("pass the task id with --task")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		planner := service.NewPlannerService(a.api, a.log)
		if _, err := planner.Load(context.Background()); err != nil {
			return err
		}
		if err := planner.ToggleTask(context.Background(), planDay, planTask, planCompleted); err != nil {
			return err
		}
		fmt.Println("Task updated.")
		return nil
	},
}

func printPlan(plan *types.StudyPlan) {
	if plan == nil {
		return
	}
	title := plan.Title
	if title == "" {
		title = plan.Plan.Title
	}
	fmt.Printf("%s (%s)\n", title, plan.ID)
	for _, day := range plan.Plan.Days {
		header := fmt.Sprintf("Day %d", day.DayNumber)
		if day.Date != "" {
			header += " - " + day.Date
		}
		fmt.Println("\n" + header)
		for _, task := range day.Tasks {
			box := "[ ]"
			if task.Completed {
				box = color.GreenString("[x]")
			}
			fmt.Printf("  %s %s  %s (%dm, %s)\n", box, task.ID, task.Description, task.DurationMinutes, task.Type)
		}
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planToggleCmd)

	planGenerateCmd.Flags().StringSliceVarP(&planDocs, "docs", "d", nil, "document ids to plan from")
	planGenerateCmd.Flags().StringVarP(&planExamDate, "exam-date", "e", "", "exam date (YYYY-MM-DD)")
	planGenerateCmd.Flags().IntVar(&planHoursPerDay, "hours", 2, "study hours per day")

	planToggleCmd.Flags().IntVar(&planDay, "day", 1, "day number of the task")
	planToggleCmd.Flags().StringVar(&planTask, "task", "", "task id (required)")
	planToggleCmd.Flags().BoolVar(&planCompleted, "completed", true, "completion state to set")
}
