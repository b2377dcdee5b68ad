package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmvibe/crmdash/internal/guard"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses and their buyers",
	Long: `List courses and their buyers.

Shows every course with its buyer count. Pass --buyers to include the
full buyer list under each course.

Examples:
  crmdash courses
  crmdash courses --buyers`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withBuyers, _ := cmd.Flags().GetBool("buyers")

		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.requireRoute(guard.Route{Name: "courses"}); err != nil {
			return err
		}

		courses, err := a.client.Courses(cmd.Context())
		if err != nil {
			return err
		}

		if len(courses) == 0 {
			fmt.Println("No courses")
			return nil
		}

		for _, c := range courses {
			fmt.Printf("%-44s %d buyers\n", c.CourseName, c.BuyerCount)
			if !withBuyers {
				continue
			}
			for _, b := range c.Buyers {
				fmt.Printf("  %-28s %-32s %s\n", b.Name, b.Email, b.Date)
			}
		}

		return nil
	},
}

func init() {
	coursesCmd.Flags().Bool("buyers", false, "include buyer lists")

	rootCmd.AddCommand(coursesCmd)
}
