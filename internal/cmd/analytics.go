package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmvibe/crmdash/internal/guard"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show event-to-course conversion analytics",
	Long: `Show event-to-course conversion analytics.

Reports overall totals, the conversion funnel from event attendance to
course purchase, and a per-event breakdown of which courses attendees
went on to buy. Rates are percentages computed by the backend.

Examples:
  crmdash analytics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.requireRoute(guard.Route{Name: "analytics"}); err != nil {
			return err
		}

		analytics, err := a.client.Analytics(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Customers: %d   Events: %d   Courses: %d\n\n",
			analytics.TotalCustomers, analytics.TotalEvents, analytics.TotalCourses)

		stats := analytics.ConversionStats
		fmt.Println("Conversion funnel:")
		fmt.Printf("  Event attendees:  %d\n", stats.TotalEventAttendees)
		fmt.Printf("  Course buyers:    %d\n", stats.TotalCourseBuyers)
		fmt.Printf("  Converted:        %d (%.2f%%)\n\n", stats.ConvertedCustomers, stats.ConversionRate)

		if len(analytics.EventCorrelations) == 0 {
			return nil
		}

		fmt.Println("Per-event conversion:")
		for _, ec := range analytics.EventCorrelations {
			fmt.Printf("  %-40s %d attended, %d converted (%.2f%%)\n",
				ec.EventName, ec.EventAttendees, ec.ConvertedToCourse, ec.ConversionRate)
			for _, tc := range ec.TopCourses {
				fmt.Printf("    %-38s %d\n", tc.CourseName, tc.Count)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}
