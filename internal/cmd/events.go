package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmvibe/crmdash/internal/guard"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events and their attendees",
	Long: `List events and their attendees.

Shows every event with its attendee count. Pass --attendees to include
the full attendee list under each event.

Examples:
  crmdash events
  crmdash events --attendees`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withAttendees, _ := cmd.Flags().GetBool("attendees")

		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.requireRoute(guard.Route{Name: "events"}); err != nil {
			return err
		}

		events, err := a.client.Events(cmd.Context())
		if err != nil {
			return err
		}

		if len(events) == 0 {
			fmt.Println("No events")
			return nil
		}

		for _, e := range events {
			fmt.Printf("%-44s %d attendees\n", e.EventName, e.AttendeeCount)
			if !withAttendees {
				continue
			}
			for _, at := range e.Attendees {
				fmt.Printf("  %-28s %-32s %s\n", at.Name, at.Email, at.Date)
			}
		}

		return nil
	},
}

func init() {
	eventsCmd.Flags().Bool("attendees", false, "include attendee lists")

	rootCmd.AddCommand(eventsCmd)
}
