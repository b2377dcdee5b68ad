package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var customersCmd = &cobra.Command{
	Use:   "customers [email]",
	Short: "List customers or show one customer's history",
	Long: `List customers or show one customer's history.

Without arguments, lists every customer with their event attendance and
course purchase counts. With an email argument, shows that customer's
full event and course history.

The customer views can be restricted to a single account email via the
access.customers_email config key.

Examples:
  crmdash customers
  crmdash customers jane@example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.requireRoute(a.customersRoute()); err != nil {
			return err
		}

		if len(args) == 1 {
			return showCustomer(cmd, a, args[0])
		}

		customers, err := a.client.Customers(cmd.Context())
		if err != nil {
			return err
		}

		if len(customers) == 0 {
			fmt.Println("No customers")
			return nil
		}

		fmt.Printf("%-28s %-32s %7s %8s\n", "NAME", "EMAIL", "EVENTS", "COURSES")
		for _, c := range customers {
			fmt.Printf("%-28s %-32s %7d %8d\n", c.Name, c.Email, c.EventCount, c.CourseCount)
		}

		return nil
	},
}

func showCustomer(cmd *cobra.Command, a *app, email string) error {
	customer, err := a.client.Customer(cmd.Context(), email)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", customer.Name, customer.Email)

	fmt.Printf("\nEvents attended (%d):\n", customer.EventCount)
	if len(customer.Events) == 0 {
		fmt.Println("  none")
	}
	for _, e := range customer.Events {
		fmt.Printf("  %-40s %s\n", e.EventName, e.Date)
	}

	fmt.Printf("\nCourses purchased (%d):\n", customer.CourseCount)
	if len(customer.Courses) == 0 {
		fmt.Println("  none")
	}
	for _, c := range customer.Courses {
		fmt.Printf("  %-40s %s\n", c.CourseName, c.Date)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(customersCmd)
}
