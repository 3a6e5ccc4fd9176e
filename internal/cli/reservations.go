package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmcampos/biblioteca/internal/model"
)

func init() {
	rootCmd.AddCommand(reserveCmd, cancelCmd, reservationsCmd, historyCmd, dashboardCmd)
}

var reserveCmd = &cobra.Command{
	Use:   "reserve <book-id>",
	Short: "Reserve a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		reservation, err := c.Reserve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Reserved '%s' (reservation %s, status %s)\n",
			reservation.Book.Title, reservation.ID, reservation.Status)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <reservation-id>",
	Short: "Cancel one of your reservations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		if err := c.CancelReservation(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Reservation cancelled.")
		return nil
	},
}

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "List your reservations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		reservations, err := c.ListReservations(cmd.Context())
		if err != nil {
			return err
		}
		if len(reservations) == 0 {
			fmt.Println("No reservations.")
			return nil
		}

		printReservationTable(reservations)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your borrow history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		loans, err := c.History(cmd.Context())
		if err != nil {
			return err
		}
		if len(loans) == 0 {
			fmt.Println("No borrow history.")
			return nil
		}

		printLoanTable(loans)
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your active reservations and recent history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession()
		if err != nil {
			return err
		}

		dash, err := c.GetDashboard(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Active reservations:")
		if len(dash.ActiveReservations) == 0 {
			fmt.Println("  none")
		} else {
			printReservationTable(dash.ActiveReservations)
		}

		fmt.Println()
		fmt.Println("Recent history:")
		if len(dash.RecentHistory) == 0 {
			fmt.Println("  none")
		} else {
			printLoanTable(dash.RecentHistory)
		}
		return nil
	},
}

func printReservationTable(reservations []model.Reservation) {
	fmt.Printf("%-38s %-35s %-12s %-12s %s\n", "ID", "Title", "Reserved", "Status", "Due")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range reservations {
		due := r.DueDate
		if due == "" {
			due = "-"
		}
		fmt.Printf("%-38s %-35s %-12s %-12s %s\n",
			r.ID,
			truncate(r.Book.Title, 35),
			r.ReservationDate,
			r.Status,
			due)
	}
}

func printLoanTable(loans []model.Loan) {
	fmt.Printf("%-35s %-12s %-12s %-12s %s\n", "Title", "Borrowed", "Due", "Returned", "Status")
	fmt.Println(strings.Repeat("-", 90))
	for _, l := range loans {
		returned := l.ReturnDate
		if returned == "" {
			returned = "-"
		}
		fmt.Printf("%-35s %-12s %-12s %-12s %s\n",
			truncate(l.Book.Title, 35),
			l.BorrowDate,
			l.DueDate,
			returned,
			l.Status)
	}
}
