package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/api"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/booking"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List bookings and change their status",
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the session's bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sess, err := a.requireSession()
		if err != nil {
			return err
		}

		var rows []booking.Booking
		if sess.Role == session.RoleProvider {
			rows, err = a.api.ProviderBookings(cmd.Context(), sess.ID)
		} else {
			rows, err = a.api.ClientBookings(cmd.Context(), sess.ID)
		}
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No bookings.")
			return nil
		}

		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
		for _, b := range rows {
			title := b.ServiceTitle
			if title == "" {
				title = b.ServiceID
			}
			fmt.Printf("%s  %-10s  %s %s  %s\n", b.ID, b.Status, b.BookingDate, b.BookingTime, title)
		}
		return nil
	},
}

var bookingsStatusCmd = &cobra.Command{
	Use:   "status <booking-id> <pending|confirmed|completed|cancelled>",
	Short: "Move a booking to a new status",
	Long: `Move a booking to a new status. The transition is validated for the
session's role before anything is sent: clients cancel pending bookings
and complete confirmed ones, providers confirm or cancel pending ones.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		sess, err := a.requireSession()
		if err != nil {
			return err
		}

		tracker := booking.NewTracker(a.gw, sess.Role)
		if sess.Role == session.RoleProvider {
			err = tracker.LoadProvider(cmd.Context(), sess.ID)
		} else {
			err = tracker.LoadClient(cmd.Context(), sess.ID)
		}
		if err != nil {
			return err
		}

		to := booking.FromWire(args[1])
		if err := tracker.UpdateStatus(cmd.Context(), args[0], to); err != nil {
			return err
		}

		updated, _ := tracker.Get(args[0])
		fmt.Printf("Booking %s is now %s\n", args[0], updated.Status)
		return nil
	},
}

var bookingsCreateCmd = &cobra.Command{
	Use:   "create <service-id>",
	Short: "Book a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		timeOfDay, _ := cmd.Flags().GetString("time")
		notes, _ := cmd.Flags().GetString("notes")
		if date == "" || timeOfDay == "" {
			return fmt.Errorf("--date and --time are required")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}

		b, err := a.api.CreateBooking(cmd.Context(), api.CreateBookingRequest{
			ServiceID:   args[0],
			BookingDate: date,
			BookingTime: timeOfDay,
			Notes:       notes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Booked %s on %s at %s (%s)\n", args[0], b.BookingDate, b.BookingTime, b.Status)
		return nil
	},
}

func init() {
	bookingsCreateCmd.Flags().String("date", "", "booking date (YYYY-MM-DD)")
	bookingsCreateCmd.Flags().String("time", "", "booking time (HH:MM)")
	bookingsCreateCmd.Flags().String("notes", "", "notes for the provider")

	bookingsCmd.AddCommand(bookingsListCmd)
	bookingsCmd.AddCommand(bookingsStatusCmd)
	bookingsCmd.AddCommand(bookingsCreateCmd)
	rootCmd.AddCommand(bookingsCmd)
}
