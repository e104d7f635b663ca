package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowyourrights/cards/server/internal/model"
)

func init() {
	alertsCmd := &cobra.Command{Use: "alerts", Short: "Emergency alert operations"}

	var userID string
	alertsCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "User ID (required)")
	_ = alertsCmd.MarkPersistentFlagRequired("user")

	// send
	var location, message string
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Alert every trusted contact of the user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiClient()
			contacts, err := c.ListContacts(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if len(contacts) == 0 {
				return fmt.Errorf("user %s has no trusted contacts", userID)
			}
			res, err := c.DispatchAlert(cmd.Context(), model.AlertRequest{
				UserID:   userID,
				Location: location,
				Message:  message,
				Contacts: contacts,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	sendCmd.Flags().StringVarP(&location, "location", "l", "", "Current location")
	sendCmd.Flags().StringVarP(&message, "message", "m", "", "Custom message")
	alertsCmd.AddCommand(sendCmd)

	// history
	alertsCmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Show past alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			hist, err := apiClient().AlertHistory(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), hist)
		},
	})

	rootCmd.AddCommand(alertsCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Show service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient().Health(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), status)
			return err
		},
	})
}
