package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowyourrights/cards/server/internal/model"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// get (find or create)
	var userID, farcasterID string
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Find a user by --user or --farcaster, creating it when absent",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" && farcasterID == "" {
				return fmt.Errorf("--user or --farcaster required")
			}
			u, outcome, err := apiClient().FindOrCreateUser(cmd.Context(), userID, farcasterID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"user": u, "outcome": outcome})
		},
	}
	getCmd.Flags().StringVarP(&userID, "user", "u", "", "User ID")
	getCmd.Flags().StringVarP(&farcasterID, "farcaster", "f", "", "Farcaster ID")
	usersCmd.AddCommand(getCmd)

	// create
	var createFID, createState string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with a fresh ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := apiClient().CreateUser(cmd.Context(), createFID, createState)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
	createCmd.Flags().StringVarP(&createFID, "farcaster", "f", "", "Farcaster ID")
	createCmd.Flags().StringVarP(&createState, "state", "s", "", "Initial jurisdiction (two-letter code)")
	usersCmd.AddCommand(createCmd)

	// update
	var (
		updLocation, updTier string
		updStates            []string
		updVersion           int64
	)
	updateCmd := &cobra.Command{
		Use:   "update USER_ID",
		Short: "Update a user's location, saved states or subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.UserPatch
			if cmd.Flags().Changed("location") {
				patch.CurrentLocation = &updLocation
			}
			if cmd.Flags().Changed("saved-states") {
				patch.SavedStates = &updStates
			}
			if cmd.Flags().Changed("tier") {
				tier := model.SubscriptionTier(updTier)
				patch.SubscriptionStatus = &tier
			}
			if cmd.Flags().Changed("expected-version") {
				patch.ExpectedVersion = &updVersion
			}
			u, err := apiClient().UpdateUser(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
	updateCmd.Flags().StringVarP(&updLocation, "location", "l", "", "Current jurisdiction")
	updateCmd.Flags().StringSliceVar(&updStates, "saved-states", nil, "Saved jurisdictions (comma separated)")
	updateCmd.Flags().StringVarP(&updTier, "tier", "t", "", "Subscription tier (free, premium)")
	updateCmd.Flags().Int64Var(&updVersion, "expected-version", 0, "Reject the update unless the stored version matches")
	usersCmd.AddCommand(updateCmd)

	rootCmd.AddCommand(usersCmd)
}
