package main

import (
	"github.com/spf13/cobra"

	"github.com/knowyourrights/cards/server/internal/model"
)

func init() {
	encCmd := &cobra.Command{Use: "encounters", Short: "Encounter operations"}

	// create
	var in model.NewEncounter
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Document a new encounter",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := apiClient().CreateEncounter(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	}
	createCmd.Flags().StringVarP(&in.UserID, "user", "u", "", "Owner user ID (required)")
	createCmd.Flags().StringVarP(&in.Location, "location", "l", "", "Where it happened")
	createCmd.Flags().StringVar(&in.ScriptUsed, "script", "", "Script used")
	createCmd.Flags().StringVar(&in.RecordingURL, "recording", "", "Recording URL")
	createCmd.Flags().StringVarP(&in.Notes, "notes", "n", "", "Free-form notes")
	_ = createCmd.MarkFlagRequired("user")
	encCmd.AddCommand(createCmd)

	// list
	var listUser string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's encounters, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			lst, err := apiClient().ListEncounters(cmd.Context(), listUser)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), lst)
		},
	}
	listCmd.Flags().StringVarP(&listUser, "user", "u", "", "Owner user ID (required)")
	_ = listCmd.MarkFlagRequired("user")
	encCmd.AddCommand(listCmd)

	// get
	encCmd.AddCommand(&cobra.Command{
		Use:   "get ENCOUNTER_ID",
		Short: "Get an encounter by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := apiClient().GetEncounter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	})

	// update
	var updNotes, updLocation string
	updateCmd := &cobra.Command{
		Use:   "update ENCOUNTER_ID",
		Short: "Update an encounter's notes or location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.EncounterPatch
			if cmd.Flags().Changed("notes") {
				patch.Notes = &updNotes
			}
			if cmd.Flags().Changed("location") {
				patch.Location = &updLocation
			}
			e, err := apiClient().UpdateEncounter(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	}
	updateCmd.Flags().StringVarP(&updNotes, "notes", "n", "", "Replacement notes")
	updateCmd.Flags().StringVarP(&updLocation, "location", "l", "", "Replacement location")
	encCmd.AddCommand(updateCmd)

	// share
	encCmd.AddCommand(&cobra.Command{
		Use:   "share ENCOUNTER_ID IDENTITY...",
		Short: "Share an encounter with one or more identities",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := apiClient().ShareEncounter(cmd.Context(), args[0], args[1:]...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	})

	rootCmd.AddCommand(encCmd)
}
