package main

import (
	"github.com/spf13/cobra"

	"github.com/knowyourrights/cards/server/internal/model"
)

func init() {
	contactsCmd := &cobra.Command{Use: "contacts", Short: "Trusted contact operations"}

	var userID string
	contactsCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "Owner user ID (required)")
	_ = contactsCmd.MarkPersistentFlagRequired("user")

	// add
	var in model.NewContact
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trusted contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient().AddContact(cmd.Context(), userID, in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
	addCmd.Flags().StringVarP(&in.Name, "name", "n", "", "Contact name (required)")
	addCmd.Flags().StringVarP(&in.Phone, "phone", "p", "", "Contact phone (required)")
	addCmd.Flags().StringVarP(&in.Email, "email", "e", "", "Contact email")
	contactsCmd.AddCommand(addCmd)

	// list
	contactsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trusted contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			lst, err := apiClient().ListContacts(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), lst)
		},
	})

	// remove
	contactsCmd.AddCommand(&cobra.Command{
		Use:   "remove CONTACT_ID",
		Short: "Remove a trusted contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient().RemoveContact(cmd.Context(), userID, args[0]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"success": true})
		},
	})

	rootCmd.AddCommand(contactsCmd)
}
