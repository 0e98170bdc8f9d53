package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/sos-beacon/internal/app"
)

var (
	// contactName is the display name for a new contact.
	contactName string

	// contactCmd groups recipient management.
	contactCmd = &cobra.Command{
		Use:   "contact",
		Short: "Manage alert recipients.",
	}

	// contactAddCmd registers a recipient.
	contactAddCmd = &cobra.Command{
		Use:   "add <phone>",
		Short: "Add an alert recipient.",
		Long: `Adds a recipient by phone number. Formatting characters are stripped:
"+1 (555) 010-2000" is stored as 15550102000. A number without any digit
is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, application *app.App) error {
				contact, err := application.Contacts.Add(ctx, contactName, args[0])
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", contact.Label(), contact.PhoneDigits)

				return nil
			})
		},
	}

	// contactListCmd prints recipients with their pre-filled deep links.
	contactListCmd = &cobra.Command{
		Use:   "list",
		Short: "List recipients with their alert deep links.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(func(ctx context.Context, application *app.App) error {
				links, err := application.Engine.ContactLinks(ctx, "")
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()

				if len(links) == 0 {
					fmt.Fprintln(out, "No contacts yet.")

					return nil
				}

				for _, link := range links {
					fmt.Fprintf(out, "%s (%s)\n  sms:  %s\n  chat: %s\n",
						link.Contact.Label(), link.Contact.PhoneDigits, link.SMS, link.Chat)
				}

				return nil
			})
		},
	}

	// contactRemoveCmd deletes a recipient by phone number.
	contactRemoveCmd = &cobra.Command{
		Use:   "remove <phone>",
		Short: "Remove a recipient by phone number.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, application *app.App) error {
				if err := application.Contacts.Remove(ctx, args[0]); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", strings.TrimSpace(args[0]))

				return nil
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	contactAddCmd.Flags().StringVarP(&contactName, "name", "n", "", "display name shown in alert text")

	contactCmd.AddCommand(contactAddCmd, contactListCmd, contactRemoveCmd)
	rootCmd.AddCommand(contactCmd)
}
