package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mukesh.dev/internal/contact"
	"mukesh.dev/internal/services"
)

var messagesLimit int

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List the most recent contact form messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := contact.Open(cmd.Context(), cfg.Contact.Driver, cfg.Contact.DSN)
		if err != nil {
			return fmt.Errorf("opening contact store: %w", err)
		}
		defer store.Close()

		msgs, err := services.NewContactService(store).Recent(cmd.Context(), messagesLimit)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Println("No messages.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RECEIVED\tNAME\tEMAIL\tMESSAGE")
		for _, m := range msgs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.CreatedAt.Format(time.DateTime), m.Name, m.Email, truncate(m.Message, 60))
		}
		return tw.Flush()
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	messagesCmd.Flags().IntVarP(&messagesLimit, "limit", "n", 20, "maximum messages to list")
	rootCmd.AddCommand(messagesCmd)
}
