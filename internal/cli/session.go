package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/codescope/internal/zoom"
)

// sessionCmd groups the zoom session subcommands.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage zoom sessions",
	Long: `Zoom sessions record which targets have been expanded so a
conversation can pick up where it left off. Sessions live in
.codescope/sessions.json.`,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored zoom sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := zoom.LoadStore(zoom.DefaultStorePath("."))
		if err != nil {
			return err
		}
		metas := store.ListSessions()
		if len(metas) == 0 {
			fmt.Println("No sessions.")
			return nil
		}
		for _, meta := range metas {
			marker := " "
			if meta.Active {
				marker = "*"
			}
			fmt.Printf("%s %-20s last accessed %s\n", marker, meta.Name, meta.LastAccessed)
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the zooms recorded in a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := zoom.LoadStore(zoom.DefaultStorePath("."))
		if err != nil {
			return err
		}
		session, ok := store.GetSession(args[0])
		if !ok {
			return fmt.Errorf("session %q not found", args[0])
		}
		fmt.Printf("Session %s (created %s)\n", session.Name, session.CreatedAt)
		if session.Description != "" {
			fmt.Printf("  %s\n", session.Description)
		}
		for _, az := range session.ActiveZooms {
			fmt.Printf("  %s @ %s\n", az.Target.String(), az.Depth)
		}
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a zoom session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return zoom.WithPersistence(zoom.DefaultStorePath("."), func(store *zoom.SessionStore) error {
			return store.DeleteSession(args[0])
		})
	},
}

func init() {
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}
