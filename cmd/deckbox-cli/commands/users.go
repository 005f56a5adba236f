package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(friendsCmd)
	rootCmd.AddCommand(setsCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile <username>",
	Short: "Prints a user's profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := client.Profile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		t := newTable(table.Row{"Field", "Value"})
		t.AppendRows([]table.Row{
			{"Username", profile.Username},
			{"Location", profile.Location},
			{"Bio", profile.Bio},
			{"Image", profile.Image},
			{"Last seen", profile.LastSeenOnline.Date},
			{"Feedback", profile.Feedback},
			{"Will trade", profile.WillTrade},
		})
		t.Render()
		return nil
	},
}

var friendsCmd = &cobra.Command{
	Use:   "friends <username>",
	Short: "Prints a user's friends.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		friends, err := client.Friends(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		t := newTable(table.Row{"Username", "Location", "Last seen"})
		for _, f := range friends {
			t.AppendRow(table.Row{f.Username, f.Location, f.LastSeenOnline.Date})
		}
		t.AppendFooter(table.Row{"", "Total", len(friends)})
		t.Render()
		return nil
	},
}

var setsCmd = &cobra.Command{
	Use:   "sets <username>",
	Short: "Prints the sets of a user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := client.Sets(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		t := newTable(table.Row{"Id", "Name"})
		for _, s := range sets {
			t.AppendRow(table.Row{s.ID, s.Name})
		}
		t.Render()
		return nil
	},
}
