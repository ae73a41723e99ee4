package cmd

import (
	"fmt"

	"office-pump/internal/emails"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var emailsCmd = &cobra.Command{
	Use:   "emails <log-file>",
	Short: "Extract e-mail addresses from a log file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := runLogger("emails")

		lists, err := emails.ExtractFile(args[0])
		if err != nil {
			return err
		}
		allPath, uniquePath, err := lists.Save(viper.GetString("emails.out"))
		if err != nil {
			return err
		}

		log.WithField("file", args[0]).Debug("log scanned")
		fmt.Printf("%d address(es), %d unique\n", len(lists.All), len(lists.Unique))
		fmt.Printf("Saved: %s\nSaved: %s\n", allPath, uniquePath)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(emailsCmd)

	emailsCmd.Flags().String("out", ".", "directory for the two lists")
	viper.BindPFlag("emails.out", emailsCmd.Flags().Lookup("out"))
}
