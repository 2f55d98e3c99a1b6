// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "commonshub",
	Short: "CommonsHub is a web platform for community groups",
	Long: `CommonsHub is a web platform for community groups
where people organize discussions, share documents, plan actions
and keep track of what happens in their groups.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
