package cmd

import (
	"fmt"

	"github.com/PolarWolf314/cryptora/internal/ui"
	"github.com/PolarWolf314/cryptora/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(listkeysCmd)
}

var listkeysCmd = &cobra.Command{
	Use:   "listkeys",
	Short: "List key files, oldest first, and show the latest",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting listkeys command")

		session, err := openSession()
		if err != nil {
			return err
		}

		result, err := workflows.ListKeys(cmd.Context(), session)
		if err != nil {
			return err
		}

		if len(result.Keys) == 0 {
			fmt.Println("No keys found.")
			fmt.Println(ui.Hint("Run " + ui.Code.Sprint("cryptora genkey") + " to create one"))
			return nil
		}

		fmt.Println("All keys:")
		for _, k := range result.Keys {
			fmt.Printf(" - %s\n", k.Name())
		}
		fmt.Printf("Latest key: %s\n", ui.Key.Sprint(result.Latest.Name()))
		Logger.Infof("Keys directory: %s", session.Store.Dir())
		return nil
	},
}
