package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptorloader"
	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptorprinter"
)

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:     "print <dump>",
	Short:   "print renders the declarations of a descriptor dump to std out",
	Example: "descriptor-roundtrip print metadata.yaml",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := descriptorloader.LoadFile(args[0])
		if err != nil {
			return err
		}
		return descriptorprinter.Print(doc, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}
