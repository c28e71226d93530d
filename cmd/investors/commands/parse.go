package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"investorparser/internal/profile"
	"investorparser/pkg/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.html>",
	Short: "Prints the record parsed from a single profile page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		contents, err := os.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read page", err, "file", args[0])
		}

		parser := profile.NewParser(tel)
		record, err := parser.Parse(string(contents), filepath.Base(args[0]))
		if err != nil {
			serviceutil.Fatal("failed to parse page", err, "file", args[0])
		}

		out, err := record.MarshalIndent()
		if err != nil {
			serviceutil.Fatal("failed to encode record", err)
		}
		fmt.Println(string(out))
	},
}
