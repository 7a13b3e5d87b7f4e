// internal/commands/tests.go
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwiater/promptlab/internal/testcases"
)

// testsCmd lists the experiments available in test mode.
var testsCmd = &cobra.Command{
	Use:   "tests",
	Short: "List the available test cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(GetConfig())
		if err != nil {
			return err
		}
		listTestCases(cmd.OutOrStdout(), catalog)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testsCmd)
}

// listTestCases prints one block per case in catalog order.
func listTestCases(out io.Writer, catalog *testcases.Catalog) {
	keyStyle := color.New(color.FgCyan, color.Bold)
	cases := catalog.Cases()

	width := 0
	for _, tc := range cases {
		if len(tc.Key) > width {
			width = len(tc.Key)
		}
	}

	fmt.Fprintln(out, "Test cases:")
	for _, tc := range cases {
		pad := strings.Repeat(" ", width-len(tc.Key)+2)
		fmt.Fprintf(out, "  %s%s%s — %s\n", keyStyle.Sprint(tc.Key), pad, tc.Label, tc.Description)
		if len(tc.Aspects) > 0 {
			fmt.Fprintf(out, "  %s  aspects: %s\n", strings.Repeat(" ", width), strings.Join(tc.Aspects, ", "))
		}
	}
}
