package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vikash893/newsdigest/internal/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the available news categories",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range category.All() {
			fmt.Printf("%-15s %s %s\n", c.ID, c.Icon, c.Name)
		}
	},
}
