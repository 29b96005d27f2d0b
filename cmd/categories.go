package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the service categories",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().Bool("refresh", false, "bypass the cached list")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("refresh")
	categories, err := s.FetchCategories(context.Background(), force)
	if err != nil {
		printError(err)
		return err
	}

	return render(map[string]interface{}{"categories": categories}, func() {
		for _, c := range categories {
			fmt.Println(c)
		}
	})
}
