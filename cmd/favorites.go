package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite services",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favorite services",
	RunE:  runFavoritesList,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <service-id>",
	Short: "Add or remove a favorite",
	Long: `Toggle a service's favorite mark. The change applies locally first and
is confirmed with the backend; if the backend rejects it the local change is
rolled back.`,
	Args: cobra.ExactArgs(1),
	RunE: runFavoritesToggle,
}

func init() {
	favoritesListCmd.Flags().Bool("refresh", false, "reload favorites from the backend first")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	refresh, _ := cmd.Flags().GetBool("refresh")
	ids := s.FavoriteIDs()
	if refresh {
		ids, err = s.RefreshFavorites(context.Background())
		if err != nil {
			printError(err)
			return err
		}
	}

	return render(map[string]interface{}{"serviceIds": ids, "count": len(ids)}, func() {
		if len(ids) == 0 {
			fmt.Println("No tienes favoritos")
			return
		}
		for _, id := range ids {
			fmt.Printf("★ %s\n", id)
		}
	})
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	nowFavorite, err := s.ToggleFavorite(context.Background(), args[0])
	if err != nil {
		printError(err)
		return err
	}

	if nowFavorite {
		fmt.Printf("%s Agregado a favoritos: %s\n", colorGreen("✓"), args[0])
	} else {
		fmt.Printf("%s Quitado de favoritos: %s\n", colorGreen("✓"), args[0])
	}
	return nil
}
