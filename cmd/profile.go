package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facupepi/serviapp-cli/internal/api"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signed-in user's profile",
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long:  "Update one or more profile fields. Fields you do not pass keep their current value.",
	RunE:  runProfileUpdate,
}

func init() {
	profileUpdateCmd.Flags().String("name", "", "full name")
	profileUpdateCmd.Flags().String("phone", "", "phone number")
	profileUpdateCmd.Flags().String("province", "", "province")
	profileUpdateCmd.Flags().String("locality", "", "locality")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	user := s.CurrentUser()
	if user == nil {
		return errors.New("no hay sesión activa, usa 'serviapp login'")
	}

	return render(user, func() {
		fmt.Printf("Nombre:     %s\n", user.Name)
		fmt.Printf("Email:      %s\n", user.Email)
		if user.Phone != "" {
			fmt.Printf("Teléfono:   %s\n", user.Phone)
		}
		fmt.Printf("Ubicación:  %s, %s\n", user.Locality, user.Province)
		fmt.Printf("Reputación: %.1f (%d reseñas)\n", user.Rating, user.ReviewCount)
		fmt.Printf("Trabajos:   %d completados\n", user.CompletedJobs)
	})
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	req := api.UpdateProfileRequest{}
	req.Name, _ = cmd.Flags().GetString("name")
	req.Phone, _ = cmd.Flags().GetString("phone")
	req.Province, _ = cmd.Flags().GetString("province")
	req.Locality, _ = cmd.Flags().GetString("locality")

	if req == (api.UpdateProfileRequest{}) {
		return errors.New("nothing to update, pass at least one flag")
	}

	user, err := s.UpdateProfile(context.Background(), req)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut || yamlOut {
		return render(user, nil)
	}
	fmt.Printf("%s Perfil actualizado\n", colorGreen("✓"))
	return nil
}
