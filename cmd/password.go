package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Password recovery",
}

var passwordForgotCmd = &cobra.Command{
	Use:   "forgot <email>",
	Short: "Request a password recovery email",
	Args:  cobra.ExactArgs(1),
	RunE:  runPasswordForgot,
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset <token>",
	Short: "Set a new password with a recovery token",
	Long: `Consume the recovery token from the email and set a new password.
The password must have 8-16 characters with at least one uppercase letter
and one digit.`,
	Args: cobra.ExactArgs(1),
	RunE: runPasswordReset,
}

func init() {
	passwordResetCmd.Flags().String("password", "", "new password")
	passwordResetCmd.Flags().String("confirm", "", "new password, again")
	_ = passwordResetCmd.MarkFlagRequired("password")
	_ = passwordResetCmd.MarkFlagRequired("confirm")

	passwordCmd.AddCommand(passwordForgotCmd)
	passwordCmd.AddCommand(passwordResetCmd)
	rootCmd.AddCommand(passwordCmd)
}

func runPasswordForgot(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	if err := s.ForgotPassword(context.Background(), args[0]); err != nil {
		printError(err)
		return err
	}

	fmt.Printf("%s Si el email existe, recibirás un enlace de recuperación.\n", colorGreen("✓"))
	return nil
}

func runPasswordReset(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	password, _ := cmd.Flags().GetString("password")
	confirm, _ := cmd.Flags().GetString("confirm")

	if err := s.ResetPassword(context.Background(), args[0], password, confirm); err != nil {
		printError(err)
		return err
	}

	fmt.Printf("%s Contraseña actualizada. Ya puedes iniciar sesión.\n", colorGreen("✓"))
	return nil
}
