package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/facupepi/serviapp-cli/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to ServiApp",
	Long: `Authenticate against the ServiApp backend and store the session token.

After five consecutive failures the login is blocked for ten minutes; the
block survives restarting the CLI.

Examples:
  serviapp login juan@example.com
  serviapp login juan@example.com --password "$SERVIAPP_PASSWORD"`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear all locally stored data",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new ServiApp account",
	Long: `Create an account. The form is validated locally before any request:
name 2-50 characters, a well-formed email, password of 8-16 characters with
at least one uppercase letter and one digit, province and locality 2-50
characters, optional phone of 7-15 digits.`,
	RunE: runRegister,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is logged in",
	RunE:  runStatus,
}

func init() {
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("password", "", "password")
	registerCmd.Flags().String("phone", "", "phone number (optional)")
	registerCmd.Flags().String("province", "", "province")
	registerCmd.Flags().String("locality", "", "locality")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("province")
	_ = registerCmd.MarkFlagRequired("locality")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Print("Contraseña: ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		password = strings.TrimRight(line, "\r\n")
	}

	if err := s.Login(context.Background(), args[0], password); err != nil {
		printError(err)
		return err
	}

	user := s.CurrentUser()
	if jsonOut || yamlOut {
		return render(user, nil)
	}
	fmt.Printf("%s Sesión iniciada como %s <%s>\n", colorGreen("✓"), user.Name, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	if err := s.Logout(); err != nil {
		printError(err)
		return err
	}

	fmt.Printf("%s Sesión cerrada. Datos locales eliminados.\n", colorGreen("✓"))
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	req := api.RegisterRequest{}
	req.Name, _ = cmd.Flags().GetString("name")
	req.Email, _ = cmd.Flags().GetString("email")
	req.Password, _ = cmd.Flags().GetString("password")
	req.Phone, _ = cmd.Flags().GetString("phone")
	req.Province, _ = cmd.Flags().GetString("province")
	req.Locality, _ = cmd.Flags().GetString("locality")

	result, err := s.Register(context.Background(), req)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut || yamlOut {
		return render(result, nil)
	}
	if result.Authenticated {
		fmt.Printf("%s Cuenta creada y sesión iniciada.\n", colorGreen("✓"))
	} else {
		fmt.Printf("%s %s\n", colorGreen("✓"), result.Message)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	user := s.CurrentUser()
	if user == nil {
		fmt.Println("No has iniciado sesión.")
		return nil
	}

	if jsonOut || yamlOut {
		return render(user, nil)
	}

	fmt.Printf("Usuario:    %s\n", user.Name)
	fmt.Printf("Email:      %s\n", user.Email)
	fmt.Printf("Ubicación:  %s, %s\n", user.Locality, user.Province)
	if user.Verified {
		fmt.Printf("Verificado: %s\n", colorGreen("sí"))
	} else {
		fmt.Printf("Verificado: %s\n", colorYellow("no"))
	}
	fmt.Printf("Reputación: %.1f (%d reseñas, %d trabajos)\n",
		user.Rating, user.ReviewCount, user.CompletedJobs)
	return nil
}
