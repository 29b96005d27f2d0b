package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facupepi/serviapp-cli/internal/api"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Provider dashboard: your services and pending requests",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}
	if s.CurrentUser() == nil {
		return errors.New("no hay sesión activa, usa 'serviapp login'")
	}

	ctx := context.Background()
	owned, err := s.FetchOwnedServices(ctx)
	if err != nil {
		printError(err)
		return err
	}

	received, err := s.GetAllServiceAppointments(ctx)
	if err != nil {
		printError(err)
		return err
	}

	var pending []api.Appointment
	for _, a := range received {
		if a.Status == api.AppointmentPending {
			pending = append(pending, a)
		}
	}

	active := 0
	for _, svc := range owned {
		if svc.Status == api.ServiceActive {
			active++
		}
	}

	summary := map[string]interface{}{
		"services":        owned,
		"activeServices":  active,
		"pendingRequests": pending,
	}

	return render(summary, func() {
		fmt.Printf("Servicios: %d (%d activos)\n", len(owned), active)
		if len(owned) > 0 {
			fmt.Println()
			printServiceTable(owned, s)
		}

		fmt.Printf("\nSolicitudes pendientes: %d\n", len(pending))
		if len(pending) > 0 {
			fmt.Println()
			printAppointmentTable(pending, true)
		}
	})
}
