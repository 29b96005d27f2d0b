package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facupepi/serviapp-cli/internal/api"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Appointment requests, sent and received",
	Long: `Appointment commands for both roles: the requests you made as a client
and the ones your services received as a provider.

Examples:
  serviapp requests list
  serviapp requests received
  serviapp requests create svc_123 --date 2026-09-02 --time 10:00
  serviapp requests respond apt_9 --accept
  serviapp requests respond apt_9 --reject --reason "Fuera de zona"`,
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the appointments you requested",
	RunE:  runRequestsList,
}

var requestsReceivedCmd = &cobra.Command{
	Use:   "received",
	Short: "List the appointments received across all your services",
	RunE:  runRequestsReceived,
}

var requestsCreateCmd = &cobra.Command{
	Use:   "create <service-id>",
	Short: "Request an appointment on a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestsCreate,
}

var requestsRespondCmd = &cobra.Command{
	Use:   "respond <id>",
	Short: "Accept or reject a received request",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestsRespond,
}

var requestsCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark an accepted appointment as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestsComplete,
}

var requestsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a pending appointment you requested",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestsCancel,
}

func init() {
	requestsCreateCmd.Flags().String("date", "", "date (YYYY-MM-DD)")
	requestsCreateCmd.Flags().String("time", "", "time (HH:MM)")
	_ = requestsCreateCmd.MarkFlagRequired("date")
	_ = requestsCreateCmd.MarkFlagRequired("time")

	requestsRespondCmd.Flags().Bool("accept", false, "accept the request")
	requestsRespondCmd.Flags().Bool("reject", false, "reject the request")
	requestsRespondCmd.Flags().String("reason", "", "rejection reason")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsReceivedCmd)
	requestsCmd.AddCommand(requestsCreateCmd)
	requestsCmd.AddCommand(requestsRespondCmd)
	requestsCmd.AddCommand(requestsCompleteCmd)
	requestsCmd.AddCommand(requestsCancelCmd)
	rootCmd.AddCommand(requestsCmd)
}

func printAppointmentTable(appts []api.Appointment, showClient bool) {
	if len(appts) == 0 {
		fmt.Println("No hay turnos")
		return
	}

	other := "PROVEEDOR"
	if showClient {
		other = "CLIENTE"
	}
	w := newTable()
	printTableHeader(w, "ID", "SERVICIO", other, "FECHA", "HORA", "ESTADO")
	for _, a := range appts {
		name := a.ProviderName
		if showClient {
			name = a.ClientName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(a.ID, 12),
			truncate(a.ServiceTitle, 28),
			truncate(name, 20),
			a.Date,
			a.Time,
			formatAppointmentStatus(a.Status),
		)
	}
	_ = w.Flush()
}

func formatAppointmentStatus(status api.AppointmentStatus) string {
	switch status {
	case api.AppointmentPending:
		return colorYellow("PENDIENTE")
	case api.AppointmentAccepted:
		return colorGreen("ACEPTADO")
	case api.AppointmentCompleted:
		return colorGreen("COMPLETADO")
	case api.AppointmentRejected:
		return colorRed("RECHAZADO")
	case api.AppointmentCancelled:
		return colorRed("CANCELADO")
	case api.AppointmentExpired:
		return colorYellow("VENCIDO")
	default:
		return string(status)
	}
}

func runRequestsList(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	if err := s.RefreshRequests(context.Background()); err != nil {
		printError(err)
		return err
	}

	appts := s.UserRequests()
	return render(map[string]interface{}{"appointments": appts, "count": len(appts)}, func() {
		printAppointmentTable(appts, false)
	})
}

func runRequestsReceived(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	appts, err := s.GetAllServiceAppointments(context.Background())
	if err != nil {
		printError(err)
		return err
	}

	return render(map[string]interface{}{"appointments": appts, "count": len(appts)}, func() {
		printAppointmentTable(appts, true)
	})
}

func runRequestsCreate(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	timeOfDay, _ := cmd.Flags().GetString("time")

	appt, err := s.RequestAppointment(context.Background(), args[0], date, timeOfDay)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut || yamlOut {
		return render(appt, nil)
	}
	fmt.Printf("%s Turno solicitado para el %s a las %s (%s)\n",
		colorGreen("✓"), appt.Date, appt.Time, appt.ID)
	return nil
}

func runRequestsRespond(cmd *cobra.Command, args []string) error {
	accept, _ := cmd.Flags().GetBool("accept")
	reject, _ := cmd.Flags().GetBool("reject")
	reason, _ := cmd.Flags().GetString("reason")

	if accept == reject {
		return fmt.Errorf("usa exactamente uno de --accept o --reject")
	}

	s, err := getSession()
	if err != nil {
		return err
	}

	if err := s.RespondToRequest(context.Background(), args[0], accept, reason); err != nil {
		printError(err)
		return err
	}

	if accept {
		fmt.Printf("%s Turno aceptado: %s\n", colorGreen("✓"), args[0])
	} else {
		fmt.Printf("%s Turno rechazado: %s\n", colorGreen("✓"), args[0])
	}
	return nil
}

func runRequestsComplete(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	if err := s.CompleteRequest(context.Background(), args[0]); err != nil {
		printError(err)
		return err
	}

	fmt.Printf("%s Turno completado: %s\n", colorGreen("✓"), args[0])
	return nil
}

func runRequestsCancel(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	if err := s.CancelRequest(context.Background(), args[0]); err != nil {
		printError(err)
		return err
	}

	fmt.Printf("%s Turno cancelado: %s\n", colorGreen("✓"), args[0])
	return nil
}
