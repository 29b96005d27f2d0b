package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/facupepi/serviapp-cli/internal/api"
	"github.com/facupepi/serviapp-cli/internal/session"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Browse and manage services",
	Long: `Service commands: the public listing, your own publications and their
lifecycle.

Examples:
  serviapp services list
  serviapp services search --q plomero --province Cordoba
  serviapp services show svc_123
  serviapp services mine
  serviapp services deactivate svc_123`,
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published services",
	RunE:  runServicesList,
}

var servicesSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search services by text, category or zone",
	RunE:  runServicesList, // same operation, narrowed by flags
}

var servicesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one service in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesShow,
}

var servicesMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own services",
	RunE:  runServicesMine,
}

var servicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new service",
	Long: `Publish a service. The description must have at least 100 characters;
availability windows are given per weekday, zones as province/locality pairs.

Examples:
  serviapp services create \
    --title "Plomería integral" \
    --description "..." \
    --category Plomería \
    --price 15000 \
    --zone "Cordoba/Villa María" \
    --availability "monday=09:00-12:00,14:00-18:00" \
    --availability "tuesday=09:00-12:00"`,
	RunE: runServicesCreate,
}

var servicesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update one of your services",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesUpdate,
}

var servicesActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Republish a deactivated service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesActivate,
}

var servicesDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Hide a service from the public listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesDeactivate,
}

var servicesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a service",
	Long: `Delete a service permanently. Best-effort: the backend refuses while
active appointments still reference it.`,
	Args: cobra.ExactArgs(1),
	RunE: runServicesDelete,
}

var servicesCalendarCmd = &cobra.Command{
	Use:   "calendar <id>",
	Short: "Show a service's free slots per day",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesCalendar,
}

func init() {
	for _, c := range []*cobra.Command{servicesListCmd, servicesSearchCmd} {
		c.Flags().String("q", "", "free-text query")
		c.Flags().String("category", "", "filter by category")
		c.Flags().String("province", "", "filter by province")
		c.Flags().String("locality", "", "filter by locality")
	}

	for _, c := range []*cobra.Command{servicesCreateCmd, servicesUpdateCmd} {
		c.Flags().String("title", "", "service title")
		c.Flags().String("description", "", "service description")
		c.Flags().String("category", "", "service category")
		c.Flags().Float64("price", 0, "price")
		c.Flags().StringArray("zone", nil, "coverage zone as province/locality[/neighborhood] (repeatable)")
		c.Flags().StringArray("availability", nil, "weekday=HH:MM-HH:MM[,HH:MM-HH:MM] (repeatable)")
		c.Flags().String("image-url", "", "image URL")
	}

	servicesDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	servicesCmd.AddCommand(servicesListCmd)
	servicesCmd.AddCommand(servicesSearchCmd)
	servicesCmd.AddCommand(servicesShowCmd)
	servicesCmd.AddCommand(servicesMineCmd)
	servicesCmd.AddCommand(servicesCreateCmd)
	servicesCmd.AddCommand(servicesUpdateCmd)
	servicesCmd.AddCommand(servicesActivateCmd)
	servicesCmd.AddCommand(servicesDeactivateCmd)
	servicesCmd.AddCommand(servicesDeleteCmd)
	servicesCmd.AddCommand(servicesCalendarCmd)
	rootCmd.AddCommand(servicesCmd)
}

func runServicesList(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	filter := &api.ServiceFilter{}
	filter.Query, _ = cmd.Flags().GetString("q")
	filter.Category, _ = cmd.Flags().GetString("category")
	filter.Province, _ = cmd.Flags().GetString("province")
	filter.Locality, _ = cmd.Flags().GetString("locality")

	services, err := s.FetchServices(context.Background(), filter)
	if err != nil {
		printError(err)
		return err
	}

	return render(map[string]interface{}{"services": services, "count": len(services)}, func() {
		printServiceTable(services, s)
	})
}

func runServicesMine(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	services, err := s.FetchOwnedServices(context.Background())
	if err != nil {
		printError(err)
		return err
	}

	return render(map[string]interface{}{"services": services, "count": len(services)}, func() {
		printServiceTable(services, nil)
	})
}

func printServiceTable(services []api.Service, s *session.Session) {
	if len(services) == 0 {
		fmt.Println("No se encontraron servicios")
		return
	}

	w := newTable()
	printTableHeader(w, "ID", "TÍTULO", "CATEGORÍA", "PRECIO", "ESTADO", "RATING", "FAV")
	for _, svc := range services {
		fav := ""
		if s != nil && s.IsFavorite(svc.ID) {
			fav = "★"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.0f\t%s\t%.1f\t%s\n",
			truncate(svc.ID, 12),
			truncate(svc.Title, 32),
			svc.Category,
			svc.Price,
			formatServiceStatus(svc.Status),
			svc.Rating,
			fav,
		)
	}
	_ = w.Flush()
}

func formatServiceStatus(status api.ServiceStatus) string {
	switch status {
	case api.ServiceActive:
		return colorGreen("ACTIVO")
	case api.ServiceInactive:
		return colorYellow("INACTIVO")
	default:
		return string(status)
	}
}

func runServicesShow(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	svc, err := s.GetService(context.Background(), args[0])
	if err != nil {
		printError(err)
		return err
	}

	return render(svc, func() {
		fmt.Printf("ID:          %s\n", svc.ID)
		fmt.Printf("Título:      %s\n", svc.Title)
		fmt.Printf("Categoría:   %s\n", svc.Category)
		fmt.Printf("Precio:      $%.2f\n", svc.Price)
		fmt.Printf("Estado:      %s\n", formatServiceStatus(svc.Status))
		fmt.Printf("Proveedor:   %s\n", svc.ProviderName)
		fmt.Printf("Rating:      %.1f (%d reseñas)\n", svc.Rating, svc.ReviewCount)
		if len(svc.Zones) > 0 {
			zones := make([]string, 0, len(svc.Zones))
			for _, z := range svc.Zones {
				zones = append(zones, z.Locality+", "+z.Province)
			}
			fmt.Printf("Zonas:       %s\n", strings.Join(zones, " | "))
		}
		if len(svc.Availability) > 0 {
			fmt.Println("Horarios:")
			week := session.ExpandAvailability(svc.Availability)
			for _, day := range session.Weekdays {
				ranges, ok := week[day]
				if !ok {
					continue
				}
				windows := make([]string, 0, len(ranges))
				for _, r := range ranges {
					windows = append(windows, r.Start+"-"+r.End)
				}
				fmt.Printf("  %-10s %s\n", day, strings.Join(windows, ", "))
			}
		}
		fmt.Printf("\n%s\n", svc.Description)
	})
}

// parseZones turns "province/locality[/neighborhood]" flags into zones.
func parseZones(values []string) ([]api.Zone, error) {
	zones := make([]api.Zone, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, "/")
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("zona inválida %q: usa provincia/localidad[/barrio]", v)
		}
		z := api.Zone{Province: parts[0], Locality: parts[1]}
		if len(parts) > 2 {
			z.Neighborhood = parts[2]
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// parseAvailability turns "weekday=HH:MM-HH:MM,..." flags into the form shape.
func parseAvailability(values []string) (session.WeekSchedule, error) {
	week := session.WeekSchedule{}
	for _, v := range values {
		day, windows, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("disponibilidad inválida %q: usa dia=HH:MM-HH:MM", v)
		}
		day = strings.ToLower(strings.TrimSpace(day))
		for _, window := range strings.Split(windows, ",") {
			start, end, ok := strings.Cut(strings.TrimSpace(window), "-")
			if !ok || start == "" || end == "" {
				return nil, fmt.Errorf("rango horario inválido %q", window)
			}
			week[day] = append(week[day], session.TimeRange{Start: start, End: end})
		}
	}
	return week, nil
}

func serviceInputFromFlags(cmd *cobra.Command) (session.CreateServiceInput, error) {
	var in session.CreateServiceInput
	in.Title, _ = cmd.Flags().GetString("title")
	in.Description, _ = cmd.Flags().GetString("description")
	in.Category, _ = cmd.Flags().GetString("category")
	in.Price, _ = cmd.Flags().GetFloat64("price")
	in.ImageURL, _ = cmd.Flags().GetString("image-url")

	zoneFlags, _ := cmd.Flags().GetStringArray("zone")
	zones, err := parseZones(zoneFlags)
	if err != nil {
		return in, err
	}
	in.Zones = zones

	availFlags, _ := cmd.Flags().GetStringArray("availability")
	week, err := parseAvailability(availFlags)
	if err != nil {
		return in, err
	}
	in.Availability = week
	return in, nil
}

func runServicesCreate(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	in, err := serviceInputFromFlags(cmd)
	if err != nil {
		return err
	}

	svc, err := s.CreateService(context.Background(), in)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut || yamlOut {
		return render(svc, nil)
	}
	fmt.Printf("%s Servicio publicado: %s (%s)\n", colorGreen("✓"), svc.Title, svc.ID)
	return nil
}

func runServicesUpdate(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	in, err := serviceInputFromFlags(cmd)
	if err != nil {
		return err
	}

	svc, err := s.UpdateService(context.Background(), args[0], in)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut || yamlOut {
		return render(svc, nil)
	}
	fmt.Printf("%s Servicio actualizado: %s\n", colorGreen("✓"), svc.Title)
	return nil
}

func runServicesActivate(cmd *cobra.Command, args []string) error {
	return runServiceStatusChange(args[0], true)
}

func runServicesDeactivate(cmd *cobra.Command, args []string) error {
	return runServiceStatusChange(args[0], false)
}

func runServiceStatusChange(id string, activate bool) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if activate {
		err = s.ReactivateService(ctx, id)
	} else {
		err = s.DeactivateService(ctx, id)
	}
	if err != nil {
		printError(err)
		return err
	}

	if activate {
		fmt.Printf("%s Servicio activado: %s\n", colorGreen("✓"), id)
	} else {
		fmt.Printf("%s Servicio desactivado: %s\n", colorGreen("✓"), id)
	}
	return nil
}

func runServicesDelete(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		fmt.Printf("%s ¿Eliminar el servicio %s? Esta acción no se puede deshacer. [y/N]: ", colorYellow("⚠"), args[0])
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Cancelado")
			return nil
		}
	}

	s, err := getSession()
	if err != nil {
		return err
	}

	if err := s.DeleteService(context.Background(), args[0]); err != nil {
		printError(err)
		return err
	}

	fmt.Printf("%s Servicio eliminado: %s\n", colorGreen("✓"), args[0])
	return nil
}

func runServicesCalendar(cmd *cobra.Command, args []string) error {
	s, err := getSession()
	if err != nil {
		return err
	}

	days, err := s.ServiceCalendar(context.Background(), args[0])
	if err != nil {
		printError(err)
		return err
	}

	return render(map[string]interface{}{"days": days}, func() {
		if len(days) == 0 {
			fmt.Println("Sin turnos disponibles")
			return
		}
		w := newTable()
		printTableHeader(w, "FECHA", "HORARIOS LIBRES")
		for _, d := range days {
			fmt.Fprintf(w, "%s\t%s\n", d.Date, strings.Join(d.Slots, " "))
		}
		_ = w.Flush()
	})
}
