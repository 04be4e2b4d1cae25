package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"yoyo_hotels/internal/adapters/observability"
	"yoyo_hotels/internal/app"
	"yoyo_hotels/internal/domain"
	"yoyo_hotels/internal/geo"
	"yoyo_hotels/internal/shared"
	"yoyo_hotels/internal/storage/sqlrepo"
	"yoyo_hotels/internal/wiring"
)

// env opens the repository for one command run. Caching is never used here.
func env(ctx context.Context) (*sqlrepo.Repo, shared.Config, func(), error) {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, logLevel)
	if indexed && cfg.CityIndexTTL <= 0 {
		cfg.CityIndexTTL = time.Hour
	}
	repo, db, err := wiring.Repo(ctx, cfg)
	if err != nil {
		return nil, cfg, nil, err
	}
	return repo, cfg, func() { _ = db.Close() }, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func searchCmd() *cobra.Command {
	var (
		lat, lon float64
		q        = app.DefaultSearchQuery(domain.Point{})
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find hotels near a point",
		Long:  `Lists hotels in cities within --radius km of (--lat, --lon) that have a room for --adults within the budget.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			repo, cfg, done, err := env(ctx)
			if err != nil {
				return err
			}
			defer done()

			q.Point = domain.Point{Lat: lat, Lon: lon}
			svc := app.NewSearchService(repo, wiring.Locator(repo, cfg), nil, 0)
			out, err := svc.Search(ctx, q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&lat, "lat", 0, "Latitude in degrees")
	f.Float64Var(&lon, "lon", 0, "Longitude in degrees")
	f.Float64VarP(&q.RadiusKm, "radius", "r", q.RadiusKm, "Search radius in km")
	f.StringVar(&q.Date, "date", "", "Stay date, echoed in results")
	f.IntVarP(&q.Adults, "adults", "a", q.Adults, "Number of adults")
	f.Float64Var(&q.MinBudget, "min-budget", q.MinBudget, "Minimum price per night")
	f.Float64Var(&q.MaxBudget, "max-budget", q.MaxBudget, "Maximum price per night")
	f.IntSliceVarP(&q.Stars, "stars", "s", nil, "Star ratings to include (repeatable or comma separated)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func hotelCmd() *cobra.Command {
	var (
		date   string
		adults int
	)
	cmd := &cobra.Command{
		Use:   "hotel <address_id>",
		Short: "Show a hotel and its room types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("address_id %q: %w", args[0], domain.ErrInvalidInput)
			}
			ctx := cmd.Context()
			repo, cfg, done, err := env(ctx)
			if err != nil {
				return err
			}
			defer done()

			avail, err := wiring.Availability(cfg)
			if err != nil {
				return err
			}
			out, err := app.NewDetailService(repo, avail, nil, 0).Get(ctx, id, date, adults)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if out.Hotel == nil {
				return domain.ErrNotFound
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Stay date")
	cmd.Flags().IntVarP(&adults, "adults", "a", app.DefaultAdults, "Number of adults")
	return cmd
}

func distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "distance <lat1> <lon1> <lat2> <lon2>",
		Short:              "Print the great-circle distance in km between two points",
		// negative coordinates would otherwise parse as shorthand flags
		DisableFlagParsing: true,
		Args:               cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v [4]float64
			for i, a := range args {
				f, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("argument %d (%q): %w", i+1, a, domain.ErrInvalidInput)
				}
				v[i] = f
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%.3f\n", geo.Haversine(v[0], v[1], v[2], v[3]))
			return err
		},
	}
}
