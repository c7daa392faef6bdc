// leadengine-cli runs the lead-capture wizard in the terminal and
// submits the result to a contact endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vucehq/go-leadengine/components/countries"
	"github.com/vucehq/go-leadengine/internal/config"
	"github.com/vucehq/go-leadengine/pkg/geo"
	"github.com/vucehq/go-leadengine/pkg/submit"
	"github.com/vucehq/go-leadengine/pkg/tui"
	"github.com/vucehq/go-leadengine/pkg/wizard"
)

const geoTimeout = 3 * time.Second

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/api/contact", "contact endpoint URL")
	mobile := flag.Bool("mobile", false, "walk the ten-question micro-step flow instead of the three stages")
	noGeo := flag.Bool("no-geo", false, "skip the geolocation country prefill")
	flag.Parse()

	cfg := config.FromEnv()

	mode := wizard.ModeDesktop
	if *mobile {
		mode = wizard.ModeMobile
	}

	w := wizard.New(mode, wizard.WithTransport(submit.New(*endpoint)))

	entries, err := countries.DefaultEntries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "country directory: %v\n", err)
		os.Exit(1)
	}

	if !*noGeo {
		// Best effort; a slow or failed lookup just skips the prefill.
		ctx, cancel := context.WithTimeout(context.Background(), geoTimeout)
		lookup := geo.New(geo.WithEndpoint(cfg.Lookups.GeoEndpoint))
		w.PrefillFromGeo(ctx, lookup, entries)
		cancel()
	}

	runner := tui.NewRunner(w, tui.WithCountries(entries))
	if err := runner.Run(context.Background()); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
