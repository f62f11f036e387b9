package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pocketlegal/pocketlegal/internal/app/scripts"
)

// Scripts prints what-to-say guidance for an encounter scenario. Premium
// accounts get generated, region-aware scripts; everyone else gets the
// built-in catalog.
func (a *App) Scripts(ctx context.Context) error {
	scenario, err := askEncounterType(a)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	region, err := GetSimpleText(a.reader, "State or region (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	advice := a.advisor.Advise(ctx, a.user, scripts.Request{
		Scenario: scenario,
		Region:   region,
	})

	printlnFn("")
	for i, s := range advice.Scripts {
		printlnFn(fmt.Sprintf("%d. \"%s\"", i+1, s.Text))
		if s.Usage != "" {
			printlnFn("   " + s.Usage)
		}
	}
	if advice.Guidance != "" {
		printlnFn("")
		printlnFn(advice.Guidance)
	}
	if advice.StateSpecific != "" {
		printlnFn(advice.StateSpecific)
	}
	if !advice.Generated {
		printlnFn("")
		printlnFn("(built-in guidance; upgrade for scripts tailored to your state)")
	}
	return nil
}
