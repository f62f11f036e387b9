package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/common"
)

// Record starts a new capture session in the single recorder slot.
func (a *App) Record(ctx context.Context) error {
	session, err := a.recorder.Start(ctx)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrCaptureBusy):
			printlnFn("A recording is already in progress. Use 'stop' first, or 'save'/'discard' the stopped one.")
		case errors.Is(err, common.ErrDeviceAcquisition):
			printlnFn("Could not access the capture device:", err.Error())
		default:
			log.Printf("error: %v", err)
		}
		return err
	}
	a.session = session
	printlnFn("Recording started. Type 'stop' when the encounter is over.")
	return nil
}

// StopRecording stops the active session. The media stays in the session
// until it is saved or discarded.
func (a *App) StopRecording(ctx context.Context) error {
	if !a.isRecording() {
		printlnFn("Nothing is recording.")
		return nil
	}
	if err := a.session.Stop(); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("Recording stopped after %d second(s). Use 'save' or 'discard'.", a.session.ElapsedSeconds()))
	return nil
}

// SaveEncounter saves the stopped recording as an encounter. On an
// entitlement denial the session stays stopped so the user can delete an
// old encounter, upgrade, or discard.
func (a *App) SaveEncounter(ctx context.Context) error {
	if !a.hasStoppedRecording() {
		printlnFn("No stopped recording to save. Use 'record' and 'stop' first.")
		return nil
	}

	encType, err := askEncounterType(a)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	notes, err := GetMultiline(a.reader, "Notes (optional):", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	e, err := a.encounters.SaveRecording(ctx, a.user, a.session, encType, notes)
	if err != nil {
		if errors.Is(err, common.ErrEntitlementDenied) {
			printlnFn("Free tier limit reached. Delete an encounter or 'upgrade' to save more, or 'discard' this recording.")
			return err
		}
		log.Printf("error: %v", err)
		return err
	}

	a.session = nil
	printlnFn(fmt.Sprintf("Saved encounter %s (%s, %s).", e.ID, e.Type, e.Location))
	return nil
}

// DiscardRecording drops the stopped recording without saving.
func (a *App) DiscardRecording(ctx context.Context) error {
	if !a.hasStoppedRecording() {
		printlnFn("No stopped recording to discard.")
		return nil
	}
	if err := a.session.Discard(); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.session = nil
	printlnFn("Recording discarded.")
	return nil
}

var encounterTypes = []models.EncounterType{
	models.TypeTrafficStop,
	models.TypeQuestioning,
	models.TypeSearchWarrant,
	models.TypeArrest,
	models.TypeDetention,
	models.TypeHomeVisit,
}

func askEncounterType(a *App) (models.EncounterType, error) {
	for i, t := range encounterTypes {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, t))
	}
	answer, err := GetSimpleText(a.reader, "Encounter type (number or name)", os.Stdout)
	if err != nil {
		return "", err
	}
	for i, t := range encounterTypes {
		if answer == fmt.Sprintf("%d", i+1) || answer == string(t) {
			return t, nil
		}
	}
	if answer == "" {
		return models.TypeTrafficStop, nil
	}
	return models.EncounterType(answer), nil
}
