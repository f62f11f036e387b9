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

// List prints the user's encounters, most recent first.
func (a *App) List(ctx context.Context) error {
	list, err := a.encounters.ListByUser(ctx, a.user.UserID)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(list) == 0 {
		printlnFn("No encounters yet. Use 'record' to capture one.")
		return nil
	}
	for _, e := range list {
		line := fmt.Sprintf("%s  %s  %-14s %s", e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Location)
		if e.Recording != nil && e.Recording.Durable() {
			line = line + "  [cloud]"
		}
		printlnFn(line)
	}
	return nil
}

// Show prints the full detail of one encounter, including a temporary
// download link for cloud-stored recordings when one can be issued.
func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Encounter id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	e, err := a.encounters.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No encounter with id", id)
			return nil
		}
		log.Printf("error: %v", err)
		return err
	}

	printlnFn("Id:       ", e.ID)
	printlnFn("Type:     ", string(e.Type))
	printlnFn("When:     ", e.Timestamp.Format("2006-01-02 15:04:05"))
	printlnFn("Location: ", e.Location)
	if e.Coordinates != nil {
		printlnFn("Position: ", fmt.Sprintf("%.4f, %.4f", e.Coordinates.Latitude, e.Coordinates.Longitude))
	}
	if e.Duration > 0 {
		printlnFn("Duration: ", fmt.Sprintf("%d second(s)", e.Duration))
	}
	if e.Notes != "" {
		printlnFn("Notes:    ", e.Notes)
	}
	if e.Recording != nil {
		printlnFn("Recording:", e.Recording.URI)
		if e.Recording.Durable() && a.durable != nil {
			url, err := a.durable.DurableURL(ctx, e.Recording.StorageKey)
			if err != nil {
				log.Printf("error: %v", err)
			} else {
				printlnFn("Download: ", url)
			}
		}
	}
	return nil
}

// Note amends the notes of an existing encounter.
func (a *App) Note(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Encounter id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	notes, err := GetMultiline(a.reader, "New notes:", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	_, err = a.encounters.Update(ctx, id, models.EncounterPatch{Notes: &notes})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No encounter with id", id)
			return nil
		}
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Notes updated.")
	return nil
}

// Delete removes an encounter; its slot counts toward the free tier again.
func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Encounter id to delete", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.encounters.Remove(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			printlnFn("No encounter with id", id)
			return nil
		}
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Encounter deleted.")
	return nil
}
