package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = fmt.Sprintf("(%s %s)", a.user.UserID, a.user.Status)
	}
	switch {
	case a.isRecording():
		elapsed := a.session.ElapsedSeconds()
		s = s + fmt.Sprintf(" [rec %d:%02d]", elapsed/60, elapsed%60)
	case a.hasStoppedRecording():
		s = s + " [stopped]"
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to PocketLegal (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
