package config

import (
	"flag"
	"os"

	"github.com/pocketlegal/pocketlegal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local database file
//	-r string   remote Postgres DSN (empty disables mirroring)
//	-s string   media file backing the demo capture device
//	-u string   user id to run as
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-r", "-s", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDatabaseDSN, "d", cfg.LocalDatabaseDSN, "path to the local database file")
	fs.StringVar(&cfg.RemoteDatabaseDSN, "r", cfg.RemoteDatabaseDSN, "remote database DSN")
	fs.StringVar(&cfg.CaptureSource, "s", cfg.CaptureSource, "media file backing the capture device")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "user id to run as")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
