package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bonusbot/cmd"
	"bonusbot/database"

	log "github.com/sirupsen/logrus"
)

const usage = `usage:
  bonusbot                           run the notifier service
  bonusbot migrate up|down [n]|status
  bonusbot import <artist> <file.csv>
  bonusbot resolve <artist> <YYYY-MM-DD>
  bonusbot list <artist> <YYYY-MM-DD> [YYYY-MM-DD]
  bonusbot artist <artist> [IANA zone]
  bonusbot notify`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := dispatch(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return cmd.Run(ctx)
	}

	switch args[0] {
	case "migrate":
		if err := handleMigrationCommand(args[1:]); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
		return nil
	case "import":
		if len(args) != 3 {
			return fmt.Errorf("usage: bonusbot import <artist> <file.csv>")
		}
		return cmd.Import(ctx, args[1], args[2])
	case "resolve":
		if len(args) != 3 {
			return fmt.Errorf("usage: bonusbot resolve <artist> <YYYY-MM-DD>")
		}
		return cmd.Resolve(ctx, args[1], args[2], os.Stdout)
	case "list":
		if len(args) < 3 || len(args) > 4 {
			return fmt.Errorf("usage: bonusbot list <artist> <YYYY-MM-DD> [YYYY-MM-DD]")
		}
		to := ""
		if len(args) == 4 {
			to = args[3]
		}
		return cmd.List(ctx, args[1], args[2], to, os.Stdout)
	case "artist":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: bonusbot artist <artist> [IANA zone]")
		}
		zone := ""
		if len(args) == 3 {
			zone = args[2]
		}
		return cmd.SetArtistTimezone(ctx, args[1], zone, os.Stdout)
	case "notify":
		return cmd.Notify(ctx)
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: bonusbot migrate [up|down|status] [args...]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}
