package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) status() string {
	if a.isLoggedIn() {
		return "(unlocked)"
	}
	return "(locked)"
}

// repl is the command loop. Every accepted command counts as user activity
// and pushes the idle deadline forward.
func (a *App) repl(ctx context.Context) {
	for {
		fmt.Fprintf(a.out, "pv %s> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		a.sessions.Touch()

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: (l)ist [query], show <id>, add, update <id>, delete <id>, copy <id>, rotate, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, exit")
			}

		case "login":
			a.login(ctx)

		case "l", "list":
			a.list(ctx, strings.Join(args, " "))

		case "show":
			a.show(ctx, args)

		case "add":
			a.add(ctx)

		case "update":
			a.update(ctx, args)

		case "delete":
			a.delete(ctx, args)

		case "copy":
			a.copy(ctx, args)

		case "rotate":
			a.rotate(ctx)

		case "logout":
			a.logout()

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
