package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/passvault/internal/secret"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/services"
)

// renderError prints routine errors inline and everything else as a
// persistent notice, mirroring the propagation policy of the core.
func (a *App) renderError(ctx context.Context, err error) {
	if services.IsUserError(err) {
		fmt.Fprintln(a.out, err)
		return
	}
	a.logger.Error(ctx, "operation failed", "error", err)
	fmt.Fprintln(a.out, "Something went wrong with the vault:", err)
}

func (a *App) setMaster(ctx context.Context) error {
	pw, err := GetPassword("Choose a master password: ", a.out)
	if err != nil {
		return err
	}
	buf := secret.New(pw)
	secret.WipeBytes(pw)
	defer buf.Wipe()

	if err := a.auth.SetMaster(ctx, buf); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Master password set. Use 'login' to unlock the vault.")
	return nil
}

func (a *App) login(ctx context.Context) {
	pw, err := GetPassword("Enter master password: ", a.out)
	if err != nil {
		a.renderError(ctx, err)
		return
	}
	buf := secret.New(pw)
	secret.WipeBytes(pw)
	defer buf.Wipe()

	sess, err := a.auth.Login(ctx, buf)
	if err != nil {
		a.renderError(ctx, err)
		return
	}
	a.sessions.Replace(sess)
	fmt.Fprintln(a.out, "Vault unlocked.")
}

func (a *App) logout() {
	a.sessions.SignOut()
	fmt.Fprintln(a.out, "Vault locked.")
}

func (a *App) list(ctx context.Context, query string) {
	result, err := a.entries.List(ctx, a.sessions.Current(), query)
	if err != nil {
		a.renderError(ctx, err)
		return
	}
	defer models.WipeAll(result)

	if len(result) == 0 {
		fmt.Fprintln(a.out, "No entries.")
		return
	}
	for i := range result {
		fmt.Fprintf(a.out, "%4d  %-30s %s\n", result[i].ID, result[i].Site, result[i].Username)
	}
}

func (a *App) show(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "show <id>")
	if !ok {
		return
	}
	entry, err := a.entries.Get(ctx, a.sessions.Current(), id)
	if err != nil {
		a.renderError(ctx, err)
		return
	}
	defer entry.Wipe()

	fmt.Fprintf(a.out, "Site:     %s\nUsername: %s\nPassword: %s\n",
		entry.Site, entry.Username, entry.Password.Reveal())
}

func (a *App) add(ctx context.Context) {
	entry, ok := a.promptEntry(ctx)
	if !ok {
		return
	}
	defer entry.Wipe()

	if err := a.entries.Create(ctx, a.sessions.Current(), entry); err != nil {
		a.renderError(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Entry saved.")
}

func (a *App) update(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "update <id>")
	if !ok {
		return
	}
	entry, ok := a.promptEntry(ctx)
	if !ok {
		return
	}
	defer entry.Wipe()

	if err := a.entries.Update(ctx, a.sessions.Current(), id, entry); err != nil {
		a.renderError(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Entry updated.")
}

func (a *App) delete(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "delete <id>")
	if !ok {
		return
	}
	if err := a.entries.Delete(ctx, a.sessions.Current(), id); err != nil {
		a.renderError(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Entry deleted.")
}

func (a *App) copy(ctx context.Context, args []string) {
	id, ok := a.parseID(args, "copy <id>")
	if !ok {
		return
	}
	entry, err := a.entries.Get(ctx, a.sessions.Current(), id)
	if err != nil {
		a.renderError(ctx, err)
		return
	}
	defer entry.Wipe()

	msg, err := a.gate.CopyWithTimeout(entry.Password, a.config.ClipboardClearDelay)
	if err != nil {
		// Clipboard trouble is not worth a persistent notice.
		a.logger.Warn(ctx, "clipboard copy failed", "error", err)
		fmt.Fprintln(a.out, "Could not access the clipboard.")
		return
	}
	fmt.Fprintln(a.out, msg)
}

func (a *App) rotate(ctx context.Context) {
	pw, err := GetPassword("Enter new master password: ", a.out)
	if err != nil {
		a.renderError(ctx, err)
		return
	}
	buf := secret.New(pw)
	secret.WipeBytes(pw)
	defer buf.Wipe()

	sess, err := a.auth.RotateMaster(ctx, buf, a.sessions.Current())
	if err != nil {
		a.renderError(ctx, err)
		return
	}
	a.sessions.Replace(sess)
	fmt.Fprintln(a.out, "Master password changed; all entries re-encrypted.")
}

func (a *App) promptEntry(ctx context.Context) (*models.EntryPlain, bool) {
	site, err := GetSimpleText(a.reader, "Site", a.out)
	if err != nil {
		a.renderError(ctx, err)
		return nil, false
	}
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		a.renderError(ctx, err)
		return nil, false
	}
	pw, err := GetPassword("Password: ", a.out)
	if err != nil {
		a.renderError(ctx, err)
		return nil, false
	}
	buf := secret.New(pw)
	secret.WipeBytes(pw)

	return &models.EntryPlain{Site: site, Username: username, Password: buf}, true
}

func (a *App) parseID(args []string, usage string) (int64, bool) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage:", usage)
		return 0, false
	}
	return id, true
}
