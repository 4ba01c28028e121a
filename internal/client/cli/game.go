package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"
)

func (a *App) Me(ctx context.Context) error {
	p, err := a.session.Me(ctx)
	if err != nil {
		return err
	}

	name := "(none)"
	if p.Username != nil {
		name = *p.Username
	}
	fmt.Fprintf(a.out, "Profile:  %d\nEmail:    %s\nUsername: %s\nScore:    %d\n", p.ProfileID, p.Email, name, p.Score)
	return nil
}

func (a *App) Secrets(ctx context.Context) error {
	items, err := a.game.Secrets(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No secrets out there yet.")
		return nil
	}

	me := a.session.Current().ProfileID
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLATITUDE\tLONGITUDE\t")
	for _, s := range items {
		mine := ""
		if s.ProfileID == me {
			mine = "(yours)"
		}
		fmt.Fprintf(tw, "%d\t%.7f\t%.7f\t%s\n", s.SecretID, s.Latitude, s.Longitude, mine)
	}
	return tw.Flush()
}

func (a *App) Post(ctx context.Context) error {
	message, err := GetSimpleText(a.reader, "-Enter secret message", a.out)
	if err != nil {
		return err
	}
	lat, err := a.readCoordinate("-Enter latitude (-90..90)")
	if err != nil {
		return err
	}
	lon, err := a.readCoordinate("-Enter longitude (-180..180)")
	if err != nil {
		return err
	}

	if err := a.game.Post(ctx, message, lat, lon); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Secret posted.")
	return nil
}

func (a *App) readCoordinate(prompt string) (float64, error) {
	s, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// Claim takes the secret id from args.
func (a *App) Claim(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return errUsage
	}

	if err := a.game.Claim(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Secret %d is now in your stash. +1 point!\n", id)
	return nil
}

func (a *App) Stash(ctx context.Context) error {
	items, err := a.game.Stash(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your stash is empty.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tSTASHED\tMESSAGE")
	for _, e := range items {
		from := "(unknown)"
		if e.PosterUsername != nil {
			from = *e.PosterUsername
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.StashID, from, e.StashedAt.Local().Format(time.DateTime), e.Message)
	}
	return tw.Flush()
}

func (a *App) Ranking(ctx context.Context) error {
	items, err := a.game.Ranking(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tSCORE")
	for i, r := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, r.Name(), r.Score)
	}
	return tw.Flush()
}
