// Command planner is a terminal front end for the plann.er API.
//
//	planner [-api URL] <command> [flags]
//
// Commands: create, show, invite, participants, remove-guest, add-activity,
// activities, add-link, links, export.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/gustavopolonio/nlw-journey/internal/api"
	"github.com/gustavopolonio/nlw-journey/internal/client"
	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", describe(err))
		os.Exit(1)
	}
}

// describe prefers the user-facing text and keeps field details for
// validation failures, which FriendlyMessage alone would drop.
func describe(err error) string {
	msg := client.FriendlyMessage(err)

	var fields map[string][]string
	var verr *domain.ValidationError
	var apiErr *client.APIError
	switch {
	case errors.As(err, &verr):
		fields = verr.Fields
	case errors.As(err, &apiErr):
		fields = apiErr.Fields
	default:
		if msg == client.FriendlyGeneric {
			return fmt.Sprintf("%s (%v)", msg, err)
		}
	}
	for _, name := range domain.FieldErrors(fields).Fields() {
		msg += fmt.Sprintf("\n  %s: %s", name, strings.Join(fields[name], "; "))
	}
	return msg
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(out)

	defaultAPI := os.Getenv("PLANNER_API_URL")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:3333"
	}
	apiURL := fs.String("api", defaultAPI, "base URL of the plann.er API")
	fs.Usage = func() {
		fmt.Fprintln(out, "usage: planner [-api URL] <command> [flags]")
		fmt.Fprintln(out, "commands: create, show, invite, participants, remove-guest, add-activity, activities, add-link, links, export")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	c := client.New(*apiURL)
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "create":
		return createTrip(ctx, c, rest, out)
	case "show":
		return showTrip(ctx, c, rest, out)
	case "invite":
		return invite(ctx, c, rest, out)
	case "participants":
		return listParticipants(ctx, c, rest, out)
	case "remove-guest":
		return removeGuest(ctx, c, rest, out)
	case "add-activity":
		return addActivity(ctx, c, rest, out)
	case "activities":
		return listActivities(ctx, c, rest, out)
	case "add-link":
		return addLink(ctx, c, rest, out)
	case "links":
		return listLinks(ctx, c, rest, out)
	case "export":
		return export(ctx, c, rest, out)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// subcommand returns a flag set with a required -trip flag.
func subcommand(name string, out io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet("planner "+name, flag.ContinueOnError)
	fs.SetOutput(out)
	trip := fs.String("trip", "", "trip id")
	return fs, trip
}

func parseID(name, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("-%s is required", name)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("-%s: %w", name, err)
	}
	return id, nil
}

func parseDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := api.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("-%s: %w", name, err)
	}
	return t, nil
}

func splitEmails(s string) []string {
	var out []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// createTrip drives a CreateTripSession through every step, the way the web
// form does, so invalid input is caught before anything is sent.
func createTrip(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("planner create", flag.ContinueOnError)
	fs.SetOutput(out)
	destination := fs.String("destination", "", "where the trip goes")
	start := fs.String("start", "", "first day, YYYY-MM-DD")
	end := fs.String("end", "", "last day, YYYY-MM-DD")
	ownerName := fs.String("owner-name", "", "your name")
	ownerEmail := fs.String("owner-email", "", "your email")
	guests := fs.String("invite", "", "comma-separated guest emails")
	if err := fs.Parse(args); err != nil {
		return err
	}

	startsAt, err := parseDate("start", *start)
	if err != nil {
		return err
	}
	endsAt, err := parseDate("end", *end)
	if err != nil {
		return err
	}

	s := client.NewCreateTripSession(c)
	if err := s.SetDestinationAndDates(*destination, startsAt, endsAt); err != nil {
		return err
	}
	for _, g := range splitEmails(*guests) {
		if err := s.AddGuest(g); err != nil {
			return fmt.Errorf("guest %s: %w", g, err)
		}
	}
	if err := s.ContinueToOwnerDetails(); err != nil {
		return err
	}
	id, err := s.Submit(ctx, *ownerName, *ownerEmail)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "trip %s created; check %s for the confirmation link\n", id, domain.NormalizeEmail(*ownerEmail))
	return nil
}

func showTrip(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs, trip := subcommand("show", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("trip", *trip)
	if err != nil {
		return err
	}

	t, err := c.GetTrip(ctx, id)
	if err != nil {
		return err
	}
	status := "pending confirmation"
	if t.IsConfirmed {
		status = "confirmed"
	}
	fmt.Fprintf(out, "%s\n%s to %s (%s)\n",
		t.Destination, t.StartsAt.UTC().Format(time.DateOnly), t.EndsAt.UTC().Format(time.DateOnly), status)
	return nil
}

func invite(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs, trip := subcommand("invite", out)
	emails := fs.String("emails", "", "comma-separated guest emails")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("trip", *trip)
	if err != nil {
		return err
	}

	ids, err := c.Invite(ctx, id, splitEmails(*emails))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d guest(s) invited\n", len(ids))
	return nil
}

func listParticipants(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs, trip := subcommand("participants", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("trip", *trip)
	if err != nil {
		return err
	}

	participants, err := c.ListParticipants(ctx, id)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tCONFIRMED")
	for _, p := range participants {
		name, role := "", "guest"
		if p.Name != nil {
			name = *p.Name
		}
		if p.IsOwner {
			role = "owner"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", p.ID, p.Email, name, role, p.IsConfirmed)
	}
	return tw.Flush()
}

func removeGuest(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("planner remove-guest", flag.ContinueOnError)
	fs.SetOutput(out)
	participant := fs.String("participant", "", "participant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("participant", *participant)
	if err != nil {
		return err
	}

	if err := c.DeleteParticipant(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(out, "guest removed")
	return nil
}

func addActivity(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs, trip := subcommand("add-activity", out)
	title := fs.String("title", "", "what happens")
	at := fs.String("at", "", "when, YYYY-MM-DDTHH:MM")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("trip", *trip)
	if err != nil {
		return err
	}
	occursAt, err := parseDate("at", *at)
	if err != nil {
		return err
	}
	req := api.CreateActivityRequest{Title: *title}
	if !occursAt.IsZero() {
		req.OccursAt = api.NewTimestamp(occursAt)
	}

	activityID, err := c.CreateActivity(ctx, id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "activity %s created\n", activityID)
	return nil
}

func listActivities(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs, trip := subcommand("activities", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("trip", *trip)
	if err != nil {
		return err
	}

	days, err := c.ListActivities(ctx, id)
	if err != nil {
		return err
	}
	for _, d := range days {
		fmt.Fprintf(out, "%s\n", d.Date.UTC().Format("Mon, 02 Jan"))
		if len(d.Activities) == 0 {
			fmt.Fprintln(out, "  nothing planned")
		}
		for _, a := range d.Activities {
			fmt.Fprintf(out, "  %s  %s\n", a.OccursAt.UTC().Format("15:04"), a.Title)
		}
	}
	return nil
}

func addLink(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs, trip := subcommand("add-link", out)
	title := fs.String("title", "", "link title")
	url := fs.String("url", "", "link address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("trip", *trip)
	if err != nil {
		return err
	}

	linkID, err := c.CreateLink(ctx, id, api.CreateLinkRequest{Title: *title, URL: *url})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "link %s created\n", linkID)
	return nil
}

func listLinks(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs, trip := subcommand("links", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("trip", *trip)
	if err != nil {
		return err
	}

	links, err := c.ListLinks(ctx, id)
	if err != nil {
		return err
	}
	for _, l := range links {
		fmt.Fprintf(out, "%s\n  %s\n", l.Title, l.URL)
	}
	return nil
}

func export(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs, trip := subcommand("export", out)
	format := fs.String("format", "json", "json, csv or ics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID("trip", *trip)
	if err != nil {
		return err
	}

	body, err := c.Export(ctx, id, *format)
	if err != nil {
		return err
	}
	_, err = out.Write(body)
	return err
}
