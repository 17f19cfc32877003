package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/rpatwari/replacement-tracker/internal/logger"
	"github.com/rpatwari/replacement-tracker/internal/sheets"
	"github.com/rpatwari/replacement-tracker/internal/tracker"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "submit":
		runSubmit(log)
	case "clients":
		runClients(log)
	case "summary":
		runSummary(log)
	case "details":
		runDetails(log)
	case "overall":
		runOverall(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Replacement Tracker CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  submit    Submit incoming/outgoing product lines for a client")
	fmt.Println("  clients   List the client directory")
	fmt.Println("  summary   Show per-model totals for one client")
	fmt.Println("  details   Show the raw transaction lines for one client")
	fmt.Println("  overall   Show the global per-model and per-batch balances")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nConfiguration comes from the environment (or .env):")
	fmt.Println("  SHEET_ID, SERVICE_ACCOUNT_FILE, SHEET_NAME, MODEL_VIEW_RANGE, BATCH_VIEW_RANGE")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// newService builds a sheets-backed tracker service from the environment.
func newService(ctx context.Context, log zerolog.Logger) *tracker.Service {
	sheetID := os.Getenv("SHEET_ID")
	if sheetID == "" {
		log.Fatal().Msg("Error: SHEET_ID is required")
	}
	credentials := os.Getenv("SERVICE_ACCOUNT_FILE")
	if credentials == "" {
		credentials = "service-account.json"
	}
	sheetName := os.Getenv("SHEET_NAME")
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	store, err := sheets.New(ctx, sheetID, credentials, sheetName+"!A:G")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets store")
	}

	cfg := tracker.ConfigForSheet(sheetName)
	cfg.ModelView = os.Getenv("MODEL_VIEW_RANGE")
	cfg.BatchView = os.Getenv("BATCH_VIEW_RANGE")

	return tracker.New(store, cfg, log)
}

func runSubmit(log zerolog.Logger) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	client := fs.String("client", "", "client name")
	date := fs.String("date", time.Now().Format("2006-01-02"), "business date (YYYY-MM-DD)")
	in := fs.String("in", "", "incoming lines as model:batch:qty[,model:batch:qty...]")
	out := fs.String("out", "", "outgoing lines as model:batch:qty[,model:batch:qty...]")
	fs.Parse(os.Args[2:])

	if *client == "" {
		log.Fatal().Msg("Error: -client is required")
	}

	incoming, err := parseLines(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -in value")
	}
	outgoing, err := parseLines(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -out value")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := newService(ctx, log)
	inserted, err := svc.Submit(ctx, tracker.Submission{
		ClientName: *client,
		Date:       *date,
		Incoming:   incoming,
		Outgoing:   outgoing,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Submission failed")
	}

	fmt.Printf("Inserted %d rows for %s.\n", inserted, *client)
}

// parseLines parses "model:batch:qty" triples separated by commas.
func parseLines(spec string) ([]tracker.LineItem, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	var items []tracker.LineItem
	for _, part := range strings.Split(spec, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %q: want model:batch:qty", part)
		}
		items = append(items, tracker.LineItem{
			ModelNo: fields[0],
			BatchNo: fields[1],
			Qty:     fields[2],
		})
	}
	return items, nil
}

func runClients(log zerolog.Logger) {
	fs := flag.NewFlagSet("clients", flag.ExitOnError)
	q := fs.String("q", "", "case-insensitive substring filter")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := newService(ctx, log)
	clients, err := svc.FilterClients(ctx, *q)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list clients")
	}

	for _, name := range clients {
		fmt.Println(name)
	}
}

func runSummary(log zerolog.Logger) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	client := fs.String("client", "", "client name")
	fs.Parse(os.Args[2:])

	if *client == "" {
		log.Fatal().Msg("Error: -client is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := newService(ctx, log)
	totals, err := svc.SummarizeClient(ctx, *client)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to summarize client")
	}
	if len(totals) == 0 {
		fmt.Printf("No records for %s.\n", *client)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tIN\tOUT")
	for _, t := range totals {
		fmt.Fprintf(w, "%s\t%g\t%g\n", t.ModelNo, t.In, t.Out)
	}
	w.Flush()
}

func runDetails(log zerolog.Logger) {
	fs := flag.NewFlagSet("details", flag.ExitOnError)
	client := fs.String("client", "", "client name")
	fs.Parse(os.Args[2:])

	if *client == "" {
		log.Fatal().Msg("Error: -client is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := newService(ctx, log)
	details, err := svc.ClientDetails(ctx, *client)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load client details")
	}
	if len(details) == 0 {
		fmt.Printf("No records for %s.\n", *client)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tDATE\tMODEL\tBATCH\tQTY\tSTATUS")
	for _, d := range details {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", d.Timestamp, d.Date, d.ModelNo, d.BatchNo, d.Qty, d.Status)
	}
	w.Flush()
}

func runOverall(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	svc := newService(ctx, log)
	summary, err := svc.OverallSummary(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build overall summary")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tIN\tOUT\tPENDING")
	for _, m := range summary.ByModel {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\n", m.ModelNo, m.In, m.Out, m.Pending)
	}
	fmt.Fprintln(w, "\nBATCH\tIN\tOUT\tPENDING")
	for _, b := range summary.ByBatch {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\n", b.BatchNo, b.In, b.Out, b.Pending)
	}
	w.Flush()
}
