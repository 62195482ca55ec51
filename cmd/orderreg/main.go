package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"orderreg/internal"
	"orderreg/internal/catalog"
	"orderreg/internal/config"
	"orderreg/internal/intake"
	"orderreg/internal/pipeline"
	"orderreg/internal/report"
	"orderreg/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "catalog:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.CatalogPath, "catalog json path")
		_ = fs.Parse(os.Args[2:])

		items, err := catalog.LoadFile(*input)
		must(err)
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		must(db.ReplaceCatalog(items))
		_ = db.SetMetadata("catalog.imported_at", time.Now().UTC().Format(time.RFC3339))
		fmt.Printf("catalog import complete: %d items\n", len(items))

	case "ingest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		message := fs.String("message", "", "raw order message")
		customer := fs.String("customer", "", "customer name")
		channel := fs.String("channel", "", "channel label (default from config)")
		htmlOut := fs.String("html", "", "optional html dashboard path")
		xlsxOut := fs.String("xlsx", "", "optional xlsx export path")
		_ = fs.Parse(os.Args[2:])
		if *message == "" || *customer == "" {
			must(fmt.Errorf("--message and --customer are required"))
		}

		pipe := newPipeline(cfg)
		record := pipe.Ingest(*message, *customer, *channel)
		report.PrintRecord(os.Stdout, record)
		must(exportIfRequested(pipe, *htmlOut, *xlsxOut))

	case "ingest:file":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file path")
		typ := fs.String("type", "", "eml|html|pdf|xlsx|text")
		customer := fs.String("customer", "", "customer name (defaults to email sender for eml)")
		channel := fs.String("channel", "Email", "channel label")
		htmlOut := fs.String("html", "", "optional html dashboard path")
		xlsxOut := fs.String("xlsx", "", "optional xlsx export path")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *typ == "" {
			must(fmt.Errorf("--input and --type are required"))
		}

		message := ""
		sender := ""
		if *typ == "eml" {
			blob, err := os.ReadFile(*input)
			must(err)
			msg, err := intake.FromEmailRaw(blob)
			must(err)
			message, sender = msg.Text, msg.From
		} else {
			text, err := intake.FromFile(*input, *typ)
			must(err)
			message = text
		}

		who := *customer
		if who == "" {
			who = sender
		}
		if who == "" {
			must(fmt.Errorf("--customer is required for type %s", *typ))
		}

		pipe := newPipeline(cfg)
		record := pipe.Ingest(message, who, *channel)
		report.PrintRecord(os.Stdout, record)
		must(exportIfRequested(pipe, *htmlOut, *xlsxOut))

	case "demo":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		htmlOut := fs.String("html", filepath.Join(cfg.OutputDir, "dashboard.html"), "html dashboard path")
		noHTML := fs.Bool("no-html", false, "skip writing the html dashboard")
		_ = fs.Parse(os.Args[2:])

		pipe := newPipeline(cfg)
		fmt.Println("=== Order Register Demo ===")
		for _, payload := range demoMessages() {
			record := pipe.Ingest(payload.message, payload.customer, payload.channel)
			report.PrintRecord(os.Stdout, record)
		}
		must(report.PrintDashboard(os.Stdout, pipe.Dashboard()))

		if !*noHTML {
			must(report.WriteHTML(pipe.Dashboard(), *htmlOut))
			fmt.Printf("\nSaved HTML dashboard to %s\n", *htmlOut)
		}

	default:
		usage()
		os.Exit(1)
	}
}

// newPipeline builds a pipeline from the JSON catalog when present, otherwise
// from the sqlite store populated by catalog:import. No catalog is fatal.
func newPipeline(cfg config.Config) *pipeline.Pipeline {
	items, err := loadCatalog(cfg)
	must(err)
	return pipeline.New(items, cfg)
}

func loadCatalog(cfg config.Config) ([]internal.CatalogItem, error) {
	if _, err := os.Stat(cfg.CatalogPath); err == nil {
		return catalog.LoadFile(cfg.CatalogPath)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	items, err := db.ListCatalog()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no catalog: set CATALOG_PATH or run catalog:import first")
	}
	return items, nil
}

func exportIfRequested(pipe *pipeline.Pipeline, htmlOut, xlsxOut string) error {
	if htmlOut != "" {
		if err := report.WriteHTML(pipe.Dashboard(), htmlOut); err != nil {
			return err
		}
		fmt.Printf("saved html dashboard to %s\n", htmlOut)
	}
	if xlsxOut != "" {
		if err := pipeline.ExportDashboardXLSX(pipe.Dashboard(), xlsxOut); err != nil {
			return err
		}
		fmt.Printf("saved xlsx export to %s\n", xlsxOut)
	}
	return nil
}

type demoMessage struct {
	customer string
	channel  string
	message  string
}

func demoMessages() []demoMessage {
	return []demoMessage{
		{customer: "Acme Steel", channel: "LINE OA", message: "Need 2x PVC pipe 2in and 5 copper cable 1.5 for Monday"},
		{customer: "Bright Energy", channel: "Email", message: "Order: 3 pcs 8p switch, 50m 1.5mm wire"},
		{customer: "Acme Steel", channel: "LINE OA", message: "repeat last order of 2\" pvc"},
	}
}

func usage() {
	fmt.Println("usage: orderreg <command>")
	fmt.Println("commands:")
	fmt.Println("  demo [--html=path] [--no-html]")
	fmt.Println("  ingest --message=... --customer=... [--channel=...] [--html=path] [--xlsx=path]")
	fmt.Println("  ingest:file --input=path --type=eml|html|pdf|xlsx|text [--customer=...] [--channel=Email]")
	fmt.Println("  catalog:import [--input=catalog.json]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
