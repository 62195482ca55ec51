// Package listener polls a mailbox and feeds order-like emails into the
// pipeline, optionally re-exporting the dashboard after each cycle.
package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"orderreg/internal/config"
	"orderreg/internal/connectors"
	gmailconnector "orderreg/internal/connectors/gmail"
	imapconnector "orderreg/internal/connectors/imap"
	"orderreg/internal/intake"
	"orderreg/internal/pipeline"
	"orderreg/internal/report"
)

type Service struct {
	pipe *pipeline.Pipeline
	cfg  config.Config
}

func NewService(pipe *pipeline.Pipeline, cfg config.Config) *Service {
	return &Service{pipe: pipe, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("listener cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.ListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.ListenerProvider))
	conn, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	messages, err := conn.FetchInbox(s.cfg.ListenerLabel, s.cfg.ListenerFetchMax)
	if err != nil {
		return err
	}

	ingested, skipped := 0, 0
	for _, msg := range messages {
		m, err := intake.FromEmailRaw(msg.Raw)
		if err != nil {
			fmt.Printf("skip %s/%s: %v\n", msg.Provider, msg.MessageID, err)
			skipped++
			continue
		}
		if !intake.DetectOrder(m.Subject, m.Text).IsOrder {
			skipped++
			continue
		}

		customer := strings.TrimSpace(m.From)
		if customer == "" {
			customer = msg.Provider + ":" + msg.MessageID
		}
		record := s.pipe.Ingest(m.Text, customer, "Email")
		fmt.Printf("ingested %s from %s status=%s lines=%d\n", record.RequestID, customer, record.Status, len(record.Lines))
		ingested++
	}

	if s.cfg.ListenerAutoExport && ingested > 0 {
		summaries := s.pipe.Dashboard()
		if err := report.WriteHTML(summaries, filepath.Join(s.cfg.OutputDir, "dashboard.html")); err != nil {
			return err
		}
		if err := pipeline.ExportDashboardXLSX(summaries, filepath.Join(s.cfg.OutputDir, "dashboard.xlsx")); err != nil {
			return err
		}
	}

	fmt.Printf("listener cycle done provider=%s fetched=%d ingested=%d skipped=%d\n", provider, len(messages), ingested, skipped)
	return nil
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported listener provider: %s", provider)
	}
}
