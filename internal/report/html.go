// Package report renders dashboard summaries for humans: an embeddable HTML
// page and a console view. It only consumes RecordSummary values and imposes
// nothing back on the pipeline.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"orderreg/internal"
)

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"score": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"sku": func(v *string) string {
		if v == nil {
			return "—"
		}
		return *v
	},
}).Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="UTF-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1.0"/>
  <title>Order Register Dashboard</title>
  <style>
    :root {
      --bg: #0f172a;
      --card: #111827;
      --text: #e5e7eb;
      --muted: #9ca3af;
      --accent: #3b82f6;
      --warning: #f97316;
      --border: #1f2937;
    }
    body {
      margin: 0;
      font-family: 'Inter', system-ui, -apple-system, sans-serif;
      background: #0f172a;
      color: var(--text);
    }
    .page { max-width: 1200px; margin: 0 auto; padding: 40px 24px 64px; }
    h1 { margin: 0 0 8px; font-size: 32px; letter-spacing: -0.02em; }
    .subtitle { color: var(--muted); margin-bottom: 24px; }
    .grid { display: grid; gap: 16px; grid-template-columns: repeat(auto-fit, minmax(320px, 1fr)); }
    .card {
      background: var(--card);
      border: 1px solid var(--border);
      border-radius: 16px;
      padding: 16px;
    }
    header { display: grid; grid-template-columns: repeat(4, minmax(0, 1fr)); gap: 12px; align-items: center; margin-bottom: 12px; }
    .label { color: var(--muted); font-size: 12px; text-transform: uppercase; letter-spacing: 0.05em; }
    .value { font-weight: 600; }
    .status {
      justify-self: end;
      padding: 6px 10px;
      border-radius: 999px;
      font-size: 12px;
      font-weight: 700;
      text-transform: uppercase;
      border: 1px solid var(--border);
      background: rgba(59, 130, 246, 0.12);
    }
    .status.needs_review { background: rgba(249, 115, 22, 0.18); color: #fb923c; }
    .section { margin-top: 10px; }
    .section-title { color: var(--muted); font-size: 13px; margin-bottom: 6px; }
    .list { list-style: none; padding: 0; margin: 0; display: grid; gap: 6px; }
    .list li {
      background: rgba(255, 255, 255, 0.03);
      border: 1px solid var(--border);
      border-radius: 12px;
      padding: 10px 12px;
      display: flex;
      align-items: center;
      gap: 8px;
      font-size: 14px;
    }
    .list.notes li { color: var(--muted); font-size: 13px; }
    .chip {
      margin-left: auto;
      padding: 4px 8px;
      border-radius: 999px;
      background: rgba(59, 130, 246, 0.16);
      font-size: 12px;
      color: #bfdbfe;
      border: 1px solid rgba(59, 130, 246, 0.35);
    }
    code { background: rgba(255, 255, 255, 0.05); padding: 2px 6px; border-radius: 6px; }
  </style>
</head>
<body>
  <div class="page">
    <h1>Order Register Dashboard</h1>
    <div class="subtitle">Golden Records created from ingested order messages.</div>
    <div class="grid">
{{- range .}}
      <article class="card">
        <header>
          <div>
            <div class="label">Request ID</div>
            <div class="value">{{.RequestID}}</div>
          </div>
          <div>
            <div class="label">Customer</div>
            <div class="value">{{.Customer}}</div>
          </div>
          <div>
            <div class="label">Channel</div>
            <div class="value">{{.Channel}}</div>
          </div>
          <div class="status {{.Status}}">{{.Status}}</div>
        </header>
        <div class="section">
          <div class="section-title">Line items</div>
          <ul class="list">
{{- range .Lines}}
            <li><strong>{{.Quantity}}×</strong> {{.SourceDescription}} → <code>{{sku .MatchedSKU}}</code> <span class="chip">{{score .Confidence}}</span></li>
{{- end}}
          </ul>
        </div>
        <div class="section">
          <div class="section-title">Validation notes</div>
          <ul class="list notes">
{{- range .ValidationNotes}}
            <li>{{.}}</li>
{{- else}}
            <li>None</li>
{{- end}}
          </ul>
        </div>
      </article>
{{- end}}
    </div>
  </div>
</body>
</html>
`))

// RenderHTML produces the standalone dashboard page.
func RenderHTML(summaries []internal.RecordSummary) (string, error) {
	var sb strings.Builder
	if err := dashboardTmpl.Execute(&sb, summaries); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteHTML renders the dashboard to a file, creating parent directories.
func WriteHTML(summaries []internal.RecordSummary, outputPath string) error {
	html, err := RenderHTML(summaries)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(html), 0o644)
}
