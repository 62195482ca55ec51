// Package intake converts non-plain-text order sources (emails, HTML tables,
// PDF and XLSX files) into the message string the pipeline ingests. It sits
// in front of the core and never constrains it.
package intake

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"orderreg/internal/util"
)

// Message is the pipeline-ready form of an inbound email: the order text plus
// the sender metadata used for customer attribution.
type Message struct {
	Text    string
	Subject string
	From    string
}

// FromEmailRaw parses a raw MIME message. The text body wins; HTML-only mail
// falls back to table/text extraction. Attachments are folded in after the
// body so attached order sheets still contribute lines.
func FromEmailRaw(raw []byte) (Message, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return Message{}, fmt.Errorf("parse email: %w", err)
	}

	parts := []string{}
	if text := compactLines(env.Text); text != "" {
		parts = append(parts, text)
	} else if env.HTML != "" {
		if text := FromHTML(env.HTML); text != "" {
			parts = append(parts, text)
		}
	}

	for _, att := range env.Attachments {
		lower := strings.ToLower(att.FileName)
		switch {
		case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
			if text, err := FromXLSX(att.Content); err == nil && text != "" {
				parts = append(parts, text)
			}
		case strings.HasSuffix(lower, ".pdf"):
			if text, err := FromPDF(att.Content); err == nil && text != "" {
				parts = append(parts, text)
			}
		}
	}

	return Message{
		Text:    strings.Join(parts, "\n"),
		Subject: env.GetHeader("Subject"),
		From:    env.GetHeader("From"),
	}, nil
}

// FromHTML extracts order text from an HTML body. Tables with recognizable
// name/quantity headers become quantity-prefixed lines ("2x PVC pipe"); HTML
// without such tables degrades to its visible text.
func FromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var lines []string
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}

		var headers []string
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.ToLower(strings.TrimSpace(cell.Text())))
		})

		nameIdx := findHeaderIndex(headers, []string{"name", "product", "item", "description"})
		qtyIdx := findHeaderIndex(headers, []string{"qty", "quantity", "amount", "count"})
		if nameIdx < 0 {
			nameIdx = 0
		}

		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.Join(strings.Fields(cell.Text()), " "))
			})
			if line, ok := rowToLine(cells, nameIdx, qtyIdx); ok {
				lines = append(lines, line)
			}
		})
	})

	if len(lines) > 0 {
		return strings.Join(lines, "\n")
	}
	return compactLines(doc.Text())
}

// FromPDF joins the plain text of every page.
func FromPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var parts []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if compact := compactLines(text); compact != "" {
			parts = append(parts, compact)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// FromXLSX turns spreadsheet rows with name/quantity columns into
// quantity-prefixed lines. Column positions are inferred from the first rows;
// sheets without headers default to name in the first column, quantity in the
// second.
func FromXLSX(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse xlsx: %w", err)
	}
	defer f.Close()

	var lines []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		nameIdx, qtyIdx := -1, -1
		for i, row := range rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				cells = append(cells, strings.Join(strings.Fields(c), " "))
			}
			if len(cells) == 0 {
				continue
			}

			if nameIdx < 0 && i < 3 {
				lowered := make([]string, 0, len(cells))
				for _, c := range cells {
					lowered = append(lowered, strings.ToLower(c))
				}
				nameIdx = findHeaderIndex(lowered, []string{"name", "product", "item", "description"})
				qtyIdx = findHeaderIndex(lowered, []string{"qty", "quantity", "amount", "count"})
				if nameIdx >= 0 || qtyIdx >= 0 {
					continue
				}
			}

			ni, qi := nameIdx, qtyIdx
			if ni < 0 {
				ni, qi = 0, 1
			}
			if line, ok := rowToLine(cells, ni, qi); ok {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}

// FromFile reads an order message from a local file of the given type:
// eml|html|pdf|xlsx|text.
func FromFile(path, typ string) (string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	switch typ {
	case "eml":
		msg, err := FromEmailRaw(blob)
		if err != nil {
			return "", err
		}
		return msg.Text, nil
	case "html":
		return FromHTML(string(blob)), nil
	case "pdf":
		return FromPDF(blob)
	case "xlsx":
		return FromXLSX(blob)
	case "text":
		return string(blob), nil
	default:
		return "", fmt.Errorf("unsupported input type: %s", typ)
	}
}

func rowToLine(cells []string, nameIdx, qtyIdx int) (string, bool) {
	name := pickCell(cells, nameIdx, 0)
	if name == "" {
		return "", false
	}

	qtyCell := pickCell(cells, qtyIdx, -1)
	if qtyCell == "" {
		for i, c := range cells {
			if i == nameIdx {
				continue
			}
			if _, ok := util.ParseQuantity(c); ok {
				qtyCell = c
				break
			}
		}
	}
	qty, ok := util.ParseQuantity(qtyCell)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%dx %s", qty, name), true
}

func compactLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx, fallback int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	if fallback >= 0 && fallback < len(cells) {
		return strings.TrimSpace(cells[fallback])
	}
	return ""
}
