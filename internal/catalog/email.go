package catalog

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"apmatch/internal/model"
)

// emailDateLayouts are tried in order when parsing the Date: header. Corpora
// come from several mail exports, so a few common shapes are accepted.
var emailDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// LoadEmails parses an email corpus file. See ParseEmails for the format.
func LoadEmails(path string) (*Emails, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseEmails(f)
}

// ParseEmails splits a plain text corpus into email records. Blocks are
// separated by a line containing only "---"; each block must carry From:,
// To:, Date: and Subject: header lines followed by a free-text body.
// Malformed blocks (missing any required header) are skipped, not fatal.
func ParseEmails(r io.Reader) (*Emails, error) {
	var (
		blocks  []string
		current strings.Builder
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "---" {
			blocks = append(blocks, current.String())
			current.Reset()
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	blocks = append(blocks, current.String())

	corpus := &Emails{}
	for _, block := range blocks {
		if rec, ok := parseEmailBlock(block); ok {
			corpus.records = append(corpus.records, rec)
		}
	}
	return corpus, nil
}

func parseEmailBlock(block string) (model.EmailRecord, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")

	var rec model.EmailRecord
	var seen struct{ from, to, date, subject bool }
	bodyStart := 0

headers:
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "From:"):
			rec.From = strings.TrimSpace(strings.TrimPrefix(line, "From:"))
			seen.from = true
		case strings.HasPrefix(line, "To:"):
			rec.To = strings.TrimSpace(strings.TrimPrefix(line, "To:"))
			seen.to = true
		case strings.HasPrefix(line, "Date:"):
			rec.RawDate = strings.TrimSpace(strings.TrimPrefix(line, "Date:"))
			rec.Date = parseEmailDate(rec.RawDate)
			seen.date = true
		case strings.HasPrefix(line, "Subject:"):
			rec.Subject = strings.TrimSpace(strings.TrimPrefix(line, "Subject:"))
			seen.subject = true
		default:
			bodyStart = i
			break headers
		}
		bodyStart = i + 1
	}

	if !seen.from || !seen.to || !seen.date || !seen.subject {
		return model.EmailRecord{}, false
	}
	rec.Body = strings.TrimSpace(strings.Join(lines[bodyStart:], "\n"))
	return rec, true
}

// parseEmailDate returns the zero time when no layout matches; ordering then
// falls back to corpus order for such records.
func parseEmailDate(raw string) time.Time {
	for _, layout := range emailDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
