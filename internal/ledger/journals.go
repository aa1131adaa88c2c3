package ledger

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/stockbridge/reval/internal/domain"
)

const journalsPath = "/api.xro/2.0/ManualJournals"

// ManualJournal mirrors the ledger's manual-journal resource.
type ManualJournal struct {
	ID             string              `json:"ManualJournalID,omitempty"`
	Narration      string              `json:"Narration,omitempty"`
	Date           string              `json:"Date,omitempty"`
	Status         string              `json:"Status,omitempty"`
	UpdatedDateUTC string              `json:"UpdatedDateUTC,omitempty"`
	Lines          []ManualJournalLine `json:"JournalLines,omitempty"`
}

// ManualJournalLine is one journal leg on the wire. LineAmount is the only
// place a monetary value becomes a float, at the serialization boundary.
type ManualJournalLine struct {
	AccountCode string  `json:"AccountCode"`
	LineAmount  float64 `json:"LineAmount"`
}

type journalsEnvelope struct {
	ManualJournals []ManualJournal `json:"ManualJournals"`
}

// PostedJournals returns POSTED journals carrying the given narration, most
// recently updated first.
func (c *Client) PostedJournals(ctx context.Context, narration string) ([]ManualJournal, error) {
	where := fmt.Sprintf(`Narration=="%s" AND Status=="%s"`, narration, domain.StatusPosted)
	path := journalsPath +
		"?where=" + url.QueryEscape(where) +
		"&order=" + url.QueryEscape("UpdatedDateUTC DESC")

	var env journalsEnvelope
	if _, err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, fmt.Errorf("querying ledger journals: %w", err)
	}
	return env.ManualJournals, nil
}

// PostJournal submits a new journal. The ledger's response is returned for
// reporting even alongside an error.
func (c *Client) PostJournal(ctx context.Context, j domain.Journal) (Response, error) {
	payload := ManualJournal{
		Narration: j.Narration,
		Date:      j.Date.Format("2006-01-02"),
		Status:    j.Status,
		Lines:     make([]ManualJournalLine, 0, len(j.Lines)),
	}
	for _, l := range j.Lines {
		payload.Lines = append(payload.Lines, ManualJournalLine{
			AccountCode: l.AccountCode,
			LineAmount:  l.Amount.InexactFloat64(),
		})
	}

	resp, err := c.do(ctx, http.MethodPost, journalsPath, payload, nil)
	if err != nil {
		return resp, fmt.Errorf("posting ledger journal: %w", err)
	}
	return resp, nil
}

// VoidJournal transitions a posted journal to VOIDED. The ledger may reject
// the transition for domain reasons (already voided, closed period).
func (c *Client) VoidJournal(ctx context.Context, id string) error {
	payload := ManualJournal{ID: id, Status: domain.StatusVoided}
	if _, err := c.do(ctx, http.MethodPost, journalsPath+"/"+url.PathEscape(id), payload, nil); err != nil {
		return fmt.Errorf("voiding ledger journal %s: %w", id, err)
	}
	return nil
}

// msDateRe matches the ledger's legacy JSON date form, e.g.
// /Date(1756598400000+0000)/.
var msDateRe = regexp.MustCompile(`^/Date\((-?\d+)(?:[+-]\d{4})?\)/$`)

// ParseDate parses a journal date from a ledger response. Both ISO dates
// (with or without a time part) and the legacy /Date(ms)/ form appear in the
// wild depending on endpoint and API version.
func ParseDate(s string) (time.Time, bool) {
	if m := msDateRe.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
