package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// ArchiveService handles payroll archiving and archive log browsing.
type ArchiveService struct {
	c *Client
}

// ArchiveListOptions filters the archive log listing.
type ArchiveListOptions struct {
	SourceTable string
	Since       *time.Time
	Until       *time.Time
	Limit       int
	Offset      int
}

type archiveListResponse struct {
	Data    []ArchiveEntry `json:"data"`
	HasMore bool           `json:"has_more"`
}

// ArchivePayrolls moves every live payroll whose period ended before cutoff
// into the archive log.
func (s *ArchiveService) ArchivePayrolls(ctx context.Context, cutoff Date) (*ArchiveResult, error) {
	body := map[string]Date{"cutoff_date": cutoff}

	var result ArchiveResult
	if err := s.c.post(ctx, "/api/v1/archive/payrolls", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns archive log entries, newest first.
func (s *ArchiveService) List(ctx context.Context, opts *ArchiveListOptions) ([]ArchiveEntry, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.SourceTable != "" {
			params.Set("source_table", opts.SourceTable)
		}
		if opts.Since != nil {
			params.Set("since", opts.Since.Format(time.RFC3339))
		}
		if opts.Until != nil {
			params.Set("until", opts.Until.Format(time.RFC3339))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}

	var resp archiveListResponse
	if err := s.c.get(ctx, "/api/v1/archive", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Data, resp.HasMore, nil
}
