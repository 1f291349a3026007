package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsuet/accounting/client"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive old payrolls and browse the archive log",
	}
	cmd.AddCommand(archivePayrollsCmd())
	cmd.AddCommand(archiveListCmd())
	return cmd
}

func archivePayrollsCmd() *cobra.Command {
	var cutoff string
	cmd := &cobra.Command{
		Use:   "payrolls",
		Short: "Move payrolls whose period ended before --cutoff into the archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := client.ParseDate(cutoff)
			if err != nil {
				return fmt.Errorf("--cutoff: %w", err)
			}
			res, err := apiClient.Archive.ArchivePayrolls(context.Background(), d)
			if client.IsArchiveConflict(err) {
				fmt.Fprintln(os.Stderr, "Another archive run touched the same payrolls; nothing was moved. Retry.")
				os.Exit(2)
			}
			if err != nil {
				fatal("archive payrolls", err)
			}
			output(res, strconv.Itoa(res.Moved))
			return nil
		},
	}
	cmd.Flags().StringVar(&cutoff, "cutoff", "", "Cutoff date (YYYY-MM-DD); payrolls with period_end before it are archived")
	_ = cmd.MarkFlagRequired("cutoff")
	return cmd
}

func archiveListCmd() *cobra.Command {
	var source, since, until string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archive log entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 || offset < 0 {
				return fmt.Errorf("--limit and --offset must be non-negative")
			}
			opts := &client.ArchiveListOptions{SourceTable: source, Limit: limit, Offset: offset}
			var err error
			if opts.Since, err = parseTimeFlag("since", since); err != nil {
				return err
			}
			if opts.Until, err = parseTimeFlag("until", until); err != nil {
				return err
			}

			entries, hasMore, err := apiClient.Archive.List(context.Background(), opts)
			if err != nil {
				fatal("list archive", err)
			}
			switch flagFmt {
			case "table":
				table := make([][]string, 0, len(entries))
				for _, e := range entries {
					row := []string{id64(e.ID), e.SourceTable, e.ArchivedAt.Format("2006-01-02 15:04:05"), "", "", ""}
					if snap, ok := e.Payload.(client.PayrollSnapshot); ok {
						row[3] = id64(snap.ID)
						row[4] = snap.PeriodEnd.String()
						row[5] = money(snap.NetAmount)
					}
					table = append(table, row)
				}
				formatTable([]string{"ID", "SOURCE", "ARCHIVED_AT", "RECORD", "PERIOD_END", "NET"}, table)
				if hasMore {
					fmt.Println("(more entries available, use --offset)")
				}
			case "quiet":
				for _, e := range entries {
					fmt.Println(e.ID)
				}
			default:
				formatJSON(map[string]any{"data": entries, "has_more": hasMore})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Filter by source table")
	cmd.Flags().StringVar(&since, "since", "", "Only entries archived at or after this RFC 3339 time or date")
	cmd.Flags().StringVar(&until, "until", "", "Only entries archived at or before this RFC 3339 time or date")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}

// parseTimeFlag accepts RFC 3339 or a bare YYYY-MM-DD date (midnight UTC).
func parseTimeFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	d, err := client.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: expected RFC 3339 time or YYYY-MM-DD", name)
	}
	t := d.Time()
	return &t, nil
}
