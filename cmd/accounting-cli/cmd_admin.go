package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsuet/accounting/client"
)

func newHealthCmd() *cobra.Command {
	var ready bool
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if ready {
				resp, err := apiClient.Ready(context.Background())
				if err != nil {
					fatal("readiness", err)
				}
				output(resp, resp.Status)
				return
			}
			resp, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"CHECK", "VALUE"},
					[][]string{
						{"Status", resp.Status},
						{"Version", resp.Version},
						{"Database", resp.Database},
						{"Schema", strconv.Itoa(resp.SchemaVersion)},
						{"Uptime", (time.Duration(resp.UptimeSeconds) * time.Second).String()},
					},
				)
				return
			}
			output(resp, resp.Status)
		},
	}
	cmd.Flags().BoolVar(&ready, "ready", false, "Run the readiness check instead of liveness")
	return cmd
}

func newAuditCmd() *cobra.Command {
	var entityType, entityID, action, since string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query audit logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.AuditQueryOptions{
				EntityType: entityType,
				EntityID:   entityID,
				Action:     action,
				Limit:      limit,
				Offset:     offset,
			}
			var err error
			if opts.Since, err = parseTimeFlag("since", since); err != nil {
				return err
			}
			entries, _, err := apiClient.Audit.Query(context.Background(), opts)
			if err != nil {
				fatal("audit query", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "ACTION", "ENTITY_TYPE", "ENTITY_ID", "CREATED_AT"}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{id64(e.ID), e.Action, e.EntityType, e.EntityID, e.CreatedAt.Format("2006-01-02 15:04:05")})
				}
				formatTable(headers, rows)
				return nil
			}
			output(entries, "")
			return nil
		},
	}
	cmd.Flags().StringVar(&entityType, "type", "", "Filter by entity type")
	cmd.Flags().StringVar(&entityID, "entity", "", "Filter by entity ID")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action")
	cmd.Flags().StringVar(&since, "since", "", "Only entries at or after this time")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")

	cmd.AddCommand(auditPurgeCmd())
	return cmd
}

func auditPurgeCmd() *cobra.Command {
	var retentionDays int
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Purge old audit entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if retentionDays < 1 {
				return fmt.Errorf("--retention-days must be at least 1")
			}
			deleted, err := apiClient.Audit.Purge(context.Background(), retentionDays)
			if err != nil {
				fatal("audit purge", err)
			}
			output(map[string]int{"deleted": deleted}, strconv.Itoa(deleted))
			return nil
		},
	}
	cmd.Flags().IntVar(&retentionDays, "retention-days", 90, "Delete entries older than N days")
	return cmd
}
