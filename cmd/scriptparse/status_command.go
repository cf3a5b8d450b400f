package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scriptparse/internal/api"
	"scriptparse/internal/config"
	"scriptparse/internal/daemonctl"
	"scriptparse/internal/daemonrun"
	"scriptparse/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show server, archive, and fixture status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			base := strings.TrimSpace(serverURL)
			if base == "" {
				base = cfg.ServerURL()
			}

			out := cmd.OutOrStdout()
			report := newStatusReport(out)

			report.section("Server")
			server := preflight.CheckServer(cmd.Context(), base)
			if server.Passed {
				report.add("Server", statusOK, server.Detail)
				if status, err := fetchServerStatus(cmd.Context(), base, cfg); err == nil {
					report.add("PID", statusInfo, fmt.Sprintf("%d", status.PID))
					report.add("Uptime", statusInfo, (time.Duration(status.UptimeSeconds) * time.Second).String())
					report.add("Archived runs", statusInfo, fmt.Sprintf("%d", status.ArchivedRuns))
				} else {
					report.add("Details", statusWarn, err.Error())
				}
			} else {
				report.add("Server", statusWarn, server.Detail)
			}
			lockKind, lockDetail := localServerStatus(cfg)
			report.add("Lock", lockKind, lockDetail)
			report.add("API token", statusInfo, yesNo(cfg.Server.APIToken != ""))

			report.section("Local")
			if ctx.configPath != "" {
				report.add("Config", statusInfo, ctx.configPath)
			}
			report.checks(preflight.RunAll(cmd.Context(), cfg))
			if !cfg.Archive.Enabled {
				report.add("Archive", statusInfo, "Disabled")
			}

			fmt.Fprintln(out, report.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "Server base URL (default derived from server.bind)")
	return cmd
}

func localServerStatus(cfg *config.Config) (statusKind, string) {
	running, err := daemonctl.Running(cfg)
	switch {
	case err != nil:
		return statusWarn, err.Error()
	case !running:
		return statusInfo, "free (no local server)"
	}
	if pid, err := daemonrun.ReadPID(cfg); err == nil {
		return statusInfo, fmt.Sprintf("held by pid %d", pid)
	}
	return statusInfo, "held"
}

func fetchServerStatus(ctx context.Context, base string, cfg *config.Config) (api.ServerStatus, error) {
	var status api.ServerStatus

	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, strings.TrimRight(base, "/")+"/api/status", nil)
	if err != nil {
		return status, err
	}
	if cfg.Server.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Server.APIToken)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return status, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return status, fmt.Errorf("status request failed (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return status, fmt.Errorf("status request failed (%d)", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, fmt.Errorf("decode status: %w", err)
	}
	return status, nil
}
