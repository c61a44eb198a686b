package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	gw "irrigation_gateway"
	"irrigation_gateway/internal/service"

	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("controller check failed")

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Connect to the controller once and print its info and zone status",
		Long: `check opens a controller session, requests controller info and zone status,
and prints both response envelopes as JSON. It exits non-zero if either fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func check(ctx context.Context, out io.Writer) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	connect, _, err := newConnector(cfg)
	if err != nil {
		return err
	}

	zones := service.NewZoneService(service.ZoneConfig{
		Session: openSession(ctx, cfg, connect, log),
		Retry:   newExecutor(cfg, log, nil),
		Log:     log.Named("zones"),
	})

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	failed := false
	for _, resp := range []gw.Response{zones.RequestInfo(ctx), zones.RequestStatus(ctx)} {
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		failed = failed || !resp.Success
	}
	if failed {
		return errCheckFailed
	}
	return nil
}
