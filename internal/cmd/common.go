// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/YassinCh/skilltest-buienradar/internal/config"
	"github.com/YassinCh/skilltest-buienradar/internal/storage"
)

var (
	errNoArguments = errors.New("no region name provided")
)

// handleError will do custom print error handling based on the type of error received.
// It always returns the original error so that the process exits with a non zero code.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// noArgs rejects any positional argument, printing the usage like the flag errors.
func noArgs(cmd *cobra.Command, args []string) error {
	err := cobra.NoArgs(cmd, args)
	if err != nil {
		cmd.PrintErrln(err)
		_ = cmd.Usage()
	}

	return err
}

// openStore connects to the database configured in settings.
func openStore(ctx context.Context, settings config.Settings) (*storage.Store, error) {
	return storage.Open(ctx, settings.DatabaseURL, storage.WithEcho(settings.EchoSQL))
}
