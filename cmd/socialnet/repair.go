package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/99minutos/social-network/internal/infrastructure/queue"
	"github.com/99minutos/social-network/pkg/logger"
)

func runRepair(cmd *cobra.Command, args []string) error {
	if !repairAll && len(args) == 0 {
		return errors.New("pass account IDs or --all")
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()

	ids := args
	if repairAll {
		if ids, err = a.accountRepo.ListIDs(ctx); err != nil {
			return err
		}
	}

	log := logger.Get()
	d := queue.NewDispatcher(cfg.Repair.Workers, a.relationships, log)
	d.Start(ctx)
	enqueueErr := d.EnqueueBatch(ctx, ids)
	d.Close()
	sum := d.Wait()

	log.Info().
		Int("accounts", sum.Accounts).
		Int("changed", sum.Changed).
		Int("failed", sum.Failed).
		Msg("relationship repair finished")

	if enqueueErr != nil {
		return fmt.Errorf("repair interrupted: %w", enqueueErr)
	}
	if sum.Failed > 0 {
		return errors.New("some accounts could not be repaired")
	}
	return nil
}
