package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/Voltaic314/ShelfDB/directory"
	"github.com/Voltaic314/ShelfDB/sdk"
	"github.com/Voltaic314/ShelfDB/seed"
	"github.com/spf13/cobra"
)

func newTenantCommand(load loadFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Operate on tenant backends",
	}
	cmd.AddCommand(newTenantResetCommand(load), newTenantSeedCommand(load), newTenantLookupCommand(load))
	return cmd
}

func newTenantResetCommand(load loadFunc) *cobra.Command {
	var (
		username    string
		clearCanvas bool
	)
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every object table of a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			client, done, err := openClient(ctx, load, username)
			if err != nil {
				return err
			}
			defer done()

			dropped, err := client.Reset(ctx)
			if err != nil {
				return err
			}
			if clearCanvas {
				if err := client.ClearCanvas(ctx); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, name := range dropped {
				fmt.Fprintln(out, name)
			}
			fmt.Fprintf(out, "dropped %d tables for %s\n", len(dropped), client.Username())
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "tenant username")
	cmd.Flags().BoolVar(&clearCanvas, "clear-canvas", false, "also remove the canvas snapshot")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newTenantSeedCommand(load loadFunc) *cobra.Command {
	var username string
	opts := seed.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a tenant with a demo inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			client, done, err := openClient(ctx, load, username)
			if err != nil {
				return err
			}
			defer done()

			res, err := seed.Seed(ctx, client, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tables with %d rows for %s (seed %d)\n",
				len(res.Tables), res.Rows, client.Username(), res.Seed)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "tenant username")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&opts.Shelves, "shelves", opts.Shelves, "number of shelves")
	cmd.Flags().IntVar(&opts.MinItems, "min-items", opts.MinItems, "minimum items per table")
	cmd.Flags().IntVar(&opts.MaxItems, "max-items", opts.MaxItems, "maximum items per table")
	cmd.Flags().Float64Var(&opts.BoxProb, "box-prob", opts.BoxProb, "chance of a nested box per shelf")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

// openClient opens the directory and a client for username. done releases both.
func openClient(ctx context.Context, load loadFunc, username string) (*sdk.ShelfDBClient, func(), error) {
	cfg, log, err := load()
	if err != nil {
		return nil, nil, err
	}

	dir, err := directory.Open(ctx, cfg.DirectoryPath(), log)
	if err != nil {
		log.Sync()
		return nil, nil, err
	}

	client, err := sdk.NewShelfDBClientWithDir(ctx, cfg.TenantsDir(), username, dir, log)
	if err != nil {
		dir.Close()
		log.Sync()
		return nil, nil, err
	}
	return client, func() {
		client.Close()
		dir.Close()
		log.Sync()
	}, nil
}

func newTenantLookupCommand(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup",
		Short: "List the recorded username to backend key mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := context.Background()
			dir, err := directory.Open(ctx, cfg.DirectoryPath(), log)
			if err != nil {
				return err
			}
			defer dir.Close()

			entries, err := dir.ListTenants(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USERNAME\tBACKEND KEY\tCREATED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Username, e.BackendKey, e.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}
