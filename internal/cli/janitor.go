package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/repo"
)

const purgeEvery = time.Hour

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired idempotency records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer closeDB(db)
			n, err := repo.PurgeExpiredIdempotency(cmd.Context(), db, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("purge: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "purge: removed=%d\n", n)
			return err
		},
	})
}

// runJanitor purges expired idempotency records every interval until ctx is
// done. Failures are logged and retried on the next tick.
func runJanitor(ctx context.Context, db *gorm.DB, every time.Duration, now func() time.Time) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now())
			if err != nil {
				log.Warn().Err(err).Msg("idempotency purge failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("idempotency records purged")
			}
		}
	}
}
