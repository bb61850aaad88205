package entrymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating player_entries table...")

		// player_name and video_url carry explicit length limits; inserts over
		// the limit surface as 22001 and map to the "value too long" outcome.
		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS player_entries (
				id BIGSERIAL PRIMARY KEY,
				competition_id BIGINT NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
				player_name VARCHAR(100) NOT NULL,
				video_url VARCHAR(500) NOT NULL,
				score INT NULL,
				comments TEXT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE(competition_id, player_name)
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create player_entries table: %w", err)
		}

		_, err = db.ExecContext(ctx, `
			CREATE INDEX IF NOT EXISTS idx_player_entries_competition_id ON player_entries (competition_id);
		`)
		if err != nil {
			return fmt.Errorf("failed to create competition_id index: %w", err)
		}

		fmt.Println("Player entries table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping player_entries table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS player_entries;`); err != nil {
			return fmt.Errorf("failed to drop player_entries table: %w", err)
		}
		return nil
	})
}
