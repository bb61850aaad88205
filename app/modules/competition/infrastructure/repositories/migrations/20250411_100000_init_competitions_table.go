package competitionmigrations

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
		fmt.Println("Creating competitions table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS competitions (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				created_by TEXT NOT NULL,
				competition_code TEXT NOT NULL UNIQUE,
				theme TEXT NOT NULL DEFAULT 'classic',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create competitions table: %w", err)
		}

		_, err = db.ExecContext(ctx, `
			CREATE INDEX IF NOT EXISTS idx_competitions_created_by ON competitions (created_by);
		`)
		if err != nil {
			return fmt.Errorf("failed to create created_by index: %w", err)
		}

		fmt.Println("Competitions table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping competitions table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS competitions;`); err != nil {
			return fmt.Errorf("failed to drop competitions table: %w", err)
		}
		return nil
	})
}
