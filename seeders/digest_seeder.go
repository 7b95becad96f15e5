package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eneca-dev/enecawork-backend/pkg/database/postgresql"
)

// КЛЮЧИК: true - очистить отчёты перед записью.
const fullSync_DigestReports = false

func seedDigestReports(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'digest_reports'...")

	query := `INSERT INTO digest_reports (project_id, project_name, project_manager, project_manager_email, digest_date, digest_text)
			  SELECT $1, $2, $3, $4, $5::date, $6
			  WHERE NOT EXISTS (SELECT 1 FROM digest_reports WHERE project_id = $1 AND digest_date = $5::date)`

	today := time.Now().UTC().Truncate(24 * time.Hour)

	return postgresql.RunInTx(ctx, db, func(tx pgx.Tx) error {
		if fullSync_DigestReports {
			log.Println("    - Стратегия: Полная перезапись (TRUNCATE)")
			if _, err := tx.Exec(ctx, "TRUNCATE TABLE digest_reports RESTART IDENTITY"); err != nil {
				return err
			}
		}

		for _, d := range digestData {
			date := today.AddDate(0, 0, -d.DaysAgo).Format("2006-01-02")
			if _, err := tx.Exec(ctx, query, d.ProjectID, d.ProjectName, d.ProjectManager, d.ProjectManagerEmail, date, d.Text); err != nil {
				return err
			}
		}
		return nil
	})
}
