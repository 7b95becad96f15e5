package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eneca-dev/enecawork-backend/pkg/database/postgresql"
)

func seedProjects(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблиц 'projects' и 'sections'...")

	projectQuery := `INSERT INTO projects (name, ws_project_id) VALUES ($1, $2)
			  ON CONFLICT (ws_project_id) DO NOTHING`
	sectionQuery := `INSERT INTO sections (ws_project_id, name)
			  SELECT $1, $2
			  WHERE NOT EXISTS (SELECT 1 FROM sections WHERE ws_project_id = $1 AND name = $2)`

	return postgresql.RunInTx(ctx, db, func(tx pgx.Tx) error {
		for _, p := range projectsData {
			if _, err := tx.Exec(ctx, projectQuery, p.Name, p.WSProjectID); err != nil {
				return err
			}
			for _, name := range p.Sections {
				if _, err := tx.Exec(ctx, sectionQuery, p.WSProjectID, name); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
