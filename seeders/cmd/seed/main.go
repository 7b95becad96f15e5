package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/pkg/config"
	"github.com/eneca-dev/enecawork-backend/pkg/database/postgresql"
	"github.com/eneca-dev/enecawork-backend/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runProjects := flag.Bool("projects", false, "Наполнить проекты и секции")
	runDigest := flag.Bool("digest", false, "Наполнить отчёты дайджеста")
	runMigrate := flag.Bool("migrate", false, "Перед наполнением применить миграции")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -projects -digest)")

	flag.Parse()

	if !*runProjects && !*runDigest && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -migrate -all")
		log.Println("  go run ./seeders/cmd/seed -digest")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	if cfg.Postgres.DSN == "" {
		log.Fatal("❌ DATABASE_URL не задан")
	}

	ctx := context.Background()
	logger := zap.NewExample()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if *runMigrate {
		if err := postgresql.Migrate(ctx, dbPool, logger); err != nil {
			log.Fatalf("❌ Ошибка миграций: %v", err)
		}
	}

	log.Println("======================================================")

	if *runAll || *runProjects {
		seeders.SeedProjects(ctx, dbPool)
		log.Println("======================================================")
	}
	if *runAll || *runDigest {
		seeders.SeedDigest(ctx, dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
