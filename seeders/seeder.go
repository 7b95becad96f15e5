package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedProjects наполняет проекты и их секции.
func SeedProjects(ctx context.Context, db *pgxpool.Pool) {
	log.Println("▶️  Запуск наполнения проектов и секций...")

	if err := seedProjects(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Проектов (Projects): %v", err)
	}
	log.Println("✅ Наполнение проектов завершено!")
}

// SeedDigest наполняет digest_reports тестовыми отчётами.
func SeedDigest(ctx context.Context, db *pgxpool.Pool) {
	log.Println("▶️  Запуск наполнения отчётов дайджеста...")

	if err := seedDigestReports(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Дайджеста (DigestReports): %v", err)
	}
	log.Println("✅ Наполнение дайджеста завершено!")
}
