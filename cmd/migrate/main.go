package main

import (
	"flag"
	"log"

	"github.com/homelead/territory-api/internal/config"
	"github.com/homelead/territory-api/internal/infra/database"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if *down {
		if err := database.RollbackMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			log.Fatal(err)
		}
		log.Println("rollback complete")
		return
	}

	if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		log.Fatal(err)
	}
	log.Println("migrations complete")
}
