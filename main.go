package main

import (
	"fmt"
	"os"
	"time"

	"immoweb-scraper/config"
	"immoweb-scraper/models"
	"immoweb-scraper/scraper/immoweb"
	"immoweb-scraper/services"
	"immoweb-scraper/storage"
	"immoweb-scraper/utils"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		utils.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	if err := utils.InitLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		utils.Warn("File logging disabled: %v", err)
	}

	start := time.Now()
	utils.Info("Scraper starting | segments=%d workers=%d timeout=%v",
		len(cfg.Segments), cfg.MaxWorkers, cfg.RequestTimeout)

	fetcher := immoweb.NewFetcher(cfg)
	harvester := immoweb.NewHarvester(fetcher, cfg)

	var urls []string
	for _, seg := range cfg.Segments {
		utils.Info("Harvesting segment %q pages [%d,%d)", seg.Name, seg.FirstPage, seg.LastPage)
		urls = append(urls, harvester.HarvestPages(seg)...)
	}
	utils.Info("Collected %d property urls", len(urls))

	if err := storage.NewURLWriter(cfg.URLCSVPath).Write(urls); err != nil {
		utils.Error("Failed to save url list: %v", err)
		os.Exit(1)
	}

	// Gives out-of-band consumers of the URL file time to pick it up before
	// the detail stage starts hammering the same host.
	if cfg.StageDelay > 0 {
		utils.Info("Waiting %v before detail harvest", cfg.StageDelay)
		time.Sleep(cfg.StageDelay)
	}

	records := harvester.HarvestDetails(urls)

	if err := storage.NewRecordWriter(cfg.DetailCSVPath).Write(models.RecordColumns, records); err != nil {
		utils.Error("Failed to save property records: %v", err)
		os.Exit(1)
	}

	cleaned := services.CleanRecords(records)
	if err := storage.NewRecordWriter(cfg.CleanedCSVPath).Write(models.RecordColumns, cleaned); err != nil {
		utils.Error("Failed to save cleaned dataset: %v", err)
		os.Exit(1)
	}

	if cfg.EnableDB {
		writeToPostgres(cfg, cleaned)
	}

	report := services.GenerateReport(records, cleaned)
	services.PrintReport(report)
	printSummary(len(urls), len(cleaned))

	utils.Success("Pipeline finished in %.2f seconds", time.Since(start).Seconds())
}

// writeToPostgres is best-effort: a missing database never fails the run.
func writeToPostgres(cfg *config.Config, records []models.PropertyRecord) {
	writer, err := storage.NewPostgresWriter(cfg)
	if err != nil {
		utils.Error("Failed to connect PostgreSQL: %v", err)
		return
	}
	defer writer.Close()

	if err := writer.EnsureSchema(); err != nil {
		utils.Error("Failed to ensure PostgreSQL schema: %v", err)
		return
	}
	if err := writer.WriteBatch(records); err != nil {
		utils.Error("Failed to save records to PostgreSQL: %v", err)
		return
	}
	utils.Success("Saved %d cleaned records to PostgreSQL", len(records))
}

func printSummary(urlCount, recordCount int) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════╗")
	fmt.Println("║                HARVEST COMPLETE              ║")
	fmt.Println("╠══════════════════════════════════════════════╣")
	fmt.Printf("║  URLs discovered : %-25d║\n", urlCount)
	fmt.Printf("║  Clean records   : %-25d║\n", recordCount)
	fmt.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()
}
