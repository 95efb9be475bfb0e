package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/BurntSushi/toml"

	"malbolge_gen"
)

var toolConfigPath *string = flag.String("config", "./config.toml", "The config file for malbolge_gen tools to use. Defaults to './config.toml'")

var targetsPath *string = flag.String("targets", "./targets.txt", "File with one target string per line")

func main() {
	flag.Parse()

	conffile, err := os.Open(*toolConfigPath)
	if err != nil {
		log.Fatalf("Unable to load malbolge_gen config: %v", err)
	}

	confDecoder := toml.NewDecoder(conffile)
	var toolConfig malbolge_gen.ToolConfig
	if _, err = confDecoder.Decode(&toolConfig); err != nil {
		log.Fatalf("Failed to unmarshal tool config: %v", err)
	}
	conffile.Close()

	targets, err := loadTargets(*targetsPath)
	if err != nil {
		log.Fatalf("Unable to load targets: %v", err)
	}
	if len(targets) == 0 {
		log.Fatalf("No targets found in %s", *targetsPath)
	}

	batchSize := toolConfig.BatchSize
	if batchSize == 0 {
		batchSize = malbolge_gen.DefaultBatchSize
	}

	var persist *malbolge_gen.Persistence
	if toolConfig.Persistence != nil {
		if persist, err = malbolge_gen.NewPersistence(toolConfig.Persistence); err != nil {
			log.Fatalf("Failed to create or initialize Persistence: %v", err)
		}
		defer persist.Shutdown()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := malbolge_gen.NewGenerationEngine(toolConfig.Generator, toolConfig.Workers)
	results := engine.Run(ctx, targets)

	var failed int
	batch := make([]*malbolge_gen.GenerationRecord, 0, batchSize)
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Printf("Target [%q] failed: %v", res.Target, res.Err)
			continue
		}
		if persist == nil {
			continue
		}
		record, err := malbolge_gen.NewGenerationRecord(res.Result)
		if err != nil {
			log.Fatalf("Failed to build archive record: %v", err)
		}
		batch = append(batch, record)
		if uint(len(batch)) == batchSize {
			if err := persist.SaveRecords(batch); err != nil {
				log.Fatalf("Failed to persist record batch: %v", err)
			}
			batch = batch[:0]
		}
	}
	if persist != nil && len(batch) > 0 {
		if err := persist.SaveRecords(batch); err != nil {
			log.Fatalf("Failed to persist record batch: %v", err)
		}
	}

	log.Printf("Generated %d/%d targets", len(results)-failed, len(results))
	if persist != nil {
		if metrics, err := persist.QueryMetrics(); err == nil {
			log.Printf("Archive now holds %d runs over %d targets, avg %.0f evaluations, avg %.0fms",
				metrics.Count, metrics.Targets, metrics.AvgEvaluations, metrics.AvgDurationNS/1e6)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		targets = append(targets, line)
	}
	return targets, scanner.Err()
}
