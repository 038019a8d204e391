// Batch scorer: reads a dataset CSV of (sample_id, truth, response) rows,
// scores every response against its ground truth and prints per-sample and
// aggregate precision/recall/F1. With a results store configured, the run and
// every evaluation are persisted under a fresh run UUID.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/agenthands/scorecard/internal/config"
	"github.com/agenthands/scorecard/internal/core"
	"github.com/agenthands/scorecard/internal/core/model"
	"github.com/agenthands/scorecard/internal/llm"
	"github.com/agenthands/scorecard/internal/store"
)

var truthDelims = regexp.MustCompile(`[,，、]`)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := flag.String("config", "config/config.toml", "path to the TOML config")
	dataPath := flag.String("data", "", "path to the dataset CSV (sample_id, truth, response)")
	runName := flag.String("name", "", "run name recorded in the results store")
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("missing -data: path to the dataset CSV")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", *cfgPath, err)
		cfg = config.Default()
	}

	ctx := context.Background()

	var client llm.Client
	if cfg.Scoring.UseSemantic {
		client, err = llm.NewClient(ctx, cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
	}

	var st store.ResultStore
	if cfg.Store.Path != "" {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to open results store: %v", err)
		}
		defer sqlStore.Close()
		st = sqlStore
	}

	engine := core.NewEngine(cfg, client, st)

	name := *runName
	if name == "" {
		name = time.Now().UTC().Format("run-2006-01-02_15-04-05")
	}
	run := model.Run{UUID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	if st != nil {
		if err := st.SaveRun(ctx, run); err != nil {
			log.Fatalf("Failed to create run: %v", err)
		}
	}

	f, err := os.Open(*dataPath)
	if err != nil {
		log.Fatalf("Failed to open dataset: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3
	if _, err := reader.Read(); err != nil { // header
		log.Fatalf("Failed to read dataset header: %v", err)
	}

	var samples int
	var sumP, sumR, sumF1 float64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read dataset row: %v", err)
		}

		sampleID := strings.TrimSpace(row[0])
		truth := parseTruth(row[1])
		response := row[2]

		ev, err := engine.EvaluateSample(ctx, run.UUID, sampleID, response, truth)
		if err != nil {
			log.Fatalf("Failed to evaluate sample %s: %v", sampleID, err)
		}

		r := ev.Report
		log.Printf("sample %s: P=%.2f R=%.2f F1=%.2f (exact=%d fuzzy=%.2f, predicted %d of %d)",
			sampleID, r.Precision, r.Recall, r.F1, r.ExactCount, r.FuzzyScore, len(ev.Predicted), len(truth))
		for _, d := range r.MatchDetails {
			log.Printf("  matched: %s", d)
		}
		for _, miss := range r.TruthMissed {
			log.Printf("  missed: %s", miss)
		}

		samples++
		sumP += r.Precision
		sumR += r.Recall
		sumF1 += r.F1
	}

	if samples == 0 {
		log.Println("Dataset contained no samples")
		return
	}

	log.Printf("run %s (%s): %d samples, mean P=%.3f R=%.3f F1=%.3f",
		run.Name, run.UUID, samples,
		sumP/float64(samples), sumR/float64(samples), sumF1/float64(samples))
}

// parseTruth splits the comma-delimited ground-truth column. The "无"/"none"
// sentinel means the sample truly has no entities.
func parseTruth(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "无" || strings.EqualFold(s, "none") {
		return nil
	}

	parts := truthDelims.Split(s, -1)
	truth := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			truth = append(truth, p)
		}
	}
	return truth
}
