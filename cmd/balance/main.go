package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/sporefield/config"
)

// evalRecord is one row of balance_log.csv.
type evalRecord struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	Margin     float64 `csv:"margin"`
	EvilGrowth float64 `csv:"portal_growth_factor_evil"`
	SpawnerP   float64 `csv:"evil_portal_spawner_spawn_chance"`
	DeadLife   float64 `csv:"evil_dead_spore_life"`
	ElapsedSec float64 `csv:"elapsed_sec"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 20000, "Ticks per match")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	// Matches log "game created" at info, keep the run output readable
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *outputDir == "" {
		logger.Error("--output is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	params := NewParamVector(baseCfg)
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, baseCfg)

	logPath := filepath.Join(*outputDir, "balance_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		logger.Error("failed to create log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			elapsed := time.Since(startTime)
			rec := []evalRecord{{
				Eval:       evalCount,
				Fitness:    fitness,
				Margin:     evaluator.LastMargin(),
				EvilGrowth: raw[0],
				SpawnerP:   raw[1],
				DeadLife:   raw[2],
				ElapsedSec: elapsed.Seconds(),
			}}
			if evalCount == 1 {
				err = gocsv.Marshal(rec, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rec, logFile)
			}
			if err != nil {
				logger.Error("failed to write log row", "error", err)
			}

			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			logger.Info("evaluation",
				"eval", fmt.Sprintf("%d/%d", evalCount, *maxEvals),
				"fitness", fitness,
				"margin", evaluator.LastMargin(),
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Seeds already run in parallel
	}
	method := &optimize.NelderMead{}

	logger.Info("starting balance search",
		"params", params.Dim(),
		"max_evals", *maxEvals,
		"seeds", *seeds,
		"ticks", *maxTicks,
	)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		logger.Warn("search ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		logger.Error("no evaluations completed")
		os.Exit(1)
	}

	logger.Info("balance search complete",
		"evals", evalCount,
		"elapsed", formatDuration(time.Since(startTime)),
		"best_fitness", bestFitness,
	)
	for i, spec := range params.Specs {
		logger.Info("best parameter", "name", spec.Name, "path", spec.Path, "value", bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		logger.Error("failed to write best config", "error", err)
		return
	}
	logger.Info("best config saved", "path", configOutPath)
}
