package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/decision-agent-poc-v1/agent/internal/agent/engine"
	"github.com/decision-agent-poc-v1/agent/internal/agent/journal"
	"github.com/decision-agent-poc-v1/agent/internal/agent/model"
	"github.com/decision-agent-poc-v1/agent/internal/agent/oracle"
	"github.com/decision-agent-poc-v1/agent/internal/agent/tools"
	"github.com/decision-agent-poc-v1/agent/internal/core"
	logx "github.com/decision-agent-poc-v1/agent/pkg/logger"
	pkgredis "github.com/decision-agent-poc-v1/agent/pkg/redis"
)

// AppConfig defines all configurable parameters for the agent example,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure. Optional: without REDIS_URL the run journal is off.
	RedisURL          string `envconfig:"REDIS_URL"`
	RedisReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	RedisWriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	RedisDialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Engine  model.EngineConfig
	Oracle  model.OracleModelConfig
	Planner model.PlannerPromptConfig
}

func main() {
	fmt.Println("Decision Making Agent demo...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	// ====================================================
	// Run journal (optional, Redis-backed)
	var runJournal journal.Journal = journal.Nop{}
	if envCfg.RedisURL != "" {
		redisCfg := pkgredis.Config{
			URL:          envCfg.RedisURL,
			ReadTimeout:  envCfg.RedisReadTimeout,
			WriteTimeout: envCfg.RedisWriteTimeout,
			DialTimeout:  envCfg.RedisDialTimeout,
		}
		rdb, err := redisCfg.New()
		if err != nil {
			log.Fatalf("Failed to initialise Redis client: %v", err)
		}
		defer rdb.Close()

		ttl, err := time.ParseDuration(envCfg.Engine.RunJournalTTL)
		if err != nil {
			log.Fatalf("Invalid RUN_JOURNAL_TTL '%s': %v", envCfg.Engine.RunJournalTTL, err)
		}
		runJournal = journal.NewRedisJournal(rdb, ttl)
		fmt.Println("Connected to Redis successfully; run journal enabled")
	}

	// ====================================================
	// Oracle, tools, engine
	completer, err := oracle.NewGemini(ctx, oracle.GeminiConfig{
		APIKey:  envCfg.APIKey,
		BaseURL: envCfg.BaseURL,
		Model:   envCfg.Oracle,
	})
	if err != nil {
		log.Fatalf("Failed to build oracle: %v", err)
	}

	registry, err := tools.NewDefaultRegistry()
	if err != nil {
		log.Fatalf("Failed to build tool registry: %v", err)
	}

	testGoals := []struct {
		description string
		goal        string
	}{
		{
			description: "Cross-category comparison",
			goal:        "Compare the printers and speakers categories and tell me which offers better value for money",
		},
		{
			description: "Complaint mining on a filtered subset",
			goal:        "What are the main complaints about bluetooth speakers rated below 4.2?",
		},
		{
			description: "Discount effectiveness",
			goal:        "Do bigger discounts actually correlate with better ratings in this catalog?",
		},
	}

	for i, test := range testGoals {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Goal: %q\n", test.goal)
		fmt.Println("Processing...")

		runID := fmt.Sprintf("demo-%d-%d", os.Getpid(), i+1)
		eng, err := engine.New(completer, registry,
			engine.Config{
				MaxIterations: envCfg.Engine.MaxIterations,
				Planner:       envCfg.Planner,
			},
			engine.WithTransitionHook(journal.Hook(runJournal, runID)),
		)
		if err != nil {
			log.Fatalf("Failed to build engine: %v", err)
		}

		result, err := eng.Run(ctx, test.goal)
		if err != nil {
			log.Fatalf("Run %d failed: %v", i+1, err)
		}

		fmt.Printf("Plan (%d steps):\n", len(result.Plan))
		for j, step := range result.Plan {
			fmt.Printf("  %d. %s\n", j+1, step)
		}
		fmt.Printf("Tool calls: %d, iterations: %d, recovered errors: %d\n",
			len(result.History), result.Iterations, len(result.Errors))
		fmt.Printf("Answer %d:\n%s\n", i+1, result.FinalAnswer)
		fmt.Println("─────────────────────────────────────────────")

		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println("All agent runs completed successfully!")
}
