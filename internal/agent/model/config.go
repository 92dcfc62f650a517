package model

// ================ Config ================
type EngineConfig struct {
	MaxIterations int    `envconfig:"MAX_ITERATIONS" default:"10"`
	RunJournalTTL string `envconfig:"RUN_JOURNAL_TTL" default:"1h"`
}

type OracleModelConfig struct {
	Model       string  `envconfig:"ORACLE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"ORACLE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"ORACLE_TEMPERATURE" default:"0.2"`
	Timeout     string  `envconfig:"ORACLE_TIMEOUT" default:"60s"`
	MaxRetries  int     `envconfig:"ORACLE_MAX_RETRIES" default:"2"`
}

type PlannerPromptConfig struct {
	MinSteps int `envconfig:"PLANNER_MIN_STEPS" default:"2"`
	MaxSteps int `envconfig:"PLANNER_MAX_STEPS" default:"5"`
}
