package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"markova/internal/infra"
	"markova/internal/infra/credentials"
)

// geminikey stores the Gemini API key in the database. Without -key it falls
// back to GEMINI_API_KEY and then asks on the terminal.
func main() {
	_ = godotenv.Load()

	var keyFlag string
	flag.StringVar(&keyFlag, "key", "", "Gemini API key (falls back to GEMINI_API_KEY, then a prompt)")
	flag.Parse()

	source := credentials.Chain{
		credentials.EnvProvider{Key: keyFlag},
		credentials.EnvProvider{Key: os.Getenv("GEMINI_API_KEY")},
		&credentials.PromptProvider{In: os.Stdin, Out: os.Stderr},
	}
	key, err := source.APIKey(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "GEMINI API key is required: %v\n", err)
		os.Exit(1)
	}
	if !credentials.Presumed(key) {
		fmt.Fprintln(os.Stderr, "warning: key looks too short to be valid")
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "geminikey").Logger()
	store := credentials.NewStore(infra.NewSQLRunner(pool, logger))

	props := map[string]any{"updated_by": "geminikey", "updated_at": time.Now().UTC().Format(time.RFC3339)}
	if err := store.SetGeminiAPIKey(ctx, key, props); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist gemini api key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("GEMINI API key stored successfully")
}
