package credentials

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestEnvProvider(t *testing.T) {
	key, err := EnvProvider{Key: " AIza-env-key "}.APIKey(context.Background())
	if err != nil || key != "AIza-env-key" {
		t.Fatalf("APIKey = %q, %v", key, err)
	}
	if _, err := (EnvProvider{}).APIKey(context.Background()); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestPromptProviderReadsOnce(t *testing.T) {
	var out bytes.Buffer
	p := &PromptProvider{In: strings.NewReader("AIza-typed-key\nsecond\n"), Out: &out}

	for i := 0; i < 2; i++ {
		key, err := p.APIKey(context.Background())
		if err != nil {
			t.Fatalf("APIKey error: %v", err)
		}
		if key != "AIza-typed-key" {
			t.Fatalf("APIKey = %q", key)
		}
	}
	if strings.Count(out.String(), "Gemini API key:") != 1 {
		t.Fatalf("expected a single prompt, got %q", out.String())
	}
}

func TestPromptProviderEmptyInput(t *testing.T) {
	p := &PromptProvider{In: strings.NewReader("")}
	if _, err := p.APIKey(context.Background()); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestChainFallsThroughMissingCredentials(t *testing.T) {
	chain := Chain{
		EnvProvider{},
		StoreProvider{Store: NewStore(&stubExecutor{err: pgx.ErrNoRows})},
		EnvProvider{Key: "AIza-fallback"},
	}
	key, err := chain.APIKey(context.Background())
	if err != nil || key != "AIza-fallback" {
		t.Fatalf("APIKey = %q, %v", key, err)
	}
}

func TestChainStopsOnStoreFailure(t *testing.T) {
	chain := Chain{
		StoreProvider{Store: NewStore(&stubExecutor{err: errors.New("connection refused")})},
		EnvProvider{Key: "AIza-fallback"},
	}
	if _, err := chain.APIKey(context.Background()); err == nil || errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestPresumed(t *testing.T) {
	if Presumed("short") {
		t.Fatal("short key presumed valid")
	}
	if !Presumed("AIzaSyA-0123456789") {
		t.Fatal("long key not presumed valid")
	}
}
