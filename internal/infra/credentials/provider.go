package credentials

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrNoCredential is returned when no provider in use holds an API key.
var ErrNoCredential = errors.New("gemini api key is not configured")

// Provider hands out the API key used for remote generation calls. The
// embedding binary decides which implementation backs it.
type Provider interface {
	APIKey(ctx context.Context) (string, error)
}

// EnvProvider serves a key read from the environment at startup.
type EnvProvider struct {
	Key string
}

func (p EnvProvider) APIKey(context.Context) (string, error) {
	key := strings.TrimSpace(p.Key)
	if key == "" {
		return "", ErrNoCredential
	}
	return key, nil
}

// StoreProvider serves the key held in the database.
type StoreProvider struct {
	Store *Store
}

func (p StoreProvider) APIKey(ctx context.Context) (string, error) {
	key, err := p.Store.GeminiAPIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("load stored key: %w", err)
	}
	if key == "" {
		return "", ErrNoCredential
	}
	return key, nil
}

// PromptProvider asks an operator for the key once and caches the answer.
type PromptProvider struct {
	In  io.Reader
	Out io.Writer

	once sync.Once
	key  string
	err  error
}

func (p *PromptProvider) APIKey(context.Context) (string, error) {
	p.once.Do(func() {
		if p.Out != nil {
			fmt.Fprint(p.Out, "Gemini API key: ")
		}
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			p.err = fmt.Errorf("read key: %w", err)
			return
		}
		p.key = strings.TrimSpace(line)
		if p.key == "" {
			p.err = ErrNoCredential
		}
	})
	return p.key, p.err
}

// Chain returns the first key any provider yields. Providers that report
// ErrNoCredential are skipped; any other error stops the chain.
type Chain []Provider

func (c Chain) APIKey(ctx context.Context) (string, error) {
	for _, p := range c {
		key, err := p.APIKey(ctx)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, ErrNoCredential) {
			return "", err
		}
	}
	return "", ErrNoCredential
}

// Presumed reports whether key looks like a usable credential.
func Presumed(key string) bool {
	return len(strings.TrimSpace(key)) > 10
}
