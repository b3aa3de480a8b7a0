package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"markova/internal/adapter/repo"
	"markova/internal/domain"
	"markova/internal/infra"
	"markova/internal/validation"
)

// userplan changes the role, plan or subscription of one account. It is how
// the first admin gets promoted before the admin endpoints are reachable.
func main() {
	_ = godotenv.Load()

	var (
		idFlag     string
		roleFlag   string
		statusFlag string
		planFlag   string
		clearPlan  bool
	)
	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&roleFlag, "role", "", "role to assign (user or admin)")
	flag.StringVar(&statusFlag, "status", "", "subscription status (active, inactive, trialing, banned)")
	flag.StringVar(&planFlag, "plan", "", "plan ID to assign")
	flag.BoolVar(&clearPlan, "clear-plan", false, "remove the assigned plan")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	if userID == "" {
		exitWithError(errors.New("-id is required"))
	}
	if roleFlag == "" && statusFlag == "" && planFlag == "" && !clearPlan {
		exitWithError(errors.New("nothing to change: pass -role, -status, -plan or -clear-plan"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "userplan").Logger()
	users := repo.NewUserRepository(infra.NewSQLRunner(pool, logger))

	user, err := users.GetByID(ctx, userID)
	if err != nil {
		exitWithError(fmt.Errorf("failed to load user: %w", err))
	}

	if role := strings.ToLower(strings.TrimSpace(roleFlag)); role != "" {
		user.Role = domain.UserRole(role)
	}
	if status := strings.ToLower(strings.TrimSpace(statusFlag)); status != "" {
		user.SubscriptionStatus = domain.SubscriptionStatus(status)
	}
	switch {
	case clearPlan:
		user.PlanID = nil
	case strings.TrimSpace(planFlag) != "":
		plan := strings.TrimSpace(planFlag)
		if _, err := repo.NewPlanRepository(infra.NewSQLRunner(pool, logger)).GetByID(ctx, plan); err != nil {
			exitWithError(fmt.Errorf("failed to load plan %s: %w", plan, err))
		}
		user.PlanID = &plan
	}

	if err := validation.Struct(user); err != nil {
		exitWithError(err)
	}
	if err := users.Update(ctx, user); err != nil {
		exitWithError(fmt.Errorf("failed to update user: %w", err))
	}

	fmt.Printf("User %s (%s) updated: role=%s status=%s\n", user.ID, user.Email, user.Role, user.SubscriptionStatus)
	if user.PlanID != nil {
		fmt.Printf("plan_id=%s\n", *user.PlanID)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
