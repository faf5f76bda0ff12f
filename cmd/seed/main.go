// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"puntoventa/internal/core/id"
	"puntoventa/internal/infrastructure/storage/postgres"
	"puntoventa/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminOperator(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin operator", "error", err)
	}

	if err := seedPaymentMethods(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed payment methods", "error", err)
	}

	log.Info("seed completed")
}

func seedAdminOperator(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	var existingID string
	err := pool.QueryRow(ctx, `SELECT id FROM sys_operators WHERE username = $1`, username).Scan(&existingID)
	if err == nil {
		log.Infow("admin operator already exists", "username", username, "id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check operator exists: %w", err)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD environment variable is required for first seed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	operatorID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO sys_operators (id, username, password_hash, name, is_active, is_admin, failed_login_attempts, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, true, true, 0, NOW(), NOW(), 1)
	`, operatorID, username, string(hash), "Administrador")
	if err != nil {
		return fmt.Errorf("insert operator: %w", err)
	}

	log.Infow("admin operator created", "username", username, "id", operatorID)
	return nil
}

func seedPaymentMethods(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	methods := []struct {
		code    string
		name    string
		percent string
		plans   []struct {
			count     int
			surcharge string
		}
	}{
		{"EFECTIVO", "Efectivo", "-10", nil},
		{"DEBITO", "Tarjeta de débito", "0", nil},
		{"CREDITO", "Tarjeta de crédito", "0", []struct {
			count     int
			surcharge string
		}{
			{3, "15"},
			{6, "30"},
			{12, "60"},
		}},
		{"TRANSFERENCIA", "Transferencia", "-5", nil},
	}

	for _, m := range methods {
		methodID := id.New()
		tag, err := pool.Exec(ctx, `
			INSERT INTO cat_payment_methods (id, code, name, adjustment_percent, active, version, deletion_mark)
			VALUES ($1, $2, $3, $4, true, 1, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, methodID, m.code, m.name, m.percent)
		if err != nil {
			return fmt.Errorf("insert payment method %s: %w", m.code, err)
		}
		if tag.RowsAffected() == 0 {
			log.Infow("payment method already exists", "code", m.code)
			continue
		}

		for _, p := range m.plans {
			_, err := pool.Exec(ctx, `
				INSERT INTO cat_payment_method_plans (method_id, installment_count, surcharge_percent)
				VALUES ($1, $2, $3)
			`, methodID, p.count, p.surcharge)
			if err != nil {
				return fmt.Errorf("insert plan %s/%d: %w", m.code, p.count, err)
			}
		}

		log.Infow("payment method created", "code", m.code, "plans", len(m.plans))
	}

	return nil
}
