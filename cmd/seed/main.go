package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/staffhive-dev/workforce-scheduler/backend/internal/config"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/repository"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/seed"
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var companyID int64

	flag.IntVar(&op, "op", 0, "operation (1: insert random users, 2: insert random schedules, 3: seed demo tenants)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&companyID, "company", 1, "target company for op 1 and 2")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("invalid user count")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(companyID, cfg.Seed.UserPassword, domain.UserTypeEmployee)
			if err != nil {
				slog.Error("failed to generate user", slog.String("error", err.Error()))
				continue
			}
			if err := repo.CreateUser(user); err != nil {
				slog.Error("failed to insert user", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("inserted users", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("invalid schedule count")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			period := utils.GenerateRandomSchedulePeriod(companyID, 1)
			if err := repo.CreateSchedulePeriod(period); err != nil {
				slog.Error("failed to insert schedule", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("inserted schedules", slog.Int("count", cnt))
	case 3:
		seed.SeedDemoData(cfg, repo)
	default:
		slog.Error("unknown operation")
	}
}
