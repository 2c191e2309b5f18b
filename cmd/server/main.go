// Command server runs the steward administrative backend.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"steward/internal/activity"
	activitymetrics "steward/internal/activity/metrics"
	activitymemory "steward/internal/activity/store/memory"
	activitypostgres "steward/internal/activity/store/postgres"
	departmenthandler "steward/internal/department/handler"
	departmentservice "steward/internal/department/service"
	departmentmemory "steward/internal/department/store/memory"
	divisionhandler "steward/internal/division/handler"
	divisionservice "steward/internal/division/service"
	divisionmemory "steward/internal/division/store/memory"
	"steward/internal/export"
	jobtitlehandler "steward/internal/jobtitle/handler"
	jobtitleservice "steward/internal/jobtitle/service"
	jobtitlememory "steward/internal/jobtitle/store/memory"
	"steward/internal/platform/config"
	"steward/internal/platform/httpserver"
	"steward/internal/platform/logger"
	platformredis "steward/internal/platform/redis"
	rolehandler "steward/internal/role/handler"
	roleservice "steward/internal/role/service"
	rolememory "steward/internal/role/store/memory"
	serviceareahandler "steward/internal/servicearea/handler"
	serviceareaservice "steward/internal/servicearea/service"
	serviceareamemory "steward/internal/servicearea/store/memory"
	tablefilterhandler "steward/internal/tablefilter/handler"
	tablefilterservice "steward/internal/tablefilter/service"
	tablefiltermemory "steward/internal/tablefilter/store/memory"
	tablefilterredis "steward/internal/tablefilter/store/redis"
	teamhandler "steward/internal/team/handler"
	teamservice "steward/internal/team/service"
	teammemory "steward/internal/team/store/memory"
	tenanthandler "steward/internal/tenant/handler"
	tenantservice "steward/internal/tenant/service"
	tenantmemory "steward/internal/tenant/store/memory"
	httptransport "steward/internal/transport/http"
	userhandler "steward/internal/user/handler"
	userservice "steward/internal/user/service"
	usermemory "steward/internal/user/store/memory"
	"steward/pkg/platform/middleware/auth"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	// The registry must cover every kind any family can write before the
	// first request is served; a duplicate or missing decoder is a
	// configuration bug, so die now rather than mid-request.
	registry, err := activity.NewRegistry(
		departmentservice.Decoders(),
		divisionservice.Decoders(),
		serviceareaservice.Decoders(),
		jobtitleservice.Decoders(),
		teamservice.Decoders(),
		tenantservice.Decoders(),
		roleservice.Decoders(),
		userservice.Decoders(),
	)
	if err != nil {
		log.Error("activity registry construction failed", "error", err)
		os.Exit(1)
	}

	var (
		activityStore activity.Store
		uow           activity.UnitOfWork
	)
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("pgx", cfg.Postgres.DSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		activityStore = activitypostgres.New(db)
		uow = activitypostgres.NewUnitOfWork(db)
	} else {
		log.Warn("no postgres DSN configured, using in-memory activity store")
		mem := activitymemory.NewStore()
		activityStore = mem
		uow = mem
	}

	metrics := activitymetrics.New()
	recorder := activity.NewRecorder(activityStore, activity.WithRecorderMetrics(metrics))
	reader := activity.NewReader(activityStore, registry,
		activity.WithLogger(log),
		activity.WithMetrics(metrics),
	)

	departmentStore := departmentmemory.NewStore()
	divisionStore := divisionmemory.NewStore()
	serviceAreaStore := serviceareamemory.NewStore()
	jobTitleStore := jobtitlememory.NewStore()
	teamStore := teammemory.NewStore()
	tenantStore := tenantmemory.NewStore()
	roleStore := rolememory.NewStore()
	userStore := usermemory.NewStore()

	departments := departmentservice.New(departmentStore, recorder, reader, uow, departmentservice.WithLogger(log))
	divisions := divisionservice.New(divisionStore, recorder, reader, uow, divisionservice.WithLogger(log))
	serviceAreas := serviceareaservice.New(serviceAreaStore, recorder, reader, uow, serviceareaservice.WithLogger(log))
	jobTitles := jobtitleservice.New(jobTitleStore, recorder, reader, uow, jobtitleservice.WithLogger(log))
	teams := teamservice.New(teamStore, recorder, reader, uow, teamservice.WithLogger(log))
	tenants := tenantservice.New(tenantStore, recorder, reader, uow, tenantservice.WithLogger(log))
	roles := roleservice.New(roleStore, userStore, recorder, uow, roleservice.WithLogger(log))
	users := userservice.New(userStore, recorder, reader, uow, userservice.WithLogger(log))

	var tableFilterStore tablefilterservice.Store = tablefiltermemory.NewStore()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		tableFilterStore = tablefilterredis.New(redisClient)
	} else {
		log.Warn("no redis URL configured, using in-memory table filter store")
	}
	tableFilters := tablefilterservice.New(tableFilterStore, tablefilterservice.WithLogger(log))

	exporter := httptransport.NewExporter(map[string]export.Source{
		"departments":   departments.ExportTable,
		"divisions":     divisions.ExportTable,
		"service-areas": serviceAreas.ExportTable,
		"job-titles":    jobTitles.ExportTable,
		"teams":         teams.ExportTable,
		"tenants":       tenants.ExportTable,
		"users":         users.ExportTable,
	}, log)

	validator := auth.NewHMACValidator([]byte(cfg.JWTSigningKey))
	router := httptransport.NewRouter(validator, log, exporter,
		departmenthandler.New(departments, log),
		divisionhandler.New(divisions, log),
		serviceareahandler.New(serviceAreas, log),
		jobtitlehandler.New(jobTitles, log),
		teamhandler.New(teams, log),
		tenanthandler.New(tenants, log),
		rolehandler.New(roles, log),
		userhandler.New(users, log),
		tablefilterhandler.New(tableFilters, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
