package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/pos/alerts"
	"github.com/ray-remotestate/pos/config"
	"github.com/ray-remotestate/pos/database"
	"github.com/ray-remotestate/pos/database/dbhelper"
	"github.com/ray-remotestate/pos/handlers"
	"github.com/ray-remotestate/pos/inventory"
	"github.com/ray-remotestate/pos/orders"
	"github.com/ray-remotestate/pos/registers"
	"github.com/ray-remotestate/pos/server"
	"github.com/ray-remotestate/pos/store"
	"github.com/ray-remotestate/pos/store/memory"
)

const shutdownTimeOut = 10 * time.Second

func main() {
	config.Init()

	var repo store.Repository
	if config.DatabaseURL != "" {
		if err := database.ConnectAndMigrate(config.DatabaseURL); err != nil {
			logrus.Panicf("failed to initialize database, error: %v", err)
		}
		logrus.Println("migration is successful")
		repo = dbhelper.NewPgStore(database.Pos)
	} else {
		logrus.Warn("DATABASE_URL not set, running on the in-memory store")
		repo = memory.New()
	}

	notifier := alerts.NewLogNotifier()
	ledger := inventory.NewLedger(repo, notifier)
	registerMgr := registers.NewManager(repo)
	orderSvc := orders.NewService(repo, ledger, notifier, registerMgr, config.TaxRate)

	svr := server.SetupRoutes(handlers.NewAPI(orderSvc, registerMgr, repo))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("listening on %s", config.Port)
		if err := svr.Run(config.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Panic("server stopped unexpectedly")
		}
	}()

	<-done

	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeOut); err != nil {
		logrus.WithError(err).Error("failed to shut down server cleanly!")
	}
	if err := database.ShutdownDatabase(); err != nil {
		logrus.WithError(err).Error("failed to close database connection!")
	}

	logrus.Info("system is shut ..zzz")
}
