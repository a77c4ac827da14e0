package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bdex-network/bdex-daemon/internal/config"
	"github.com/bdex-network/bdex-daemon/internal/core/application"
	"github.com/bdex-network/bdex-daemon/internal/core/domain"
	dbbadger "github.com/bdex-network/bdex-daemon/internal/infrastructure/storage/db/badger"
	"github.com/bdex-network/bdex-daemon/internal/infrastructure/storage/db/inmemory"
	walletservice "github.com/bdex-network/bdex-daemon/internal/infrastructure/wallet"
	wdbservice "github.com/bdex-network/bdex-daemon/internal/infrastructure/wdb"
	httpinterface "github.com/bdex-network/bdex-daemon/internal/interfaces/http"
	"github.com/bdex-network/bdex-daemon/pkg/explorer/esplora"
	"github.com/bdex-network/bdex-daemon/pkg/httputil"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	orderRepository, closeStore, err := openOrderRepository()
	if err != nil {
		log.WithError(err).Fatal("error while opening the order store")
	}
	defer closeStore()

	httpClient := httputil.NewClient(
		config.GetInt(config.ExplorerRequestsPerSecondKey),
		time.Duration(config.GetInt(config.HTTPTimeoutKey))*time.Second,
	)

	explorerSvc, err := esplora.NewService(
		config.GetString(config.ExplorerEndpointKey), httpClient,
	)
	if err != nil {
		log.WithError(err).Fatal("error while connecting to the explorer")
	}

	walletSvc := walletservice.NewService(
		config.GetString(config.WalletAddrKey), httpClient,
	)
	wdbSvc := wdbservice.NewService(
		config.GetString(config.WriteDBAddrKey), httpClient,
	)

	orderSvc := application.NewOrderService(
		orderRepository, explorerSvc, walletSvc, wdbSvc,
		uint64(config.GetInt(config.TakeSafetyMarginKey)),
	)

	orderHandler := httpinterface.NewOrderHandler(
		orderSvc, config.GetString(config.WebhookSecretKey),
	)
	addr := fmt.Sprintf(":%d", config.GetInt(config.APIListenPortKey))
	server := httpinterface.NewServer(addr, orderHandler)

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("api interface is listening on %s", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 10*time.Second,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("daemon exited with error")
	}
	log.Info("exiting")
}

func openOrderRepository() (domain.OrderRepository, func(), error) {
	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		return inmemory.NewOrderRepositoryImpl(), func() {}, nil
	default:
		dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
		dbManager, err := dbbadger.NewDbManager(dbDir, nil)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := dbManager.Close(); err != nil {
				log.WithError(err).Warn("error while closing the order store")
			}
		}
		return dbbadger.NewOrderRepositoryImpl(dbManager), closeFn, nil
	}
}
