package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/budgets"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/statistics"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transfer"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("Ledger Server", "1.0.0"))
	RegisterV1Handlers(humaAPI, r.Service)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// RegisterV1Handlers wires every v1 endpoint into the Huma API.
func RegisterV1Handlers(api huma.API, svc *service.Service) {
	auth.NewRegisterHandler(svc.Accounting).Register(api)
	auth.NewLoginHandler(svc.Accounting).Register(api)
	auth.NewLogoutHandler(svc.Accounting).Register(api)
	transaction.NewRecordTransactionHandler(svc.Accounting).Register(api)
	transaction.NewRecentTransactionsHandler(svc.Accounting).Register(api)
	budgets.NewSetBudgetHandler(svc.Accounting).Register(api)
	budgets.NewRemoveBudgetHandler(svc.Accounting).Register(api)
	transfer.NewTransferHandler(svc.Accounting).Register(api)
	statistics.NewStatisticsHandler(svc.Accounting).Register(api)
}
