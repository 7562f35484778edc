package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/counterparty"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/item"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/report"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/status"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/transaction"
	"github.com/khata-labs/ledger-server/internal/logging"
	"github.com/khata-labs/ledger-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()
	humaAPI := humago.New(mux, huma.DefaultConfig("ledger-server", "1.0.0"))

	// Order matters: the logger sees every request, auth runs after it so
	// rejected requests still get a completion line.
	humaAPI.UseMiddleware(logging.NewMiddleware(r.Logger))
	humaAPI.UseMiddleware(auth.NewMiddleware(humaAPI))

	status.NewHandler().Register(humaAPI)

	counterparty.NewCreateCounterpartyHandler(r.Service.Counterparty).Register(humaAPI)
	counterparty.NewListCounterpartiesHandler(r.Service.Counterparty).Register(humaAPI)
	counterparty.NewUpdateCounterpartyHandler(r.Service.Counterparty).Register(humaAPI)
	counterparty.NewDeleteCounterpartyHandler(r.Service.Counterparty).Register(humaAPI)
	counterparty.NewSuggestCounterpartiesHandler(r.Service.Counterparty).Register(humaAPI)

	item.NewCreateItemHandler(r.Service.Item).Register(humaAPI)
	item.NewListItemsHandler(r.Service.Item).Register(humaAPI)
	item.NewUpdateItemHandler(r.Service.Item).Register(humaAPI)
	item.NewDeleteItemHandler(r.Service.Item).Register(humaAPI)
	item.NewSuggestItemsHandler(r.Service.Item).Register(humaAPI)

	transaction.NewCommitTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)

	report.NewGenerateReportHandler(r.Service.Report).Register(humaAPI)
	report.NewBalancesHandler(r.Service.Report).Register(humaAPI)

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
