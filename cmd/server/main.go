package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/cache"
	"scanpay_back_end/internal/cart"
	"scanpay_back_end/internal/catalog"
	"scanpay_back_end/internal/checkout"
	"scanpay_back_end/internal/config"
	"scanpay_back_end/internal/database"
	"scanpay_back_end/internal/handlers"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/prefs"
	"scanpay_back_end/internal/receipt"
	"scanpay_back_end/internal/routes"
	"scanpay_back_end/internal/session"
	"scanpay_back_end/internal/utils"
	"scanpay_back_end/internal/workflow"
	"scanpay_back_end/internal/workflow/cash"
	"scanpay_back_end/internal/workflow/exitcheck"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer rdb.Close()

	products := catalog.Default()
	stats := cache.NewStats(rdb)
	ledger := receipt.NewLedger(rdb, cfg.ReceiptTTL)

	sessions := session.NewRegistry(session.Deps{
		Catalog: products,
		Orders:  cash.MockOrders{},
		Expectations: receipt.Expectations{
			Ledger:   ledger,
			Strict:   cfg.StrictReceipts,
			Fallback: exitcheck.MockExpectations{},
		},
		Scheduler:   workflow.RealScheduler{},
		Notifier:    cart.NewRedisNotifier(rdb),
		ErrorTTL:    cfg.ScanErrorTTL,
		SettleDelay: cfg.SettleDelay,
		VerifyDelay: cfg.VerifyDelay,
		Tolerance:   cfg.WeightTolerance,
		OnSettled: func(order models.CashOrder) {
			recordCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := stats.RecordSale(recordCtx, cashSummary(order)); err != nil {
				log.Printf("⚠️ dashboard stats: %v", err)
			}
		},
		OnVerdict: func(exp models.Expectation, v models.Verdict) {
			if v.Mismatch {
				log.Printf("🚨 weight mismatch on %s: expected %dg, observed %dg", exp.ReceiptID, v.ExpectedWeight, v.ObservedWeight)
			}
		},
	})

	mailer := utils.NewMailer(cfg.SMTP)
	if !mailer.Enabled() {
		log.Println("⚠️  SMTP not configured, receipts will not be e-mailed")
	}

	h := &handlers.Handler{
		Config:   cfg,
		Redis:    rdb,
		Catalog:  products,
		Checkout: checkout.NewService(),
		Sessions: sessions,
		Ledger:   ledger,
		History:  receipt.NewHistory(rdb, cfg.ReceiptTTL),
		Prefs:    prefs.NewStore(rdb),
		Stats:    stats,
		Notifier: utils.MailReceiptNotifier{Mailer: mailer, Shop: cfg.Shop},
	}

	r := gin.Default()
	routes.Setup(r, h)

	go sweepSessions(ctx, sessions, cfg.SessionTTL)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("🚀 ScanPay server listening on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ shutdown: %v", err)
	}
}

func sweepSessions(ctx context.Context, sessions *session.Registry, ttl time.Duration) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(ttl); n > 0 {
				log.Printf("🧹 %d idle session(s) closed", n)
			}
		}
	}
}

func cashSummary(order models.CashOrder) models.OrderSummary {
	items := 0
	for _, it := range order.Items {
		items += it.Qty
	}
	return models.OrderSummary{
		ReceiptID: "CASH-" + order.CustomerID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Items:     items,
		Total:     order.Total,
		Status:    order.Status,
	}
}
