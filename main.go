package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ycvk/endless"
	"go.uber.org/zap"

	"googletrans-local/channel"
	"googletrans-local/cron"
	"googletrans-local/service"
	"googletrans-local/web"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("load config: ", err)
	}
	logger := setupLogger(cfg.Env)
	defer logger.Sync()

	translator := initServer(cfg, logger)
	defer translator.Close()

	autoCheck(cfg, logger)
	waitExit(logger)
}

func initServer(cfg config, logger *zap.Logger) *service.GoogleTranslateService {
	hosts := sweepHosts(cfg.ServiceURLs, logger)

	translator, err := service.NewGoogleTranslateService(service.Config{
		ServiceURLs: hosts,
		Proxies:     cfg.Proxies,
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.Timeout,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("build translate service", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	handler := web.NewTranslateHandler(translator, logger)
	handler.RegisterRoutes(r)

	go func() {
		if err := endless.ListenAndServe(cfg.Listen, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("web server failed", zap.Error(err))
		}
	}()
	logger.Info("listening", zap.String("addr", cfg.Listen))
	return translator
}

// autoCheck re-probes the configured hosts twice a day so dead mirrors
// show up in the log before callers notice.
func autoCheck(cfg config, logger *zap.Logger) {
	cron.StartTimer(12*time.Hour, func() {
		sweepHosts(cfg.ServiceURLs, logger)
	})
}

func waitExit(logger *zap.Logger) {
	osSig := make(chan os.Signal, 1)
	signal.Notify(osSig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-osSig
	logger.Info("shutting down", zap.String("signal", sig.String()))
	channel.Quit <- sig
}
