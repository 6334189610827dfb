package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nameless-community/nameless-suggestions/src/bot/bot"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/console"
	"github.com/nameless-community/nameless-suggestions/src/bot/components/webserver"
	"github.com/nameless-community/nameless-suggestions/src/bot/config"
	"github.com/nameless-community/nameless-suggestions/src/bot/data"
	"github.com/nameless-community/nameless-suggestions/src/bot/types"
	"gorm.io/gorm"
)

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(&types.Guild{}, &types.Suggestion{}, &types.Comment{})
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()
	if cfg.Token == "" {
		log.Fatal("DISCORD_TOKEN is not set")
	}

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)

	rdb := data.MustRedis(cfg.RedisURL)

	b, err := bot.New(cfg, db, rdb)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
	if err := b.Start(); err != nil {
		log.Fatalf("bot start: %v", err)
	}

	router := webserver.New(b.Guilds(), b.Mirrors(), b.Resolver())
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("Webhook server listening on %s", cfg.Port)

	consoleCtx, stopConsole := context.WithCancel(context.Background())
	go console.New(b.Session(), b.Guilds(), b.Resolver(), b.Versions(), b.Lang()).Run(consoleCtx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down")
	stopConsole()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	b.Stop()
}
