package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Await-0x/RealmsWorld/pkg/cache"
	"github.com/Await-0x/RealmsWorld/pkg/common"
	"github.com/Await-0x/RealmsWorld/pkg/messaging"
	"github.com/Await-0x/RealmsWorld/pkg/query"
	"github.com/Await-0x/RealmsWorld/pkg/server"
	"github.com/Await-0x/RealmsWorld/pkg/storage"
	"github.com/Await-0x/RealmsWorld/pkg/tracking"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	chain         = envOr("CHAIN", "ethereum")
	dataDir       = envOr("DATA_DIR", "data")
	listenAddress = envOr("LISTEN_ADDRESS", ":8080")
	pagePath      = envOr("PAGE_PATH", "/collections/")
	optionsFile   = os.Getenv("OPTIONS_FILE")
	redisUrl      = os.Getenv("REDIS_URL")
	redisPassword = os.Getenv("REDIS_PASSWORD")
	rabbitUrl     = os.Getenv("RABBIT_HOST")
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

type app struct {
	storage *storage.DiskStorage
	store   *storage.Store
	srv     *server.WebServer
	conn    *amqp.Connection
}

func loadOptions() query.Options {
	if optionsFile == "" {
		return query.DefaultOptions()
	}
	opts, err := query.LoadOptions(optionsFile)
	if err != nil {
		log.Printf("Could not load options from %s, using defaults: %v", optionsFile, err)
		return query.DefaultOptions()
	}
	log.Printf("Loaded sort options from %s", optionsFile)
	return opts
}

func (a *app) connectAmqp(url string) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Printf("Failed to connect to RabbitMQ: %v", err)
		return
	}
	a.conn = conn

	err = messaging.ListenToCollections(conn, chain, func(body []byte) error {
		return a.srv.HandleCollectionChange(context.Background(), body)
	})
	if err != nil {
		log.Printf("Failed to listen for collection changes: %v", err)
	} else {
		log.Printf("Listening for collection changes")
	}

	publisher, err := messaging.NewCollectionPublisher(conn, chain)
	if err != nil {
		log.Printf("Failed to create collection publisher: %v", err)
	} else {
		a.srv.Publisher = publisher
	}

	trk, err := tracking.NewRabbitTracking(conn, chain)
	if err != nil {
		log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
	} else {
		a.srv.Tracking = trk
	}
}

func (a *app) saveIfDirty() error {
	if !a.store.IsDirty() {
		return nil
	}
	return a.storage.SaveCollections(a.store)
}

func (a *app) startSaveTicker() {
	ticker := time.NewTicker(time.Minute)
	go func() {
		for range ticker.C {
			if err := a.saveIfDirty(); err != nil {
				log.Printf("Failed to save collections: %v", err)
			}
		}
	}()
}

func main() {
	diskStorage := storage.NewDiskStorage(chain, dataDir)
	store := storage.NewStore()
	if err := diskStorage.LoadCollections(store); err != nil {
		log.Printf("Could not load collections from storage: %v", err)
	}

	srv := &server.WebServer{
		Store:     store,
		Options:   loadOptions(),
		PagePath:  pagePath,
		CacheTime: 5 * time.Minute,
	}
	if redisUrl != "" {
		srv.Cache = cache.NewCache(redisUrl, redisPassword, 0)
		defer srv.Cache.Close()
		log.Printf("Page cache enabled, url: %s", redisUrl)
	}

	a := &app{storage: diskStorage, store: store, srv: srv}
	if rabbitUrl != "" {
		a.connectAmqp(rabbitUrl)
	}
	a.startSaveTicker()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/api/", http.StripPrefix("/api", srv.ClientHandler()))
	mux.Handle("/admin/", http.StripPrefix("/admin", srv.AdminHandler()))

	timeouts := common.LoadTimeoutConfig(common.DefaultTimeouts())
	httpServer := common.NewServer(listenAddress, mux, timeouts)

	common.RunServerWithShutdown(httpServer, "collections api", timeouts,
		func(ctx context.Context) error {
			log.Println("Saving collections...")
			return a.saveIfDirty()
		},
		func(ctx context.Context) error {
			if srv.Tracking != nil {
				_ = srv.Tracking.Close()
			}
			if a.conn != nil {
				return a.conn.Close()
			}
			return nil
		},
	)
}
