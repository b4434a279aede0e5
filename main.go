package main

import (
	"context"
	"net/http"

	gfs "cloud.google.com/go/firestore"
	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"musiclegends/cards"
	"musiclegends/config"
	fs "musiclegends/firestore"
	"musiclegends/handlers"
	"musiclegends/lastfm"
	"musiclegends/logger"
	"musiclegends/metrics"
	"musiclegends/packs"
	"musiclegends/scrapers"
	"musiclegends/spotify"
	"musiclegends/youtube"
)

func main() {
	fx.New(
		fx.Provide(
			config.Options,
			logger.Options,
			fs.Options,
			fs.NewPackStore,
			spotify.Options,
			youtube.Options,
			lastfm.Options,
			ProvideLookup,
			ProvideGenerator,
			ProvidePackHandler,
			NewRouter,
		),
		fx.WithLogger(logger.FxLogger),
		fx.Invoke(StartServer),
	).Run()
}

// ProvideLookup routes identifiers to whichever backends are configured.
func ProvideLookup(yt *youtube.Client, fm *lastfm.Client) metrics.Lookup {
	r := &metrics.Router{}
	if yt != nil {
		r.YouTube = yt
	}
	if fm != nil {
		r.LastFM = fm
	}
	return r
}

func ProvideGenerator(lookup metrics.Lookup, log *zap.Logger) *packs.Generator {
	factory := cards.NewFactory(cards.DefaultTables())
	return packs.NewGenerator(lookup, factory, packs.DefaultConfig(), log.Named("packs"))
}

func ProvidePackHandler(
	cfg config.Config,
	gen *packs.Generator,
	store *fs.PackStore,
	db *gfs.Client,
	yt *youtube.Client,
	log *zap.Logger,
) *handlers.PackHandler {
	var search handlers.VideoSearcher
	if yt != nil {
		search = yt
	}
	chart := func() ([]scrapers.Song, error) {
		return scrapers.ScrapeChart(cfg.ChartURL, log.Named("chart"))
	}
	cleanup := func(ctx context.Context) (int, error) {
		return fs.RunCleanup(ctx, db, cfg.PackTTL, log.Named("cleanup"))
	}
	return handlers.NewPackHandler(gen, store, search, chart, cleanup, log.Named("handlers"))
}

func NewRouter(h *handlers.PackHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/packs", h.HandleGenerate).Methods("POST")
	r.HandleFunc("/packs/trending", h.HandleTrending).Methods("POST")
	r.HandleFunc("/packs", h.HandleRecent).Methods("GET")
	r.HandleFunc("/cleanup", h.HandleCleanup).Methods("POST")

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API is running"))
	})
	return r
}

func StartServer(lifecycle fx.Lifecycle, router *mux.Router, cfg config.Config, log *zap.Logger) {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("Starting server", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("Server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
