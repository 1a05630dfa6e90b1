package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/EO-DataHub/eodhp-resource-services/api/handlers"
	"github.com/EO-DataHub/eodhp-resource-services/api/middleware"
	"github.com/EO-DataHub/eodhp-resource-services/api/services"
	"github.com/EO-DataHub/eodhp-resource-services/db"
	"github.com/EO-DataHub/eodhp-resource-services/internal/appconfig"
	"github.com/EO-DataHub/eodhp-resource-services/internal/events"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		commonSetUp()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := openStore(ctx)
		defer store.Close()

		publisher := initializePublisher(appCfg.Pulsar)
		defer publisher.Close()

		service := &services.Service{
			Store:     store,
			Publisher: publisher,
		}
		if appCfg.Store.SerializeWrites {
			service.Locks = db.NewCollectionLocks()
			log.Info().Msg("Writes are serialised per collection")
		}

		users := services.NewUserService(service, appCfg.Collections.Users)
		products := services.NewProductService(service, appCfg.Collections.Products)

		host = listenHost(host, cmd.Flags().Changed("host"), appCfg)

		srv := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           newRouter(appCfg, users, products),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			log.Info().Msg("Shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Graceful shutdown failed")
			}
		}()

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on (overrides the config host)")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}

// listenHost picks the address to bind: an explicit --host wins, then the
// config file's host, then the flag default.
func listenHost(flagHost string, flagSet bool, cfg *appconfig.Config) string {
	if !flagSet && cfg.Host != "" {
		return cfg.Host
	}
	return flagHost
}

// newRouter mounts the API under cfg.BasePath and wraps it in the shared middleware.
func newRouter(cfg *appconfig.Config, users *services.UserService, products *services.ProductService) http.Handler {
	eh := handlers.NewErrorHandler(cfg.Errors.IncludeStackTrace)

	r := mux.NewRouter()
	api := r
	if base := strings.TrimSuffix(cfg.BasePath, "/"); base != "" {
		api = r.PathPrefix(base).Subrouter()
	}

	handlers.Register(api, users, products, eh)

	notFound := eh.Wrap(handlers.RouteNotFound)
	methodNotAllowed := eh.Wrap(handlers.MethodNotAllowed)
	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = notFound
		router.MethodNotAllowedHandler = methodNotAllowed
	}

	// Outermost first: logger, access log, headers, then panic recovery
	var h http.Handler = eh.Recover(r)
	h = middleware.SecurityHeaders(h)
	h = middleware.AccessLog(h)
	h = middleware.WithLogger(h)

	h = gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillahandlers.ExposedHeaders([]string{"Location"}),
	)(h)

	return gorillahandlers.ProxyHeaders(h)
}

// initializePublisher connects to Pulsar when a URL is configured. Without one,
// change events are dropped.
func initializePublisher(cfg appconfig.PulsarConfig) events.Notifier {
	if cfg.URL == "" {
		log.Info().Msg("No Pulsar URL configured, change events are disabled")
		return events.NoopNotifier{}
	}

	publisher, err := events.NewEventPublisher(cfg.URL, cfg.TopicProducer)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize event publisher")
	}
	log.Info().Str("topic", cfg.TopicProducer).Msg("Publishing change events")
	return publisher
}
