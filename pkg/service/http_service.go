package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/open-feature/go-sdk-lite/pkg/model"
	"github.com/open-feature/go-sdk-lite/pkg/openfeature"
	"github.com/open-feature/go-sdk-lite/pkg/provider"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	GreetingFlag    = "greeting"
	DefaultGreeting = "Hello World!"

	shutdownTimeout = 5 * time.Second
)

type HTTPServiceConfiguration struct {
	Port          int32
	ClientName    string
	ClientVersion string
}

type HTTPService struct {
	HTTPServiceConfiguration *HTTPServiceConfiguration
}

type server struct {
	api    *openfeature.API
	client *openfeature.Client
}

func (h *HTTPService) Serve(ctx context.Context, api *openfeature.API) error {
	if h.HTTPServiceConfiguration == nil {
		return errors.New("http service configuration has not been initialised")
	}
	cfg := h.HTTPServiceConfiguration
	client := api.Client(cfg.ClientName, cfg.ClientVersion)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(api, client),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Infof("http service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shut down http service: %w", err)
	}
	return nil
}

func newRouter(api *openfeature.API, client *openfeature.Client) http.Handler {
	s := server{api: api, client: client}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.greeting)
	r.Post("/provider/storage", s.setStorage)
	r.Get("/flags/{flagType}/{flagKey}", s.evaluate)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s server) greeting(w http.ResponseWriter, r *http.Request) {
	greeting := s.client.StringValue(r.Context(), GreetingFlag, DefaultGreeting, model.EvaluationContext{})
	writeJSON(w, http.StatusOK, map[string]string{"message": greeting})
}

func (s server) setStorage(w http.ResponseWriter, r *http.Request) {
	var storage map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&storage); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid storage: " + err.Error()})
		return
	}
	setter, ok := s.api.Provider().(provider.StorageSetter)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": fmt.Sprintf("provider %s does not support storage updates", s.api.Provider().Metadata().Name),
		})
		return
	}
	if err := setter.SetStorage(storage); err != nil {
		log.Error(err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Provider storage updated"})
}

// evaluate serves the details of one evaluation. The targetingKey query
// parameter sets the targeting key and every other parameter except default
// becomes a string attribute.
func (s server) evaluate(w http.ResponseWriter, r *http.Request) {
	flagKey := chi.URLParam(r, "flagKey")
	flagType, err := model.ParseFlagType(chi.URLParam(r, "flagType"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
		return
	}

	query := r.URL.Query()
	attributes := map[string]interface{}{}
	for k := range query {
		if k != "default" && k != model.TargetingKeyAttribute {
			attributes[k] = query.Get(k)
		}
	}
	evalCtx := model.NewEvaluationContext(query.Get(model.TargetingKeyAttribute), attributes)

	details, err := EvaluateRaw(r.Context(), s.client, flagType, flagKey, query.Get("default"), evalCtx)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, statusFor(details), details)
}

// EvaluateRaw parses a textual default for flagType and evaluates the flag.
// An empty default is the zero value of the type.
func EvaluateRaw(
	ctx context.Context,
	client *openfeature.Client,
	flagType model.FlagType,
	flagKey string,
	rawDefault string,
	evalCtx model.EvaluationContext,
) (model.FlagEvaluationDetails, error) {
	switch flagType {
	case model.Boolean:
		v := false
		if rawDefault != "" {
			parsed, err := strconv.ParseBool(rawDefault)
			if err != nil {
				return model.FlagEvaluationDetails{}, fmt.Errorf("invalid boolean default: %w", err)
			}
			v = parsed
		}
		return client.BooleanValueDetails(ctx, flagKey, v, evalCtx), nil
	case model.String:
		return client.StringValueDetails(ctx, flagKey, rawDefault, evalCtx), nil
	case model.Number:
		v := 0.0
		if rawDefault != "" {
			parsed, err := strconv.ParseFloat(rawDefault, 64)
			if err != nil {
				return model.FlagEvaluationDetails{}, fmt.Errorf("invalid number default: %w", err)
			}
			v = parsed
		}
		return client.NumberValueDetails(ctx, flagKey, v, evalCtx), nil
	case model.Object:
		v := map[string]interface{}{}
		if rawDefault != "" {
			if err := json.Unmarshal([]byte(rawDefault), &v); err != nil {
				return model.FlagEvaluationDetails{}, fmt.Errorf("invalid object default: %w", err)
			}
		}
		return client.ObjectValueDetails(ctx, flagKey, v, evalCtx), nil
	}
	return model.FlagEvaluationDetails{}, fmt.Errorf("unknown flag type %s", flagType)
}

// some basic mapping of error codes to HTTP
func statusFor(details model.FlagEvaluationDetails) int {
	switch details.ErrorCode {
	case "":
		return http.StatusOK
	case model.FlagNotFoundErrorCode:
		return http.StatusNotFound
	case model.TypeMismatchErrorCode, model.InvalidContextErrorCode, model.TargetingKeyMissingErrorCode:
		return http.StatusBadRequest
	case model.ProviderNotReadyErrorCode:
		return http.StatusServiceUnavailable
	default:
		log.Errorf("flag %s: %s", details.Key, details.ErrorMessage)
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("unable to write response: %v", err)
	}
}
