package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/parcelbridge/logistic/internal/telemetry"
	"github.com/parcelbridge/logistic/pkg/carrier"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server is the HTTP server for the logistics service.
type Server struct {
	port     int
	registry *carrier.Registry
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, registry *carrier.Registry, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		port:     cfg.Port,
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/carriers", s.handleCarriers)
	mux.HandleFunc("/api/rates", s.handleRates)
	mux.HandleFunc("/api/tracking", s.handleTracking)
	mux.HandleFunc("/api/labels", s.handleLabels)

	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled
// or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed, use GET")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"carriers": s.registry.Names()})
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req rateRequest
	c, ok := s.decodeCarrierRequest(w, r, &req, req.validate)
	if !ok {
		return
	}

	origin, destination := req.Origin.toModel(), req.Destination.toModel()
	resp, err := c.FindRates(r.Context(), origin, destination, packagesToModel(req.Packages), req.Options.toModel())
	s.record("rates", c.Name(), err, start)
	if err != nil {
		s.logger.Ctx(r.Context()).Error("Rate lookup failed",
			zap.String("carrier", c.Name()), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rateResponseFromModel(resp))
}

func (s *Server) handleTracking(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req trackingRequest
	c, ok := s.decodeCarrierRequest(w, r, &req, req.validate)
	if !ok {
		return
	}

	resp, err := c.FindTrackingInfo(r.Context(), req.TrackingNumber, req.Options.toModel())
	s.record("tracking", c.Name(), err, start)
	if err != nil {
		s.logger.Ctx(r.Context()).Error("Tracking lookup failed",
			zap.String("carrier", c.Name()),
			zap.String("tracking_number", req.TrackingNumber),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, trackingResponseFromModel(resp))
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req labelRequest
	c, ok := s.decodeCarrierRequest(w, r, &req, req.validate)
	if !ok {
		return
	}

	opts, err := req.Options.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shipment, err := c.BuyShippingLabels(r.Context(),
		req.Shipper.toModel(), req.Origin.toModel(), req.Destination.toModel(),
		packagesToModel(req.Packages), opts)
	s.record("labels", c.Name(), err, start)
	if err != nil {
		s.logger.Ctx(r.Context()).Error("Label purchase failed",
			zap.String("carrier", c.Name()), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.metrics.RecordLabelPurchase(c.Name(), string(shipment.State))
	writeJSON(w, http.StatusOK, shipmentFromModel(shipment))
}

// decodeCarrierRequest handles the shared front half of every carrier
// endpoint: method check, JSON decode, request validation, and carrier
// lookup. A false return means the response has already been written.
func (s *Server) decodeCarrierRequest(w http.ResponseWriter, r *http.Request, req carrierRequest, validate func() error) (carrier.Carrier, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return nil, false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return nil, false
	}
	if err := validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	c, err := s.registry.Get(req.carrierName())
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return c, true
}

func (s *Server) record(operation, carrierName string, err error, start time.Time) {
	status := "ok"
	if err != nil {
		status = "error"
		var cerr *carrier.CarrierError
		if errors.As(err, &cerr) {
			s.metrics.RecordError(carrierName, cerr.Code)
		} else {
			s.metrics.RecordError(carrierName, "internal")
		}
	}
	s.metrics.RecordRequest(operation, carrierName, status, time.Since(start).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
