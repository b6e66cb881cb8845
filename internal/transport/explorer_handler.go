package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ExplorerHandler serves the read-only query API over the mirrored tables.
type ExplorerHandler struct {
	repo    QueryRepository
	metrics HTTPMetrics
	logger  *zap.Logger
}

// NewExplorerHandler returns an ExplorerHandler instance.
func NewExplorerHandler(repo QueryRepository, metrics HTTPMetrics, logger *zap.Logger) (*ExplorerHandler, error) {
	if repo == nil {
		return nil, errors.New("repository is nil")
	}
	if metrics == nil {
		return nil, errors.New("metrics is nil")
	}
	return &ExplorerHandler{repo: repo, metrics: metrics, logger: logger.Named("explorer_handler")}, nil
}

// Routes builds the router with CORS, logging and metrics applied.
func (h *ExplorerHandler) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(h.observe)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/block-height", h.blockHeight).Methods(http.MethodGet)
	r.HandleFunc("/block-info", h.blockInfos).Methods(http.MethodGet)
	r.HandleFunc("/block/{height:[0-9]+}", h.block).Methods(http.MethodGet)
	r.HandleFunc("/offchain-data", h.offchainData).Methods(http.MethodGet)

	return cors.Default().Handler(r)
}

func (h *ExplorerHandler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		h.storeFailed(w, "ping", "", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ExplorerHandler) blockHeight(w http.ResponseWriter, r *http.Request) {
	height, ok, err := h.repo.LatestObservedHeight(r.Context())
	if err != nil {
		h.storeFailed(w, "latest_observed_height", model.TableBlockHeights, err)
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "no block height observed yet")
		return
	}
	respondJSON(w, http.StatusOK, heightResponse{Height: height})
}

func (h *ExplorerHandler) blockInfos(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	infos, err := h.repo.BlockInfos(r.Context(), limit)
	if err != nil {
		h.storeFailed(w, "block_infos", model.TableBlockInfo, err)
		return
	}
	resp := make([]blockInfoResponse, 0, len(infos))
	for _, info := range infos {
		resp = append(resp, newBlockInfoResponse(info))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ExplorerHandler) block(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.ParseUint(mux.Vars(r)["height"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "height must be an unsigned integer")
		return
	}

	ctx := r.Context()
	info, err := h.repo.BlockInfoByHeight(ctx, height)
	if err != nil {
		h.storeFailed(w, "block_info_by_height", model.TableBlockInfo, err)
		return
	}
	if info == nil {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "block "+strconv.FormatUint(height, 10)+" not found")
		return
	}

	txs, err := h.repo.TransactionsByHeight(ctx, height)
	if err != nil {
		h.storeFailed(w, "transactions_by_height", model.TableTransactions, err)
		return
	}
	inputs, err := h.repo.InputsByHeight(ctx, height)
	if err != nil {
		h.storeFailed(w, "inputs_by_height", model.TableTransactionInputs, err)
		return
	}
	outputs, err := h.repo.OutputsByHeight(ctx, height)
	if err != nil {
		h.storeFailed(w, "outputs_by_height", model.TableTransactionOutputs, err)
		return
	}

	respondJSON(w, http.StatusOK, newBlockDetailResponse(*info, txs, inputs, outputs))
}

func (h *ExplorerHandler) offchainData(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	samples, err := h.repo.OffchainSamples(r.Context(), limit)
	if err != nil {
		h.storeFailed(w, "offchain_samples", model.TableOffchainData, err)
		return
	}
	resp := make([]offchainResponse, 0, len(samples))
	for _, s := range samples {
		resp = append(resp, newOffchainResponse(s))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ExplorerHandler) storeFailed(w http.ResponseWriter, operation string, table model.Table, err error) {
	err = chain.StoreUnavailable(operation, string(table), err)
	h.logger.Error("query failed", zap.String("kind", chain.Kind(err)), zap.Error(err))
	respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "store unavailable")
}

// parseLimit reads ?limit=, writing a 400 and returning false when it is invalid.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "limit must be a positive integer")
		return 0, false
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *ExplorerHandler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		h.metrics.ObserveRequest(route, rec.status, started)
		h.logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(started)),
		)
	})
}
