package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/cart-report/pkg/models/api"
	"github.com/de-tools/cart-report/pkg/services/i18n"
	"github.com/de-tools/cart-report/pkg/services/identity"
	"github.com/de-tools/cart-report/pkg/services/report"
)

type Handler struct {
	report     report.Service
	identities identity.Lookup
	translator *i18n.Translator
}

func NewHandler(svc report.Service, identities identity.Lookup, translator *i18n.Translator) *Handler {
	return &Handler{
		report:     svc,
		identities: identities,
		translator: translator,
	}
}

func (h *Handler) SearchCarts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	result, err := h.report.Search(ctx, queryValues(r))
	if err != nil {
		logger.Error().Err(err).Msg("cart search failed")
		writeError(w, r, http.StatusInternalServerError, "failed to search carts")
		return
	}

	writeJSON(w, r, http.StatusOK, mapSearchResult(result, h.translator))
}

func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	totals, err := h.report.Totals(ctx, queryValues(r))
	if err != nil {
		logger.Error().Err(err).Msg("payable totals failed")
		writeError(w, r, http.StatusInternalServerError, "failed to sum payable amounts")
		return
	}

	writeJSON(w, r, http.StatusOK, mapTotals(totals, h.translator))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	rawID := chi.URLParam(r, "id")

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.identities.Resolve(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			writeError(w, r, http.StatusNotFound, "user not found")
			return
		}
		logger.Error().Err(err).Int64("user_id", userID).Msg("user lookup failed")
		writeError(w, r, http.StatusInternalServerError, "failed to resolve user")
		return
	}

	writeJSON(w, r, http.StatusOK, mapIdentity(user))
}

// queryValues flattens the query string, keeping the first value of each key.
func queryValues(r *http.Request) map[string]string {
	values := make(map[string]string)
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}
	return values
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, api.ErrorResponse{Error: msg})
}
