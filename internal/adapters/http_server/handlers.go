package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yoyo_hotels/internal/app"
	"yoyo_hotels/internal/domain"
)

type Handlers struct {
	Search *app.SearchService
	Detail *app.DetailService
	Pages  *Pages
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.home)
	s.mux.Get("/api/hotels/", h.searchHotels)
	s.mux.Get("/api/hotels/{address_id:[0-9]+}/", h.hotelJSON)
	s.mux.Get("/hotel/{address_id:[0-9]+}/", h.hotelPage)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: msg}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

// writeServiceError maps service errors onto status codes: bad input is the
// client's, everything else is logged and reported as a 5xx.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *domain.ParamError
	switch {
	case errors.As(err, &pe) && pe.Param == "lat/lon":
		writeError(w, http.StatusBadRequest, msgBadLatLon)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStorage):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("storage failure")
		writeError(w, http.StatusInternalServerError, domain.ErrStorage.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); status == http.StatusOK && inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	h.Pages.render(w, "home.html", http.StatusOK, nil)
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out, err := h.Search.Search(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *Handlers) detail(w http.ResponseWriter, r *http.Request) (domain.HotelDetail, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "address_id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return domain.HotelDetail{}, false
	}
	qs := r.URL.Query()
	out, err := h.Detail.Get(r.Context(), id, qs.Get("date"), detailAdults(qs))
	if err != nil {
		writeServiceError(w, r, err)
		return domain.HotelDetail{}, false
	}
	return out, true
}

func (h *Handlers) hotelJSON(w http.ResponseWriter, r *http.Request) {
	out, ok := h.detail(w, r)
	if !ok {
		return
	}
	status := http.StatusOK
	if out.Hotel == nil {
		status = http.StatusNotFound
	}
	writeJSON(w, r, status, out)
}

// hotelPage renders unknown hotels as a normal page in its error state.
func (h *Handlers) hotelPage(w http.ResponseWriter, r *http.Request) {
	out, ok := h.detail(w, r)
	if !ok {
		return
	}
	h.Pages.render(w, "hotel_detail.html", http.StatusOK, out)
}
