package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"kitchend/internal/kitchen"
)

type placeRequest struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Temperature      string `json:"temperature"`
	FreshnessSeconds int    `json:"freshness_seconds"`
}

type placeResponse struct {
	Placed bool `json:"placed"`
}

type orderResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Temperature      string `json:"temperature"`
	FreshnessSeconds int    `json:"freshness_seconds"`
	Location         string `json:"location"`
}

type sweepResponse struct {
	Removed int `json:"removed"`
}

type submitResponse struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	ActionCount int       `json:"action_count"`
	Timestamp   time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	s.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (s *Server) handlePlace() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req placeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
			return
		}

		ok, err := s.sys.Place(kitchen.PlaceParams{
			ID:          req.ID,
			Name:        req.Name,
			Temperature: kitchen.Temperature(req.Temperature),
			Freshness:   time.Duration(req.FreshnessSeconds) * time.Second,
		})
		switch {
		case errors.Is(err, kitchen.ErrDuplicateOrder):
			s.writeError(w, http.StatusConflict, err)
		case err != nil:
			s.writeError(w, http.StatusBadRequest, err)
		case !ok:
			s.writeJSON(w, http.StatusOK, placeResponse{Placed: false})
		default:
			s.writeJSON(w, http.StatusCreated, placeResponse{Placed: true})
		}
	})
}

func (s *Server) handlePickup() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := r.URL.Query().Get("id")
		if id == "" {
			s.writeError(w, http.StatusBadRequest, errors.New("missing id"))
			return
		}

		o, err := s.sys.Pickup(id)
		switch {
		case errors.Is(err, kitchen.ErrNotFound):
			s.writeError(w, http.StatusNotFound, err)
		case errors.Is(err, kitchen.ErrExpired):
			s.writeError(w, http.StatusGone, err)
		case err != nil:
			s.writeError(w, http.StatusInternalServerError, err)
		default:
			s.writeJSON(w, http.StatusOK, orderResponse{
				ID:               o.ID,
				Name:             o.Name,
				Temperature:      string(o.Temperature),
				FreshnessSeconds: int(o.Freshness / time.Second),
				Location:         string(o.Location),
			})
		}
	})
}

func (s *Server) handleSweep() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.writeJSON(w, http.StatusOK, sweepResponse{Removed: s.sys.SweepExpired()})
	})
}

func (s *Server) handleStatus() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.writeJSON(w, http.StatusOK, s.sys.Status())
	})
}

func (s *Server) handleLedger() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.writeJSON(w, http.StatusOK, s.sys.Ledger())
	})
}

func (s *Server) handleStats() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.writeJSON(w, http.StatusOK, s.sys.Stats())
	})
}

func (s *Server) handleChallengeOrders() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		count := 20
		if raw := r.URL.Query().Get("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid count %q", raw))
				return
			}
			count = n
		}
		s.writeJSON(w, http.StatusOK, s.gen.Orders(count))
	})
}

func (s *Server) handleChallengeActions() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var actions []kitchen.Action
		if err := json.NewDecoder(r.Body).Decode(&actions); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode actions: %w", err))
			return
		}
		s.log.Info("actions submitted", zap.Int("count", len(actions)))
		s.writeJSON(w, http.StatusOK, submitResponse{
			Status:      "accepted",
			Message:     fmt.Sprintf("received %d actions", len(actions)),
			ActionCount: len(actions),
			Timestamp:   time.Now().UTC(),
		})
	})
}

func (s *Server) handleHealth() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
