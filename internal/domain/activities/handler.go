package activities

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"sheep-management/internal/domain/animals"
	"sheep-management/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service, log logger.Logger) {
	r.Route("/animals/{tagID}/activities", func(ar chi.Router) {
		ar.Post("/", createActivityHandler(svc, animalsSvc, log))
		ar.Get("/", listActivitiesHandler(svc, animalsSvc, log))
	})
}

// createActivityRequest es el cuerpo para registrar una actividad sobre un animal ya guardado.
type createActivityRequest struct {
	Activity Kind            `json:"activity" enums:"Vaccination,Lambing,Culling,Sale"`
	Details  json.RawMessage `json:"details" swaggertype:"object"`
	Ref      string          `json:"ref,omitempty"` // uuid opcional para reintentos
}

// ActivityResponse representa una actividad devuelta por la API.
type ActivityResponse struct {
	ID         int64     `json:"id"`
	TagID      string    `json:"tag_id"`
	Activity   Kind      `json:"activity"`
	Details    any       `json:"details"`
	Ref        string    `json:"ref"`
	RecordedAt time.Time `json:"recorded_at"`
}

// createActivityHandler godoc
// @Summary Registrar actividad
// @Description Agrega una actividad (Vaccination, Lambing, Culling, Sale) al animal. Nunca modifica actividades previas. Reenviar el mismo `ref` devuelve la actividad ya registrada.
// @Tags activities
// @Accept json
// @Produce json
// @Param tagID path string true "Tag del animal"
// @Param payload body createActivityRequest true "Tipo y detalles de la actividad"
// @Success 201 {object} ActivityResponse
// @Failure 400 {string} string "invalid json / detalles inválidos"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "ref already used by another activity"
// @Failure 500 {string} string "internal error"
// @Router /animals/{tagID}/activities [post]
func createActivityHandler(svc *Service, animalsSvc *animals.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID := chi.URLParam(r, "tagID")
		if _, err := animalsSvc.Get(r.Context(), tagID); err != nil {
			writeLookupError(w, log, tagID, err)
			return
		}

		var req createActivityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		kind, payload, err := DecodeInput(string(req.Activity), req.Details)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Record(r.Context(), CreateInput{
			TagID:   tagID,
			Kind:    kind,
			Details: payload,
			Ref:     req.Ref,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrRefConflict):
				http.Error(w, err.Error(), http.StatusConflict)
				return
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("insert activity failed", map[string]any{"tag_id": tagID, "err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(a))
	}
}

// listActivitiesHandler godoc
// @Summary Listar actividades de un animal
// @Description Devuelve el historial de actividades del animal.
// @Tags activities
// @Produce json
// @Param tagID path string true "Tag del animal"
// @Success 200 {array} ActivityResponse
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "internal error"
// @Router /animals/{tagID}/activities [get]
func listActivitiesHandler(svc *Service, animalsSvc *animals.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID := chi.URLParam(r, "tagID")
		if _, err := animalsSvc.Get(r.Context(), tagID); err != nil {
			writeLookupError(w, log, tagID, err)
			return
		}

		items, err := svc.ListByAnimal(r.Context(), tagID)
		if err != nil {
			log.Error("list activities failed", map[string]any{"tag_id": tagID, "err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]ActivityResponse, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeLookupError(w http.ResponseWriter, log logger.Logger, tagID string, err error) {
	switch {
	case errors.Is(err, animals.ErrNotFound), errors.Is(err, animals.ErrInvalidInput):
		http.Error(w, "animal not found", http.StatusNotFound)
	default:
		log.Error("get animal failed", map[string]any{"tag_id": tagID, "err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func ToResponse(a Activity) ActivityResponse {
	return ActivityResponse{
		ID:         a.ID,
		TagID:      a.TagID,
		Activity:   a.Kind,
		Details:    a.Details,
		Ref:        a.Ref,
		RecordedAt: a.RecordedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
