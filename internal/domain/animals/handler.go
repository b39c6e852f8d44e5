package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"sheep-management/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	// Guardar solo la ficha, sin actividad.
	r.Put("/animals/{tagID}", upsertAnimalHandler(svc, log))
}

// upsertAnimalRequest es la ficha del animal; el tag viene en el path.
type upsertAnimalRequest struct {
	DOBPurchase string  `json:"dob_purchase"` // YYYY-MM-DD opcional
	Sex         Sex     `json:"sex" enums:"Male,Female"`
	ApproxAge   int     `json:"approx_age"`
	Weight      float64 `json:"weight"`
	BodyScore   int     `json:"body_score"`
	FeedType    string  `json:"feed_type" enums:"Pasture,Grain,Both"`
	Notes       string  `json:"notes"`
	Pregnant    bool    `json:"pregnant"`
}

// AnimalResponse representa la ficha de un animal devuelta por la API.
type AnimalResponse struct {
	TagID       string    `json:"tag_id"`
	DOBPurchase string    `json:"dob_purchase,omitempty"`
	Sex         Sex       `json:"sex"`
	ApproxAge   int       `json:"approx_age"`
	Weight      float64   `json:"weight"`
	BodyScore   int       `json:"body_score"`
	FeedType    FeedType  `json:"feed_type,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Pregnant    bool      `json:"pregnant"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// upsertAnimalHandler godoc
// @Summary Guardar ficha de animal
// @Description Crea o reemplaza la ficha del animal identificado por su tag. Volver a guardar el mismo tag sobrescribe todos los campos.
// @Tags animals
// @Accept json
// @Produce json
// @Param tagID path string true "Tag del animal"
// @Param payload body upsertAnimalRequest true "Ficha del animal"
// @Success 200 {object} AnimalResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 500 {string} string "internal error"
// @Router /animals/{tagID} [put]
func upsertAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		dob, err := ParseDate(req.DOBPurchase)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sex, err := ParseSex(string(req.Sex))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		feed, err := ParseFeedType(req.FeedType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Save(r.Context(), Animal{
			TagID:           chi.URLParam(r, "tagID"),
			AcquiredOn:      dob,
			Sex:             sex,
			ApproxAgeMonths: req.ApproxAge,
			WeightKg:        req.Weight,
			BodyScore:       req.BodyScore,
			FeedType:        feed,
			Notes:           req.Notes,
			Pregnant:        req.Pregnant,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("upsert animal failed", map[string]any{"tag_id": chi.URLParam(r, "tagID"), "err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

func ToResponse(a Animal) AnimalResponse {
	return AnimalResponse{
		TagID:       a.TagID,
		DOBPurchase: FormatDate(a.AcquiredOn),
		Sex:         a.Sex,
		ApproxAge:   a.ApproxAgeMonths,
		Weight:      a.WeightKg,
		BodyScore:   a.BodyScore,
		FeedType:    a.FeedType,
		Notes:       a.Notes,
		Pregnant:    a.Pregnant,
		UpdatedAt:   a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
