package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/records", func(rr chi.Router) {
		// Save Record
		rr.Post("/", saveRecordHandler(svc, log))
		// Show Records
		rr.Get("/", listRecordsHandler(svc, log))

		rr.Get("/export.csv", exportCSVHandler(svc, log))
		rr.Get("/export.xlsx", exportXLSXHandler(svc, log))
	})

	// Load: precarga el formulario para editar.
	r.Get("/animals/{tagID}", loadFormHandler(svc, log))
}

type saveRecordResponse struct {
	Animal   animals.AnimalResponse      `json:"animal"`
	Activity activities.ActivityResponse `json:"activity"`
}

type partialSaveResponse struct {
	Error string `json:"error"`
	TagID string `json:"tag_id"`
	Ref   string `json:"ref"`
}

type loadFormResponse struct {
	Found bool `json:"found"`
	Form  Form `json:"form"`
}

// recordResponse es una fila del join; activity es null si el animal no tiene actividades.
type recordResponse struct {
	Animal   animals.AnimalResponse       `json:"animal"`
	Activity *activities.ActivityResponse `json:"activity"`
}

// saveRecordHandler godoc
// @Summary Guardar registro
// @Description Valida el formulario (tag obligatorio) y guarda la ficha del animal junto con la actividad seleccionada. Si el backend no es transaccional y la actividad falla, responde 502 con el `ref` para reenviar el mismo formulario sin duplicar.
// @Tags records
// @Accept json
// @Produce json
// @Param payload body Form true "Formulario completo"
// @Success 201 {object} saveRecordResponse
// @Failure 400 {string} string "Tag ID is required / reglas de validación"
// @Failure 409 {string} string "ref already used by another activity"
// @Failure 502 {object} partialSaveResponse
// @Failure 500 {string} string "internal error"
// @Router /records [post]
func saveRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f Form
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Save(r.Context(), f)
		if err != nil {
			var partial *PartialSaveError
			switch {
			case errors.Is(err, activities.ErrRefConflict):
				http.Error(w, err.Error(), http.StatusConflict)
			case IsInvalidInput(err):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.As(err, &partial):
				log.Warn("record saved partially", map[string]any{"tag_id": partial.TagID, "ref": partial.Ref, "err": partial.Err})
				writeJSON(w, http.StatusBadGateway, partialSaveResponse{
					Error: "activity not recorded, resubmit with the same ref",
					TagID: partial.TagID,
					Ref:   partial.Ref,
				})
			default:
				log.Error("save record failed", map[string]any{"tag_id": f.TagID, "err": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, saveRecordResponse{
			Animal:   animals.ToResponse(res.Animal),
			Activity: activities.ToResponse(res.Activity),
		})
	}
}

// loadFormHandler godoc
// @Summary Cargar formulario de un animal
// @Description Devuelve el formulario precargado con la ficha guardada. Si el tag no existe responde 200 con found=false y valores por defecto.
// @Tags records
// @Produce json
// @Param tagID path string true "Tag del animal"
// @Success 200 {object} loadFormResponse
// @Failure 400 {string} string "tag_id is required"
// @Failure 500 {string} string "internal error"
// @Router /animals/{tagID} [get]
func loadFormHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID := chi.URLParam(r, "tagID")
		f, found, err := svc.Load(r.Context(), tagID)
		if err != nil {
			if IsInvalidInput(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Error("load animal failed", map[string]any{"tag_id": tagID, "err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, loadFormResponse{Found: found, Form: f})
	}
}

// listRecordsHandler godoc
// @Summary Ver todos los registros
// @Description Devuelve el left join de animales con sus actividades: una fila por actividad y una fila con activity null para animales sin actividades. El orden no está garantizado.
// @Tags records
// @Produce json
// @Success 200 {array} recordResponse
// @Failure 500 {string} string "internal error"
// @Router /records [get]
func listRecordsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			log.Error("list records failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(rows))
		for _, row := range rows {
			rec := recordResponse{Animal: animals.ToResponse(row.Animal)}
			if row.Activity != nil {
				a := activities.ToResponse(*row.Activity)
				rec.Activity = &a
			}
			out = append(out, rec)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// exportCSVHandler godoc
// @Summary Exportar registros a CSV
// @Description Descarga `sheep_data.csv` con encabezado igual a los nombres de columna. Responde 204 si no hay datos para exportar.
// @Tags records
// @Produce text/csv
// @Success 200 {string} string "CSV"
// @Success 204 {string} string "no data to export"
// @Failure 500 {string} string "internal error"
// @Router /records/export.csv [get]
func exportCSVHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, n, err := svc.ExportCSV(r.Context())
		if err != nil {
			log.Error("export csv failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeAttachment(w, b, n, ExportFileName+".csv", CSVMimeType)
	}
}

// exportXLSXHandler godoc
// @Summary Exportar registros a Excel
// @Description Descarga `sheep_data.xlsx` con las mismas columnas que el CSV. Responde 204 si no hay datos para exportar.
// @Tags records
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "XLSX"
// @Success 204 {string} string "no data to export"
// @Failure 500 {string} string "internal error"
// @Router /records/export.xlsx [get]
func exportXLSXHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, n, err := svc.ExportXLSX(r.Context())
		if err != nil {
			log.Error("export xlsx failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeAttachment(w, b, n, ExportFileName+".xlsx", XLSXMimeType)
	}
}

func writeAttachment(w http.ResponseWriter, b []byte, rows int, name, mime string) {
	if rows == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.Header().Set("X-Record-Count", strconv.Itoa(rows))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
