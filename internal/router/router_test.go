package router_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"sheep-management/internal/router"
)

func TestHTTP_EndToEnd_SaveLoadShowExport(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Sin datos: export responde 204
	{
		st, _, _ := doRaw(t, ts.URL, "GET", "/records/export.csv", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 export on empty store, got %d", st)
		}
	}

	// 2) Load de un tag inexistente => defaults con found=false
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/T-100", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 load missing, got %d body=%s", st, string(body))
		}
		var resp struct {
			Found bool           `json:"found"`
			Form  map[string]any `json:"form"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Found {
			t.Fatalf("expected found=false, body=%s", string(body))
		}
		if resp.Form["tag_id"] != "T-100" || resp.Form["sex"] != "Male" || resp.Form["body_score"] != float64(1) {
			t.Fatalf("unexpected default form: %v", resp.Form)
		}
	}

	// 3) Save con parto
	ref := saveRecord(t, ts.URL, map[string]any{
		"tag_id":       "T-100",
		"dob_purchase": "2022-05-01",
		"sex":          "Female",
		"approx_age":   24,
		"weight":       40.0,
		"body_score":   3,
		"feed_type":    "Pasture",
		"activity":     "Lambing",
		"details": map[string]any{
			"lambing_number": 2,
			"babies": []map[string]any{
				{"sex": "Male", "dob": "2024-01-01"},
				{"sex": "Female", "dob": "2024-01-02"},
			},
		},
	})

	// 4) Reenviar el mismo ref no duplica la actividad
	{
		st, body := doReq(t, ts.URL, "POST", "/records", map[string]any{
			"tag_id":   "T-100",
			"sex":      "Female",
			"weight":   42.5,
			"activity": "Lambing",
			"details": map[string]any{
				"lambing_number": 2,
				"babies":         []map[string]any{{"sex": "Male"}, {"sex": "Female"}},
			},
			"body_score": 3,
			"ref":        ref,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 resubmit, got %d body=%s", st, string(body))
		}
	}

	// 5) Load trae la ficha actualizada
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/T-100", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 load, got %d", st)
		}
		var resp struct {
			Found bool           `json:"found"`
			Form  map[string]any `json:"form"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Found || resp.Form["weight"] != 42.5 {
			t.Fatalf("expected stored form with weight 42.5, got %s", string(body))
		}
	}

	// 6) Animal sin actividades
	{
		st, body := doReq(t, ts.URL, "PUT", "/animals/T-200", map[string]any{
			"sex":        "Male",
			"body_score": 2,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 upsert animal, got %d body=%s", st, string(body))
		}
	}

	// 7) Show: una fila por actividad + una fila con activity null
	{
		st, body := doReq(t, ts.URL, "GET", "/records", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var rows []struct {
			Animal   map[string]any  `json:"animal"`
			Activity *map[string]any `json:"activity"`
		}
		_ = json.Unmarshal(body, &rows)
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d body=%s", len(rows), string(body))
		}
		var withNull int
		for _, r := range rows {
			if r.Activity == nil {
				withNull++
			}
		}
		if withNull != 1 {
			t.Fatalf("expected exactly one row without activity, got %d", withNull)
		}
	}

	// 8) Export CSV
	{
		st, hdr, body := doRaw(t, ts.URL, "GET", "/records/export.csv", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 export, got %d", st)
		}
		if !strings.HasPrefix(hdr.Get("Content-Type"), "text/csv") {
			t.Fatalf("unexpected content type %q", hdr.Get("Content-Type"))
		}
		if !strings.Contains(hdr.Get("Content-Disposition"), "sheep_data.csv") {
			t.Fatalf("unexpected disposition %q", hdr.Get("Content-Disposition"))
		}
		recs, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
		if err != nil {
			t.Fatalf("read csv: %v", err)
		}
		if len(recs) != 3 || recs[0][0] != "tag_id" {
			t.Fatalf("unexpected csv: %v", recs)
		}
	}

	// 9) Export XLSX
	{
		st, hdr, _ := doRaw(t, ts.URL, "GET", "/records/export.xlsx", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 xlsx, got %d", st)
		}
		if hdr.Get("X-Record-Count") != "2" {
			t.Fatalf("expected 2 exported rows, got %q", hdr.Get("X-Record-Count"))
		}
	}

	// 10) Historial del animal
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/T-100/activities", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 activities, got %d", st)
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 activity, got %d body=%s", len(items), string(body))
		}
	}
}

func TestHTTP_SaveRejectsBlankTag(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/records", map[string]any{
		"tag_id":   "   ",
		"sex":      "Male",
		"activity": "Culling",
		"details":  map[string]any{"reason": "lame"},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank tag, got %d", st)
	}

	// nada quedó guardado
	st, body := doReq(t, ts.URL, "GET", "/records", nil)
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected empty list, got %d body=%s", st, string(body))
	}
}

func TestHTTP_ActivityForUnknownAnimal(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/animals/NOPE/activities", map[string]any{
		"activity": "Sale",
		"details":  map[string]any{"sale_price": 100},
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
}

func TestHTTP_LambingDetailsComeBackAsSent(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	const literal = `{"lambing_number":2,"babies":[{"sex":"Male","dob":"2024-01-01"},{"sex":"Female","dob":"2024-01-02"}]}`
	var sent map[string]any
	if err := json.Unmarshal([]byte(literal), &sent); err != nil {
		t.Fatalf("unmarshal literal: %v", err)
	}

	saveRecord(t, ts.URL, map[string]any{
		"tag_id":     "L-1",
		"sex":        "Female",
		"body_score": 3,
		"activity":   "Lambing",
		"details":    json.RawMessage(literal),
	})

	st, body := doReq(t, ts.URL, "GET", "/animals/L-1/activities", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list activities, got %d body=%s", st, string(body))
	}
	var items []struct {
		Details map[string]any `json:"details"`
	}
	_ = json.Unmarshal(body, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 activity, body=%s", string(body))
	}
	if !reflect.DeepEqual(items[0].Details, sent) {
		t.Fatalf("details changed on save: sent=%v got=%v", sent, items[0].Details)
	}
}

func TestHTTP_FlatVaccinationSchedule(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	saveRecord(t, ts.URL, map[string]any{
		"tag_id":     "V-1",
		"sex":        "Male",
		"body_score": 2,
		"activity":   "Vaccination",
		"details": map[string]any{
			"A": map[string]any{"dose1": "2024-01-01"},
			"B": map[string]any{},
		},
	})

	st, body := doReq(t, ts.URL, "GET", "/animals/V-1/activities", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list activities, got %d body=%s", st, string(body))
	}
	var items []struct {
		Details struct {
			Schedules map[string]map[string]string `json:"schedules"`
		} `json:"details"`
	}
	_ = json.Unmarshal(body, &items)
	if len(items) != 1 || items[0].Details.Schedules["A"]["dose1"] != "2024-01-01" {
		t.Fatalf("unexpected vaccination details: %s", string(body))
	}
	if _, ok := items[0].Details.Schedules["B"]; !ok {
		t.Fatalf("vaccine B missing: %s", string(body))
	}
}

func TestHTTP_RefReusedForAnotherAnimal(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ref := saveRecord(t, ts.URL, map[string]any{
		"tag_id":     "A1",
		"sex":        "Male",
		"body_score": 2,
		"activity":   "Culling",
		"details":    map[string]any{"reason": "lame"},
	})

	st, body := doReq(t, ts.URL, "POST", "/records", map[string]any{
		"tag_id":     "B2",
		"sex":        "Female",
		"body_score": 2,
		"activity":   "Culling",
		"details":    map[string]any{"reason": "old"},
		"ref":        ref,
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 for reused ref, got %d body=%s", st, string(body))
	}

	// B2 no quedó guardado
	st, body = doReq(t, ts.URL, "GET", "/animals/B2/activities", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for B2, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/animals/A1/activities", map[string]any{
		"activity": "Sale",
		"details":  map[string]any{"sale_price": 100},
		"ref":      ref,
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 for reused ref on another kind, got %d", st)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %s", st, string(body))
	}
}

func saveRecord(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/records", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 save record, got %d body=%s", st, string(body))
	}

	var resp struct {
		Activity struct {
			ID  int64  `json:"id"`
			Ref string `json:"ref"`
		} `json:"activity"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Activity.Ref == "" || resp.Activity.ID == 0 {
		t.Fatalf("save record: missing activity body=%s", string(body))
	}
	return resp.Activity.Ref
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()
	st, _, b := doRaw(t, baseURL, method, path, body)
	return st, b
}

func doRaw(t *testing.T, baseURL, method, path string, body any) (int, http.Header, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, res.Header, respBody
}
