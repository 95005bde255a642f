// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocrm-go/internal/bus"
	"github.com/olegiv/ocrm-go/internal/kv"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/store"
	"github.com/olegiv/ocrm-go/internal/view"
)

// newContactsRouter mounts the generic CRUD handlers over a fresh
// in-memory collection.
func newContactsRouter(t *testing.T) (*chi.Mux, *view.Binding[model.Contact]) {
	t.Helper()

	coll := store.NewCollection[model.Contact](kv.NewMemory(), model.CollectionContacts)
	binding := view.NewBinding(coll, bus.NewLocal(),
		func(c model.Contact) string { return c.ID },
		func(c *model.Contact, id string) { c.ID = id },
	).WithPrepare(func(c *model.Contact) error { return c.Validate() })

	h := NewResource(binding)
	r := chi.NewRouter()
	r.Get("/contacts", h.List)
	r.Post("/contacts", h.Create)
	r.Get("/contacts/{id}", h.Get)
	r.Patch("/contacts/{id}", h.Update)
	r.Delete("/contacts/{id}", h.Delete)
	return r, binding
}

func doJSON(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, parsed
}

func TestResource_CreateAndGet(t *testing.T) {
	r, _ := newContactsRouter(t)

	rec, body := doJSON(t, r, http.MethodPost, "/contacts", `{"name":"Jon Snow","email":"jon@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Create status = %d: %s", rec.Code, rec.Body.String())
	}

	item := body["item"].(map[string]any)
	id := item["_id"].(string)
	if id == "" {
		t.Fatal("created record has no id")
	}

	rec, body = doJSON(t, r, http.MethodGet, "/contacts/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Get status = %d", rec.Code)
	}
	got := body["item"].(map[string]any)
	if got["name"] != "Jon Snow" {
		t.Errorf("name = %v", got["name"])
	}
}

func TestResource_CreateValidates(t *testing.T) {
	r, _ := newContactsRouter(t)

	rec, body := doJSON(t, r, http.MethodPost, "/contacts", `{"email":"noname@example.com"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestResource_CreateRejectsBadJSON(t *testing.T) {
	r, _ := newContactsRouter(t)

	rec, _ := doJSON(t, r, http.MethodPost, "/contacts", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestResource_GetMissing(t *testing.T) {
	r, _ := newContactsRouter(t)

	rec, _ := doJSON(t, r, http.MethodGet, "/contacts/nonexistent", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestResource_UpdatePatchesFields(t *testing.T) {
	r, _ := newContactsRouter(t)

	_, body := doJSON(t, r, http.MethodPost, "/contacts",
		`{"name":"Jon Snow","email":"jon@example.com","mobile":"555-0001"}`)
	id := body["item"].(map[string]any)["_id"].(string)

	rec, body := doJSON(t, r, http.MethodPatch, "/contacts/"+id, `{"email":"king@north.example"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Update status = %d: %s", rec.Code, rec.Body.String())
	}

	item := body["item"].(map[string]any)
	if item["email"] != "king@north.example" {
		t.Errorf("email = %v", item["email"])
	}
	if item["mobile"] != "555-0001" {
		t.Errorf("unpatched field lost: mobile = %v", item["mobile"])
	}
}

func TestResource_Delete(t *testing.T) {
	r, binding := newContactsRouter(t)

	_, body := doJSON(t, r, http.MethodPost, "/contacts", `{"name":"Transient"}`)
	id := body["item"].(map[string]any)["_id"].(string)

	rec, _ := doJSON(t, r, http.MethodDelete, "/contacts/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Delete status = %d", rec.Code)
	}

	if len(binding.Load(httptest.NewRequest(http.MethodGet, "/", nil).Context())) != 0 {
		t.Error("record still present after delete")
	}

	rec, _ = doJSON(t, r, http.MethodDelete, "/contacts/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second Delete status = %d, want 404", rec.Code)
	}
}

func TestResource_ListFilterSortPage(t *testing.T) {
	r, _ := newContactsRouter(t)

	for _, name := range []string{"Cersei Lannister", "Jon Snow", "Jaime Lannister"} {
		rec, _ := doJSON(t, r, http.MethodPost, "/contacts", `{"name":"`+name+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("seed create failed: %d", rec.Code)
		}
	}

	rec, body := doJSON(t, r, http.MethodGet, "/contacts?q=lannister&sort=name&per_page=1&page=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("List status = %d", rec.Code)
	}

	items := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if name := items[0].(map[string]any)["name"]; name != "Jaime Lannister" {
		t.Errorf("name = %v, want Jaime Lannister", name)
	}

	// Total reflects the whole collection, not the page
	if total := body["total"].(float64); total != 3 {
		t.Errorf("total = %v, want 3", total)
	}
}
