package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pantrycore/internal/blob"
	"pantrycore/internal/core"
	"pantrycore/internal/docstore"
	"pantrycore/internal/journal"
	"pantrycore/internal/mailer"
)

type captureSender struct {
	messages []mailer.Message
	fail     bool
}

func (c *captureSender) Send(_ context.Context, msg mailer.Message) error {
	if c.fail {
		return errors.New("relay down")
	}
	c.messages = append(c.messages, msg)
	return nil
}

// newBareHandler wires a handler over an empty data directory. No documents
// exist yet, so creation paths can be observed.
func newBareHandler(t *testing.T) (*Handler, *captureSender) {
	t.Helper()
	store, err := docstore.New(t.TempDir(), blob.NewMemory())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc := core.NewService(docstore.NewRepository(store))
	sender := &captureSender{}
	h := NewHandler(store, svc)
	h.Composer = mailer.NewComposer("ELEVENTHREE PIZZA", "taproom@example.com", []string{"taproom@example.com"})
	h.Sender = sender
	h.Journal = journal.NewMemory()
	h.Users = []string{"Dave", "Slade"}
	h.Logger = log.New(io.Discard, "", 0)
	return h, sender
}

// newTestHandler additionally loads the service, which creates all five
// documents with their defaults.
func newTestHandler(t *testing.T) (*Handler, *captureSender) {
	t.Helper()
	h, sender := newBareHandler(t)
	if err := h.Service.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return h, sender
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	payload := map[string]any{}
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") && rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response %q: %v", rr.Body.String(), err)
		}
	}
	return rr, payload
}

func TestOptionsPreflight(t *testing.T) {
	h, _ := newTestHandler(t)
	rr, _ := doJSON(t, h, http.MethodOptions, "/api/save-inventory", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("CORS headers missing")
	}
}

func TestPostEndpointsRejectGet(t *testing.T) {
	h, _ := newTestHandler(t)
	for _, path := range []string{
		"/api/create-data-file",
		"/api/save-inventory",
		"/api/save-custom-items",
		"/api/save-categories",
		"/api/send-prep-list",
		"/api/send-reorder-list",
	} {
		rr, payload := doJSON(t, h, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d", path, rr.Code)
		}
		if payload["error"] != "Method not allowed" {
			t.Errorf("%s: body = %v", path, payload)
		}
	}
}

func TestCreateDataFile(t *testing.T) {
	h, _ := newBareHandler(t)

	body := `{"filename":"custom-items.json","content":{"ingredients":{},"rawIngredients":{},"paperGoods":{}}}`
	rr, payload := doJSON(t, h, http.MethodPost, "/api/create-data-file", body, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if payload["success"] != true || payload["created"] != true {
		t.Fatalf("payload = %v", payload)
	}

	// Second call is idempotent.
	rr, payload = doJSON(t, h, http.MethodPost, "/api/create-data-file", body, nil)
	if rr.Code != http.StatusOK || payload["created"] != false {
		t.Fatalf("second call: status=%d payload=%v", rr.Code, payload)
	}
}

func TestCreateDataFileRejectsUnknownFilename(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, payload := doJSON(t, h, http.MethodPost, "/api/create-data-file", `{"filename":"evil.json","content":{}}`, nil)
	if rr.Code != http.StatusBadRequest || payload["error"] != "Invalid filename" {
		t.Fatalf("status=%d payload=%v", rr.Code, payload)
	}

	rr, payload = doJSON(t, h, http.MethodPost, "/api/create-data-file", `{"filename":"categories.json"}`, nil)
	if rr.Code != http.StatusBadRequest || payload["error"] != "Missing filename or content" {
		t.Fatalf("status=%d payload=%v", rr.Code, payload)
	}
}

func TestSaveInventoryTypes(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, invType := range []string{"prepped", "raw", "paper"} {
		rr, payload := doJSON(t, h, http.MethodPost, "/api/save-inventory",
			`{"dough":{"count":3}}`, map[string]string{"X-Inventory-Type": invType})
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status=%d body=%s", invType, rr.Code, rr.Body.String())
		}
		if payload["success"] != true || payload["type"] != invType {
			t.Fatalf("%s: payload=%v", invType, payload)
		}
	}

	rr, _ := doJSON(t, h, http.MethodPost, "/api/save-inventory", `{}`,
		map[string]string{"X-Inventory-Type": "frozen"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown type accepted: %d", rr.Code)
	}

	// Header omitted defaults to prepped.
	rr, payload := doJSON(t, h, http.MethodPost, "/api/save-inventory", `{}`, nil)
	if rr.Code != http.StatusOK || payload["type"] != "prepped" {
		t.Fatalf("default type: status=%d payload=%v", rr.Code, payload)
	}
}

func TestSaveInventoryRejectsMalformedJSON(t *testing.T) {
	h, _ := newTestHandler(t)
	rr, payload := doJSON(t, h, http.MethodPost, "/api/save-inventory", `{"dough":`, nil)
	if rr.Code != http.StatusBadRequest || payload["error"] != "Invalid JSON data" {
		t.Fatalf("status=%d payload=%v", rr.Code, payload)
	}
}

func TestSaveCustomItemsNormalizes(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, payload := doJSON(t, h, http.MethodPost, "/api/save-custom-items",
		`{"ingredients":{"vodka":{"name":"Vodka Sauce","category":"Sauce"}}}`, nil)
	if rr.Code != http.StatusOK || payload["success"] != true {
		t.Fatalf("status=%d payload=%v", rr.Code, payload)
	}

	rr, _ = doJSON(t, h, http.MethodGet, "/api/data/custom-items.json", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("read back: %d", rr.Code)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"ingredients", "rawIngredients", "paperGoods"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("domain %s not normalized into document", key)
		}
	}
}

func TestSaveCategoriesEmptyBodyWritesDefault(t *testing.T) {
	h, _ := newBareHandler(t)

	rr, payload := doJSON(t, h, http.MethodPost, "/api/save-categories", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if payload["success"] != true || payload["created_file"] != true {
		t.Fatalf("payload=%v", payload)
	}

	rr, payload = doJSON(t, h, http.MethodPost, "/api/save-categories", `{"ingredients":["Specials"]}`, nil)
	if rr.Code != http.StatusOK || payload["created_file"] != false {
		t.Fatalf("second save: status=%d payload=%v", rr.Code, payload)
	}
}

func TestSendPrepList(t *testing.T) {
	h, sender := newTestHandler(t)

	body := `{"date":"3/14/2026","prepItems":[{"name":"Dough","category":"Base","amount":6,"currentCount":2}]}`
	rr, payload := doJSON(t, h, http.MethodPost, "/api/send-prep-list", body, nil)
	if rr.Code != http.StatusOK || payload["success"] != true {
		t.Fatalf("status=%d payload=%v", rr.Code, payload)
	}
	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.messages))
	}
	msg := sender.messages[0]
	if msg.Subject != "Prep List for 3/14/2026" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "BASE:") || !strings.Contains(msg.Body, "Prep Amount: 6") {
		t.Fatalf("body wrong:\n%s", msg.Body)
	}
}

func TestSendPrepListRequiresItems(t *testing.T) {
	h, _ := newTestHandler(t)
	rr, payload := doJSON(t, h, http.MethodPost, "/api/send-prep-list", `{"date":"3/14/2026"}`, nil)
	if rr.Code != http.StatusBadRequest || payload["error"] != "Invalid data" {
		t.Fatalf("status=%d payload=%v", rr.Code, payload)
	}
}

func TestSendReorderListDeliveryFailure(t *testing.T) {
	h, sender := newTestHandler(t)
	sender.fail = true

	body := `{"date":"3/14/2026","reorderItems":[{"name":"Flour","category":"Flour","amount":3,"currentCount":1,"unit":"kg"}]}`
	rr, payload := doJSON(t, h, http.MethodPost, "/api/send-reorder-list", body, nil)
	if rr.Code != http.StatusInternalServerError || payload["error"] != "Failed to send email" {
		t.Fatalf("status=%d payload=%v", rr.Code, payload)
	}
}

func TestReadDocumentNoStore(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, _ := doJSON(t, h, http.MethodGet, "/api/data/categories.json", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Header().Get("Cache-Control") != "no-store" {
		t.Fatal("missing no-store header")
	}

	rr, payload := doJSON(t, h, http.MethodGet, "/api/data/unknown.json", "", nil)
	if rr.Code != http.StatusNotFound || payload["error"] != "Unknown document" {
		t.Fatalf("status=%d payload=%v", rr.Code, payload)
	}
}

func TestBackupsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	// Two writes: the second snapshots the first.
	for _, body := range []string{`{"dough":{"count":1}}`, `{"dough":{"count":2}}`} {
		rr, _ := doJSON(t, h, http.MethodPost, "/api/save-inventory", body, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("save: %d", rr.Code)
		}
	}

	rr, payload := doJSON(t, h, http.MethodGet, "/api/backups?kind=prepped-inventory", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	// The second write snapshots the first; fast same-second writes may
	// collapse onto one key, so only a lower bound is stable here.
	backups, ok := payload["backups"].([]any)
	if !ok || len(backups) == 0 {
		t.Fatalf("payload=%v", payload)
	}

	rr, _ = doJSON(t, h, http.MethodGet, "/api/backups?kind=nope", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown kind: %d", rr.Code)
	}
}

func TestJournalEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	if err := h.Journal.Append(context.Background(), journal.Entry{Kind: "categories", Actor: "dave"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	rr, payload := doJSON(t, h, http.MethodGet, "/api/journal?limit=5", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	entries, ok := payload["entries"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("payload=%v", payload)
	}

	rr, _ = doJSON(t, h, http.MethodGet, "/api/journal?limit=zero", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad limit accepted: %d", rr.Code)
	}
}

func TestUsersEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	rr, payload := doJSON(t, h, http.MethodGet, "/api/users", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	users, ok := payload["users"].([]any)
	if !ok || len(users) != 2 || users[0] != "Dave" {
		t.Fatalf("payload=%v", payload)
	}
}

func TestExportCSV(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, _ := doJSON(t, h, http.MethodPost, "/api/save-inventory",
		`{"caputoPizzaria":{"count":3,"needsReorder":true,"reorderAmount":2}}`,
		map[string]string{"X-Inventory-Type": "raw"})
	if rr.Code != http.StatusOK {
		t.Fatalf("save: %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/export/reorder-list.csv", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Caputo Pizzaria Flour,Flour,2,kg,3") {
		t.Fatalf("csv missing row:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/nope.csv", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown export: %d", rec.Code)
	}
}

func TestUnknownPath(t *testing.T) {
	h, _ := newTestHandler(t)
	rr, _ := doJSON(t, h, http.MethodGet, "/api/nope", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rr.Code)
	}
}
