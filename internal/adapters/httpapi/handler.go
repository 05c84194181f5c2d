// Package httpapi exposes the document write endpoints, the read-side
// document and export endpoints, and list delivery over HTTP. The write
// surface keeps the wire contract of the original PHP endpoints: POST with
// OPTIONS preflight, JSON bodies, and {"error": ...} failures.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pantrycore/internal/catalog"
	"pantrycore/internal/core"
	"pantrycore/internal/docstore"
	"pantrycore/internal/journal"
	"pantrycore/internal/mailer"
)

const maxBodyBytes = 1 << 20

// Handler routes every /api/ endpoint.
type Handler struct {
	Store    *docstore.Store
	Service  *core.Service
	Composer *mailer.Composer
	Sender   mailer.Sender
	Journal  journal.Journal
	Users    []string
	Logger   *log.Logger
	Metrics  core.MetricsRecorder
}

// NewHandler constructs a handler over the document store and controller.
func NewHandler(store *docstore.Store, svc *core.Service) *Handler {
	return &Handler{
		Store:   store,
		Service: svc,
		Logger:  log.Default(),
		Metrics: core.NoopMetricsRecorder{},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/api/create-data-file":
		h.post(w, r, h.handleCreateDataFile)
	case path == "/api/save-inventory":
		h.post(w, r, h.handleSaveInventory)
	case path == "/api/save-custom-items":
		h.post(w, r, h.handleSaveCustomItems)
	case path == "/api/save-categories":
		h.post(w, r, h.handleSaveCategories)
	case path == "/api/send-prep-list":
		h.post(w, r, h.handleSendPrepList)
	case path == "/api/send-reorder-list":
		h.post(w, r, h.handleSendReorderList)
	case strings.HasPrefix(path, "/api/data/"):
		h.get(w, r, func(w http.ResponseWriter, r *http.Request) {
			h.handleReadDocument(w, r, strings.TrimPrefix(path, "/api/data/"))
		})
	case path == "/api/backups":
		h.get(w, r, h.handleBackups)
	case path == "/api/journal":
		h.get(w, r, h.handleJournal)
	case path == "/api/users":
		h.get(w, r, h.handleUsers)
	case strings.HasPrefix(path, "/api/export/"):
		h.get(w, r, func(w http.ResponseWriter, r *http.Request) {
			h.handleExport(w, r, strings.TrimPrefix(path, "/api/export/"))
		})
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	fn(w, r)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	fn(w, r)
}

func (h *Handler) handleCreateDataFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string          `json:"filename"`
		Content  json.RawMessage `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	if req.Filename == "" || len(req.Content) == 0 {
		writeError(w, http.StatusBadRequest, "Missing filename or content")
		return
	}
	kind, ok := docstore.KindForFilename(req.Filename)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid filename")
		return
	}
	_, created, err := h.Store.EnsureExists(r.Context(), kind, req.Content)
	if err != nil {
		h.Logger.Printf("create %s: %v", req.Filename, err)
		writeError(w, http.StatusInternalServerError, "Failed to create file")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"created":  created,
		"filename": req.Filename,
	})
}

var inventoryKinds = map[string]docstore.Kind{
	"prepped": docstore.KindPreppedInventory,
	"raw":     docstore.KindRawInventory,
	"paper":   docstore.KindPaperInventory,
}

func (h *Handler) handleSaveInventory(w http.ResponseWriter, r *http.Request) {
	invType := r.Header.Get("X-Inventory-Type")
	if invType == "" {
		invType = "prepped"
	}
	kind, ok := inventoryKinds[invType]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown inventory type %q", invType))
		return
	}
	body, err := readBody(r)
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	if _, err := h.Store.Write(r.Context(), kind, body, actor(r)); err != nil {
		h.Logger.Printf("save %s: %v", kind, err)
		writeError(w, http.StatusInternalServerError, "Failed to save inventory")
		return
	}
	h.reloadService(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"type":    invType,
	})
}

func (h *Handler) handleSaveCustomItems(w http.ResponseWriter, r *http.Request) {
	var items core.CustomItems
	if err := decodeBody(r, &items); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	content, err := json.Marshal(items.Normalized())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save custom items")
		return
	}
	if _, err := h.Store.Write(r.Context(), docstore.KindCustomItems, content, actor(r)); err != nil {
		h.Logger.Printf("save custom items: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save custom items")
		return
	}
	h.reloadService(r)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleSaveCategories(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON data")
		return
	}
	var cats core.CategorySet
	if len(body) > 0 {
		if err := json.Unmarshal(body, &cats); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON data")
			return
		}
	}
	content, err := json.Marshal(cats.Normalized())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save categories")
		return
	}
	res, err := h.Store.Write(r.Context(), docstore.KindCategories, content, actor(r))
	if err != nil {
		h.Logger.Printf("save categories: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save categories")
		return
	}
	h.reloadService(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"created_file": res.Created,
	})
}

// listPayload is the wire shape the list senders accept.
type listPayload struct {
	Date         string  `json:"date"`
	PrepItems    []entry `json:"prepItems"`
	ReorderItems []entry `json:"reorderItems"`
}

type entry struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	Amount       float64 `json:"amount"`
	CurrentCount float64 `json:"currentCount"`
}

func toListEntries(items []entry) []core.ListEntry {
	out := make([]core.ListEntry, 0, len(items))
	for _, it := range items {
		out = append(out, core.ListEntry{
			Name:         it.Name,
			Category:     it.Category,
			Unit:         it.Unit,
			Amount:       it.Amount,
			CurrentCount: it.CurrentCount,
		})
	}
	return out
}

func (h *Handler) handleSendPrepList(w http.ResponseWriter, r *http.Request) {
	var req listPayload
	if err := decodeBody(r, &req); err != nil || req.PrepItems == nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	msg := h.Composer.PrepList(req.Date, toListEntries(req.PrepItems))
	h.deliver(w, r, "send_prep_list", msg)
}

func (h *Handler) handleSendReorderList(w http.ResponseWriter, r *http.Request) {
	var req listPayload
	if err := decodeBody(r, &req); err != nil || req.ReorderItems == nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	msg := h.Composer.ReorderList(req.Date, toListEntries(req.ReorderItems))
	h.deliver(w, r, "send_reorder_list", msg)
}

func (h *Handler) deliver(w http.ResponseWriter, r *http.Request, operation string, msg mailer.Message) {
	if h.Composer == nil || h.Sender == nil {
		writeError(w, http.StatusInternalServerError, "Mail delivery not configured")
		return
	}
	start := time.Now()
	err := h.Sender.Send(r.Context(), msg)
	h.Metrics.Observe(r.Context(), operation, err == nil, time.Since(start))
	if err != nil {
		h.Logger.Printf("%s: %v", operation, err)
		writeError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleReadDocument(w http.ResponseWriter, r *http.Request, filename string) {
	kind, ok := docstore.KindForFilename(filename)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown document")
		return
	}
	content, _, err := h.Store.EnsureExists(r.Context(), kind, kind.DefaultContent())
	if err != nil {
		h.Logger.Printf("read %s: %v", filename, err)
		writeError(w, http.StatusInternalServerError, "Failed to read document")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (h *Handler) handleBackups(w http.ResponseWriter, r *http.Request) {
	kind := docstore.Kind(r.URL.Query().Get("kind"))
	rot := h.Store.Rotator(kind)
	if rot == nil {
		writeError(w, http.StatusBadRequest, "Unknown document kind")
		return
	}
	infos, err := rot.List(r.Context())
	if err != nil {
		h.Logger.Printf("list backups %s: %v", kind, err)
		writeError(w, http.StatusInternalServerError, "Failed to list backups")
		return
	}
	presign := r.URL.Query().Get("presign") == "true"
	type backupEntry struct {
		Key          string    `json:"key"`
		Size         int64     `json:"size"`
		LastModified time.Time `json:"lastModified"`
		URL          string    `json:"url,omitempty"`
	}
	entries := make([]backupEntry, 0, len(infos))
	for _, info := range infos {
		e := backupEntry{Key: info.Key, Size: info.Size, LastModified: info.LastModified}
		if presign {
			// Drivers without signing support just omit the URL.
			if url, err := rot.Presign(r.Context(), info.Key, 15*time.Minute); err == nil {
				e.URL = url
			}
		}
		entries = append(entries, e)
	}
	writeJSON(w, http.StatusOK, map[string]any{"backups": entries})
}

func (h *Handler) handleJournal(w http.ResponseWriter, r *http.Request) {
	if h.Journal == nil {
		writeError(w, http.StatusNotFound, "Journal not configured")
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	entries, err := h.Journal.Recent(r.Context(), limit)
	if err != nil {
		h.Logger.Printf("read journal: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to read journal")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"users": h.Users})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, name string) {
	if h.Service == nil {
		writeError(w, http.StatusNotFound, "Exports not configured")
		return
	}
	var (
		data []byte
		err  error
	)
	switch strings.TrimSuffix(name, ".csv") {
	case "prepped-inventory":
		data, err = core.InventoryCSV(catalog.DomainPrepared, h.Service.Snapshot())
	case "raw-inventory":
		data, err = core.InventoryCSV(catalog.DomainRaw, h.Service.Snapshot())
	case "paper-inventory":
		data, err = core.InventoryCSV(catalog.DomainPaper, h.Service.Snapshot())
	case "prep-list":
		data, err = core.ListCSV(h.Service.PrepList())
	case "reorder-list":
		data, err = core.ListCSV(h.Service.ReorderList())
	default:
		writeError(w, http.StatusNotFound, "Unknown export")
		return
	}
	if err != nil {
		h.Logger.Printf("export %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}
	filename := fmt.Sprintf("%s-%s.csv", strings.TrimSuffix(name, ".csv"), time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// reloadService re-syncs the controller's in-memory view after a raw
// document write. Failures are logged; the next load retries.
func (h *Handler) reloadService(r *http.Request) {
	if h.Service == nil {
		return
	}
	if err := h.Service.Load(r.Context()); err != nil {
		h.Logger.Printf("reload state: %v", err)
	}
}

func actor(r *http.Request) string {
	if user := r.Header.Get("X-User"); user != "" {
		return user
	}
	return "api"
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func decodeBody(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Inventory-Type, X-User")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
