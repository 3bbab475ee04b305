package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikbrunner/chromemarks/internal/launcher"
	"github.com/nikbrunner/chromemarks/internal/logger"
)

const maxBodyBytes = 1 << 20

type handlers struct {
	d Deps
}

type searchResponse struct {
	Query string          `json:"query"`
	Items []launcher.Item `json:"items"`
}

type selectResponse struct {
	Query  string `json:"query,omitempty"`
	Opened string `json:"opened,omitempty"`
}

func (h handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// search answers GET /search?q=<query> with the ranked rows.
func (h handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	items := h.d.Launcher.Search(q)
	if items == nil {
		items = []launcher.Item{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Items: items})
}

// selectItem accepts a row previously returned by search. Folders answer
// with the query to issue next. Bookmarks are looked up by id in the
// server's own store and opened; every other action field is ignored.
func (h handlers) selectItem(w http.ResponseWriter, r *http.Request) {
	var item launcher.Item
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&item); err != nil {
		jsonError(w, "invalid item: "+err.Error(), http.StatusBadRequest)
		return
	}

	switch item.Kind {
	case launcher.ItemFolder:
		if item.Query == "" {
			jsonError(w, "folder item has no query", http.StatusBadRequest)
			return
		}
		next, err := h.d.Launcher.Select(item)
		if err != nil {
			h.d.Logger.Error("failed to select folder", logger.Error(err))
			jsonError(w, "failed to select folder: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, selectResponse{Query: next})

	case launcher.ItemBookmark:
		if item.Action == nil || item.Action.BookmarkID == "" {
			jsonError(w, "bookmark item has no bookmark id", http.StatusBadRequest)
			return
		}
		action, err := h.d.Launcher.OpenBookmark(item.Action.BookmarkID)
		switch {
		case errors.Is(err, launcher.ErrBookmarkNotFound):
			jsonError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, launcher.ErrUnsupportedURL):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case err != nil:
			h.d.Logger.Error("failed to open bookmark", logger.String("bookmark_id", item.Action.BookmarkID), logger.Error(err))
			jsonError(w, "failed to open bookmark: "+err.Error(), http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusOK, selectResponse{Opened: action.URL})
		}

	default:
		jsonError(w, "item cannot be selected", http.StatusBadRequest)
	}
}

// icon serves the cached favicon for GET /icon?url=<page url>.
func (h handlers) icon(w http.ResponseWriter, r *http.Request) {
	if h.d.Favicons == nil {
		http.NotFound(w, r)
		return
	}
	url := r.URL.Query().Get("url")
	if url == "" {
		jsonError(w, "url query parameter is required", http.StatusBadRequest)
		return
	}

	path := h.d.Favicons.Icon(url)
	if path == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

func (h handlers) clearCache(w http.ResponseWriter, r *http.Request) {
	if h.d.Favicons == nil {
		http.NotFound(w, r)
		return
	}
	removed, err := h.d.Favicons.ClearCache()
	if err != nil {
		h.d.Logger.Error("failed to clear favicon cache", logger.Error(err))
		jsonError(w, "failed to clear cache: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}
