package api

import (
	"database/sql"
	"net/http"

	"github.com/tmcampos/biblioteca/internal/catalog"
	"github.com/tmcampos/biblioteca/internal/imaging"
	"github.com/tmcampos/biblioteca/internal/model"
)

// BooksHandler handles catalog endpoints.
type BooksHandler struct {
	DB *sql.DB
}

// List handles GET /api/books. The optional q parameter performs a
// case-insensitive substring search over title, author, and category; a
// blank query returns the whole catalog in catalog order.
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	books, err := catalog.SearchBooks(r.Context(), h.DB, query)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to search books")
		return
	}
	if books == nil {
		books = []model.Book{}
	}
	jsonResponse(w, http.StatusOK, books)
}

// Get handles GET /api/books/{id}.
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := catalog.GetBook(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get book")
		return
	}
	if book == nil {
		jsonError(w, http.StatusNotFound, "book not found")
		return
	}
	jsonResponse(w, http.StatusOK, book)
}

// UploadCover handles PUT /api/books/{id}/cover.
func (h *BooksHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	book, err := catalog.GetBook(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get book")
		return
	}
	if book == nil {
		jsonError(w, http.StatusNotFound, "book not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("cover")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "cover file required")
		return
	}
	defer file.Close()

	cover, err := imaging.ProcessCover(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := catalog.SetBookCover(r.Context(), h.DB, id, cover.Data, cover.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save cover")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "cover uploaded"})
}

// GetCover handles GET /api/books/{id}/cover. Uploaded cover data wins;
// otherwise the request is redirected to the book's external cover URL.
func (h *BooksHandler) GetCover(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	data, mime, err := catalog.GetBookCover(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get cover")
		return
	}
	if data != nil {
		w.Header().Set("Content-Type", mime)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(data)
		return
	}

	book, err := catalog.GetBook(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get book")
		return
	}
	if book == nil {
		jsonError(w, http.StatusNotFound, "book not found")
		return
	}
	if book.CoverURL == "" {
		jsonError(w, http.StatusNotFound, "no cover")
		return
	}
	http.Redirect(w, r, book.CoverURL, http.StatusFound)
}
