package api_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/kloop/amco/api"
	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/internal/storage"
	"github.com/kloop/amco/pkg/repository/mock"
)

type productsFixture struct {
	mocks   *mock.Mocks
	handler *api.ProductsHandler
}

func newProductsFixture(t *testing.T) *productsFixture {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New error: %v", err)
	}
	files, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore error: %v", err)
	}

	mocks := mock.NewMocks()
	sessions := session.NewManager(mocks.Sessions, "testsecret", time.Hour, nil)
	recorder := audit.NewRecorder(mocks.Audit, nil)

	return &productsFixture{
		mocks:   mocks,
		handler: api.NewProductsHandler(mocks.Products, files, recorder, sessions, renderer),
	}
}

// multipartForm builds a multipart body from plain fields plus an optional
// file part named fileField.
func multipartForm(t *testing.T, fields map[string]string, fileField, filename, content string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := io.Copy(fw, strings.NewReader(content)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	return &buf, w.FormDataContentType()
}

func TestAddProduct(t *testing.T) {
	valid := map[string]string{"name": "Widget", "price": "19.99", "description": "A widget."}

	tests := []struct {
		name       string
		fields     map[string]string
		filename   string
		wantStatus int
	}{
		{"Success", valid, "widget.png", http.StatusSeeOther},
		{"MissingName", map[string]string{"price": "19.99", "description": "d"}, "widget.png", http.StatusBadRequest},
		{"BadPrice", map[string]string{"name": "Widget", "price": "cheap", "description": "d"}, "widget.png", http.StatusBadRequest},
		{"NegativePrice", map[string]string{"name": "Widget", "price": "-1", "description": "d"}, "widget.png", http.StatusBadRequest},
		{"MissingImage", valid, "", http.StatusBadRequest},
		{"WrongImageType", valid, "widget.pdf", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProductsFixture(t)

			fileField := ""
			if tt.filename != "" {
				fileField = "image"
			}
			body, contentType := multipartForm(t, tt.fields, fileField, tt.filename, "image-bytes")
			req := httptest.NewRequest(http.MethodPost, "/admin/add_product", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			f.handler.AddProduct(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusSeeOther {
				if len(f.mocks.Products.Stored) != 0 {
					t.Fatalf("rejected submission stored a product")
				}
				if len(f.mocks.Audit.Stored) != 0 {
					t.Fatalf("rejected submission recorded an action")
				}
				return
			}

			if loc := rec.Header().Get("Location"); loc != "/admin" {
				t.Fatalf("Location = %q, want /admin", loc)
			}
			if len(f.mocks.Products.Stored) != 1 {
				t.Fatalf("expected 1 product, got %d", len(f.mocks.Products.Stored))
			}
			for _, p := range f.mocks.Products.Stored {
				if p.Name != "Widget" || p.Price != 19.99 {
					t.Fatalf("stored product %#v", p)
				}
				if !strings.HasSuffix(p.Image, "_widget.png") {
					t.Fatalf("image key %q not derived from upload", p.Image)
				}
			}
			if len(f.mocks.Audit.Stored) != 1 {
				t.Fatalf("expected 1 audit action, got %d", len(f.mocks.Audit.Stored))
			}
			got := f.mocks.Audit.Stored[0]
			if got.EntityType != models.EntityProduct || got.Action != models.ActionAdded {
				t.Fatalf("audit row %#v", got)
			}
		})
	}
}

func TestEditProductKeepsImageWhenNotReuploaded(t *testing.T) {
	f := newProductsFixture(t)
	id, err := f.mocks.Products.CreateProduct(t.Context(), &models.Product{Name: "Widget", Price: 10, Image: "orig.png", Description: "d"})
	if err != nil {
		t.Fatalf("CreateProduct error: %v", err)
	}

	body, contentType := multipartForm(t, map[string]string{"name": "Widget v2", "price": "12.50", "description": "d2"}, "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/admin/edit_product/1", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})

	rec := httptest.NewRecorder()
	f.handler.EditProduct(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body:\n%s", rec.Code, rec.Body.String())
	}
	p, err := f.mocks.Products.GetProduct(t.Context(), id)
	if err != nil {
		t.Fatalf("GetProduct error: %v", err)
	}
	if p.Name != "Widget v2" || p.Price != 12.50 {
		t.Fatalf("product not updated: %#v", p)
	}
	if p.Image != "orig.png" {
		t.Fatalf("image replaced without a new upload: %q", p.Image)
	}
}

func TestDeleteProduct(t *testing.T) {
	f := newProductsFixture(t)
	id, err := f.mocks.Products.CreateProduct(t.Context(), &models.Product{Name: "Widget", Price: 10, Image: "w.png", Description: "d"})
	if err != nil {
		t.Fatalf("CreateProduct error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/delete_product/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	f.handler.DeleteProduct(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if _, err := f.mocks.Products.GetProduct(t.Context(), id); err == nil {
		t.Fatalf("product still present after delete")
	}
	if len(f.mocks.Audit.Stored) != 1 || f.mocks.Audit.Stored[0].Action != models.ActionDeleted {
		t.Fatalf("audit trail %#v", f.mocks.Audit.Stored)
	}

	// deleting again is a 404
	rec2 := httptest.NewRecorder()
	f.handler.DeleteProduct(rec2, req)
	if rec2.Code != http.StatusNotFound {
		t.Fatalf("double delete status = %d, want 404", rec2.Code)
	}
}
