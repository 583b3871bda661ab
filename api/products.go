package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kloop/amco/internal/audit"
	"github.com/kloop/amco/internal/models"
	"github.com/kloop/amco/internal/render"
	"github.com/kloop/amco/internal/session"
	"github.com/kloop/amco/internal/storage"
	"github.com/kloop/amco/pkg/repository"
)

// maxUploadSize bounds multipart parsing for image and CV uploads.
const maxUploadSize = 10 << 20

type ProductsHandler struct {
	products repository.ProductRepo
	files    storage.FileStore
	audit    audit.Recorder
	sessions *session.Manager
	renderer *render.Renderer
}

func NewProductsHandler(products repository.ProductRepo, files storage.FileStore, rec audit.Recorder, sessions *session.Manager, renderer *render.Renderer) *ProductsHandler {
	return &ProductsHandler{products: products, files: files, audit: rec, sessions: sessions, renderer: renderer}
}

// Dashboard lists all products for the product admin.
func (h *ProductsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	msg, level := h.sessions.PopFlash(r.Context(), sessionFromContext(r.Context()))
	renderPage(h.renderer, w, "admin.html", page{"Products": products, "Flash": msg, "FlashLevel": level})
}

func (h *ProductsHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "product_form.html", page{"Title": "Add Product"})
		return
	}

	p, errMsg := h.productForm(r, true)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "product_form.html", page{"Title": "Add Product", "Error": errMsg})
		return
	}

	id, err := h.products.CreateProduct(r.Context(), p)
	if err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityProduct, id, models.ActionAdded, fmt.Sprintf("Product %q added.", p.Name))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Product added successfully.", "success")
	http.Redirect(w, r, RealmProduct.HomePath, http.StatusSeeOther)
}

func (h *ProductsHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	existing, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		renderPage(h.renderer, w, "product_form.html", page{"Title": "Edit Product", "Product": existing})
		return
	}

	p, errMsg := h.productForm(r, false)
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
		renderPage(h.renderer, w, "product_form.html", page{"Title": "Edit Product", "Product": existing, "Error": errMsg})
		return
	}

	p.ID = id
	if p.Image == "" {
		p.Image = existing.Image
	}
	if err := h.products.UpdateProduct(r.Context(), p); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityProduct, id, models.ActionEdited, fmt.Sprintf("Product %q edited.", p.Name))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Product updated successfully.", "success")
	http.Redirect(w, r, RealmProduct.HomePath, http.StatusSeeOther)
}

func (h *ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	p, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		storageError(w, err)
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}

	h.audit.Record(r.Context(), models.EntityProduct, id, models.ActionDeleted, fmt.Sprintf("Product %q deleted.", p.Name))
	h.sessions.SetFlash(r.Context(), sessionFromContext(r.Context()), "Product deleted successfully.", "success")
	http.Redirect(w, r, RealmProduct.HomePath, http.StatusSeeOther)
}

// productForm validates the submitted product fields and stores the uploaded
// image when one is present. requireImage is true for creates.
func (h *ProductsHandler) productForm(r *http.Request, requireImage bool) (*models.Product, string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "Invalid form submission."
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	priceStr := strings.TrimSpace(r.PostFormValue("price"))
	description := strings.TrimSpace(r.PostFormValue("description"))
	if name == "" || priceStr == "" || description == "" {
		return nil, "Name, price and description are required."
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return nil, "Price must be a non-negative number."
	}

	p := &models.Product{Name: name, Price: price, Description: description}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		stored, err := h.files.Save(header.Filename, file, storage.KindImage)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidType) {
				return nil, "Image must be a png, jpg, jpeg or gif file."
			}
			return nil, "Could not store the uploaded image."
		}
		p.Image = stored
	case errors.Is(err, http.ErrMissingFile):
		if requireImage {
			return nil, "An image file is required."
		}
	default:
		return nil, "Invalid image upload."
	}

	return p, ""
}
