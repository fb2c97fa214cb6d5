package controllers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"flyer/service"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

type FlyerController struct {
	svc *service.FlyerService
	dev bool
}

func NewFlyerController(svc *service.FlyerService, dev bool) *FlyerController {
	return &FlyerController{svc: svc, dev: dev}
}

type generateRequest struct {
	UserInput  string `json:"userInput"`
	TemplateID string `json:"templateId"`
	FlyerType  string `json:"flyerType"`
}

type slotEditRequest struct {
	Text     *string `json:"text"`
	FontSize *int    `json:"fontSize"`
}

// Health handles GET /health.
func (c *FlyerController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "OK",
		"message": "Flyer AI Service is running",
	})
}

// Templates handles GET /api/flyer/templates.
func (c *FlyerController) Templates(w http.ResponseWriter, r *http.Request) {
	writeData(w, c.svc.TemplatesByCategory(r.URL.Query().Get("category")))
}

// Generate handles POST /api/flyer/generate.
func (c *FlyerController) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, err, c.dev)
		return
	}

	content, err := c.svc.GenerateContent(r.Context(), req.UserInput, req.FlyerType)
	if err != nil {
		writeError(w, err, c.dev)
		return
	}
	writeData(w, content)
}

// Create handles POST /api/flyer/create.
func (c *FlyerController) Create(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, err, c.dev)
		return
	}
	if strings.TrimSpace(req.UserInput) == "" || strings.TrimSpace(req.TemplateID) == "" {
		writeError(w, errors.Wrap(service.ErrInvalidInput, "User input and template ID are required"), c.dev)
		return
	}

	view, err := c.svc.CreateFlyer(r.Context(), req.UserInput, req.TemplateID, req.FlyerType)
	if err != nil {
		writeError(w, err, c.dev)
		return
	}
	writeData(w, view)
}

// List handles GET /api/flyer.
func (c *FlyerController) List(w http.ResponseWriter, r *http.Request) {
	writeData(w, c.svc.Flyers())
}

// Get handles GET /api/flyer/{id}.
func (c *FlyerController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := c.svc.Flyer(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, c.dev)
		return
	}
	writeData(w, view)
}

// Delete handles DELETE /api/flyer/{id}.
func (c *FlyerController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.DeleteFlyer(mux.Vars(r)["id"]); err != nil {
		writeError(w, err, c.dev)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "Flyer deleted"})
}

// EditSlot handles PATCH /api/flyer/{id}/slots/{slot}.
func (c *FlyerController) EditSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req slotEditRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, err, c.dev)
		return
	}

	view, err := c.svc.EditSlot(vars["id"], vars["slot"], service.SlotEdit{
		Text:     req.Text,
		FontSize: req.FontSize,
	})
	if err != nil {
		writeError(w, err, c.dev)
		return
	}
	writeData(w, view)
}

// ResetSlot handles DELETE /api/flyer/{id}/slots/{slot}.
func (c *FlyerController) ResetSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := c.svc.ResetSlot(vars["id"], vars["slot"])
	if err != nil {
		writeError(w, err, c.dev)
		return
	}
	writeData(w, view)
}

// Export handles GET /api/flyer/{id}/export.
func (c *FlyerController) Export(w http.ResponseWriter, r *http.Request) {
	text, err := c.svc.Export(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, c.dev)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFilename+`"`)
	w.Write([]byte(text))
}

// decodeRequest reads a JSON body, or a form body for any other content type.
func decodeRequest(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return errors.Wrap(service.ErrInvalidInput, "Invalid request body")
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return errors.Wrap(service.ErrInvalidInput, "Invalid form")
	}
	switch v := dst.(type) {
	case *generateRequest:
		v.UserInput = r.FormValue("userInput")
		v.TemplateID = r.FormValue("templateId")
		v.FlyerType = r.FormValue("flyerType")
	case *slotEditRequest:
		if _, ok := r.Form["text"]; ok {
			text := r.FormValue("text")
			v.Text = &text
		}
		if raw := r.FormValue("fontSize"); raw != "" {
			size, err := strconv.Atoi(raw)
			if err != nil {
				return errors.Wrap(service.ErrInvalidInput, "fontSize must be a number")
			}
			v.FontSize = &size
		}
	}
	return nil
}
