package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/server/http/dto"
	"github.com/slt-fleet/tireflow/internal/usecase"
)

// RequestHandler manages tire request endpoints.
type RequestHandler struct {
	facade RequestFacade
}

// NewRequestHandler constructs RequestHandler.
func NewRequestHandler(facade RequestFacade) *RequestHandler {
	return &RequestHandler{facade: facade}
}

// Create handles POST /api/tire-requests. The payload is either a JSON body
// or a multipart form with a "request" JSON part plus photo file parts.
func (h *RequestHandler) Create(c *gin.Context) {
	request, ok := h.bindRequest(c)
	if !ok {
		return
	}

	created, err := h.facade.CreateRequest(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RequestHandler) bindRequest(c *gin.Context) (*model.TireRequest, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var request model.TireRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
			return nil, false
		}
		return &request, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid multipart form"})
		return nil, false
	}

	var request model.TireRequest
	if values := form.Value["request"]; len(values) > 0 {
		if err := json.Unmarshal([]byte(values[0]), &request); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request part"})
			return nil, false
		}
	}

	// Clients send photo parts under either form key.
	files := append(form.File["tirePhotos"], form.File["photos"]...)
	uploads := make([]usecase.ImageUpload, 0, len(files))
	for _, file := range files {
		uploads = append(uploads, usecase.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
		})
	}
	if violations := h.facade.ValidateImages(uploads); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: violations})
		return nil, false
	}

	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable photo upload"})
			return nil, false
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable photo upload"})
			return nil, false
		}
		dataURL := "data:" + file.Header.Get("Content-Type") + ";base64," + base64.StdEncoding.EncodeToString(data)
		request.PhotoURLs = append(request.PhotoURLs, dataURL)
	}

	return &request, true
}

// Get handles GET /api/tire-requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.facade.Request(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// List handles GET /api/tire-requests.
func (h *RequestHandler) List(c *gin.Context) {
	requests, err := h.facade.Requests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// Update handles PUT /api/tire-requests/:id.
func (h *RequestHandler) Update(c *gin.Context) {
	var request model.TireRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.facade.UpdateRequest(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/tire-requests/:id.
func (h *RequestHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteRequest(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ManagerApprove handles POST /api/tire-requests/:id/approve.
func (h *RequestHandler) ManagerApprove(c *gin.Context) {
	h.transition(c, h.facade.ManagerApprove)
}

// ManagerReject handles POST /api/tire-requests/:id/reject.
func (h *RequestHandler) ManagerReject(c *gin.Context) {
	h.transitionWithReason(c, h.facade.ManagerReject)
}

// TTOApprove handles POST /api/tire-requests/:id/tto-approve.
func (h *RequestHandler) TTOApprove(c *gin.Context) {
	h.transition(c, h.facade.TTOApprove)
}

// TTOReject handles POST /api/tire-requests/:id/tto-reject.
func (h *RequestHandler) TTOReject(c *gin.Context) {
	h.transitionWithReason(c, h.facade.TTOReject)
}

// EngineerApprove handles POST /api/tire-requests/:id/engineer-approve.
func (h *RequestHandler) EngineerApprove(c *gin.Context) {
	h.transition(c, h.facade.EngineerApprove)
}

// EngineerReject handles POST /api/tire-requests/:id/engineer-reject.
func (h *RequestHandler) EngineerReject(c *gin.Context) {
	h.transition(c, h.facade.EngineerReject)
}

func (h *RequestHandler) transition(c *gin.Context, fn func(ctx context.Context, id string) (*model.TireRequest, error)) {
	updated, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RequestHandler) transitionWithReason(c *gin.Context, fn func(ctx context.Context, id, reason string) (*model.TireRequest, error)) {
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := fn(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Photos handles GET /api/tire-requests/:id/photos.
func (h *RequestHandler) Photos(c *gin.Context) {
	request, err := h.facade.Request(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PhotosResponse{RequestID: request.ID, PhotoURLs: request.PhotoURLs})
}

// PDF handles GET /api/tire-requests/:id/pdf.
func (h *RequestHandler) PDF(c *gin.Context) {
	result, err := h.facade.RequestPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.MimeType, result.Data)
}

// ManagerQueue handles GET /api/tire-requests/manager/requests.
func (h *RequestHandler) ManagerQueue(c *gin.Context) {
	h.stageList(c, usecase.StageManager)
}

// TTOQueue handles GET /api/tire-requests/tto/requests.
func (h *RequestHandler) TTOQueue(c *gin.Context) {
	h.stageList(c, usecase.StageTTO)
}

// EngineerQueue handles GET /api/tire-requests/engineer/requests.
func (h *RequestHandler) EngineerQueue(c *gin.Context) {
	h.stageList(c, usecase.StageEngineer)
}

func (h *RequestHandler) stageList(c *gin.Context, stage usecase.Stage) {
	requests, err := h.facade.RequestsByStage(c.Request.Context(), stage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// SummaryCounts handles GET /api/tire-requests/summary/counts.
func (h *RequestHandler) SummaryCounts(c *gin.Context) {
	counts, err := h.facade.DashboardCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// Validate handles POST /api/tire-requests/validate. It runs the field rules
// without persisting anything.
func (h *RequestHandler) Validate(c *gin.Context) {
	var request model.TireRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	violations := h.facade.ValidateRequest(&request)
	c.JSON(http.StatusOK, dto.ValidationResponse{Valid: len(violations) == 0, Errors: violations})
}

// ValidateImages handles POST /api/tire-requests/validate-images.
func (h *RequestHandler) ValidateImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid multipart form"})
		return
	}

	// Clients send photo parts under either form key.
	files := append(form.File["tirePhotos"], form.File["photos"]...)
	uploads := make([]usecase.ImageUpload, 0, len(files))
	for _, file := range files {
		uploads = append(uploads, usecase.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
		})
	}

	violations := h.facade.ValidateImages(uploads)
	c.JSON(http.StatusOK, dto.ValidationResponse{Valid: len(violations) == 0, Errors: violations})
}

// PatchStatus handles PUT /api/tire-requests/:id/status.
func (h *RequestHandler) PatchStatus(c *gin.Context) {
	var req dto.StatusPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	var status *model.RequestStatus
	if req.Status != nil {
		s := model.RequestStatus(*req.Status)
		status = &s
	}

	updated, err := h.facade.PatchRequestStatus(c.Request.Context(), c.Param("id"),
		status, req.TTOApprovalDate, req.TTORejectionDate, req.TTORejectionReason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
