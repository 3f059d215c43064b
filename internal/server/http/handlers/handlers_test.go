package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/test"
	"github.com/slt-fleet/tireflow/internal/usecase"
)

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target string, body any, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params

	handler(c)
	c.Writer.WriteHeaderNow()
	return recorder
}

func idParam(id string) gin.Param {
	return gin.Param{Key: "id", Value: id}
}

func TestRequestCreateReturnsCreated(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		CreateRequestFn: func(_ context.Context, request *model.TireRequest) (*model.TireRequest, error) {
			request.ID = "req-1"
			request.Status = model.RequestStatusSubmitted
			return request, nil
		},
	}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.Create, http.MethodPost, "/api/tire-requests", map[string]any{
		"vehicleNo": "WP-1234",
		"noOfTires": "4",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var response model.TireRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if response.ID != "req-1" || response.Status != model.RequestStatusSubmitted {
		t.Fatalf("unexpected response: %+v", response)
	}
}

func TestRequestCreateMapsValidationErrors(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		CreateRequestFn: func(context.Context, *model.TireRequest) (*model.TireRequest, error) {
			return nil, domainErrors.NewValidationError([]string{
				"Vehicle number is required",
				"Number of tires must be at least 1",
			})
		},
	}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.Create, http.MethodPost, "/api/tire-requests", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Vehicle number is required") ||
		!strings.Contains(rec.Body.String(), "Number of tires must be at least 1") {
		t.Fatalf("expected full violation list, got %s", rec.Body.String())
	}
}

func TestRequestGetNotFound(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		RequestFn: func(context.Context, string) (*model.TireRequest, error) {
			return nil, domainErrors.ErrNotFound
		},
	}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.Get, http.MethodGet, "/api/tire-requests/missing", nil, idParam("missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTTORejectMapsTransitionConflict(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		TTORejectFn: func(context.Context, string, string) (*model.TireRequest, error) {
			return nil, domainErrors.ErrManagerApprovalRequired
		},
	}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.TTOReject, http.MethodPost, "/api/tire-requests/req-1/tto-reject",
		map[string]string{"reason": "bad spec"}, idParam("req-1"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "approved by manager") {
		t.Fatalf("expected explanatory message, got %s", rec.Body.String())
	}
}

func TestManagerRejectMapsReasonRequired(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		ManagerRejectFn: func(context.Context, string, string) (*model.TireRequest, error) {
			return nil, domainErrors.ErrReasonRequired
		},
	}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.ManagerReject, http.MethodPost, "/api/tire-requests/req-1/reject",
		map[string]string{"reason": ""}, idParam("req-1"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestManagerApproveReturnsUpdatedRequest(t *testing.T) {
	facade := &test.WorkflowFacadeStub{}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.ManagerApprove, http.MethodPost, "/api/tire-requests/req-1/approve", nil, idParam("req-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), string(model.RequestStatusManagerApproved)) {
		t.Fatalf("expected MANAGER_APPROVED in body, got %s", rec.Body.String())
	}
}

func TestPersistenceFailureMapsTo500(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		RequestsFn: func(context.Context) ([]model.TireRequest, error) {
			return nil, errors.New("connection refused")
		},
	}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.List, http.MethodGet, "/api/tire-requests", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestValidateEndpointReportsViolations(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		ValidateRequestFn: func(*model.TireRequest) []string {
			return []string{"Vehicle number is required"}
		},
	}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.Validate, http.MethodPost, "/api/tire-requests/validate", map[string]any{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"valid":false`) {
		t.Fatalf("expected invalid verdict, got %s", rec.Body.String())
	}
}

func TestPhotosEndpointReturnsConsolidatedList(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		RequestFn: func(_ context.Context, id string) (*model.TireRequest, error) {
			return &model.TireRequest{ID: id, PhotoURLs: []string{"a", "b"}}, nil
		},
	}
	handler := NewRequestHandler(facade)

	rec := performJSON(t, handler.Photos, http.MethodGet, "/api/tire-requests/req-1/photos", nil, idParam("req-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"photoUrls":["a","b"]`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRequestCreateMultipart(t *testing.T) {
	var captured *model.TireRequest
	facade := &test.WorkflowFacadeStub{
		CreateRequestFn: func(_ context.Context, request *model.TireRequest) (*model.TireRequest, error) {
			captured = request
			return request, nil
		},
	}
	handler := NewRequestHandler(facade)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("request", `{"vehicleNo":"WP-1234","noOfTires":"4"}`)
	part, _ := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="photos"; filename="tire.png"`},
		"Content-Type":        {"image/png"},
	})
	_, _ = part.Write([]byte{0x89, 0x50, 0x4E, 0x47})
	writer.Close()

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/tire-requests", &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	handler.Create(c)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if captured == nil || captured.VehicleNo != "WP-1234" {
		t.Fatalf("expected bound request, got %+v", captured)
	}
	if len(captured.PhotoURLs) != 1 || !strings.HasPrefix(captured.PhotoURLs[0], "data:image/png;base64,") {
		t.Fatalf("expected uploaded photo encoded as data URL, got %v", captured.PhotoURLs)
	}
}

func TestRequestCreateMultipartRejectsOversizedImage(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		ValidateImagesFn: func(uploads []usecase.ImageUpload) []string {
			return []string{"Image file size must be less than 5MB. Current file: big.png (6.00 MB)"}
		},
	}
	handler := NewRequestHandler(facade)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="photos"; filename="big.png"`},
		"Content-Type":        {"image/png"},
	})
	_, _ = part.Write([]byte("png"))
	writer.Close()

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/tire-requests", &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	handler.Create(c)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "less than 5MB") {
		t.Fatalf("expected size violation, got %s", recorder.Body.String())
	}
}

func TestOrderCreateReturnsCreated(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		CreateOrderFn: func(_ context.Context, order *model.TireOrder) (*model.TireOrder, error) {
			order.ID = "ord-1"
			order.Status = model.OrderStatusPending
			return order, nil
		},
	}
	handler := NewOrderHandler(facade)

	rec := performJSON(t, handler.Create, http.MethodPost, "/api/tire-orders", map[string]any{
		"requestId": "req-1",
		"quantity":  4,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestOrderCreateConflictsOnSecondOrder(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		CreateOrderFn: func(context.Context, *model.TireOrder) (*model.TireOrder, error) {
			return nil, domainErrors.ErrAlreadyExists
		},
	}
	handler := NewOrderHandler(facade)

	rec := performJSON(t, handler.Create, http.MethodPost, "/api/tire-orders", map[string]any{
		"requestId": "req-1",
		"quantity":  4,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestOrderRejectPassesReason(t *testing.T) {
	var gotReason string
	facade := &test.WorkflowFacadeStub{
		RejectOrderFn: func(_ context.Context, id, reason string) (*model.TireOrder, error) {
			gotReason = reason
			return &model.TireOrder{ID: id, Status: model.OrderStatusRejected}, nil
		},
	}
	handler := NewOrderHandler(facade)

	rec := performJSON(t, handler.Reject, http.MethodPut, "/api/tire-orders/ord-1/reject",
		map[string]string{"reason": "out of stock"}, idParam("ord-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotReason != "out of stock" {
		t.Fatalf("expected reason forwarded, got %q", gotReason)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		AuthenticateFn: func(context.Context, string, string) (*model.Employee, string, error) {
			return nil, "", domainErrors.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(facade)

	rec := performJSON(t, handler.Login, http.MethodPost, "/api/auth/login",
		map[string]string{"login": "user@example.com", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRegisterConflict(t *testing.T) {
	facade := &test.WorkflowFacadeStub{
		RegisterFn: func(context.Context, string, string, string, string) (*model.Employee, string, error) {
			return nil, "", domainErrors.ErrAlreadyExists
		},
	}
	handler := NewAuthHandler(facade)

	rec := performJSON(t, handler.Register, http.MethodPost, "/api/auth/register",
		map[string]string{"email": "user@example.com", "serviceNo": "EMP001", "password": "secret"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
