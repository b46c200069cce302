package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	domainLorry "farmtally-backend/internal/domain/lorry"
	"farmtally-backend/internal/domain/uow"
	"farmtally-backend/internal/testutil/lorrymock"
	"farmtally-backend/internal/testutil/uowmock"
	uc "farmtally-backend/internal/usecase/lorry"
)

func newLorryHandler(r uow.Repos, l *domainLorry.Lorry) *LorryHandler {
	return NewLorryHandler(uc.NewUsecase(uowmock.Passthrough(r, l)))
}

func TestCreateLorry_Created(t *testing.T) {
	e := newEchoWithValidator()
	r := uow.Repos{
		Lorries: &lorrymock.Repo{
			GetByPlateFn: func(ctx context.Context, orgID, plate string) (*domainLorry.Lorry, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
	}
	h := newLorryHandler(r, nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/lorries",
		mustJSON(map[string]any{"plate_number": "KA-01-AB-1234", "capacity_kg": "5000"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ActorContextKey, adminActor)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var got uc.LorryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(got.LorryID) != 32 {
		t.Fatalf("lorry id = %q, want 32 chars", got.LorryID)
	}
	if got.Status != string(domainLorry.StatusAvailable) {
		t.Fatalf("status = %s, want AVAILABLE", got.Status)
	}
}

func TestCreateLorry_MissingPlate(t *testing.T) {
	e := newEchoWithValidator()
	h := newLorryHandler(uow.Repos{}, nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/lorries", mustJSON(map[string]any{"capacity_kg": "5000"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ActorContextKey, adminActor)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(er.Details, "PlateNumber", "required") {
		t.Fatalf("missing field detail: %+v", er)
	}
}

func TestCreateLorry_ManagerForbidden(t *testing.T) {
	e := newEchoWithValidator()
	h := newLorryHandler(uow.Repos{}, nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/lorries",
		mustJSON(map[string]any{"plate_number": "KA-01-AB-1234"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ActorContextKey, managerActor)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestAssignLorry_OK(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLorry.Lorry{
		LorryID:        testLorry,
		OrganizationID: testOrg,
		Status:         domainLorry.StatusAvailable,
	}
	h := newLorryHandler(uow.Repos{Lorries: &lorrymock.Repo{}}, l)

	req := httptest.NewRequest(stdhttp.MethodPost, "/lorries/"+testLorry+"/assign",
		mustJSON(map[string]any{"manager_id": testManager}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("lorry_id")
	c.SetParamValues(testLorry)
	c.Set(ActorContextKey, adminActor)

	if err := h.Assign(c); err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var got uc.LorryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(domainLorry.StatusAssigned) {
		t.Fatalf("status = %s, want ASSIGNED", got.Status)
	}
	if got.AssignedManagerID != testManager {
		t.Fatalf("manager = %s, want %s", got.AssignedManagerID, testManager)
	}
}

func TestGetLorry_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	r := uow.Repos{
		Lorries: &lorrymock.Repo{
			GetByLorryIDFn: func(ctx context.Context, orgID, lorryID string) (*domainLorry.Lorry, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
	}
	h := newLorryHandler(r, nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/lorries/"+testLorry, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("lorry_id")
	c.SetParamValues(testLorry)
	c.Set(ActorContextKey, adminActor)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
