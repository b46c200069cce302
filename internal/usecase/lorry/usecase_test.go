package lorry

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"farmtally-backend/internal/domain/actor"
	"farmtally-backend/internal/domain/apperr"
	domainDelivery "farmtally-backend/internal/domain/delivery"
	domainLorry "farmtally-backend/internal/domain/lorry"
	"farmtally-backend/internal/domain/uow"
	"farmtally-backend/internal/testutil/deliverymock"
	"farmtally-backend/internal/testutil/lorrymock"
	"farmtally-backend/internal/testutil/uowmock"
)

const (
	testOrg     = "org00000000000000000000000000001"
	testManager = "mgr00000000000000000000000000001"
	testLorry   = "lry00000000000000000000000000001"
)

var (
	manager = actor.Actor{UserID: testManager, OrganizationID: testOrg, Role: actor.RoleFieldManager}
	admin   = actor.Actor{UserID: "adm00000000000000000000000000001", OrganizationID: testOrg, Role: actor.RoleFarmAdmin}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixture(status domainLorry.Status) *domainLorry.Lorry {
	return &domainLorry.Lorry{
		LorryID:           testLorry,
		OrganizationID:    testOrg,
		PlateNumber:       "KA-01-AB-1234",
		CapacityKg:        dec("5000"),
		Status:            status,
		AssignedManagerID: testManager,
	}
}

// ----- Create -----

func TestCreate_Success(t *testing.T) {
	var created *domainLorry.Lorry
	r := uow.Repos{
		Lorries: &lorrymock.Repo{
			GetByPlateFn: func(ctx context.Context, orgID, plate string) (*domainLorry.Lorry, error) {
				return nil, gorm.ErrRecordNotFound
			},
			CreateFn: func(ctx context.Context, l *domainLorry.Lorry) error { created = l; return nil },
		},
	}
	uc := NewUsecase(uowmock.Passthrough(r, nil))

	dto, err := uc.Create(context.Background(), admin, CreateInput{PlateNumber: "KA-01-AB-1234", CapacityKg: dec("5000")})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if created == nil {
		t.Fatal("expected repository create")
	}
	if len(created.LorryID) != 32 {
		t.Fatalf("lorry id %q, want 32 chars", created.LorryID)
	}
	if created.OrganizationID != testOrg {
		t.Fatalf("org = %s, want caller's", created.OrganizationID)
	}
	if dto.Status != string(domainLorry.StatusAvailable) {
		t.Fatalf("status = %s, want AVAILABLE", dto.Status)
	}
}

func TestCreate_DuplicatePlate(t *testing.T) {
	r := uow.Repos{
		Lorries: &lorrymock.Repo{
			GetByPlateFn: func(ctx context.Context, orgID, plate string) (*domainLorry.Lorry, error) {
				return fixture(domainLorry.StatusAvailable), nil
			},
		},
	}
	uc := NewUsecase(uowmock.Passthrough(r, nil))

	_, err := uc.Create(context.Background(), admin, CreateInput{PlateNumber: "KA-01-AB-1234", CapacityKg: dec("5000")})
	if !apperr.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCreate_ManagerForbidden(t *testing.T) {
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{}, nil))
	_, err := uc.Create(context.Background(), manager, CreateInput{PlateNumber: "KA-01-AB-1234", CapacityKg: dec("5000")})
	if !apperr.IsPermission(err) {
		t.Fatalf("want permission error, got %v", err)
	}
}

// ----- Assign / Unassign -----

func TestAssign_Success(t *testing.T) {
	l := fixture(domainLorry.StatusAvailable)
	l.AssignedManagerID = ""
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Lorries: &lorrymock.Repo{}}, l))

	dto, err := uc.Assign(context.Background(), admin, testLorry, testManager)
	if err != nil {
		t.Fatalf("Assign err: %v", err)
	}
	if dto.Status != string(domainLorry.StatusAssigned) || dto.AssignedManagerID != testManager {
		t.Fatalf("got %s/%s, want ASSIGNED/%s", dto.Status, dto.AssignedManagerID, testManager)
	}
}

func TestAssign_RejectsLoadedLorry(t *testing.T) {
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Lorries: &lorrymock.Repo{}}, fixture(domainLorry.StatusLoading)))
	_, err := uc.Assign(context.Background(), admin, testLorry, testManager)
	if !apperr.IsStateConflict(err) {
		t.Fatalf("want state conflict, got %v", err)
	}
}

func TestUnassign_Success(t *testing.T) {
	l := fixture(domainLorry.StatusAssigned)
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Lorries: &lorrymock.Repo{}}, l))

	dto, err := uc.Unassign(context.Background(), admin, testLorry)
	if err != nil {
		t.Fatalf("Unassign err: %v", err)
	}
	if dto.Status != string(domainLorry.StatusAvailable) || dto.AssignedManagerID != "" {
		t.Fatalf("got %s/%q, want AVAILABLE with no manager", dto.Status, dto.AssignedManagerID)
	}
}

func TestUnassign_SticksOnceLoading(t *testing.T) {
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Lorries: &lorrymock.Repo{}}, fixture(domainLorry.StatusLoading)))
	_, err := uc.Unassign(context.Background(), admin, testLorry)
	if !apperr.IsStateConflict(err) {
		t.Fatalf("want state conflict, got %v", err)
	}
}

// ----- Submit -----

func TestSubmit_MovesPendingToInProgress(t *testing.T) {
	var bulkFrom, bulkTo domainDelivery.Status
	r := uow.Repos{
		Lorries: &lorrymock.Repo{},
		Deliveries: &deliverymock.Repo{
			BulkTransitionFn: func(ctx context.Context, lorryID string, from, to domainDelivery.Status, at time.Time) error {
				bulkFrom, bulkTo = from, to
				return nil
			},
		},
	}
	l := fixture(domainLorry.StatusLoading)
	l.DeliveryCount = 3
	uc := NewUsecase(uowmock.Passthrough(r, l))

	dto, err := uc.Submit(context.Background(), manager, testLorry)
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if bulkFrom != domainDelivery.StatusPending || bulkTo != domainDelivery.StatusInProgress {
		t.Fatalf("bulk transition %s->%s, want PENDING->IN_PROGRESS", bulkFrom, bulkTo)
	}
	if dto.Status != string(domainLorry.StatusSubmitted) {
		t.Fatalf("status = %s, want SUBMITTED", dto.Status)
	}
}

func TestSubmit_RejectsEmptyLorry(t *testing.T) {
	l := fixture(domainLorry.StatusLoading)
	l.DeliveryCount = 0
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Lorries: &lorrymock.Repo{}, Deliveries: &deliverymock.Repo{}}, l))

	_, err := uc.Submit(context.Background(), manager, testLorry)
	if !apperr.IsStateConflict(err) {
		t.Fatalf("want state conflict, got %v", err)
	}
}

func TestSubmit_RejectsOtherManager(t *testing.T) {
	l := fixture(domainLorry.StatusLoading)
	l.AssignedManagerID = "someone-else"
	l.DeliveryCount = 1
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Lorries: &lorrymock.Repo{}, Deliveries: &deliverymock.Repo{}}, l))

	_, err := uc.Submit(context.Background(), manager, testLorry)
	if !apperr.IsPermission(err) {
		t.Fatalf("want permission error, got %v", err)
	}
}

func TestSubmit_AdminForbidden(t *testing.T) {
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{}, nil))
	_, err := uc.Submit(context.Background(), admin, testLorry)
	if !apperr.IsPermission(err) {
		t.Fatalf("want permission error, got %v", err)
	}
}

func TestSubmit_ResubmitSweepsLateAdds(t *testing.T) {
	bulkCalls := 0
	r := uow.Repos{
		Lorries: &lorrymock.Repo{},
		Deliveries: &deliverymock.Repo{
			BulkTransitionFn: func(ctx context.Context, lorryID string, from, to domainDelivery.Status, at time.Time) error {
				bulkCalls++
				return nil
			},
			CountByLorryAndStatusFn: func(ctx context.Context, lorryID string, status domainDelivery.Status) (int64, error) {
				return 0, nil
			},
		},
	}
	// Demoted run: already SUBMITTED, all priced again after the late add.
	l := fixture(domainLorry.StatusSubmitted)
	l.DeliveryCount = 3
	l.PricedCount = 3
	uc := NewUsecase(uowmock.Passthrough(r, l))

	dto, err := uc.Submit(context.Background(), manager, testLorry)
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if bulkCalls == 0 {
		t.Fatal("expected PENDING deliveries to be swept")
	}
	// Fully priced set flips straight to PROCESSED.
	if dto.Status != string(domainLorry.StatusProcessed) {
		t.Fatalf("status = %s, want PROCESSED", dto.Status)
	}
}

// ----- MarkSentToDealer -----

func TestMarkSentToDealer_CompletesRun(t *testing.T) {
	var froms []domainDelivery.Status
	r := uow.Repos{
		Lorries: &lorrymock.Repo{},
		Deliveries: &deliverymock.Repo{
			BulkTransitionFn: func(ctx context.Context, lorryID string, from, to domainDelivery.Status, at time.Time) error {
				froms = append(froms, from)
				if to != domainDelivery.StatusCompleted {
					t.Fatalf("bulk to = %s, want COMPLETED", to)
				}
				return nil
			},
		},
	}
	l := fixture(domainLorry.StatusProcessed)
	l.DeliveryCount = 2
	l.PricedCount = 2
	uc := NewUsecase(uowmock.Passthrough(r, l))

	dto, err := uc.MarkSentToDealer(context.Background(), admin, testLorry)
	if err != nil {
		t.Fatalf("MarkSentToDealer err: %v", err)
	}
	if dto.Status != string(domainLorry.StatusSentToDealer) {
		t.Fatalf("status = %s, want SENT_TO_DEALER", dto.Status)
	}
	if len(froms) != 2 {
		t.Fatalf("bulk transitions = %d, want 2 (PROCESSED and IN_PROGRESS sweeps)", len(froms))
	}
}

func TestMarkSentToDealer_RequiresProcessed(t *testing.T) {
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Lorries: &lorrymock.Repo{}, Deliveries: &deliverymock.Repo{}}, fixture(domainLorry.StatusSubmitted)))
	_, err := uc.MarkSentToDealer(context.Background(), admin, testLorry)
	if !apperr.IsStateConflict(err) {
		t.Fatalf("want state conflict, got %v", err)
	}
}

func TestMarkSentToDealer_ManagerForbidden(t *testing.T) {
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{}, nil))
	_, err := uc.MarkSentToDealer(context.Background(), manager, testLorry)
	if !apperr.IsPermission(err) {
		t.Fatalf("want permission error, got %v", err)
	}
}

// ----- Delete -----

func TestDelete_RejectsOpenDeliveries(t *testing.T) {
	r := uow.Repos{
		Lorries: &lorrymock.Repo{},
		Deliveries: &deliverymock.Repo{
			CountOpenByLorryFn: func(ctx context.Context, lorryID string) (int64, error) { return 2, nil },
		},
	}
	uc := NewUsecase(uowmock.Passthrough(r, fixture(domainLorry.StatusLoading)))

	err := uc.Delete(context.Background(), admin, testLorry)
	if !apperr.IsStateConflict(err) {
		t.Fatalf("want state conflict, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	deleted := false
	r := uow.Repos{
		Lorries: &lorrymock.Repo{
			DeleteFn: func(ctx context.Context, l *domainLorry.Lorry) error { deleted = true; return nil },
		},
		Deliveries: &deliverymock.Repo{
			CountOpenByLorryFn: func(ctx context.Context, lorryID string) (int64, error) { return 0, nil },
		},
	}
	uc := NewUsecase(uowmock.Passthrough(r, fixture(domainLorry.StatusSentToDealer)))

	if err := uc.Delete(context.Background(), admin, testLorry); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if !deleted {
		t.Fatal("expected repository delete")
	}
}

// ----- Get -----

func TestGet_NotFound(t *testing.T) {
	r := uow.Repos{
		Lorries: &lorrymock.Repo{
			GetByLorryIDFn: func(ctx context.Context, orgID, lorryID string) (*domainLorry.Lorry, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
	}
	uc := NewUsecase(uowmock.Passthrough(r, nil))

	_, err := uc.Get(context.Background(), admin, "missing")
	if !apperr.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}
