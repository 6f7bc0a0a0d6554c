package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	financeapp "github.com/financetracking/backend/internal/application/finance"
	appgroup "github.com/financetracking/backend/internal/application/group"
	identityapp "github.com/financetracking/backend/internal/application/identity"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/financetracking/backend/internal/infrastructure/auth"
	"github.com/financetracking/backend/internal/infrastructure/cache"
	"github.com/financetracking/backend/internal/infrastructure/config"
	"github.com/financetracking/backend/internal/infrastructure/event"
	"github.com/financetracking/backend/internal/infrastructure/persistence"
	"github.com/financetracking/backend/internal/infrastructure/persistence/models"
	"github.com/financetracking/backend/internal/interfaces/http/dto"
	"github.com/financetracking/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testWebhookSecret = "test-webhook-secret"

// testEnv wires the full HTTP stack against an in-memory database
type testEnv struct {
	engine       *gin.Engine
	validator    *auth.TokenValidator
	db           *gorm.DB
	provisioning *identityapp.ProvisioningService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.GroupModel{},
		&models.MembershipModel{},
		&models.InvitationModel{},
		&models.HistoryEntryModel{},
		&models.CategoryModel{},
		&models.SellerModel{},
		&models.BudgetGoalModel{},
		&models.ReceiptModel{},
		&models.ReceiptItemModel{},
		&models.ProductDataModel{},
		&models.ProductCategoryModel{},
	))

	log := zap.NewNop()
	cfg := &config.Config{
		App: config.AppConfig{Name: "financetracking-backend", Env: "test"},
		JWT: config.JWTConfig{
			Secret:   "test-secret-test-secret-test-secret",
			Issuer:   "financetracking-oidc",
			Audience: "financetracking-backend",
		},
		Event: config.EventConfig{WebhookSecret: testWebhookSecret},
		HTTP:  config.HTTPConfig{MaxBodySize: 1 << 20},
	}

	groupRepo := persistence.NewGormGroupRepository(db)
	membershipRepo := persistence.NewGormMembershipRepository(db)
	invitationRepo := persistence.NewGormInvitationRepository(db)
	historyRepo := persistence.NewGormHistoryRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	groupService := appgroup.NewGroupService(scope, groupRepo, membershipRepo, historyRepo, userRepo, log)
	invitationService := appgroup.NewInvitationService(scope, groupRepo, membershipRepo, invitationRepo, userRepo, log)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	categoryService := financeapp.NewCategoryService(categoryRepo, log)
	sellerRepo := persistence.NewGormSellerRepository(db)
	sellerService := financeapp.NewSellerService(sellerRepo, log)
	budgetGoalService := financeapp.NewBudgetGoalService(persistence.NewGormBudgetGoalRepository(db), log)
	productRepo := persistence.NewGormProductRepository(db)
	receiptRepo := persistence.NewGormReceiptRepository(db)
	receiptService := financeapp.NewReceiptService(receiptRepo, sellerRepo, productRepo, categoryRepo, log)
	productService := financeapp.NewProductService(productRepo, categoryRepo, receiptRepo, log)

	provisioning := identityapp.NewProvisioningService(scope, userRepo, log)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	bus := event.NewInMemoryEventBus(log)
	for _, h := range event.WrapHandlersWithIdempotency([]shared.EventHandler{
		identityapp.NewUserCreatedHandler(provisioning),
		identityapp.NewUserDeletedHandler(provisioning),
	}, store, log) {
		bus.Subscribe(h)
	}

	validator := auth.NewTokenValidator(cfg.JWT)

	r := router.New(cfg, log, validator)
	r.RegisterPublic(NewSystemHandler(bus, cfg.Event.WebhookSecret, log))
	r.Register(
		NewGroupHandler(groupService),
		NewInvitationHandler(invitationService, groupService),
		NewCategoryHandler(categoryService, groupService),
		NewSellerHandler(sellerService, groupService),
		NewBudgetGoalHandler(budgetGoalService, groupService),
		NewReceiptHandler(receiptService, groupService),
		NewProductHandler(productService, groupService),
	)

	engine, err := r.Setup()
	require.NoError(t, err)

	return &testEnv{
		engine:       engine,
		validator:    validator,
		db:           db,
		provisioning: provisioning,
	}
}

// provisionUser mirrors a user the way a provider notification would
func (e *testEnv) provisionUser(t *testing.T, username, email string) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	require.NoError(t, e.provisioning.HandleUserCreated(context.Background(), userID, username, email))
	return userID
}

func (e *testEnv) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := e.validator.SignTestToken(userID, "test-user", time.Hour)
	require.NoError(t, err)
	return token
}

// do sends a request with an optional bearer token and JSON body
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the envelope's data field into out
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
}

// decodeError unmarshals the envelope's error field
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()

	var resp struct {
		Success bool          `json:"success"`
		Error   dto.ErrorInfo `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	return resp.Error
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
