package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"

	"github.com/skillsenselab/equiphub/internal/auth"
	"github.com/skillsenselab/equiphub/internal/auth/password"
	"github.com/skillsenselab/equiphub/internal/auth/token"
	"github.com/skillsenselab/equiphub/internal/database"
	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/logger"
	"github.com/skillsenselab/equiphub/internal/model"
	"github.com/skillsenselab/equiphub/internal/repository"
)

// testEnv wires the CRUD surface against an in-memory database, protected
// by the real identity middleware, the way the service assembles it.
type testEnv struct {
	router *gin.Engine
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := database.Config{MaxOpenConns: 1, MaxIdleConns: 1}
	db, err := database.OpenDialector(context.Background(), sqlite.Open(":memory:"), cfg, logger.NewDefault("handler-test"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.AutoMigrate(&model.User{}, &model.Role{}, &model.Contract{}, &model.Equipment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hasher := password.NewBcryptHasher(password.WithCost(4))
	tokens, err := token.NewService(token.Config{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	users := repository.NewUserRepository(db, hasher)
	roles := repository.NewRoleRepository(db)
	resolver := auth.NewRoleResolver(roles, logger.NewDefault("handler-test"))

	ctx := context.Background()
	if err := roles.Create(ctx, &model.Role{Name: model.DefaultRoleName}); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	caller := &model.User{Name: "Caller", Email: "caller@example.com", Password: "secret1"}
	if err := users.Create(ctx, caller); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	signed, err := tokens.Issue(caller.ID.String(), caller.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	r := gin.New()
	protected := r.Group("/", auth.Middleware(tokens, users))
	NewUserHandler(users, resolver).RegisterRoutes(protected)
	NewRoleHandler(roles).RegisterRoutes(protected)
	NewContractHandler(repository.NewContractRepository(db)).RegisterRoutes(protected)
	NewEquipmentHandler(repository.NewEquipmentRepository(db)).RegisterRoutes(protected)

	return &testEnv{router: r, token: signed}
}

func (e *testEnv) do(t *testing.T, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return body
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/roles"},
		{http.MethodGet, "/contracts"},
		{http.MethodGet, "/equipments"},
		{http.MethodPost, "/equipments"},
	}
	for _, p := range paths {
		w := env.do(t, p.method, p.path, "", false)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", p.method, p.path, w.Code)
		}
		if !strings.Contains(w.Body.String(), string(apperrors.ErrCodeMissingToken)) {
			t.Fatalf("%s %s: body = %s", p.method, p.path, w.Body.String())
		}
	}
}

func TestEquipmentCRUD(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/equipments", `{
		"name":"Drill","type":"tool","brand":"Bosch","model":"GSB-13",
		"description":"Impact drill","price":120.5,"stock":4,
		"warrantyPeriod":"24 months","releaseDate":"2024-03-01T00:00:00Z",
		"specifications":{"power":"750W"}
	}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d (%s)", w.Code, w.Body.String())
	}
	created := decodeObject(t, w)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("created equipment has no id")
	}

	w = env.do(t, http.MethodGet, "/equipments/"+id, "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d", w.Code)
	}

	w = env.do(t, http.MethodPut, "/equipments/"+id, `{"stock":9}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d (%s)", w.Code, w.Body.String())
	}
	if updated := decodeObject(t, w); updated["stock"] != float64(9) {
		t.Fatalf("stock = %v, want 9", updated["stock"])
	}

	w = env.do(t, http.MethodDelete, "/equipments/"+id, "", true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/equipments/"+id, "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", w.Code)
	}
}

func TestEquipmentCreateRejectsIncompleteBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/equipments", `{"name":"Drill"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (%s)", w.Code, w.Body.String())
	}
}

func TestContractAddEquipmentEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/contracts", `{
		"customerId":"cust-1","contractNumber":"CN-001",
		"startDate":"2025-01-01T00:00:00Z","endDate":"2026-01-01T00:00:00Z",
		"monthlyCost":99.9
	}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create contract: %d (%s)", w.Code, w.Body.String())
	}
	contract := decodeObject(t, w)
	contractID, _ := contract["id"].(string)
	if active, ok := contract["active"].(bool); !ok || !active {
		t.Fatalf("active = %v, want true", contract["active"])
	}

	w = env.do(t, http.MethodPost, "/equipments", `{
		"name":"Drill","type":"tool","brand":"Bosch","model":"GSB-13",
		"description":"Impact drill","price":120,"stock":4,
		"warrantyPeriod":"24 months","releaseDate":"2024-03-01T00:00:00Z"
	}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create equipment: %d (%s)", w.Code, w.Body.String())
	}
	equipmentID, _ := decodeObject(t, w)["id"].(string)

	w = env.do(t, http.MethodPut, "/contracts/"+contractID+"/add-equipment",
		`{"equipmentId":"`+equipmentID+`"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("add equipment: %d (%s)", w.Code, w.Body.String())
	}
	linked := decodeObject(t, w)
	equipments, _ := linked["equipments"].([]any)
	if len(equipments) != 1 {
		t.Fatalf("equipments = %v, want one entry", linked["equipments"])
	}

	// Unknown equipment id is a 404, not a silent no-op.
	w = env.do(t, http.MethodPut, "/contracts/"+contractID+"/add-equipment",
		`{"equipmentId":"00000000-0000-0000-0000-000000000001"}`, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing equipment: %d (%s)", w.Code, w.Body.String())
	}
}

func TestUserCreateResolvesRoles(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/users",
		`{"name":"Ana","email":"ana@example.com","password":"secret1"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d (%s)", w.Code, w.Body.String())
	}
	created := decodeObject(t, w)
	if _, leaked := created["password"]; leaked {
		t.Fatal("response contains the credential")
	}
	roles, _ := created["roles"].([]any)
	if len(roles) != 1 {
		t.Fatalf("roles = %v, want the default role", created["roles"])
	}

	w = env.do(t, http.MethodPost, "/users",
		`{"name":"Ghost","email":"g@example.com","password":"secret1","roles":["ghost"]}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown role: %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Role not found") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestUserGetInvalidID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/users/not-a-uuid", "", true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), string(apperrors.ErrCodeInvalidFormat)) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRoleCRUD(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/roles", `{"name":"admin","permissions":["users:write"]}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d (%s)", w.Code, w.Body.String())
	}
	id, _ := decodeObject(t, w)["id"].(string)

	w = env.do(t, http.MethodPut, "/roles/"+id, `{"name":"administrator"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d (%s)", w.Code, w.Body.String())
	}
	if updated := decodeObject(t, w); updated["name"] != "administrator" {
		t.Fatalf("name = %v", updated["name"])
	}

	w = env.do(t, http.MethodDelete, "/roles/"+id, "", true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}
}
