package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"

	"github.com/skillsenselab/equiphub/internal/auth/password"
	"github.com/skillsenselab/equiphub/internal/database"
	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/logger"
	"github.com/skillsenselab/equiphub/internal/model"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	cfg := database.Config{MaxOpenConns: 1, MaxIdleConns: 1}
	db, err := database.OpenDialector(context.Background(), sqlite.Open(":memory:"), cfg, logger.NewDefault("repository-test"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.AutoMigrate(&model.User{}, &model.Role{}, &model.Contract{}, &model.Equipment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestHasher(t *testing.T) password.Hasher {
	t.Helper()
	return password.NewBcryptHasher(password.WithCost(4))
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func TestUserRepositoryCreateHashesCredential(t *testing.T) {
	db := newTestDB(t)
	hasher := newTestHasher(t)
	repo := NewUserRepository(db, hasher)
	ctx := context.Background()

	user := &model.User{Name: "Ana", Email: "ana@example.com", Password: "secret1"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := repo.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored == nil {
		t.Fatal("expected stored user")
	}
	if stored.Password == "secret1" {
		t.Fatal("credential stored in plaintext")
	}
	if err := hasher.Verify("secret1", stored.Password); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, newTestHasher(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &model.User{Name: "Ana", Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &model.User{Name: "Other", Email: "ana@example.com", Password: "secret2"})
	if !apperrors.HasCode(err, apperrors.ErrCodeAlreadyExists) {
		t.Fatalf("expected %s, got %v", apperrors.ErrCodeAlreadyExists, err)
	}
}

func TestUserRepositoryFindMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, newTestHasher(t))

	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestUserRepositoryUpdateRehashesOnlyNewCredential(t *testing.T) {
	db := newTestDB(t)
	hasher := newTestHasher(t)
	repo := NewUserRepository(db, hasher)
	ctx := context.Background()

	user := &model.User{Name: "Ana", Email: "ana@example.com", Password: "secret1"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	originalHash := user.Password

	// No credential supplied: hash stays as is.
	updated, err := repo.Update(ctx, user.ID, &model.User{Name: "Ana Maria"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Ana Maria" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Password != originalHash {
		t.Fatal("hash changed without a new credential")
	}

	// Rewriting the stored hash itself must not rehash it.
	updated, err = repo.Update(ctx, user.ID, &model.User{Password: originalHash})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Password != originalHash {
		t.Fatal("stored hash was rehashed")
	}

	// A new plaintext replaces the hash.
	updated, err = repo.Update(ctx, user.ID, &model.User{Password: "another7"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Password == originalHash {
		t.Fatal("hash unchanged after new credential")
	}
	if err := hasher.Verify("another7", updated.Password); err != nil {
		t.Fatalf("new hash does not verify: %v", err)
	}
}

func TestUserRepositoryUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, newTestHasher(t))

	updated, err := repo.Update(context.Background(), newUUID(t), &model.User{Name: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != nil {
		t.Fatal("expected nil for missing user")
	}
}

func TestUserRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, newTestHasher(t))
	ctx := context.Background()

	user := &model.User{Name: "Ana", Email: "ana@example.com", Password: "secret1"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := repo.Delete(ctx, user.ID)
	if err != nil || !deleted {
		t.Fatalf("delete = (%v, %v), want (true, nil)", deleted, err)
	}
	deleted, err = repo.Delete(ctx, user.ID)
	if err != nil || deleted {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestRoleRepositoryFindByNames(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	for _, name := range []string{"admin", "customer", "moderator"} {
		if err := repo.Create(ctx, &model.Role{Name: name}); err != nil {
			t.Fatalf("create role %s: %v", name, err)
		}
	}

	roles, err := repo.FindByNames(ctx, []string{"admin", "customer", "ghost"})
	if err != nil {
		t.Fatalf("find by names: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	found := map[string]bool{}
	for _, r := range roles {
		found[r.Name] = true
	}
	if !found["admin"] || !found["customer"] {
		t.Fatalf("unexpected role set: %v", found)
	}
}

func TestContractRepositoryAddEquipment(t *testing.T) {
	db := newTestDB(t)
	contracts := NewContractRepository(db)
	equipment := NewEquipmentRepository(db)
	ctx := context.Background()

	contract := &model.Contract{
		CustomerID:     "cust-1",
		ContractNumber: "CN-001",
		StartDate:      time.Now(),
		EndDate:        time.Now().AddDate(1, 0, 0),
		MonthlyCost:    99.90,
	}
	if err := contracts.Create(ctx, contract); err != nil {
		t.Fatalf("create contract: %v", err)
	}
	if contract.Active == nil || !*contract.Active {
		t.Fatal("contract not active by default")
	}

	drill := &model.Equipment{
		Name: "Drill", Type: "tool", Brand: "Bosch", Model: "GSB-13",
		Description: "Impact drill", Price: 120, Stock: 4,
		WarrantyPeriod: "24 months", ReleaseDate: time.Now(),
	}
	if err := equipment.Create(ctx, drill); err != nil {
		t.Fatalf("create equipment: %v", err)
	}

	got, err := contracts.AddEquipment(ctx, contract.ID, drill.ID)
	if err != nil {
		t.Fatalf("add equipment: %v", err)
	}
	if len(got.Equipments) != 1 || got.Equipments[0].ID != drill.ID {
		t.Fatalf("equipment not linked: %+v", got.Equipments)
	}

	_, err = contracts.AddEquipment(ctx, contract.ID, newUUID(t))
	if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Fatalf("expected %s for missing equipment, got %v", apperrors.ErrCodeNotFound, err)
	}
	_, err = contracts.AddEquipment(ctx, newUUID(t), drill.ID)
	if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Fatalf("expected %s for missing contract, got %v", apperrors.ErrCodeNotFound, err)
	}
}

func TestContractRepositoryUpdateActiveFlag(t *testing.T) {
	db := newTestDB(t)
	contracts := NewContractRepository(db)
	ctx := context.Background()

	contract := &model.Contract{
		CustomerID:     "cust-1",
		ContractNumber: "CN-002",
		StartDate:      time.Now(),
		EndDate:        time.Now().AddDate(0, 6, 0),
		MonthlyCost:    45,
	}
	if err := contracts.Create(ctx, contract); err != nil {
		t.Fatalf("create contract: %v", err)
	}

	inactive := false
	updated, err := contracts.Update(ctx, contract.ID, &model.Contract{Active: &inactive})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Active == nil || *updated.Active {
		t.Fatal("active flag not cleared")
	}
	// An update without the flag leaves it untouched.
	updated, err = contracts.Update(ctx, contract.ID, &model.Contract{MonthlyCost: 50})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Active == nil || *updated.Active {
		t.Fatal("active flag flipped by unrelated update")
	}
	if updated.MonthlyCost != 50 {
		t.Fatalf("monthly cost not updated: %v", updated.MonthlyCost)
	}
}

func TestEquipmentRepositoryUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &model.Equipment{
		Name: "Saw", Type: "tool", Brand: "Makita", Model: "HS-7601",
		Description: "Circular saw", Price: 150, Stock: 2,
		WarrantyPeriod: "12 months", ReleaseDate: time.Now(),
		Specifications: map[string]any{"power": "1200W"},
	}
	if err := repo.Create(ctx, eq); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, eq.ID, &model.Equipment{Stock: 5})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stock != 5 {
		t.Fatalf("stock = %d, want 5", updated.Stock)
	}
	if updated.Name != "Saw" {
		t.Fatalf("unrelated field changed: %q", updated.Name)
	}

	deleted, err := repo.Delete(ctx, eq.ID)
	if err != nil || !deleted {
		t.Fatalf("delete = (%v, %v), want (true, nil)", deleted, err)
	}
	got, err := repo.FindByID(ctx, eq.ID)
	if err != nil {
		t.Fatalf("find after delete: %v", err)
	}
	if got != nil {
		t.Fatal("equipment still present after delete")
	}
}
