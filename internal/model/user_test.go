package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUser_JSONNeverContainsPasswordHash(t *testing.T) {
	u := User{
		Name:     "A",
		Email:    "a@x.com",
		Password: "$2a$12$abcdefghijklmnopqrstuv",
		Roles:    []Role{{Name: "customer"}},
	}
	u.ID = uuid.New()

	body, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(body)
	if strings.Contains(s, "password") || strings.Contains(s, "$2a$12$") {
		t.Errorf("serialized user leaked the credential hash: %s", s)
	}
	if !strings.Contains(s, "a@x.com") {
		t.Errorf("expected email in serialized user: %s", s)
	}
}

func TestUser_RoleNames(t *testing.T) {
	u := User{Roles: []Role{{Name: "admin"}, {Name: "customer"}}}
	names := u.RoleNames()
	if len(names) != 2 || names[0] != "admin" || names[1] != "customer" {
		t.Errorf("unexpected role names: %v", names)
	}
}

func TestBaseModel_BeforeCreateAssignsID(t *testing.T) {
	var b BaseModel
	if err := b.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if b.ID == uuid.Nil {
		t.Error("expected a generated UUID")
	}

	fixed := uuid.New()
	b2 := BaseModel{ID: fixed}
	if err := b2.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if b2.ID != fixed {
		t.Error("BeforeCreate must not overwrite an existing ID")
	}
}
