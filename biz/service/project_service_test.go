package service

import (
	"context"
	"errors"
	"testing"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
	"github.com/infravue/infravue/pkg/config"
)

func TestCreateProjectValidatesName(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	if _, err := env.svc.CreateProject(ctx, env.alice.ID, "   ", ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	project, err := env.svc.CreateProject(ctx, env.alice.ID, "  padded  ", "  desc  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Name != "padded" || project.Description != "desc" {
		t.Fatalf("fields not trimmed: %+v", project)
	}
	if project.OwnerID != env.alice.ID {
		t.Fatalf("wrong owner: %d", project.OwnerID)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project := env.createProject(t, env.alice.ID, "photos")
	env.upload(t, env.alice.ID, project.ID, "a.png", []byte("a"))
	env.upload(t, env.alice.ID, project.ID, "b.png", []byte("b"))

	t.Run("Unauthorized", func(t *testing.T) {
		err := env.svc.DeleteProject(ctx, env.bob.ID, project.ID)
		if !errors.Is(err, common.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("Cascade", func(t *testing.T) {
		if err := env.svc.DeleteProject(ctx, env.alice.ID, project.ID); err != nil {
			t.Fatalf("delete project: %v", err)
		}

		if env.fileExists(t, project.ID, "a.png") || env.fileExists(t, project.ID, "b.png") {
			t.Fatalf("files survived cascade")
		}
		var images int64
		env.db.Model(&model.Image{}).Where("project_id = ?", project.ID).Count(&images)
		if images != 0 {
			t.Fatalf("image records survived cascade: %d", images)
		}
		if _, err := env.svc.logic.GetProject(ctx, project.ID); !errors.Is(err, common.ErrNotFound) {
			t.Fatalf("project record survived: %v", err)
		}
	})
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	p1 := env.createProject(t, env.alice.ID, "one")
	p2 := env.createProject(t, env.alice.ID, "two")
	env.createProject(t, env.bob.ID, "bobs")
	env.upload(t, env.alice.ID, p1.ID, "a.png", []byte("a"))
	env.upload(t, env.alice.ID, p2.ID, "b.png", []byte("b"))

	dash, err := env.svc.GetDashboard(ctx, env.alice.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(dash.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(dash.Projects))
	}
	if len(dash.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(dash.Images))
	}

	empty, err := env.svc.GetDashboard(ctx, 9999)
	if err != nil {
		t.Fatalf("empty dashboard: %v", err)
	}
	if len(empty.Projects) != 0 || len(empty.Images) != 0 {
		t.Fatalf("expected empty dashboard, got %+v", empty)
	}
}

func TestSeedAdminUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// Users already exist in the fixture, so the seed is a no-op.
	if err := env.svc.SeedAdminUser(ctx, config.SeedConfig{AdminUsername: "root"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := env.svc.logic.GetUserByUsername(ctx, "root"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("seed ran on a populated table: %v", err)
	}

	// On an empty table the admin is created with the configured password.
	env.db.Exec("DELETE FROM user")
	if err := env.svc.SeedAdminUser(ctx, config.SeedConfig{AdminUsername: "root", AdminPassword: "hunter2"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	admin, err := env.svc.logic.GetUserByUsername(ctx, "root")
	if err != nil {
		t.Fatalf("lookup admin: %v", err)
	}
	if admin.Role != "admin" {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
	if !admin.CheckPassword("hunter2") {
		t.Fatalf("password mismatch")
	}

	// Malformed configured usernames are rejected instead of created.
	env.db.Exec("DELETE FROM user")
	err = env.svc.SeedAdminUser(ctx, config.SeedConfig{AdminUsername: "Not A Name!"})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad username, got %v", err)
	}
}
