package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
	"github.com/infravue/infravue/pkg/config"
	"github.com/infravue/infravue/pkg/validator"
)

// SeedAdminUser creates the configured admin account when the user table
// is empty. With no configured password a random one is generated and
// logged once so a fresh deployment is reachable.
func (s *Service) SeedAdminUser(ctx context.Context, cfg config.SeedConfig) error {
	count, err := s.logic.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username, ok := validator.SanitizeUsername(cfg.AdminUsername)
	if cfg.AdminUsername == "" {
		username = "admin"
	} else if !ok {
		return fmt.Errorf("%w: admin username %q", common.ErrValidation, cfg.AdminUsername)
	}
	password := cfg.AdminPassword
	generated := false
	if password == "" {
		password = uuid.NewString()
		generated = true
	}

	admin := &model.User{
		Username: username,
		Role:     "admin",
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := s.logic.CreateUser(ctx, admin); err != nil {
		return err
	}

	if generated {
		log.Printf("[Seed] Created admin user %q with generated password %q", username, password)
	} else {
		log.Printf("[Seed] Created admin user %q", username)
	}
	return nil
}
