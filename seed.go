/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dbinit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tomoncle/dbinit/database"
	"github.com/tomoncle/dbinit/models"
	"github.com/tomoncle/dbinit/password"
	"github.com/tomoncle/dbinit/prompt"
	"github.com/tomoncle/dbinit/repository"
)

const (
	DefaultSeedEmail    = "test@example.com"
	DefaultSeedPassword = "test123"
)

var (
	// ErrDuplicateEmail is returned when the seed account's email is taken.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrNoPrompter is returned when confirmation is needed but nobody can be asked.
	ErrNoPrompter = errors.New("interactive confirmation required but no prompter is configured")
)

// SeedOptions controls how the test account is created.
type SeedOptions struct {
	// AssumeYes skips confirmation and the email and password questions.
	AssumeYes bool
	Email     string
	Password  string
	Prompter  prompt.Prompter
}

// SeedResult reports what Seed did. User is nil when nothing was created.
type SeedResult struct {
	User    *models.User
	Skipped bool
	Reason  string
}

// Seeder creates a test account in an empty users table.
type Seeder struct {
	Engine   *database.Engine
	Reporter *Reporter
	Logger   database.Logger
}

// NewSeeder returns a Seeder reporting to reporter.
func NewSeeder(engine *database.Engine, reporter *Reporter) *Seeder {
	return &Seeder{Engine: engine, Reporter: reporter, Logger: engine.Logger()}
}

// Seed creates one test account if, and only if, no users exist yet.
func (s *Seeder) Seed(ctx context.Context, opts SeedOptions) (*SeedResult, error) {
	if s.Engine == nil {
		return nil, database.ErrEngineClosed
	}
	r := s.Reporter
	if r == nil {
		r = NewReporter(io.Discard)
	}
	logger := s.Logger
	if logger == nil {
		logger = s.Engine.Logger()
	}

	count, err := CountUsers(ctx, s.Engine)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		logger.Debug("Users present, test account not created", "users", count)
		return &SeedResult{Skipped: true, Reason: fmt.Sprintf("%d users already exist", count)}, nil
	}

	email, plain, proceed, err := s.collect(opts)
	if err != nil {
		return nil, err
	}
	if !proceed {
		return &SeedResult{Skipped: true, Reason: "declined by operator"}, nil
	}

	r.Section("Creating test user...")
	hashed, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	user := models.NewUser(email, hashed)
	user.SoftwareExperience = models.SoftwareIntermediate
	user.HardwareExperience = models.HardwareSimulationOnly
	user.RoboticsKnowledge = models.RoboticsBeginner
	if err := user.Validate(); err != nil {
		return nil, err
	}

	err = s.Engine.WithSession(ctx, func(session *database.Session) error {
		db, err := session.DB(ctx)
		if err != nil {
			return err
		}
		if err := repository.NewRepository[models.User](db).Create(ctx, user); err != nil {
			if _, kind := database.IsSqlError(err); kind == database.DuplicateKeyErr {
				return fmt.Errorf("%w: %s", ErrDuplicateEmail, user.Email)
			}
			return fmt.Errorf("failed to insert test user: %w", err)
		}
		return session.Commit()
	})
	if err != nil {
		return nil, err
	}

	r.Success("Test user created!")
	r.Detail("Email: %s", user.Email)
	r.Detail("User ID: %s", user.ID)
	logger.Info("Test user created", "email", user.Email, "id", user.ID)
	return &SeedResult{User: user}, nil
}

// collect resolves the account details, asking the operator where allowed.
func (s *Seeder) collect(opts SeedOptions) (email, plain string, proceed bool, err error) {
	email, plain = opts.Email, opts.Password
	if opts.AssumeYes {
		if email == "" {
			email = DefaultSeedEmail
		}
		if plain == "" {
			plain = DefaultSeedPassword
		}
		return email, plain, true, nil
	}
	if opts.Prompter == nil {
		return "", "", false, ErrNoPrompter
	}

	ok, err := opts.Prompter.Confirm("\nNo users found. Create test user?")
	if err != nil || !ok {
		return "", "", false, err
	}
	if email == "" {
		if email, err = opts.Prompter.Ask("Email", DefaultSeedEmail); err != nil {
			return "", "", false, err
		}
	}
	if plain == "" {
		if plain, err = opts.Prompter.AskSecret("Password", DefaultSeedPassword); err != nil {
			return "", "", false, err
		}
	}
	return email, plain, true, nil
}
