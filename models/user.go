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

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a registered reader account. Only the bcrypt hash of the password
// is ever stored.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                 string             `bun:"id,pk,type:varchar(36)" json:"id"`
	Email              string             `bun:"email,notnull,unique" json:"email"`
	HashedPassword     string             `bun:"hashed_password,notnull" json:"-"`
	SoftwareExperience SoftwareExperience `bun:"software_experience,type:varchar(32)" json:"software_experience"`
	HardwareExperience HardwareExperience `bun:"hardware_experience,type:varchar(32)" json:"hardware_experience"`
	RoboticsKnowledge  RoboticsKnowledge  `bun:"robotics_knowledge,type:varchar(32)" json:"robotics_knowledge"`
	CreatedAt          time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// NewUser builds a user with a fresh identifier. The email is normalised to
// lower case; hashedPassword must already be hashed.
func NewUser(email, hashedPassword string) *User {
	return &User{
		ID:             uuid.NewString(),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the fields a row needs before it is inserted.
func (u *User) Validate() error {
	if u.ID == "" {
		return errors.New("user id must not be empty")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email address %q", u.Email)
	}
	if u.HashedPassword == "" {
		return errors.New("hashed password must not be empty")
	}
	if u.SoftwareExperience != "" && !u.SoftwareExperience.IsValid() {
		return fmt.Errorf("invalid software experience %q", u.SoftwareExperience)
	}
	if u.HardwareExperience != "" && !u.HardwareExperience.IsValid() {
		return fmt.Errorf("invalid hardware experience %q", u.HardwareExperience)
	}
	if u.RoboticsKnowledge != "" && !u.RoboticsKnowledge.IsValid() {
		return fmt.Errorf("invalid robotics knowledge %q", u.RoboticsKnowledge)
	}
	return nil
}
