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

import "github.com/tomoncle/dbinit/types"

// SoftwareExperience is the self-reported software background of a user.
type SoftwareExperience string

const (
	SoftwareBeginner     SoftwareExperience = "beginner"
	SoftwareIntermediate SoftwareExperience = "intermediate"
	SoftwareAdvanced     SoftwareExperience = "advanced"
)

var _ types.BaseEnum = SoftwareExperience("")

// SoftwareExperiences lists every valid SoftwareExperience.
func SoftwareExperiences() []SoftwareExperience {
	return []SoftwareExperience{SoftwareBeginner, SoftwareIntermediate, SoftwareAdvanced}
}

func (e SoftwareExperience) IsValid() bool {
	_, ok := types.ParseEnum(string(e), SoftwareExperiences())
	return ok
}

func (e SoftwareExperience) String() string { return string(e) }

func (e SoftwareExperience) Desc() string {
	switch e {
	case SoftwareBeginner:
		return "Beginner"
	case SoftwareIntermediate:
		return "Intermediate"
	case SoftwareAdvanced:
		return "Advanced"
	default:
		return types.IllegalName
	}
}

// HardwareExperience describes the hardware a user has access to.
type HardwareExperience string

const (
	HardwareNone           HardwareExperience = "none"
	HardwareSimulationOnly HardwareExperience = "simulation_only"
	HardwareBasicKit       HardwareExperience = "basic_kit"
	HardwareFullLab        HardwareExperience = "full_lab"
)

var _ types.BaseEnum = HardwareExperience("")

// HardwareExperiences lists every valid HardwareExperience.
func HardwareExperiences() []HardwareExperience {
	return []HardwareExperience{HardwareNone, HardwareSimulationOnly, HardwareBasicKit, HardwareFullLab}
}

func (e HardwareExperience) IsValid() bool {
	_, ok := types.ParseEnum(string(e), HardwareExperiences())
	return ok
}

func (e HardwareExperience) String() string { return string(e) }

func (e HardwareExperience) Desc() string {
	switch e {
	case HardwareNone:
		return "No Hardware"
	case HardwareSimulationOnly:
		return "Simulation Only"
	case HardwareBasicKit:
		return "Basic Kit"
	case HardwareFullLab:
		return "Full Lab"
	default:
		return types.IllegalName
	}
}

// RoboticsKnowledge is the self-reported robotics background of a user.
type RoboticsKnowledge string

const (
	RoboticsBeginner     RoboticsKnowledge = "beginner"
	RoboticsIntermediate RoboticsKnowledge = "intermediate"
	RoboticsAdvanced     RoboticsKnowledge = "advanced"
)

var _ types.BaseEnum = RoboticsKnowledge("")

// RoboticsKnowledgeLevels lists every valid RoboticsKnowledge.
func RoboticsKnowledgeLevels() []RoboticsKnowledge {
	return []RoboticsKnowledge{RoboticsBeginner, RoboticsIntermediate, RoboticsAdvanced}
}

func (e RoboticsKnowledge) IsValid() bool {
	_, ok := types.ParseEnum(string(e), RoboticsKnowledgeLevels())
	return ok
}

func (e RoboticsKnowledge) String() string { return string(e) }

func (e RoboticsKnowledge) Desc() string {
	switch e {
	case RoboticsBeginner:
		return "Beginner"
	case RoboticsIntermediate:
		return "Intermediate"
	case RoboticsAdvanced:
		return "Advanced"
	default:
		return types.IllegalName
	}
}
