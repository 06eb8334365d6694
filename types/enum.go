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

package types

// IllegalName is the String value of an enum that holds no known member.
const IllegalName = "unknown"

// BaseEnum is the contract shared by the string enums stored in the database.
type BaseEnum interface {
	IsValid() bool
	String() string
	Desc() string
}

// ParseEnum returns the member of values whose String matches s.
func ParseEnum[E BaseEnum](s string, values []E) (E, bool) {
	for _, v := range values {
		if v.String() == s {
			return v, true
		}
	}
	var zero E
	return zero, false
}
