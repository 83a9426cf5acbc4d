/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package model

import "strings"

// Person is the owner of an account. Accounts only reference it.
type Person struct {
	PersonID     string `json:"person_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
}

func NewPerson(firstName, lastName, email string) *Person {
	return &Person{
		PersonID:     GenerateUUIDWithSuffix("idt"),
		FirstName:    firstName,
		LastName:     lastName,
		EmailAddress: email,
	}
}

// FullName joins the non-empty name parts.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
