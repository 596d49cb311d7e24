// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// Name holds the combined display name ("<first> <last>"); the store has no
// separate first/last columns, so splitting happens at the usecase layer.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // The user's primary contact email, unique across accounts.
	Name         string    // The user's combined display name.
	PasswordHash string    // Salted bcrypt hash of the user's password. Never leaves the credential flow.
	Role         Role      // The user's role. Read-only from the self-service flows.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}
