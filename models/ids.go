package models

import "github.com/google/uuid"

// assignID gives a new row a UUIDv7. v7 ids grow with creation time, so the
// id tie-break in listings follows insertion order.
func assignID(id *uuid.UUID) error {
	if *id != uuid.Nil {
		return nil
	}
	v7, err := uuid.NewV7()
	if err != nil {
		return err
	}
	*id = v7
	return nil
}
