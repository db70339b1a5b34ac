package service

import (
	"barber-pos-api/internal/repository"

	"github.com/google/uuid"
)

func mapNotFound(err error, target *Error) error {
	if err != nil && repository.IsNotFound(err) {
		return target
	}
	return err
}

func mapDuplicate(err error, target *Error) error {
	if err != nil && repository.IsDuplicate(err) {
		return target
	}
	return err
}

func mapForeignKey(err error, target *Error) error {
	if err != nil && repository.IsForeignKey(err) {
		return target
	}
	return err
}

// idPayload is the payload of delete events.
func idPayload(id uuid.UUID) map[string]string {
	return map[string]string{"id": id.String()}
}
