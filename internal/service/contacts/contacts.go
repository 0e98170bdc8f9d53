package contacts

import (
	"context"
	"fmt"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/logger"
	"github.com/oshokin/sos-beacon/internal/repository/store"
)

// Service manages the alert recipient list. Validation happens here, at the
// boundary: a contact that fails the digits invariant never enters the store.
type Service struct {
	// store is the persistence collaborator.
	store store.Store
}

// NewService creates a contact service over the provided store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Add validates, normalizes and saves a contact, returning the stored form.
// Input without any digit is rejected with beacon.ErrInvalidInput.
func (s *Service) Add(ctx context.Context, displayName, rawPhone string) (beacon.Contact, error) {
	contact, err := beacon.NewContact(displayName, rawPhone)
	if err != nil {
		return beacon.Contact{}, err
	}

	if err := s.store.AddContact(ctx, contact); err != nil {
		return beacon.Contact{}, fmt.Errorf("add contact: %w", err)
	}

	logger.InfoKV(ctx, "Contact added", "name", contact.Label(), "digits", contact.PhoneDigits)

	return contact, nil
}

// List returns all contacts in insertion order.
func (s *Service) List(ctx context.Context) ([]beacon.Contact, error) {
	contacts, err := s.store.Contacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

// Remove deletes the contact with the given phone. The input is normalized
// first, so the formatted number used at add time works here too.
func (s *Service) Remove(ctx context.Context, rawPhone string) error {
	digits := beacon.NormalizePhone(rawPhone)
	if digits == "" {
		return fmt.Errorf("phone %q has no digits: %w", rawPhone, beacon.ErrInvalidInput)
	}

	if err := s.store.RemoveContact(ctx, digits); err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}

	logger.InfoKV(ctx, "Contact removed", "digits", digits)

	return nil
}
