package store

import (
	"context"         // Context for store operations
	"crypto/sha256"   // Password digest
	"encoding/hex"    // Hex encoding of the digest
	"errors"          // Error matching
	"fmt"             // Error wrapping and username formatting
	"nexacare/internal/domain" // Importing domain models
	"sync"            // Mutex guarding username allocation
	"time"            // Year component of generated usernames

	"gorm.io/gorm" // GORM ORM library
)

// Store owns the accounts table. It is constructed once and injected into
// the flows; safe for concurrent callers.
type Store struct {
	db  *gorm.DB         // Database handle
	mu  sync.Mutex       // Serializes username allocation + insert
	now func() time.Time // Clock, replaceable in tests
}

// New creates a Store over an open GORM handle
func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// HashPassword returns the SHA-256 hex digest stored in place of the
// plaintext. Deterministic: the login compare recomputes it.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password)) // One-way digest
	return hex.EncodeToString(sum[:])      // Fixed-length hex string
}

// Init establishes the accounts table if absent. Idempotent.
func (s *Store) Init(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&domain.Account{}); err != nil {
		// Backing store cannot be reached or schema cannot be created
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// NextUsername computes the next sequential username for a role:
// <4-digit-year><role-letter><4-digit-sequence>, e.g. 2025D0001.
func (s *Store) NextUsername(ctx context.Context, role domain.Role) (string, error) {
	if !role.Valid() {
		return "", ErrInvalidRole // Reject before touching storage
	}
	var username string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		username, err = s.nextUsername(tx, role) // Count rows for the role
		return err
	})
	if err != nil {
		return "", err
	}
	return username, nil
}

// nextUsername runs the count inside the caller's transaction so AddAccount
// can make the count-then-insert atomic.
func (s *Store) nextUsername(tx *gorm.DB, role domain.Role) (string, error) {
	var count int64 // Existing accounts with this role
	if err := tx.Model(&domain.Account{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	year := s.now().Year() // Current 4-digit year
	return fmt.Sprintf("%d%s%04d", year, role.Letter(), count+1), nil
}

// AddAccount validates the role, allocates the next username, hashes the
// password, and inserts the row. The allocation and insert run as one
// mutex-guarded transaction so two concurrent registrations for the same
// role cannot compute the same sequence number.
func (s *Store) AddAccount(ctx context.Context, name, password string, role domain.Role) (*domain.Account, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole // No insert is performed
	}
	s.mu.Lock() // One allocation at a time
	defer s.mu.Unlock()

	account := &domain.Account{
		PasswordHash: HashPassword(password), // Never store the plaintext
		Role:         role,                   // Immutable after creation
		Name:         name,                   // Display name
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		username, err := s.nextUsername(tx, role) // Count inside the insert transaction
		if err != nil {
			return err
		}
		account.Username = username
		// Insert; the unique index on username is the backstop against
		// a duplicate slipping past the mutex (e.g. a second process)
		return tx.Create(account).Error
	})
	if err != nil {
		return nil, classify(err) // All-or-nothing: the transaction rolled back
	}
	return account, nil
}

// FindByUsername returns the matching account or ErrNotFound
func (s *Store) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account // Fetch account from database
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return nil, classify(err)
	}
	return &account, nil
}

// UpdatePassword recomputes the hash and overwrites it for the matching row.
// Idempotent for a repeated new password; ErrNotFound when no row matches.
func (s *Store) UpdatePassword(ctx context.Context, username, newPassword string) error {
	var account domain.Account // Locate the row first so a miss is reported as ErrNotFound
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		return classify(err)
	}
	err := s.db.WithContext(ctx).Model(&account).
		Update("password", HashPassword(newPassword)).Error // Single-row overwrite
	if err != nil {
		return classify(err)
	}
	return nil
}

// classify maps driver-level failures into the store's error taxonomy so
// callers never inspect storage-engine error codes.
func classify(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateUsername
	case errors.Is(err, ErrStorage), errors.Is(err, ErrInvalidRole):
		return err // Already classified
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}
