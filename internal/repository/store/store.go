package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/logger"
)

// Store defines the persistence collaborator: contact and incident
// bookkeeping plus a small settings key-value surface. The engine never
// assumes it is durable beyond what the host provides; reads fall back to
// defaults instead of crashing.
type Store interface {
	// Contacts lists all saved contacts in insertion order.
	Contacts(ctx context.Context) ([]beacon.Contact, error)
	// AddContact saves a contact. The caller validates it first.
	AddContact(ctx context.Context, contact beacon.Contact) error
	// RemoveContact deletes the contact with the given digits.
	// Removing an absent contact returns ErrNotFound.
	RemoveContact(ctx context.Context, phoneDigits string) error
	// AppendIncident stores one incident record.
	AppendIncident(ctx context.Context, incident *beacon.Incident) error
	// Incidents lists the most recent incidents, newest first.
	Incidents(ctx context.Context, limit int) ([]*beacon.Incident, error)
	// Setting reads a settings value, returning the default when the key
	// is absent or the read fails.
	Setting(ctx context.Context, key, fallback string) string
	// SetSetting writes a settings value.
	SetSetting(ctx context.Context, key, value string) error
	// Close releases the underlying database.
	Close() error
}

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// contactRow is the contacts table.
type contactRow struct {
	ID          uint   `gorm:"primaryKey"`
	DisplayName string `gorm:"column:display_name"`
	PhoneDigits string `gorm:"column:phone_digits;uniqueIndex"`
	CreatedAt   time.Time
}

// incidentRow is the incidents table.
type incidentRow struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Note      string
	Lat       *float64
	Lng       *float64
	Outcome   int
}

// settingRow is the settings key-value table.
type settingRow struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// SQLiteStore persists bookkeeping data in a local SQLite database.
type SQLiteStore struct {
	// db is the gorm handle.
	db *gorm.DB
}

// Open creates a store at the provided path, migrating the schema on first
// use. An empty path selects a shared in-memory database.
func Open(path string) (*SQLiteStore, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&contactRow{}, &incidentRow{}, &settingRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Contacts lists all saved contacts in insertion order.
func (s *SQLiteStore) Contacts(ctx context.Context) ([]beacon.Contact, error) {
	var rows []contactRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	contacts := make([]beacon.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, beacon.Contact{
			DisplayName: row.DisplayName,
			PhoneDigits: row.PhoneDigits,
		})
	}

	return contacts, nil
}

// AddContact saves a contact.
func (s *SQLiteStore) AddContact(ctx context.Context, contact beacon.Contact) error {
	row := contactRow{
		DisplayName: contact.DisplayName,
		PhoneDigits: contact.PhoneDigits,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save contact: %w", err)
	}

	return nil
}

// RemoveContact deletes the contact with the given digits.
func (s *SQLiteStore) RemoveContact(ctx context.Context, phoneDigits string) error {
	result := s.db.WithContext(ctx).Where("phone_digits = ?", phoneDigits).Delete(&contactRow{})
	if result.Error != nil {
		return fmt.Errorf("remove contact: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AppendIncident stores one incident record.
func (s *SQLiteStore) AppendIncident(ctx context.Context, incident *beacon.Incident) error {
	row := incidentRow{
		ID:        incident.ID,
		CreatedAt: incident.Timestamp,
		Note:      incident.Note,
		Outcome:   int(incident.Outcome),
	}

	if incident.Coordinate != nil {
		lat, lng := incident.Coordinate.Lat, incident.Coordinate.Lng
		row.Lat, row.Lng = &lat, &lng
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save incident: %w", err)
	}

	return nil
}

// Incidents lists the most recent incidents, newest first.
func (s *SQLiteStore) Incidents(ctx context.Context, limit int) ([]*beacon.Incident, error) {
	query := s.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []incidentRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	incidents := make([]*beacon.Incident, 0, len(rows))
	for _, row := range rows {
		incident := &beacon.Incident{
			ID:        row.ID,
			Timestamp: row.CreatedAt,
			Note:      row.Note,
			Outcome:   beacon.DispatchOutcome(row.Outcome),
		}

		if row.Lat != nil && row.Lng != nil {
			incident.Coordinate = &beacon.Coordinate{Lat: *row.Lat, Lng: *row.Lng}
		}

		incidents = append(incidents, incident)
	}

	return incidents, nil
}

// Setting reads a settings value, falling back to the default when the key
// is absent or the read fails. A failed read is logged, never propagated.
func (s *SQLiteStore) Setting(ctx context.Context, key, fallback string) string {
	var row settingRow

	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	switch {
	case err == nil:
		return row.Value
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fallback
	default:
		logger.WarnKV(ctx, "Settings read failed, using default", "key", key, "error", err)
		return fallback
	}
}

// SetSetting writes a settings value.
func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	row := settingRow{Key: key, Value: value}

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("save setting: %w", err)
	}

	return nil
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}

	return db.Close()
}
