// Package candidates provides database operations for candidate profiles.
//
// The Repository implements importers.Store, so a reconciled import batch
// can be written with the operator's chosen policy:
//
//	repo := candidates.NewRepository(db)
//	outcome, err := repo.ApplyImport(result.Records, result.Policy)
package candidates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/recruiter/internal/entities"
	"github.com/mrlokans/recruiter/internal/importers"
)

var ErrNotFound = errors.New("candidate not found")

var _ importers.Store = (*Repository)(nil)

// Repository handles all candidate database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new candidates repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ApplyImport writes records in one transaction, in order.
//
// Each record is matched against stored candidates by case-insensitive
// email. Skip leaves a matched candidate untouched. Overwrite copies the
// record's non-empty fields and provenance onto the oldest matched candidate.
// Duplicate always inserts. Unmatched records are inserted under every
// policy, so a repeated email inside one batch is matched against the copy
// inserted earlier in the same batch.
func (r *Repository) ApplyImport(records []entities.Candidate, policy importers.Policy) (importers.Outcome, error) {
	if !policy.Valid() {
		return importers.Outcome{}, fmt.Errorf("%w: %q", importers.ErrUnknownPolicy, policy)
	}

	var outcome importers.Outcome
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			record := records[i]
			record.ID = 0

			if policy == importers.PolicyDuplicate {
				if err := tx.Create(&record).Error; err != nil {
					return fmt.Errorf("failed to insert candidate %s: %w", record.Email, err)
				}
				outcome.Created++
				continue
			}

			existing, err := findOldestByEmail(tx, record.Email)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&record).Error; err != nil {
					return fmt.Errorf("failed to insert candidate %s: %w", record.Email, err)
				}
				outcome.Created++
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to look up candidate %s: %w", record.Email, err)
			}

			if policy == importers.PolicySkip {
				outcome.Skipped++
				continue
			}

			// Updates with a struct skips zero fields, so blank imported
			// cells keep the stored value.
			record.CreatedAt = time.Time{}
			if err := tx.Model(existing).Updates(record).Error; err != nil {
				return fmt.Errorf("failed to update candidate %d: %w", existing.ID, err)
			}
			outcome.Updated++
		}
		return nil
	})
	if err != nil {
		return importers.Outcome{}, err
	}

	return outcome, nil
}

func findOldestByEmail(db *gorm.DB, email string) (*entities.Candidate, error) {
	var c entities.Candidate
	err := db.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).Order("id ASC").First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create stores a new candidate. An empty status becomes the registered status.
func (r *Repository) Create(c *entities.Candidate) error {
	if c.Status == "" {
		c.Status = entities.StatusRegistered
	}
	return r.db.Create(c).Error
}

// GetByID retrieves a candidate by ID.
func (r *Repository) GetByID(id uint) (*entities.Candidate, error) {
	var c entities.Candidate
	err := r.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByEmail returns every candidate with the given email, oldest first.
func (r *Repository) FindByEmail(email string) ([]entities.Candidate, error) {
	var list []entities.Candidate
	err := r.db.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).Order("id ASC").Find(&list).Error
	return list, err
}

// ListFilter narrows List. Empty fields are not applied.
type ListFilter struct {
	// Query matches name or email, case-insensitive.
	Query     string
	City      string
	Source    string
	Status    string
	ImportTag string
	Limit     int
	Offset    int
}

// List returns a page of candidates, newest first, and the total match count.
func (r *Repository) List(filter ListFilter) ([]entities.Candidate, int64, error) {
	query := r.db.Model(&entities.Candidate{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ImportTag != "" {
		query = query.Where("import_tag = ?", filter.ImportTag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var list []entities.Candidate
	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

// Update saves every field of c.
func (r *Repository) Update(c *entities.Candidate) error {
	if c.ID == 0 {
		return ErrNotFound
	}
	return r.db.Save(c).Error
}

// Delete soft-deletes a candidate.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Candidate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByImportTag counts candidates carrying an import tag.
func (r *Repository) CountByImportTag(tag string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Candidate{}).Where("import_tag = ?", tag).Count(&count).Error
	return count, err
}
