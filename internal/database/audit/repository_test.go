package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/recruiter/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      "csv_import",
		Description: "Imported 10 candidates",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())

	got, err := repo.GetEventByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "csv_import", got.Action)
}

func TestRepository_GetEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 15; i++ {
		err := repo.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventImport,
			Action:    "csv_import",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		})
		require.NoError(t, err)
	}

	candidateID := uint(7)
	for i := 0; i < 5; i++ {
		err := repo.LogEvent(&entities.AuditEvent{
			EventType:  entities.AuditEventDelete,
			Action:     "candidate_delete",
			EntityType: "candidate",
			EntityID:   &candidateID,
			Status:     entities.AuditStatusSuccess,
		})
		require.NoError(t, err)
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents(EventFilter{}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(EventFilter{}, 10, 15)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 5)
	})

	t.Run("by type", func(t *testing.T) {
		events, total, err := repo.GetEvents(EventFilter{EventType: entities.AuditEventImport}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 15)
		assert.True(t, events[0].CreatedAt.After(events[1].CreatedAt))
	})

	t.Run("by entity", func(t *testing.T) {
		_, total, err := repo.GetEvents(EventFilter{EntityType: "candidate", EntityID: 7}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for _, age := range []time.Duration{time.Hour, 40 * 24 * time.Hour, 90 * 24 * time.Hour} {
		err := repo.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventImport,
			Action:    "csv_import",
			CreatedAt: time.Now().Add(-age),
		})
		require.NoError(t, err)
	}

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-30 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, total, err := repo.GetEvents(EventFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
