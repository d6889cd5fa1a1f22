package callstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbpkg "github.com/voxkit/voxbridge/internal/db"
	"github.com/voxkit/voxbridge/internal/vox"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(driver, dsn string) (*GormStore, error) {
	db, err := dbpkg.OpenGorm(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open call store: %w", err)
	}
	store := &GormStore{db: db}
	if err := db.AutoMigrate(&callRow{}, &surveyRow{}); err != nil {
		return nil, fmt.Errorf("migrate call store: %w", err)
	}
	return store, nil
}

func (s *GormStore) SaveCallEvent(ctx context.Context, event vox.CallEvent) error {
	if strings.TrimSpace(event.Call.CallID) == "" {
		return fmt.Errorf("call_id is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal call event: %w", err)
	}

	now := time.Now().UTC()
	row := callRow{
		CallID:              event.Call.CallID,
		EventType:           string(event.Event),
		AgentID:             event.Call.AgentID,
		CallFrom:            event.Call.CallFrom,
		CallTo:              event.Call.CallTo,
		DisconnectionReason: event.Call.DisconnectionReason,
		Payload:             string(payload),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if event.Call.DurationMS != nil {
		row.DurationMS = *event.Call.DurationMS
	}
	if event.Call.StartTimestamp != nil {
		row.StartTimestamp = *event.Call.StartTimestamp
	}
	if event.Call.EndTimestamp != nil {
		row.EndTimestamp = *event.Call.EndTimestamp
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "call_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"event_type", "agent_id", "call_from", "call_to", "disconnection_reason", "duration_ms", "start_timestamp", "end_timestamp", "payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *GormStore) GetCall(ctx context.Context, callID string) (CallRecord, error) {
	callID = strings.TrimSpace(callID)
	if callID == "" {
		return CallRecord{}, fmt.Errorf("call_id is required")
	}

	var row callRow
	if err := s.db.WithContext(ctx).Where("call_id = ?", callID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CallRecord{}, fmt.Errorf("%w: call %s", ErrNotFound, callID)
		}
		return CallRecord{}, fmt.Errorf("get call: %w", err)
	}
	return row.toRecord(), nil
}

func (s *GormStore) SaveSurvey(ctx context.Context, rec SurveyRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	row := surveyRow{
		ID:        rec.ID,
		CallID:    rec.CallID,
		Score:     rec.Score,
		Comment:   rec.Comment,
		CreatedAt: rec.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save survey: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

type callRow struct {
	CallID              string    `gorm:"primaryKey;size:191"`
	EventType           string    `gorm:"size:32;not null"`
	AgentID             string    `gorm:"size:191"`
	CallFrom            string    `gorm:"size:64"`
	CallTo              string    `gorm:"size:64"`
	DisconnectionReason string    `gorm:"size:128"`
	DurationMS          int64     `gorm:"not null;default:0"`
	StartTimestamp      int64     `gorm:"not null;default:0"`
	EndTimestamp        int64     `gorm:"not null;default:0"`
	Payload             string    `gorm:"type:text"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

func (callRow) TableName() string {
	return "call_events"
}

func (r callRow) toRecord() CallRecord {
	return CallRecord{
		CallID:              r.CallID,
		EventType:           r.EventType,
		AgentID:             r.AgentID,
		CallFrom:            r.CallFrom,
		CallTo:              r.CallTo,
		DisconnectionReason: r.DisconnectionReason,
		DurationMS:          r.DurationMS,
		StartTimestamp:      r.StartTimestamp,
		EndTimestamp:        r.EndTimestamp,
		Payload:             r.Payload,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

type surveyRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	CallID    string    `gorm:"size:191;index"`
	Score     int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (surveyRow) TableName() string {
	return "call_surveys"
}
