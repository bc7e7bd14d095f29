package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"container-tracker/internal/database"
	"container-tracker/internal/domain/telemetry"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the gorm-backed telemetry store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db.DB}
}

// WithinBatch runs fn inside one transaction; fn returning an error rolls
// everything back.
func (r *Repository) WithinBatch(ctx context.Context, fn func(tx telemetry.BatchStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&batchStore{db: tx})
	})
}

type batchStore struct {
	db *gorm.DB
}

func (s *batchStore) ResolveVoyageCode(ctx context.Context, accountID uuid.UUID, code string) (*int64, error) {
	var row struct {
		VoyageID int64
	}
	result := s.db.WithContext(ctx).Raw(`
        SELECT v.voyage_id
          FROM voyages v
          JOIN ships s ON s.ship_id = v.ship_id
         WHERE s.account_id = ? AND v.voyage_code = ?
         LIMIT 1`, accountID, code).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to resolve voyage code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row.VoyageID, nil
}

func (s *batchStore) InsertEvent(ctx context.Context, ev *telemetry.Event) (bool, error) {
	var meta interface{}
	if ev.Meta != nil {
		encoded, err := json.Marshal(ev.Meta)
		if err != nil {
			return false, fmt.Errorf("failed to encode event meta: %w", err)
		}
		meta = string(encoded)
	}

	result := s.db.WithContext(ctx).Exec(`
        INSERT INTO container_movements
               (container_id, event_type, site, location, device_id, tag,
                ts_iso, lat, lng, geohash, meta, idempotency_key, source,
                voyage_id, battery_percent, temp_c, sog_kn, cog_deg,
                voyage_code, imo)
        VALUES (?,?,?,?,?,?,?,?,?,?,?::jsonb,?,?,?,?,?,?,?,?,?)
        ON CONFLICT (idempotency_key) DO NOTHING`,
		ev.ContainerID, ev.EventType, ev.Site, ev.Location, ev.DeviceID, ev.Tag,
		ev.Timestamp, ev.Lat, ev.Lng, ev.Geohash, meta, ev.IdempotencyKey, ev.Source,
		ev.VoyageID, ev.BatteryPercent, ev.TempC, ev.SogKn, ev.CogDeg,
		ev.VoyageCode, ev.IMO,
	)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert event: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (s *batchStore) FindDuplicate(ctx context.Context, ev *telemetry.Event) (*telemetry.Conflict, error) {
	var row struct {
		ContainerID    string
		EventType      string
		Ts             *time.Time
		DeviceID       *string
		Tag            *string
		IdempotencyKey string
	}
	result := s.db.WithContext(ctx).Raw(`
        SELECT container_id, event_type,
               COALESCE(ts_iso, created_at) AS ts,
               device_id, tag, idempotency_key
          FROM container_movements
         WHERE idempotency_key = ?
         LIMIT 1`, ev.IdempotencyKey).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &telemetry.Conflict{
		ContainerID:    row.ContainerID,
		EventType:      row.EventType,
		Timestamp:      row.Ts,
		DeviceID:       row.DeviceID,
		Tag:            row.Tag,
		IdempotencyKey: row.IdempotencyKey,
	}, nil
}

type containerStateRow struct {
	ContainerID        string
	LastEventType      string
	LastTsIso          *time.Time
	LastLat            *float64
	LastLng            *float64
	LastLocation       *string
	LastSite           *string
	LastTag            *string
	LastDeviceID       *string
	LastBatteryPercent *float64
	LastTempC          *float64
	VoyageID           *int64
	UpdatedAt          time.Time
}

func (s *batchStore) GetStateForUpdate(ctx context.Context, containerID string) (*telemetry.ContainerState, error) {
	var row containerStateRow
	result := s.db.WithContext(ctx).Raw(`
        SELECT container_id, last_event_type, last_ts_iso, last_lat, last_lng,
               last_location, last_site, last_tag, last_device_id,
               last_battery_percent, last_temp_c, voyage_id, updated_at
          FROM container_state
         WHERE container_id = ?
           FOR UPDATE`, containerID).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load container state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return &telemetry.ContainerState{
		ContainerID:        row.ContainerID,
		LastEventType:      row.LastEventType,
		LastTimestamp:      row.LastTsIso,
		LastLat:            row.LastLat,
		LastLng:            row.LastLng,
		LastLocation:       row.LastLocation,
		LastSite:           row.LastSite,
		LastTag:            row.LastTag,
		LastDeviceID:       row.LastDeviceID,
		LastBatteryPercent: row.LastBatteryPercent,
		LastTempC:          row.LastTempC,
		VoyageID:           row.VoyageID,
		UpdatedAt:          row.UpdatedAt,
	}, nil
}

func (s *batchStore) SaveState(ctx context.Context, st *telemetry.ContainerState) error {
	// The merge already happened in Go; the upsert plainly writes the
	// merged row.
	result := s.db.WithContext(ctx).Exec(`
        INSERT INTO container_state
               (container_id, last_event_type, last_ts_iso, last_lat, last_lng,
                last_location, last_site, last_tag, last_device_id,
                last_battery_percent, last_temp_c, voyage_id, updated_at)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,now())
        ON CONFLICT (container_id) DO UPDATE SET
               last_event_type      = EXCLUDED.last_event_type,
               last_ts_iso          = EXCLUDED.last_ts_iso,
               last_lat             = EXCLUDED.last_lat,
               last_lng             = EXCLUDED.last_lng,
               last_location        = EXCLUDED.last_location,
               last_site            = EXCLUDED.last_site,
               last_tag             = EXCLUDED.last_tag,
               last_device_id       = EXCLUDED.last_device_id,
               last_battery_percent = EXCLUDED.last_battery_percent,
               last_temp_c          = EXCLUDED.last_temp_c,
               voyage_id            = EXCLUDED.voyage_id,
               updated_at           = now()`,
		st.ContainerID, st.LastEventType, st.LastTimestamp, st.LastLat, st.LastLng,
		st.LastLocation, st.LastSite, st.LastTag, st.LastDeviceID,
		st.LastBatteryPercent, st.LastTempC, st.VoyageID,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert container state: %w", result.Error)
	}
	return nil
}
