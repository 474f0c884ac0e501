package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recorder appends outbox events inside the caller's transaction so the
// event log commits or rolls back together with the mutation it describes.
type Recorder struct {
	log   *zap.Logger
	genID *snowflake.Node
}

func NewRecorder(log *zap.Logger, genID *snowflake.Node) *Recorder {
	return &Recorder{
		log:   log.Named("outbox.recorder"),
		genID: genID,
	}
}

// Record inserts one event. A nil payload (delete events) stores NULL.
func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, eventType string, entityID int64, reason string, payload any) error {
	var doc datatypes.JSON
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		doc = datatypes.JSON(raw)
	}

	err := tx.WithContext(ctx).Exec(
		`INSERT INTO outbox_events (id, event_type, entity_id, reason, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.genID.Generate().Int64(),
		eventType,
		entityID,
		reason,
		doc,
		time.Now().UTC(),
	).Error
	if err != nil {
		return err
	}

	r.log.Debug("outbox event recorded",
		zap.String("event_type", eventType),
		zap.Int64("entity_id", entityID),
		zap.String("reason", reason),
	)
	return nil
}
