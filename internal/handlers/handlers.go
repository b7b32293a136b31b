package handlers

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"property-portal/internal/models"
	"property-portal/internal/search"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// syncRoomIndex reconciles the search index with the room's current
// status: a vacant room is (re-)indexed, anything else is removed.
// Index errors are logged, never surfaced to the caller; the database
// is the source of truth and the nightly reindex repairs drift.
func syncRoomIndex(db *gorm.DB, sc *search.SearchClient, log *zap.Logger, roomID string) {
	if sc == nil || roomID == "" {
		return
	}

	var room models.Room
	err := db.Preload("Property").First(&room, "id = ?", roomID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			if err := sc.RemoveListing(roomID); err != nil {
				log.Warn("failed to remove listing", zap.String("room_id", roomID), zap.Error(err))
			}
			return
		}
		log.Warn("failed to load room for index sync", zap.String("room_id", roomID), zap.Error(err))
		return
	}

	if room.IsVacant() {
		if err := sc.IndexListing(search.NewListing(&room, room.Property)); err != nil {
			log.Warn("failed to index listing", zap.String("room_id", roomID), zap.Error(err))
		}
		return
	}

	if err := sc.RemoveListing(roomID); err != nil {
		log.Warn("failed to remove listing", zap.String("room_id", roomID), zap.Error(err))
	}
}
