package interfaces

import (
	"stock-insight/src/models"
)

// -----------------------------------------------------------------------------
// ISnapshotPublisher receives freshly computed snapshots for distribution.
// The server implements this; the refresh scheduler depends only on it.
// -----------------------------------------------------------------------------

type ISnapshotPublisher interface {

	// Publish merges the snapshots into the served state and broadcasts the
	// update to connected WebSocket clients.
	Publish(update *models.MSnapshotUpdate)
}
