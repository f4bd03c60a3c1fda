package interfaces

import "campaign-pulse/src/models"

// -----------------------------------------------------------------------------
// IMetricSource is the live metrics handle shared by the scheduler, the REST
// layer and the control service.
// -----------------------------------------------------------------------------

type IMetricSource interface {

	// Snapshot returns the current metrics without mutating them.
	Snapshot() models.MMetricSnapshot

	// -----------------------------------------------------------------------------

	// Tick applies one mutation step and returns the new snapshot.
	Tick() models.MMetricSnapshot
}
