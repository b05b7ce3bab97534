package engine

// VisibilityBatch splits one batch of positions by the horizon.
type VisibilityBatch struct {
	Visible []ApparentPosition `json:"visible"`
	Hidden  []ApparentPosition `json:"hidden"`
}

// Classify partitions positions into visible (altitude > 0) and hidden
// (altitude ≤ 0), keeping input order within each part. The input is not
// modified.
func Classify(positions []ApparentPosition) VisibilityBatch {
	batch := VisibilityBatch{
		Visible: make([]ApparentPosition, 0, len(positions)),
		Hidden:  make([]ApparentPosition, 0, len(positions)),
	}
	for _, p := range positions {
		if p.Visible() {
			batch.Visible = append(batch.Visible, p)
		} else {
			batch.Hidden = append(batch.Hidden, p)
		}
	}
	return batch
}
