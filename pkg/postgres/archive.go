package postgres

import (
	"context"
	"time"

	"github.com/cipheratlas/geometry-engine/pkg/manifold"
)

// MetricsRecord is the persisted form of one manifold computation. The
// archive is an audit log: rows are written after fresh computations and
// read back by the history endpoint, never consulted on the request path.
type MetricsRecord struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	DocumentID     string    `gorm:"index" json:"documentId"`
	ShapeRatio     float64   `json:"shapeRatio"`
	Delta          float64   `json:"delta"`
	CurvatureK     float64   `json:"curvatureK"`
	Epsilon        float64   `json:"epsilon"`
	Classification string    `json:"classification"`
	ExactUsed      bool      `json:"exactUsed"`
	SampleSize     int       `json:"sampleSize"`
	DroppedCount   int       `json:"droppedCount"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (MetricsRecord) TableName() string { return "manifold_metrics" }

// MetricsArchive stores computed manifold metrics in Postgres.
type MetricsArchive struct {
	db     *Postgres
	logger Logger
}

// NewMetricsArchive migrates the metrics table and returns the archive.
func NewMetricsArchive(db *Postgres, logger Logger) (*MetricsArchive, error) {
	if err := db.Migrate(&MetricsRecord{}); err != nil {
		return nil, TranslateError(err)
	}
	return &MetricsArchive{db: db, logger: logger}, nil
}

// Save appends one computation to the archive.
func (a *MetricsArchive) Save(ctx context.Context, m manifold.Metrics) error {
	record := MetricsRecord{
		DocumentID:     m.DocumentID,
		ShapeRatio:     m.ShapeRatio,
		Delta:          m.Delta,
		CurvatureK:     m.CurvatureK,
		Epsilon:        m.Epsilon,
		Classification: string(m.Classification),
		ExactUsed:      m.ExactUsed,
		SampleSize:     m.SampleSize,
		DroppedCount:   m.DroppedCount,
		CreatedAt:      m.CreatedAt,
	}

	if err := a.db.Create(ctx, &record); err != nil {
		translated := TranslateError(err)
		a.logger.Error("failed to archive manifold metrics", translated, map[string]interface{}{
			"document_id": m.DocumentID,
		})
		return translated
	}
	return nil
}

// ListRecent returns the newest computations for a document, most recent
// first. limit <= 0 selects a default of 20 rows.
func (a *MetricsArchive) ListRecent(ctx context.Context, documentID string, limit int) ([]MetricsRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	a.db.mu.RLock()
	defer a.db.mu.RUnlock()

	var records []MetricsRecord
	err := a.db.client.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return records, nil
}
