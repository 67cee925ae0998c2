package history

import "time"

// Record is one completed compression run
type Record struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	JobID            string    `gorm:"size:36" json:"job_id"`
	Level            int       `json:"level"`
	Strategy         string    `json:"strategy"`
	OriginalSize     int64     `json:"original_size"`
	CompressedSize   int64     `json:"compressed_size"`
	CompressionRatio float64   `json:"compression_ratio"`
	CreatedAt        time.Time `json:"created_at"`
}

// BytesSaved returns how much smaller the output was than the input
func (r *Record) BytesSaved() int64 {
	return r.OriginalSize - r.CompressedSize
}
