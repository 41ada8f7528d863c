package model

// MetadataRow — строка таблицы метаданных канала (GORM).
// Composite key (channel_id, sort_key); the sort_key prefix (OUTPUT#, GRAPHIC#,
// ALERT#) is the sole type discriminator. Output/graphic rows fill Url/Name,
// alert rows fill State/Message/AlertedAt and, for cleared alerts with a
// configured TTL, ExpiresAt.
type MetadataRow struct {
	ChannelID string `gorm:"column:channel_id;primaryKey"`
	SortKey   string `gorm:"column:sort_key;primaryKey"`
	ID        string `gorm:"column:id;not null"`

	URL  string `gorm:"column:url"`
	Name string `gorm:"column:name"`

	State     string `gorm:"column:state"`
	Message   string `gorm:"column:message"`
	AlertedAt *int64 `gorm:"column:alerted_at"`
	ExpiresAt *int64 `gorm:"column:expires_at"`
}
