package constants

// Пути health и ready (остальные маршруты собираются в router).
const (
	PathHealth = "/health"
	PathReady  = "/ready"
)

// Sort-key prefixes of the channel metadata table.
const (
	SortKeyOutput  = "OUTPUT#"
	SortKeyGraphic = "GRAPHIC#"
	SortKeyAlert   = "ALERT#"
)
