// Package pricing reglas puras sobre el historial de precios.
package pricing

import "time"

// DefaultScrapeWindow duración con la que se agrupan las filas de una misma corrida del scraper.
// Una corrida completa recorre todas las tiendas y tarda; las filas de la misma corrida pueden
// diferir en scrapedAt hasta este margen.
const DefaultScrapeWindow = time.Hour

// WindowStart inicio de la "última captura": latest - window.
// Si window no es positiva se usa DefaultScrapeWindow.
func WindowStart(latest time.Time, window time.Duration) time.Time {
	if window <= 0 {
		window = DefaultScrapeWindow
	}
	return latest.Add(-window)
}
