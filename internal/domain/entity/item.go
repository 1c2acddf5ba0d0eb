package entity

import "time"

// Item representa un artículo del catálogo. El nombre es único; la cantidad en
// existencia no vive aquí sino que se deriva del journal (inventory_records).
type Item struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
