package models

import "time"

// Product is a catalog item. ImageURL is either an absolute URL or an
// object key in the image bucket.
type Product struct {
	ID                int64
	ProductCategoryID int64
	Name              string
	Price             int
	ImageURL          string
	Description       string
	Abv               float64
	Capacity          int
	CreatedAt         time.Time
}
