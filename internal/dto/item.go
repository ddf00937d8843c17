package dto

import "time"

type CreateItemRequest struct {
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description"`
	Quantity       int        `json:"quantity"`
	Unit           string     `json:"unit"`
	ExpirationDate *time.Time `json:"expiration_date"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	Category       string     `json:"category"`
	Barcode        string     `json:"barcode"`
	Tags           []string   `json:"tags"`
}

type CreateItemByLocationNameRequest struct {
	LocationName string `json:"location_name" binding:"required"`
	CreateItemRequest
}

type UpdateItemRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	Quantity       *int       `json:"quantity"`
	Unit           *string    `json:"unit"`
	ExpirationDate *time.Time `json:"expiration_date"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	Category       *string    `json:"category"`
	Barcode        *string    `json:"barcode"`
	Tags           []string   `json:"tags"`
	LocationID     *uint64    `json:"location_id"`
}
