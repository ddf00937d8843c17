package dto

type CreateLocationRequest struct {
	Name             string `json:"name" binding:"required"`
	LocationType     string `json:"location_type" binding:"required"`
	TemperatureRange string `json:"temperature_range"`
	Icon             string `json:"icon"`
	Color            string `json:"color"`
}

type UpdateLocationRequest struct {
	Name             *string `json:"name"`
	LocationType     *string `json:"location_type"`
	TemperatureRange *string `json:"temperature_range"`
	Icon             *string `json:"icon"`
	Color            *string `json:"color"`
}
