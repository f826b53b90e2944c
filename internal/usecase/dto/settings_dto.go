package dto

// UpdateSettingsRequest - частичное обновление параметров конвейера; nil-поля не меняются
type UpdateSettingsRequest struct {
	Resolution           *int        `json:"resolution" validate:"omitempty,min=0,max=15"`
	PopulationNormalizer *float64    `json:"population_normalizer" validate:"omitempty,gt=0"`
	TopK                 *int        `json:"top_k" validate:"omitempty,min=0,max=1000"`
	Scale                *ScalePatch `json:"scale" validate:"omitempty"`
}

// ScalePatch - частичное обновление множителей пар
type ScalePatch struct {
	EntertainmentPopulation *float64 `json:"entertainment_population" validate:"omitempty,gt=0"`
	VehiclePopulation       *float64 `json:"vehicle_population" validate:"omitempty,gt=0"`
	EntertainmentVehicle    *float64 `json:"entertainment_vehicle" validate:"omitempty,gt=0"`
}

// IsEmpty сообщает, что запрос ничего не меняет
func (r UpdateSettingsRequest) IsEmpty() bool {
	return r.Resolution == nil && r.PopulationNormalizer == nil && r.TopK == nil && r.Scale == nil
}
