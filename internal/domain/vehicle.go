package domain

// VehiclePositionsResponse - JSON-конверт GTFS-RT фида позиций транспорта
type VehiclePositionsResponse struct {
	Header *FeedHeader     `json:"Header,omitempty"`
	Entity []VehicleEntity `json:"Entity"`
}

type FeedHeader struct {
	GtfsRealtimeVersion string `json:"GtfsRealtimeVersion"`
	Timestamp           int64  `json:"Timestamp"`
}

type VehicleEntity struct {
	ID      string                 `json:"Id"`
	Vehicle *VehiclePositionRecord `json:"Vehicle,omitempty"`
}

type VehiclePositionRecord struct {
	Trip      *TripDescriptor    `json:"Trip,omitempty"`
	Vehicle   *VehicleDescriptor `json:"Vehicle,omitempty"`
	Position  *VehiclePosition   `json:"Position,omitempty"`
	Timestamp int64              `json:"Timestamp"`
}

type TripDescriptor struct {
	TripID  string `json:"TripId"`
	RouteID string `json:"RouteId"`
}

type VehicleDescriptor struct {
	ID    string `json:"Id"`
	Label string `json:"Label"`
}

// VehiclePosition - координаты могут отсутствовать у части записей фида
type VehiclePosition struct {
	Latitude  *float64 `json:"Latitude"`
	Longitude *float64 `json:"Longitude"`
	Bearing   *float64 `json:"Bearing,omitempty"`
	Speed     *float64 `json:"Speed,omitempty"`
}
