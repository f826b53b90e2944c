package errors

import "net/http"

var (
	ErrDatasetsNotReady = New(
		"DATASETS_NOT_READY",
		"Datasets are still loading",
		http.StatusServiceUnavailable,
	)

	ErrDatasetLoadFailed = New(
		"DATASET_LOAD_FAILED",
		"One or more datasets failed to load",
		http.StatusServiceUnavailable,
	)

	ErrLayersNotReady = New(
		"LAYERS_NOT_READY",
		"Layers have not been computed yet",
		http.StatusServiceUnavailable,
	)

	ErrInvalidSettings = New(
		"INVALID_SETTINGS",
		"Invalid pipeline settings",
		http.StatusBadRequest,
	)

	ErrLayerNotFound = New(
		"LAYER_NOT_FOUND",
		"Layer not found",
		http.StatusNotFound,
	)

	ErrInvalidCellID = New(
		"INVALID_CELL_ID",
		"Invalid H3 cell id",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
