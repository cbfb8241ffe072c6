package handlers

import (
	"errors"
	"net/http"

	"golang-restaurant-explorer/pkg/restaurantapi"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type CitiesResponse struct {
	Cities []string `json:"cities"`
}

// upstreamStatus maps a restaurant API failure to the status we answer with
func upstreamStatus(err error) int {
	var apiErr *restaurantapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
