package client

import (
	"errors"
	"net/http"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
)

const (
	FriendlyTripNotFound    = "We could not find this trip. It may have been removed."
	FriendlyNotFound        = "This item no longer exists."
	FriendlyNothingToInvite = "Everyone on that list is already invited to this trip."
	FriendlyGeneric         = "Something went wrong. Please try again."
)

// FriendlyMessage turns err into text fit for an end user. Known server
// answers get tailored text; local validation failures keep their own message;
// anything else gets a generic line.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return FriendlyGeneric
	}
	switch {
	case apiErr.Message == "There is no new participant to invite":
		return FriendlyNothingToInvite
	case apiErr.Status == http.StatusNotFound && apiErr.Message == "Trip not found":
		return FriendlyTripNotFound
	case apiErr.Status == http.StatusNotFound:
		return FriendlyNotFound
	default:
		return FriendlyGeneric
	}
}
