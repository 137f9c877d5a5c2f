package dto

import (
	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
)

// RecordResponse is the acknowledgement returned to SG.
type RecordResponse struct {
	Status string `json:"status"`
}

// MapRecordStatusToResponse converts a record status to an API response.
func MapRecordStatusToResponse(status notificationDomain.RecordStatus) RecordResponse {
	return RecordResponse{Status: string(status)}
}
