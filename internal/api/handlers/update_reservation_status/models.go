package update_reservation_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// MessageResponse HTTP response model
type MessageResponse struct {
	Message string `json:"message"`
}
