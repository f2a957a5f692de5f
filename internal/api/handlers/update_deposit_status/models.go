package update_deposit_status

// UpdateDepositRequest HTTP request model
// DepositPaid указатель, чтобы отличить отсутствующее поле от false
type UpdateDepositRequest struct {
	DepositPaid *bool `json:"deposit_paid"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
