package update_status

// Request модель запроса на смену статуса
type Request struct {
	ID     string  `json:"id" validate:"notblank"`
	Status string  `json:"status" validate:"notblank,oneof=pending confirmed cancelled completed"`
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

// Policy правила причины отмены
type Policy struct {
	// RequireCancellationReason без причины отмена отклоняется;
	// иначе подставляется DefaultCancellationReason
	RequireCancellationReason bool
	DefaultCancellationReason string
}
