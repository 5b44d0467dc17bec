package notifier

// CompletionEvent событие завершения записи
// Отправляется один раз при переходе SCHEDULED -> COMPLETED, доставка best-effort
type CompletionEvent struct {
	AppointmentID int64    `json:"appointmentId"`
	PetName       string   `json:"petName"`
	OwnerName     string   `json:"ownerName"`
	Whatsapp      string   `json:"whatsapp"`
	Services      []string `json:"services"`
	Addons        []string `json:"addons,omitempty"`
	Price         float64  `json:"price"`
	StartsAt      string   `json:"startsAt"`    // ISO 8601 UTC
	CompletedAt   string   `json:"completedAt"` // ISO 8601 UTC
}
