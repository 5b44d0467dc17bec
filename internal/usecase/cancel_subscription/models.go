package cancel_subscription

// Request модель запроса на отмену абонемента
type Request struct {
	SubscriptionID int64 // ID абонемента
}

// Response модель ответа с результатом отмены
type Response struct {
	SubscriptionID int64 // ID абонемента
	RemovedCount   int64 // Сколько будущих записей удалено
}
