package pricing

import "errors"

var (
	// ErrIncompleteSelection возвращается, когда набор пуст или не выбрана
	// весовая категория для тарифицируемых по весу услуг
	ErrIncompleteSelection = errors.New("pricing: incomplete selection")

	// ErrUnknownAddon возвращается при попытке включить неизвестный аддон
	ErrUnknownAddon = errors.New("pricing: unknown addon")

	// ErrUnknownWeight возвращается, когда для весовой категории нет строки тарифа
	ErrUnknownWeight = errors.New("pricing: no price row for weight class")
)
