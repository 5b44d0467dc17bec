package capacity

import (
	"fmt"
	"strings"

	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

// Snapshot снимок занятости, прочитанный непосредственно перед проверкой.
// Counts - количество SCHEDULED записей на точный инстант (ключ - UTC RFC 3339),
// записи освобождённого от лимита класса (выездные) в счётчик не входят.
// Owners - пары (питомец, владелец) всех SCHEDULED записей по инстантам,
// для защиты от дублей учитываются записи любого класса.
type Snapshot struct {
	Counts map[string]int
	Owners map[string][]PetOwner
}

// PetOwner пара имени питомца и владельца
type PetOwner struct {
	PetName   string
	OwnerName string
}

// BuildSnapshot строит снимок занятости из списка существующих записей
// Неактивные (выполненные) записи слоты не занимают
func BuildSnapshot(appointments []*domain.Appointment) *Snapshot {
	snap := &Snapshot{
		Counts: make(map[string]int),
		Owners: make(map[string][]PetOwner),
	}

	for _, appt := range appointments {
		if !appt.IsScheduled() {
			continue
		}

		key := civiltime.Instant{UTC: appt.StartsAt}.SlotKey()

		if appt.CountsAgainstCapacity() {
			snap.Counts[key]++
		}
		snap.Owners[key] = append(snap.Owners[key], PetOwner{
			PetName:   appt.PetName,
			OwnerName: appt.OwnerName,
		})
	}

	return snap
}

// ConflictError ошибка проверки слотов со списком конфликтующих инстантов,
// чтобы вызывающая сторона могла показать, какие именно времена не прошли
type ConflictError struct {
	Instants []civiltime.Instant
}

func (e *ConflictError) Error() string {
	keys := make([]string, 0, len(e.Instants))
	for _, i := range e.Instants {
		keys = append(keys, i.SlotKey())
	}
	return fmt.Sprintf("capacity: slot conflict at %s", strings.Join(keys, ", "))
}

// Checker проверяет кандидатов на превышение лимита слотов и дубли
type Checker struct {
	capacity int
}

// NewChecker создает проверку с лимитом одновременных записей на слот
func NewChecker(capacity int) *Checker {
	return &Checker{capacity: capacity}
}

// FindConflicts возвращает кандидатов, для которых занятость уже достигла лимита.
// exempt = true (набор содержит выездную услугу) полностью отключает проверку:
// выездные записи выполняются у клиента и общий слот не занимают.
// Кандидаты сверяются только с ранее прочитанным снимком, столкновения
// кандидатов одной партии между собой не проверяются.
func (c *Checker) FindConflicts(candidates []civiltime.Instant, snap *Snapshot, exempt bool) []civiltime.Instant {
	if exempt {
		return nil
	}

	var conflicts []civiltime.Instant
	for _, cand := range candidates {
		if snap.Counts[cand.SlotKey()] >= c.capacity {
			conflicts = append(conflicts, cand)
		}
	}
	return conflicts
}

// FindDuplicates возвращает кандидатов, на инстант которых уже существует
// SCHEDULED запись с той же парой (питомец, владелец), без учёта регистра.
// Действует независимо от лимита и освобождения выездных услуг
func (c *Checker) FindDuplicates(candidates []civiltime.Instant, snap *Snapshot, petName, ownerName string) []civiltime.Instant {
	var duplicates []civiltime.Instant
	for _, cand := range candidates {
		for _, owner := range snap.Owners[cand.SlotKey()] {
			if strings.EqualFold(owner.PetName, petName) && strings.EqualFold(owner.OwnerName, ownerName) {
				duplicates = append(duplicates, cand)
				break
			}
		}
	}
	return duplicates
}

// Validate проверяет партию кандидатов целиком: любой конфликт лимита или
// дубль отклоняет всю партию - частичные партии никогда не сохраняются
func (c *Checker) Validate(candidates []civiltime.Instant, snap *Snapshot, exempt bool, petName, ownerName string) error {
	conflicts := c.FindConflicts(candidates, snap, exempt)
	conflicts = append(conflicts, c.FindDuplicates(candidates, snap, petName, ownerName)...)

	if len(conflicts) > 0 {
		return &ConflictError{Instants: dedupe(conflicts)}
	}
	return nil
}

func dedupe(instants []civiltime.Instant) []civiltime.Instant {
	seen := make(map[string]bool, len(instants))
	result := make([]civiltime.Instant, 0, len(instants))
	for _, i := range instants {
		key := i.SlotKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, i)
	}
	return result
}
