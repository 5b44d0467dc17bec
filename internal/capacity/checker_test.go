package capacity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riquelima/SandyPetShop-BookingService/internal/civiltime"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

var testClock = civiltime.NewClock(-3)

func scheduledAt(instant civiltime.Instant, pet, owner string, bundle domain.Bundle) *domain.Appointment {
	return &domain.Appointment{
		PetName:   pet,
		OwnerName: owner,
		Bundle:    bundle,
		StartsAt:  instant.UTC,
		Status:    domain.StatusScheduled,
	}
}

var walkInBundle = domain.Bundle{{Service: domain.ServiceBath, Quantity: 1}}
var mobileBundle = domain.Bundle{{Service: domain.ServiceMobileBath, Quantity: 1}}

func TestBuildSnapshotCountsOnlyScheduled(t *testing.T) {
	slot := testClock.FromCivil(2026, time.March, 16, 10, 0, 0)

	completed := scheduledAt(slot, "Rex", "Ana", walkInBundle)
	completed.Status = domain.StatusCompleted

	snap := BuildSnapshot([]*domain.Appointment{
		scheduledAt(slot, "Bolt", "Bia", walkInBundle),
		completed,
	})

	assert.Equal(t, 1, snap.Counts[slot.SlotKey()])
}

func TestBuildSnapshotExcludesMobileFromCounts(t *testing.T) {
	slot := testClock.FromCivil(2026, time.March, 16, 10, 0, 0)

	snap := BuildSnapshot([]*domain.Appointment{
		scheduledAt(slot, "Rex", "Ana", walkInBundle),
		scheduledAt(slot, "Bolt", "Bia", mobileBundle),
	})

	// Выездная запись не занимает слот, но участвует в защите от дублей
	assert.Equal(t, 1, snap.Counts[slot.SlotKey()])
	assert.Len(t, snap.Owners[slot.SlotKey()], 2)
}

func TestFindConflictsAtCapacityBoundary(t *testing.T) {
	slot := testClock.FromCivil(2026, time.March, 16, 10, 0, 0)
	checker := NewChecker(2)

	oneTaken := BuildSnapshot([]*domain.Appointment{
		scheduledAt(slot, "Rex", "Ana", walkInBundle),
	})
	twoTaken := BuildSnapshot([]*domain.Appointment{
		scheduledAt(slot, "Rex", "Ana", walkInBundle),
		scheduledAt(slot, "Bolt", "Bia", walkInBundle),
	})

	candidates := []civiltime.Instant{slot}

	// Одно занятое место из двух - слот ещё доступен
	assert.Empty(t, checker.FindConflicts(candidates, oneTaken, false))
	// Лимит достигнут - конфликт
	assert.Len(t, checker.FindConflicts(candidates, twoTaken, false), 1)
}

func TestFindConflictsMobileExempt(t *testing.T) {
	slot := testClock.FromCivil(2026, time.March, 16, 10, 0, 0)
	checker := NewChecker(2)

	full := BuildSnapshot([]*domain.Appointment{
		scheduledAt(slot, "Rex", "Ana", walkInBundle),
		scheduledAt(slot, "Bolt", "Bia", walkInBundle),
	})

	// Выездной набор записывается даже на полностью занятый слот
	assert.Empty(t, checker.FindConflicts([]civiltime.Instant{slot}, full, true))
}

func TestFindDuplicatesCaseInsensitive(t *testing.T) {
	slot := testClock.FromCivil(2026, time.March, 16, 10, 0, 0)
	checker := NewChecker(2)

	snap := BuildSnapshot([]*domain.Appointment{
		scheduledAt(slot, "Rex", "Ana Silva", walkInBundle),
	})

	dups := checker.FindDuplicates([]civiltime.Instant{slot}, snap, "REX", "ana silva")
	assert.Len(t, dups, 1)

	// Другой владелец с тем же именем питомца - не дубль
	assert.Empty(t, checker.FindDuplicates([]civiltime.Instant{slot}, snap, "Rex", "Bia Costa"))
}

func TestFindDuplicatesAppliesToMobile(t *testing.T) {
	slot := testClock.FromCivil(2026, time.March, 16, 10, 0, 0)
	checker := NewChecker(2)

	snap := BuildSnapshot([]*domain.Appointment{
		scheduledAt(slot, "Rex", "Ana", mobileBundle),
	})

	// Освобождение от лимита не отключает защиту от дублей
	dups := checker.FindDuplicates([]civiltime.Instant{slot}, snap, "Rex", "Ana")
	assert.Len(t, dups, 1)
}

func TestValidateRejectsWholeBatch(t *testing.T) {
	free := testClock.FromCivil(2026, time.March, 16, 10, 0, 0)
	full := testClock.FromCivil(2026, time.March, 23, 10, 0, 0)
	checker := NewChecker(1)

	snap := BuildSnapshot([]*domain.Appointment{
		scheduledAt(full, "Rex", "Ana", walkInBundle),
	})

	// Конфликт одного кандидата отклоняет всю партию
	err := checker.Validate([]civiltime.Instant{free, full}, snap, false, "Bolt", "Bia")
	require.Error(t, err)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Instants, 1)
	assert.Equal(t, full.SlotKey(), conflictErr.Instants[0].SlotKey())
}

func TestValidatePassesWhenAllFree(t *testing.T) {
	a := testClock.FromCivil(2026, time.March, 16, 10, 0, 0)
	b := testClock.FromCivil(2026, time.March, 23, 10, 0, 0)
	checker := NewChecker(2)

	snap := BuildSnapshot(nil)

	assert.NoError(t, checker.Validate([]civiltime.Instant{a, b}, snap, false, "Rex", "Ana"))
}
