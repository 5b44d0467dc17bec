package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riquelima/SandyPetShop-BookingService/internal/catalog"
	"github.com/riquelima/SandyPetShop-BookingService/internal/domain"
)

func TestToggleActivatesAndDeactivates(t *testing.T) {
	selection := NewAddonSelection(catalog.Default())

	require.NoError(t, selection.Toggle(catalog.AddonAparacao, domain.WeightKg10))
	assert.True(t, selection.IsActive(catalog.AddonAparacao))

	require.NoError(t, selection.Toggle(catalog.AddonAparacao, domain.WeightKg10))
	assert.False(t, selection.IsActive(catalog.AddonAparacao))
}

func TestToggleUnknownAddon(t *testing.T) {
	selection := NewAddonSelection(catalog.Default())

	err := selection.Toggle("nonexistent", domain.WeightKg10)
	assert.ErrorIs(t, err, ErrUnknownAddon)
}

func TestToggleIgnoresIncompatibleAddon(t *testing.T) {
	selection := NewAddonSelection(catalog.Default())

	// Tosa na tesoura доступна только для категории до 5 кг
	require.NoError(t, selection.Toggle(catalog.AddonTosaTesoura, domain.WeightKg10))
	assert.False(t, selection.IsActive(catalog.AddonTosaTesoura))

	// Hidratação недоступна для категории до 5 кг
	require.NoError(t, selection.Toggle(catalog.AddonHidratacao, domain.WeightUpTo5))
	assert.False(t, selection.IsActive(catalog.AddonHidratacao))
}

func TestToggleExclusivePair(t *testing.T) {
	selection := NewAddonSelection(catalog.Default())

	require.NoError(t, selection.Toggle(catalog.AddonPatacure1, domain.WeightKg10))
	assert.True(t, selection.IsActive(catalog.AddonPatacure1))

	// Включение второго цвета гасит первый
	require.NoError(t, selection.Toggle(catalog.AddonPatacure2, domain.WeightKg10))
	assert.True(t, selection.IsActive(catalog.AddonPatacure2))
	assert.False(t, selection.IsActive(catalog.AddonPatacure1))
}

func TestNormalizeForWeightDropsIncompatible(t *testing.T) {
	selection := NewAddonSelection(catalog.Default())

	require.NoError(t, selection.Toggle(catalog.AddonTosaTesoura, domain.WeightUpTo5))
	require.NoError(t, selection.Toggle(catalog.AddonAparacao, domain.WeightUpTo5))
	require.True(t, selection.IsActive(catalog.AddonTosaTesoura))

	// Смена категории на 10 кг делает tosa na tesoura недоступной
	selection.NormalizeForWeight(domain.WeightKg10)

	assert.False(t, selection.IsActive(catalog.AddonTosaTesoura))
	assert.True(t, selection.IsActive(catalog.AddonAparacao))
}

func TestActiveReturnsCatalogOrder(t *testing.T) {
	selection := NewAddonSelection(catalog.Default())

	require.NoError(t, selection.SetActive([]string{
		catalog.AddonTintura,
		catalog.AddonAparacao,
		catalog.AddonBotinhas,
	}, domain.WeightKg10))

	// Порядок каталога, а не порядок включения
	assert.Equal(t, []string{catalog.AddonAparacao, catalog.AddonBotinhas, catalog.AddonTintura}, selection.Active())
}
