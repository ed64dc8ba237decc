package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "championship-api", cfg.ServiceName)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "INDEPENDIENTE / LIBRE", cfg.DefaultClub)
	require.Equal(t, "IQUIQUE", cfg.DefaultCity)
	require.Len(t, cfg.Categories, 11)
	require.True(t, cfg.HasCategory("Elite Open"))
	require.True(t, cfg.HasCategory("Damas Master D"))
	require.False(t, cfg.HasCategory("Damas Master C"))
	require.True(t, cfg.NotifierCircuit.Enabled)
}

func TestLoad_CustomCategories(t *testing.T) {
	t.Setenv("CATEGORIES", "Juvenil, Adulto ,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"Juvenil", "Adulto"}, cfg.Categories)
	require.False(t, cfg.HasCategory("Elite Open"))
}

func TestLoad_DuplicateCategories(t *testing.T) {
	t.Setenv("CATEGORIES", "Juvenil,Juvenil")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_NotifierRequiresURL(t *testing.T) {
	t.Setenv("NOTIFIER_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
}
