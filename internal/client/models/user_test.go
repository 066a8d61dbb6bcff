package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnums_Valid(t *testing.T) {
	require.True(t, HardwareJetson.Valid())
	require.True(t, HardwareRaspberryPi.Valid())
	require.False(t, Hardware("Mainframe").Valid())

	require.True(t, ExperienceBeginner.Valid())
	require.False(t, Experience("Expert").Valid())

	require.True(t, LanguageUrdu.Valid())
	require.False(t, Language("French").Valid())

	require.True(t, BackgroundSoftware.Valid())
	require.True(t, BackgroundBeginner.Valid())
	require.False(t, Background("academic").Valid())
}

func TestUser_JSONNeverContainsPassword(t *testing.T) {
	u := User{
		ID:         "u1",
		Name:       "Ada",
		Email:      "ada@example.com",
		Hardware:   HardwareJetson,
		Experience: ExperienceAdvanced,
		Language:   LanguageEnglish,
		Background: BackgroundSoftware,
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	require.False(t, strings.Contains(strings.ToLower(string(b)), "password"))
	require.Contains(t, string(b), `"email":"ada@example.com"`)
}
