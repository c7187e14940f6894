package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

func TestSettingsServiceUpdate(t *testing.T) {
	store := rosterFixture()
	svc := NewSettingsService(store, nil, zap.NewNop())

	updated, err := svc.Update(ReportSettingsRequest{
		HeadOfSchool: "  Dr. A. Mensah  ",
		Signature:    "A. Mensah",
		AuthPrefix:   "CC-2026-TR",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. A. Mensah", updated.HeadOfSchool)
	assert.Equal(t, "CC-2026-TR", svc.Get().AuthPrefix)

	_, err = svc.Update(ReportSettingsRequest{Signature: "orphan"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingsServiceLogo(t *testing.T) {
	store := rosterFixture()
	svc := NewSettingsService(store, nil, zap.NewNop())

	assert.Empty(t, svc.Logo())
	svc.SetLogo(LogoRequest{Logo: "data:image/png;base64,iVBOR"})
	assert.Equal(t, "data:image/png;base64,iVBOR", svc.Logo())

	// An empty payload clears the logo.
	svc.SetLogo(LogoRequest{})
	assert.Empty(t, svc.Logo())
}
