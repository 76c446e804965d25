package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/attestra/attestra/internal/reference/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&domain.Language{},
		&domain.CertificationType{},
		&domain.DeliveryOption{},
		&domain.TaxRate{},
	))
	return conn
}

func TestEnsureReferenceData_LanguageTiers(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, EnsureReferenceData(conn))

	tiers := map[string]int{
		"es": 1,
		"de": 2,
		"zh": 3,
	}
	for code, tier := range tiers {
		var language domain.Language
		require.NoError(t, conn.First(&language, "code = ?", code).Error)
		assert.Equal(t, tier, language.Tier, code)
		assert.True(t, language.IsActive, code)
	}
}

func TestEnsureReferenceData_Idempotent(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, EnsureReferenceData(conn))

	// An operator edit survives a reseed on restart.
	require.NoError(t, conn.Model(&domain.Language{}).
		Where("code = ?", "es").
		Update("tier", 2).Error)

	require.NoError(t, EnsureReferenceData(conn))

	var language domain.Language
	require.NoError(t, conn.First(&language, "code = ?", "es").Error)
	assert.Equal(t, 2, language.Tier)

	var count int64
	require.NoError(t, conn.Model(&domain.Language{}).Count(&count).Error)
	assert.EqualValues(t, 8, count)
}
