package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
	"gorm.io/gorm"
)

func TestEnsureCatalogue_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&subsidydomain.SubsidyRecord{}))

	require.NoError(t, EnsureCatalogue(db))

	var count int64
	require.NoError(t, db.Model(&subsidydomain.SubsidyRecord{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	// A second run must not duplicate rows.
	require.NoError(t, EnsureCatalogue(db))
	require.NoError(t, db.Model(&subsidydomain.SubsidyRecord{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	var national subsidydomain.SubsidyRecord
	require.NoError(t, db.Where("name = ?", "Ayuda Nacional Autoconsumo Residencial 2024").First(&national).Error)
	assert.Equal(t, "ES", national.RegionCode)
	assert.Equal(t, subsidydomain.KindAmountPerKwp, national.Kind)
	assert.Equal(t, 300.0, national.Value)
}
