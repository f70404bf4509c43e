package admins

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/royal450/DaillyEarners2/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Submission{}))
	return db
}

func TestUserProofKeys(t *testing.T) {
	db := openTestDB(t)

	proofA := "proofs/7/aaaa.png"
	proofB := "proofs/7/bbbb.png"
	other := "proofs/8/cccc.png"
	rows := []models.Submission{
		{UserID: 7, TaskID: 1, TaskTitle: "t1", TaskPrice: 10, ProofURL: &proofA, Status: models.SubmissionStatusApproved, SubmittedAt: time.Now()},
		{UserID: 7, TaskID: 2, TaskTitle: "t2", TaskPrice: 10, ProofURL: &proofB, Status: models.SubmissionStatusPending, SubmittedAt: time.Now()},
		{UserID: 7, TaskID: 3, TaskTitle: "t3", TaskPrice: 10, Status: models.SubmissionStatusPending, SubmittedAt: time.Now()},
		{UserID: 8, TaskID: 1, TaskTitle: "t1", TaskPrice: 10, ProofURL: &other, Status: models.SubmissionStatusPending, SubmittedAt: time.Now()},
	}
	require.NoError(t, db.Create(&rows).Error)

	keys := userProofKeys(db, 7)
	assert.ElementsMatch(t, []string{proofA, proofB}, keys)
	assert.NotContains(t, keys, other)

	assert.Empty(t, userProofKeys(db, 99), "user without submissions has nothing to clean")
}
