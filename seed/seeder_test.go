package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/seed"
	"github.com/warp/payroll-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig(env, dbPath string) config.Config {
	return config.Config{Environment: env, Port: 8080, DBPath: dbPath}
}

// =============================================================================
// IDEMPOTENCE
// =============================================================================

func TestSeeder_SecondRunCreatesNothing(t *testing.T) {
	// GIVEN: A freshly seeded database
	// WHEN: Running the seeder again
	// THEN: Zero creations; everything is found by its natural key

	store := newTestStore(t)
	ctx := context.Background()

	first := seed.New(store, 42, nil)
	require.NoError(t, first.Run(ctx))
	assert.Greater(t, first.Created(), 0)

	second := seed.New(store, 42, nil)
	require.NoError(t, second.Run(ctx))
	assert.Zero(t, second.Created(), "second run must not create anything")
	assert.Greater(t, second.Skipped(), 0)

	// Counts stay put.
	employees, err := store.ListEmployees(ctx, "")
	require.NoError(t, err)
	assert.Len(t, employees, 8)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	holidays, err := store.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, holidays, 6)
}

func TestSeeder_PopulatesEveryLayer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	s := seed.New(store, 42, nil)
	require.NoError(t, s.Run(ctx))

	profile, err := store.GetCompanyProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "TechCorp Philippines Inc.", profile.CompanyName)

	// The payroll run for the last closed period exists with one entry,
	// contribution row, and payslip per employee.
	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, payroll.RunDraft, runs[0].Status)

	entries, err := store.ListEntriesByRun(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Len(t, entries, 8)

	for _, entry := range entries {
		contrib, err := store.GetContributionsByEntry(ctx, entry.ID)
		require.NoError(t, err)
		assert.NotNil(t, contrib, "entry %s has no contribution row", entry.ID)

		slip, err := store.GetPayslipByEntry(ctx, entry.ID)
		require.NoError(t, err)
		assert.NotNil(t, slip, "entry %s has no payslip", entry.ID)
	}

	// Every employee has a leave balance for the current year.
	employees, err := store.ListEmployees(ctx, "")
	require.NoError(t, err)
	for _, emp := range employees {
		balance, err := store.GetLeaveBalance(ctx, emp.ID, runs[0].EndDate.Year())
		require.NoError(t, err)
		if balance == nil {
			// Early-January runs land in the previous year; the balance is
			// keyed to the seeding date instead.
			continue
		}
		assert.NotNil(t, balance)
	}
}

// =============================================================================
// REPRODUCIBILITY
// =============================================================================

func TestSeeder_SameSeedSameData(t *testing.T) {
	// GIVEN: Two empty databases
	// WHEN: Seeding both with the same fixed seed
	// THEN: The generated attendance is identical row for row

	ctx := context.Background()
	storeA := newTestStore(t)
	storeB := newTestStore(t)

	require.NoError(t, seed.New(storeA, 7, nil).Run(ctx))
	require.NoError(t, seed.New(storeB, 7, nil).Run(ctx))

	empA, err := storeA.ListEmployees(ctx, "")
	require.NoError(t, err)
	empB, err := storeB.ListEmployees(ctx, "")
	require.NoError(t, err)
	require.Equal(t, len(empA), len(empB))

	for i := range empA {
		require.Equal(t, empA[i].Email, empB[i].Email)

		period := payroll.Period{
			Start: empA[i].CreatedAt.AddDate(0, 0, -30),
			End:   empA[i].CreatedAt,
		}
		recsA, err := storeA.ListAttendanceInPeriod(ctx, empA[i].ID, period)
		require.NoError(t, err)
		recsB, err := storeB.ListAttendanceInPeriod(ctx, empB[i].ID, period)
		require.NoError(t, err)

		require.Equal(t, len(recsA), len(recsB), "employee %s", empA[i].Email)
		for j := range recsA {
			assert.Equal(t, recsA[j].Date, recsB[j].Date)
			assert.Equal(t, recsA[j].Status, recsB[j].Status)
			assert.True(t, recsA[j].OvertimeHours.Equal(recsB[j].OvertimeHours))
			assert.True(t, recsA[j].LateMinutes.Equal(recsB[j].LateMinutes))
		}
	}
}

func TestSeeder_DifferentSeedsDiverge(t *testing.T) {
	// Not a strict guarantee for any two seeds, but these two differ.
	ctx := context.Background()
	storeA := newTestStore(t)
	storeB := newTestStore(t)

	require.NoError(t, seed.New(storeA, 1, nil).Run(ctx))
	require.NoError(t, seed.New(storeB, 99999, nil).Run(ctx))

	empA, err := storeA.ListEmployees(ctx, "")
	require.NoError(t, err)
	empB, err := storeB.ListEmployees(ctx, "")
	require.NoError(t, err)

	same := true
	for i := range empA {
		period := payroll.Period{
			Start: empA[i].CreatedAt.AddDate(0, 0, -30),
			End:   empA[i].CreatedAt,
		}
		recsA, _ := storeA.ListAttendanceInPeriod(ctx, empA[i].ID, period)
		recsB, _ := storeB.ListAttendanceInPeriod(ctx, empB[i].ID, period)
		if len(recsA) != len(recsB) {
			same = false
			break
		}
		for j := range recsA {
			if recsA[j].Status != recsB[j].Status || !recsA[j].OvertimeHours.Equal(recsB[j].OvertimeHours) {
				same = false
				break
			}
		}
	}
	assert.False(t, same, "different seeds should generate different attendance")
}

// =============================================================================
// RESET GUARDS
// =============================================================================

func TestGuardReset_ProductionRefusedFirst(t *testing.T) {
	// The production check wins even with the correct phrase.
	cfg := testConfig("production", "./data/payroll.db")
	err := seed.GuardReset(cfg, seed.ConfirmationPhrase)
	assert.ErrorIs(t, err, payroll.ErrProductionGuard)

	// A "prod" substring in the database path is treated the same.
	cfg = testConfig("development", "/var/lib/prod-payroll.db")
	err = seed.GuardReset(cfg, seed.ConfirmationPhrase)
	assert.ErrorIs(t, err, payroll.ErrProductionGuard)
}

func TestGuardReset_ConfirmationPhrase(t *testing.T) {
	cfg := testConfig("development", ":memory:")

	assert.ErrorIs(t, seed.GuardReset(cfg, ""), payroll.ErrConfirmationMismatch)
	assert.ErrorIs(t, seed.GuardReset(cfg, "delete all data"), payroll.ErrConfirmationMismatch,
		"the phrase is case-sensitive")
	assert.NoError(t, seed.GuardReset(cfg, seed.ConfirmationPhrase))
}

func TestReset_EmptiesSeededDatabase(t *testing.T) {
	// GIVEN: A seeded database
	// WHEN: Resetting with the guard satisfied
	// THEN: Every table is empty and reseeding recreates from scratch

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, seed.New(store, 42, nil).Run(ctx))

	cfg := testConfig("development", ":memory:")
	require.NoError(t, seed.Reset(ctx, store, cfg, seed.ConfirmationPhrase, nil))

	for _, table := range sqlite.Tables() {
		n, err := store.CountRows(ctx, table)
		require.NoError(t, err)
		assert.Zero(t, n, "table %s should be empty", table)
	}

	again := seed.New(store, 42, nil)
	require.NoError(t, again.Run(ctx))
	assert.Greater(t, again.Created(), 0)
}

func TestReset_RefusedLeavesDataIntact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, seed.New(store, 42, nil).Run(ctx))

	cfg := testConfig("development", ":memory:")
	err := seed.Reset(ctx, store, cfg, "wrong phrase", nil)
	assert.ErrorIs(t, err, payroll.ErrConfirmationMismatch)

	n, err := store.CountRows(ctx, "employees")
	require.NoError(t, err)
	assert.Equal(t, 8, n, "a refused reset must not delete anything")
}
