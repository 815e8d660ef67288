package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appStats "github.com/coupon-quest/coupon-quest/internal/application/stats"
	"github.com/coupon-quest/coupon-quest/internal/domain/coupon"
)

type stubCouponRepo struct {
	unclaimed int64
	total     int64
	inserted  []string
}

func (r *stubCouponRepo) GetByClaimer(context.Context, string) (*coupon.Coupon, error) {
	return nil, nil
}

func (r *stubCouponRepo) ClaimNext(context.Context, string) (*coupon.Coupon, bool, error) {
	return nil, false, nil
}

func (r *stubCouponRepo) InsertBatch(_ context.Context, codes []string) (int64, error) {
	r.inserted = append(r.inserted, codes...)
	return int64(len(codes)), nil
}

func (r *stubCouponRepo) CountUnclaimed(context.Context) (int64, error) {
	return r.unclaimed, nil
}

func (r *stubCouponRepo) Count(context.Context) (int64, error) {
	return r.total, nil
}

type stubStatsRepo struct {
	total int64
	err   error
}

func (r *stubStatsRepo) Increment(context.Context) error { return nil }

func (r *stubStatsRepo) TotalGiven(context.Context) (int64, error) {
	return r.total, r.err
}

func newTestRouter(statsRepo *stubStatsRepo, couponRepo *stubCouponRepo, adminKeyHash string) http.Handler {
	svc := appStats.NewService(statsRepo, couponRepo, zerolog.Nop())
	return NewServer(svc, adminKeyHash).Router()
}

func TestGetStats(t *testing.T) {
	router := newTestRouter(&stubStatsRepo{total: 42}, &stubCouponRepo{}, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(42), body["lifetime_coupons_given"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestGetStatsStoreFailure(t *testing.T) {
	router := newTestRouter(&stubStatsRepo{err: errors.New("boom")}, &stubCouponRepo{}, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminHiddenWithoutHash(t *testing.T) {
	router := newTestRouter(&stubStatsRepo{}, &stubCouponRepo{}, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/pool", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRequiresKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-key"), bcrypt.MinCost)
	require.NoError(t, err)
	router := newTestRouter(&stubStatsRepo{}, &stubCouponRepo{}, string(hash))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/pool", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/pool", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminPool(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-key"), bcrypt.MinCost)
	require.NoError(t, err)
	router := newTestRouter(&stubStatsRepo{}, &stubCouponRepo{unclaimed: 3, total: 10}, string(hash))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/pool", nil)
	req.Header.Set("Authorization", "Bearer correct-key")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status appStats.PoolStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, int64(3), status.Remaining)
	assert.Equal(t, int64(10), status.Total)
}

func TestAddCoupons(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-key"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &stubCouponRepo{}
	router := newTestRouter(&stubStatsRepo{}, repo, string(hash))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/coupons",
		strings.NewReader(`{"codes":[" QUEST-1 ","QUEST-2",""]}`))
	req.Header.Set("Authorization", "Bearer correct-key")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"QUEST-1", "QUEST-2"}, repo.inserted)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin/coupons", strings.NewReader(`{"codes":[]}`))
	req.Header.Set("Authorization", "Bearer correct-key")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
