package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/domain/coupon"
	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription"
	"github.com/kinetix-inc/kinetix/internal/domain/subscription/valueobjects"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	apperrors "github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

func newTestTxManager(t *testing.T) *db.TransactionManager {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db.NewTransactionManager(gdb)
}

type memSubscriptionRepo struct {
	nextID uint
	subs   map[uint]*subscription.Subscription
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{subs: make(map[uint]*subscription.Subscription)}
}

func (r *memSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	r.nextID++
	if err := sub.SetID(r.nextID); err != nil {
		return err
	}
	r.subs[sub.ID()] = sub
	return nil
}

func (r *memSubscriptionRepo) Update(ctx context.Context, sub *subscription.Subscription) error {
	r.subs[sub.ID()] = sub
	return nil
}

func (r *memSubscriptionRepo) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	return sub, nil
}

func (r *memSubscriptionRepo) List(ctx context.Context, offset, limit int, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
	return nil, 0, nil
}

func (r *memSubscriptionRepo) GetActiveByMember(ctx context.Context, memberID uint) (*subscription.Subscription, error) {
	for _, sub := range r.subs {
		if sub.MemberID() == memberID && sub.Status() == valueobjects.StatusActive {
			return sub, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no active subscription")
}

func (r *memSubscriptionRepo) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	return nil, nil
}

func (r *memSubscriptionRepo) Delete(ctx context.Context, id uint) error {
	delete(r.subs, id)
	return nil
}

type memPackageRepo struct {
	packages map[uint]*catalog.Package
}

func (r *memPackageRepo) Create(ctx context.Context, pkg *catalog.Package) error { return nil }
func (r *memPackageRepo) Update(ctx context.Context, pkg *catalog.Package) error { return nil }

func (r *memPackageRepo) GetByID(ctx context.Context, id uint) (*catalog.Package, error) {
	pkg, ok := r.packages[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("package not found")
	}
	return pkg, nil
}

func (r *memPackageRepo) List(ctx context.Context, offset, limit int, activeOnly bool) ([]*catalog.Package, int64, error) {
	return nil, 0, nil
}

func (r *memPackageRepo) Delete(ctx context.Context, id uint) error { return nil }

type memMemberRepo struct {
	members map[uint]*member.Member
}

func (r *memMemberRepo) Create(ctx context.Context, m *member.Member) error { return nil }
func (r *memMemberRepo) Update(ctx context.Context, m *member.Member) error { return nil }

func (r *memMemberRepo) GetByID(ctx context.Context, id uint) (*member.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("member not found")
	}
	return m, nil
}

func (r *memMemberRepo) GetByNumber(ctx context.Context, memberNumber string) (*member.Member, error) {
	return nil, apperrors.NewNotFoundError("member not found")
}

func (r *memMemberRepo) List(ctx context.Context, offset, limit int, search string) ([]*member.Member, int64, error) {
	return nil, 0, nil
}

func (r *memMemberRepo) ListContacts(ctx context.Context, activeOnly bool) ([]member.Contact, error) {
	return nil, nil
}

func (r *memMemberRepo) Delete(ctx context.Context, id uint) error { return nil }

type memCouponRepo struct {
	coupons map[string]*coupon.Coupon
}

func newMemCouponRepo() *memCouponRepo {
	return &memCouponRepo{coupons: make(map[string]*coupon.Coupon)}
}

func (r *memCouponRepo) Create(ctx context.Context, c *coupon.Coupon) error {
	r.coupons[c.Code()] = c
	return nil
}

func (r *memCouponRepo) Update(ctx context.Context, c *coupon.Coupon) error {
	r.coupons[c.Code()] = c
	return nil
}

func (r *memCouponRepo) GetByID(ctx context.Context, id uint) (*coupon.Coupon, error) {
	return nil, apperrors.NewNotFoundError("coupon not found")
}

func (r *memCouponRepo) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	c, ok := r.coupons[code]
	if !ok {
		return nil, apperrors.NewNotFoundError("coupon not found")
	}
	return c, nil
}

func (r *memCouponRepo) GetByCodeForUpdate(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.GetByCode(ctx, code)
}

func (r *memCouponRepo) List(ctx context.Context, offset, limit int, activeOnly bool) ([]*coupon.Coupon, int64, error) {
	return nil, 0, nil
}

func (r *memCouponRepo) Delete(ctx context.Context, id uint) error { return nil }

type memInvoiceRepo struct {
	invoices []*billing.Invoice
}

func (r *memInvoiceRepo) Create(ctx context.Context, invoice *billing.Invoice) error {
	r.invoices = append(r.invoices, invoice)
	return invoice.SetID(uint(len(r.invoices)))
}

func (r *memInvoiceRepo) Update(ctx context.Context, invoice *billing.Invoice) error { return nil }

func (r *memInvoiceRepo) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	return nil, apperrors.NewNotFoundError("invoice not found")
}

func (r *memInvoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	return nil, apperrors.NewNotFoundError("invoice not found")
}

func (r *memInvoiceRepo) List(ctx context.Context, offset, limit int, filter billing.InvoiceListFilter) ([]*billing.Invoice, int64, error) {
	return nil, 0, nil
}

type memSequenceRepo struct {
	counters map[string]uint64
}

func newMemSequenceRepo() *memSequenceRepo {
	return &memSequenceRepo{counters: make(map[string]uint64)}
}

func (r *memSequenceRepo) Next(ctx context.Context, name string) (uint64, error) {
	r.counters[name]++
	return r.counters[name], nil
}

func mustPackage(t *testing.T, id uint, name string, durationDays int, price string) *catalog.Package {
	t.Helper()
	pkg, err := catalog.NewPackage(name, "", durationDays, decimal.RequireFromString(price), nil, false)
	require.NoError(t, err)
	require.NoError(t, pkg.SetID(id))
	return pkg
}

func mustMember(t *testing.T, id uint) *member.Member {
	t.Helper()
	m, err := member.NewMember("MBR-00001", "Sara", "sara@example.com", "")
	require.NoError(t, err)
	require.NoError(t, m.SetID(id))
	return m
}

type renewFixture struct {
	uc               *RenewSubscriptionUseCase
	subscriptionRepo *memSubscriptionRepo
	couponRepo       *memCouponRepo
	invoiceRepo      *memInvoiceRepo
	old              *subscription.Subscription
}

func newRenewFixture(t *testing.T) *renewFixture {
	t.Helper()

	subscriptionRepo := newMemSubscriptionRepo()
	packageRepo := &memPackageRepo{packages: map[uint]*catalog.Package{
		1: mustPackage(t, 1, "Monthly", 30, "300"),
		2: mustPackage(t, 2, "Quarterly", 90, "750"),
	}}
	memberRepo := &memMemberRepo{members: map[uint]*member.Member{7: mustMember(t, 7)}}
	couponRepo := newMemCouponRepo()
	invoiceRepo := &memInvoiceRepo{}

	old, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
		MemberID:     7,
		PackageID:    1,
		PackageName:  "Monthly",
		DurationDays: 30,
		StartDate:    time.Now().UTC().AddDate(0, 0, -10),
		TotalPrice:   decimal.RequireFromString("300"),
		FinalPrice:   decimal.RequireFromString("300"),
	})
	require.NoError(t, err)
	require.NoError(t, subscriptionRepo.Create(context.Background(), old))

	uc := NewRenewSubscriptionUseCase(
		subscriptionRepo,
		packageRepo,
		memberRepo,
		couponRepo,
		invoiceRepo,
		newMemSequenceRepo(),
		newTestTxManager(t),
		logger.NewLogger(),
	)
	return &renewFixture{
		uc:               uc,
		subscriptionRepo: subscriptionRepo,
		couponRepo:       couponRepo,
		invoiceRepo:      invoiceRepo,
		old:              old,
	}
}

func TestRenewSubscription_RetiresOldRowAndOpensBackToBackTerm(t *testing.T) {
	f := newRenewFixture(t)

	result, err := f.uc.Execute(context.Background(), RenewSubscriptionCommand{
		SubscriptionID: f.old.ID(),
		PackageID:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StatusExpired, result.Previous.Status())
	assert.Equal(t, valueobjects.StatusActive, result.Subscription.Status())
	assert.NotEqual(t, f.old.ID(), result.Subscription.ID(), "renewal opens a fresh row")

	// Back-to-back: the new term starts exactly where the old one ends and
	// runs for the new package's duration.
	assert.True(t, result.Subscription.StartDate().Equal(f.old.EndDate()),
		"new term starts at the old end date")
	wantEnd := result.Subscription.StartDate().AddDate(0, 0, 90)
	assert.True(t, result.Subscription.EndDate().Equal(wantEnd),
		"new term runs for the new package duration")

	assert.Equal(t, uint(2), result.Subscription.PackageID())
	require.NotNil(t, result.Invoice)
	assert.True(t, strings.HasPrefix(result.Invoice.InvoiceNumber(), "INV-"))
	assert.True(t, result.Invoice.Total().Equal(decimal.RequireFromString("750")))
	require.Len(t, f.invoiceRepo.invoices, 1)
}

func TestRenewSubscription_ZeroPackageKeepsCurrentOne(t *testing.T) {
	f := newRenewFixture(t)

	result, err := f.uc.Execute(context.Background(), RenewSubscriptionCommand{
		SubscriptionID: f.old.ID(),
	})
	require.NoError(t, err)

	assert.Equal(t, f.old.PackageID(), result.Subscription.PackageID())
	assert.Equal(t, 30, result.Subscription.DurationDays())
}

func TestRenewSubscription_CancelledSubscriptionRejected(t *testing.T) {
	f := newRenewFixture(t)
	require.NoError(t, f.old.Cancel())

	_, err := f.uc.Execute(context.Background(), RenewSubscriptionCommand{
		SubscriptionID: f.old.ID(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
