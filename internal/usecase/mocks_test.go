package usecase

import (
	"context"
	"sync"
	"time"

	"spice-store/internal/data/entity"
	"spice-store/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	u.ResetPasswordToken = &tokenHash
	u.ResetPasswordExpires = &expiresAt
	return nil
}

func (f *fakeUserRepo) FindByValidResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePasswordAndClearToken(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	u.PasswordHash = passwordHash
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByUTR(ctx context.Context, utr string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.UTR != nil && *o.UTR == utr {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Order
	for _, o := range f.orders {
		if status != nil && o.Status != *status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrderRepo) CountAll(ctx context.Context, status *entity.OrderStatus) (int64, error) {
	orders, _ := f.FindAll(ctx, status, 0, 0)
	return int64(len(orders)), nil
}

func (f *fakeOrderRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Order
	for _, o := range f.orders {
		if o.UserID != nil && *o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	orders, _ := f.FindByUserID(ctx, userID, 0, 0)
	return int64(len(orders)), nil
}

func (f *fakeOrderRepo) TransitionStatus(ctx context.Context, id uuid.UUID, to entity.OrderStatus, from []entity.OrderStatus, refs repository.TransitionRefs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return repository.ErrStateConflict
	}
	allowed := false
	for _, s := range from {
		if o.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return repository.ErrStateConflict
	}
	o.Status = to
	if refs.TransactionID != nil {
		o.TransactionID = refs.TransactionID
	}
	if refs.UTR != nil {
		o.UTR = refs.UTR
	}
	if refs.VerifiedBy != nil {
		o.VerifiedBy = refs.VerifiedBy
	}
	o.UpdatedAt = time.Now()
	return nil
}

type fakeSubscriberRepo struct {
	mu   sync.Mutex
	subs map[string]*entity.Subscriber
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{subs: make(map[string]*entity.Subscriber)}
}

func (f *fakeSubscriberRepo) Create(ctx context.Context, sub *entity.Subscriber) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *sub
	f.subs[sub.Email] = &cp
	return nil
}

func (f *fakeSubscriberRepo) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.subs[email]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSubscriberRepo) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Subscriber
	for _, s := range f.subs {
		if activeOnly && !s.IsActive {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSubscriberRepo) ActiveEmails(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, s := range f.subs {
		if s.IsActive {
			out = append(out, s.Email)
		}
	}
	return out, nil
}

func (f *fakeSubscriberRepo) SetActive(ctx context.Context, email string, active bool, unsubscribedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[email]
	if !ok {
		return nil
	}
	s.IsActive = active
	s.UnsubscribedAt = unsubscribedAt
	return nil
}

func (f *fakeSubscriberRepo) Stats(ctx context.Context, recentSince time.Time) (*repository.SubscriberStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &repository.SubscriberStats{}
	for _, s := range f.subs {
		stats.Total++
		if s.IsActive {
			stats.Active++
		} else {
			stats.Unsubscribed++
		}
		if s.SubscribedAt.After(recentSince) {
			stats.RecentSignups++
		}
	}
	return stats, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Product
	for _, p := range f.products {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByCategory(ctx context.Context, category entity.ProductCategory) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Product
	for _, p := range f.products {
		if p.IsActive && p.Category == category {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (f *fakeProductRepo) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.Stock < qty {
		return repository.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (f *fakeProductRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		p.Stock += qty
	}
	return nil
}

type fakeAddressRepo struct {
	mu        sync.Mutex
	addresses map[uuid.UUID]*entity.Address
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[uuid.UUID]*entity.Address)}
}

func (f *fakeAddressRepo) Create(ctx context.Context, address *entity.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *address
	f.addresses[address.ID] = &cp
	return nil
}

func (f *fakeAddressRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.addresses[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAddressRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Address
	for _, a := range f.addresses {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAddressRepo) Update(ctx context.Context, address *entity.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *address
	f.addresses[address.ID] = &cp
	return nil
}

func (f *fakeAddressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.addresses, id)
	return nil
}

func (f *fakeAddressRepo) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.addresses {
		if a.UserID == userID {
			a.IsDefault = a.ID == addressID
		}
	}
	return nil
}

func (f *fakeAddressRepo) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.addresses {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	return nil
}

func newFakeRepository() *repository.Repository {
	return &repository.Repository{
		User:       newFakeUserRepo(),
		Order:      newFakeOrderRepo(),
		Subscriber: newFakeSubscriberRepo(),
		Product:    newFakeProductRepo(),
		Address:    newFakeAddressRepo(),
	}
}

// fakeMailer records sends so tests can assert which notifications
// went out. It always reports itself as configured.
type fakeMailer struct {
	mu             sync.Mutex
	welcomes       []string
	resets         []string
	changed        []string
	subWelcomes    []string
	reactivations  []string
	adminNotices   []string
	newsletterBCCs [][]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{}
}

func (f *fakeMailer) Configured() bool { return true }

func (f *fakeMailer) SendWelcome(to string, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeMailer) SendPasswordReset(to, name, resetURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, to)
	return nil
}

func (f *fakeMailer) SendPasswordChanged(to, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changed = append(f.changed, to)
	return nil
}

func (f *fakeMailer) SendSubscriberWelcome(to string, reactivation bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reactivation {
		f.reactivations = append(f.reactivations, to)
	} else {
		f.subWelcomes = append(f.subWelcomes, to)
	}
	return nil
}

func (f *fakeMailer) SendAdminNewSubscriber(subscriberEmail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adminNotices = append(f.adminNotices, subscriberEmail)
	return nil
}

func (f *fakeMailer) SendNewsletter(recipients []string, subject, content, htmlContent string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newsletterBCCs = append(f.newsletterBCCs, recipients)
	return nil
}

func (f *fakeMailer) adminNoticeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.adminNotices)
}

func (f *fakeMailer) reactivationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reactivations)
}
