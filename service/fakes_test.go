package service

import (
	"context"
	"encoding/json"

	"base97/dao"
	"base97/models"

	"gorm.io/gorm"
)

// 内存假实现, 测试不依赖 MySQL

type fakePublisher struct {
	kinds    []string
	payloads []any
}

func (p *fakePublisher) Publish(_ context.Context, kind string, payload any) error {
	p.kinds = append(p.kinds, kind)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) last() (string, []byte) {
	if len(p.kinds) == 0 {
		return "", nil
	}
	raw, _ := json.Marshal(p.payloads[len(p.payloads)-1])
	return p.kinds[len(p.kinds)-1], raw
}

type fakeUsers struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: map[uint]*models.User{}, nextID: 1}
	for _, u := range users {
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) FindById(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) IsEmailExist(_ context.Context, email string) bool {
	_, err := f.FindByEmail(context.Background(), email)
	return err == nil
}

func (f *fakeUsers) Update(_ context.Context, userID uint, updates map[string]interface{}) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["password"]; ok {
		u.Password = v.(string)
	}
	if v, ok := updates["contact"]; ok {
		u.Contact = v.(string)
	}
	return nil
}

type fakeProducts struct {
	products map[uint]*models.Product
}

func (f *fakeProducts) FindById(_ context.Context, id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProducts) FindByIDs(_ context.Context, ids []uint) (map[uint]*models.Product, error) {
	result := map[uint]*models.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

type fakeReviews struct {
	countByUser map[uint]int64
	reviews     map[uint]*models.Review
	nextID      uint
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{countByUser: map[uint]int64{}, reviews: map[uint]*models.Review{}, nextID: 1}
}

func (f *fakeReviews) Create(_ context.Context, review *models.Review) error {
	review.ID = f.nextID
	f.nextID++
	f.reviews[review.ID] = review
	f.countByUser[review.UserID]++
	return nil
}

func (f *fakeReviews) FindById(_ context.Context, id uint) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeReviews) Delete(_ context.Context, id uint) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviews) ListByProduct(_ context.Context, productID uint) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) CountByUser(_ context.Context, userID uint) (int64, error) {
	return f.countByUser[userID], nil
}

func (f *fakeReviews) ListAllWithRefs(_ context.Context) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		out = append(out, r)
	}
	return out, nil
}

type fakeAffiliates struct {
	requests map[uint]*models.AffiliateRequest
	nextID   uint
	// 预置 SetApproved 的失败序列, 模拟推广码撞唯一索引
	approveErrs []error
}

func newFakeAffiliates() *fakeAffiliates {
	return &fakeAffiliates{requests: map[uint]*models.AffiliateRequest{}, nextID: 1}
}

func (f *fakeAffiliates) CreatePending(_ context.Context, userID uint) (*models.AffiliateRequest, error) {
	for _, r := range f.requests {
		if r.UserID == userID && r.IsPending() {
			return nil, dao.ErrPendingExists
		}
	}
	req := &models.AffiliateRequest{ID: f.nextID, UserID: userID, Status: models.AffiliateStatusPending}
	f.nextID++
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeAffiliates) FindById(_ context.Context, id uint) (*models.AffiliateRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeAffiliates) ListWithUsers(_ context.Context) ([]*models.AffiliateRequest, error) {
	var out []*models.AffiliateRequest
	for _, r := range f.requests {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAffiliates) FindApprovedByCode(_ context.Context, code string) (*models.AffiliateRequest, error) {
	for _, r := range f.requests {
		if r.Status == models.AffiliateStatusApproved && r.AffiliateCode != nil && *r.AffiliateCode == code {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAffiliates) SetApproved(_ context.Context, req *models.AffiliateRequest, code string) error {
	if len(f.approveErrs) > 0 {
		err := f.approveErrs[0]
		f.approveErrs = f.approveErrs[1:]
		if err != nil {
			return err
		}
	}
	stored := f.requests[req.ID]
	stored.Status = models.AffiliateStatusApproved
	stored.AffiliateCode = &code
	return nil
}

func (f *fakeAffiliates) SetRejected(_ context.Context, req *models.AffiliateRequest) error {
	f.requests[req.ID].Status = models.AffiliateStatusRejected
	return nil
}

type fakeOrders struct {
	orders map[uint]*models.Order
	items  map[uint][]*models.OrderItem
	nextID uint
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[uint]*models.Order{}, items: map[uint][]*models.OrderItem{}, nextID: 1}
}

func (f *fakeOrders) CreateWithItems(_ context.Context, order *models.Order, items []*models.OrderItem) error {
	order.ID = f.nextID
	f.nextID++
	for _, item := range items {
		item.OrderID = order.ID
	}
	f.orders[order.ID] = order
	f.items[order.ID] = items
	return nil
}

func (f *fakeOrders) FindById(_ context.Context, id uint) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeOrders) FindByIDWithDetail(ctx context.Context, id uint) (*models.Order, error) {
	return f.FindById(ctx, id)
}

func (f *fakeOrders) ListByUser(_ context.Context, userID uint) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListAllWithDetail(_ context.Context) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) Save(_ context.Context, order *models.Order) error {
	f.orders[order.ID] = order
	return nil
}
