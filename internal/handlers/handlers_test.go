package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"photostore/internal/models"
	"photostore/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// In-memory stores backing handler tests. They mirror the mongo
// repositories' contracts, including $addToSet and $pull behaviour on
// promotion back-references.

type fakeProductStore struct {
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[primitive.ObjectID]*models.Product)}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.EnsureSlug()
	s.products[product.ID] = product
	return nil
}

func (s *fakeProductStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	product, ok := s.products[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (s *fakeProductStore) List(_ context.Context, kind models.ProductKind, _, _ int) ([]models.Product, int64, error) {
	var out []models.Product
	for _, p := range s.products {
		if kind == "" || p.Kind == kind {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeProductStore) ListDetailed(_ context.Context, _ models.CatalogQuery) ([]models.ProductDetail, int64, error) {
	return nil, 0, nil
}

func (s *fakeProductStore) Update(_ context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.products[oid]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *fakeProductStore) SetPromotion(_ context.Context, id string, promotionID *primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	product, ok := s.products[oid]
	if !ok {
		return repository.ErrNotFound
	}
	product.Promotion = promotionID
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.products[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(s.products, oid)
	return nil
}

type fakePromotionStore struct {
	promotions map[primitive.ObjectID]*models.Promotion
}

func newFakePromotionStore(promotions ...*models.Promotion) *fakePromotionStore {
	s := &fakePromotionStore{promotions: make(map[primitive.ObjectID]*models.Promotion)}
	for _, p := range promotions {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.promotions[p.ID] = p
	}
	return s
}

func (s *fakePromotionStore) Create(_ context.Context, promotion *models.Promotion) error {
	if promotion.ID.IsZero() {
		promotion.ID = primitive.NewObjectID()
	}
	s.promotions[promotion.ID] = promotion
	return nil
}

func (s *fakePromotionStore) FindByID(_ context.Context, id string) (*models.Promotion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	promotion, ok := s.promotions[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *promotion
	return &clone, nil
}

func (s *fakePromotionStore) FindAll(_ context.Context) ([]models.Promotion, error) {
	var out []models.Promotion
	for _, p := range s.promotions {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakePromotionStore) FindAllWithDetails(_ context.Context) ([]bson.M, error) {
	return nil, nil
}

func (s *fakePromotionStore) Update(_ context.Context, id string, _ bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.promotions[oid]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *fakePromotionStore) AddProduct(_ context.Context, promotionID, productID primitive.ObjectID) error {
	promotion, ok := s.promotions[promotionID]
	if !ok {
		return repository.ErrNotFound
	}
	if !contains(promotion.Products, productID) {
		promotion.Products = append(promotion.Products, productID)
	}
	return nil
}

func (s *fakePromotionStore) RemoveProduct(_ context.Context, promotionID, productID primitive.ObjectID) error {
	promotion, ok := s.promotions[promotionID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := promotion.Products[:0]
	for _, id := range promotion.Products {
		if id != productID {
			kept = append(kept, id)
		}
	}
	promotion.Products = kept
	return nil
}

func (s *fakePromotionStore) AddSize(_ context.Context, promotionID, sizeID primitive.ObjectID) error {
	promotion, ok := s.promotions[promotionID]
	if !ok {
		return repository.ErrNotFound
	}
	if !contains(promotion.Sizes, sizeID) {
		promotion.Sizes = append(promotion.Sizes, sizeID)
	}
	return nil
}

func (s *fakePromotionStore) RemoveSize(_ context.Context, promotionID, sizeID primitive.ObjectID) error {
	promotion, ok := s.promotions[promotionID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := promotion.Sizes[:0]
	for _, id := range promotion.Sizes {
		if id != sizeID {
			kept = append(kept, id)
		}
	}
	promotion.Sizes = kept
	return nil
}

func (s *fakePromotionStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.promotions[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(s.promotions, oid)
	return nil
}

type fakeSizeStore struct {
	sizes map[primitive.ObjectID]*models.Size
}

func newFakeSizeStore(sizes ...*models.Size) *fakeSizeStore {
	s := &fakeSizeStore{sizes: make(map[primitive.ObjectID]*models.Size)}
	for _, size := range sizes {
		if size.ID.IsZero() {
			size.ID = primitive.NewObjectID()
		}
		s.sizes[size.ID] = size
	}
	return s
}

func (s *fakeSizeStore) Create(_ context.Context, size *models.Size) error {
	if size.ID.IsZero() {
		size.ID = primitive.NewObjectID()
	}
	s.sizes[size.ID] = size
	return nil
}

func (s *fakeSizeStore) FindAll(_ context.Context, _ string) ([]models.Size, error) {
	var out []models.Size
	for _, size := range s.sizes {
		out = append(out, *size)
	}
	return out, nil
}

func (s *fakeSizeStore) FindByID(_ context.Context, id string) (*models.Size, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	size, ok := s.sizes[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *size
	return &clone, nil
}

func (s *fakeSizeStore) Update(_ context.Context, id string, _ bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.sizes[oid]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *fakeSizeStore) SetPromotion(_ context.Context, id string, promotionID *primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	size, ok := s.sizes[oid]
	if !ok {
		return repository.ErrNotFound
	}
	size.Promotion = promotionID
	return nil
}

func (s *fakeSizeStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.sizes[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(s.sizes, oid)
	return nil
}

type fakeCategoryStore struct {
	categories map[primitive.ObjectID]*models.Category
}

func newFakeCategoryStore(categories ...*models.Category) *fakeCategoryStore {
	s := &fakeCategoryStore{categories: make(map[primitive.ObjectID]*models.Category)}
	for _, category := range categories {
		if category.ID.IsZero() {
			category.ID = primitive.NewObjectID()
		}
		s.categories[category.ID] = category
	}
	return s
}

func (s *fakeCategoryStore) Create(_ context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	category.EnsureSlug()
	if category.SubCategories == nil {
		category.SubCategories = []primitive.ObjectID{}
	}
	s.categories[category.ID] = category
	return nil
}

func (s *fakeCategoryStore) FindAll(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, category := range s.categories {
		out = append(out, *category)
	}
	return out, nil
}

func (s *fakeCategoryStore) FindByID(_ context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	category, ok := s.categories[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *category
	return &clone, nil
}

func (s *fakeCategoryStore) FindByName(_ context.Context, name string) (*models.Category, error) {
	for _, category := range s.categories {
		if strings.EqualFold(category.Name, name) {
			clone := *category
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeCategoryStore) Update(_ context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	category, ok := s.categories[oid]
	if !ok {
		return repository.ErrNotFound
	}
	if name, ok := fields["name"].(string); ok {
		category.Name = name
	}
	if slugged, ok := fields["slug"].(string); ok {
		category.Slug = slugged
	}
	return nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.categories[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(s.categories, oid)
	return nil
}

// fakeSubCategoryStore maintains the parent category's back-reference
// array the way the mongo repository does, but it never touches
// products referencing the subcategory.
type fakeSubCategoryStore struct {
	subs       map[primitive.ObjectID]*models.SubCategory
	categories *fakeCategoryStore
}

func newFakeSubCategoryStore(categories *fakeCategoryStore) *fakeSubCategoryStore {
	return &fakeSubCategoryStore{
		subs:       make(map[primitive.ObjectID]*models.SubCategory),
		categories: categories,
	}
}

func (s *fakeSubCategoryStore) Create(_ context.Context, sub *models.SubCategory) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if sub.Products == nil {
		sub.Products = []primitive.ObjectID{}
	}
	s.subs[sub.ID] = sub
	if parent, ok := s.categories.categories[sub.Category]; ok {
		if !contains(parent.SubCategories, sub.ID) {
			parent.SubCategories = append(parent.SubCategories, sub.ID)
		}
	}
	return nil
}

func (s *fakeSubCategoryStore) FindAll(_ context.Context, categoryID string) ([]models.SubCategory, error) {
	var filter primitive.ObjectID
	if categoryID != "" {
		oid, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			return nil, repository.ErrInvalidID
		}
		filter = oid
	}
	var out []models.SubCategory
	for _, sub := range s.subs {
		if filter.IsZero() || sub.Category == filter {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (s *fakeSubCategoryStore) FindByID(_ context.Context, id string) (*models.SubCategory, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	sub, ok := s.subs[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *sub
	return &clone, nil
}

func (s *fakeSubCategoryStore) Update(_ context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	sub, ok := s.subs[oid]
	if !ok {
		return repository.ErrNotFound
	}
	if name, ok := fields["name"].(string); ok {
		sub.Name = name
	}
	return nil
}

func (s *fakeSubCategoryStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.subs[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(s.subs, oid)
	for _, parent := range s.categories.categories {
		kept := parent.SubCategories[:0]
		for _, existing := range parent.SubCategories {
			if existing != oid {
				kept = append(kept, existing)
			}
		}
		parent.SubCategories = kept
	}
	return nil
}

type fakeCartStore struct {
	lines map[primitive.ObjectID]*models.CartLine
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{lines: make(map[primitive.ObjectID]*models.CartLine)}
}

func (s *fakeCartStore) Create(_ context.Context, line *models.CartLine) error {
	if line.ID.IsZero() {
		line.ID = primitive.NewObjectID()
	}
	s.lines[line.ID] = line
	return nil
}

func (s *fakeCartStore) FindAll(_ context.Context) ([]models.CartLine, error) {
	var out []models.CartLine
	for _, line := range s.lines {
		out = append(out, *line)
	}
	return out, nil
}

func (s *fakeCartStore) FindByID(_ context.Context, id string) (*models.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	line, ok := s.lines[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *line
	return &clone, nil
}

func (s *fakeCartStore) FindByUser(_ context.Context, userID string) ([]models.CartLineDetail, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	var out []models.CartLineDetail
	for _, line := range s.lines {
		if line.User == oid {
			out = append(out, models.CartLineDetail{
				ID:         line.ID,
				User:       line.User,
				Quantity:   line.Quantity,
				TotalPrice: line.TotalPrice,
				Images:     line.Images,
			})
		}
	}
	return out, nil
}

func (s *fakeCartStore) Update(_ context.Context, id string, quantity *int, totalPrice *float64) (*models.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	line, ok := s.lines[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if quantity != nil {
		line.Quantity = *quantity
	}
	if totalPrice != nil {
		line.TotalPrice = *totalPrice
	}
	clone := *line
	return &clone, nil
}

func (s *fakeCartStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.lines[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(s.lines, oid)
	return nil
}

type fakeOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (s *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders[order.ID] = order
	return nil
}

func (s *fakeOrderStore) FindAll(_ context.Context) ([]bson.M, error) {
	return nil, nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	order, ok := s.orders[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *fakeOrderStore) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	var out []models.Order
	for _, order := range s.orders {
		if order.User == oid {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) FindByTrackingCode(_ context.Context, code string) (*models.Order, error) {
	for _, order := range s.orders {
		if order.TrackingCode == code {
			clone := *order
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id string, status *models.DeliveryStatus, paid *bool) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	order, ok := s.orders[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if status != nil {
		order.DeliveryStatus = *status
	}
	if paid != nil {
		order.Paid = *paid
	}
	clone := *order
	return &clone, nil
}

func (s *fakeOrderStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidID
	}
	if _, ok := s.orders[oid]; !ok {
		return repository.ErrNotFound
	}
	delete(s.orders, oid)
	return nil
}

var _ ProductStore = (*fakeProductStore)(nil)
var _ PromotionStore = (*fakePromotionStore)(nil)
var _ SizeStore = (*fakeSizeStore)(nil)
var _ CategoryStore = (*fakeCategoryStore)(nil)
var _ SubCategoryStore = (*fakeSubCategoryStore)(nil)
var _ CartStore = (*fakeCartStore)(nil)
var _ OrderStore = (*fakeOrderStore)(nil)
