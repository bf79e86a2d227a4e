package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
	domainsvc "github.com/storecore/commerce/internal/domain/service"
	"github.com/storecore/commerce/internal/domain/valueobject"
	"github.com/storecore/commerce/pkg/helpers"
)

const productCacheTTL = 5 * time.Minute

// ProductService is the application boundary for the catalog: it turns
// plain commands into value objects, delegates to the domain service,
// and wraps every failure with the operation name. Cache and search
// index updates are best-effort and never fail a command.
type ProductService struct {
	Domain    *domainsvc.ProductService
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Redis     *redis.Client
	Logger    *logrus.Logger
}

func NewProductService(domain *domainsvc.ProductService, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, rdb *redis.Client, logger *logrus.Logger) *ProductService {
	return &ProductService{
		Domain:    domain,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		ES:        es,
		ESIndex:   esIndex,
		Redis:     rdb,
		Logger:    logger,
	}
}

// ProductView is the plain-data shape of a product crossing the
// application boundary (and the shape cached in Redis).
type ProductView struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceAmount   string    `json:"price_amount"`
	PriceCurrency string    `json:"price_currency"`
	StockQuantity int       `json:"stock_quantity"`
	CategoryID    string    `json:"category_id"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toProductView(p *entity.Product) *ProductView {
	return &ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PriceAmount:   p.Price.Amount().String(),
		PriceCurrency: p.Price.Currency(),
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type CreateProductCommand struct {
	Name          string
	Description   string
	PriceAmount   string
	PriceCurrency string
	StockQuantity int
	CategoryID    string
}

type UpdateProductCommand struct {
	Name          string
	Description   string
	PriceAmount   string
	PriceCurrency string
	StockQuantity int
}

func parseMoney(amount, currency string) (valueobject.Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return valueobject.Money{}, errs.Wrap(errs.Validation, fmt.Sprintf("invalid amount %q", amount), err)
	}
	return valueobject.NewMoney(d, currency)
}

func opErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func (s *ProductService) Create(ctx context.Context, cmd CreateProductCommand) (*ProductView, error) {
	const op = "create product"
	price, err := parseMoney(cmd.PriceAmount, cmd.PriceCurrency)
	if err != nil {
		return nil, opErr(op, err)
	}
	p, err := s.Domain.Create(ctx, cmd.Name, cmd.Description, price, cmd.StockQuantity, cmd.CategoryID)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.index(ctx, p)
	return toProductView(p), nil
}

func (s *ProductService) Update(ctx context.Context, id string, cmd UpdateProductCommand) (*ProductView, error) {
	const op = "update product"
	price, err := parseMoney(cmd.PriceAmount, cmd.PriceCurrency)
	if err != nil {
		return nil, opErr(op, err)
	}
	p, err := s.Domain.Update(ctx, id, cmd.Name, cmd.Description, price, cmd.StockQuantity)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.afterMutation(ctx, p)
	return toProductView(p), nil
}

func (s *ProductService) AdjustStock(ctx context.Context, id string, delta int) (*ProductView, error) {
	const op = "adjust stock"
	p, err := s.Domain.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.afterMutation(ctx, p)
	return toProductView(p), nil
}

func (s *ProductService) ChangeCategory(ctx context.Context, id, categoryID string) (*ProductView, error) {
	const op = "change product category"
	p, err := s.Domain.ChangeCategory(ctx, id, categoryID)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.afterMutation(ctx, p)
	return toProductView(p), nil
}

func (s *ProductService) UpdatePrice(ctx context.Context, id, amount, currency string) (*ProductView, error) {
	const op = "update product price"
	price, err := parseMoney(amount, currency)
	if err != nil {
		return nil, opErr(op, err)
	}
	p, err := s.Domain.UpdatePrice(ctx, id, price)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.afterMutation(ctx, p)
	return toProductView(p), nil
}

func (s *ProductService) Deactivate(ctx context.Context, id string) error {
	const op = "deactivate product"
	if err := s.Domain.Deactivate(ctx, id); err != nil {
		return opErr(op, err)
	}
	s.invalidate(ctx, id)
	s.deleteFromIndex(ctx, id)
	return nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*ProductView, error) {
	const op = "get product"
	if s.Redis != nil {
		var cached ProductView
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, productCacheKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	p, err := s.Domain.FindByID(ctx, id)
	if err != nil {
		return nil, opErr(op, err)
	}
	view := toProductView(p)
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, productCacheKey(id), view, productCacheTTL); err != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("product cache write failed")
		}
	}
	return view, nil
}

func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]*ProductView, error) {
	const op = "list products"
	list, err := s.Domain.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, opErr(op, err)
	}
	out := make([]*ProductView, 0, len(list))
	for _, p := range list {
		out = append(out, toProductView(p))
	}
	return out, nil
}

// UploadImage stores the product image in GCS and records its URL.
func (s *ProductService) UploadImage(ctx context.Context, id string, r io.Reader, filename, contentType string) (*ProductView, error) {
	const op = "upload product image"
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, opErr(op, errs.New(errs.Validation, "image storage is not configured"))
	}
	if _, err := s.Domain.FindByID(ctx, id); err != nil {
		return nil, opErr(op, err)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", id, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, opErr(op, err)
	}
	p, err := s.Domain.SetImageURL(ctx, id, url)
	if err != nil {
		return nil, opErr(op, err)
	}
	s.afterMutation(ctx, p)
	return toProductView(p), nil
}

// Search queries the Elasticsearch index on name and description,
// falling back to the repository's text search when ES is absent.
func (s *ProductService) Search(ctx context.Context, query string, size int) ([]*ProductView, error) {
	const op = "search products"
	if size <= 0 || size > 50 {
		size = 10
	}
	if s.ES == nil || s.ESIndex == "" {
		list, err := s.Domain.SearchByText(ctx, query, size)
		if err != nil {
			return nil, opErr(op, err)
		}
		out := make([]*ProductView, 0, len(list))
		for _, p := range list {
			out = append(out, toProductView(p))
		}
		return out, nil
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, opErr(op, err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ProductView `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, opErr(op, err)
	}
	out := make([]*ProductView, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hit := h.Source
		out = append(out, &hit)
	}
	return out, nil
}

func productCacheKey(id string) string { return "product:view:" + id }

func (s *ProductService) afterMutation(ctx context.Context, p *entity.Product) {
	s.invalidate(ctx, p.ID)
	s.index(ctx, p)
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, productCacheKey(id)); err != nil {
		s.Logger.WithError(err).WithField("product_id", id).Warn("product cache invalidation failed")
	}
}

func (s *ProductService) index(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	b, _ := json.Marshal(toProductView(p))
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *ProductService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}
