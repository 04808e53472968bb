package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/cart"
	"github.com/fekuna/omnipos-poultry-service/internal/event"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/order"
	"github.com/fekuna/omnipos-poultry-service/internal/order/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, key string, v interface{}) error
}

type ProductCache interface {
	InvalidateListCache(ctx context.Context)
}

type Recorder interface {
	CheckoutSucceeded(total decimal.Decimal, units int)
	CheckoutRejected(reason string)
}

type Config struct {
	TaxRate decimal.Decimal
}

type orderUseCase struct {
	repo      order.Repository
	products  ProductCache
	publisher Publisher
	metrics   Recorder
	cfg       Config
	logger    logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	products ProductCache,
	publisher Publisher,
	metrics Recorder,
	cfg Config,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		products:  products,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		logger:    log,
	}
}

func (uc *orderUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.Receipt, error) {
	if len(input.Lines) == 0 {
		uc.metrics.CheckoutRejected("empty_cart")
		return nil, apperror.EmptyCart()
	}
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		uc.metrics.CheckoutRejected("missing_customer")
		return nil, apperror.MissingCustomer()
	}

	totals := cart.ComputeTotals(input.Lines, uc.cfg.TaxRate)

	var cashierID *string
	if input.CashierID != "" {
		cashierID = &input.CashierID
	}

	o := &model.Order{
		ID:           uuid.New().String(),
		CustomerName: customer,
		OrderDate:    time.Now().UTC(),
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		Total:        totals.Total,
		TaxRate:      uc.cfg.TaxRate,
		CashierID:    cashierID,
	}

	items := make([]model.OrderItem, len(input.Lines))
	units := 0
	for i, l := range input.Lines {
		items[i] = model.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     o.ID,
			LineNo:      i + 1,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
		}
		units += l.Quantity
	}

	if err := uc.repo.CreateWithItems(ctx, o, items); err != nil {
		uc.metrics.CheckoutRejected("failed")
		uc.logger.Warn("checkout rolled back", zap.String("customer", customer), zap.Error(err))
		return nil, apperror.CheckoutFailed(err)
	}

	uc.metrics.CheckoutSucceeded(o.Total, units)
	uc.products.InvalidateListCache(ctx)
	uc.publishOrderPlaced(ctx, o, items)

	uc.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("customer", customer),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("lines", len(items)),
	)
	return buildReceipt(o, items), nil
}

func (uc *orderUseCase) publishOrderPlaced(ctx context.Context, o *model.Order, items []model.OrderItem) {
	payload := event.OrderPlaced{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Total:        o.Total,
		Items:        make([]event.OrderPlacedItem, len(items)),
	}
	for i, it := range items {
		payload.Items[i] = event.OrderPlacedItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}

	env, err := event.New(event.TypeOrderPlaced, payload)
	if err == nil {
		err = uc.publisher.Publish(ctx, o.ID, env)
	}
	if err != nil {
		uc.logger.Error("failed to publish OrderPlaced", zap.String("order_id", o.ID), zap.Error(err))
	}
}

func (uc *orderUseCase) GetReceipt(ctx context.Context, orderID string) (*dto.Receipt, error) {
	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("order", orderID)
	}

	items, err := uc.repo.FindItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return buildReceipt(o, items), nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func buildReceipt(o *model.Order, items []model.OrderItem) *dto.Receipt {
	r := &dto.Receipt{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate,
		CashierID:    o.CashierID,
		Items:        make([]dto.ReceiptLine, len(items)),
		Subtotal:     o.Subtotal,
		TaxRate:      o.TaxRate,
		Tax:          o.Tax,
		Total:        o.Total,
	}
	for i, it := range items {
		r.Items[i] = dto.ReceiptLine{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
			LineTotal:   it.LineTotal(),
		}
	}
	return r
}
