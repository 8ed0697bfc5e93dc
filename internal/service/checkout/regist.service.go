package checkout

import (
	"context"
	"time"

	"hava-checkout/internal/common/enum"
	"hava-checkout/internal/common/models"
	types "hava-checkout/internal/common/type"
	"hava-checkout/internal/pkg/messenger"
	"hava-checkout/internal/repository"
	paymentService "hava-checkout/internal/service/payment"

	"github.com/google/uuid"
)

type IService interface {
	Options() *types.Response
	StartSession(req *StartSessionRequest) *types.Response
	GetSession(id string) *types.Response
	UpdateDetails(id string, req *UpdateDetailsRequest) *types.Response
	Submit(id string) *types.Response
	Back(id string) *types.Response
	Exit(id string) *types.Response
	PaymentMethods(id string) *types.Response
	SelectPaymentMethod(id string, req *SelectPaymentMethodRequest) *types.Response
	PlaceOrder(id string) *types.Response
}

type Service struct {
	ctx      context.Context
	rp       repository.IRepository
	payments paymentService.IService
	opener   messenger.Opener
	pageID   string
	loc      *time.Location
	now      func() time.Time
	newID    func() string
	locks    *keyedMutex
}

type Config struct {
	PageID   string
	Location *time.Location
}

func NewService(ctx context.Context, rp repository.IRepository, payments paymentService.IService, opener messenger.Opener, cfg Config) *Service {
	if cfg.PageID == "" {
		cfg.PageID = messenger.DefaultPageID
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if opener == nil {
		opener = messenger.LinkOpener{}
	}

	return &Service{
		ctx:      ctx,
		rp:       rp,
		payments: payments,
		opener:   opener,
		pageID:   cfg.PageID,
		loc:      cfg.Location,
		now:      time.Now,
		newID:    uuid.NewString,
		locks:    newKeyedMutex(),
	}
}

// Request/Response DTOs

type StartSessionRequest struct {
	Items []models.CartItem `json:"items" binding:"required,min=1,dive"`
	Total float64           `json:"total" binding:"gte=0"`
}

// UpdateDetailsRequest is a partial update: only fields present in the
// body are applied. An empty string clears a field.
type UpdateDetailsRequest struct {
	CustomerName  *string               `json:"customerName"`
	ContactNumber *string               `json:"contactNumber"`
	ServiceType   *enum.ServiceTypeEnum `json:"serviceType" binding:"omitempty,enum"`
	ScheduledDate *string               `json:"scheduledDate" binding:"omitempty,isodate"`
	ScheduledTime *string               `json:"scheduledTime" binding:"omitempty,timeslot"`
	Address       *string               `json:"address"`
	Landmark      *string               `json:"landmark"`
	Branch        *enum.BranchEnum      `json:"branch" binding:"omitempty,enum"`
	Notes         *string               `json:"notes"`
}

type SelectPaymentMethodRequest struct {
	ID string `json:"id"`
}

type OptionsResponse struct {
	TimeSlots    []string               `json:"timeSlots"`
	Branches     []enum.BranchEnum      `json:"branches"`
	ServiceTypes []enum.ServiceTypeEnum `json:"serviceTypes"`
}

type PaymentMethodsResponse struct {
	paymentService.Snapshot
	SelectedID *string `json:"selectedId"`
}

type PlaceOrderResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type ExitResponse struct {
	Redirect string `json:"redirect"`
}
