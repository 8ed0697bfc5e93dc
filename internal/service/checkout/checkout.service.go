package checkout

import (
	"errors"
	"fmt"
	"net/http"

	"hava-checkout/internal/common/enum"
	types "hava-checkout/internal/common/type"
	"hava-checkout/internal/pkg/currency"
	"hava-checkout/internal/pkg/logger"
	"hava-checkout/internal/pkg/messenger"
	"hava-checkout/internal/pkg/schedule"
	sessionRepo "hava-checkout/internal/repository/session"
	paymentService "hava-checkout/internal/service/payment"
)

const exitRedirect = "cart"

func failure(err error) *types.Response {
	res := &types.Response{
		Code:    HTTPStatus(err),
		Message: err.Error(),
		Error:   err,
	}

	var missing *MissingFieldsError
	if errors.As(err, &missing) {
		res.Data = map[string][]string{"missingFields": missing.Fields}
	}
	return res
}

func success(code int, message string, data any) *types.Response {
	return &types.Response{Code: code, Message: message, Data: data}
}

// withFlow loads the session under its lock, runs fn and saves the
// session when fn succeeds and save is set. A failing fn leaves the
// stored session untouched.
func (s *Service) withFlow(id string, save bool, fn func(f *Flow) error) (*Flow, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.rp.Session.Get(s.ctx, id)
	if errors.Is(err, sessionRepo.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	f := NewFlow(sess)
	if err := fn(f); err != nil {
		return f, err
	}

	if save {
		sess.UpdatedAt = s.now()
		if err := s.rp.Session.Save(s.ctx, sess); err != nil {
			return f, fmt.Errorf("save session %s: %w", id, err)
		}
	}
	return f, nil
}

func (s *Service) Options() *types.Response {
	return success(http.StatusOK, "", OptionsResponse{
		TimeSlots:    schedule.TimeSlots(),
		Branches:     enum.Branches(),
		ServiceTypes: enum.ServiceTypes(),
	})
}

func (s *Service) StartSession(req *StartSessionRequest) *types.Response {
	sess := NewSession(s.newID(), s.now(), s.loc, req.Items, req.Total)
	if err := s.rp.Session.Save(s.ctx, sess); err != nil {
		return failure(fmt.Errorf("save session: %w", err))
	}

	logger.Info.Printf("Checkout session %s started with %d items", sess.ID, len(sess.Cart))
	return success(http.StatusCreated, "Checkout session started", NewFlow(sess).View())
}

func (s *Service) GetSession(id string) *types.Response {
	f, err := s.withFlow(id, false, func(*Flow) error { return nil })
	if err != nil {
		return failure(err)
	}
	return success(http.StatusOK, "", f.View())
}

func (s *Service) UpdateDetails(id string, req *UpdateDetailsRequest) *types.Response {
	f, err := s.withFlow(id, true, func(f *Flow) error {
		return applyDetails(f, req)
	})
	if err != nil {
		return failure(err)
	}
	return success(http.StatusOK, "Details updated", f.View())
}

func applyDetails(f *Flow, req *UpdateDetailsRequest) error {
	if err := f.inDetails(); err != nil {
		return err
	}

	setters := []struct {
		value *string
		set   func(string) error
	}{
		{req.CustomerName, f.SetCustomerName},
		{req.ContactNumber, f.SetContactNumber},
		{req.ScheduledDate, f.SetScheduledDate},
		{req.ScheduledTime, f.SetScheduledTime},
		{req.Address, f.SetAddress},
		{req.Landmark, f.SetLandmark},
		{req.Notes, f.SetNotes},
	}
	for _, st := range setters {
		if st.value == nil {
			continue
		}
		if err := st.set(*st.value); err != nil {
			return err
		}
	}

	if req.ServiceType != nil {
		if err := f.SetServiceType(*req.ServiceType); err != nil {
			return err
		}
	}
	if req.Branch != nil {
		if err := f.SetBranch(string(*req.Branch)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Submit(id string) *types.Response {
	f, err := s.withFlow(id, true, func(f *Flow) error {
		return f.Submit()
	})
	if err != nil {
		return failure(err)
	}

	if s.payments != nil {
		s.payments.Refresh()
	}
	return success(http.StatusOK, "Details confirmed", f.View())
}

func (s *Service) Back(id string) *types.Response {
	f, err := s.withFlow(id, true, func(f *Flow) error {
		return f.Back()
	})
	if err != nil {
		return failure(err)
	}
	return success(http.StatusOK, "", f.View())
}

// Exit ends the flow from the details step and discards the session. The
// client is pointed back to the cart.
func (s *Service) Exit(id string) *types.Response {
	var deleteErr error
	_, err := s.withFlow(id, false, func(f *Flow) error {
		return f.Exit(func() {
			deleteErr = s.rp.Session.Delete(s.ctx, id)
		})
	})
	if err == nil && deleteErr != nil {
		err = fmt.Errorf("delete session %s: %w", id, deleteErr)
	}
	if err != nil {
		return failure(err)
	}

	logger.Info.Printf("Checkout session %s exited", id)
	return success(http.StatusOK, "Checkout exited", ExitResponse{Redirect: exitRedirect})
}

func (s *Service) PaymentMethods(id string) *types.Response {
	f, err := s.withFlow(id, false, func(*Flow) error { return nil })
	if err != nil {
		return failure(err)
	}

	snap := paymentService.Snapshot{Err: ErrPaymentMethodsUnavailable, Error: ErrPaymentMethodsUnavailable.Error()}
	if s.payments != nil {
		snap = s.payments.Snapshot()
		if snap.Err != nil && !snap.Loading {
			s.payments.Refresh()
		}
	}

	res := PaymentMethodsResponse{Snapshot: snap}
	if m := f.Draft().SelectedPaymentMethod; m != nil {
		res.SelectedID = &m.ID
	}
	return success(http.StatusOK, "", res)
}

func (s *Service) SelectPaymentMethod(id string, req *SelectPaymentMethodRequest) *types.Response {
	f, err := s.withFlow(id, true, func(f *Flow) error {
		if f.Step() != enum.STEP_PAYMENT {
			return fmt.Errorf("select payment in %s step: %w", f.Step(), ErrWrongStep)
		}
		if req.ID == "" {
			return f.SelectPaymentMethod(nil)
		}
		if s.payments == nil {
			return ErrPaymentMethodsUnavailable
		}

		method, err := s.payments.Find(req.ID)
		switch {
		case errors.Is(err, paymentService.ErrUnavailable):
			return fmt.Errorf("%w: %w", ErrPaymentMethodsUnavailable, err)
		case errors.Is(err, paymentService.ErrNotFound):
			return fmt.Errorf("%w: %w", ErrPaymentMethodNotFound, err)
		case err != nil:
			return err
		}
		return f.SelectPaymentMethod(method)
	})
	if err != nil {
		return failure(err)
	}
	return success(http.StatusOK, "Payment method selected", f.View())
}

func (s *Service) PlaceOrder(id string) *types.Response {
	var h *messenger.Handoff
	_, err := s.withFlow(id, true, func(f *Flow) (err error) {
		h, err = f.PlaceOrder(s.ctx, s.pageID, currency.FormatPrice, nil)
		return err
	})
	if err != nil {
		return failure(err)
	}

	// Opened only once the session is saved, so a failed save never leaves
	// a hand-off behind.
	s.opener.Open(s.ctx, *h)

	logger.Info.Printf("Order for session %s handed off to Messenger", id)
	return success(http.StatusOK, "Order ready to send", PlaceOrderResponse{Message: h.Message, Link: h.Link})
}
