// File: services/plans/service.go
package plans

import (
	"context"
	"sort"

	"transway/models"
	"transway/session"

	"go.uber.org/zap"
)

// PlanService exposes subscription plans and checkout for signed-in shippers.
type PlanService interface {
	List(ctx context.Context, userID string) ([]models.Plan, error)
	Subscribe(ctx context.Context, userID string, planID int) (*models.SubscribeResult, error)
	VerifyPayment(ctx context.Context, userID string, v models.PaymentVerification) (string, error)
	Subscriptions(ctx context.Context, userID string) (*models.SubscriptionStatus, error)
}

// UpstreamAPI is the slice of the marketplace API the plan service consumes.
type UpstreamAPI interface {
	Plans(ctx context.Context, token string) ([]models.Plan, error)
	Subscribe(ctx context.Context, token string, planID int) (*models.SubscribeResult, error)
	VerifyPayment(ctx context.Context, token string, v models.PaymentVerification) (string, error)
	Subscriptions(ctx context.Context, token string) (*models.SubscriptionStatus, error)
}

// DefaultPlanService implements PlanService.
type DefaultPlanService struct {
	Upstream UpstreamAPI
	Sessions session.TokenStore
	Logger   *zap.Logger
}

func (svc *DefaultPlanService) token(ctx context.Context, userID string) (string, error) {
	sess, err := svc.Sessions.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// List returns the plans in display order.
func (svc *DefaultPlanService) List(ctx context.Context, userID string) ([]models.Plan, error) {
	token, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	plans, err := svc.Upstream.Plans(ctx, token)
	if err != nil {
		return nil, err
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].SortOrder < plans[j].SortOrder
	})
	return plans, nil
}

// Subscribe opens a subscription for the plan. Paid plans come back with the
// Razorpay checkout parameters; free plans activate immediately.
func (svc *DefaultPlanService) Subscribe(ctx context.Context, userID string, planID int) (*models.SubscribeResult, error) {
	token, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	result, err := svc.Upstream.Subscribe(ctx, token, planID)
	if err != nil {
		return nil, err
	}
	svc.Logger.Info("Subscription opened",
		zap.String("userId", userID),
		zap.Int("planId", planID),
		zap.Bool("requiresPayment", result.RequiresPayment()))
	return result, nil
}

// VerifyPayment confirms a gateway payment against the subscription.
func (svc *DefaultPlanService) VerifyPayment(ctx context.Context, userID string, v models.PaymentVerification) (string, error) {
	token, err := svc.token(ctx, userID)
	if err != nil {
		return "", err
	}
	return svc.Upstream.VerifyPayment(ctx, token, v)
}

// Subscriptions lists the shipper's subscriptions with the active one, when
// any, pulled out.
func (svc *DefaultPlanService) Subscriptions(ctx context.Context, userID string) (*models.SubscriptionStatus, error) {
	token, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	return svc.Upstream.Subscriptions(ctx, token)
}
