package lms

import "context"

type PaymentService struct{ c Client }

func (s *PaymentService) List(ctx context.Context, page PageRequest) (Page[Payment], error) {
	return getPage[Payment](ctx, s.c, "/payments", page, nil)
}

func (s *PaymentService) ByStudent(ctx context.Context, studentID string, page PageRequest) (Page[Payment], error) {
	return getPage[Payment](ctx, s.c, apiPath("payments", "student", studentID), page, nil)
}

func (s *PaymentService) Create(ctx context.Context, in PaymentInput) (Payment, error) {
	return send[Payment](ctx, s.c.Post, "/payments", in)
}

// Refund refunds a payment, fully when r.Amount is nil.
func (s *PaymentService) Refund(ctx context.Context, paymentID string, r Refund) (Payment, error) {
	return send[Payment](ctx, s.c.Post, apiPath("payments", paymentID, "refund"), r)
}

func (s *PaymentService) Statistics(ctx context.Context) (PaymentStatistics, error) {
	return getOne[PaymentStatistics](ctx, s.c, "/payments/statistics")
}

type SubscriptionService struct{ c Client }

func (s *SubscriptionService) Packages(ctx context.Context, page PageRequest) (Page[SubscriptionPackage], error) {
	return getPage[SubscriptionPackage](ctx, s.c, "/subscriptions/packages", page, nil)
}

func (s *SubscriptionService) Package(ctx context.Context, id string) (SubscriptionPackage, error) {
	return getOne[SubscriptionPackage](ctx, s.c, apiPath("subscriptions", "packages", id))
}

func (s *SubscriptionService) CreatePackage(ctx context.Context, in SubscriptionPackage) (SubscriptionPackage, error) {
	return send[SubscriptionPackage](ctx, s.c.Post, "/subscriptions/packages", in)
}

func (s *SubscriptionService) UpdatePackage(ctx context.Context, id string, in SubscriptionPackage) (SubscriptionPackage, error) {
	return send[SubscriptionPackage](ctx, s.c.Put, apiPath("subscriptions", "packages", id), in)
}

func (s *SubscriptionService) DeletePackage(ctx context.Context, id string) error {
	return s.c.Delete(ctx, apiPath("subscriptions", "packages", id), nil)
}

func (s *SubscriptionService) Subscribe(ctx context.Context, in Subscribe) (InstructorSubscription, error) {
	return send[InstructorSubscription](ctx, s.c.Post, "/subscriptions/subscribe", in)
}

// OfInstructor returns the instructor's current subscription.
func (s *SubscriptionService) OfInstructor(ctx context.Context, instructorID string) (InstructorSubscription, error) {
	return getOne[InstructorSubscription](ctx, s.c, apiPath("subscriptions", "instructor", instructorID))
}

func (s *SubscriptionService) Cancel(ctx context.Context, subscriptionID string) error {
	return s.c.Post(ctx, apiPath("subscriptions", "cancel", subscriptionID), struct{}{}, nil)
}

func (s *SubscriptionService) Renew(ctx context.Context, subscriptionID string) (InstructorSubscription, error) {
	return send[InstructorSubscription](ctx, s.c.Post, apiPath("subscriptions", "renew", subscriptionID), struct{}{})
}
