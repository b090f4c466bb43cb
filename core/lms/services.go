package lms

import (
	"context"
	"net/url"

	"github.com/AhmedMostafa129/Mahd/core/api"
)

// Client is the subset of api.Client the services need.
type Client interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, in, out interface{}) error
	Put(ctx context.Context, path string, in, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}

var _ Client = (*api.Client)(nil)

// Services bundles one service per API resource.
type Services struct {
	Courses       *CourseService
	Lessons       *LessonService
	Reviews       *ReviewService
	Exams         *ExamService
	Payments      *PaymentService
	Subscriptions *SubscriptionService
	Support       *SupportService
	Users         *UserService
	Instructors   *InstructorService
	Dashboards    *DashboardService
	Groups        *GroupService
	Enrollments   *EnrollmentService
	Certificates  *CertificateService
}

func NewServices(c Client) *Services {
	return &Services{
		Courses:       &CourseService{c},
		Lessons:       &LessonService{c},
		Reviews:       &ReviewService{c},
		Exams:         &ExamService{c},
		Payments:      &PaymentService{c},
		Subscriptions: &SubscriptionService{c},
		Support:       &SupportService{c},
		Users:         &UserService{c},
		Instructors:   &InstructorService{c},
		Dashboards:    &DashboardService{c},
		Groups:        &GroupService{c},
		Enrollments:   &EnrollmentService{c},
		Certificates:  &CertificateService{c},
	}
}

func getPage[T any](ctx context.Context, c Client, path string, page PageRequest, extra url.Values) (Page[T], error) {
	query := page.Values()
	for k, v := range extra {
		query[k] = v
	}
	var p Page[T]
	if err := c.Get(ctx, path, query, &p); err != nil {
		return Page[T]{}, err
	}
	return p, nil
}

func getOne[T any](ctx context.Context, c Client, path string) (T, error) {
	var out T
	err := c.Get(ctx, path, nil, &out)
	return out, err
}

func send[T any](ctx context.Context, method func(context.Context, string, interface{}, interface{}) error, path string, in interface{}) (T, error) {
	var out T
	err := method(ctx, path, in, &out)
	return out, err
}

var apiPath = api.Path
