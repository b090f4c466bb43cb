package lms

import "context"

type UserService struct{ c Client }

func (s *UserService) List(ctx context.Context, page PageRequest) (Page[User], error) {
	return getPage[User](ctx, s.c, "/users", page, nil)
}

func (s *UserService) Get(ctx context.Context, id string) (User, error) {
	return getOne[User](ctx, s.c, apiPath("users", id))
}

func (s *UserService) ByEmail(ctx context.Context, email string) (User, error) {
	return getOne[User](ctx, s.c, apiPath("users", "email", email))
}

func (s *UserService) Update(ctx context.Context, id string, in UserUpdate) (User, error) {
	return send[User](ctx, s.c.Put, apiPath("users", id), in)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, apiPath("users", id), nil)
}

type InstructorService struct{ c Client }

// Public returns the public profile of an instructor.
func (s *InstructorService) Public(ctx context.Context, id string) (Instructor, error) {
	return getOne[Instructor](ctx, s.c, apiPath("instructors", id))
}

type DashboardService struct{ c Client }

func (s *DashboardService) Student(ctx context.Context, studentID string) (StudentDashboard, error) {
	return getOne[StudentDashboard](ctx, s.c, apiPath("dashboard", "student", studentID))
}

func (s *DashboardService) Instructor(ctx context.Context, instructorID string) (InstructorDashboard, error) {
	return getOne[InstructorDashboard](ctx, s.c, apiPath("dashboard", "instructor", instructorID))
}

func (s *DashboardService) Admin(ctx context.Context) (AdminDashboard, error) {
	return getOne[AdminDashboard](ctx, s.c, "/dashboard/admin")
}
