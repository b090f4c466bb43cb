package lms

import "context"

type EnrollmentService struct{ c Client }

func (s *EnrollmentService) ByStudent(ctx context.Context, studentID string, page PageRequest) (Page[Enrollment], error) {
	return getPage[Enrollment](ctx, s.c, apiPath("enrollments", "student", studentID), page, nil)
}

// Progress returns the enrollment with the student's current progress.
func (s *EnrollmentService) Progress(ctx context.Context, id string) (Enrollment, error) {
	return getOne[Enrollment](ctx, s.c, apiPath("enrollments", id))
}

func (s *EnrollmentService) Enroll(ctx context.Context, in EnrollmentInput) (Enrollment, error) {
	return send[Enrollment](ctx, s.c.Post, "/enrollments", in)
}

type CertificateService struct{ c Client }

func (s *CertificateService) ByStudent(ctx context.Context, studentID string, page PageRequest) (Page[Certificate], error) {
	return getPage[Certificate](ctx, s.c, apiPath("certificates", "student", studentID), page, nil)
}
