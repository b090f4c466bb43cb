package echoportal

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AhmedMostafa129/Mahd/core/guard"
	"github.com/AhmedMostafa129/Mahd/core/lms"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

// screenAction is a mutating request made from a screen. The response renders `screen`.
type screenAction struct {
	method string
	path   string
	guard  guard.Kind
	screen string
	do     loadFunc
}

func done(err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return echo.Map{"ok": true}, nil
}

func (s *Server) actions() []screenAction {
	svc := s.opts.LMS

	return []screenAction{
		// courses & lessons
		{http.MethodPost, "/courses/:id/enroll", guard.KindStudent, "course-details",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				in := lms.EnrollmentInput{StudentID: usr.UserID, CourseID: ctx.Param("id")}
				if err := s.opts.Validate.Struct(in); err != nil {
					return nil, err
				}
				return svc.Enrollments.Enroll(ctx.Request().Context(), in)
			}},
		{http.MethodPost, "/courses/:id/content/lessons/:lessonId/complete", guard.KindAuth, "course-content",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Lessons.MarkComplete(ctx.Request().Context(), ctx.Param("id"), ctx.Param("lessonId")))
			}},
		{http.MethodPost, "/instructor/courses/create", guard.KindInstructor, "course-create",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				in := new(lms.CourseInput)
				if err := s.bind(ctx, in, func() { in.InstructorID = usr.UserID }); err != nil {
					return nil, err
				}
				return svc.Courses.Create(ctx.Request().Context(), *in)
			}},
		{http.MethodPut, "/instructor/courses/:id/edit", guard.KindInstructor, "course-edit",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				in := new(lms.CourseInput)
				if err := s.bind(ctx, in, func() { in.InstructorID = usr.UserID }); err != nil {
					return nil, err
				}
				return svc.Courses.Update(ctx.Request().Context(), ctx.Param("id"), *in)
			}},
		{http.MethodDelete, "/instructor/courses/:id/content", guard.KindInstructor, "course-manage-content",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Courses.Delete(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodPost, "/instructor/courses/:id/publish", guard.KindInstructor, "course-manage-content",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Courses.Publish(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodPost, "/instructor/courses/:id/unpublish", guard.KindInstructor, "course-manage-content",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Courses.Unpublish(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodPost, "/instructor/courses/:courseId/lessons/create", guard.KindInstructor, "lesson-create",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.LessonInput)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Lessons.Add(ctx.Request().Context(), ctx.Param("courseId"), *in)
			}},
		{http.MethodPut, "/instructor/courses/:courseId/lessons/:lessonId/edit", guard.KindInstructor, "lesson-edit",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.LessonInput)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Lessons.Update(ctx.Request().Context(), ctx.Param("courseId"), ctx.Param("lessonId"), *in)
			}},
		{http.MethodDelete, "/instructor/courses/:courseId/lessons/:lessonId/edit", guard.KindInstructor, "lesson-edit",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Lessons.Delete(ctx.Request().Context(), ctx.Param("courseId"), ctx.Param("lessonId")))
			}},

		// reviews
		{http.MethodPost, "/courses/:id/reviews", guard.KindAuth, "course-details",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.CourseReviewInput)
				if err := s.bind(ctx, in, func() { in.CourseID = ctx.Param("id") }); err != nil {
					return nil, err
				}
				return svc.Reviews.CreateForCourse(ctx.Request().Context(), *in)
			}},
		{http.MethodPost, "/profile/:id/reviews", guard.KindAuth, "instructor-profile",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.InstructorReviewInput)
				if err := s.bind(ctx, in, func() { in.InstructorID = ctx.Param("id") }); err != nil {
					return nil, err
				}
				return svc.Reviews.CreateForInstructor(ctx.Request().Context(), *in)
			}},
		{http.MethodPut, "/reviews/:id", guard.KindAuth, "course-details",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.ReviewUpdate)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return done(svc.Reviews.Update(ctx.Request().Context(), ctx.Param("id"), *in))
			}},
		{http.MethodDelete, "/reviews/:id", guard.KindAuth, "course-details",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Reviews.Delete(ctx.Request().Context(), ctx.Param("id")))
			}},

		// exams
		{http.MethodPost, "/instructor/exams/create", guard.KindInstructor, "exam-create",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.ExamInput)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Exams.Create(ctx.Request().Context(), *in)
			}},
		{http.MethodPut, "/instructor/exams/:id/edit", guard.KindInstructor, "exam-edit",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.ExamInput)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Exams.Update(ctx.Request().Context(), ctx.Param("id"), *in)
			}},
		{http.MethodDelete, "/instructor/exams/:id/edit", guard.KindInstructor, "exam-edit",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Exams.Delete(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodPost, "/instructor/exams/:id/questions", guard.KindInstructor, "exam-questions",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.QuestionInput)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Exams.AddQuestion(ctx.Request().Context(), ctx.Param("id"), *in)
			}},
		{http.MethodPost, "/student/exams/:examId", guard.KindStudent, "quiz-start",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return svc.Exams.Start(ctx.Request().Context(), ctx.Param("examId"))
			}},
		{http.MethodPost, "/student/exams/attempts/:attemptId", guard.KindStudent, "quiz-result",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.Submission)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Exams.Submit(ctx.Request().Context(), ctx.Param("attemptId"), *in)
			}},

		// groups
		{http.MethodPost, "/instructor/groups/create", guard.KindInstructor, "group-create",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				in := new(lms.GroupInput)
				if err := s.bind(ctx, in, func() { in.InstructorID = usr.UserID }); err != nil {
					return nil, err
				}
				return svc.Groups.Create(ctx.Request().Context(), *in)
			}},
		{http.MethodPut, "/instructor/groups/:id/edit", guard.KindInstructor, "group-edit",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				in := new(lms.GroupInput)
				if err := s.bind(ctx, in, func() { in.InstructorID = usr.UserID }); err != nil {
					return nil, err
				}
				return svc.Groups.Update(ctx.Request().Context(), ctx.Param("id"), *in)
			}},
		{http.MethodDelete, "/instructor/groups/:id/edit", guard.KindInstructor, "group-edit",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Groups.Delete(ctx.Request().Context(), ctx.Param("id")))
			}},

		// subscriptions & payments
		{http.MethodPost, "/instructor/subscription", guard.KindInstructor, "instructor-subscription",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				in := new(lms.Subscribe)
				if err := s.bind(ctx, in, func() { in.InstructorID = usr.UserID }); err != nil {
					return nil, err
				}
				return svc.Subscriptions.Subscribe(ctx.Request().Context(), *in)
			}},
		{http.MethodDelete, "/instructor/subscription/:id", guard.KindInstructor, "instructor-subscription",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Subscriptions.Cancel(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodPost, "/instructor/subscription/:id/renew", guard.KindInstructor, "instructor-subscription",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return svc.Subscriptions.Renew(ctx.Request().Context(), ctx.Param("id"))
			}},
		{http.MethodPost, "/admin/subscriptions", guard.KindAdmin, "admin-subscriptions",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.SubscriptionPackage)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Subscriptions.CreatePackage(ctx.Request().Context(), *in)
			}},
		{http.MethodPut, "/admin/subscriptions/:id", guard.KindAdmin, "admin-subscriptions",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.SubscriptionPackage)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Subscriptions.UpdatePackage(ctx.Request().Context(), ctx.Param("id"), *in)
			}},
		{http.MethodDelete, "/admin/subscriptions/:id", guard.KindAdmin, "admin-subscriptions",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Subscriptions.DeletePackage(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodPost, "/student/payments", guard.KindStudent, "student-payments",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				in := new(lms.PaymentInput)
				if err := s.bind(ctx, in, func() { in.StudentID = usr.UserID }); err != nil {
					return nil, err
				}
				return svc.Payments.Create(ctx.Request().Context(), *in)
			}},
		{http.MethodPost, "/admin/payments/:id/refund", guard.KindAdmin, "admin-payments",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				in := new(lms.Refund)
				if err := s.bind(ctx, in); err != nil {
					return nil, err
				}
				return svc.Payments.Refund(ctx.Request().Context(), ctx.Param("id"), *in)
			}},

		// support
		{http.MethodPost, "/student/support", guard.KindStudent, "student-support",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				in := new(lms.SupportTicketInput)
				if err := s.bind(ctx, in, func() { in.UserID = usr.UserID }); err != nil {
					return nil, err
				}
				return svc.Support.Create(ctx.Request().Context(), *in)
			}},
		{http.MethodPost, "/admin/support/:id/assign", guard.KindAdmin, "admin-support",
			func(ctx echo.Context, usr session.Identity) (interface{}, error) {
				adminID := ctx.FormValue("adminId")
				if adminID == "" {
					adminID = usr.UserID
				}
				return done(svc.Support.Assign(ctx.Request().Context(), ctx.Param("id"), adminID))
			}},
		{http.MethodPost, "/admin/support/:id/resolve", guard.KindAdmin, "admin-support",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Support.Resolve(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodDelete, "/admin/support/:id", guard.KindAdmin, "admin-support",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Support.Delete(ctx.Request().Context(), ctx.Param("id")))
			}},

		// users
		{http.MethodDelete, "/admin/courses/:id", guard.KindAdmin, "admin-courses",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Courses.Delete(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodDelete, "/admin/affiliates/:id", guard.KindAdmin, "admin-affiliates",
			func(ctx echo.Context, _ session.Identity) (interface{}, error) {
				return done(svc.Users.Delete(ctx.Request().Context(), ctx.Param("id")))
			}},
		{http.MethodPut, "/student/profile", guard.KindStudent, "student-profile", s.updateProfile},
		{http.MethodPut, "/instructor/profile", guard.KindInstructor, "instructor-own-profile", s.updateProfile},
	}
}

func (s *Server) updateProfile(ctx echo.Context, usr session.Identity) (interface{}, error) {
	in := new(lms.UserUpdate)
	if err := s.bind(ctx, in); err != nil {
		return nil, err
	}
	return s.opts.LMS.Users.Update(ctx.Request().Context(), usr.UserID, *in)
}
