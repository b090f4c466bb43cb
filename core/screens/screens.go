// Package screens loads the data of every portal screen from the API.
package screens

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/auth"
	"github.com/AhmedMostafa129/Mahd/core/guard"
	"github.com/AhmedMostafa129/Mahd/core/lms"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

// query parameters
const (
	PageParam     = "page"
	PageSizeParam = "pageSize"
	searchParam   = "searchTerm"
)

// Request is what a loader reads from a navigation request.
type Request interface {
	Context() context.Context
	Param(name string) string
	QueryParam(name string) string
}

// Loader fetches a screen's data for the signed-in user; the identity is the zero value on
// public screens.
type Loader func(r Request, usr session.Identity) (interface{}, error)

// Data is a screen made of several API results.
type Data map[string]interface{}

// Loaders maps a screen name of guard.Routes to its loader. Screens without one are static forms.
func Loaders(svc *lms.Services, authSvc *auth.Service) map[string]Loader {
	return map[string]Loader{
		// public
		"login": func(r Request, _ session.Identity) (interface{}, error) {
			return Data{guard.ReturnURLParam: r.QueryParam(guard.ReturnURLParam)}, nil
		},
		"verify-email": verifyEmail(authSvc),
		"courses": func(r Request, _ session.Identity) (interface{}, error) {
			if term := r.QueryParam(searchParam); term != "" {
				return svc.Courses.Search(r.Context(), term, PageOf(r))
			}
			return svc.Courses.List(r.Context(), PageOf(r))
		},
		"course-details": func(r Request, _ session.Identity) (interface{}, error) {
			c, id := r.Context(), r.Param("id")
			l := newGather()
			l.put("course")(svc.Courses.Get(c, id))
			l.put("reviews")(svc.Reviews.ForCourse(c, id, PageOf(r)))
			return l.result()
		},
		"course-content": func(r Request, _ session.Identity) (interface{}, error) {
			c, id := r.Context(), r.Param("id")
			l := newGather()
			l.put("course")(svc.Courses.Get(c, id))
			l.put("lessons")(svc.Lessons.ByCourse(c, id, PageOf(r)))
			return l.result()
		},
		"instructor-profile": func(r Request, _ session.Identity) (interface{}, error) {
			c, id := r.Context(), r.Param("id")
			l := newGather()
			l.put("instructor")(svc.Instructors.Public(c, id))
			l.put("reviews")(svc.Reviews.ForInstructor(c, id, PageOf(r)))
			return l.result()
		},

		// admin
		"admin-courses": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Courses.List(r.Context(), PageOf(r))
		},
		"admin-payments": func(r Request, _ session.Identity) (interface{}, error) {
			c := r.Context()
			l := newGather()
			l.put("payments")(svc.Payments.List(c, PageOf(r)))
			l.put("statistics")(svc.Payments.Statistics(c))
			return l.result()
		},
		"admin-support": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Support.List(r.Context(), PageOf(r))
		},
		"admin-subscriptions": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Subscriptions.Packages(r.Context(), PageOf(r))
		},
		"admin-affiliates": func(r Request, _ session.Identity) (interface{}, error) {
			c := r.Context()
			if email := r.QueryParam("email"); email != "" {
				return svc.Users.ByEmail(c, email)
			}
			return svc.Users.List(c, PageOf(r))
		},
		"admin-reports": func(r Request, _ session.Identity) (interface{}, error) {
			c := r.Context()
			l := newGather()
			l.put("dashboard")(svc.Dashboards.Admin(c))
			l.put("statistics")(svc.Payments.Statistics(c))
			return l.result()
		},
		"group-details": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Groups.Get(r.Context(), r.Param("id"))
		},

		// student
		"student-dashboard": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Dashboards.Student(r.Context(), usr.UserID)
		},
		"student-courses": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Enrollments.ByStudent(r.Context(), usr.UserID, PageOf(r))
		},
		"student-certificates": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Certificates.ByStudent(r.Context(), usr.UserID, PageOf(r))
		},
		"student-progress": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Enrollments.Progress(r.Context(), r.Param("enrollmentId"))
		},
		"quiz-start": func(r Request, _ session.Identity) (interface{}, error) {
			c, id := r.Context(), r.Param("examId")
			l := newGather()
			l.put("exam")(svc.Exams.Get(c, id))
			l.put("questions")(svc.Exams.Questions(c, id))
			return l.result()
		},
		"quiz-result": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Exams.Attempt(r.Context(), r.Param("attemptId"))
		},
		"student-payments": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Payments.ByStudent(r.Context(), usr.UserID, PageOf(r))
		},
		"student-profile": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Users.Get(r.Context(), usr.UserID)
		},
		"student-support": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Support.ByUser(r.Context(), usr.UserID, PageOf(r))
		},

		// instructor
		"instructor-dashboard": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Dashboards.Instructor(r.Context(), usr.UserID)
		},
		"instructor-courses": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Courses.ByInstructor(r.Context(), usr.UserID, PageOf(r))
		},
		"course-edit": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Courses.Get(r.Context(), r.Param("id"))
		},
		"course-manage-content": func(r Request, _ session.Identity) (interface{}, error) {
			c, id := r.Context(), r.Param("id")
			l := newGather()
			l.put("course")(svc.Courses.Get(c, id))
			l.put("lessons")(svc.Lessons.ByCourse(c, id, PageOf(r)))
			l.put("exams")(svc.Exams.ByCourse(c, id, PageOf(r)))
			return l.result()
		},
		"lesson-create": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Courses.Get(r.Context(), r.Param("courseId"))
		},
		"lesson-edit": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Lessons.Get(r.Context(), r.Param("courseId"), r.Param("lessonId"))
		},
		"instructor-exams": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Exams.ByInstructor(r.Context(), usr.UserID, PageOf(r))
		},
		"exam-create": func(r Request, usr session.Identity) (interface{}, error) {
			// the form offers the instructor's courses
			return svc.Courses.ByInstructor(r.Context(), usr.UserID, PageOf(r))
		},
		"exam-edit": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Exams.Get(r.Context(), r.Param("id"))
		},
		"exam-questions": func(r Request, _ session.Identity) (interface{}, error) {
			c, id := r.Context(), r.Param("id")
			l := newGather()
			l.put("exam")(svc.Exams.Get(c, id))
			l.put("questions")(svc.Exams.Questions(c, id))
			return l.result()
		},
		"instructor-groups": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Groups.ByInstructor(r.Context(), usr.UserID, PageOf(r))
		},
		"group-create": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Courses.ByInstructor(r.Context(), usr.UserID, PageOf(r))
		},
		"group-edit": func(r Request, _ session.Identity) (interface{}, error) {
			return svc.Groups.Get(r.Context(), r.Param("id"))
		},
		"instructor-earnings": func(r Request, usr session.Identity) (interface{}, error) {
			return svc.Dashboards.Instructor(r.Context(), usr.UserID)
		},
		"instructor-subscription": func(r Request, usr session.Identity) (interface{}, error) {
			c := r.Context()
			l := newGather()
			l.put("packages")(svc.Subscriptions.Packages(c, PageOf(r)))
			l.put("subscription")(svc.Subscriptions.OfInstructor(c, usr.UserID))
			return l.result()
		},
		"instructor-own-profile": func(r Request, usr session.Identity) (interface{}, error) {
			c := r.Context()
			l := newGather()
			l.put("user")(svc.Users.Get(c, usr.UserID))
			l.put("instructor")(svc.Instructors.Public(c, usr.UserID))
			return l.result()
		},
	}
}

// verifyEmail verifies right away when the emailed link carries both the address and the token.
func verifyEmail(authSvc *auth.Service) Loader {
	return func(r Request, _ session.Identity) (interface{}, error) {
		in := auth.EmailVerification{Email: r.QueryParam("email"), Token: r.QueryParam("token")}
		if in.Email == "" || in.Token == "" {
			return nil, nil
		}
		msg, err := authSvc.VerifyEmail(r.Context(), in)
		if err != nil {
			if isInputError(err) {
				// a malformed link is reported as such, not as an outage
				return Data{"verified": false}, nil
			}
			return nil, err
		}
		return Data{"verified": true, "message": msg}, nil
	}
}

func isInputError(err error) bool {
	switch errors.Cause(err).(type) {
	case validator.ValidationErrors, *core.ValidationError:
		return true
	default:
		return false
	}
}

// PageOf reads the requested page; missing or bad values fall back to the defaults.
func PageOf(r Request) lms.PageRequest {
	number, _ := strconv.Atoi(r.QueryParam(PageParam))
	size, _ := strconv.Atoi(r.QueryParam(PageSizeParam))
	return lms.NewPageRequest(number, size)
}

// gather collects several API results into one screen; the first failure is kept and the rest
// of the data is still shown.
type gather struct {
	data Data
	err  error
}

func newGather() *gather {
	return &gather{data: Data{}}
}

// put returns a setter for `key`, to be called with an API call's results:
//
//	l.put("course")(svc.Get(ctx, id))
func (g *gather) put(key string) func(interface{}, error) {
	return func(v interface{}, err error) {
		if err != nil {
			if g.err == nil {
				g.err = err
			}
			return
		}
		g.data[key] = v
	}
}

func (g *gather) result() (interface{}, error) {
	return g.data, g.err
}
