package lms

import (
	"context"
	"net/url"
)

type CourseService struct{ c Client }

func (s *CourseService) List(ctx context.Context, page PageRequest) (Page[Course], error) {
	return getPage[Course](ctx, s.c, "/courses", page, nil)
}

// Search matches `term` against course titles and descriptions.
func (s *CourseService) Search(ctx context.Context, term string, page PageRequest) (Page[Course], error) {
	return getPage[Course](ctx, s.c, "/courses/search", page, url.Values{"searchTerm": {term}})
}

func (s *CourseService) ByInstructor(ctx context.Context, instructorID string, page PageRequest) (Page[Course], error) {
	return getPage[Course](ctx, s.c, apiPath("courses", "instructor", instructorID), page, nil)
}

func (s *CourseService) Get(ctx context.Context, id string) (Course, error) {
	return getOne[Course](ctx, s.c, apiPath("courses", id))
}

func (s *CourseService) Create(ctx context.Context, in CourseInput) (Course, error) {
	return send[Course](ctx, s.c.Post, "/courses", in)
}

func (s *CourseService) Update(ctx context.Context, id string, in CourseInput) (Course, error) {
	return send[Course](ctx, s.c.Put, apiPath("courses", id), in)
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, apiPath("courses", id), nil)
}

func (s *CourseService) Publish(ctx context.Context, id string) error {
	return s.c.Post(ctx, apiPath("courses", id, "publish"), struct{}{}, nil)
}

func (s *CourseService) Unpublish(ctx context.Context, id string) error {
	return s.c.Post(ctx, apiPath("courses", id, "unpublish"), struct{}{}, nil)
}

type LessonService struct{ c Client }

// ByCourse lists a course's lessons. This endpoint answers with the {data, totalRecords} envelope.
func (s *LessonService) ByCourse(ctx context.Context, courseID string, page PageRequest) (Page[Lesson], error) {
	return getPage[Lesson](ctx, s.c, apiPath("courses", courseID, "lessons"), page, nil)
}

func (s *LessonService) Get(ctx context.Context, courseID, lessonID string) (Lesson, error) {
	return getOne[Lesson](ctx, s.c, apiPath("courses", courseID, "lessons", lessonID))
}

func (s *LessonService) Add(ctx context.Context, courseID string, in LessonInput) (Lesson, error) {
	return send[Lesson](ctx, s.c.Post, apiPath("courses", courseID, "lessons"), in)
}

func (s *LessonService) Update(ctx context.Context, courseID, lessonID string, in LessonInput) (Lesson, error) {
	return send[Lesson](ctx, s.c.Put, apiPath("courses", courseID, "lessons", lessonID), in)
}

func (s *LessonService) Delete(ctx context.Context, courseID, lessonID string) error {
	return s.c.Delete(ctx, apiPath("courses", courseID, "lessons", lessonID), nil)
}

// MarkComplete records the signed-in student's completion of a lesson.
func (s *LessonService) MarkComplete(ctx context.Context, courseID, lessonID string) error {
	return s.c.Post(ctx, apiPath("courses", courseID, "lessons", lessonID, "complete"), struct{}{}, nil)
}

type ReviewService struct{ c Client }

func (s *ReviewService) ForCourse(ctx context.Context, courseID string, page PageRequest) (Page[Review], error) {
	return getPage[Review](ctx, s.c, apiPath("reviews", "course", courseID), page, nil)
}

func (s *ReviewService) ForInstructor(ctx context.Context, instructorID string, page PageRequest) (Page[Review], error) {
	return getPage[Review](ctx, s.c, apiPath("reviews", "instructor", instructorID), page, nil)
}

func (s *ReviewService) CreateForCourse(ctx context.Context, in CourseReviewInput) (Review, error) {
	return send[Review](ctx, s.c.Post, "/reviews/course", in)
}

func (s *ReviewService) CreateForInstructor(ctx context.Context, in InstructorReviewInput) (Review, error) {
	return send[Review](ctx, s.c.Post, "/reviews/instructor", in)
}

func (s *ReviewService) Update(ctx context.Context, id string, in ReviewUpdate) error {
	return s.c.Put(ctx, apiPath("reviews", id), in, nil)
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, apiPath("reviews", id), nil)
}
