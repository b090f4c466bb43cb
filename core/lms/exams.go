package lms

import "context"

type ExamService struct{ c Client }

func (s *ExamService) ByCourse(ctx context.Context, courseID string, page PageRequest) (Page[Exam], error) {
	return getPage[Exam](ctx, s.c, apiPath("exams", "course", courseID), page, nil)
}

func (s *ExamService) ByInstructor(ctx context.Context, instructorID string, page PageRequest) (Page[Exam], error) {
	return getPage[Exam](ctx, s.c, apiPath("exams", "instructor", instructorID), page, nil)
}

func (s *ExamService) Get(ctx context.Context, id string) (Exam, error) {
	return getOne[Exam](ctx, s.c, apiPath("exams", id))
}

func (s *ExamService) Questions(ctx context.Context, examID string) ([]Question, error) {
	qs, err := getOne[[]Question](ctx, s.c, apiPath("exams", examID, "questions"))
	if qs == nil {
		qs = []Question{}
	}
	return qs, err
}

func (s *ExamService) AddQuestion(ctx context.Context, examID string, in QuestionInput) (Question, error) {
	return send[Question](ctx, s.c.Post, apiPath("exams", examID, "questions"), in)
}

func (s *ExamService) Create(ctx context.Context, in ExamInput) (Exam, error) {
	return send[Exam](ctx, s.c.Post, "/exams", in)
}

func (s *ExamService) Update(ctx context.Context, id string, in ExamInput) (Exam, error) {
	return send[Exam](ctx, s.c.Put, apiPath("exams", id), in)
}

func (s *ExamService) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, apiPath("exams", id), nil)
}

// Start opens an attempt of the exam for the signed-in student.
func (s *ExamService) Start(ctx context.Context, examID string) (Attempt, error) {
	return send[Attempt](ctx, s.c.Post, apiPath("exams", examID, "start"), struct{}{})
}

func (s *ExamService) Submit(ctx context.Context, attemptID string, sub Submission) (Attempt, error) {
	return send[Attempt](ctx, s.c.Post, apiPath("exams", "attempts", attemptID, "submit"), sub)
}

func (s *ExamService) Attempt(ctx context.Context, attemptID string) (Attempt, error) {
	return getOne[Attempt](ctx, s.c, apiPath("exams", "attempts", attemptID))
}
