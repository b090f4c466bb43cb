package lms

import (
	"encoding/json"
	"strconv"

	"github.com/AhmedMostafa129/Mahd/core/session"
)

// Timestamps are kept as the API sends them (ISO 8601, zone optional).

type User struct {
	UserID          string       `json:"userId"`
	FullName        string       `json:"fullName"`
	Email           string       `json:"email"`
	Role            session.Role `json:"role"`
	IsEmailVerified bool         `json:"isEmailVerified"`
	CreatedAt       string       `json:"createdAt"`
}

type UserUpdate struct {
	FullName string `json:"fullName,omitempty" form:"fullName" validate:"omitempty,max=100"`
	Email    string `json:"email,omitempty" form:"email" validate:"omitempty,email"`
}

type Instructor struct {
	InstructorID  string  `json:"instructorId"`
	UserID        string  `json:"userId"`
	FullName      string  `json:"fullName"`
	Email         string  `json:"email"`
	PhotoURL      string  `json:"photoUrl,omitempty"`
	Bio           string  `json:"bio,omitempty"`
	CoursesCount  int     `json:"coursesCount"`
	AverageRating float64 `json:"averageRating"`
}

type Course struct {
	CourseID         string  `json:"courseId"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Price            float64 `json:"price"`
	Category         string  `json:"category,omitempty"`
	Level            string  `json:"level,omitempty"`
	ThumbnailURL     string  `json:"thumbnailUrl,omitempty"`
	InstructorID     string  `json:"instructorId"`
	InstructorName   string  `json:"instructorName,omitempty"`
	IsPublished      bool    `json:"isPublished"`
	AverageRating    float64 `json:"averageRating"`
	EnrollmentsCount int     `json:"enrollmentsCount"`
	CreatedAt        string  `json:"createdAt"`
}

type CourseInput struct {
	Title        string  `json:"title" form:"title" validate:"required,max=200"`
	Description  string  `json:"description" form:"description" validate:"required"`
	Price        float64 `json:"price" form:"price" validate:"gte=0"`
	Category     string  `json:"category,omitempty" form:"category"`
	Level        string  `json:"level,omitempty" form:"level"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty" form:"thumbnailUrl" validate:"omitempty,url"`
	InstructorID string  `json:"instructorId,omitempty" form:"-"`
}

// ContentType of a lesson, as encoded by the API.
type ContentType int

const (
	ContentVideo ContentType = iota
	ContentLiveSession
	ContentPdfSummary
	ContentEBook
	ContentQuiz
)

var contentTypeNames = [...]string{"Video", "LiveSession", "PdfSummary", "EBook", "Quiz"}

func (c ContentType) String() string {
	if c < 0 || int(c) >= len(contentTypeNames) {
		return "Unknown"
	}
	return contentTypeNames[c]
}

type Lesson struct {
	LessonID        string      `json:"lessonId"`
	Title           string      `json:"title"`
	ContentType     ContentType `json:"contentType"`
	CourseID        string      `json:"courseId"`
	DurationMinutes int         `json:"durationMinutes"`
	ContentURL      string      `json:"contentUrl,omitempty"`
	CreatedAt       string      `json:"createdAt"`
}

type LessonInput struct {
	Title           string      `json:"title" form:"title" validate:"required,max=200"`
	ContentType     ContentType `json:"contentType" form:"contentType" validate:"gte=0,lte=4"`
	DurationMinutes int         `json:"durationMinutes" form:"durationMinutes" validate:"gte=0"`
	ContentURL      string      `json:"contentUrl,omitempty" form:"contentUrl"`
}

type Review struct {
	ReviewID     string `json:"reviewId"`
	StudentID    string `json:"studentId"`
	StudentName  string `json:"studentName,omitempty"`
	CourseID     string `json:"courseId,omitempty"`
	InstructorID string `json:"instructorId,omitempty"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

type CourseReviewInput struct {
	CourseID string `json:"courseId" form:"courseId" validate:"required"`
	Rating   int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment,omitempty" form:"comment" validate:"max=1000"`
}

type InstructorReviewInput struct {
	InstructorID string `json:"instructorId" form:"instructorId" validate:"required"`
	Rating       int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment,omitempty" form:"comment" validate:"max=1000"`
}

type ReviewUpdate struct {
	Rating  int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" form:"comment" validate:"max=1000"`
}

type Exam struct {
	ExamID          string  `json:"examId"`
	CourseID        string  `json:"courseId"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	PassingScore    float64 `json:"passingScore"`
	TotalMarks      float64 `json:"totalMarks"`
	IsPublished     bool    `json:"isPublished"`
	CreatedAt       string  `json:"createdAt"`
}

type ExamInput struct {
	CourseID        string  `json:"courseId" form:"courseId" validate:"required"`
	Title           string  `json:"title" form:"title" validate:"required,max=200"`
	Description     string  `json:"description,omitempty" form:"description"`
	DurationMinutes int     `json:"durationMinutes" form:"durationMinutes" validate:"required,min=1"`
	PassingScore    float64 `json:"passingScore" form:"passingScore" validate:"gte=0"`
}

type Option struct {
	OptionID  string `json:"optionId"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect,omitempty"`
}

type Question struct {
	QuestionID   string   `json:"questionId"`
	ExamID       string   `json:"examId"`
	Text         string   `json:"text"`
	QuestionType int      `json:"questionType"`
	Marks        float64  `json:"marks"`
	Options      []Option `json:"options"`
}

type QuestionInput struct {
	Text         string   `json:"text" validate:"required"`
	QuestionType int      `json:"questionType" validate:"gte=0"`
	Marks        float64  `json:"marks" validate:"gt=0"`
	Options      []Option `json:"options" validate:"dive"`
}

type Attempt struct {
	AttemptID   string  `json:"attemptId"`
	ExamID      string  `json:"examId"`
	StudentID   string  `json:"studentId"`
	StartedAt   string  `json:"startedAt"`
	SubmittedAt string  `json:"submittedAt,omitempty"`
	Score       float64 `json:"score"`
	IsPassed    bool    `json:"isPassed"`
}

type Answer struct {
	QuestionID       string `json:"questionId" validate:"required"`
	SelectedOptionID string `json:"selectedOptionId,omitempty"`
	AnswerText       string `json:"answerText,omitempty"`
}

type Submission struct {
	Answers []Answer `json:"answers" validate:"required,dive"`
}

type Payment struct {
	PaymentID       string  `json:"paymentId"`
	StudentID       string  `json:"studentId"`
	CourseID        string  `json:"courseId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	PaymentIntentID string  `json:"paymentIntentId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

type PaymentInput struct {
	StudentID string  `json:"studentId" form:"-"`
	CourseID  string  `json:"courseId" form:"courseId" validate:"required"`
	Amount    float64 `json:"amount" form:"amount" validate:"gt=0"`
	Currency  string  `json:"currency,omitempty" form:"currency" validate:"omitempty,len=3"`
}

type Refund struct {
	Amount *float64 `json:"amount,omitempty" form:"amount" validate:"omitempty,gt=0"`
}

// Month labels a monthly figure. The API sends either its number (1-12) or a name.
type Month string

func (m *Month) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case string:
		*m = Month(v)
	case float64:
		*m = Month(strconv.Itoa(int(v)))
	default:
		*m = ""
	}
	return nil
}

type MonthlyRevenue struct {
	Year    int     `json:"year,omitempty"`
	Month   Month   `json:"month"`
	Revenue float64 `json:"revenue"`
}

type PaymentStatistics struct {
	TotalPayments      int              `json:"totalPayments"`
	TotalRevenue       float64          `json:"totalRevenue"`
	SuccessfulPayments int              `json:"successfulPayments"`
	FailedPayments     int              `json:"failedPayments"`
	PendingPayments    int              `json:"pendingPayments"`
	RevenueByMonth     []MonthlyRevenue `json:"revenueByMonth,omitempty"`
}

type SubscriptionPackage struct {
	PackageID    string  `json:"packageId,omitempty"`
	Name         string  `json:"name" form:"name" validate:"required,max=100"`
	Description  string  `json:"description" form:"description"`
	Price        float64 `json:"price" form:"price" validate:"gte=0"`
	DurationDays int     `json:"durationDays" form:"durationDays" validate:"required,min=1"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

type InstructorSubscription struct {
	SubscriptionID string `json:"subscriptionId"`
	InstructorID   string `json:"instructorId"`
	PackageID      string `json:"packageId"`
	PackageName    string `json:"packageName,omitempty"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	IsActive       bool   `json:"isActive"`
}

type Subscribe struct {
	InstructorID string `json:"instructorId" form:"-" validate:"required"`
	PackageID    string `json:"packageId" form:"packageId" validate:"required"`
}

type SupportTicket struct {
	TicketID    string `json:"ticketId"`
	UserID      string `json:"userId"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	CreatedAt   string `json:"createdAt"`
	ClosedAt    string `json:"closedAt,omitempty"`
}

type SupportTicketInput struct {
	UserID      string `json:"userId" form:"-" validate:"required"`
	Subject     string `json:"subject" form:"subject" validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"required"`
}

type Group struct {
	GroupID      string `json:"groupId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	InstructorID string `json:"instructorId"`
	CourseID     string `json:"courseId,omitempty"`
	MembersCount int    `json:"membersCount"`
	CreatedAt    string `json:"createdAt"`
}

type GroupInput struct {
	Name         string `json:"name" form:"name" validate:"required,max=100"`
	Description  string `json:"description,omitempty" form:"description"`
	CourseID     string `json:"courseId,omitempty" form:"courseId"`
	InstructorID string `json:"instructorId,omitempty" form:"-"`
}

type Enrollment struct {
	EnrollmentID       string  `json:"enrollmentId"`
	StudentID          string  `json:"studentId"`
	CourseID           string  `json:"courseId"`
	CourseName         string  `json:"courseName,omitempty"`
	ProgressPercentage float64 `json:"progressPercentage"`
	EnrollmentDate     string  `json:"enrollmentDate"`
	CompletedAt        string  `json:"completedAt,omitempty"`
	IsCompleted        bool    `json:"isCompleted"`
}

type EnrollmentInput struct {
	StudentID string `json:"studentId" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
}

type Certificate struct {
	CertificateID  string `json:"certificateId"`
	StudentID      string `json:"studentId"`
	CourseID       string `json:"courseId"`
	CourseName     string `json:"courseName,omitempty"`
	IssuedAt       string `json:"issuedAt"`
	CertificateURL string `json:"certificateUrl,omitempty"`
}

type StudentDashboard struct {
	TotalEnrollments  int          `json:"totalEnrollments"`
	CompletedCourses  int          `json:"completedCourses"`
	InProgressCourses int          `json:"inProgressCourses"`
	AverageProgress   float64      `json:"averageProgress"`
	RecentEnrollments []Enrollment `json:"recentEnrollments,omitempty"`
}

type InstructorDashboard struct {
	TotalCourses        int     `json:"totalCourses"`
	PublishedCourses    int     `json:"publishedCourses"`
	TotalStudents       int     `json:"totalStudents"`
	TotalRevenue        float64 `json:"totalRevenue"`
	AverageCourseRating float64 `json:"averageCourseRating"`
}

type MonthlyCount struct {
	Year     int   `json:"year,omitempty"`
	Month    Month `json:"month"`
	NewUsers int   `json:"newUsers"`
}

type AdminDashboard struct {
	TotalUsers        int              `json:"totalUsers"`
	TotalStudents     int              `json:"totalStudents"`
	TotalInstructors  int              `json:"totalInstructors"`
	TotalCourses      int              `json:"totalCourses"`
	TotalEnrollments  int              `json:"totalEnrollments"`
	TotalRevenue      float64          `json:"totalRevenue"`
	RevenueByMonth    []MonthlyRevenue `json:"revenueByMonth,omitempty"`
	UserGrowthByMonth []MonthlyCount   `json:"userGrowthByMonth,omitempty"`
}
