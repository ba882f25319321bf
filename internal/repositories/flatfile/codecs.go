package flatfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CCMS-2025/center-service/internal/models"
	"github.com/CCMS-2025/center-service/internal/storage"
)

// Record dates are day-granular except message timestamps.
const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"
)

// Table file names under the data directory. Role tables are one file per
// role; the messaging subsystem keeps its legacy pipe-separated layout.
const (
	adminsFile        = "admins.txt"
	receptionistsFile = "receptionists.txt"
	tutorsFile        = "tutors.txt"
	studentsFile      = "students.txt"
	coursesFile       = "courses.txt"
	enrollmentsFile   = "enrollments.txt"
	paymentsFile      = "payments.txt"
	attendanceFile    = "attendance.txt"
	requestsFile      = "requests.txt"
	messagesFile      = "messages.txt"
	groupsFile        = "groups.txt"
	feedbackFile      = "feedback.txt"
	countersFile      = "counters.txt"
)

// Id prefixes and starting offsets per entity.
const (
	adminPrefix      = "ADM-"
	adminBase        = 1
	receptionistPref = "REC-"
	receptionistBase = 301
	tutorPrefix      = "TUT-"
	tutorBase        = 201
	studentPrefix    = "STU-"
	studentBase      = 401
	coursePrefix     = "C-"
	courseBase       = 101
	enrollmentPrefix = "ENR-"
	enrollmentBase   = 1
	paymentPrefix    = "PAY-"
	paymentBase      = 1
	attendancePrefix = "ATT-"
	attendanceBase   = 1
	requestPrefix    = "REQ-"
	requestBase      = 1
	feedbackPrefix   = "FB-"
	feedbackBase     = 1
)

// groupEntity is the key of the group-chat counter in the counter file.
const groupEntity = "groupchat"

// memberSep joins member usernames inside one pipe-separated field.
const memberSep = ";"

func formatMoney(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// userCodec encodes one role table's rows. The role is implied by the table,
// not stored; tutors carry a trailing specialization field no other role has.
func userCodec(role models.Role) storage.Codec[*models.UserAccount] {
	arity := 4
	if role == models.RoleTutor {
		arity = 5
	}
	return storage.Codec[*models.UserAccount]{
		Separator: storage.SeparatorComma,
		Arity:     arity,
		Encode: func(u *models.UserAccount) []string {
			fields := []string{u.ID, u.Username, u.Password, u.FullName}
			if role == models.RoleTutor {
				fields = append(fields, u.Specialization)
			}
			return fields
		},
		Decode: func(fields []string) (*models.UserAccount, error) {
			u := &models.UserAccount{
				ID:       fields[0],
				Username: fields[1],
				Password: fields[2],
				Role:     role,
				FullName: fields[3],
			}
			if role == models.RoleTutor {
				u.Specialization = fields[4]
			}
			return u, nil
		},
	}
}

func courseCodec() storage.Codec[*models.Course] {
	return storage.Codec[*models.Course]{
		Separator: storage.SeparatorComma,
		Arity:     6,
		Encode: func(c *models.Course) []string {
			return []string{c.ID, c.Name, c.TutorID, c.Level, c.Subject, formatMoney(c.Fee)}
		},
		Decode: func(fields []string) (*models.Course, error) {
			fee, err := strconv.ParseFloat(fields[5], 64)
			if err != nil {
				return nil, fmt.Errorf("course fee: %w", err)
			}
			return &models.Course{
				ID:      fields[0],
				Name:    fields[1],
				TutorID: fields[2],
				Level:   fields[3],
				Subject: fields[4],
				Fee:     fee,
			}, nil
		},
	}
}

func enrollmentCodec() storage.Codec[*models.Enrollment] {
	return storage.Codec[*models.Enrollment]{
		Separator: storage.SeparatorComma,
		Arity:     4,
		Encode: func(e *models.Enrollment) []string {
			return []string{e.ID, e.StudentID, e.CourseID, formatMoney(e.TotalFee)}
		},
		Decode: func(fields []string) (*models.Enrollment, error) {
			fee, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("enrollment total fee: %w", err)
			}
			return &models.Enrollment{
				ID:        fields[0],
				StudentID: fields[1],
				CourseID:  fields[2],
				TotalFee:  fee,
			}, nil
		},
	}
}

func paymentCodec() storage.Codec[*models.Payment] {
	return storage.Codec[*models.Payment]{
		Separator: storage.SeparatorComma,
		Arity:     4,
		Encode: func(p *models.Payment) []string {
			return []string{p.ID, p.EnrollmentID, formatMoney(p.Amount), p.Date.Format(dateLayout)}
		},
		Decode: func(fields []string) (*models.Payment, error) {
			amount, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("payment amount: %w", err)
			}
			date, err := time.Parse(dateLayout, fields[3])
			if err != nil {
				return nil, fmt.Errorf("payment date: %w", err)
			}
			return &models.Payment{
				ID:           fields[0],
				EnrollmentID: fields[1],
				Amount:       amount,
				Date:         date,
			}, nil
		},
	}
}

func attendanceCodec() storage.Codec[*models.AttendanceRecord] {
	return storage.Codec[*models.AttendanceRecord]{
		Separator: storage.SeparatorComma,
		Arity:     5,
		Encode: func(a *models.AttendanceRecord) []string {
			return []string{a.ID, a.StudentID, a.CourseID, a.Date.Format(dateLayout), string(a.Status)}
		},
		Decode: func(fields []string) (*models.AttendanceRecord, error) {
			date, err := time.Parse(dateLayout, fields[3])
			if err != nil {
				return nil, fmt.Errorf("attendance date: %w", err)
			}
			status, err := models.ParseAttendanceStatus(fields[4])
			if err != nil {
				return nil, err
			}
			return &models.AttendanceRecord{
				ID:        fields[0],
				StudentID: fields[1],
				CourseID:  fields[2],
				Date:      date,
				Status:    status,
			}, nil
		},
	}
}

func requestCodec() storage.Codec[*models.EnrollmentRequest] {
	return storage.Codec[*models.EnrollmentRequest]{
		Separator: storage.SeparatorComma,
		Arity:     5,
		Encode: func(r *models.EnrollmentRequest) []string {
			return []string{r.ID, r.StudentID, r.Details, string(r.Status), r.Date.Format(dateLayout)}
		},
		Decode: func(fields []string) (*models.EnrollmentRequest, error) {
			date, err := time.Parse(dateLayout, fields[4])
			if err != nil {
				return nil, fmt.Errorf("request date: %w", err)
			}
			return &models.EnrollmentRequest{
				ID:        fields[0],
				StudentID: fields[1],
				Details:   fields[2],
				Status:    models.RequestStatus(fields[3]),
				Date:      date,
			}, nil
		},
	}
}

func messageCodec() storage.Codec[*models.Message] {
	return storage.Codec[*models.Message]{
		Separator: storage.SeparatorPipe,
		Arity:     6,
		Encode: func(m *models.Message) []string {
			return []string{
				m.Sender,
				m.Recipient,
				m.GroupID,
				m.Content,
				m.SentAt.Format(timeLayout),
				strconv.FormatBool(m.Read),
			}
		},
		Decode: func(fields []string) (*models.Message, error) {
			sentAt, err := time.Parse(timeLayout, fields[4])
			if err != nil {
				return nil, fmt.Errorf("message timestamp: %w", err)
			}
			read, err := strconv.ParseBool(fields[5])
			if err != nil {
				return nil, fmt.Errorf("message read flag: %w", err)
			}
			return &models.Message{
				Sender:    fields[0],
				Recipient: fields[1],
				GroupID:   fields[2],
				Content:   fields[3],
				SentAt:    sentAt,
				Read:      read,
			}, nil
		},
	}
}

func groupCodec() storage.Codec[*models.GroupChat] {
	return storage.Codec[*models.GroupChat]{
		Separator: storage.SeparatorPipe,
		Arity:     4,
		Encode: func(g *models.GroupChat) []string {
			return []string{g.ID, g.Name, g.Creator, strings.Join(g.Members, memberSep)}
		},
		Decode: func(fields []string) (*models.GroupChat, error) {
			var members []string
			if fields[3] != "" {
				members = strings.Split(fields[3], memberSep)
			}
			return &models.GroupChat{
				ID:      fields[0],
				Name:    fields[1],
				Creator: fields[2],
				Members: members,
			}, nil
		},
	}
}

func feedbackCodec() storage.Codec[*models.Feedback] {
	return storage.Codec[*models.Feedback]{
		Separator: storage.SeparatorComma,
		Arity:     9,
		Encode: func(f *models.Feedback) []string {
			return []string{
				f.ID,
				f.SubmitterID,
				string(f.TargetRole),
				f.TargetID,
				f.Subject,
				strconv.Itoa(f.Rating),
				f.Content,
				f.Date.Format(dateLayout),
				string(f.Status),
			}
		},
		Decode: func(fields []string) (*models.Feedback, error) {
			rating, err := strconv.Atoi(fields[5])
			if err != nil {
				return nil, fmt.Errorf("feedback rating: %w", err)
			}
			date, err := time.Parse(dateLayout, fields[7])
			if err != nil {
				return nil, fmt.Errorf("feedback date: %w", err)
			}
			role, err := models.ParseRole(fields[2])
			if err != nil {
				return nil, err
			}
			return &models.Feedback{
				ID:          fields[0],
				SubmitterID: fields[1],
				TargetRole:  role,
				TargetID:    fields[3],
				Subject:     fields[4],
				Rating:      rating,
				Content:     fields[6],
				Date:        date,
				Status:      models.FeedbackStatus(fields[8]),
			}, nil
		},
	}
}
