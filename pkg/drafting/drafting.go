package drafting

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
)

// Generator produces a paragraph of text for a structured prompt. It stands
// in for an external generative-text service and is treated as opaque.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service drafts report comments and guardian emails. Drafts are staged
// text only; nothing here touches the store. Every call returns usable,
// non-empty text: when the generator is absent or errors, a deterministic
// fallback paragraph is used instead.
type Service struct {
	generator Generator
	school    string
	logger    *zap.Logger
}

// NewService constructs the drafting service. A nil generator is valid and
// means fallback drafts only.
func NewService(generator Generator, school string, logger *zap.Logger) *Service {
	if school == "" {
		school = "Cedar Crest International School"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, school: school, logger: logger}
}

// ReportComment drafts a terminal report comment from the student's grade
// and attendance summary.
func (s *Service) ReportComment(ctx context.Context, student models.Student) string {
	prompt := s.reportCommentPrompt(student)
	if text := s.generate(ctx, prompt); text != "" {
		return text
	}
	return "The student is making steady progress across the curriculum. Continued focus on subject fundamentals and consistent attendance is recommended for future academic success."
}

// EventEmail drafts a guardian-facing announcement for a calendar event.
func (s *Service) EventEmail(ctx context.Context, event models.SchoolEvent) string {
	prompt := s.eventEmailPrompt(event)
	if text := s.generate(ctx, prompt); text != "" {
		return text
	}
	return fmt.Sprintf(
		"Dear Guardians,\n\nWe invite you to our upcoming event: %s.\n\nDate: %s\nTime: %s\nLocation: %s\n\nWe look forward to seeing you there.\n\nBest regards,\nThe Administration",
		event.Title, event.Date, event.Time, event.Location,
	)
}

func (s *Service) generate(ctx context.Context, prompt string) string {
	if s.generator == nil {
		return ""
	}
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("draft generation failed, using fallback", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(text)
}

func (s *Service) reportCommentPrompt(student models.Student) string {
	gradesSummary := "No grades recorded for this term."
	if len(student.Grades) > 0 {
		parts := make([]string, 0, len(student.Grades))
		for _, g := range student.Grades {
			parts = append(parts, fmt.Sprintf("%s (%.0f/%.0f)", g.Subject, g.Score, g.MaxScore))
		}
		gradesSummary = strings.Join(parts, ", ")
	}

	present := 0
	for _, status := range student.Attendance {
		if status == models.AttendancePresent {
			present++
		}
	}
	totalDays := len(student.Attendance)
	rate := models.AttendanceRate(student.Attendance)

	var b strings.Builder
	fmt.Fprintf(&b, "As a professional school principal at %s, write a concise (2-4 sentences) terminal report comment for the student: %s.\n\n", s.school, student.Name)
	fmt.Fprintf(&b, "Academic Performance: %s\n", gradesSummary)
	fmt.Fprintf(&b, "Attendance: %d days present out of %d (%d%% attendance rate).\n\n", present, totalDays, rate)
	b.WriteString("Mention the attendance rate, identify the strongest subjects and any subjects needing more focus. Use a professional, encouraging and specific tone. Respond with a single paragraph.")
	return b.String()
}

func (s *Service) eventEmailPrompt(event models.SchoolEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As the Administrative Office of %s, draft a professional and inviting email to student guardians about an upcoming event.\n\n", s.school)
	fmt.Fprintf(&b, "Title: %s\nDate: %s\nTime: %s\nLocation: %s\nDescription: %s\n\n", event.Title, event.Date, event.Time, event.Location, event.Description)
	b.WriteString("Start with a professional greeting, state the purpose of the event, encourage attendance, provide the logistics clearly and end with a sign-off from the administration. Keep the email concise.")
	return b.String()
}
