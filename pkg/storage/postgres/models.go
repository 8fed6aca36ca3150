package postgres

import (
	"database/sql"
	"time"

	"jobboard/pkg/domain"

	"github.com/google/uuid"
)

type PgUser struct {
	ID           uuid.UUID `db:"id"            goqu:"skipinsert"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	PasswordHash string    `db:"password_hash"`
	AccountType  string    `db:"account_type"`
	CreatedAt    time.Time `db:"created_at"    goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:           domain.UserID(p.ID),
		Username:     p.Username,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: p.PasswordHash,
		AccountType:  domain.AccountType(p.AccountType),
		CreatedAt:    p.CreatedAt,
	}
}

func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		ID:           uuid.UUID(user.ID),
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
		AccountType:  string(user.AccountType),
		CreatedAt:    user.CreatedAt,
	}
}

type PgJob struct {
	ID              uuid.UUID       `db:"id"               goqu:"skipinsert"`
	Title           string          `db:"title"`
	Company         string          `db:"company"`
	Location        string          `db:"location"`
	WorkType        string          `db:"work_type"`
	Description     string          `db:"description"`
	Requirements    string          `db:"requirements"`
	SalaryMin       sql.NullInt64   `db:"salary_min"`
	SalaryMax       sql.NullInt64   `db:"salary_max"`
	SalaryCurrency  string          `db:"salary_currency"`
	VisaSponsorship bool            `db:"visa_sponsorship"`
	Benefits        string          `db:"benefits"`
	PostedBy        uuid.UUID       `db:"posted_by"`
	Status          string          `db:"status"`
	Latitude        sql.NullFloat64 `db:"latitude"         goqu:"skipinsert"`
	Longitude       sql.NullFloat64 `db:"longitude"        goqu:"skipinsert"`
	CreatedAt       time.Time       `db:"created_at"       goqu:"skipinsert"`
	UpdatedAt       sql.NullTime    `db:"updated_at"       goqu:"skipinsert"`
	ExpiresAt       sql.NullTime    `db:"expires_at"`
}

func (p *PgJob) ToDomain() *domain.Job {
	return &domain.Job{
		ID:              domain.JobID(p.ID),
		Title:           p.Title,
		Company:         p.Company,
		Location:        p.Location,
		WorkType:        domain.WorkType(p.WorkType),
		Description:     p.Description,
		Requirements:    p.Requirements,
		SalaryMin:       nullInt(p.SalaryMin),
		SalaryMax:       nullInt(p.SalaryMax),
		SalaryCurrency:  p.SalaryCurrency,
		VisaSponsorship: p.VisaSponsorship,
		Benefits:        p.Benefits,
		PostedBy:        domain.UserID(p.PostedBy),
		Status:          domain.JobStatus(p.Status),
		Latitude:        nullFloat(p.Latitude),
		Longitude:       nullFloat(p.Longitude),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt.Time,
		ExpiresAt:       p.ExpiresAt.Time,
	}
}

func (p *PgJob) FromDomain(job domain.Job) {
	*p = PgJob{
		ID:              uuid.UUID(job.ID),
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		WorkType:        string(job.WorkType),
		Description:     job.Description,
		Requirements:    job.Requirements,
		SalaryMin:       toNullInt(job.SalaryMin),
		SalaryMax:       toNullInt(job.SalaryMax),
		SalaryCurrency:  job.SalaryCurrency,
		VisaSponsorship: job.VisaSponsorship,
		Benefits:        job.Benefits,
		PostedBy:        uuid.UUID(job.PostedBy),
		Status:          string(job.Status),
		Latitude:        toNullFloat(job.Latitude),
		Longitude:       toNullFloat(job.Longitude),
		ExpiresAt:       sql.NullTime{Time: job.ExpiresAt, Valid: !job.ExpiresAt.IsZero()},
	}
}

type PgApplication struct {
	ID          uuid.UUID    `db:"id"           goqu:"skipinsert"`
	JobID       uuid.UUID    `db:"job_id"`
	ApplicantID uuid.UUID    `db:"applicant_id"`
	Status      string       `db:"status"`
	CoverLetter string       `db:"cover_letter"`
	AppliedAt   time.Time    `db:"applied_at"   goqu:"skipinsert"`
	UpdatedAt   sql.NullTime `db:"updated_at"   goqu:"skipinsert"`
}

func (p *PgApplication) ToDomain() *domain.JobApplication {
	return &domain.JobApplication{
		ID:          domain.ApplicationID(p.ID),
		JobID:       domain.JobID(p.JobID),
		ApplicantID: domain.UserID(p.ApplicantID),
		Status:      domain.ApplicationStatus(p.Status),
		CoverLetter: p.CoverLetter,
		AppliedAt:   p.AppliedAt,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

func (p *PgApplication) FromDomain(app domain.JobApplication) {
	*p = PgApplication{
		ID:          uuid.UUID(app.ID),
		JobID:       uuid.UUID(app.JobID),
		ApplicantID: uuid.UUID(app.ApplicantID),
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
	}
}

type PgProfile struct {
	ID           uuid.UUID `db:"id"            goqu:"skipinsert"`
	UserID       uuid.UUID `db:"user_id"`
	Headline     string    `db:"headline"`
	Summary      string    `db:"summary"`
	Location     string    `db:"location"`
	ShowHeadline bool      `db:"show_headline"`
	ShowLocation bool      `db:"show_location"`
	ShowSummary  bool      `db:"show_summary"`
	ShowSkills   bool      `db:"show_skills"`
	CreatedAt    time.Time `db:"created_at"    goqu:"skipinsert"`
	UpdatedAt    time.Time `db:"updated_at"    goqu:"skipinsert"`
}

func (p *PgProfile) ToDomain() *domain.Profile {
	return &domain.Profile{
		ID:           domain.ProfileID(p.ID),
		UserID:       domain.UserID(p.UserID),
		Headline:     p.Headline,
		Summary:      p.Summary,
		Location:     p.Location,
		ShowHeadline: p.ShowHeadline,
		ShowLocation: p.ShowLocation,
		ShowSummary:  p.ShowSummary,
		ShowSkills:   p.ShowSkills,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type PgEducation struct {
	ID           uuid.UUID    `db:"id"             goqu:"skipinsert"`
	ProfileID    uuid.UUID    `db:"profile_id"`
	School       string       `db:"school"`
	Degree       string       `db:"degree"`
	FieldOfStudy string       `db:"field_of_study"`
	StartDate    sql.NullTime `db:"start_date"`
	EndDate      sql.NullTime `db:"end_date"`
	Current      bool         `db:"current"`
	Description  string       `db:"description"`
	Show         bool         `db:"show"`
}

func (p *PgEducation) ToDomain() domain.Education {
	return domain.Education{
		ID:           p.ID,
		School:       p.School,
		Degree:       p.Degree,
		FieldOfStudy: p.FieldOfStudy,
		StartDate:    nullTime(p.StartDate),
		EndDate:      nullTime(p.EndDate),
		Current:      p.Current,
		Description:  p.Description,
		Show:         p.Show,
	}
}

type PgExperience struct {
	ID          uuid.UUID    `db:"id"         goqu:"skipinsert"`
	ProfileID   uuid.UUID    `db:"profile_id"`
	Title       string       `db:"title"`
	Company     string       `db:"company"`
	StartDate   sql.NullTime `db:"start_date"`
	EndDate     sql.NullTime `db:"end_date"`
	Current     bool         `db:"current"`
	Description string       `db:"description"`
	Show        bool         `db:"show"`
}

func (p *PgExperience) ToDomain() domain.Experience {
	return domain.Experience{
		ID:          p.ID,
		Title:       p.Title,
		Company:     p.Company,
		StartDate:   nullTime(p.StartDate),
		EndDate:     nullTime(p.EndDate),
		Current:     p.Current,
		Description: p.Description,
		Show:        p.Show,
	}
}

type PgLink struct {
	ID        uuid.UUID `db:"id"         goqu:"skipinsert"`
	ProfileID uuid.UUID `db:"profile_id"`
	Kind      string    `db:"kind"`
	Label     string    `db:"label"`
	URL       string    `db:"url"`
	Show      bool      `db:"show"`
}

func (p *PgLink) ToDomain() domain.Link {
	return domain.Link{
		ID:    p.ID,
		Kind:  domain.LinkKind(p.Kind),
		Label: p.Label,
		URL:   p.URL,
		Show:  p.Show,
	}
}

type PgSavedSearch struct {
	ID                 uuid.UUID    `db:"id"                    goqu:"skipinsert"`
	RecruiterID        uuid.UUID    `db:"recruiter_id"`
	Name               string       `db:"name"`
	Skills             string       `db:"skills"`
	Location           string       `db:"location"`
	NotifyOnNewMatches bool         `db:"notify_on_new_matches"`
	CreatedAt          time.Time    `db:"created_at"            goqu:"skipinsert"`
	LastRun            sql.NullTime `db:"last_run"              goqu:"skipinsert"`
	LastNotified       sql.NullTime `db:"last_notified"         goqu:"skipinsert"`
}

func (p *PgSavedSearch) ToDomain() *domain.SavedSearch {
	return &domain.SavedSearch{
		ID:                 domain.SearchID(p.ID),
		RecruiterID:        domain.UserID(p.RecruiterID),
		Name:               p.Name,
		Skills:             p.Skills,
		Location:           p.Location,
		NotifyOnNewMatches: p.NotifyOnNewMatches,
		CreatedAt:          p.CreatedAt,
		LastRun:            nullTime(p.LastRun),
		LastNotified:       nullTime(p.LastNotified),
	}
}

func (p *PgSavedSearch) FromDomain(search domain.SavedSearch) {
	*p = PgSavedSearch{
		ID:                 uuid.UUID(search.ID),
		RecruiterID:        uuid.UUID(search.RecruiterID),
		Name:               search.Name,
		Skills:             search.Skills,
		Location:           search.Location,
		NotifyOnNewMatches: search.NotifyOnNewMatches,
	}
}

type PgNotification struct {
	ID              uuid.UUID    `db:"id"               goqu:"skipinsert"`
	SearchID        uuid.UUID    `db:"search_id"`
	CandidatesCount int          `db:"candidates_count" goqu:"skipinsert"`
	SentAt          time.Time    `db:"sent_at"          goqu:"skipinsert"`
	IsRead          bool         `db:"is_read"          goqu:"skipinsert"`
	ReadAt          sql.NullTime `db:"read_at"          goqu:"skipinsert"`
}

func (p *PgNotification) ToDomain() *domain.SearchNotification {
	return &domain.SearchNotification{
		ID:              domain.NotificationID(p.ID),
		SearchID:        domain.SearchID(p.SearchID),
		CandidatesCount: p.CandidatesCount,
		SentAt:          p.SentAt,
		IsRead:          p.IsRead,
		ReadAt:          nullTime(p.ReadAt),
	}
}

type PgReport struct {
	ID          uuid.UUID     `db:"id"          goqu:"skipinsert"`
	JobID       uuid.UUID     `db:"job_id"`
	ReportedBy  uuid.UUID     `db:"reported_by"`
	Reason      string        `db:"reason"`
	Description string        `db:"description"`
	CreatedAt   time.Time     `db:"created_at"  goqu:"skipinsert"`
	Reviewed    bool          `db:"reviewed"    goqu:"skipinsert"`
	ReviewedBy  uuid.NullUUID `db:"reviewed_by" goqu:"skipinsert"`
	ReviewedAt  sql.NullTime  `db:"reviewed_at" goqu:"skipinsert"`
}

func (p *PgReport) ToDomain() *domain.JobReport {
	report := &domain.JobReport{
		ID:          domain.ReportID(p.ID),
		JobID:       domain.JobID(p.JobID),
		ReportedBy:  domain.UserID(p.ReportedBy),
		Reason:      domain.ReportReason(p.Reason),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		Reviewed:    p.Reviewed,
		ReviewedAt:  nullTime(p.ReviewedAt),
	}
	if p.ReviewedBy.Valid {
		id := domain.UserID(p.ReviewedBy.UUID)
		report.ReviewedBy = &id
	}

	return report
}

type PgMessage struct {
	ID          uuid.UUID    `db:"id"           goqu:"skipinsert"`
	SenderID    uuid.UUID    `db:"sender_id"`
	RecipientID uuid.UUID    `db:"recipient_id"`
	Content     string       `db:"content"`
	SentAt      time.Time    `db:"sent_at"      goqu:"skipinsert"`
	ReadAt      sql.NullTime `db:"read_at"      goqu:"skipinsert"`
}

func (p *PgMessage) ToDomain() *domain.Message {
	return &domain.Message{
		ID:          domain.MessageID(p.ID),
		SenderID:    domain.UserID(p.SenderID),
		RecipientID: domain.UserID(p.RecipientID),
		Content:     p.Content,
		SentAt:      p.SentAt,
		ReadAt:      nullTime(p.ReadAt),
	}
}

type PgCityCoord struct {
	ID        uuid.UUID `db:"id"         goqu:"skipinsert"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	Lat       float64   `db:"lat"`
	Lng       float64   `db:"lng"`
	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgCityCoord) ToDomain() *domain.CityCoord {
	return &domain.CityCoord{
		City:      p.City,
		State:     p.State,
		Lat:       p.Lat,
		Lng:       p.Lng,
		CreatedAt: p.CreatedAt,
	}
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)

	return &n
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64

	return &f
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}

	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time

	return &t
}
