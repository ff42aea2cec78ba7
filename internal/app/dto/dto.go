package dto

import "time"

// ============ Common envelopes ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Authentication ============

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// ============ Form drafts ============

// UpdateDraftRequest carries the editable fields of the form. Pointers
// distinguish "not sent" from "cleared"; only the fields belonging to the
// draft's current step are applied.
type UpdateDraftRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`

	ServiceType *string `json:"service_type"`
	Plan        *string `json:"plan"`
	Description *string `json:"description"`
}

type SummaryResponse struct {
	ServiceLabel string  `json:"service_label,omitempty"`
	PlanLabel    string  `json:"plan_label,omitempty"`
	TotalAmount  float64 `json:"total_amount"`
	TotalLabel   string  `json:"total_label"`
}

type DraftResponse struct {
	ID   string `json:"id"`
	Step string `json:"step"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`

	ServiceType string `json:"service_type"`
	Plan        string `json:"plan"`
	Description string `json:"description"`

	// Present on the review step only.
	Summary *SummaryResponse `json:"summary,omitempty"`
}

// ============ Service requests ============

type RequestResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company,omitempty"`

	ServiceType  string `json:"service_type,omitempty"`
	ServiceLabel string `json:"service_label,omitempty"`
	Plan         string `json:"plan,omitempty"`
	PlanLabel    string `json:"plan_label,omitempty"`
	Description  string `json:"description,omitempty"`

	FileURL  *string `json:"file_url"`
	FileName *string `json:"file_name"`

	Status        string  `json:"status"`
	StatusLabel   string  `json:"status_label"`
	PaymentStatus string  `json:"payment_status"`
	TotalAmount   float64 `json:"total_amount"`

	// Status values the current state may transition to.
	Actions []string `json:"actions"`
}

type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int               `json:"total"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ============ Pages ============

type OfferingResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type PlanResponse struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular,omitempty"`
}

type HomePageResponse struct {
	Title    string             `json:"title"`
	Tagline  string             `json:"tagline"`
	Services []OfferingResponse `json:"services"`
}

type ServicesPageResponse struct {
	Services []OfferingResponse `json:"services"`
}

type PricingPageResponse struct {
	Plans []PlanResponse `json:"plans"`
}

type ContactPageResponse struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
}

type ContactMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}
